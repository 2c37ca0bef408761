package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"postboard/internal/auth"
	apperrors "postboard/internal/errors"
	"postboard/internal/model"
	"postboard/internal/service"
)

// newMultipartContext builds an authenticated PUT /api/profile request whose
// body is assembled by build.
func newMultipartContext(t *testing.T, callerID uint, build func(w *multipart.Writer)) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	build(w)
	assert.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/profile", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &auth.Claims{UserID: callerID})
	return c, rec
}

func addImagePart(t *testing.T, w *multipart.Writer, contentType string, data []byte) {
	t.Helper()
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="avatar.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(data)
	assert.NoError(t, err)
}

func errorMessageMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	msg, ok := resp["message"].(map[string]interface{})
	assert.True(t, ok, "message should be a field-error map")
	return msg
}

func TestProfileHandler_Update_PartialNameOnly(t *testing.T) {
	mockProfile := new(MockProfileService)
	mockProfile.On("Update", mock.Anything, uint(2), mock.MatchedBy(func(in service.UpdateProfileInput) bool {
		return in.Name != nil && *in.Name == "New Name" &&
			in.Email == nil && in.Password == nil && in.Avatar == nil
	})).Return(&model.User{ID: 2, Name: "New Name", Email: "alice@example.com"}, nil)

	h := NewProfileHandler(mockProfile)
	c, rec := newMultipartContext(t, 2, func(w *multipart.Writer) {
		assert.NoError(t, w.WriteField("name", "New Name"))
	})

	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp SuccessResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Profile updated successfully", resp.Message)
	mockProfile.AssertExpectations(t)
}

func TestProfileHandler_Update_PasswordConfirmationMustMatch(t *testing.T) {
	mockProfile := new(MockProfileService)
	h := NewProfileHandler(mockProfile)

	c, rec := newMultipartContext(t, 2, func(w *multipart.Writer) {
		assert.NoError(t, w.WriteField("password", "secret1"))
		assert.NoError(t, w.WriteField("password_confirmation", "other"))
	})

	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	msg := errorMessageMap(t, rec)
	assert.Equal(t, "The password confirmation does not match.", msg["password"])
	mockProfile.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileHandler_Update_PasswordTooShort(t *testing.T) {
	h := NewProfileHandler(new(MockProfileService))

	c, rec := newMultipartContext(t, 2, func(w *multipart.Writer) {
		assert.NoError(t, w.WriteField("password", "abc"))
		assert.NoError(t, w.WriteField("password_confirmation", "abc"))
	})

	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	msg := errorMessageMap(t, rec)
	assert.Equal(t, "The password must be at least 6 characters.", msg["password"])
}

func TestProfileHandler_Update_InvalidEmail(t *testing.T) {
	h := NewProfileHandler(new(MockProfileService))

	c, rec := newMultipartContext(t, 2, func(w *multipart.Writer) {
		assert.NoError(t, w.WriteField("email", "not-an-email"))
	})

	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	msg := errorMessageMap(t, rec)
	assert.Equal(t, "The email must be a valid email address.", msg["email"])
}

func TestProfileHandler_Update_RejectsOversizedImage(t *testing.T) {
	mockProfile := new(MockProfileService)
	h := NewProfileHandler(mockProfile)

	c, rec := newMultipartContext(t, 2, func(w *multipart.Writer) {
		addImagePart(t, w, "image/png", bytes.Repeat([]byte{0xff}, maxAvatarSize+1))
	})

	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	msg := errorMessageMap(t, rec)
	assert.Equal(t, "The image may not be greater than 2048 kilobytes.", msg["image"])
	mockProfile.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileHandler_Update_RejectsNonImageContentType(t *testing.T) {
	h := NewProfileHandler(new(MockProfileService))

	c, rec := newMultipartContext(t, 2, func(w *multipart.Writer) {
		addImagePart(t, w, "text/plain", []byte("definitely not a picture"))
	})

	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	msg := errorMessageMap(t, rec)
	assert.Equal(t, "The image must be a file of type: jpeg, png, jpg, gif.", msg["image"])
}

func TestProfileHandler_Update_ForwardsValidImage(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}

	mockProfile := new(MockProfileService)
	mockProfile.On("Update", mock.Anything, uint(2), mock.MatchedBy(func(in service.UpdateProfileInput) bool {
		if in.Avatar == nil || in.Avatar.ContentType != "image/png" {
			return false
		}
		data, err := io.ReadAll(in.Avatar.Body)
		return err == nil && bytes.Equal(data, payload)
	})).Return(&model.User{ID: 2, Image: "https://cdn.example.com/profile_images/x.png"}, nil)

	h := NewProfileHandler(mockProfile)
	c, rec := newMultipartContext(t, 2, func(w *multipart.Writer) {
		addImagePart(t, w, "image/png", payload)
	})

	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockProfile.AssertExpectations(t)
}

func TestProfileHandler_Update_EmailTakenIsValidationFailure(t *testing.T) {
	mockProfile := new(MockProfileService)
	mockProfile.On("Update", mock.Anything, uint(2), mock.Anything).
		Return(nil, apperrors.ErrEmailTaken)

	h := NewProfileHandler(mockProfile)
	c, rec := newMultipartContext(t, 2, func(w *multipart.Writer) {
		assert.NoError(t, w.WriteField("email", "taken@example.com"))
	})

	assert.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	msg := errorMessageMap(t, rec)
	assert.Equal(t, "The email has already been taken.", msg["email"])
}

func TestProfileHandler_Show(t *testing.T) {
	mockProfile := new(MockProfileService)
	mockProfile.On("Get", mock.Anything, uint(2)).
		Return(&model.User{ID: 2, Name: "Alice", Email: "alice@example.com"}, nil)

	h := NewProfileHandler(mockProfile)
	c, rec := newTestContext(t, http.MethodGet, "/api/profile", "", 2)

	assert.NoError(t, h.Show(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp SuccessResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "User profile retrieved successfully", resp.Message)
}
