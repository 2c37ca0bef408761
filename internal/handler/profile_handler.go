package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "postboard/internal/errors"
	"postboard/internal/service"
)

// maxAvatarSize caps profile images at 2 MiB.
const maxAvatarSize = 2 << 20

var avatarContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// profileValidate checks individual multipart fields; struct binding does
// not apply to "sometimes" form updates.
var profileValidate = validator.New()

// ProfileHandler handles the caller's own user record.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Show godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.MessageResponse
// @Router /profile [get]
func (h *ProfileHandler) Show(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := h.profileService.Get(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return successResponse(c, http.StatusOK, "User profile retrieved successfully", user)
}

// Update godoc
// @Summary Update the caller's profile
// @Description Multipart form; any subset of name, email, password (+password_confirmation) and image may be present. Absent fields are untouched.
// @Tags profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string false "Display name"
// @Param email formData string false "Email, unique across other users"
// @Param password formData string false "New password, requires password_confirmation"
// @Param image formData file false "Avatar image (jpeg/png/gif, max 2 MiB)"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	input, ferrs := h.parseUpdate(c)
	if len(ferrs) > 0 {
		return errorResponse(c, http.StatusBadRequest, ferrs)
	}

	if input.Avatar != nil {
		if closer, ok := input.Avatar.Body.(io.Closer); ok {
			defer closer.Close()
		}
	}

	user, err := h.profileService.Update(c.Request().Context(), userID, input)
	if err != nil {
		if err == apperrors.ErrEmailTaken {
			return errorResponse(c, http.StatusBadRequest, map[string]string{"email": err.Error()})
		}
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return successResponse(c, http.StatusOK, "Profile updated successfully", user)
}

// parseUpdate reads the "sometimes" fields out of the multipart form,
// validating each one that is present.
func (h *ProfileHandler) parseUpdate(c echo.Context) (service.UpdateProfileInput, map[string]string) {
	var input service.UpdateProfileInput
	ferrs := map[string]string{}

	if name := c.FormValue("name"); name != "" {
		if err := profileValidate.Var(name, "max=255"); err != nil {
			ferrs["name"] = "The name may not be greater than 255 characters."
		} else {
			input.Name = &name
		}
	}

	if email := c.FormValue("email"); email != "" {
		if err := profileValidate.Var(email, "email,max=255"); err != nil {
			ferrs["email"] = "The email must be a valid email address."
		} else {
			input.Email = &email
		}
	}

	if password := c.FormValue("password"); password != "" {
		switch {
		case len(password) < 6:
			ferrs["password"] = "The password must be at least 6 characters."
		case password != c.FormValue("password_confirmation"):
			ferrs["password"] = "The password confirmation does not match."
		default:
			input.Password = &password
		}
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		upload, msg := openAvatar(fh)
		if msg != "" {
			ferrs["image"] = msg
		} else {
			input.Avatar = upload
		}
	}

	return input, ferrs
}

func openAvatar(fh *multipart.FileHeader) (*service.AvatarUpload, string) {
	if fh.Size > maxAvatarSize {
		return nil, "The image may not be greater than 2048 kilobytes."
	}

	contentType := fh.Header.Get("Content-Type")
	if !avatarContentTypes[strings.ToLower(contentType)] {
		return nil, "The image must be a file of type: jpeg, png, jpg, gif."
	}

	file, err := fh.Open()
	if err != nil {
		return nil, "The image could not be read."
	}

	return &service.AvatarUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Body:        file,
	}, ""
}
