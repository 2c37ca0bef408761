package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"postboard/internal/auth"
	"postboard/internal/handler"
)

// stubTokenStore returns a fixed revocation answer.
type stubTokenStore struct {
	revoked bool
	err     error
}

func (s *stubTokenStore) RevokeAll(_ context.Context, _ uint) error { return nil }

func (s *stubTokenStore) IsRevoked(_ context.Context, _ uint, _ int64) (bool, error) {
	return s.revoked, s.err
}

var _ auth.TokenStoreInterface = (*stubTokenStore)(nil)

func newTestRouter(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) *echo.Echo {
	e := echo.New()
	Register(
		e,
		jwtService,
		tokenStore,
		handler.NewAuthHandler(nil, nil),
		handler.NewProfileHandler(nil),
		handler.NewPostHandler(nil),
		handler.NewCommentHandler(nil),
		handler.NewLikeHandler(nil),
	)
	return e
}

func TestSecuredRoutes_RejectRevokedToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	e := newTestRouter(jwtService, &stubTokenStore{revoked: true})

	token, err := jwtService.GenerateToken(1, "alice@example.com")
	assert.NoError(t, err)

	// The token is well-formed and signed, but the user has logged out.
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSecuredRoutes_RejectTamperedToken(t *testing.T) {
	e := newTestRouter(auth.NewJWTService("test-secret"), &stubTokenStore{})

	token, err := auth.NewJWTService("other-secret").GenerateToken(1, "alice@example.com")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestParseTokenFunc_AcceptsLiveToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	parse := parseTokenFunc(jwtService, &stubTokenStore{revoked: false})

	token, err := jwtService.GenerateToken(7, "alice@example.com")
	assert.NoError(t, err)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user", nil), httptest.NewRecorder())

	got, err := parse(c, token)
	assert.NoError(t, err)
	claims, ok := got.(*auth.Claims)
	assert.True(t, ok)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestParseTokenFunc_RevokedTokenIsUnauthorized(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	parse := parseTokenFunc(jwtService, &stubTokenStore{revoked: true})

	token, err := jwtService.GenerateToken(7, "alice@example.com")
	assert.NoError(t, err)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user", nil), httptest.NewRecorder())

	_, err = parse(c, token)
	assert.Error(t, err)

	var httpErr *echo.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
