package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "postboard/internal/errors"
	"postboard/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService    service.AuthService
	profileService service.ProfileService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, profileService service.ProfileService) *AuthHandler {
	return &AuthHandler{authService: authService, profileService: profileService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        interface{} `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} errors.MessageResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{Message: "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(err))
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			// Duplicate email is a validation failure, not a persistence one.
			return c.JSON(http.StatusBadRequest, map[string]string{"email": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Registration failed."})
	}

	return c.JSON(http.StatusCreated, AuthResponse{AccessToken: token, User: user})
}

// Login godoc
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} errors.MessageResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{Message: "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(err))
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// One message for unknown email and wrong password alike.
		return c.JSON(http.StatusUnauthorized, apperrors.MessageResponse{Message: apperrors.ErrInvalidCredentials.Error()})
	}

	return c.JSON(http.StatusOK, AuthResponse{AccessToken: token, User: user})
}

// Logout godoc
// @Summary Revoke all of the caller's tokens
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.MessageResponse
// @Failure 401 {object} errors.MessageResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := h.authService.Logout(c.Request().Context(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: "Logout failed."})
	}

	return c.JSON(http.StatusOK, apperrors.MessageResponse{Message: "Successfully logged out."})
}

// Me godoc
// @Summary Return the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.MessageResponse
// @Router /user [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := h.profileService.Get(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: "failed to load user"})
	}

	return c.JSON(http.StatusOK, user)
}
