package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"postboard/internal/auth"
	apperrors "postboard/internal/errors"
)

// SuccessResponse is the {success:true, message, data} envelope used by the
// post and profile endpoints. Auth, comment and like endpoints return bare
// resources instead; the mixed shapes are part of the API contract.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func successResponse(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, SuccessResponse{Success: true, Message: message, Data: data})
}

func errorResponse(c echo.Context, status int, message interface{}) error {
	return c.JSON(status, apperrors.NewErrorResponse(message))
}

// currentUserID extracts the authenticated caller from the JWT middleware.
func currentUserID(c echo.Context) (uint, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok || claims == nil {
		return 0, errors.New("missing authenticated identity")
	}
	return claims.UserID, nil
}

// fieldErrors converts validator failures into a per-field message map,
// e.g. {"title": "The title field is required."}.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["error"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		out[field] = fieldMessage(field, fe)
	}
	return out
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
