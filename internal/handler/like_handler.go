package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "postboard/internal/errors"
	"postboard/internal/service"
)

// LikeHandler handles the per-post like endpoints. Responses use the
// {message, data} shape.
type LikeHandler struct {
	likeService service.LikeService
}

// NewLikeHandler creates a new like handler.
func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// LikeResponse is the {message, data} shape of the like endpoints.
type LikeResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Index godoc
// @Summary List likes for a post
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} LikeResponse
// @Router /posts/{id}/likes [get]
func (h *LikeHandler) Index(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{Message: "invalid post id"})
	}

	likes, err := h.likeService.ListForPost(c.Request().Context(), postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: "failed to load likes"})
	}

	return c.JSON(http.StatusOK, LikeResponse{Message: "Likes fetched successfully", Data: likes})
}

// Store godoc
// @Summary Like a post
// @Description Liking an already liked post returns 400; this is an explicit idempotence guard, not an upsert.
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 201 {object} LikeResponse
// @Failure 400 {object} errors.MessageResponse
// @Router /posts/{id}/like [post]
func (h *LikeHandler) Store(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	postID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{Message: "invalid post id"})
	}

	like, err := h.likeService.Like(c.Request().Context(), userID, postID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyLiked) {
			return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: "failed to like post"})
	}

	return c.JSON(http.StatusCreated, LikeResponse{Message: "Post liked successfully", Data: like})
}

// Destroy godoc
// @Summary Remove the caller's like from a post
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} LikeResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/{id}/like [delete]
func (h *LikeHandler) Destroy(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	postID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, apperrors.MessageResponse{Message: apperrors.ErrLikeNotFound.Error()})
	}

	if err := h.likeService.Unlike(c.Request().Context(), userID, postID); err != nil {
		if errors.Is(err, apperrors.ErrLikeNotFound) {
			return c.JSON(http.StatusNotFound, apperrors.MessageResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: "failed to unlike post"})
	}

	return c.JSON(http.StatusOK, LikeResponse{Message: "Post unliked successfully"})
}
