package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "postboard/internal/errors"
	"postboard/internal/service"
)

// CommentHandler handles per-post comment endpoints. Responses are bare
// resources, not the {success,message,data} envelope.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRequest carries the writable comment fields.
type CommentRequest struct {
	Body string `json:"body" form:"body" validate:"required"`
}

// Index godoc
// @Summary List comments for a post
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {array} model.Comment
// @Router /posts/{id}/comments [get]
func (h *CommentHandler) Index(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{Message: "invalid post id"})
	}

	comments, err := h.commentService.ListForPost(c.Request().Context(), postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: "failed to load comments"})
	}

	return c.JSON(http.StatusOK, comments)
}

// Store godoc
// @Summary Create a comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body CommentRequest true "Comment data"
// @Success 201 {object} model.Comment
// @Failure 400 {object} map[string]string
// @Router /posts/{id}/comments [post]
func (h *CommentHandler) Store(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	postID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{Message: "invalid post id"})
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(err))
	}

	comment, err := h.commentService.Create(c.Request().Context(), postID, userID, req.Body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: "failed to create comment"})
	}

	return c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary Update a comment, author only
// @Description A missing comment and a comment owned by another user both return the same 403.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Param request body CommentRequest true "Comment data"
// @Success 200 {object} model.Comment
// @Failure 400 {object} map[string]string
// @Failure 403 {object} errors.MessageResponse
// @Router /posts/{id}/comments/{commentId} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(err))
	}

	postID, commentID, err := commentPath(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, apperrors.MessageResponse{Message: apperrors.ErrCommentNotOwned.Error()})
	}

	comment, err := h.commentService.Update(c.Request().Context(), postID, commentID, userID, req.Body)
	if err != nil {
		if errors.Is(err, apperrors.ErrCommentNotOwned) {
			return c.JSON(http.StatusForbidden, apperrors.MessageResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: "failed to update comment"})
	}

	return c.JSON(http.StatusOK, comment)
}

// Destroy godoc
// @Summary Delete a comment, author only
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} errors.MessageResponse
// @Failure 403 {object} errors.MessageResponse
// @Router /posts/{id}/comments/{commentId} [delete]
func (h *CommentHandler) Destroy(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	postID, commentID, err := commentPath(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, apperrors.MessageResponse{Message: apperrors.ErrCommentNotOwned.Error()})
	}

	if err := h.commentService.Delete(c.Request().Context(), postID, commentID, userID); err != nil {
		if errors.Is(err, apperrors.ErrCommentNotOwned) {
			return c.JSON(http.StatusForbidden, apperrors.MessageResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: "failed to delete comment"})
	}

	return c.JSON(http.StatusOK, apperrors.MessageResponse{Message: "Comment deleted successfully"})
}

func commentPath(c echo.Context) (postID, commentID uint, err error) {
	if postID, err = parseID(c, "id"); err != nil {
		return 0, 0, err
	}
	if commentID, err = parseID(c, "commentId"); err != nil {
		return 0, 0, err
	}
	return postID, commentID, nil
}
