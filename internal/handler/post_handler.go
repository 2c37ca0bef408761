package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "postboard/internal/errors"
	"postboard/internal/service"
)

// PostHandler handles post CRUD endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest carries the writable post fields, shared by store and update.
type PostRequest struct {
	Title string `json:"title" form:"title" validate:"required,max=255"`
	Body  string `json:"body" form:"body" validate:"required"`
}

// Index godoc
// @Summary List all posts with owner, comments and likes
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Router /posts [get]
func (h *PostHandler) Index(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return successResponse(c, http.StatusOK, "Posts retrieved successfully", posts)
}

// Show godoc
// @Summary Get one post with its like count
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Show(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusNotFound, apperrors.ErrPostNotFound.Error())
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			return errorResponse(c, http.StatusNotFound, err.Error())
		}
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return successResponse(c, http.StatusOK, "Post retrieved successfully", post)
}

// Store godoc
// @Summary Create a post owned by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostRequest true "Post data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.MessageResponse
// @Router /posts [post]
func (h *PostHandler) Store(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, fieldErrors(err))
	}

	post, err := h.postService.Create(c.Request().Context(), userID, req.Title, req.Body)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return successResponse(c, http.StatusCreated, "Post created successfully", post)
}

// Update godoc
// @Summary Update a post by id
// @Description Any authenticated user may update any post; there is no ownership check on this endpoint.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body PostRequest true "Post data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, fieldErrors(err))
	}

	id, err := parseID(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusNotFound, apperrors.ErrPostNotFound.Error())
	}

	post, err := h.postService.Update(c.Request().Context(), id, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			return errorResponse(c, http.StatusNotFound, err.Error())
		}
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return successResponse(c, http.StatusOK, "Post updated successfully", post)
}

// Destroy godoc
// @Summary Delete a post by id
// @Description Any authenticated user may delete any post; there is no ownership check on this endpoint.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Destroy(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusNotFound, apperrors.ErrPostNotFound.Error())
	}

	if err := h.postService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			return errorResponse(c, http.StatusNotFound, err.Error())
		}
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return successResponse(c, http.StatusOK, "Post deleted successfully", nil)
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
