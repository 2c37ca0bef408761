package errors

import "errors"

var (
	// ErrPostNotFound is returned when a post does not exist.
	ErrPostNotFound = errors.New("Post not found")
	// ErrLikeNotFound is returned when the caller has no like on the post.
	ErrLikeNotFound = errors.New("Like not found")
	// ErrAlreadyLiked is returned when the caller already liked the post.
	ErrAlreadyLiked = errors.New("You have already liked this post")
	// ErrCommentNotOwned covers both a missing comment and a comment owned by
	// someone else. The two cases are deliberately indistinguishable so the
	// response does not leak whether the comment exists.
	ErrCommentNotOwned = errors.New("Unauthorized or comment not found")
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike, preventing account enumeration.
	ErrInvalidCredentials = errors.New("Invalid login credentials.")
	// ErrEmailTaken is returned when a registration or profile update would
	// reuse another account's email.
	ErrEmailTaken = errors.New("The email has already been taken.")
)

// ErrorResponse is the {success:false, message} error envelope used by the
// post and profile endpoints.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message interface{} `json:"message"`
}

// MessageResponse is the bare {message} shape used by the auth, comment and
// like endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewErrorResponse builds an ErrorResponse. Message may be a string or a
// field-error map.
func NewErrorResponse(message interface{}) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
