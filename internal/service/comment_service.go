package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "postboard/internal/errors"
	"postboard/internal/model"
	"postboard/internal/repository"
)

// CommentService exposes per-post comment CRUD with author-only mutation.
type CommentService interface {
	ListForPost(ctx context.Context, postID uint) ([]model.Comment, error)
	Create(ctx context.Context, postID, userID uint, body string) (*model.Comment, error)
	Update(ctx context.Context, postID, commentID, callerID uint, body string) (*model.Comment, error)
	Delete(ctx context.Context, postID, commentID, callerID uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService builds a CommentService.
func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (s *commentService) ListForPost(ctx context.Context, postID uint) ([]model.Comment, error) {
	comments, err := s.commentRepo.ListForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

func (s *commentService) Create(ctx context.Context, postID, userID uint, body string) (*model.Comment, error) {
	comment := &model.Comment{
		PostID: postID,
		UserID: userID,
		Body:   body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Update edits a comment. A missing comment and a comment owned by another
// user both return ErrCommentNotOwned so the caller cannot probe existence.
func (s *commentService) Update(ctx context.Context, postID, commentID, callerID uint, body string) (*model.Comment, error) {
	comment, err := s.authorize(ctx, postID, commentID, callerID)
	if err != nil {
		return nil, err
	}

	comment.Body = body
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment under the same lookup-and-authorize contract as
// Update.
func (s *commentService) Delete(ctx context.Context, postID, commentID, callerID uint) error {
	comment, err := s.authorize(ctx, postID, commentID, callerID)
	if err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, comment)
}

func (s *commentService) authorize(ctx context.Context, postID, commentID, callerID uint) (*model.Comment, error) {
	comment, err := s.commentRepo.FindForPost(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotOwned
		}
		return nil, err
	}
	if comment.UserID != callerID {
		return nil, apperrors.ErrCommentNotOwned
	}
	return comment, nil
}
