package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "postboard/internal/errors"
	"postboard/internal/model"
	"postboard/internal/repository"
)

// LikeService exposes the per-post like relation.
type LikeService interface {
	ListForPost(ctx context.Context, postID uint) ([]model.Like, error)
	Like(ctx context.Context, userID, postID uint) (*model.Like, error)
	Unlike(ctx context.Context, userID, postID uint) error
}

type likeService struct {
	likeRepo repository.LikeRepository
}

// NewLikeService builds a LikeService.
func NewLikeService(likeRepo repository.LikeRepository) LikeService {
	return &likeService{likeRepo: likeRepo}
}

func (s *likeService) ListForPost(ctx context.Context, postID uint) ([]model.Like, error) {
	likes, err := s.likeRepo.ListForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []model.Like{}
	}
	return likes, nil
}

// Like creates the (user, post) relation. An existing like yields
// ErrAlreadyLiked; concurrent duplicates that slip past the existence check
// are stopped by the unique index on (user_id, post_id).
func (s *likeService) Like(ctx context.Context, userID, postID uint) (*model.Like, error) {
	exists, err := s.likeRepo.Exists(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyLiked
	}

	like := &model.Like{
		UserID: userID,
		PostID: postID,
	}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyLiked
		}
		return nil, err
	}
	return like, nil
}

// Unlike removes the caller's like on the post.
func (s *likeService) Unlike(ctx context.Context, userID, postID uint) error {
	like, err := s.likeRepo.FindByUserAndPost(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrLikeNotFound
		}
		return err
	}
	return s.likeRepo.Delete(ctx, like)
}
