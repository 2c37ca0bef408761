package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "postboard/internal/errors"
	"postboard/internal/model"
	"postboard/internal/repository"
)

// PostService exposes post CRUD.
type PostService interface {
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Create(ctx context.Context, userID uint, title, body string) (*model.Post, error)
	Update(ctx context.Context, id uint, title, body string) (*model.Post, error)
	Delete(ctx context.Context, id uint) error
}

type postService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
}

// NewPostService builds a PostService.
func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository) PostService {
	return &postService{postRepo: postRepo, likeRepo: likeRepo}
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postRepo.ListWithRelations(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

// Get returns the post with its like count attached.
func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	count, err := s.likeRepo.CountForPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	post.LikesCount = count
	return post, nil
}

func (s *postService) Create(ctx context.Context, userID uint, title, body string) (*model.Post, error) {
	post := &model.Post{
		Title:  title,
		Body:   body,
		UserID: userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update edits any post by id. There is no ownership check: any
// authenticated user may edit any post. That matches the API contract this
// service implements; callers must not assume author-only semantics.
func (s *postService) Update(ctx context.Context, id uint, title, body string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	post.Title = title
	post.Body = body
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes any post by id, with the same unchecked-ownership contract
// as Update.
func (s *postService) Delete(ctx context.Context, id uint) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return err
	}
	return s.postRepo.Delete(ctx, post)
}
