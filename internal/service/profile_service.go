package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"postboard/internal/cache"
	apperrors "postboard/internal/errors"
	"postboard/internal/model"
	"postboard/internal/repository"
	"postboard/internal/storage"
)

const profileCacheTTL = 5 * time.Minute

// AvatarUpload carries an incoming profile image.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// UpdateProfileInput holds the fields of a profile update. Nil fields are
// left untouched.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
	Avatar   *AvatarUpload
}

// ProfileService exposes the caller's own user record.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (*model.User, error)
	Update(ctx context.Context, userID uint, input UpdateProfileInput) (*model.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
	avatars  storage.AvatarStore
	cache    *cache.Client
}

// NewProfileService builds a ProfileService.
func NewProfileService(userRepo repository.UserRepository, avatars storage.AvatarStore, cache *cache.Client) ProfileService {
	return &profileService{userRepo: userRepo, avatars: avatars, cache: cache}
}

func (s *profileService) cacheKey(id uint) string {
	return fmt.Sprintf("profile:%d", id)
}

func (s *profileService) Get(ctx context.Context, userID uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, profileCacheTTL)
	}
	return user, nil
}

// Update applies the present fields to the caller's record. A new email must
// not belong to another user; a new password is re-hashed; a new avatar
// replaces the stored object, old one deleted first.
func (s *profileService) Update(ctx context.Context, userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Email != nil {
		taken, err := s.userRepo.EmailTaken(ctx, *input.Email, userID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, apperrors.ErrEmailTaken
		}
		user.Email = *input.Email
	}

	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if input.Avatar != nil {
		if s.avatars == nil {
			return nil, errors.New("avatar storage is not configured")
		}
		if user.Image != "" {
			if err := s.avatars.Delete(ctx, user.Image); err != nil {
				return nil, fmt.Errorf("delete old avatar: %w", err)
			}
		}
		key := "profile_images/" + uuid.New().String() + path.Ext(input.Avatar.Filename)
		if err := s.avatars.Put(ctx, key, input.Avatar.ContentType, input.Avatar.Body); err != nil {
			return nil, fmt.Errorf("store avatar: %w", err)
		}
		user.Image = key
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return user, nil
}
