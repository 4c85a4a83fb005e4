package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ajmalajjuca/Bite-check/models"
	"github.com/Ajmalajjuca/Bite-check/utils"

	"gorm.io/gorm"
)

type ImageUploader interface {
	UploadImage(ctx context.Context, img *utils.ImageData, filenamePrefix string) (string, error)
}

type UserService struct {
	db       *gorm.DB
	uploader ImageUploader // nil when S3 is not configured
}

func NewUserService(db *gorm.DB, uploader ImageUploader) *UserService {
	return &UserService{db: db, uploader: uploader}
}

type Profile struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	ImageURL  string `json:"image_url"`
}

type ProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (s *UserService) GetProfile(ctx context.Context, auth *AuthContext) (*Profile, error) {
	user, err := s.load(ctx, auth)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, auth *AuthContext, input ProfileInput) (*Profile, error) {
	user, err := s.load(ctx, auth)
	if err != nil {
		return nil, err
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return toProfile(user), nil
}

func (s *UserService) UpdateProfileImage(ctx context.Context, auth *AuthContext, img *utils.ImageData) (*Profile, error) {
	if s.uploader == nil {
		return nil, ErrNoUploader
	}
	user, err := s.load(ctx, auth)
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.UploadImage(ctx, img, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	user.ProfileImageURL = url
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return toProfile(user), nil
}

func (s *UserService) load(ctx context.Context, auth *AuthContext) (*models.User, error) {
	if !auth.signedIn() {
		return nil, ErrNotSignedIn
	}
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", auth.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func toProfile(u *models.User) *Profile {
	return &Profile{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.DisplayName(),
		ImageURL:  u.ProfileImageURL,
	}
}
