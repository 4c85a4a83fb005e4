package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Ajmalajjuca/Bite-check/models"
	"github.com/Ajmalajjuca/Bite-check/utils"
)

type fakeUploader struct {
	prefix string
}

func (u *fakeUploader) UploadImage(_ context.Context, img *utils.ImageData, prefix string) (string, error) {
	u.prefix = prefix
	return "https://cdn.test/profile-pictures/" + prefix + img.Extension(), nil
}

func TestUserServiceProfile(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	if err := db.Create(&models.User{ID: "user-a", Email: "ada@example.com", Password: "x", Verified: true}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	uploader := &fakeUploader{}
	svc := NewUserService(db, uploader)
	auth := &AuthContext{UserID: "user-a"}

	p, err := svc.GetProfile(ctx, auth)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.FullName != "ada@example.com" {
		t.Fatalf("expected email as display name, got %q", p.FullName)
	}

	first, last := "  Ada ", "Lovelace"
	p, err = svc.UpdateProfile(ctx, auth, ProfileInput{FirstName: &first, LastName: &last})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.FirstName != "Ada" || p.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected profile %+v", p)
	}

	// nil fields are left alone
	p, err = svc.UpdateProfile(ctx, auth, ProfileInput{})
	if err != nil || p.LastName != "Lovelace" {
		t.Fatalf("unexpected profile %+v (%v)", p, err)
	}

	p, err = svc.UpdateProfileImage(ctx, auth, &utils.ImageData{MimeType: "image/png", Bytes: []byte("x")})
	if err != nil {
		t.Fatalf("update image: %v", err)
	}
	if uploader.prefix != "user-a" || p.ImageURL != "https://cdn.test/profile-pictures/user-a.png" {
		t.Fatalf("unexpected image url %q", p.ImageURL)
	}
	p, _ = svc.GetProfile(ctx, auth)
	if p.ImageURL == "" {
		t.Fatal("image url not persisted")
	}
}

func TestUserServiceErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newTestDB(t), nil)

	if _, err := svc.GetProfile(ctx, &AuthContext{UserID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetProfile(ctx, nil); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if _, err := svc.UpdateProfileImage(ctx, &AuthContext{UserID: "ghost"}, &utils.ImageData{}); !errors.Is(err, ErrNoUploader) {
		t.Fatalf("expected ErrNoUploader, got %v", err)
	}
}
