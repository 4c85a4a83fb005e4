package models

import (
	"strings"
	"time"
)

type User struct {
	ID              string `gorm:"primaryKey;type:varchar(36)"`
	Email           string `gorm:"uniqueIndex;not null"`
	Password        string `gorm:"not null"`
	FirstName       string
	LastName        string
	ProfileImageURL string
	Verified        bool `gorm:"not null;default:false"`

	// pending email-code verification
	VerificationCode    string `gorm:"size:12"`
	VerificationExpires time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName falls back to the email when no name is set.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
