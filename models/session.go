package models

import "time"

// Session is one signed-in device. Tokens carry its ID and stop working
// once Active is false.
type Session struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"index;not null;type:varchar(36)"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	RevokedAt *time.Time
}
