package models

import "time"

// DailyGoal holds each user's daily calorie target.
type DailyGoal struct {
	UserID    string    `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	Calories  int       `gorm:"not null" json:"calories"` // e.g. 2088 kcal
	UpdatedAt time.Time `json:"updated_at"`
}
