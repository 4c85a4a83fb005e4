package models

import "time"

// DailyCalorieRecord is the running calorie total of one user on one local
// calendar day. ID is DailyCalorieKey(UserID, Date).
type DailyCalorieRecord struct {
	ID        string    `gorm:"primaryKey;type:varchar(128)" json:"-" dynamodbav:"id"`
	UserID    string    `gorm:"index:idx_calories_user_date,priority:1;not null;type:varchar(36)" json:"userId" dynamodbav:"userId"`
	Date      string    `gorm:"index:idx_calories_user_date,priority:2;not null;type:char(10)" json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Calories  int       `gorm:"not null;default:0" json:"calories" dynamodbav:"calories"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

func (DailyCalorieRecord) TableName() string { return "calories" }

func DailyCalorieKey(userID, date string) string {
	return userID + "_" + date
}
