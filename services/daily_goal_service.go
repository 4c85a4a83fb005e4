package services

import (
	"context"
	"errors"
	"time"

	"github.com/Ajmalajjuca/Bite-check/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyGoalService struct {
	db          *gorm.DB
	defaultGoal int
}

func NewDailyGoalService(db *gorm.DB, defaultGoal int) *DailyGoalService {
	return &DailyGoalService{db: db, defaultGoal: defaultGoal}
}

// CalorieGoal returns the user's goal, or the default when none is stored.
func (s *DailyGoalService) CalorieGoal(ctx context.Context, userID string) (int, error) {
	var goal models.DailyGoal
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaultGoal, nil
	}
	if err != nil {
		return 0, classifyPostgres("get goal", err)
	}
	return goal.Calories, nil
}

func (s *DailyGoalService) UpsertCalorieGoal(ctx context.Context, userID string, calories int) (*models.DailyGoal, error) {
	if calories <= 0 {
		return nil, ErrInvalidGoal
	}
	goal := models.DailyGoal{UserID: userID, Calories: calories, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"calories", "updated_at"}),
		}).
		Create(&goal).Error
	if err != nil {
		return nil, classifyPostgres("upsert goal", err)
	}
	return &goal, nil
}
