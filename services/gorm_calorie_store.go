package services

import (
	"context"
	"errors"
	"time"

	"github.com/Ajmalajjuca/Bite-check/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCalorieStore keeps records in the Postgres "calories" table.
type GormCalorieStore struct{ db *gorm.DB }

func NewGormCalorieStore(db *gorm.DB) *GormCalorieStore { return &GormCalorieStore{db: db} }

func (s *GormCalorieStore) Get(ctx context.Context, userID, date string) (*models.DailyCalorieRecord, error) {
	var rec models.DailyCalorieRecord
	err := s.db.WithContext(ctx).
		Where("id = ?", models.DailyCalorieKey(userID, date)).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classifyPostgres("get calories", err)
	}
	return &rec, nil
}

// Increment is a single INSERT ... ON CONFLICT DO UPDATE, so the database
// serializes concurrent adds for the same day.
func (s *GormCalorieStore) Increment(ctx context.Context, userID, date string, delta int, at time.Time) (*models.DailyCalorieRecord, error) {
	rec := models.DailyCalorieRecord{
		ID:        models.DailyCalorieKey(userID, date),
		UserID:    userID,
		Date:      date,
		Calories:  delta,
		UpdatedAt: at,
	}

	err := s.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"calories":   gorm.Expr(`"calories"."calories" + ?`, delta),
					"updated_at": at,
				}),
			},
			clause.Returning{},
		).
		Create(&rec).Error
	if err != nil {
		return nil, classifyPostgres("increment calories", err)
	}
	return &rec, nil
}

func (s *GormCalorieStore) List(ctx context.Context, userID, from, to string) ([]models.DailyCalorieRecord, error) {
	var rows []models.DailyCalorieRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classifyPostgres("list calories", err)
	}
	return rows, nil
}
