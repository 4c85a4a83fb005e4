package services

import (
	"context"
	"time"

	"github.com/Ajmalajjuca/Bite-check/models"
)

// CalorieStore persists DailyCalorieRecords keyed by (userID, date).
// Increment must be atomic: concurrent increments for the same key all land.
type CalorieStore interface {
	// Get returns ErrNotFound when the day has no record.
	Get(ctx context.Context, userID, date string) (*models.DailyCalorieRecord, error)
	// Increment adds delta to the day's total, creating the record if needed,
	// and returns the record after the write.
	Increment(ctx context.Context, userID, date string, delta int, at time.Time) (*models.DailyCalorieRecord, error)
	// List returns the records with from <= date <= to, oldest first.
	List(ctx context.Context, userID, from, to string) ([]models.DailyCalorieRecord, error)
}
