package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/Ajmalajjuca/Bite-check/models"
)

var errCalorieOverflow = errors.New("calorie total overflows int")

// MemoryCalorieStore is a process-local store for development and tests.
type MemoryCalorieStore struct {
	mu      sync.Mutex
	records map[string]models.DailyCalorieRecord
}

func NewMemoryCalorieStore() *MemoryCalorieStore {
	return &MemoryCalorieStore{records: make(map[string]models.DailyCalorieRecord)}
}

func (s *MemoryCalorieStore) Get(_ context.Context, userID, date string) (*models.DailyCalorieRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[models.DailyCalorieKey(userID, date)]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryCalorieStore) Increment(ctx context.Context, userID, date string, delta int, at time.Time) (*models.DailyCalorieRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.DailyCalorieKey(userID, date)
	rec := s.records[key]
	if delta > 0 && rec.Calories > math.MaxInt-delta {
		return nil, &StoreError{Kind: StoreFailure, Op: "increment calories", Err: errCalorieOverflow}
	}
	rec.ID = key
	rec.UserID = userID
	rec.Date = date
	rec.Calories += delta
	rec.UpdatedAt = at
	s.records[key] = rec

	return &rec, nil
}

func (s *MemoryCalorieStore) List(_ context.Context, userID, from, to string) ([]models.DailyCalorieRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.DailyCalorieRecord
	for _, rec := range s.records {
		// YYYY-MM-DD compares correctly as a string
		if rec.UserID == userID && rec.Date >= from && rec.Date <= to {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
