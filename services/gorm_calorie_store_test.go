package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestGormCalorieStoreIncrement(t *testing.T) {
	ctx := context.Background()
	store := NewGormCalorieStore(newTestDB(t))
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if _, err := store.Get(ctx, "u1", "2024-05-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	rec, err := store.Increment(ctx, "u1", "2024-05-01", 500, at)
	if err != nil {
		t.Fatalf("first increment: %v", err)
	}
	if rec.Calories != 500 {
		t.Fatalf("expected 500, got %d", rec.Calories)
	}

	rec, err = store.Increment(ctx, "u1", "2024-05-01", 350, at.Add(time.Hour))
	if err != nil {
		t.Fatalf("second increment: %v", err)
	}
	if rec.Calories != 850 || rec.ID != "u1_2024-05-01" || rec.UserID != "u1" || rec.Date != "2024-05-01" {
		t.Fatalf("unexpected record %+v", rec)
	}

	got, err := store.Get(ctx, "u1", "2024-05-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Calories != 850 || !got.UpdatedAt.Equal(at.Add(time.Hour)) {
		t.Fatalf("unexpected stored record %+v", got)
	}

	rec, err = store.Increment(ctx, "u1", "2024-05-02", 200, at)
	if err != nil || rec.Calories != 200 {
		t.Fatalf("expected fresh day at 200, got %+v (%v)", rec, err)
	}
}

func TestGormCalorieStoreConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	store := NewGormCalorieStore(newTestDB(t))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Increment(ctx, "u1", "2024-05-01", 10, time.Now()); err != nil {
				t.Errorf("increment: %v", err)
			}
		}()
	}
	wg.Wait()

	rec, err := store.Get(ctx, "u1", "2024-05-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Calories != 200 {
		t.Fatalf("expected 200, got %d", rec.Calories)
	}
}

func TestGormCalorieStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewGormCalorieStore(newTestDB(t))
	at := time.Now()

	for _, d := range []string{"2024-05-03", "2024-05-01", "2024-05-10", "2024-04-30"} {
		if _, err := store.Increment(ctx, "u1", d, 100, at); err != nil {
			t.Fatalf("increment %s: %v", d, err)
		}
	}
	_, _ = store.Increment(ctx, "u2", "2024-05-02", 100, at)

	recs, err := store.List(ctx, "u1", "2024-05-01", "2024-05-10")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2024-05-01", "2024-05-03", "2024-05-10"}
	if len(recs) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(recs))
	}
	for i, d := range want {
		if recs[i].Date != d {
			t.Fatalf("record %d: expected %s, got %s", i, d, recs[i].Date)
		}
	}
}
