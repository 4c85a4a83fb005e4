package services

import (
	"context"
	"errors"
	"testing"
)

func TestDailyGoalService(t *testing.T) {
	ctx := context.Background()
	svc := NewDailyGoalService(newTestDB(t), 2088)

	goal, err := svc.CalorieGoal(ctx, "user-a")
	if err != nil {
		t.Fatalf("goal: %v", err)
	}
	if goal != 2088 {
		t.Fatalf("expected default 2088, got %d", goal)
	}

	for _, want := range []int{1800, 2500} {
		saved, err := svc.UpsertCalorieGoal(ctx, "user-a", want)
		if err != nil {
			t.Fatalf("upsert %d: %v", want, err)
		}
		if saved.Calories != want {
			t.Fatalf("expected saved %d, got %d", want, saved.Calories)
		}
		goal, err = svc.CalorieGoal(ctx, "user-a")
		if err != nil || goal != want {
			t.Fatalf("expected %d, got %d (%v)", want, goal, err)
		}
	}

	if goal, _ := svc.CalorieGoal(ctx, "user-b"); goal != 2088 {
		t.Fatalf("other user should keep the default, got %d", goal)
	}
	for _, bad := range []int{0, -100} {
		if _, err := svc.UpsertCalorieGoal(ctx, "user-a", bad); !errors.Is(err, ErrInvalidGoal) {
			t.Fatalf("upsert %d: expected ErrInvalidGoal, got %v", bad, err)
		}
	}
}
