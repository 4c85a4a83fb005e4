package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ajmalajjuca/Bite-check/logger"
	"github.com/Ajmalajjuca/Bite-check/models"
	"github.com/Ajmalajjuca/Bite-check/utils"
)

type GoalReader interface {
	CalorieGoal(ctx context.Context, userID string) (int, error)
}

type CalorieNotifier interface {
	NotifyCaloriesUpdated(rec *models.DailyCalorieRecord, added int)
}

type CalorieService struct {
	store    CalorieStore
	goals    GoalReader
	notifier CalorieNotifier
	loc      *time.Location
	now      func() time.Time
	log      *logger.Logger
}

// MaxCaloriesPerAdd is the largest single add AddCalories accepts.
const MaxCaloriesPerAdd = 100000

type CalorieServiceOption func(*CalorieService)

// WithClock overrides time.Now, mainly for tests around midnight.
func WithClock(now func() time.Time) CalorieServiceOption {
	return func(s *CalorieService) { s.now = now }
}

func WithNotifier(n CalorieNotifier) CalorieServiceOption {
	return func(s *CalorieService) { s.notifier = n }
}

func NewCalorieService(store CalorieStore, goals GoalReader, loc *time.Location, log *logger.Logger, opts ...CalorieServiceOption) *CalorieService {
	if loc == nil {
		loc = time.Local
	}
	s := &CalorieService{store: store, goals: goals, loc: loc, now: time.Now, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TodayKey is the local calendar day the next add lands on.
func (s *CalorieService) TodayKey() string {
	return utils.DayKey(s.now(), s.loc)
}

// AddCalories adds calories to the signed-in user's total for today.
func (s *CalorieService) AddCalories(ctx context.Context, auth *AuthContext, calories int) (*models.DailyCalorieRecord, error) {
	if !auth.signedIn() {
		return nil, ErrNotSignedIn
	}
	if calories <= 0 {
		return nil, ErrNothingToAdd
	}
	if calories > MaxCaloriesPerAdd {
		return nil, ErrTooManyCalories
	}

	now := s.now()
	today := utils.DayKey(now, s.loc)

	rec, err := s.store.Increment(ctx, auth.UserID, today, calories, now)
	if err != nil {
		s.log.Error("save calories for %s on %s: %v", auth.UserID, today, err)
		return nil, err
	}
	s.log.Info("added %d kcal for %s on %s, total %d", calories, auth.UserID, today, rec.Calories)

	if s.notifier != nil {
		s.notifier.NotifyCaloriesUpdated(rec, calories)
	}
	return rec, nil
}

// ByDate returns the day's record, zero-valued if nothing was added.
func (s *CalorieService) ByDate(ctx context.Context, auth *AuthContext, date string) (*models.DailyCalorieRecord, error) {
	if !auth.signedIn() {
		return nil, ErrNotSignedIn
	}
	if _, err := s.parseDay(date); err != nil {
		return nil, err
	}

	rec, err := s.store.Get(ctx, auth.UserID, date)
	if errors.Is(err, ErrNotFound) {
		return &models.DailyCalorieRecord{
			ID:     models.DailyCalorieKey(auth.UserID, date),
			UserID: auth.UserID,
			Date:   date,
		}, nil
	}
	return rec, err
}

type DailySummary struct {
	Date      string  `json:"date"`
	Calories  int     `json:"calories"`
	Goal      int     `json:"goal"`
	Remaining int     `json:"remaining"`
	Percent   float64 `json:"percent"`
}

// Today is the home screen view: eaten today against the goal.
func (s *CalorieService) Today(ctx context.Context, auth *AuthContext) (*DailySummary, error) {
	rec, err := s.ByDate(ctx, auth, s.TodayKey())
	if err != nil {
		return nil, err
	}
	goal, err := s.goals.CalorieGoal(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}

	out := &DailySummary{Date: rec.Date, Calories: rec.Calories, Goal: goal}
	if goal > rec.Calories {
		out.Remaining = goal - rec.Calories
	}
	out.Percent = pct(rec.Calories, goal)
	return out, nil
}

func (s *CalorieService) parseDay(date string) (time.Time, error) {
	t, err := utils.ParseDay(date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return t, nil
}

func pct(consumed, target int) float64 {
	if target <= 0 {
		return 0
	}
	p := float64(consumed) / float64(target)
	if p > 1 {
		return 1
	}
	return p
}

type CalorieHistory struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Days        []models.DailyCalorieRecord `json:"days"`
	Total       int                         `json:"total"`
	Average     float64                     `json:"average"`
	DaysCounted int                         `json:"days_counted"`
}

const maxHistoryDays = 366

// History lists per-day totals in [from, to]. With includeMissing, days with
// no record appear as zero and count toward the average.
func (s *CalorieService) History(ctx context.Context, auth *AuthContext, from, to string, includeMissing bool) (*CalorieHistory, error) {
	if !auth.signedIn() {
		return nil, ErrNotSignedIn
	}
	start, err := s.parseDay(from)
	if err != nil {
		return nil, err
	}
	end, err := s.parseDay(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: `to` must be on/after `from`", ErrInvalidDate)
	}
	if end.After(start.AddDate(0, 0, maxHistoryDays)) {
		return nil, fmt.Errorf("%w: range is limited to %d days", ErrInvalidDate, maxHistoryDays)
	}

	rows, err := s.store.List(ctx, auth.UserID, from, to)
	if err != nil {
		return nil, err
	}

	out := &CalorieHistory{Days: []models.DailyCalorieRecord{}}
	out.Range.From, out.Range.To = from, to

	if includeMissing {
		idx := make(map[string]models.DailyCalorieRecord, len(rows))
		for _, r := range rows {
			idx[r.Date] = r
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			key := d.Format(utils.DayLayout)
			rec, ok := idx[key]
			if !ok {
				rec = models.DailyCalorieRecord{ID: models.DailyCalorieKey(auth.UserID, key), UserID: auth.UserID, Date: key}
			}
			out.Days = append(out.Days, rec)
		}
	} else {
		out.Days = append([]models.DailyCalorieRecord{}, rows...)
	}

	for _, d := range out.Days {
		out.Total += d.Calories
	}
	out.DaysCounted = len(out.Days)
	if out.DaysCounted > 0 {
		out.Average = float64(out.Total) / float64(out.DaysCounted)
	}
	return out, nil
}

type CalendarDay struct {
	Date           string `json:"date"`
	Weekday        string `json:"day"` // "SUN", "MON", ...
	DayOfMonth     int    `json:"day_of_month"`
	Calories       int    `json:"calories"`
	HasRecord      bool   `json:"has_record"`
	IsToday        bool   `json:"is_today"`
	IsCurrentMonth bool   `json:"is_current_month"`
}

// MonthWeeks returns Sunday-first weeks covering anchor's month, padded with
// the neighbouring months' days, each carrying that day's total.
func (s *CalorieService) MonthWeeks(ctx context.Context, auth *AuthContext, anchor time.Time) ([][]CalendarDay, error) {
	if !auth.signedIn() {
		return nil, ErrNotSignedIn
	}
	anchor = anchor.In(s.loc)
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, s.loc)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, 6-int(last.Weekday()))

	rows, err := s.store.List(ctx, auth.UserID, start.Format(utils.DayLayout), end.Format(utils.DayLayout))
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(rows))
	for _, r := range rows {
		idx[r.Date] = r.Calories
	}

	today := s.TodayKey()
	var weeks [][]CalendarDay
	for d := start; !d.After(end); {
		week := make([]CalendarDay, 0, 7)
		for i := 0; i < 7; i++ {
			key := d.Format(utils.DayLayout)
			cal, ok := idx[key]
			week = append(week, CalendarDay{
				Date:           key,
				Weekday:        strings.ToUpper(d.Format("Mon")),
				DayOfMonth:     d.Day(),
				Calories:       cal,
				HasRecord:      ok,
				IsToday:        key == today,
				IsCurrentMonth: d.Month() == first.Month(),
			})
			d = d.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks, nil
}
