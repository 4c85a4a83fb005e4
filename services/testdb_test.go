package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Ajmalajjuca/Bite-check/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the app schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// each connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.DailyGoal{},
		&models.DailyCalorieRecord{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type sentCode struct {
	to   string
	code string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentCode
	err  error
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentCode{to: to, code: code})
	return nil
}

func (m *fakeMailer) last(t *testing.T) sentCode {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("no verification code was sent")
	}
	return m.sent[len(m.sent)-1]
}
