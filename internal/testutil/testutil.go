// Package testutil builds in-memory databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Mochytk/INF225-Informagicos/internal/config"
	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/pkg/database"
	"gorm.io/gorm"
)

const JWTSecret = "test-secret-with-at-least-32-characters!"

// Config returns a configuration suitable for tests: sqlite, local storage in a temp dir,
// no redis, no tracing and a generous rate limit.
func Config(tb testing.TB) *config.Config {
	tb.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: "0", Mode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: memoryDSN(tb)},
		JWT:      config.JWTConfig{Secret: JWTSecret, ExpireTime: time.Hour},
		Storage: config.StorageConfig{
			Type:          "local",
			LocalPath:     tb.TempDir(),
			MaxImageBytes: 1 << 20,
		},
		Redis:     config.RedisConfig{SummaryTTLSeconds: 60},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		RateLimit: config.RateLimitConfig{MaxRequests: 100000, WindowMinutes: 1},
	}
}

func memoryDSN(tb testing.TB) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	return fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
}

// NewDB opens a migrated in-memory sqlite database private to the test.
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	return OpenDB(tb, &Config(tb).Database)
}

// OpenDB opens and migrates the database described by cfg.
func OpenDB(tb testing.TB, cfg *config.DatabaseConfig) *gorm.DB {
	tb.Helper()
	db, err := database.Open(cfg)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	// one connection keeps the in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func CreateUser(tb testing.TB, db *gorm.DB, username string, role model.UserRole) *model.User {
	tb.Helper()
	user := &model.User{
		Username: username,
		Name:     username,
		Email:    username + "@example.test",
		Password: "not-a-real-hash",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		tb.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func CreateTag(tb testing.TB, db *gorm.DB, name string) *model.Tag {
	tb.Helper()
	tag := &model.Tag{Name: name}
	if err := db.Create(tag).Error; err != nil {
		tb.Fatalf("create tag %s: %v", name, err)
	}
	return tag
}

func CreateExam(tb testing.TB, db *gorm.DB, title string) *model.Exam {
	tb.Helper()
	exam := &model.Exam{Title: title, Subject: "Matemática", Course: "4° Medio"}
	if err := db.Create(exam).Error; err != nil {
		tb.Fatalf("create exam %s: %v", title, err)
	}
	return exam
}

// CreateChoiceQuestion adds a single-choice question whose first option is the correct one.
func CreateChoiceQuestion(tb testing.TB, db *gorm.DB, examID uint, statement string, options []string, tags ...model.Tag) *model.Question {
	tb.Helper()
	q := &model.Question{
		ExamID:     examID,
		Statement:  statement,
		Type:       model.QuestionTypeSingleChoice,
		Difficulty: model.DefaultDifficulty,
	}
	for i, text := range options {
		q.Options = append(q.Options, model.Option{Text: text, IsCorrect: i == 0})
	}
	if err := db.Create(q).Error; err != nil {
		tb.Fatalf("create question: %v", err)
	}
	if len(tags) > 0 {
		if err := db.Model(q).Association("Tags").Append(tags); err != nil {
			tb.Fatalf("tag question: %v", err)
		}
	}
	return q
}

func CreateOpenQuestion(tb testing.TB, db *gorm.DB, examID uint, statement string) *model.Question {
	tb.Helper()
	q := &model.Question{
		ExamID:     examID,
		Statement:  statement,
		Type:       model.QuestionTypeOpen,
		Difficulty: model.DefaultDifficulty,
	}
	if err := db.Create(q).Error; err != nil {
		tb.Fatalf("create question: %v", err)
	}
	return q
}
