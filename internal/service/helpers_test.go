package service

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/Mochytk/INF225-Informagicos/internal/config"
	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/internal/repository"
	"github.com/Mochytk/INF225-Informagicos/internal/testutil"
	"gorm.io/gorm"
)

// spyCache keeps summaries in memory with the same version rule as the Redis cache and records
// invalidations. beforeSet runs once, right before the next Set.
type spyCache struct {
	mu          sync.Mutex
	entries     map[uint]*model.ExamSummary
	versions    map[uint]int64
	invalidated []uint
	beforeSet   func()
}

func newSpyCache() *spyCache {
	return &spyCache{entries: make(map[uint]*model.ExamSummary), versions: make(map[uint]int64)}
}

func (c *spyCache) Get(_ context.Context, examID uint) (*model.ExamSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[examID]
	return s, ok
}

func (c *spyCache) Version(_ context.Context, examID uint) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[examID]
}

func (c *spyCache) Set(_ context.Context, s *model.ExamSummary, version int64) {
	c.mu.Lock()
	hook := c.beforeSet
	c.beforeSet = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[s.ExamID] != version {
		return
	}
	c.entries[s.ExamID] = s
}

func (c *spyCache) Invalidate(_ context.Context, examID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, examID)
	c.versions[examID]++
	c.invalidated = append(c.invalidated, examID)
}

type fixture struct {
	cfg        *config.Config
	db         *gorm.DB
	cache      *spyCache
	submission *SubmissionService
	summary    *SummaryService
	review     *ReviewService
	exam       *ExamService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testutil.Config(t)
	db := testutil.OpenDB(t, &cfg.Database)
	cache := newSpyCache()

	examRepo := repository.NewExamRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	resultRepo := repository.NewResultRepository(db)
	tagRepo := repository.NewTagRepository(db)

	return &fixture{
		cfg:        cfg,
		db:         db,
		cache:      cache,
		submission: NewSubmissionService(examRepo, questionRepo, resultRepo, cache),
		summary:    NewSummaryService(examRepo, questionRepo, resultRepo, repository.NewSummaryRepository(db), cache),
		review:     NewReviewService(examRepo, questionRepo, resultRepo, cache),
		exam:       NewExamService(examRepo, questionRepo, tagRepo, NewStorageService(cfg), cache),
	}
}

func (f *fixture) countRows(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
