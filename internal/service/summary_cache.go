package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/pkg/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const summaryKeyPrefix = "ensayos:summary:"

var errStaleSummary = errors.New("summary computed before the last invalidation")

// SummaryCache stores computed exam summaries between writes. Every Invalidate bumps the exam's
// version; Set only stores a summary whose computation started at the current version, so a
// summary racing with a submission is never written back.
type SummaryCache interface {
	Get(ctx context.Context, examID uint) (*model.ExamSummary, bool)
	Version(ctx context.Context, examID uint) int64
	Set(ctx context.Context, summary *model.ExamSummary, version int64)
	Invalidate(ctx context.Context, examID uint)
}

func summaryKey(examID uint) string {
	return fmt.Sprintf("%s%d", summaryKeyPrefix, examID)
}

func summaryVersionKey(examID uint) string {
	return fmt.Sprintf("%s%d:version", summaryKeyPrefix, examID)
}

// RedisSummaryCache keeps JSON summaries in Redis. Cache failures are logged and treated as misses.
type RedisSummaryCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewRedisSummaryCache(rdb *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{Redis: rdb, TTL: ttl}
}

func (c *RedisSummaryCache) Get(ctx context.Context, examID uint) (*model.ExamSummary, bool) {
	val, err := c.Redis.Get(ctx, summaryKey(examID)).Result()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		logger.Log.Warn("summary cache read failed", zap.Uint("exam_id", examID), zap.Error(err))
		return nil, false
	}

	var summary model.ExamSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		logger.Log.Warn("summary cache entry corrupt", zap.Uint("exam_id", examID), zap.Error(err))
		return nil, false
	}
	return &summary, true
}

// Version returns -1 when Redis cannot be read, which makes the following Set a no-op.
func (c *RedisSummaryCache) Version(ctx context.Context, examID uint) int64 {
	v, err := c.Redis.Get(ctx, summaryVersionKey(examID)).Int64()
	if err == redis.Nil {
		return 0
	} else if err != nil {
		logger.Log.Warn("summary cache version read failed", zap.Uint("exam_id", examID), zap.Error(err))
		return -1
	}
	return v
}

func (c *RedisSummaryCache) Set(ctx context.Context, summary *model.ExamSummary, version int64) {
	if version < 0 {
		return
	}
	val, err := json.Marshal(summary)
	if err != nil {
		return
	}

	versionKey := summaryVersionKey(summary.ExamID)
	err = c.Redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err == redis.Nil {
			current = 0
		} else if err != nil {
			return err
		}
		if current != version {
			return errStaleSummary
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, summaryKey(summary.ExamID), val, c.TTL)
			return nil
		})
		return err
	}, versionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleSummary), errors.Is(err, redis.TxFailedErr):
		logger.Log.Debug("stale summary not cached", zap.Uint("exam_id", summary.ExamID), zap.Int64("version", version))
	default:
		logger.Log.Warn("summary cache write failed", zap.Uint("exam_id", summary.ExamID), zap.Error(err))
	}
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context, examID uint) {
	_, err := c.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, summaryVersionKey(examID))
		pipe.Del(ctx, summaryKey(examID))
		return nil
	})
	if err != nil {
		logger.Log.Warn("summary cache invalidation failed", zap.Uint("exam_id", examID), zap.Error(err))
	}
}

// NoopSummaryCache is used when Redis is disabled.
type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(context.Context, uint) (*model.ExamSummary, bool) {
	return nil, false
}

func (NoopSummaryCache) Version(context.Context, uint) int64 { return 0 }

func (NoopSummaryCache) Set(context.Context, *model.ExamSummary, int64) {}

func (NoopSummaryCache) Invalidate(context.Context, uint) {}
