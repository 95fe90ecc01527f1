package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/logger"
	"github.com/KRAadithiya/Meeting-Summarizer/models"
)

// ResultCache keeps completed merged results in Redis so the summary read
// path skips the store for hot meetings. All methods are best-effort and
// nil-safe; a nil cache is simply a permanent miss.
type ResultCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResultCache(rdb *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResultCache{rdb: rdb, ttl: ttl}
}

func cacheKey(meetingID string) string {
	return "summary:" + meetingID
}

// Get returns the cached result for a meeting, or a miss.
func (c *ResultCache) Get(ctx context.Context, meetingID string) (*models.MergedResult, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(meetingID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("result cache read failed", "meeting_id", meetingID, "error", err)
		}
		return nil, false
	}
	var result models.MergedResult
	if err := json.Unmarshal(raw, &result); err != nil {
		logger.Warn("result cache entry corrupt", "meeting_id", meetingID, "error", err)
		return nil, false
	}
	return &result, true
}

// Set stores a completed result with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, meetingID string, result *models.MergedResult) {
	if c == nil || c.rdb == nil || result == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(meetingID), raw, c.ttl).Err(); err != nil {
		logger.Warn("result cache write failed", "meeting_id", meetingID, "error", err)
	}
}

// Invalidate drops the cached result, e.g. when a meeting is reprocessed
// or deleted.
func (c *ResultCache) Invalidate(ctx context.Context, meetingID string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey(meetingID)).Err(); err != nil {
		logger.Warn("result cache invalidation failed", "meeting_id", meetingID, "error", err)
	}
}
