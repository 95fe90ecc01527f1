package services

import (
	"context"
	"testing"
	"time"

	"github.com/KRAadithiya/Meeting-Summarizer/models"
)

func TestResultCacheNilClientIsMiss(t *testing.T) {
	cache := NewResultCache(nil, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "m1", &models.MergedResult{Summary: "s"})
	if _, ok := cache.Get(ctx, "m1"); ok {
		t.Fatal("nil-backed cache must always miss")
	}
	cache.Invalidate(ctx, "m1")
}

func TestResultCacheNilReceiver(t *testing.T) {
	var cache *ResultCache
	ctx := context.Background()

	cache.Set(ctx, "m1", &models.MergedResult{})
	if _, ok := cache.Get(ctx, "m1"); ok {
		t.Fatal("nil cache must always miss")
	}
	cache.Invalidate(ctx, "m1")
}
