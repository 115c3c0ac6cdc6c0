package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	trendingKey      = "confessions:trending"
	dailyCountPrefix = "stats:daily:%s"
)

const (
	// TrendingTTL is short: the feed is cheap to rebuild and likes move fast.
	TrendingTTL   = 30 * time.Second
	DailyCountTTL = time.Minute
)

// TrendingKey is the cache key for the trending confessions list.
func TrendingKey() string {
	return trendingKey
}

// DailyCountKey is the cache key for one UTC date's creation counter.
func DailyCountKey(date string) string {
	return fmt.Sprintf(dailyCountPrefix, date)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateTrending drops the cached trending list. Called on every write
// that can change the ranking (create, reaction).
func InvalidateTrending(ctx context.Context) {
	Invalidate(ctx, trendingKey)
}

// InvalidateDailyCount drops the cached counter for the given date.
func InvalidateDailyCount(ctx context.Context, date string) {
	Invalidate(ctx, DailyCountKey(date))
}
