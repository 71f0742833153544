package recommend

import (
	"context"
	"time"
)

// Store defines the persistence contract for served recommendation data.
type Store interface {
	GetResult(ctx context.Context, key string) (CachedResult, bool, error)
	SaveResult(ctx context.Context, key string, result CachedResult, ttl time.Duration) error
	IncrementSearch(ctx context.Context, canonical, display string) error
	TopSearches(ctx context.Context, limit int) ([]TrendingCriteria, error)
}
