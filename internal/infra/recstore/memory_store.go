package recstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
)

type cachedEntry struct {
	payload   recommend.CachedResult
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the recommendation store for
// tests/dev.
type MemoryStore struct {
	mu       sync.RWMutex
	results  map[string]cachedEntry
	trending map[string]int64
	displays map[string]string
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		results:  make(map[string]cachedEntry),
		trending: make(map[string]int64),
		displays: make(map[string]string),
	}
}

// GetResult implements recommend.Store.
func (s *MemoryStore) GetResult(_ context.Context, key string) (recommend.CachedResult, bool, error) {
	if key == "" {
		return recommend.CachedResult{}, false, nil
	}
	s.mu.RLock()
	entry, ok := s.results[key]
	s.mu.RUnlock()
	if !ok {
		return recommend.CachedResult{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.results, key)
		s.mu.Unlock()
		return recommend.CachedResult{}, false, nil
	}
	return entry.payload, true, nil
}

// SaveResult caches the result with optional TTL.
func (s *MemoryStore) SaveResult(_ context.Context, key string, result recommend.CachedResult, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.results[key] = cachedEntry{payload: result, expiresAt: exp}
	return nil
}

// IncrementSearch bumps the counter for a canonical brief and records a
// display string.
func (s *MemoryStore) IncrementSearch(_ context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trending[canonical]++
	if _, exists := s.displays[canonical]; !exists {
		s.displays[canonical] = display
	}
	return nil
}

// TopSearches returns the most frequent search briefs.
func (s *MemoryStore) TopSearches(_ context.Context, limit int) ([]recommend.TrendingCriteria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.trending)
	}
	items := make([]recommend.TrendingCriteria, 0, len(s.trending))
	for canonical, count := range s.trending {
		display := s.displays[canonical]
		if display == "" {
			display = canonical
		}
		items = append(items, recommend.TrendingCriteria{Criteria: display, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Criteria < items[j].Criteria
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ recommend.Store = (*MemoryStore)(nil)
