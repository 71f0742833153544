package recommend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/errors"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/metrics"
)

type stubCatalog struct {
	mu           sync.Mutex
	plants       []PlantRecord
	version      string
	listErr      error
	versionErr   error
	listDelay    time.Duration
	listCalls    int
	versionCalls int
}

func (s *stubCatalog) ListPlants(_ context.Context) ([]PlantRecord, error) {
	s.mu.Lock()
	s.listCalls++
	plants, err, delay := s.plants, s.listErr, s.listDelay
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	return plants, nil
}

func (s *stubCatalog) Version(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versionCalls++
	if s.versionErr != nil {
		return "", s.versionErr
	}
	return s.version, nil
}

type stubStore struct {
	mu       sync.Mutex
	cached   map[string]CachedResult
	getErr   error
	saveErr  error
	incErr   error
	topErr   error
	saved    map[string]CachedResult
	savedTTL time.Duration
	bumps    []string
	displays []string
	top      []TrendingCriteria
	topLimit int
}

func (s *stubStore) GetResult(_ context.Context, key string) (CachedResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return CachedResult{}, false, s.getErr
	}
	result, ok := s.cached[key]
	return result, ok, nil
}

func (s *stubStore) SaveResult(_ context.Context, key string, result CachedResult, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.saved == nil {
		s.saved = make(map[string]CachedResult)
	}
	s.saved[key] = result
	s.savedTTL = ttl
	return nil
}

func (s *stubStore) IncrementSearch(_ context.Context, canonical, display string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incErr != nil {
		return s.incErr
	}
	s.bumps = append(s.bumps, canonical)
	s.displays = append(s.displays, display)
	return nil
}

func (s *stubStore) TopSearches(_ context.Context, limit int) ([]TrendingCriteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topLimit = limit
	if s.topErr != nil {
		return nil, s.topErr
	}
	return s.top, nil
}

func newTestService(catalog CatalogSource, store Store) *service {
	cfg := DefaultConfig()
	return &service{
		cfg:     cfg,
		catalog: catalog,
		store:   store,
		engine:  NewEngine(cfg),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestServiceRecommendComputesAndCaches(t *testing.T) {
	catalog := &stubCatalog{
		version: "v1",
		plants: []PlantRecord{
			{ID: "1", Name: "Aster", PlantAttributes: PlantAttributes{SunExposure: []string{"full-sun"}}},
			{ID: "2", Name: "", PlantAttributes: PlantAttributes{SunExposure: []string{"shade"}}},
			{ID: "3", Name: "Birch", PlantAttributes: PlantAttributes{SunExposure: []string{"full-sun"}}},
		},
	}
	store := &stubStore{}
	svc := newTestService(catalog, store)

	resp, err := svc.Recommend(context.Background(), RawCriteria{"sunExposure": []any{"full-sun"}})
	require.NoError(t, err)

	require.Equal(t, SourceEngine, resp.Source)
	require.Len(t, resp.Results, 2)
	require.Contains(t, resp.Warnings, "skipped catalog entry 1: missing plant name")
	require.Equal(t, &metrics.EvaluationStats{PlantsEvaluated: 2, PlantsSkipped: 1, ResultsReturned: 2}, resp.Stats)

	require.Equal(t, 1, catalog.listCalls)
	require.Len(t, store.saved, 1)
	require.Equal(t, svc.cfg.CacheTTL, store.savedTTL)
	require.Equal(t, []string{"sun full-sun"}, store.displays)
}

func TestServiceRecommendServesFromCache(t *testing.T) {
	raw := RawCriteria{"sunExposure": []any{"full-sun"}}
	cfg := DefaultConfig()
	criteria, _ := NormalizeCriteria(cfg, raw)
	key := resultCacheKey(criteriaFingerprint(criteria), "v1")

	cached := CachedResult{
		Criteria: criteria,
		Results:  []MatchResult{{Plant: &PlantRecord{ID: "1", Name: "Aster"}, TotalScore: 1}},
		Warnings: []string{"skipped catalog entry 0: missing plant name"},
		Stats:    metrics.EvaluationStats{PlantsEvaluated: 1, PlantsSkipped: 1, ResultsReturned: 1},
	}
	catalog := &stubCatalog{version: "v1"}
	store := &stubStore{cached: map[string]CachedResult{key: cached}}
	svc := newTestService(catalog, store)

	resp, err := svc.Recommend(context.Background(), raw)
	require.NoError(t, err)

	require.Equal(t, SourceCache, resp.Source)
	require.Equal(t, cached.Results, resp.Results)
	require.Equal(t, cached.Warnings, resp.Warnings)
	require.Equal(t, &cached.Stats, resp.Stats)
	require.Zero(t, catalog.listCalls, "cache hits must not touch the catalog listing")
	require.Empty(t, store.saved)
	require.Len(t, store.bumps, 1)
}

func TestServiceRecommendNewCatalogVersionMissesCache(t *testing.T) {
	raw := RawCriteria{"sunExposure": []any{"full-sun"}}
	cfg := DefaultConfig()
	criteria, _ := NormalizeCriteria(cfg, raw)
	staleKey := resultCacheKey(criteriaFingerprint(criteria), "v1")

	catalog := &stubCatalog{
		version: "v2",
		plants:  []PlantRecord{{ID: "1", Name: "Aster"}},
	}
	store := &stubStore{cached: map[string]CachedResult{staleKey: {}}}
	svc := newTestService(catalog, store)

	resp, err := svc.Recommend(context.Background(), raw)
	require.NoError(t, err)
	require.Equal(t, SourceEngine, resp.Source)
	require.Equal(t, 1, catalog.listCalls)
}

func TestServiceRecommendConcurrentRequestsComputeOnce(t *testing.T) {
	catalog := &stubCatalog{
		version:   "v1",
		listDelay: 50 * time.Millisecond,
		plants: []PlantRecord{
			{ID: "1", Name: "Aster", PlantAttributes: PlantAttributes{SunExposure: []string{"full-sun"}}},
			{ID: "2", Name: "Birch", PlantAttributes: PlantAttributes{SunExposure: []string{"shade"}}},
		},
	}
	store := &stubStore{}
	svc := newTestService(catalog, store)

	const callers = 8
	responses := make([]Response, callers)
	failures := make([]error, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			responses[i], failures[i] = svc.Recommend(context.Background(), RawCriteria{"sunExposure": []any{"full-sun"}})
		}(i)
	}
	close(start)
	wg.Wait()

	require.Equal(t, 1, catalog.listCalls, "identical briefs in flight must share one catalog pass")
	require.Len(t, store.saved, 1)
	require.Len(t, store.bumps, callers)
	for i := 0; i < callers; i++ {
		require.NoError(t, failures[i])
		require.Equal(t, SourceEngine, responses[i].Source)
		require.Equal(t, responses[0].Results, responses[i].Results)
	}
}

func TestServiceRecommendRejectsInvalidCriteriaUpFront(t *testing.T) {
	catalog := &stubCatalog{version: "v1"}
	store := &stubStore{}
	svc := newTestService(catalog, store)

	_, err := svc.Recommend(context.Background(), RawCriteria{"resultLimit": 0.0})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, CodeInvalidCriteria))
	require.Zero(t, catalog.versionCalls)
	require.Zero(t, catalog.listCalls)
	require.Empty(t, store.bumps)
}

func TestServiceRecommendCatalogErrors(t *testing.T) {
	t.Run("version lookup", func(t *testing.T) {
		catalog := &stubCatalog{versionErr: errors.New("db down")}
		svc := newTestService(catalog, &stubStore{})

		_, err := svc.Recommend(context.Background(), RawCriteria{})
		require.Error(t, err)
		require.True(t, apperrors.IsCode(err, CodeCatalog))
	})

	t.Run("listing", func(t *testing.T) {
		catalog := &stubCatalog{version: "v1", listErr: errors.New("db down")}
		svc := newTestService(catalog, &stubStore{})

		_, err := svc.Recommend(context.Background(), RawCriteria{})
		require.Error(t, err)
		require.True(t, apperrors.IsCode(err, CodeCatalog))
	})
}

func TestServiceRecommendToleratesStoreFailures(t *testing.T) {
	catalog := &stubCatalog{
		version: "v1",
		plants:  []PlantRecord{{ID: "1", Name: "Aster"}},
	}
	store := &stubStore{
		getErr:  errors.New("valkey down"),
		saveErr: errors.New("valkey down"),
		incErr:  errors.New("valkey down"),
	}
	svc := newTestService(catalog, store)

	resp, err := svc.Recommend(context.Background(), RawCriteria{})
	require.NoError(t, err)
	require.Equal(t, SourceEngine, resp.Source)
	require.Len(t, resp.Results, 1)
}

func TestServiceRecommendSurfacesNormalizerWarnings(t *testing.T) {
	catalog := &stubCatalog{
		version: "v1",
		plants:  []PlantRecord{{ID: "1", Name: "Aster"}},
	}
	svc := newTestService(catalog, &stubStore{})

	resp, err := svc.Recommend(context.Background(), RawCriteria{"sunExposure": []any{"midnight"}})
	require.NoError(t, err)
	require.Contains(t, resp.Warnings, `sunExposure: unknown value "midnight" dropped`)
}

func TestServiceTrending(t *testing.T) {
	store := &stubStore{top: []TrendingCriteria{
		{Criteria: "zones 5-7, sun full-sun", Count: 12},
		{Criteria: "any plant", Count: 4},
	}}
	svc := newTestService(&stubCatalog{version: "v1"}, store)

	entries, err := svc.Trending(context.Background())
	require.NoError(t, err)
	require.Equal(t, store.top, entries)
	require.Equal(t, svc.cfg.TrendingSize, store.topLimit)
}

func TestServiceTrendingError(t *testing.T) {
	store := &stubStore{topErr: errors.New("valkey down")}
	svc := newTestService(&stubCatalog{version: "v1"}, store)

	_, err := svc.Trending(context.Background())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, CodeRecommendation))
}
