package recommend

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/errors"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/metrics"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/util"
)

// Service exposes recommendation serving on top of the pure engine: criteria
// normalization, result caching, and the trending report.
type Service interface {
	Recommend(ctx context.Context, raw RawCriteria) (Response, error)
	Trending(ctx context.Context) ([]TrendingCriteria, error)
}

type service struct {
	cfg     Config
	catalog CatalogSource
	store   Store
	engine  *Engine
	group   singleflight.Group
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires up the recommendation domain.
func NewService(cfg Config, catalog CatalogSource, store Store, logger *slog.Logger) Service {
	cfg = cfg.withDefaults()
	return &service{
		cfg:     cfg,
		catalog: catalog,
		store:   store,
		engine:  NewEngine(cfg),
		logger:  logger.With("component", "recommend.service"),
		now:     util.NowUTC,
	}
}

func (s *service) Recommend(ctx context.Context, raw RawCriteria) (Response, error) {
	start := s.now()

	criteria, warnings := NormalizeCriteria(s.cfg, raw)
	if err := validateCriteria(criteria); err != nil {
		return Response{}, apperrors.Wrap(CodeInvalidCriteria, "invalid search criteria", err)
	}

	fingerprint := criteriaFingerprint(criteria)
	display := describeCriteria(criteria)

	version, err := s.catalog.Version(ctx)
	if err != nil {
		return Response{}, apperrors.Wrap(CodeCatalog, "catalog version lookup failed", err)
	}
	key := resultCacheKey(fingerprint, version)

	if cached, ok, cacheErr := s.store.GetResult(ctx, key); cacheErr != nil {
		s.logger.Warn("result cache lookup failed", "error", cacheErr)
	} else if ok {
		s.bumpTrending(ctx, fingerprint, display)
		stats := cached.Stats
		return Response{
			Criteria:   criteria,
			Results:    cached.Results,
			Warnings:   combineWarnings(warnings, cached.Warnings),
			Source:     SourceCache,
			DurationMs: s.sinceMs(start),
			Stats:      &stats,
		}, nil
	}

	// Identical briefs arriving together compute once and share the result.
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.compute(ctx, criteria, key)
	})
	if err != nil {
		return Response{}, err
	}
	computed := v.(CachedResult)

	s.bumpTrending(ctx, fingerprint, display)
	stats := computed.Stats
	return Response{
		Criteria:   criteria,
		Results:    computed.Results,
		Warnings:   combineWarnings(warnings, computed.Warnings),
		Source:     SourceEngine,
		DurationMs: s.sinceMs(start),
		Stats:      &stats,
	}, nil
}

func (s *service) Trending(ctx context.Context) ([]TrendingCriteria, error) {
	entries, err := s.store.TopSearches(ctx, s.cfg.TrendingSize)
	if err != nil {
		return nil, apperrors.Wrap(CodeRecommendation, "failed to load trending searches", err)
	}
	return entries, nil
}

func (s *service) compute(ctx context.Context, criteria SearchCriteria, key string) (CachedResult, error) {
	plants, err := s.catalog.ListPlants(ctx)
	if err != nil {
		return CachedResult{}, apperrors.Wrap(CodeCatalog, "catalog listing failed", err)
	}
	results, batchWarnings, err := s.engine.Recommend(criteria, plants)
	if err != nil {
		if errors.Is(err, ErrInvalidCriteria) {
			return CachedResult{}, apperrors.Wrap(CodeInvalidCriteria, "invalid search criteria", err)
		}
		return CachedResult{}, apperrors.Wrap(CodeRecommendation, "scoring failed", err)
	}
	record := CachedResult{
		Criteria: criteria,
		Results:  results,
		Warnings: batchWarnings,
		Stats: metrics.EvaluationStats{
			PlantsEvaluated: len(plants) - len(batchWarnings),
			PlantsSkipped:   len(batchWarnings),
			ResultsReturned: len(results),
		},
		CachedAt: s.now(),
	}
	if err := s.store.SaveResult(ctx, key, record, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("result cache save failed", "error", err)
	}
	return record, nil
}

func (s *service) bumpTrending(ctx context.Context, canonical, display string) {
	if err := s.store.IncrementSearch(ctx, canonical, display); err != nil {
		s.logger.Warn("trending increment failed", "error", err)
	}
}

func (s *service) sinceMs(start time.Time) int64 {
	return s.now().Sub(start).Milliseconds()
}

func combineWarnings(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
