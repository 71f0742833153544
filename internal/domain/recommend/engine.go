package recommend

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Engine ranks a plant catalog against a design brief. It holds no mutable
// state and is safe for concurrent use without coordination.
type Engine struct {
	cfg Config
}

// NewEngine constructs an engine with the given tuning.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Recommend scores every catalog entry against the criteria and returns the
// ranked top results plus batch warnings. It fails only for caller contract
// violations, before any scoring work runs; bad catalog rows degrade to
// warnings and never abort the batch.
func (e *Engine) Recommend(criteria SearchCriteria, catalog []PlantRecord) ([]MatchResult, []string, error) {
	if err := validateCriteria(criteria); err != nil {
		return nil, nil, err
	}
	weights := normalizeWeights(e.effectiveWeights(criteria))

	valid := make([]*PlantRecord, 0, len(catalog))
	var warnings []string
	for i := range catalog {
		if strings.TrimSpace(catalog[i].Name) == "" {
			warnings = append(warnings, fmt.Sprintf("skipped catalog entry %d: missing plant name", i))
			continue
		}
		valid = append(valid, &catalog[i])
	}

	results := make([]MatchResult, len(valid))
	if workers := e.workerCount(len(valid)); workers > 1 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i] = e.scorePlant(criteria, valid[i], weights)
				}
			}()
		}
		for i := range valid {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	} else {
		for i := range valid {
			results[i] = e.scorePlant(criteria, valid[i], weights)
		}
	}

	sortResults(results)
	if len(results) > criteria.ResultLimit {
		results = results[:criteria.ResultLimit]
	}
	return results, warnings, nil
}

func (e *Engine) scorePlant(criteria SearchCriteria, plant *PlantRecord, weights map[Category]float64) MatchResult {
	categoryScores := make(map[Category]float64, len(Categories))
	var (
		total    float64
		matched  []string
		warnings []string
	)
	for _, cat := range Categories {
		score, m, w := scoreCategory(e.cfg, &criteria, plant, cat)
		categoryScores[cat] = score
		total += score * weights[cat]
		matched = append(matched, m...)
		warnings = append(warnings, w...)
	}
	return MatchResult{
		Plant:             plant,
		TotalScore:        roundScore(total),
		CategoryScores:    categoryScores,
		MatchedAttributes: matched,
		Warnings:          warnings,
	}
}

func (e *Engine) effectiveWeights(criteria SearchCriteria) map[Category]float64 {
	if len(criteria.CategoryWeights) == 0 {
		return e.cfg.DefaultWeights
	}
	return criteria.CategoryWeights
}

func (e *Engine) workerCount(plants int) int {
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
		if workers > 8 {
			workers = 8
		}
	}
	if workers > plants {
		workers = plants
	}
	return workers
}

// validateCriteria enforces the caller contract shared by the engine and the
// serving layer.
func validateCriteria(criteria SearchCriteria) error {
	if criteria.ResultLimit < 1 {
		return fmt.Errorf("%w: resultLimit must be at least 1, got %d", ErrInvalidCriteria, criteria.ResultLimit)
	}
	for cat, weight := range criteria.CategoryWeights {
		if weight < 0 {
			return fmt.Errorf("%w: negative weight %v for category %q", ErrInvalidCriteria, weight, cat)
		}
	}
	return nil
}

// normalizeWeights scales the five category weights to sum to 1. An all-zero
// mapping is valid and stays all-zero, so every total score becomes 0.
func normalizeWeights(weights map[Category]float64) map[Category]float64 {
	out := make(map[Category]float64, len(Categories))
	var total float64
	for _, cat := range Categories {
		total += weights[cat]
	}
	if total <= 0 {
		for _, cat := range Categories {
			out[cat] = 0
		}
		return out
	}
	for _, cat := range Categories {
		out[cat] = weights[cat] / total
	}
	return out
}

// sortResults orders by score descending, then plant name case-insensitively,
// then ID, so equal inputs always produce the identical sequence.
func sortResults(results []MatchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		ni := strings.ToLower(results[i].Plant.Name)
		nj := strings.ToLower(results[j].Plant.Name)
		if ni != nj {
			return ni < nj
		}
		return results[i].Plant.ID < results[j].Plant.ID
	})
}
