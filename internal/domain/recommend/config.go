package recommend

import "time"

// Config holds runtime knobs for the recommendation domain.
type Config struct {
	// DefaultWeights apply when a request carries no categoryWeights.
	DefaultWeights map[Category]float64
	// DefaultResultLimit applies when a request carries no resultLimit.
	DefaultResultLimit int
	// MaxResultLimit caps oversized limits during normalization.
	MaxResultLimit int
	// MatchedThreshold is the sub-score above which an attribute is reported
	// as a matched label.
	MatchedThreshold float64
	// SizeToleranceCm softens disjoint height and width ranges.
	SizeToleranceCm float64
	// PHTolerance softens disjoint soil pH ranges.
	PHTolerance float64
	// ZoneGapLimit is the hardiness zone distance at which the zone score
	// bottoms out.
	ZoneGapLimit int
	// Workers bounds the scoring fan-out. Zero picks a runtime default.
	Workers int
	// CacheTTL bounds how long served results stay valid in the store.
	CacheTTL time.Duration
	// TrendingSize is how many trending briefs the service reports.
	TrendingSize int
}

// DefaultConfig returns the compiled-in tuning.
func DefaultConfig() Config {
	return Config{
		DefaultWeights: map[Category]float64{
			CategoryEnvironmental: 0.30,
			CategoryDesign:        0.25,
			CategoryMaintenance:   0.20,
			CategorySpecial:       0.15,
			CategoryContext:       0.10,
		},
		DefaultResultLimit: 10,
		MaxResultLimit:     50,
		MatchedThreshold:   0.8,
		SizeToleranceCm:    30,
		PHTolerance:        0.5,
		ZoneGapLimit:       3,
		CacheTTL:           15 * time.Minute,
		TrendingSize:       10,
	}
}

// withDefaults fills zero fields so a partially built Config stays usable.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if len(c.DefaultWeights) == 0 {
		c.DefaultWeights = def.DefaultWeights
	}
	if c.DefaultResultLimit <= 0 {
		c.DefaultResultLimit = def.DefaultResultLimit
	}
	if c.MaxResultLimit <= 0 {
		c.MaxResultLimit = def.MaxResultLimit
	}
	if c.MatchedThreshold <= 0 {
		c.MatchedThreshold = def.MatchedThreshold
	}
	if c.SizeToleranceCm <= 0 {
		c.SizeToleranceCm = def.SizeToleranceCm
	}
	if c.PHTolerance <= 0 {
		c.PHTolerance = def.PHTolerance
	}
	if c.ZoneGapLimit <= 0 {
		c.ZoneGapLimit = def.ZoneGapLimit
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = def.CacheTTL
	}
	if c.TrendingSize <= 0 {
		c.TrendingSize = def.TrendingSize
	}
	return c
}
