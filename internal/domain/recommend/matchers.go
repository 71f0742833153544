package recommend

import (
	"math"
	"strings"
)

// softConstraintFloor is the minimum score for a plant missing an explicitly
// required boolean trait. Boolean criteria are soft constraints and must not
// fully eliminate an otherwise strong candidate.
const softConstraintFloor = 0.3

// nearMissCeiling bounds both sides of the overlap seam: a disjoint plant
// interval never scores above it and an overlapping one never scores below
// it, so shrinking a gap into an overlap cannot lower the score.
const nearMissCeiling = 0.5

// matchSet grades a categorical criterion against a plant's value set:
// the share of wanted values the plant covers, compared case-insensitively.
func matchSet(criterion, plant []string) float64 {
	if len(criterion) == 0 {
		return 1
	}
	hits := 0
	for _, want := range criterion {
		for _, have := range plant {
			if strings.EqualFold(want, have) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(criterion))
}

// matchNumericRange grades how much of the criterion interval the plant's
// interval covers. Any overlap scores between nearMissCeiling and 1 by
// coverage share; disjoint intervals decay with edge distance below the
// ceiling so near misses stay recommendable without outranking an overlap.
func matchNumericRange(criterion, plant NumericRange, tolerance float64) float64 {
	if criterion.Max <= criterion.Min {
		// Point criterion: containment or distance decay.
		if criterion.Min >= plant.Min && criterion.Min <= plant.Max {
			return 1
		}
		return decayScore(rangeGap(criterion, plant), tolerance)
	}
	if plant.Max <= plant.Min && plant.Min >= criterion.Min && plant.Min <= criterion.Max {
		// Point plant inside the criterion interval is full containment.
		return 1
	}
	overlap := math.Min(criterion.Max, plant.Max) - math.Max(criterion.Min, plant.Min)
	if overlap > 0 {
		return math.Max(nearMissCeiling, clamp01(overlap/(criterion.Max-criterion.Min)))
	}
	return nearMissCeiling * decayScore(rangeGap(criterion, plant), tolerance)
}

// matchZoneRange grades inclusive hardiness zone spans. A plant whose
// tolerated span reaches any requested zone fits outright; disjoint spans
// ramp down by rank distance and bottom out gapLimit zones away.
func matchZoneRange(criterion, plant ZoneRange, gapLimit int) float64 {
	lo := maxInt(criterion.Min, plant.Min)
	hi := minInt(criterion.Max, plant.Max)
	if hi >= lo {
		return 1
	}
	if gapLimit <= 0 {
		gapLimit = 1
	}
	gap := lo - hi // positive when disjoint
	return clamp01(1 - float64(gap)/float64(gapLimit))
}

// matchOrdinalRank grades two positions on a discrete scale by rank distance.
func matchOrdinalRank(criterion, plant, maxDistance int) float64 {
	if maxDistance <= 0 {
		maxDistance = 1
	}
	d := criterion - plant
	if d < 0 {
		d = -d
	}
	return clamp01(1 - float64(d)/float64(maxDistance))
}

// matchOrdinalValue grades two positions on the continuous [0,1] scale used
// by resistance and wildlife ratings.
func matchOrdinalValue(criterion, plant float64) float64 {
	return clamp01(1 - math.Abs(clamp01(criterion)-clamp01(plant)))
}

// matchBool grades a required boolean trait against the plant's value.
func matchBool(plant bool) float64 {
	if plant {
		return 1
	}
	return softConstraintFloor
}

// rangeGap is the edge-to-edge distance between two intervals, zero when they
// touch or overlap.
func rangeGap(a, b NumericRange) float64 {
	if a.Min > b.Max {
		return a.Min - b.Max
	}
	if b.Min > a.Max {
		return b.Min - a.Max
	}
	return 0
}

func decayScore(distance, tolerance float64) float64 {
	if tolerance <= 0 {
		tolerance = 1
	}
	return clamp01(1 / (1 + distance/tolerance))
}

func ordinalRank(scale map[string]int, value string) (int, bool) {
	rank, ok := scale[strings.ToLower(strings.TrimSpace(value))]
	return rank, ok
}

func scaleSpan(scale map[string]int) int {
	max := 0
	for _, rank := range scale {
		if rank > max {
			max = rank
		}
	}
	return max
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
