package catalog

import (
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
)

// TraitVectorDim is the fixed width of encoded trait vectors. The plants
// table declares its vector column with the same dimensionality.
const TraitVectorDim = 35

// Slot orders are part of the encoding: changing them changes every stored
// vector, so new values may only be appended.
var (
	sunSlots      = []string{"full-sun", "partial-sun", "shade"}
	soilSlots     = []string{"clay", "loam", "sand", "silt", "chalk", "peat"}
	seasonSlots   = []string{"spring", "summer", "fall", "winter"}
	moistureSlots = []string{"dry", "moist", "wet"}
	careSlots     = []string{"low", "medium", "high"}
	costSlots     = []string{"budget", "moderate", "premium"}
)

// TraitVector encodes the attribute sheet into a fixed-width vector for the
// similar-plants lookup. Vocabulary attributes become one-hot slots, scalars
// are scaled into [0,1], and missing attributes encode as zero so sparsely
// described plants land near each other instead of scattering.
func TraitVector(attrs recommend.PlantAttributes) []float32 {
	vec := make([]float32, 0, TraitVectorDim)
	vec = appendZone(vec, attrs.HardinessZone)
	vec = appendSlots(vec, attrs.SunExposure, sunSlots)
	vec = appendSlots(vec, attrs.SoilType, soilSlots)
	vec = appendScaledRange(vec, attrs.SoilPH, 14)
	vec = appendEnum(vec, attrs.MoistureNeed, moistureSlots)
	vec = appendScaledRange(vec, attrs.HeightRange, 3000)
	vec = appendScaledRange(vec, attrs.WidthRange, 3000)
	vec = appendSlots(vec, attrs.BloomSeason, seasonSlots)
	vec = appendEnum(vec, attrs.CareLevel, careSlots)
	vec = appendEnum(vec, attrs.CostTier, costSlots)
	vec = appendUnit(vec, attrs.PestResistance)
	vec = appendUnit(vec, attrs.DiseaseResistance)
	vec = appendFlag(vec, attrs.IsNative)
	vec = appendUnit(vec, attrs.WildlifeValue)
	vec = appendFlag(vec, attrs.DeerResistant)
	vec = appendFlag(vec, attrs.PollinatorFriendly)
	vec = appendFlag(vec, attrs.SuitableForContainer)
	vec = appendFlag(vec, attrs.SuitableForScreening)
	vec = appendFlag(vec, attrs.SuitableForHedging)
	vec = appendFlag(vec, attrs.SuitableForGroundcover)
	vec = appendFlag(vec, attrs.SlopeTolerant)
	return vec
}

func appendZone(vec []float32, zone *recommend.ZoneRange) []float32 {
	if zone == nil {
		return append(vec, 0, 0)
	}
	// USDA zones run 1 through 13.
	return append(vec, clampUnit(float64(zone.Min)/13), clampUnit(float64(zone.Max)/13))
}

func appendScaledRange(vec []float32, r *recommend.NumericRange, scale float64) []float32 {
	if r == nil {
		return append(vec, 0, 0)
	}
	return append(vec, clampUnit(r.Min/scale), clampUnit(r.Max/scale))
}

func appendSlots(vec []float32, values []string, slots []string) []float32 {
	for _, slot := range slots {
		hit := float32(0)
		for _, v := range values {
			if v == slot {
				hit = 1
				break
			}
		}
		vec = append(vec, hit)
	}
	return vec
}

func appendEnum(vec []float32, value *string, slots []string) []float32 {
	if value == nil {
		return append(vec, 0)
	}
	for i, slot := range slots {
		if *value == slot {
			return append(vec, float32(i+1)/float32(len(slots)))
		}
	}
	return append(vec, 0)
}

func appendUnit(vec []float32, value *float64) []float32 {
	if value == nil {
		return append(vec, 0)
	}
	return append(vec, clampUnit(*value))
}

func appendFlag(vec []float32, value *bool) []float32 {
	if value == nil || !*value {
		return append(vec, 0)
	}
	return append(vec, 1)
}

func clampUnit(v float64) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return float32(v)
}
