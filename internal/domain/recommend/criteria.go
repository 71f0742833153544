package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeCriteria converts an untyped request payload into typed criteria.
// It always succeeds: unrecognized keys are ignored, malformed values are
// dropped with a recorded warning, and defaults fill the gaps. Contract
// checks (negative weights, resultLimit < 1) are left to the engine so they
// fail loudly instead of being silently repaired.
func NormalizeCriteria(cfg Config, raw RawCriteria) (SearchCriteria, []string) {
	cfg = cfg.withDefaults()
	n := &normalizer{raw: raw}

	criteria := SearchCriteria{
		HardinessZone:          n.zoneRange("hardinessZone"),
		SunExposure:            n.set("sunExposure", sunExposureValues),
		SoilType:               n.set("soilType", soilTypeValues),
		SoilPH:                 n.numericRange("soilPh"),
		MoistureNeed:           n.enum("moistureNeed", moistureScale),
		HeightRange:            n.numericRange("heightRange"),
		WidthRange:             n.numericRange("widthRange"),
		BloomColor:             n.set("bloomColor", nil),
		BloomSeason:            n.set("bloomSeason", bloomSeasonValues),
		CareLevel:              n.enum("careLevel", careScale),
		CostTier:               n.enum("costTier", costScale),
		PestResistance:         n.unitValue("pestResistance"),
		DiseaseResistance:      n.unitValue("diseaseResistance"),
		IsNative:               n.boolean("isNative"),
		WildlifeValue:          n.unitValue("wildlifeValue"),
		DeerResistant:          n.boolean("deerResistant"),
		PollinatorFriendly:     n.boolean("pollinatorFriendly"),
		SuitableForContainer:   n.boolean("suitableForContainer"),
		SuitableForScreening:   n.boolean("suitableForScreening"),
		SuitableForHedging:     n.boolean("suitableForHedging"),
		SuitableForGroundcover: n.boolean("suitableForGroundcover"),
		SlopeTolerant:          n.boolean("slopeTolerant"),
	}
	criteria.CategoryWeights = n.weights("categoryWeights", cfg)
	criteria.ResultLimit = n.resultLimit("resultLimit", cfg)

	return criteria, n.warnings
}

type normalizer struct {
	raw      RawCriteria
	warnings []string
}

func (n *normalizer) warnf(format string, args ...any) {
	n.warnings = append(n.warnings, fmt.Sprintf(format, args...))
}

func (n *normalizer) set(key string, vocab []string) []string {
	v, ok := n.raw[key]
	if !ok || v == nil {
		return nil
	}
	tokens, ok := toStringList(v)
	if !ok {
		n.warnf("%s: malformed value dropped", key)
		return nil
	}
	var out []string
	for _, token := range tokens {
		canonical := CanonicalToken(token)
		if canonical == "" {
			continue
		}
		if vocab != nil && !containsString(vocab, canonical) {
			n.warnf("%s: unknown value %q dropped", key, token)
			continue
		}
		if !containsString(out, canonical) {
			out = append(out, canonical)
		}
	}
	return out
}

func (n *normalizer) numericRange(key string) *NumericRange {
	v, ok := n.raw[key]
	if !ok || v == nil {
		return nil
	}
	r, ok := toRange(v)
	if !ok {
		n.warnf("%s: malformed range dropped", key)
		return nil
	}
	if r.Min > r.Max {
		n.warnf("%s: min exceeds max, dropped", key)
		return nil
	}
	return &r
}

func (n *normalizer) zoneRange(key string) *ZoneRange {
	v, ok := n.raw[key]
	if !ok || v == nil {
		return nil
	}
	r, ok := toRange(v)
	if !ok {
		n.warnf("%s: malformed range dropped", key)
		return nil
	}
	if r.Min > r.Max {
		n.warnf("%s: min exceeds max, dropped", key)
		return nil
	}
	return &ZoneRange{Min: int(math.Round(r.Min)), Max: int(math.Round(r.Max))}
}

func (n *normalizer) enum(key string, scale map[string]int) *string {
	v, ok := n.raw[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		n.warnf("%s: malformed value dropped", key)
		return nil
	}
	canonical := CanonicalToken(s)
	if _, ok := scale[canonical]; !ok {
		n.warnf("%s: unknown value %q dropped", key, s)
		return nil
	}
	return &canonical
}

func (n *normalizer) unitValue(key string) *float64 {
	v, ok := n.raw[key]
	if !ok || v == nil {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		n.warnf("%s: malformed value dropped", key)
		return nil
	}
	if f < 0 || f > 1 {
		n.warnf("%s: value outside [0,1] dropped", key)
		return nil
	}
	return &f
}

func (n *normalizer) boolean(key string) *bool {
	v, ok := n.raw[key]
	if !ok || v == nil {
		return nil
	}
	b, ok := toBool(v)
	if !ok {
		n.warnf("%s: malformed value dropped", key)
		return nil
	}
	return &b
}

func (n *normalizer) weights(key string, cfg Config) map[Category]float64 {
	v, ok := n.raw[key]
	if !ok || v == nil {
		return copyWeights(cfg.DefaultWeights)
	}
	entries, ok := v.(map[string]any)
	if !ok {
		n.warnf("%s: malformed value dropped", key)
		return copyWeights(cfg.DefaultWeights)
	}
	out := make(map[Category]float64, len(Categories))
	for name, value := range entries {
		cat := Category(CanonicalToken(name))
		if !containsCategory(Categories, cat) {
			n.warnf("%s: unknown category %q ignored", key, name)
			continue
		}
		weight, ok := toFloat(value)
		if !ok {
			n.warnf("%s: malformed weight for %q dropped", key, name)
			continue
		}
		// Negative weights pass through so the engine can reject them.
		out[cat] = weight
	}
	if len(out) == 0 {
		return copyWeights(cfg.DefaultWeights)
	}
	return out
}

func (n *normalizer) resultLimit(key string, cfg Config) int {
	v, ok := n.raw[key]
	if !ok || v == nil {
		return cfg.DefaultResultLimit
	}
	f, ok := toFloat(v)
	if !ok {
		n.warnf("%s: malformed value dropped", key)
		return cfg.DefaultResultLimit
	}
	limit := int(math.Round(f))
	if limit > cfg.MaxResultLimit {
		n.warnf("%s: capped at %d", key, cfg.MaxResultLimit)
		return cfg.MaxResultLimit
	}
	// Zero and negative limits stay as-is; the engine rejects them.
	return limit
}

// CanonicalToken lowercases, trims, and hyphenates a vocabulary token so
// "Full Sun" and "full-sun" compare equal. Catalog writes and criteria
// normalization share it, keeping stored attributes and search tokens in the
// same form.
func CanonicalToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.Join(strings.Fields(s), "-")
	if s == "autumn" {
		return "fall"
	}
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "yes":
			return true, true
		case "no":
			return false, true
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, false
		}
		return parsed, true
	case float64:
		if b == 1 {
			return true, true
		}
		if b == 0 {
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

func toStringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case string:
		return strings.Split(list, ","), true
	default:
		return nil, false
	}
}

func toRange(v any) (NumericRange, bool) {
	switch r := v.(type) {
	case map[string]any:
		lo, okLo := toFloat(r["min"])
		hi, okHi := toFloat(r["max"])
		if !okLo || !okHi {
			return NumericRange{}, false
		}
		return NumericRange{Min: lo, Max: hi}, true
	case []any:
		if len(r) != 2 {
			return NumericRange{}, false
		}
		lo, okLo := toFloat(r[0])
		hi, okHi := toFloat(r[1])
		if !okLo || !okHi {
			return NumericRange{}, false
		}
		return NumericRange{Min: lo, Max: hi}, true
	default:
		if f, ok := toFloat(v); ok {
			return NumericRange{Min: f, Max: f}, true
		}
		return NumericRange{}, false
	}
}

func copyWeights(weights map[Category]float64) map[Category]float64 {
	out := make(map[Category]float64, len(weights))
	for cat, w := range weights {
		out[cat] = w
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsCategory(list []Category, c Category) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}
