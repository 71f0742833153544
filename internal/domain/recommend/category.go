package recommend

import "math"

// attributeResult is one attribute's graded outcome for a single plant.
type attributeResult struct {
	score   float64
	active  bool // the criterion expressed a preference
	unknown bool // the plant is missing data for an active criterion
}

type attributeSpec struct {
	name    string
	display string
	eval    func(cfg Config, c *SearchCriteria, p *PlantRecord) attributeResult
}

// categoryTable fixes which attributes feed each category. Scores aggregate
// as an unweighted mean within the category.
var categoryTable = map[Category][]attributeSpec{
	CategoryEnvironmental: {
		{"hardinessZone", "hardiness zone", func(cfg Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalZone(c.HardinessZone, p.HardinessZone, cfg.ZoneGapLimit)
		}},
		{"sunExposure", "sun exposure", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalSet(c.SunExposure, p.SunExposure)
		}},
		{"soilType", "soil type", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalSet(c.SoilType, p.SoilType)
		}},
		{"soilPh", "soil pH", func(cfg Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalRange(c.SoilPH, p.SoilPH, cfg.PHTolerance)
		}},
		{"moistureNeed", "moisture need", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalOrdinalEnum(moistureScale, c.MoistureNeed, p.MoistureNeed)
		}},
	},
	CategoryDesign: {
		{"heightRange", "height", func(cfg Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalRange(c.HeightRange, p.HeightRange, cfg.SizeToleranceCm)
		}},
		{"widthRange", "width", func(cfg Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalRange(c.WidthRange, p.WidthRange, cfg.SizeToleranceCm)
		}},
		{"bloomColor", "bloom color", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalSet(c.BloomColor, p.BloomColor)
		}},
		{"bloomSeason", "bloom season", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalSet(c.BloomSeason, p.BloomSeason)
		}},
	},
	CategoryMaintenance: {
		{"careLevel", "care level", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalOrdinalEnum(careScale, c.CareLevel, p.CareLevel)
		}},
		{"costTier", "cost tier", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalOrdinalEnum(costScale, c.CostTier, p.CostTier)
		}},
		{"pestResistance", "pest resistance", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalOrdinalValue(c.PestResistance, p.PestResistance)
		}},
		{"diseaseResistance", "disease resistance", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalOrdinalValue(c.DiseaseResistance, p.DiseaseResistance)
		}},
	},
	CategorySpecial: {
		{"isNative", "native origin", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalBool(c.IsNative, p.IsNative)
		}},
		{"wildlifeValue", "wildlife value", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalOrdinalValue(c.WildlifeValue, p.WildlifeValue)
		}},
		{"deerResistant", "deer resistance", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalBool(c.DeerResistant, p.DeerResistant)
		}},
		{"pollinatorFriendly", "pollinator appeal", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalBool(c.PollinatorFriendly, p.PollinatorFriendly)
		}},
	},
	CategoryContext: {
		{"suitableForContainer", "container use", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalBool(c.SuitableForContainer, p.SuitableForContainer)
		}},
		{"suitableForScreening", "screening use", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalBool(c.SuitableForScreening, p.SuitableForScreening)
		}},
		{"suitableForHedging", "hedging use", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalBool(c.SuitableForHedging, p.SuitableForHedging)
		}},
		{"suitableForGroundcover", "groundcover use", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalBool(c.SuitableForGroundcover, p.SuitableForGroundcover)
		}},
		{"slopeTolerant", "slope tolerance", func(_ Config, c *SearchCriteria, p *PlantRecord) attributeResult {
			return evalBool(c.SlopeTolerant, p.SlopeTolerant)
		}},
	},
}

// scoreCategory aggregates one category for one plant. Matched labels cover
// attributes at or above the matched threshold; warnings cover active
// criteria the plant has no data for. Inactive criteria stay silent.
func scoreCategory(cfg Config, criteria *SearchCriteria, plant *PlantRecord, category Category) (float64, []string, []string) {
	specs := categoryTable[category]
	var (
		sum      float64
		matched  []string
		warnings []string
	)
	for _, spec := range specs {
		res := spec.eval(cfg, criteria, plant)
		sum += res.score
		if !res.active {
			continue
		}
		if res.unknown {
			warnings = append(warnings, spec.display+": no plant data")
			continue
		}
		if res.score >= cfg.MatchedThreshold {
			matched = append(matched, spec.display+": strong match")
		}
	}
	return roundScore(sum / float64(len(specs))), matched, warnings
}

func evalSet(criterion, plant []string) attributeResult {
	if len(criterion) == 0 {
		return attributeResult{score: 1}
	}
	if plant == nil {
		return attributeResult{score: 1, active: true, unknown: true}
	}
	return attributeResult{score: matchSet(criterion, plant), active: true}
}

func evalRange(criterion, plant *NumericRange, tolerance float64) attributeResult {
	if criterion == nil {
		return attributeResult{score: 1}
	}
	if plant == nil {
		return attributeResult{score: 1, active: true, unknown: true}
	}
	return attributeResult{score: matchNumericRange(*criterion, *plant, tolerance), active: true}
}

func evalZone(criterion, plant *ZoneRange, gapLimit int) attributeResult {
	if criterion == nil {
		return attributeResult{score: 1}
	}
	if plant == nil {
		return attributeResult{score: 1, active: true, unknown: true}
	}
	return attributeResult{score: matchZoneRange(*criterion, *plant, gapLimit), active: true}
}

func evalOrdinalEnum(scale map[string]int, criterion, plant *string) attributeResult {
	if criterion == nil {
		return attributeResult{score: 1}
	}
	cRank, ok := ordinalRank(scale, *criterion)
	if !ok {
		return attributeResult{score: 1}
	}
	if plant == nil {
		return attributeResult{score: 1, active: true, unknown: true}
	}
	pRank, ok := ordinalRank(scale, *plant)
	if !ok {
		// Unreadable plant data counts as unknown, not as a mismatch.
		return attributeResult{score: 1, active: true, unknown: true}
	}
	return attributeResult{score: matchOrdinalRank(cRank, pRank, scaleSpan(scale)), active: true}
}

func evalOrdinalValue(criterion, plant *float64) attributeResult {
	if criterion == nil {
		return attributeResult{score: 1}
	}
	if plant == nil {
		return attributeResult{score: 1, active: true, unknown: true}
	}
	return attributeResult{score: matchOrdinalValue(*criterion, *plant), active: true}
}

func evalBool(criterion, plant *bool) attributeResult {
	if criterion == nil || !*criterion {
		return attributeResult{score: 1}
	}
	if plant == nil {
		return attributeResult{score: 1, active: true, unknown: true}
	}
	return attributeResult{score: matchBool(*plant), active: true}
}

func roundScore(v float64) float64 {
	return math.Round(clamp01(v)*10000) / 10000
}
