package recommend

import (
	"time"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/metrics"
)

// Category identifies one of the five scoring dimensions.
type Category string

const (
	CategoryEnvironmental Category = "environmental"
	CategoryDesign        Category = "design"
	CategoryMaintenance   Category = "maintenance"
	CategorySpecial       Category = "special"
	CategoryContext       Category = "context"
)

// Categories lists the scoring dimensions in presentation order.
var Categories = []Category{
	CategoryEnvironmental,
	CategoryDesign,
	CategoryMaintenance,
	CategorySpecial,
	CategoryContext,
}

// NumericRange is a closed [Min,Max] interval, Min <= Max.
type NumericRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ZoneRange is an inclusive USDA hardiness zone span.
type ZoneRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// PlantAttributes carries every scored plant property. Nil means the value is
// unknown for this plant, which is never treated as a failing match.
type PlantAttributes struct {
	HardinessZone          *ZoneRange    `json:"hardinessZone,omitempty"`
	SunExposure            []string      `json:"sunExposure,omitempty"`
	SoilType               []string      `json:"soilType,omitempty"`
	SoilPH                 *NumericRange `json:"soilPh,omitempty"`
	MoistureNeed           *string       `json:"moistureNeed,omitempty"`
	HeightRange            *NumericRange `json:"heightRange,omitempty"`
	WidthRange             *NumericRange `json:"widthRange,omitempty"`
	BloomColor             []string      `json:"bloomColor,omitempty"`
	BloomSeason            []string      `json:"bloomSeason,omitempty"`
	CareLevel              *string       `json:"careLevel,omitempty"`
	CostTier               *string       `json:"costTier,omitempty"`
	PestResistance         *float64      `json:"pestResistance,omitempty"`
	DiseaseResistance      *float64      `json:"diseaseResistance,omitempty"`
	IsNative               *bool         `json:"isNative,omitempty"`
	WildlifeValue          *float64      `json:"wildlifeValue,omitempty"`
	DeerResistant          *bool         `json:"deerResistant,omitempty"`
	PollinatorFriendly     *bool         `json:"pollinatorFriendly,omitempty"`
	SuitableForContainer   *bool         `json:"suitableForContainer,omitempty"`
	SuitableForScreening   *bool         `json:"suitableForScreening,omitempty"`
	SuitableForHedging     *bool         `json:"suitableForHedging,omitempty"`
	SuitableForGroundcover *bool         `json:"suitableForGroundcover,omitempty"`
	SlopeTolerant          *bool         `json:"slopeTolerant,omitempty"`
}

// PlantRecord is one catalog entry as the scorer sees it.
type PlantRecord struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	PlantAttributes
}

// SearchCriteria is a validated design brief. Every attribute field is
// optional; absence means no preference and scores neutrally. Criterion
// booleans follow a soft-constraint policy: only an explicit true demands the
// trait.
type SearchCriteria struct {
	HardinessZone          *ZoneRange    `json:"hardinessZone,omitempty"`
	SunExposure            []string      `json:"sunExposure,omitempty"`
	SoilType               []string      `json:"soilType,omitempty"`
	SoilPH                 *NumericRange `json:"soilPh,omitempty"`
	MoistureNeed           *string       `json:"moistureNeed,omitempty"`
	HeightRange            *NumericRange `json:"heightRange,omitempty"`
	WidthRange             *NumericRange `json:"widthRange,omitempty"`
	BloomColor             []string      `json:"bloomColor,omitempty"`
	BloomSeason            []string      `json:"bloomSeason,omitempty"`
	CareLevel              *string       `json:"careLevel,omitempty"`
	CostTier               *string       `json:"costTier,omitempty"`
	PestResistance         *float64      `json:"pestResistance,omitempty"`
	DiseaseResistance      *float64      `json:"diseaseResistance,omitempty"`
	IsNative               *bool         `json:"isNative,omitempty"`
	WildlifeValue          *float64      `json:"wildlifeValue,omitempty"`
	DeerResistant          *bool         `json:"deerResistant,omitempty"`
	PollinatorFriendly     *bool         `json:"pollinatorFriendly,omitempty"`
	SuitableForContainer   *bool         `json:"suitableForContainer,omitempty"`
	SuitableForScreening   *bool         `json:"suitableForScreening,omitempty"`
	SuitableForHedging     *bool         `json:"suitableForHedging,omitempty"`
	SuitableForGroundcover *bool         `json:"suitableForGroundcover,omitempty"`
	SlopeTolerant          *bool         `json:"slopeTolerant,omitempty"`

	CategoryWeights map[Category]float64 `json:"categoryWeights"`
	ResultLimit     int                  `json:"resultLimit"`
}

// MatchResult is one plant's scored outcome, immutable once built.
type MatchResult struct {
	Plant             *PlantRecord         `json:"plant"`
	TotalScore        float64              `json:"totalScore"`
	CategoryScores    map[Category]float64 `json:"categoryScores"`
	MatchedAttributes []string             `json:"matchedAttributes"`
	Warnings          []string             `json:"warnings"`
}

// RawCriteria is the untyped request payload as received from the transport.
type RawCriteria map[string]any

const (
	// SourceEngine marks a response computed against the live catalog.
	SourceEngine = "engine"
	// SourceCache marks a response served from the result store.
	SourceCache = "cache"
)

// Response is returned to the HTTP transport.
type Response struct {
	Criteria   SearchCriteria           `json:"criteria"`
	Results    []MatchResult            `json:"results"`
	Warnings   []string                 `json:"warnings,omitempty"`
	Source     string                   `json:"source"`
	DurationMs int64                    `json:"durationMs,omitempty"`
	Stats      *metrics.EvaluationStats `json:"stats,omitempty"`
}

// TrendingCriteria represents a frequently requested design brief.
type TrendingCriteria struct {
	Criteria string `json:"criteria"`
	Count    int64  `json:"count"`
}

// CachedResult captures the payload persisted in the KV result store.
type CachedResult struct {
	Criteria SearchCriteria          `json:"criteria"`
	Results  []MatchResult           `json:"results"`
	Warnings []string                `json:"warnings,omitempty"`
	Stats    metrics.EvaluationStats `json:"stats"`
	CachedAt time.Time               `json:"cachedAt"`
}

// Vocabulary for the closed enum attributes. Ordinal scales map members to
// ranks; rank distance drives their match scores.
var (
	sunExposureValues = []string{"full-sun", "partial-sun", "shade"}
	soilTypeValues    = []string{"clay", "loam", "sand", "silt", "chalk", "peat"}
	bloomSeasonValues = []string{"spring", "summer", "fall", "winter"}

	moistureScale = map[string]int{"dry": 0, "moist": 1, "wet": 2}
	careScale     = map[string]int{"low": 0, "medium": 1, "high": 2}
	costScale     = map[string]int{"budget": 0, "moderate": 1, "premium": 2}
)
