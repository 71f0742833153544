package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// criteriaFingerprint hashes the canonical JSON form of the criteria. Go
// marshals map keys sorted, so equal criteria always hash equal regardless of
// how the raw request spelled them.
func criteriaFingerprint(criteria SearchCriteria) string {
	payload, _ := json.Marshal(criteria)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// resultCacheKey scopes a criteria fingerprint to one catalog version.
func resultCacheKey(fingerprint, catalogVersion string) string {
	sum := sha256.Sum256([]byte(fingerprint + "|" + catalogVersion))
	return hex.EncodeToString(sum[:])
}

// describeCriteria renders a compact display string for the trending report.
func describeCriteria(criteria SearchCriteria) string {
	var parts []string
	if criteria.HardinessZone != nil {
		parts = append(parts, fmt.Sprintf("zones %d-%d", criteria.HardinessZone.Min, criteria.HardinessZone.Max))
	}
	if len(criteria.SunExposure) > 0 {
		parts = append(parts, "sun "+strings.Join(criteria.SunExposure, "/"))
	}
	if len(criteria.SoilType) > 0 {
		parts = append(parts, "soil "+strings.Join(criteria.SoilType, "/"))
	}
	if criteria.MoistureNeed != nil {
		parts = append(parts, *criteria.MoistureNeed+" site")
	}
	if criteria.HeightRange != nil {
		parts = append(parts, fmt.Sprintf("height %.0f-%.0fcm", criteria.HeightRange.Min, criteria.HeightRange.Max))
	}
	if len(criteria.BloomColor) > 0 {
		parts = append(parts, "blooms "+strings.Join(criteria.BloomColor, "/"))
	}
	if len(criteria.BloomSeason) > 0 {
		parts = append(parts, strings.Join(criteria.BloomSeason, "/"))
	}
	if criteria.CareLevel != nil {
		parts = append(parts, *criteria.CareLevel+" care")
	}
	for _, flag := range []struct {
		set  *bool
		name string
	}{
		{criteria.IsNative, "native"},
		{criteria.DeerResistant, "deer-resistant"},
		{criteria.PollinatorFriendly, "pollinator-friendly"},
		{criteria.SuitableForContainer, "container"},
		{criteria.SuitableForScreening, "screening"},
		{criteria.SuitableForHedging, "hedging"},
		{criteria.SuitableForGroundcover, "groundcover"},
		{criteria.SlopeTolerant, "slope"},
	} {
		if flag.set != nil && *flag.set {
			parts = append(parts, flag.name)
		}
	}
	if len(parts) == 0 {
		return "any plant"
	}
	return strings.Join(parts, ", ")
}
