package recommend

import "testing"

func TestCriteriaFingerprintStable(t *testing.T) {
	a := SearchCriteria{HardinessZone: zonePtr(5, 7), SunExposure: []string{"full-sun"}, ResultLimit: 10}
	b := SearchCriteria{HardinessZone: zonePtr(5, 7), SunExposure: []string{"full-sun"}, ResultLimit: 10}
	if criteriaFingerprint(a) != criteriaFingerprint(b) {
		t.Fatal("equal criteria must produce equal fingerprints")
	}
}

func TestCriteriaFingerprintDiverges(t *testing.T) {
	a := SearchCriteria{HardinessZone: zonePtr(5, 7), ResultLimit: 10}
	b := SearchCriteria{HardinessZone: zonePtr(5, 8), ResultLimit: 10}
	if criteriaFingerprint(a) == criteriaFingerprint(b) {
		t.Fatal("different criteria must not collide")
	}
}

func TestResultCacheKeyDependsOnCatalogVersion(t *testing.T) {
	fp := criteriaFingerprint(SearchCriteria{ResultLimit: 10})
	if resultCacheKey(fp, "v1") == resultCacheKey(fp, "v2") {
		t.Fatal("cache key must change with the catalog version")
	}
	if len(resultCacheKey(fp, "v1")) != 64 {
		t.Fatal("cache key must be a hex sha256 digest")
	}
}

func TestDescribeCriteria(t *testing.T) {
	cases := []struct {
		name     string
		criteria SearchCriteria
		want     string
	}{
		{
			name:     "empty brief",
			criteria: SearchCriteria{},
			want:     "any plant",
		},
		{
			name: "zones sun care and flags",
			criteria: SearchCriteria{
				HardinessZone: zonePtr(5, 7),
				SunExposure:   []string{"full-sun", "partial-sun"},
				CareLevel:     strPtr("low"),
				IsNative:      boolPtr(true),
				DeerResistant: boolPtr(false),
			},
			want: "zones 5-7, sun full-sun/partial-sun, low care, native",
		},
		{
			name: "site and bloom",
			criteria: SearchCriteria{
				MoistureNeed: strPtr("moist"),
				HeightRange:  &NumericRange{Min: 50, Max: 150},
				BloomSeason:  []string{"spring", "summer"},
			},
			want: "moist site, height 50-150cm, spring/summer",
		},
		{
			name: "soil and color",
			criteria: SearchCriteria{
				SoilType:   []string{"clay"},
				BloomColor: []string{"purple", "white"},
			},
			want: "soil clay, blooms purple/white",
		},
	}
	for _, tc := range cases {
		if got := describeCriteria(tc.criteria); got != tc.want {
			t.Fatalf("%s: describeCriteria() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
