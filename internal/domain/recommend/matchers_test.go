package recommend

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMatchSet(t *testing.T) {
	cases := []struct {
		name      string
		criterion []string
		plant     []string
		want      float64
	}{
		{name: "no preference", criterion: nil, plant: []string{"clay"}, want: 1},
		{name: "full coverage", criterion: []string{"full-sun"}, plant: []string{"full-sun", "partial-sun"}, want: 1},
		{name: "partial coverage", criterion: []string{"full-sun", "shade"}, plant: []string{"full-sun"}, want: 0.5},
		{name: "case insensitive", criterion: []string{"Full-Sun"}, plant: []string{"full-sun"}, want: 1},
		{name: "no coverage", criterion: []string{"red"}, plant: []string{"white"}, want: 0},
		{name: "empty plant set", criterion: []string{"spring"}, plant: []string{}, want: 0},
	}

	for _, tc := range cases {
		if got := matchSet(tc.criterion, tc.plant); !almostEqual(got, tc.want) {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestMatchNumericRange(t *testing.T) {
	cases := []struct {
		name      string
		criterion NumericRange
		plant     NumericRange
		tolerance float64
		want      float64
	}{
		{name: "identical", criterion: NumericRange{100, 200}, plant: NumericRange{100, 200}, tolerance: 30, want: 1},
		{name: "plant covers criterion", criterion: NumericRange{100, 200}, plant: NumericRange{50, 400}, tolerance: 30, want: 1},
		{name: "half overlap", criterion: NumericRange{100, 200}, plant: NumericRange{150, 300}, tolerance: 30, want: 0.5},
		{name: "sliver of overlap floors at the ceiling", criterion: NumericRange{100, 200}, plant: NumericRange{195, 300}, tolerance: 30, want: nearMissCeiling},
		{name: "touching scores the ceiling", criterion: NumericRange{100, 200}, plant: NumericRange{200, 300}, tolerance: 30, want: nearMissCeiling},
		{name: "hairline gap stays under the ceiling", criterion: NumericRange{100, 200}, plant: NumericRange{201, 300}, tolerance: 30, want: nearMissCeiling * 30.0 / 31.0},
		{name: "near miss decays", criterion: NumericRange{100, 200}, plant: NumericRange{250, 300}, tolerance: 30, want: 0.1875},
		{name: "far miss decays further", criterion: NumericRange{100, 200}, plant: NumericRange{400, 500}, tolerance: 30, want: nearMissCeiling * 30.0 / 230.0},
		{name: "point criterion inside", criterion: NumericRange{150, 150}, plant: NumericRange{100, 200}, tolerance: 30, want: 1},
		{name: "point criterion outside", criterion: NumericRange{250, 250}, plant: NumericRange{100, 200}, tolerance: 30, want: 0.375},
		{name: "point plant inside criterion", criterion: NumericRange{100, 200}, plant: NumericRange{150, 150}, tolerance: 30, want: 1},
	}

	for _, tc := range cases {
		if got := matchNumericRange(tc.criterion, tc.plant, tc.tolerance); !almostEqual(got, tc.want) {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestMatchNumericRangeMonotonic(t *testing.T) {
	criterion := NumericRange{100, 200}

	// Widening plant overlap must never lower the score.
	prev := -1.0
	for _, plantMax := range []float64{110, 140, 170, 200, 260} {
		got := matchNumericRange(criterion, NumericRange{100, plantMax}, 30)
		if got < prev {
			t.Fatalf("overlap to %v dropped score from %v to %v", plantMax, prev, got)
		}
		prev = got
	}

	// Sliding a fixed-width plant interval toward the criterion shrinks the
	// gap and then grows the overlap; the score must never drop on the way.
	prev = -1.0
	for _, plantMin := range []float64{350, 300, 230, 201, 200, 195, 150, 100} {
		got := matchNumericRange(criterion, NumericRange{plantMin, plantMin + 100}, 30)
		if got < prev {
			t.Fatalf("plant interval at %v dropped score from %v to %v", plantMin, prev, got)
		}
		prev = got
	}
}

func TestMatchZoneRange(t *testing.T) {
	cases := []struct {
		name      string
		criterion ZoneRange
		plant     ZoneRange
		gapLimit  int
		want      float64
	}{
		{name: "plant covers request", criterion: ZoneRange{5, 7}, plant: ZoneRange{4, 8}, gapLimit: 3, want: 1},
		{name: "single shared zone", criterion: ZoneRange{5, 7}, plant: ZoneRange{7, 9}, gapLimit: 3, want: 1},
		{name: "narrow plant inside", criterion: ZoneRange{5, 7}, plant: ZoneRange{6, 6}, gapLimit: 3, want: 1},
		{name: "one zone off", criterion: ZoneRange{5, 7}, plant: ZoneRange{8, 8}, gapLimit: 3, want: 1 - 1.0/3.0},
		{name: "two zones off", criterion: ZoneRange{5, 7}, plant: ZoneRange{9, 10}, gapLimit: 3, want: 1 - 2.0/3.0},
		{name: "beyond gap limit", criterion: ZoneRange{5, 7}, plant: ZoneRange{11, 12}, gapLimit: 3, want: 0},
		{name: "colder miss", criterion: ZoneRange{6, 8}, plant: ZoneRange{3, 4}, gapLimit: 3, want: 1 - 2.0/3.0},
	}

	for _, tc := range cases {
		if got := matchZoneRange(tc.criterion, tc.plant, tc.gapLimit); !almostEqual(got, tc.want) {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestMatchOrdinalRank(t *testing.T) {
	cases := []struct {
		name        string
		criterion   int
		plant       int
		maxDistance int
		want        float64
	}{
		{name: "same rank", criterion: 1, plant: 1, maxDistance: 2, want: 1},
		{name: "one step", criterion: 0, plant: 1, maxDistance: 2, want: 0.5},
		{name: "full distance", criterion: 0, plant: 2, maxDistance: 2, want: 0},
		{name: "degenerate scale", criterion: 0, plant: 0, maxDistance: 0, want: 1},
	}

	for _, tc := range cases {
		if got := matchOrdinalRank(tc.criterion, tc.plant, tc.maxDistance); !almostEqual(got, tc.want) {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestMatchOrdinalValue(t *testing.T) {
	cases := []struct {
		name      string
		criterion float64
		plant     float64
		want      float64
	}{
		{name: "equal", criterion: 0.8, plant: 0.8, want: 1},
		{name: "half apart", criterion: 0.9, plant: 0.4, want: 0.5},
		{name: "opposite ends", criterion: 1, plant: 0, want: 0},
		{name: "out of range clamps", criterion: 1.5, plant: 0.5, want: 0.5},
	}

	for _, tc := range cases {
		if got := matchOrdinalValue(tc.criterion, tc.plant); !almostEqual(got, tc.want) {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestMatchBool(t *testing.T) {
	if got := matchBool(true); !almostEqual(got, 1) {
		t.Fatalf("expected satisfied trait to score 1, got %v", got)
	}
	if got := matchBool(false); !almostEqual(got, softConstraintFloor) {
		t.Fatalf("expected missing trait to floor at %v, got %v", softConstraintFloor, got)
	}
}
