package metrics

// EvaluationStats captures how much of the catalog a recommendation run touched.
type EvaluationStats struct {
	PlantsEvaluated int `json:"plantsEvaluated"`
	PlantsSkipped   int `json:"plantsSkipped,omitempty"`
	ResultsReturned int `json:"resultsReturned"`
}

// IsZero reports whether evaluation data is absent.
func (s EvaluationStats) IsZero() bool {
	return s.PlantsEvaluated == 0 && s.PlantsSkipped == 0 && s.ResultsReturned == 0
}
