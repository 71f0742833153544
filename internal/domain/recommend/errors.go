package recommend

import "errors"

// Error codes surfaced through the HTTP layer.
const (
	CodeInvalidCriteria = "invalid_criteria"
	CodeCatalog         = "catalog_error"
	CodeRecommendation  = "recommendation_failed"
)

// ErrInvalidCriteria reports a caller contract violation. It is raised before
// any scoring work begins; data-quality problems never produce it.
var ErrInvalidCriteria = errors.New("invalid criteria")
