package recommend

import "context"

// CatalogSource supplies the plant catalog to score against. Version returns
// an opaque token that changes on every catalog mutation; it scopes cached
// results so stale recommendations never outlive catalog edits.
type CatalogSource interface {
	ListPlants(ctx context.Context) ([]PlantRecord, error)
	Version(ctx context.Context) (string, error)
}
