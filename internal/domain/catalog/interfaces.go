package catalog

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// PlantRepository persists catalog plants.
type PlantRepository interface {
	Create(ctx context.Context, plant Plant) error
	Update(ctx context.Context, plant Plant) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (Plant, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter PlantFilter) ([]Plant, error)
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int, error)
	SearchSimilar(ctx context.Context, anchor uuid.UUID, vector []float32, limit int) ([]SimilarPlant, error)
}

// SupplierRepository persists suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier Supplier) error
	Update(ctx context.Context, supplier Supplier) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (Supplier, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]Supplier, error)
}

// PhotoRepository persists plant photo metadata. Set replaces any existing
// row for the plant and returns the replaced photo so its blob can be
// cleaned up.
type PhotoRepository interface {
	Set(ctx context.Context, photo PlantPhoto) (PlantPhoto, bool, error)
	FindByPlant(ctx context.Context, plantID uuid.UUID) (PlantPhoto, bool, error)
	DeleteByPlant(ctx context.Context, plantID uuid.UUID) (PlantPhoto, bool, error)
}

// ObjectStorage abstracts photo blob storage (S3-compatible or in-memory).
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// StoredObject captures persisted blob metadata.
type StoredObject struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}
