package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
)

// Plant is one catalog entry: nursery identity plus the attribute sheet the
// recommendation engine scores against.
type Plant struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	ScientificName string     `json:"scientificName,omitempty"`
	Description    string     `json:"description,omitempty"`
	SupplierID     *uuid.UUID `json:"supplierId,omitempty"`
	PriceEUR       *float64   `json:"priceEur,omitempty"`

	recommend.PlantAttributes

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Record converts the entry into the shape the scoring engine consumes.
func (p Plant) Record() recommend.PlantRecord {
	return recommend.PlantRecord{
		ID:              p.ID.String(),
		Name:            p.Name,
		PlantAttributes: p.PlantAttributes,
	}
}

// Supplier is a nursery or wholesaler plants are sourced from.
type Supplier struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	City         string    `json:"city,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PlantPhoto stores uploaded photo metadata. A plant carries at most one
// photo; attaching a new one replaces the previous.
type PlantPhoto struct {
	ID         uuid.UUID `json:"id"`
	PlantID    uuid.UUID `json:"plantId"`
	StorageKey string    `json:"storageKey"`
	SizeBytes  int64     `json:"sizeBytes"`
	MimeType   string    `json:"mimeType"`
	ETag       string    `json:"etag"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SimilarPlant pairs a catalog entry with its trait distance to the anchor
// plant. Smaller distance means more alike.
type SimilarPlant struct {
	Plant    Plant   `json:"plant"`
	Distance float64 `json:"distance"`
}

// PlantFilter narrows catalog listings. Limit 0 means no cap; Offset skips
// that many rows of the name-ordered listing.
type PlantFilter struct {
	Query      string
	SupplierID *uuid.UUID
	NativeOnly bool
	Limit      int
	Offset     int
}
