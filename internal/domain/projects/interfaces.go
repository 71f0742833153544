package projects

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository persists clients.
type ClientRepository interface {
	Create(ctx context.Context, client Client) error
	Update(ctx context.Context, client Client) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (Client, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]Client, error)
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	Create(ctx context.Context, project Project) error
	Update(ctx context.Context, project Project) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (Project, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter ProjectFilter) ([]Project, error)
	CountByClient(ctx context.Context, clientID uuid.UUID) (int, error)
}

// SelectionRepository persists the plants picked for each project. Upsert
// keys on (project, plant).
type SelectionRepository interface {
	Upsert(ctx context.Context, selection PlantSelection) error
	Remove(ctx context.Context, projectID, plantID uuid.UUID) (bool, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]PlantSelection, error)
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

// PlantInfo is the slice of catalog data this domain needs.
type PlantInfo struct {
	ID       uuid.UUID
	Name     string
	PriceEUR *float64
}

// PlantLookup exposes the plant catalog to the projects domain without
// pulling in the full catalog service.
type PlantLookup interface {
	PlantInfo(ctx context.Context, id uuid.UUID) (PlantInfo, bool, error)
}
