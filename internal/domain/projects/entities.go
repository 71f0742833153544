package projects

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus tracks a project through its lifecycle.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Client is the customer a project is designed for.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project is one landscape design engagement.
type Project struct {
	ID          uuid.UUID     `json:"id"`
	ClientID    uuid.UUID     `json:"clientId"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	AreaM2      *float64      `json:"areaM2,omitempty"`
	BudgetEUR   *float64      `json:"budgetEur,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// PlantSelection records one plant picked for a project. A project holds at
// most one selection per plant; re-adding replaces quantity and notes.
type PlantSelection struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	PlantID   uuid.UUID `json:"plantId"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// SelectionEntry joins a selection with its catalog details for reporting.
type SelectionEntry struct {
	Selection PlantSelection `json:"selection"`
	PlantName string         `json:"plantName"`
	UnitPrice *float64       `json:"unitPrice,omitempty"`
}

// ProjectSummary aggregates a project's plant list.
type ProjectSummary struct {
	Project       Project          `json:"project"`
	Client        Client           `json:"client"`
	Selections    []SelectionEntry `json:"selections"`
	TotalPlants   int              `json:"totalPlants"`
	UniquePlants  int              `json:"uniquePlants"`
	EstimatedCost *float64         `json:"estimatedCost,omitempty"`
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	ClientID *uuid.UUID
	Status   *ProjectStatus
}
