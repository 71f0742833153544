package projects

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/errors"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/util"
)

// Service orchestrates clients, projects, and their plant selections.
type Service struct {
	clients    ClientRepository
	projects   ProjectRepository
	selections SelectionRepository
	lookup     PlantLookup
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a Service.
func NewService(clients ClientRepository, projects ProjectRepository, selections SelectionRepository, lookup PlantLookup, logger *slog.Logger) *Service {
	return &Service{
		clients:    clients,
		projects:   projects,
		selections: selections,
		lookup:     lookup,
		logger:     logger.With("component", "projects.service"),
		now:        util.NowUTC,
	}
}

// ClientInput carries the mutable fields of a client record.
type ClientInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ProjectInput carries the mutable fields of a project record.
type ProjectInput struct {
	ClientID    uuid.UUID `json:"clientId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	AreaM2      *float64  `json:"areaM2"`
	BudgetEUR   *float64  `json:"budgetEur"`
	Status      string    `json:"status"`
}

// SelectionInput adds one plant to a project.
type SelectionInput struct {
	PlantID  uuid.UUID `json:"plantId"`
	Quantity int       `json:"quantity"`
	Notes    string    `json:"notes"`
}

// CreateClient validates and stores a new client.
func (s *Service) CreateClient(ctx context.Context, input ClientInput) (Client, error) {
	if err := validateClientInput(&input); err != nil {
		return Client{}, err
	}
	now := s.now()
	client := Client{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return Client{}, apperrors.Wrap("storage_error", "failed to persist client", err)
	}
	return client, nil
}

// UpdateClient replaces the mutable fields of an existing client.
func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, input ClientInput) (Client, error) {
	existing, found, err := s.clients.Get(ctx, id)
	if err != nil {
		return Client{}, apperrors.Wrap("storage_error", "failed to load client", err)
	}
	if !found {
		return Client{}, apperrors.Wrap("not_found", "client not found", nil)
	}
	if err := validateClientInput(&input); err != nil {
		return Client{}, err
	}
	existing.Name = input.Name
	existing.Email = input.Email
	existing.Phone = input.Phone
	existing.Address = input.Address
	existing.UpdatedAt = s.now()

	ok, err := s.clients.Update(ctx, existing)
	if err != nil {
		return Client{}, apperrors.Wrap("storage_error", "failed to update client", err)
	}
	if !ok {
		return Client{}, apperrors.Wrap("not_found", "client not found", nil)
	}
	return existing, nil
}

// GetClient fetches a single client.
func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (Client, error) {
	client, found, err := s.clients.Get(ctx, id)
	if err != nil {
		return Client{}, apperrors.Wrap("storage_error", "failed to fetch client", err)
	}
	if !found {
		return Client{}, apperrors.Wrap("not_found", "client not found", nil)
	}
	return client, nil
}

// ListClients returns all clients.
func (s *Service) ListClients(ctx context.Context) ([]Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list clients", err)
	}
	return clients, nil
}

// DeleteClient removes a client that has no projects.
func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	count, err := s.projects.CountByClient(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to check client projects", err)
	}
	if count > 0 {
		return apperrors.Wrap("invalid_request", "client still has projects", nil)
	}
	ok, err := s.clients.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to delete client", err)
	}
	if !ok {
		return apperrors.Wrap("not_found", "client not found", nil)
	}
	return nil
}

// CreateProject validates and stores a new project for an existing client.
func (s *Service) CreateProject(ctx context.Context, input ProjectInput) (Project, error) {
	status, err := s.validateProjectInput(ctx, &input)
	if err != nil {
		return Project{}, err
	}
	now := s.now()
	project := Project{
		ID:          uuid.New(),
		ClientID:    input.ClientID,
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		AreaM2:      input.AreaM2,
		BudgetEUR:   input.BudgetEUR,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return Project{}, apperrors.Wrap("storage_error", "failed to persist project", err)
	}
	s.logger.Info("project created", "project_id", project.ID, "client_id", project.ClientID)
	return project, nil
}

// UpdateProject replaces the mutable fields of an existing project.
func (s *Service) UpdateProject(ctx context.Context, id uuid.UUID, input ProjectInput) (Project, error) {
	existing, found, err := s.projects.Get(ctx, id)
	if err != nil {
		return Project{}, apperrors.Wrap("storage_error", "failed to load project", err)
	}
	if !found {
		return Project{}, apperrors.Wrap("not_found", "project not found", nil)
	}
	status, err := s.validateProjectInput(ctx, &input)
	if err != nil {
		return Project{}, err
	}
	existing.ClientID = input.ClientID
	existing.Name = input.Name
	existing.Description = input.Description
	existing.Location = input.Location
	existing.AreaM2 = input.AreaM2
	existing.BudgetEUR = input.BudgetEUR
	existing.Status = status
	existing.UpdatedAt = s.now()

	ok, err := s.projects.Update(ctx, existing)
	if err != nil {
		return Project{}, apperrors.Wrap("storage_error", "failed to update project", err)
	}
	if !ok {
		return Project{}, apperrors.Wrap("not_found", "project not found", nil)
	}
	return existing, nil
}

// GetProject fetches a single project.
func (s *Service) GetProject(ctx context.Context, id uuid.UUID) (Project, error) {
	project, found, err := s.projects.Get(ctx, id)
	if err != nil {
		return Project{}, apperrors.Wrap("storage_error", "failed to fetch project", err)
	}
	if !found {
		return Project{}, apperrors.Wrap("not_found", "project not found", nil)
	}
	return project, nil
}

// ListProjects returns projects matching the filter.
func (s *Service) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list projects", err)
	}
	return projects, nil
}

// DeleteProject removes a project and its plant selections.
func (s *Service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	ok, err := s.projects.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to delete project", err)
	}
	if !ok {
		return apperrors.Wrap("not_found", "project not found", nil)
	}
	if err := s.selections.DeleteByProject(ctx, id); err != nil {
		s.logger.Warn("selection cleanup failed", "project_id", id, "error", err)
	}
	return nil
}

// AddPlant puts a catalog plant on the project's list, replacing any earlier
// selection of the same plant.
func (s *Service) AddPlant(ctx context.Context, projectID uuid.UUID, input SelectionInput) (PlantSelection, error) {
	if input.Quantity < 1 {
		return PlantSelection{}, apperrors.Wrap("invalid_request", "quantity must be at least 1", nil)
	}
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return PlantSelection{}, err
	}
	_, found, err := s.lookup.PlantInfo(ctx, input.PlantID)
	if err != nil {
		return PlantSelection{}, apperrors.Wrap("storage_error", "failed to check plant", err)
	}
	if !found {
		return PlantSelection{}, apperrors.Wrap("invalid_request", "unknown plant", nil)
	}
	selection := PlantSelection{
		ID:        uuid.New(),
		ProjectID: projectID,
		PlantID:   input.PlantID,
		Quantity:  input.Quantity,
		Notes:     strings.TrimSpace(input.Notes),
		AddedAt:   s.now(),
	}
	if err := s.selections.Upsert(ctx, selection); err != nil {
		return PlantSelection{}, apperrors.Wrap("storage_error", "failed to persist selection", err)
	}
	return selection, nil
}

// RemovePlant drops a plant from the project's list.
func (s *Service) RemovePlant(ctx context.Context, projectID, plantID uuid.UUID) error {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return err
	}
	ok, err := s.selections.Remove(ctx, projectID, plantID)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to remove selection", err)
	}
	if !ok {
		return apperrors.Wrap("not_found", "plant not selected for project", nil)
	}
	return nil
}

// ListSelections returns the project's plant list.
func (s *Service) ListSelections(ctx context.Context, projectID uuid.UUID) ([]PlantSelection, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	selections, err := s.selections.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list selections", err)
	}
	return selections, nil
}

// Summary aggregates the project, its client, and the selected plants with
// quantities and estimated cost. Selections whose plant has left the catalog
// stay listed without a price.
func (s *Service) Summary(ctx context.Context, projectID uuid.UUID) (ProjectSummary, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return ProjectSummary{}, err
	}
	client, err := s.GetClient(ctx, project.ClientID)
	if err != nil {
		return ProjectSummary{}, err
	}
	selections, err := s.selections.ListByProject(ctx, projectID)
	if err != nil {
		return ProjectSummary{}, apperrors.Wrap("storage_error", "failed to list selections", err)
	}

	summary := ProjectSummary{
		Project:      project,
		Client:       client,
		Selections:   make([]SelectionEntry, 0, len(selections)),
		UniquePlants: len(selections),
	}
	var (
		cost   float64
		priced bool
	)
	for _, selection := range selections {
		entry := SelectionEntry{Selection: selection, PlantName: "(no longer in catalog)"}
		info, found, err := s.lookup.PlantInfo(ctx, selection.PlantID)
		if err != nil {
			return ProjectSummary{}, apperrors.Wrap("storage_error", "failed to resolve plant", err)
		}
		if found {
			entry.PlantName = info.Name
			entry.UnitPrice = info.PriceEUR
			if info.PriceEUR != nil {
				cost += float64(selection.Quantity) * *info.PriceEUR
				priced = true
			}
		}
		summary.TotalPlants += selection.Quantity
		summary.Selections = append(summary.Selections, entry)
	}
	if priced {
		summary.EstimatedCost = &cost
	}
	return summary, nil
}

func (s *Service) validateProjectInput(ctx context.Context, input *ProjectInput) (ProjectStatus, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return "", apperrors.Wrap("invalid_request", "project name is required", nil)
	}
	input.Description = strings.TrimSpace(input.Description)
	input.Location = strings.TrimSpace(input.Location)
	if input.AreaM2 != nil && *input.AreaM2 <= 0 {
		return "", apperrors.Wrap("invalid_request", "area must be positive", nil)
	}
	if input.BudgetEUR != nil && *input.BudgetEUR < 0 {
		return "", apperrors.Wrap("invalid_request", "budget cannot be negative", nil)
	}
	status, err := parseStatus(input.Status)
	if err != nil {
		return "", err
	}
	if input.ClientID == uuid.Nil {
		return "", apperrors.Wrap("invalid_request", "clientId is required", nil)
	}
	_, found, err := s.clients.Get(ctx, input.ClientID)
	if err != nil {
		return "", apperrors.Wrap("storage_error", "failed to check client", err)
	}
	if !found {
		return "", apperrors.Wrap("invalid_request", "unknown client", nil)
	}
	return status, nil
}

func validateClientInput(input *ClientInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return apperrors.Wrap("invalid_request", "client name is required", nil)
	}
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	return nil
}

func parseStatus(raw string) (ProjectStatus, error) {
	switch ProjectStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return ProjectStatusDraft, nil
	case ProjectStatusDraft:
		return ProjectStatusDraft, nil
	case ProjectStatusActive:
		return ProjectStatusActive, nil
	case ProjectStatusCompleted:
		return ProjectStatusCompleted, nil
	default:
		return "", apperrors.Wrap("invalid_request", fmt.Sprintf("unknown project status %q", raw), nil)
	}
}
