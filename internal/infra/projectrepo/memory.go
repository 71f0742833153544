package projectrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/projects"
)

// MemoryClientRepository is an in-memory client store used for tests/dev.
type MemoryClientRepository struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]projects.Client
}

// NewMemoryClientRepository constructs a repo backed by memory.
func NewMemoryClientRepository() *MemoryClientRepository {
	return &MemoryClientRepository{clients: make(map[uuid.UUID]projects.Client)}
}

func (r *MemoryClientRepository) Create(_ context.Context, client projects.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.ID] = client
	return nil
}

func (r *MemoryClientRepository) Update(_ context.Context, client projects.Client) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[client.ID]; !ok {
		return false, nil
	}
	r.clients[client.ID] = client
	return true, nil
}

func (r *MemoryClientRepository) Get(_ context.Context, id uuid.UUID) (projects.Client, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[id]
	return client, ok, nil
}

func (r *MemoryClientRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return false, nil
	}
	delete(r.clients, id)
	return true, nil
}

func (r *MemoryClientRepository) List(_ context.Context) ([]projects.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clients := make([]projects.Client, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return strings.ToLower(clients[i].Name) < strings.ToLower(clients[j].Name)
	})
	return clients, nil
}

var _ projects.ClientRepository = (*MemoryClientRepository)(nil)

// MemoryProjectRepository is an in-memory project store used for tests/dev.
type MemoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]projects.Project
}

// NewMemoryProjectRepository constructs a repo backed by memory.
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{projects: make(map[uuid.UUID]projects.Project)}
}

func (r *MemoryProjectRepository) Create(_ context.Context, project projects.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = project
	return nil
}

func (r *MemoryProjectRepository) Update(_ context.Context, project projects.Project) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[project.ID]; !ok {
		return false, nil
	}
	r.projects[project.ID] = project
	return true, nil
}

func (r *MemoryProjectRepository) Get(_ context.Context, id uuid.UUID) (projects.Project, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	project, ok := r.projects[id]
	return project, ok, nil
}

func (r *MemoryProjectRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

func (r *MemoryProjectRepository) List(_ context.Context, filter projects.ProjectFilter) ([]projects.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []projects.Project
	for _, project := range r.projects {
		if filter.ClientID != nil && project.ClientID != *filter.ClientID {
			continue
		}
		if filter.Status != nil && project.Status != *filter.Status {
			continue
		}
		list = append(list, project)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID.String() < list[j].ID.String()
	})
	return list, nil
}

func (r *MemoryProjectRepository) CountByClient(_ context.Context, clientID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, project := range r.projects {
		if project.ClientID == clientID {
			count++
		}
	}
	return count, nil
}

var _ projects.ProjectRepository = (*MemoryProjectRepository)(nil)

// MemorySelectionRepository is an in-memory selection store used for
// tests/dev.
type MemorySelectionRepository struct {
	mu        sync.RWMutex
	byProject map[uuid.UUID][]projects.PlantSelection
}

// NewMemorySelectionRepository constructs a repo backed by memory.
func NewMemorySelectionRepository() *MemorySelectionRepository {
	return &MemorySelectionRepository{byProject: make(map[uuid.UUID][]projects.PlantSelection)}
}

func (r *MemorySelectionRepository) Upsert(_ context.Context, selection projects.PlantSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byProject[selection.ProjectID]
	for i, existing := range list {
		if existing.PlantID == selection.PlantID {
			list[i] = selection
			r.byProject[selection.ProjectID] = list
			return nil
		}
	}
	r.byProject[selection.ProjectID] = append(list, selection)
	return nil
}

func (r *MemorySelectionRepository) Remove(_ context.Context, projectID, plantID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byProject[projectID]
	for i, selection := range list {
		if selection.PlantID == plantID {
			r.byProject[projectID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *MemorySelectionRepository) ListByProject(_ context.Context, projectID uuid.UUID) ([]projects.PlantSelection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]projects.PlantSelection(nil), r.byProject[projectID]...), nil
}

func (r *MemorySelectionRepository) DeleteByProject(_ context.Context, projectID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byProject, projectID)
	return nil
}

var _ projects.SelectionRepository = (*MemorySelectionRepository)(nil)
