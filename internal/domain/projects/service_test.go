package projects

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/errors"
)

type stubClientRepo struct {
	clients map[uuid.UUID]Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]Client)}
}

func (r *stubClientRepo) Create(_ context.Context, client Client) error {
	r.clients[client.ID] = client
	return nil
}

func (r *stubClientRepo) Update(_ context.Context, client Client) (bool, error) {
	if _, ok := r.clients[client.ID]; !ok {
		return false, nil
	}
	r.clients[client.ID] = client
	return true, nil
}

func (r *stubClientRepo) Get(_ context.Context, id uuid.UUID) (Client, bool, error) {
	client, ok := r.clients[id]
	return client, ok, nil
}

func (r *stubClientRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.clients[id]; !ok {
		return false, nil
	}
	delete(r.clients, id)
	return true, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]Client, error) {
	out := make([]Client, 0, len(r.clients))
	for _, client := range r.clients {
		out = append(out, client)
	}
	return out, nil
}

type stubProjectRepo struct {
	projects map[uuid.UUID]Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[uuid.UUID]Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, project Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *stubProjectRepo) Update(_ context.Context, project Project) (bool, error) {
	if _, ok := r.projects[project.ID]; !ok {
		return false, nil
	}
	r.projects[project.ID] = project
	return true, nil
}

func (r *stubProjectRepo) Get(_ context.Context, id uuid.UUID) (Project, bool, error) {
	project, ok := r.projects[id]
	return project, ok, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

func (r *stubProjectRepo) List(_ context.Context, filter ProjectFilter) ([]Project, error) {
	out := make([]Project, 0, len(r.projects))
	for _, project := range r.projects {
		if filter.ClientID != nil && project.ClientID != *filter.ClientID {
			continue
		}
		if filter.Status != nil && project.Status != *filter.Status {
			continue
		}
		out = append(out, project)
	}
	return out, nil
}

func (r *stubProjectRepo) CountByClient(_ context.Context, clientID uuid.UUID) (int, error) {
	count := 0
	for _, project := range r.projects {
		if project.ClientID == clientID {
			count++
		}
	}
	return count, nil
}

type stubSelectionRepo struct {
	byProject map[uuid.UUID][]PlantSelection
}

func newStubSelectionRepo() *stubSelectionRepo {
	return &stubSelectionRepo{byProject: make(map[uuid.UUID][]PlantSelection)}
}

func (r *stubSelectionRepo) Upsert(_ context.Context, selection PlantSelection) error {
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

func (r *stubSelectionRepo) Remove(_ context.Context, projectID, plantID uuid.UUID) (bool, error) {
	list := r.byProject[projectID]
	for i, selection := range list {
		if selection.PlantID == plantID {
			r.byProject[projectID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSelectionRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]PlantSelection, error) {
	return append([]PlantSelection(nil), r.byProject[projectID]...), nil
}

func (r *stubSelectionRepo) DeleteByProject(_ context.Context, projectID uuid.UUID) error {
	delete(r.byProject, projectID)
	return nil
}

type stubLookup struct {
	plants map[uuid.UUID]PlantInfo
}

func (l *stubLookup) PlantInfo(_ context.Context, id uuid.UUID) (PlantInfo, bool, error) {
	info, ok := l.plants[id]
	return info, ok, nil
}

var (
	_ ClientRepository    = (*stubClientRepo)(nil)
	_ ProjectRepository   = (*stubProjectRepo)(nil)
	_ SelectionRepository = (*stubSelectionRepo)(nil)
	_ PlantLookup         = (*stubLookup)(nil)
)

type projectsFixture struct {
	svc        *Service
	clients    *stubClientRepo
	projects   *stubProjectRepo
	selections *stubSelectionRepo
	lookup     *stubLookup
}

func newFixture() projectsFixture {
	clients := newStubClientRepo()
	projects := newStubProjectRepo()
	selections := newStubSelectionRepo()
	lookup := &stubLookup{plants: make(map[uuid.UUID]PlantInfo)}
	svc := &Service{
		clients:    clients,
		projects:   projects,
		selections: selections,
		lookup:     lookup,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	return projectsFixture{svc: svc, clients: clients, projects: projects, selections: selections, lookup: lookup}
}

func (f projectsFixture) mustClient(t *testing.T) Client {
	t.Helper()
	client, err := f.svc.CreateClient(context.Background(), ClientInput{Name: "Gemeente Amsterdam"})
	require.NoError(t, err)
	return client
}

func (f projectsFixture) mustProject(t *testing.T, clientID uuid.UUID) Project {
	t.Helper()
	project, err := f.svc.CreateProject(context.Background(), ProjectInput{
		ClientID: clientID,
		Name:     "Vondelpark border",
	})
	require.NoError(t, err)
	return project
}

func floatPtr(f float64) *float64 { return &f }

func TestCreateProjectDefaultsToDraft(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)

	project, err := f.svc.CreateProject(context.Background(), ProjectInput{
		ClientID: client.ID,
		Name:     "  Rooftop garden  ",
	})
	require.NoError(t, err)
	require.Equal(t, ProjectStatusDraft, project.Status)
	require.Equal(t, "Rooftop garden", project.Name)
	require.NotEqual(t, uuid.Nil, project.ID)
}

func TestCreateProjectRejectsUnknownClient(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateProject(context.Background(), ProjectInput{
		ClientID: uuid.New(),
		Name:     "Orphan",
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_request"))
}

func TestCreateProjectRejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)

	_, err := f.svc.CreateProject(context.Background(), ProjectInput{
		ClientID: client.ID,
		Name:     "Courtyard",
		Status:   "paused",
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_request"))
}

func TestUpdateProjectChangesStatus(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)
	project := f.mustProject(t, client.ID)

	updated, err := f.svc.UpdateProject(context.Background(), project.ID, ProjectInput{
		ClientID: client.ID,
		Name:     project.Name,
		Status:   "Active",
	})
	require.NoError(t, err)
	require.Equal(t, ProjectStatusActive, updated.Status)
	require.Equal(t, project.CreatedAt, updated.CreatedAt)
}

func TestListProjectsFilters(t *testing.T) {
	f := newFixture()
	clientA := f.mustClient(t)
	clientB, err := f.svc.CreateClient(context.Background(), ClientInput{Name: "Private client"})
	require.NoError(t, err)
	f.mustProject(t, clientA.ID)
	f.mustProject(t, clientB.ID)

	all, err := f.svc.ListProjects(context.Background(), ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	scoped, err := f.svc.ListProjects(context.Background(), ProjectFilter{ClientID: &clientA.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, clientA.ID, scoped[0].ClientID)
}

func TestDeleteClientBlockedByProjects(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)
	f.mustProject(t, client.ID)

	err := f.svc.DeleteClient(context.Background(), client.ID)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_request"))
}

func TestDeleteProjectRemovesSelections(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)
	project := f.mustProject(t, client.ID)
	plantID := uuid.New()
	f.lookup.plants[plantID] = PlantInfo{ID: plantID, Name: "Rose"}
	_, err := f.svc.AddPlant(context.Background(), project.ID, SelectionInput{PlantID: plantID, Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProject(context.Background(), project.ID))
	require.NotContains(t, f.projects.projects, project.ID)
	require.NotContains(t, f.selections.byProject, project.ID)
}

func TestAddPlantValidation(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)
	project := f.mustProject(t, client.ID)
	plantID := uuid.New()
	f.lookup.plants[plantID] = PlantInfo{ID: plantID, Name: "Rose"}

	_, err := f.svc.AddPlant(context.Background(), project.ID, SelectionInput{PlantID: plantID, Quantity: 0})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_request"))

	_, err = f.svc.AddPlant(context.Background(), project.ID, SelectionInput{PlantID: uuid.New(), Quantity: 2})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_request"))

	_, err = f.svc.AddPlant(context.Background(), uuid.New(), SelectionInput{PlantID: plantID, Quantity: 2})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestAddPlantReplacesEarlierSelection(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)
	project := f.mustProject(t, client.ID)
	plantID := uuid.New()
	f.lookup.plants[plantID] = PlantInfo{ID: plantID, Name: "Rose"}

	_, err := f.svc.AddPlant(context.Background(), project.ID, SelectionInput{PlantID: plantID, Quantity: 3})
	require.NoError(t, err)
	_, err = f.svc.AddPlant(context.Background(), project.ID, SelectionInput{PlantID: plantID, Quantity: 12})
	require.NoError(t, err)

	selections, err := f.svc.ListSelections(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, selections, 1)
	require.Equal(t, 12, selections[0].Quantity)
}

func TestRemovePlantNotSelected(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)
	project := f.mustProject(t, client.ID)

	err := f.svc.RemovePlant(context.Background(), project.ID, uuid.New())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestSummaryAggregatesSelections(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)
	project := f.mustProject(t, client.ID)

	roseID := uuid.New()
	fernID := uuid.New()
	ghostID := uuid.New()
	f.lookup.plants[roseID] = PlantInfo{ID: roseID, Name: "Rose", PriceEUR: floatPtr(4.5)}
	f.lookup.plants[fernID] = PlantInfo{ID: fernID, Name: "Fern"}
	f.lookup.plants[ghostID] = PlantInfo{ID: ghostID, Name: "Ghost"}

	for _, sel := range []SelectionInput{
		{PlantID: roseID, Quantity: 10},
		{PlantID: fernID, Quantity: 5},
		{PlantID: ghostID, Quantity: 3},
	} {
		_, err := f.svc.AddPlant(context.Background(), project.ID, sel)
		require.NoError(t, err)
	}
	// The ghost plant leaves the catalog after selection.
	delete(f.lookup.plants, ghostID)

	summary, err := f.svc.Summary(context.Background(), project.ID)
	require.NoError(t, err)

	require.Equal(t, project.ID, summary.Project.ID)
	require.Equal(t, client.ID, summary.Client.ID)
	require.Equal(t, 18, summary.TotalPlants)
	require.Equal(t, 3, summary.UniquePlants)
	require.NotNil(t, summary.EstimatedCost)
	require.InDelta(t, 45.0, *summary.EstimatedCost, 1e-9)

	byPlant := make(map[uuid.UUID]SelectionEntry, len(summary.Selections))
	for _, entry := range summary.Selections {
		byPlant[entry.Selection.PlantID] = entry
	}
	require.Equal(t, "Rose", byPlant[roseID].PlantName)
	require.Nil(t, byPlant[fernID].UnitPrice)
	require.Equal(t, "(no longer in catalog)", byPlant[ghostID].PlantName)
}

func TestSummaryWithoutPricesOmitsCost(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)
	project := f.mustProject(t, client.ID)
	fernID := uuid.New()
	f.lookup.plants[fernID] = PlantInfo{ID: fernID, Name: "Fern"}
	_, err := f.svc.AddPlant(context.Background(), project.ID, SelectionInput{PlantID: fernID, Quantity: 5})
	require.NoError(t, err)

	summary, err := f.svc.Summary(context.Background(), project.ID)
	require.NoError(t, err)
	require.Nil(t, summary.EstimatedCost)
}

func TestClientLifecycle(t *testing.T) {
	f := newFixture()

	client, err := f.svc.CreateClient(context.Background(), ClientInput{Name: "  Hovenier De Groot  ", Email: "info@degroot.nl"})
	require.NoError(t, err)
	require.Equal(t, "Hovenier De Groot", client.Name)

	updated, err := f.svc.UpdateClient(context.Background(), client.ID, ClientInput{Name: "De Groot BV"})
	require.NoError(t, err)
	require.Equal(t, client.ID, updated.ID)
	require.Equal(t, "De Groot BV", updated.Name)

	require.NoError(t, f.svc.DeleteClient(context.Background(), client.ID))

	_, err = f.svc.GetClient(context.Background(), client.ID)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestCreateClientRequiresName(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateClient(context.Background(), ClientInput{Name: " "})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_request"))
}

func TestCreateProjectValidatesNumbers(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t)

	_, err := f.svc.CreateProject(context.Background(), ProjectInput{
		ClientID: client.ID,
		Name:     "Courtyard",
		AreaM2:   floatPtr(-10),
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_request"))

	_, err = f.svc.CreateProject(context.Background(), ProjectInput{
		ClientID:  client.ID,
		Name:      "Courtyard",
		BudgetEUR: floatPtr(-1),
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_request"))
}
