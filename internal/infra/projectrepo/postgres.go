package projectrepo

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/projects"
)

// PostgresClientRepository persists clients in Postgres.
type PostgresClientRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresClientRepository constructs the repository.
func NewPostgresClientRepository(pool *pgxpool.Pool) *PostgresClientRepository {
	return &PostgresClientRepository{pool: pool}
}

func (r *PostgresClientRepository) Create(ctx context.Context, client projects.Client) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clients (id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, client.ID, client.Name, client.Email, client.Phone, client.Address, client.CreatedAt, client.UpdatedAt)
	return err
}

func (r *PostgresClientRepository) Update(ctx context.Context, client projects.Client) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, address = $4, updated_at = $5
		WHERE id = $6
	`, client.Name, client.Email, client.Phone, client.Address, client.UpdatedAt, client.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresClientRepository) Get(ctx context.Context, id uuid.UUID) (projects.Client, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM clients
		WHERE id = $1
		LIMIT 1
	`, id)
	var client projects.Client
	if err := row.Scan(&client.ID, &client.Name, &client.Email, &client.Phone,
		&client.Address, &client.CreatedAt, &client.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return projects.Client{}, false, nil
		}
		return projects.Client{}, false, err
	}
	return client, true, nil
}

func (r *PostgresClientRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresClientRepository) List(ctx context.Context) ([]projects.Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM clients
		ORDER BY lower(name) ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []projects.Client
	for rows.Next() {
		var client projects.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Email, &client.Phone,
			&client.Address, &client.CreatedAt, &client.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

var _ projects.ClientRepository = (*PostgresClientRepository)(nil)

// PostgresProjectRepository persists projects in Postgres.
type PostgresProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProjectRepository constructs the repository.
func NewPostgresProjectRepository(pool *pgxpool.Pool) *PostgresProjectRepository {
	return &PostgresProjectRepository{pool: pool}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, project projects.Project) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO projects (id, client_id, name, description, location, area_m2, budget_eur, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, project.ID, project.ClientID, project.Name, project.Description, project.Location,
		project.AreaM2, project.BudgetEUR, project.Status, project.CreatedAt, project.UpdatedAt)
	return err
}

func (r *PostgresProjectRepository) Update(ctx context.Context, project projects.Project) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE projects
		SET client_id = $1, name = $2, description = $3, location = $4, area_m2 = $5,
		    budget_eur = $6, status = $7, updated_at = $8
		WHERE id = $9
	`, project.ClientID, project.Name, project.Description, project.Location, project.AreaM2,
		project.BudgetEUR, project.Status, project.UpdatedAt, project.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresProjectRepository) Get(ctx context.Context, id uuid.UUID) (projects.Project, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, client_id, name, description, location, area_m2, budget_eur, status, created_at, updated_at
		FROM projects
		WHERE id = $1
		LIMIT 1
	`, id)
	project, err := scanProject(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return projects.Project{}, false, nil
		}
		return projects.Project{}, false, err
	}
	return project, true, nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresProjectRepository) List(ctx context.Context, filter projects.ProjectFilter) ([]projects.Project, error) {
	query := `
		SELECT id, client_id, name, description, location, area_m2, budget_eur, status, created_at, updated_at
		FROM projects
		WHERE TRUE
	`
	var args []any
	argPos := 1
	if filter.ClientID != nil {
		query += ` AND client_id = $` + strconv.Itoa(argPos)
		args = append(args, *filter.ClientID)
		argPos++
	}
	if filter.Status != nil {
		query += ` AND status = $` + strconv.Itoa(argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []projects.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, project)
	}
	return list, rows.Err()
}

func (r *PostgresProjectRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE client_id = $1`, clientID).Scan(&count)
	return count, err
}

var _ projects.ProjectRepository = (*PostgresProjectRepository)(nil)

// PostgresSelectionRepository persists project plant selections. The
// (project_id, plant_id) pair is unique, so Upsert replaces quantity and
// notes on conflict.
type PostgresSelectionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSelectionRepository constructs the repository.
func NewPostgresSelectionRepository(pool *pgxpool.Pool) *PostgresSelectionRepository {
	return &PostgresSelectionRepository{pool: pool}
}

func (r *PostgresSelectionRepository) Upsert(ctx context.Context, selection projects.PlantSelection) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO project_plants (id, project_id, plant_id, quantity, notes, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (project_id, plant_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, notes = EXCLUDED.notes, added_at = EXCLUDED.added_at
	`, selection.ID, selection.ProjectID, selection.PlantID, selection.Quantity, selection.Notes, selection.AddedAt)
	return err
}

func (r *PostgresSelectionRepository) Remove(ctx context.Context, projectID, plantID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM project_plants WHERE project_id = $1 AND plant_id = $2
	`, projectID, plantID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresSelectionRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]projects.PlantSelection, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, plant_id, quantity, notes, added_at
		FROM project_plants
		WHERE project_id = $1
		ORDER BY added_at ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selections []projects.PlantSelection
	for rows.Next() {
		var selection projects.PlantSelection
		if err := rows.Scan(&selection.ID, &selection.ProjectID, &selection.PlantID,
			&selection.Quantity, &selection.Notes, &selection.AddedAt); err != nil {
			return nil, err
		}
		selections = append(selections, selection)
	}
	return selections, rows.Err()
}

func (r *PostgresSelectionRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM project_plants WHERE project_id = $1`, projectID)
	return err
}

var _ projects.SelectionRepository = (*PostgresSelectionRepository)(nil)

func scanProject(row pgx.Row) (projects.Project, error) {
	var project projects.Project
	if err := row.Scan(&project.ID, &project.ClientID, &project.Name, &project.Description,
		&project.Location, &project.AreaM2, &project.BudgetEUR, &project.Status,
		&project.CreatedAt, &project.UpdatedAt); err != nil {
		return projects.Project{}, err
	}
	return project, nil
}
