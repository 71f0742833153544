package plantrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/catalog"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/projects"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
)

// PostgresPlantRepository persists plants in Postgres. Trait vectors are
// derived from the attributes on every write so similarity search stays in
// sync with the stored JSONB.
type PostgresPlantRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPlantRepository constructs the repository.
func NewPostgresPlantRepository(pool *pgxpool.Pool) *PostgresPlantRepository {
	return &PostgresPlantRepository{pool: pool}
}

func (r *PostgresPlantRepository) Create(ctx context.Context, plant catalog.Plant) error {
	attrs, err := json.Marshal(plant.PlantAttributes)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO plants (id, name, scientific_name, description, supplier_id, price_eur, attrs, trait_vec, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, plant.ID, plant.Name, plant.ScientificName, plant.Description, plant.SupplierID, plant.PriceEUR,
		attrs, pgvector.NewVector(catalog.TraitVector(plant.PlantAttributes)), plant.CreatedAt, plant.UpdatedAt)
	return err
}

func (r *PostgresPlantRepository) Update(ctx context.Context, plant catalog.Plant) (bool, error) {
	attrs, err := json.Marshal(plant.PlantAttributes)
	if err != nil {
		return false, err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE plants
		SET name = $1, scientific_name = $2, description = $3, supplier_id = $4, price_eur = $5,
		    attrs = $6, trait_vec = $7, updated_at = $8
		WHERE id = $9
	`, plant.Name, plant.ScientificName, plant.Description, plant.SupplierID, plant.PriceEUR,
		attrs, pgvector.NewVector(catalog.TraitVector(plant.PlantAttributes)), plant.UpdatedAt, plant.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresPlantRepository) Get(ctx context.Context, id uuid.UUID) (catalog.Plant, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, scientific_name, description, supplier_id, price_eur, attrs, created_at, updated_at
		FROM plants
		WHERE id = $1
		LIMIT 1
	`, id)
	plant, err := scanPlant(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return catalog.Plant{}, false, nil
		}
		return catalog.Plant{}, false, err
	}
	return plant, true, nil
}

func (r *PostgresPlantRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM plants WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresPlantRepository) List(ctx context.Context, filter catalog.PlantFilter) ([]catalog.Plant, error) {
	query := `
		SELECT id, name, scientific_name, description, supplier_id, price_eur, attrs, created_at, updated_at
		FROM plants
		WHERE TRUE
	`
	var args []any
	argPos := 1
	if filter.Query != "" {
		query += ` AND (name ILIKE $` + itoa(argPos) + ` OR scientific_name ILIKE $` + itoa(argPos) + `)`
		args = append(args, "%"+filter.Query+"%")
		argPos++
	}
	if filter.SupplierID != nil {
		query += ` AND supplier_id = $` + itoa(argPos)
		args = append(args, *filter.SupplierID)
		argPos++
	}
	if filter.NativeOnly {
		query += ` AND (attrs->>'isNative')::boolean IS TRUE`
	}
	query += ` ORDER BY lower(name) ASC`
	if filter.Limit > 0 {
		query += ` LIMIT $` + itoa(argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += ` OFFSET $` + itoa(argPos)
		args = append(args, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []catalog.Plant
	for rows.Next() {
		plant, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, plant)
	}
	return plants, rows.Err()
}

func (r *PostgresPlantRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM plants WHERE supplier_id = $1`, supplierID).Scan(&count)
	return count, err
}

func (r *PostgresPlantRepository) SearchSimilar(ctx context.Context, anchor uuid.UUID, vector []float32, limit int) ([]catalog.SimilarPlant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, scientific_name, description, supplier_id, price_eur, attrs, created_at, updated_at,
		       trait_vec <-> $1 AS distance
		FROM plants
		WHERE id <> $2
		ORDER BY trait_vec <-> $1 ASC
		LIMIT $3
	`, pgvector.NewVector(vector), anchor, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []catalog.SimilarPlant
	for rows.Next() {
		var distance float64
		plant, err := scanPlant(rows, &distance)
		if err != nil {
			return nil, err
		}
		matches = append(matches, catalog.SimilarPlant{Plant: plant, Distance: distance})
	}
	return matches, rows.Err()
}

// ListPlants feeds the recommendation engine the full catalog.
func (r *PostgresPlantRepository) ListPlants(ctx context.Context) ([]recommend.PlantRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, attrs
		FROM plants
		ORDER BY lower(name) ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []recommend.PlantRecord
	for rows.Next() {
		var (
			id      uuid.UUID
			name    string
			rawJSON []byte
		)
		if err := rows.Scan(&id, &name, &rawJSON); err != nil {
			return nil, err
		}
		record := recommend.PlantRecord{ID: id.String(), Name: name}
		if err := json.Unmarshal(rawJSON, &record.PlantAttributes); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Version changes whenever any plant row changes, which invalidates cached
// recommendation results.
func (r *PostgresPlantRepository) Version(ctx context.Context) (string, error) {
	var (
		count   int64
		updated *int64
	)
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), (EXTRACT(EPOCH FROM MAX(updated_at)) * 1000)::bigint
		FROM plants
	`).Scan(&count, &updated)
	if err != nil {
		return "", err
	}
	latest := int64(0)
	if updated != nil {
		latest = *updated
	}
	return fmt.Sprintf("%d-%d", count, latest), nil
}

// PlantInfo resolves the reference projects keep for a selected plant.
func (r *PostgresPlantRepository) PlantInfo(ctx context.Context, id uuid.UUID) (projects.PlantInfo, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, price_eur
		FROM plants
		WHERE id = $1
		LIMIT 1
	`, id)
	var info projects.PlantInfo
	if err := row.Scan(&info.ID, &info.Name, &info.PriceEUR); err != nil {
		if err == pgx.ErrNoRows {
			return projects.PlantInfo{}, false, nil
		}
		return projects.PlantInfo{}, false, err
	}
	return info, true, nil
}

var (
	_ catalog.PlantRepository = (*PostgresPlantRepository)(nil)
	_ recommend.CatalogSource = (*PostgresPlantRepository)(nil)
	_ projects.PlantLookup    = (*PostgresPlantRepository)(nil)
)

// PostgresSupplierRepository persists suppliers.
type PostgresSupplierRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSupplierRepository constructs the repository.
func NewPostgresSupplierRepository(pool *pgxpool.Pool) *PostgresSupplierRepository {
	return &PostgresSupplierRepository{pool: pool}
}

func (r *PostgresSupplierRepository) Create(ctx context.Context, supplier catalog.Supplier) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO suppliers (id, name, contact_email, phone, city, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, supplier.ID, supplier.Name, supplier.ContactEmail, supplier.Phone, supplier.City, supplier.Notes,
		supplier.CreatedAt, supplier.UpdatedAt)
	return err
}

func (r *PostgresSupplierRepository) Update(ctx context.Context, supplier catalog.Supplier) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE suppliers
		SET name = $1, contact_email = $2, phone = $3, city = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`, supplier.Name, supplier.ContactEmail, supplier.Phone, supplier.City, supplier.Notes,
		supplier.UpdatedAt, supplier.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresSupplierRepository) Get(ctx context.Context, id uuid.UUID) (catalog.Supplier, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, contact_email, phone, city, notes, created_at, updated_at
		FROM suppliers
		WHERE id = $1
		LIMIT 1
	`, id)
	var supplier catalog.Supplier
	if err := row.Scan(&supplier.ID, &supplier.Name, &supplier.ContactEmail, &supplier.Phone,
		&supplier.City, &supplier.Notes, &supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return catalog.Supplier{}, false, nil
		}
		return catalog.Supplier{}, false, err
	}
	return supplier, true, nil
}

func (r *PostgresSupplierRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresSupplierRepository) List(ctx context.Context) ([]catalog.Supplier, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, contact_email, phone, city, notes, created_at, updated_at
		FROM suppliers
		ORDER BY lower(name) ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []catalog.Supplier
	for rows.Next() {
		var supplier catalog.Supplier
		if err := rows.Scan(&supplier.ID, &supplier.Name, &supplier.ContactEmail, &supplier.Phone,
			&supplier.City, &supplier.Notes, &supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}

var _ catalog.SupplierRepository = (*PostgresSupplierRepository)(nil)

// PostgresPhotoRepository persists plant photo metadata. The plant_id column
// is unique, so Set upserts and reports the row it displaced.
type PostgresPhotoRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPhotoRepository constructs the repository.
func NewPostgresPhotoRepository(pool *pgxpool.Pool) *PostgresPhotoRepository {
	return &PostgresPhotoRepository{pool: pool}
}

func (r *PostgresPhotoRepository) Set(ctx context.Context, photo catalog.PlantPhoto) (catalog.PlantPhoto, bool, error) {
	previous, replaced, err := r.FindByPlant(ctx, photo.PlantID)
	if err != nil {
		return catalog.PlantPhoto{}, false, err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO plant_photos (id, plant_id, storage_key, size_bytes, mime_type, etag, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (plant_id) DO UPDATE
		SET id = EXCLUDED.id, storage_key = EXCLUDED.storage_key, size_bytes = EXCLUDED.size_bytes,
		    mime_type = EXCLUDED.mime_type, etag = EXCLUDED.etag, created_at = EXCLUDED.created_at
	`, photo.ID, photo.PlantID, photo.StorageKey, photo.SizeBytes, photo.MimeType, photo.ETag, photo.CreatedAt)
	if err != nil {
		return catalog.PlantPhoto{}, false, err
	}
	return previous, replaced, nil
}

func (r *PostgresPhotoRepository) FindByPlant(ctx context.Context, plantID uuid.UUID) (catalog.PlantPhoto, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, plant_id, storage_key, size_bytes, mime_type, etag, created_at
		FROM plant_photos
		WHERE plant_id = $1
		LIMIT 1
	`, plantID)
	var photo catalog.PlantPhoto
	if err := row.Scan(&photo.ID, &photo.PlantID, &photo.StorageKey, &photo.SizeBytes,
		&photo.MimeType, &photo.ETag, &photo.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return catalog.PlantPhoto{}, false, nil
		}
		return catalog.PlantPhoto{}, false, err
	}
	return photo, true, nil
}

func (r *PostgresPhotoRepository) DeleteByPlant(ctx context.Context, plantID uuid.UUID) (catalog.PlantPhoto, bool, error) {
	row := r.pool.QueryRow(ctx, `
		DELETE FROM plant_photos
		WHERE plant_id = $1
		RETURNING id, plant_id, storage_key, size_bytes, mime_type, etag, created_at
	`, plantID)
	var photo catalog.PlantPhoto
	if err := row.Scan(&photo.ID, &photo.PlantID, &photo.StorageKey, &photo.SizeBytes,
		&photo.MimeType, &photo.ETag, &photo.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return catalog.PlantPhoto{}, false, nil
		}
		return catalog.PlantPhoto{}, false, err
	}
	return photo, true, nil
}

var _ catalog.PhotoRepository = (*PostgresPhotoRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlant(row rowScanner, extras ...any) (catalog.Plant, error) {
	var (
		plant   catalog.Plant
		rawJSON []byte
	)
	args := []any{&plant.ID, &plant.Name, &plant.ScientificName, &plant.Description,
		&plant.SupplierID, &plant.PriceEUR, &rawJSON, &plant.CreatedAt, &plant.UpdatedAt}
	args = append(args, extras...)
	if err := row.Scan(args...); err != nil {
		return catalog.Plant{}, err
	}
	if err := json.Unmarshal(rawJSON, &plant.PlantAttributes); err != nil {
		return catalog.Plant{}, err
	}
	return plant, nil
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
