package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
	apperrors "github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/errors"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/util"
)

// Config drives catalog limits.
type Config struct {
	MaxPhotoBytes int64
	SimilarLimit  int
}

// Service orchestrates catalog maintenance: plants, suppliers, photos, and
// the similar-plants lookup.
type Service struct {
	cfg       Config
	plants    PlantRepository
	suppliers SupplierRepository
	photos    PhotoRepository
	storage   ObjectStorage
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a Service.
func NewService(cfg Config, plants PlantRepository, suppliers SupplierRepository, photos PhotoRepository, storage ObjectStorage, logger *slog.Logger) *Service {
	return &Service{
		cfg:       cfg,
		plants:    plants,
		suppliers: suppliers,
		photos:    photos,
		storage:   storage,
		logger:    logger.With("component", "catalog.service"),
		now:       util.NowUTC,
	}
}

// PlantInput carries the mutable fields of a plant record.
type PlantInput struct {
	Name           string     `json:"name"`
	ScientificName string     `json:"scientificName"`
	Description    string     `json:"description"`
	SupplierID     *uuid.UUID `json:"supplierId"`
	PriceEUR       *float64   `json:"priceEur"`

	recommend.PlantAttributes
}

// SupplierInput carries the mutable fields of a supplier record.
type SupplierInput struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Notes        string `json:"notes"`
}

// PhotoUpload captures a multipart photo submission.
type PhotoUpload struct {
	Filename string
	MimeType string
	Content  []byte
}

// CreatePlant validates and stores a new catalog entry.
func (s *Service) CreatePlant(ctx context.Context, input PlantInput) (Plant, error) {
	if err := s.validatePlantInput(ctx, &input); err != nil {
		return Plant{}, err
	}
	now := s.now()
	plant := Plant{
		ID:              uuid.New(),
		Name:            input.Name,
		ScientificName:  strings.TrimSpace(input.ScientificName),
		Description:     strings.TrimSpace(input.Description),
		SupplierID:      input.SupplierID,
		PriceEUR:        input.PriceEUR,
		PlantAttributes: input.PlantAttributes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.plants.Create(ctx, plant); err != nil {
		return Plant{}, apperrors.Wrap("storage_error", "failed to persist plant", err)
	}
	s.logger.Info("plant created", "plant_id", plant.ID, "name", plant.Name)
	return plant, nil
}

// UpdatePlant replaces the mutable fields of an existing entry.
func (s *Service) UpdatePlant(ctx context.Context, id uuid.UUID, input PlantInput) (Plant, error) {
	existing, found, err := s.plants.Get(ctx, id)
	if err != nil {
		return Plant{}, apperrors.Wrap("storage_error", "failed to load plant", err)
	}
	if !found {
		return Plant{}, apperrors.Wrap("not_found", "plant not found", nil)
	}
	if err := s.validatePlantInput(ctx, &input); err != nil {
		return Plant{}, err
	}
	existing.Name = input.Name
	existing.ScientificName = strings.TrimSpace(input.ScientificName)
	existing.Description = strings.TrimSpace(input.Description)
	existing.SupplierID = input.SupplierID
	existing.PriceEUR = input.PriceEUR
	existing.PlantAttributes = input.PlantAttributes
	existing.UpdatedAt = s.now()

	ok, err := s.plants.Update(ctx, existing)
	if err != nil {
		return Plant{}, apperrors.Wrap("storage_error", "failed to update plant", err)
	}
	if !ok {
		return Plant{}, apperrors.Wrap("not_found", "plant not found", nil)
	}
	return existing, nil
}

// GetPlant fetches a single entry.
func (s *Service) GetPlant(ctx context.Context, id uuid.UUID) (Plant, error) {
	plant, found, err := s.plants.Get(ctx, id)
	if err != nil {
		return Plant{}, apperrors.Wrap("storage_error", "failed to fetch plant", err)
	}
	if !found {
		return Plant{}, apperrors.Wrap("not_found", "plant not found", nil)
	}
	return plant, nil
}

// ListPlants returns catalog entries matching the filter.
func (s *Service) ListPlants(ctx context.Context, filter PlantFilter) ([]Plant, error) {
	plants, err := s.plants.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list plants", err)
	}
	return plants, nil
}

// DeletePlant removes an entry and its stored photo.
func (s *Service) DeletePlant(ctx context.Context, id uuid.UUID) error {
	photo, hadPhoto, err := s.photos.FindByPlant(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to load plant photo", err)
	}
	ok, err := s.plants.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to delete plant", err)
	}
	if !ok {
		return apperrors.Wrap("not_found", "plant not found", nil)
	}
	if hadPhoto {
		if _, _, err := s.photos.DeleteByPlant(ctx, id); err != nil {
			s.logger.Warn("photo metadata cleanup failed", "plant_id", id, "error", err)
		}
		if err := s.storage.Delete(ctx, photo.StorageKey); err != nil {
			s.logger.Warn("photo blob cleanup failed", "key", photo.StorageKey, "error", err)
		}
	}
	s.logger.Info("plant deleted", "plant_id", id)
	return nil
}

// SimilarPlants returns the catalog entries whose trait vectors sit closest
// to the given plant.
func (s *Service) SimilarPlants(ctx context.Context, id uuid.UUID, limit int) ([]SimilarPlant, error) {
	if limit <= 0 {
		limit = s.cfg.SimilarLimit
		if limit <= 0 {
			limit = 5
		}
	}
	plant, found, err := s.plants.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load plant", err)
	}
	if !found {
		return nil, apperrors.Wrap("not_found", "plant not found", nil)
	}
	similar, err := s.plants.SearchSimilar(ctx, plant.ID, TraitVector(plant.PlantAttributes), limit)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "similarity search failed", err)
	}
	return similar, nil
}

// AttachPhoto stores the uploaded blob and records its metadata, replacing
// any previous photo for the plant.
func (s *Service) AttachPhoto(ctx context.Context, plantID uuid.UUID, upload PhotoUpload) (PlantPhoto, error) {
	if _, err := s.GetPlant(ctx, plantID); err != nil {
		return PlantPhoto{}, err
	}
	if len(upload.Content) == 0 {
		return PlantPhoto{}, apperrors.Wrap("invalid_request", "photo content cannot be empty", nil)
	}
	if s.cfg.MaxPhotoBytes > 0 && int64(len(upload.Content)) > s.cfg.MaxPhotoBytes {
		return PlantPhoto{}, apperrors.Wrap("invalid_request", "photo exceeds maximum allowed size", nil)
	}
	mime := strings.TrimSpace(upload.MimeType)
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(upload.Content)
	}
	if !strings.HasPrefix(mime, "image/") {
		return PlantPhoto{}, apperrors.Wrap("invalid_request", "unsupported photo type", nil)
	}
	filename := strings.TrimSpace(upload.Filename)
	if filename == "" {
		filename = "photo.jpg"
	}

	key := fmt.Sprintf("plants/%s/%s", plantID.String(), sanitizeFilename(filename))
	obj, err := s.storage.Put(ctx, key, upload.Content, mime)
	if err != nil {
		return PlantPhoto{}, apperrors.Wrap("storage_error", "failed to store photo", err)
	}

	photo := PlantPhoto{
		ID:         uuid.New(),
		PlantID:    plantID,
		StorageKey: obj.Key,
		SizeBytes:  obj.Size,
		MimeType:   obj.MimeType,
		ETag:       obj.ETag,
		CreatedAt:  s.now(),
	}
	previous, replaced, err := s.photos.Set(ctx, photo)
	if err != nil {
		if delErr := s.storage.Delete(ctx, obj.Key); delErr != nil {
			s.logger.Warn("orphaned photo cleanup failed", "key", obj.Key, "error", delErr)
		}
		return PlantPhoto{}, apperrors.Wrap("storage_error", "failed to persist photo metadata", err)
	}
	if replaced && previous.StorageKey != photo.StorageKey {
		if err := s.storage.Delete(ctx, previous.StorageKey); err != nil {
			s.logger.Warn("stale photo cleanup failed", "key", previous.StorageKey, "error", err)
		}
	}
	return photo, nil
}

// OpenPhoto returns the photo metadata and an open reader for its blob. The
// caller owns closing the reader.
func (s *Service) OpenPhoto(ctx context.Context, plantID uuid.UUID) (PlantPhoto, io.ReadCloser, error) {
	photo, found, err := s.photos.FindByPlant(ctx, plantID)
	if err != nil {
		return PlantPhoto{}, nil, apperrors.Wrap("storage_error", "failed to load photo metadata", err)
	}
	if !found {
		return PlantPhoto{}, nil, apperrors.Wrap("not_found", "no photo for plant", nil)
	}
	reader, err := s.storage.Get(ctx, photo.StorageKey)
	if err != nil {
		return PlantPhoto{}, nil, apperrors.Wrap("storage_error", "failed to open photo", err)
	}
	return photo, reader, nil
}

// CreateSupplier validates and stores a new supplier.
func (s *Service) CreateSupplier(ctx context.Context, input SupplierInput) (Supplier, error) {
	if err := validateSupplierInput(&input); err != nil {
		return Supplier{}, err
	}
	now := s.now()
	supplier := Supplier{
		ID:           uuid.New(),
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		Phone:        input.Phone,
		City:         input.City,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return Supplier{}, apperrors.Wrap("storage_error", "failed to persist supplier", err)
	}
	return supplier, nil
}

// UpdateSupplier replaces the mutable fields of an existing supplier.
func (s *Service) UpdateSupplier(ctx context.Context, id uuid.UUID, input SupplierInput) (Supplier, error) {
	existing, found, err := s.suppliers.Get(ctx, id)
	if err != nil {
		return Supplier{}, apperrors.Wrap("storage_error", "failed to load supplier", err)
	}
	if !found {
		return Supplier{}, apperrors.Wrap("not_found", "supplier not found", nil)
	}
	if err := validateSupplierInput(&input); err != nil {
		return Supplier{}, err
	}
	existing.Name = input.Name
	existing.ContactEmail = input.ContactEmail
	existing.Phone = input.Phone
	existing.City = input.City
	existing.Notes = input.Notes
	existing.UpdatedAt = s.now()

	ok, err := s.suppliers.Update(ctx, existing)
	if err != nil {
		return Supplier{}, apperrors.Wrap("storage_error", "failed to update supplier", err)
	}
	if !ok {
		return Supplier{}, apperrors.Wrap("not_found", "supplier not found", nil)
	}
	return existing, nil
}

// GetSupplier fetches a single supplier.
func (s *Service) GetSupplier(ctx context.Context, id uuid.UUID) (Supplier, error) {
	supplier, found, err := s.suppliers.Get(ctx, id)
	if err != nil {
		return Supplier{}, apperrors.Wrap("storage_error", "failed to fetch supplier", err)
	}
	if !found {
		return Supplier{}, apperrors.Wrap("not_found", "supplier not found", nil)
	}
	return supplier, nil
}

// ListSuppliers returns all suppliers.
func (s *Service) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list suppliers", err)
	}
	return suppliers, nil
}

// DeleteSupplier removes a supplier that no plant references.
func (s *Service) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	count, err := s.plants.CountBySupplier(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to check supplier references", err)
	}
	if count > 0 {
		return apperrors.Wrap("invalid_request", "supplier still referenced by plants", nil)
	}
	ok, err := s.suppliers.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to delete supplier", err)
	}
	if !ok {
		return apperrors.Wrap("not_found", "supplier not found", nil)
	}
	return nil
}

func (s *Service) validatePlantInput(ctx context.Context, input *PlantInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return apperrors.Wrap("invalid_request", "plant name is required", nil)
	}
	if input.PriceEUR != nil && *input.PriceEUR < 0 {
		return apperrors.Wrap("invalid_request", "price cannot be negative", nil)
	}
	if err := validateAttributes(&input.PlantAttributes); err != nil {
		return err
	}
	if input.SupplierID != nil {
		_, found, err := s.suppliers.Get(ctx, *input.SupplierID)
		if err != nil {
			return apperrors.Wrap("storage_error", "failed to check supplier", err)
		}
		if !found {
			return apperrors.Wrap("invalid_request", "unknown supplier", nil)
		}
	}
	return nil
}

func validateSupplierInput(input *SupplierInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return apperrors.Wrap("invalid_request", "supplier name is required", nil)
	}
	input.ContactEmail = strings.TrimSpace(input.ContactEmail)
	input.Phone = strings.TrimSpace(input.Phone)
	input.City = strings.TrimSpace(input.City)
	input.Notes = strings.TrimSpace(input.Notes)
	return nil
}

// validateAttributes canonicalizes vocabulary tokens in place and rejects
// values the scoring vocabulary does not know.
func validateAttributes(attrs *recommend.PlantAttributes) error {
	attrs.SunExposure = canonicalTokens(attrs.SunExposure)
	attrs.SoilType = canonicalTokens(attrs.SoilType)
	attrs.BloomColor = canonicalTokens(attrs.BloomColor)
	attrs.BloomSeason = canonicalTokens(attrs.BloomSeason)

	for _, check := range []struct {
		field  string
		values []string
		slots  []string
	}{
		{"sunExposure", attrs.SunExposure, sunSlots},
		{"soilType", attrs.SoilType, soilSlots},
		{"bloomSeason", attrs.BloomSeason, seasonSlots},
	} {
		for _, v := range check.values {
			if !containsSlot(check.slots, v) {
				return apperrors.Wrap("invalid_request", fmt.Sprintf("%s: unknown value %q", check.field, v), nil)
			}
		}
	}

	for _, check := range []struct {
		field string
		value *string
		slots []string
	}{
		{"moistureNeed", attrs.MoistureNeed, moistureSlots},
		{"careLevel", attrs.CareLevel, careSlots},
		{"costTier", attrs.CostTier, costSlots},
	} {
		if check.value == nil {
			continue
		}
		canonical := recommend.CanonicalToken(*check.value)
		if !containsSlot(check.slots, canonical) {
			return apperrors.Wrap("invalid_request", fmt.Sprintf("%s: unknown value %q", check.field, *check.value), nil)
		}
		*check.value = canonical
	}

	if attrs.HardinessZone != nil && attrs.HardinessZone.Min > attrs.HardinessZone.Max {
		return apperrors.Wrap("invalid_request", "hardinessZone: min exceeds max", nil)
	}
	for _, check := range []struct {
		field string
		r     *recommend.NumericRange
	}{
		{"soilPh", attrs.SoilPH},
		{"heightRange", attrs.HeightRange},
		{"widthRange", attrs.WidthRange},
	} {
		if check.r != nil && check.r.Min > check.r.Max {
			return apperrors.Wrap("invalid_request", check.field+": min exceeds max", nil)
		}
	}
	for _, check := range []struct {
		field string
		value *float64
	}{
		{"pestResistance", attrs.PestResistance},
		{"diseaseResistance", attrs.DiseaseResistance},
		{"wildlifeValue", attrs.WildlifeValue},
	} {
		if check.value != nil && (*check.value < 0 || *check.value > 1) {
			return apperrors.Wrap("invalid_request", check.field+": value outside [0,1]", nil)
		}
	}
	return nil
}

func canonicalTokens(values []string) []string {
	var out []string
	for _, v := range values {
		token := recommend.CanonicalToken(v)
		if token == "" {
			continue
		}
		if !containsSlot(out, token) {
			out = append(out, token)
		}
	}
	return out
}

func containsSlot(slots []string, v string) bool {
	for _, slot := range slots {
		if slot == v {
			return true
		}
	}
	return false
}

// sanitizeFilename reduces an uploaded filename to a single safe key segment.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == ".." || name == "/" {
		return "file"
	}
	return name
}
