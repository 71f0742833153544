package plantrepo

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/catalog"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/projects"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
)

// MemoryPlantRepository is an in-memory plant store used for tests/dev. It
// mirrors the Postgres behavior closely enough to swap in transparently,
// including the catalog version that invalidates recommendation caches.
type MemoryPlantRepository struct {
	mu       sync.RWMutex
	plants   map[uuid.UUID]catalog.Plant
	vectors  map[uuid.UUID][]float32
	revision int64
}

// NewMemoryPlantRepository constructs a repo backed by memory.
func NewMemoryPlantRepository() *MemoryPlantRepository {
	return &MemoryPlantRepository{
		plants:  make(map[uuid.UUID]catalog.Plant),
		vectors: make(map[uuid.UUID][]float32),
	}
}

func (r *MemoryPlantRepository) Create(_ context.Context, plant catalog.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plants[plant.ID] = plant
	r.vectors[plant.ID] = catalog.TraitVector(plant.PlantAttributes)
	r.revision++
	return nil
}

func (r *MemoryPlantRepository) Update(_ context.Context, plant catalog.Plant) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plants[plant.ID]; !ok {
		return false, nil
	}
	r.plants[plant.ID] = plant
	r.vectors[plant.ID] = catalog.TraitVector(plant.PlantAttributes)
	r.revision++
	return true, nil
}

func (r *MemoryPlantRepository) Get(_ context.Context, id uuid.UUID) (catalog.Plant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plant, ok := r.plants[id]
	return plant, ok, nil
}

func (r *MemoryPlantRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plants[id]; !ok {
		return false, nil
	}
	delete(r.plants, id)
	delete(r.vectors, id)
	r.revision++
	return true, nil
}

func (r *MemoryPlantRepository) List(_ context.Context, filter catalog.PlantFilter) ([]catalog.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	var plants []catalog.Plant
	for _, plant := range r.plants {
		if query != "" &&
			!strings.Contains(strings.ToLower(plant.Name), query) &&
			!strings.Contains(strings.ToLower(plant.ScientificName), query) {
			continue
		}
		if filter.SupplierID != nil && (plant.SupplierID == nil || *plant.SupplierID != *filter.SupplierID) {
			continue
		}
		if filter.NativeOnly && (plant.IsNative == nil || !*plant.IsNative) {
			continue
		}
		plants = append(plants, plant)
	}
	sortPlantsByName(plants)
	if filter.Offset > 0 {
		if filter.Offset >= len(plants) {
			return nil, nil
		}
		plants = plants[filter.Offset:]
	}
	if filter.Limit > 0 && len(plants) > filter.Limit {
		plants = plants[:filter.Limit]
	}
	return plants, nil
}

func (r *MemoryPlantRepository) CountBySupplier(_ context.Context, supplierID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, plant := range r.plants {
		if plant.SupplierID != nil && *plant.SupplierID == supplierID {
			count++
		}
	}
	return count, nil
}

func (r *MemoryPlantRepository) SearchSimilar(_ context.Context, anchor uuid.UUID, vector []float32, limit int) ([]catalog.SimilarPlant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []catalog.SimilarPlant
	for id, plant := range r.plants {
		if id == anchor {
			continue
		}
		matches = append(matches, catalog.SimilarPlant{
			Plant:    plant,
			Distance: euclideanDistance(vector, r.vectors[id]),
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return strings.ToLower(matches[i].Plant.Name) < strings.ToLower(matches[j].Plant.Name)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// ListPlants implements recommend.CatalogSource.
func (r *MemoryPlantRepository) ListPlants(_ context.Context) ([]recommend.PlantRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plants := make([]catalog.Plant, 0, len(r.plants))
	for _, plant := range r.plants {
		plants = append(plants, plant)
	}
	sortPlantsByName(plants)
	records := make([]recommend.PlantRecord, 0, len(plants))
	for _, plant := range plants {
		records = append(records, plant.Record())
	}
	return records, nil
}

// Version implements recommend.CatalogSource.
func (r *MemoryPlantRepository) Version(_ context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fmt.Sprintf("mem-%d", r.revision), nil
}

// PlantInfo implements projects.PlantLookup.
func (r *MemoryPlantRepository) PlantInfo(_ context.Context, id uuid.UUID) (projects.PlantInfo, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plant, ok := r.plants[id]
	if !ok {
		return projects.PlantInfo{}, false, nil
	}
	return projects.PlantInfo{ID: plant.ID, Name: plant.Name, PriceEUR: plant.PriceEUR}, true, nil
}

var (
	_ catalog.PlantRepository = (*MemoryPlantRepository)(nil)
	_ recommend.CatalogSource = (*MemoryPlantRepository)(nil)
	_ projects.PlantLookup    = (*MemoryPlantRepository)(nil)
)

// MemorySupplierRepository is an in-memory supplier store used for tests/dev.
type MemorySupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[uuid.UUID]catalog.Supplier
}

// NewMemorySupplierRepository constructs a repo backed by memory.
func NewMemorySupplierRepository() *MemorySupplierRepository {
	return &MemorySupplierRepository{suppliers: make(map[uuid.UUID]catalog.Supplier)}
}

func (r *MemorySupplierRepository) Create(_ context.Context, supplier catalog.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[supplier.ID] = supplier
	return nil
}

func (r *MemorySupplierRepository) Update(_ context.Context, supplier catalog.Supplier) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[supplier.ID]; !ok {
		return false, nil
	}
	r.suppliers[supplier.ID] = supplier
	return true, nil
}

func (r *MemorySupplierRepository) Get(_ context.Context, id uuid.UUID) (catalog.Supplier, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	supplier, ok := r.suppliers[id]
	return supplier, ok, nil
}

func (r *MemorySupplierRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[id]; !ok {
		return false, nil
	}
	delete(r.suppliers, id)
	return true, nil
}

func (r *MemorySupplierRepository) List(_ context.Context) ([]catalog.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	suppliers := make([]catalog.Supplier, 0, len(r.suppliers))
	for _, supplier := range r.suppliers {
		suppliers = append(suppliers, supplier)
	}
	sort.Slice(suppliers, func(i, j int) bool {
		return strings.ToLower(suppliers[i].Name) < strings.ToLower(suppliers[j].Name)
	})
	return suppliers, nil
}

var _ catalog.SupplierRepository = (*MemorySupplierRepository)(nil)

// MemoryPhotoRepository is an in-memory photo metadata store used for
// tests/dev.
type MemoryPhotoRepository struct {
	mu     sync.RWMutex
	photos map[uuid.UUID]catalog.PlantPhoto
}

// NewMemoryPhotoRepository constructs a repo backed by memory.
func NewMemoryPhotoRepository() *MemoryPhotoRepository {
	return &MemoryPhotoRepository{photos: make(map[uuid.UUID]catalog.PlantPhoto)}
}

func (r *MemoryPhotoRepository) Set(_ context.Context, photo catalog.PlantPhoto) (catalog.PlantPhoto, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous, replaced := r.photos[photo.PlantID]
	r.photos[photo.PlantID] = photo
	return previous, replaced, nil
}

func (r *MemoryPhotoRepository) FindByPlant(_ context.Context, plantID uuid.UUID) (catalog.PlantPhoto, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	photo, ok := r.photos[plantID]
	return photo, ok, nil
}

func (r *MemoryPhotoRepository) DeleteByPlant(_ context.Context, plantID uuid.UUID) (catalog.PlantPhoto, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	photo, ok := r.photos[plantID]
	if !ok {
		return catalog.PlantPhoto{}, false, nil
	}
	delete(r.photos, plantID)
	return photo, true, nil
}

var _ catalog.PhotoRepository = (*MemoryPhotoRepository)(nil)

func sortPlantsByName(plants []catalog.Plant) {
	sort.Slice(plants, func(i, j int) bool {
		ni, nj := strings.ToLower(plants[i].Name), strings.ToLower(plants[j].Name)
		if ni != nj {
			return ni < nj
		}
		return plants[i].ID.String() < plants[j].ID.String()
	})
}

func euclideanDistance(a, b []float32) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	var sum float64
	for i := 0; i < length; i++ {
		diff := float64(a[i] - b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
