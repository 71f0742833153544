package unit

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/catalog"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/infra/photostore"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/infra/plantrepo"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/infra/recstore"
	apperrors "github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/errors"
)

// recommendFixture wires the catalog and recommendation services over one
// shared memory plant repository, the same composition the app uses.
type recommendFixture struct {
	catalog   *catalog.Service
	recommend recommend.Service
}

func newRecommendFixture() recommendFixture {
	plants := plantrepo.NewMemoryPlantRepository()
	catalogSvc := catalog.NewService(
		catalog.Config{MaxPhotoBytes: 1 << 20, SimilarLimit: 5},
		plants,
		plantrepo.NewMemorySupplierRepository(),
		plantrepo.NewMemoryPhotoRepository(),
		photostore.NewMemoryStorage(),
		newTestLogger(),
	)
	recommendSvc := recommend.NewService(recommend.Config{}, plants, recstore.NewMemoryStore(), newTestLogger())
	return recommendFixture{catalog: catalogSvc, recommend: recommendSvc}
}

func seedPlant(t *testing.T, svc *catalog.Service, name string, attrs recommend.PlantAttributes) catalog.Plant {
	t.Helper()
	plant, err := svc.CreatePlant(context.Background(), catalog.PlantInput{Name: name, PlantAttributes: attrs})
	require.NoError(t, err)
	return plant
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func TestRecommendRanksCatalogEntries(t *testing.T) {
	fx := newRecommendFixture()
	seedPlant(t, fx.catalog, "Sun Rose", recommend.PlantAttributes{SunExposure: []string{"full-sun"}})
	seedPlant(t, fx.catalog, "Shade Fern", recommend.PlantAttributes{SunExposure: []string{"shade"}})

	resp, err := fx.recommend.Recommend(context.Background(), recommend.RawCriteria{"sunExposure": []string{"full-sun"}})
	require.NoError(t, err)
	require.Equal(t, recommend.SourceEngine, resp.Source)
	require.Len(t, resp.Results, 2)
	require.Equal(t, "Sun Rose", resp.Results[0].Plant.Name)
	require.Greater(t, resp.Results[0].TotalScore, resp.Results[1].TotalScore)
	require.Contains(t, resp.Results[0].MatchedAttributes, "sun exposure: strong match")
	require.NotNil(t, resp.Stats)
	require.Equal(t, 2, resp.Stats.ResultsReturned)
}

func TestRecommendServesSecondRequestFromCache(t *testing.T) {
	fx := newRecommendFixture()
	seedPlant(t, fx.catalog, "Sun Rose", recommend.PlantAttributes{SunExposure: []string{"full-sun"}})

	brief := recommend.RawCriteria{"sunExposure": []string{"full-sun"}}
	first, err := fx.recommend.Recommend(context.Background(), brief)
	require.NoError(t, err)
	require.Equal(t, recommend.SourceEngine, first.Source)

	second, err := fx.recommend.Recommend(context.Background(), brief)
	require.NoError(t, err)
	require.Equal(t, recommend.SourceCache, second.Source)
	require.Equal(t, first.Results, second.Results)
}

func TestRecommendCatalogWriteInvalidatesCache(t *testing.T) {
	fx := newRecommendFixture()
	seedPlant(t, fx.catalog, "Sun Rose", recommend.PlantAttributes{SunExposure: []string{"full-sun"}})

	brief := recommend.RawCriteria{"sunExposure": []string{"full-sun"}}
	_, err := fx.recommend.Recommend(context.Background(), brief)
	require.NoError(t, err)

	seedPlant(t, fx.catalog, "Prairie Aster", recommend.PlantAttributes{SunExposure: []string{"full-sun"}})

	resp, err := fx.recommend.Recommend(context.Background(), brief)
	require.NoError(t, err)
	require.Equal(t, recommend.SourceEngine, resp.Source)
	require.Len(t, resp.Results, 2)
}

func TestRecommendTrendingCountsRepeatedBriefs(t *testing.T) {
	fx := newRecommendFixture()
	seedPlant(t, fx.catalog, "Sun Rose", recommend.PlantAttributes{SunExposure: []string{"full-sun"}})

	sunny := recommend.RawCriteria{"sunExposure": []string{"full-sun"}}
	dry := recommend.RawCriteria{"moistureNeed": "dry"}
	for i := 0; i < 3; i++ {
		_, err := fx.recommend.Recommend(context.Background(), sunny)
		require.NoError(t, err)
	}
	_, err := fx.recommend.Recommend(context.Background(), dry)
	require.NoError(t, err)

	trending, err := fx.recommend.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, trending, 2)
	require.Equal(t, "sun full-sun", trending[0].Criteria)
	require.EqualValues(t, 3, trending[0].Count)
	require.Equal(t, "dry site", trending[1].Criteria)
	require.EqualValues(t, 1, trending[1].Count)
}

func TestRecommendSurfacesNormalizationWarnings(t *testing.T) {
	fx := newRecommendFixture()
	seedPlant(t, fx.catalog, "Sun Rose", recommend.PlantAttributes{SunExposure: []string{"full-sun"}})

	resp, err := fx.recommend.Recommend(context.Background(), recommend.RawCriteria{
		"sunExposure": []string{"full-sun", "lava"},
	})
	require.NoError(t, err)
	require.Contains(t, resp.Warnings, `sunExposure: unknown value "lava" dropped`)
	require.Len(t, resp.Results, 1)
}

func TestRecommendRejectsNegativeWeights(t *testing.T) {
	fx := newRecommendFixture()
	seedPlant(t, fx.catalog, "Sun Rose", recommend.PlantAttributes{SunExposure: []string{"full-sun"}})

	_, err := fx.recommend.Recommend(context.Background(), recommend.RawCriteria{
		"categoryWeights": map[string]any{"design": -1.0},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, recommend.CodeInvalidCriteria))
}
