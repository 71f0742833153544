package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/catalog"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/projects"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/infra/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/infra/photostore"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/infra/plantrepo"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/infra/projectrepo"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/infra/recstore"
)

// plantRepository is the single plant storage instance shared by the catalog,
// recommendation and project domains.
type plantRepository interface {
	catalog.PlantRepository
	recommend.CatalogSource
	projects.PlantLookup
}

func provideRecommendConfig(cfg *config.Config) recommend.Config {
	out := recommend.Config{
		DefaultResultLimit: cfg.Recommend.DefaultLimit,
		MaxResultLimit:     cfg.Recommend.MaxLimit,
		CacheTTL:           cfg.Recommend.CacheTTL,
		Workers:            cfg.Recommend.Workers,
		TrendingSize:       cfg.Recommend.TrendingSize,
		MatchedThreshold:   cfg.Recommend.MatchedThreshold,
		SizeToleranceCm:    cfg.Recommend.SizeToleranceCm,
		PHTolerance:        cfg.Recommend.PHTolerance,
		ZoneGapLimit:       cfg.Recommend.ZoneGapLimit,
	}
	if len(cfg.Recommend.DefaultWeights) > 0 {
		weights := make(map[recommend.Category]float64, len(cfg.Recommend.DefaultWeights))
		for name, weight := range cfg.Recommend.DefaultWeights {
			weights[recommend.Category(name)] = weight
		}
		out.DefaultWeights = weights
	}
	return out
}

func provideCatalogConfig(cfg *config.Config) catalog.Config {
	return catalog.Config{
		MaxPhotoBytes: cfg.Catalog.MaxPhotoBytes,
		SimilarLimit:  cfg.Catalog.SimilarLimit,
	}
}

// providePostgresPool returns nil when postgres is not configured or not
// reachable; repository providers fall back to memory implementations then.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func providePlantRepository(pool *pgxpool.Pool) plantRepository {
	if pool == nil {
		return plantrepo.NewMemoryPlantRepository()
	}
	return plantrepo.NewPostgresPlantRepository(pool)
}

func provideCatalogPlantRepository(repo plantRepository) catalog.PlantRepository {
	return repo
}

func provideCatalogSource(repo plantRepository) recommend.CatalogSource {
	return repo
}

func providePlantLookup(repo plantRepository) projects.PlantLookup {
	return repo
}

func provideSupplierRepository(pool *pgxpool.Pool) catalog.SupplierRepository {
	if pool == nil {
		return plantrepo.NewMemorySupplierRepository()
	}
	return plantrepo.NewPostgresSupplierRepository(pool)
}

func providePhotoRepository(pool *pgxpool.Pool) catalog.PhotoRepository {
	if pool == nil {
		return plantrepo.NewMemoryPhotoRepository()
	}
	return plantrepo.NewPostgresPhotoRepository(pool)
}

func provideClientRepository(pool *pgxpool.Pool) projects.ClientRepository {
	if pool == nil {
		return projectrepo.NewMemoryClientRepository()
	}
	return projectrepo.NewPostgresClientRepository(pool)
}

func provideProjectRepository(pool *pgxpool.Pool) projects.ProjectRepository {
	if pool == nil {
		return projectrepo.NewMemoryProjectRepository()
	}
	return projectrepo.NewPostgresProjectRepository(pool)
}

func provideSelectionRepository(pool *pgxpool.Pool) projects.SelectionRepository {
	if pool == nil {
		return projectrepo.NewMemorySelectionRepository()
	}
	return projectrepo.NewPostgresSelectionRepository(pool)
}

func provideRecommendStore(cfg *config.Config, logger *slog.Logger) recommend.Store {
	if cfg.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return recstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return recstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey recommendation store enabled", "addr", cfg.Valkey.Addr)
			return recstore.NewValkeyStore(client, "rec")
		}
	}
	return recstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func providePhotoStorage(cfg *config.Config, logger *slog.Logger) catalog.ObjectStorage {
	if strings.TrimSpace(cfg.Photos.Endpoint) == "" {
		logger.Info("photo storage endpoint not set, using memory storage")
		return photostore.NewMemoryStorage()
	}
	storage, err := photostore.NewS3Storage(cfg.Photos.Endpoint, cfg.Photos.AccessKey, cfg.Photos.SecretKey, cfg.Photos.Bucket, cfg.Photos.Region, logger)
	if err != nil {
		logger.Error("failed to initialize photo storage, using memory storage", "error", err)
		return photostore.NewMemoryStorage()
	}
	logger.Info("object photo storage enabled", "bucket", cfg.Photos.Bucket)
	return storage
}
