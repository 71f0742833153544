//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/bootstrap"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/catalog"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/projects"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/infra/config"
	httpiface "github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/interface/http"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRecommendConfig,
		provideCatalogConfig,
		providePostgresPool,
		providePlantRepository,
		provideCatalogPlantRepository,
		provideCatalogSource,
		providePlantLookup,
		provideSupplierRepository,
		providePhotoRepository,
		provideClientRepository,
		provideProjectRepository,
		provideSelectionRepository,
		provideRecommendStore,
		providePhotoStorage,
		recommend.NewService,
		catalog.NewService,
		projects.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
