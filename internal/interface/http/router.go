package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/recommendations", handler.Recommend)
		api.GET("/recommendations/trending", handler.Trending)

		api.GET("/plants", handler.ListPlants)
		api.POST("/plants", handler.CreatePlant)
		api.GET("/plants/:id", handler.GetPlant)
		api.PUT("/plants/:id", handler.UpdatePlant)
		api.DELETE("/plants/:id", handler.DeletePlant)
		api.GET("/plants/:id/similar", handler.SimilarPlants)
		api.PUT("/plants/:id/photo", handler.UploadPhoto)
		api.GET("/plants/:id/photo", handler.GetPhoto)

		api.GET("/suppliers", handler.ListSuppliers)
		api.POST("/suppliers", handler.CreateSupplier)
		api.GET("/suppliers/:id", handler.GetSupplier)
		api.PUT("/suppliers/:id", handler.UpdateSupplier)
		api.DELETE("/suppliers/:id", handler.DeleteSupplier)

		api.GET("/clients", handler.ListClients)
		api.POST("/clients", handler.CreateClient)
		api.GET("/clients/:id", handler.GetClient)
		api.PUT("/clients/:id", handler.UpdateClient)
		api.DELETE("/clients/:id", handler.DeleteClient)

		api.GET("/projects", handler.ListProjects)
		api.POST("/projects", handler.CreateProject)
		api.GET("/projects/:id", handler.GetProject)
		api.PUT("/projects/:id", handler.UpdateProject)
		api.DELETE("/projects/:id", handler.DeleteProject)
		api.GET("/projects/:id/plants", handler.ListProjectPlants)
		api.POST("/projects/:id/plants", handler.AddProjectPlant)
		api.DELETE("/projects/:id/plants/:plantId", handler.RemoveProjectPlant)
		api.GET("/projects/:id/summary", handler.ProjectSummary)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
