package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/catalog"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/projects"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	recommendSvc recommend.Service
	catalogSvc   *catalog.Service
	projectsSvc  *projects.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(recommendSvc recommend.Service, catalogSvc *catalog.Service, projectsSvc *projects.Service, logger *slog.Logger) *Handler {
	return &Handler{
		recommendSvc: recommendSvc,
		catalogSvc:   catalogSvc,
		projectsSvc:  projectsSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// Recommend scores the catalog against a design brief and returns the ranked
// matches.
func (h *Handler) Recommend(c *gin.Context) {
	var raw recommend.RawCriteria
	if err := c.ShouldBindJSON(&raw); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.recommendSvc.Recommend(c.Request.Context(), raw)
	if err != nil {
		abortWithError(c, domainHTTPError(err, recommend.CodeRecommendation))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Trending returns the most requested design briefs.
func (h *Handler) Trending(c *gin.Context) {
	items, err := h.recommendSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, domainHTTPError(err, recommend.CodeRecommendation))
		return
	}
	c.JSON(http.StatusOK, gin.H{"trending": items})
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}
