package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/projects"
)

// ListClients returns all clients.
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.projectsSvc.ListClients(c.Request.Context())
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": clients})
}

// CreateClient adds a client.
func (h *Handler) CreateClient(c *gin.Context) {
	var input projects.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	client, err := h.projectsSvc.CreateClient(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClient returns a single client.
func (h *Handler) GetClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.projectsSvc.GetClient(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient replaces a client's details.
func (h *Handler) UpdateClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input projects.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	client, err := h.projectsSvc.UpdateClient(c.Request.Context(), id, input)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client with no remaining projects.
func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.projectsSvc.DeleteClient(c.Request.Context(), id); err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProjects returns projects, optionally filtered.
func (h *Handler) ListProjects(c *gin.Context) {
	var filter projects.ProjectFilter
	if raw := c.Query("clientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid clientId", err))
			return
		}
		filter.ClientID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := projects.ProjectStatus(raw)
		filter.Status = &status
	}
	list, err := h.projectsSvc.ListProjects(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list})
}

// CreateProject adds a project.
func (h *Handler) CreateProject(c *gin.Context) {
	var input projects.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	project, err := h.projectsSvc.CreateProject(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusCreated, project)
}

// GetProject returns a single project.
func (h *Handler) GetProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	project, err := h.projectsSvc.GetProject(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateProject replaces a project's mutable fields.
func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input projects.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	project, err := h.projectsSvc.UpdateProject(c.Request.Context(), id, input)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project and its plant selections.
func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.projectsSvc.DeleteProject(c.Request.Context(), id); err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProjectPlants returns the plant selections of a project.
func (h *Handler) ListProjectPlants(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	selections, err := h.projectsSvc.ListSelections(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": selections})
}

// AddProjectPlant puts a plant on the project's list, replacing an earlier
// selection of the same plant.
func (h *Handler) AddProjectPlant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input projects.SelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	selection, err := h.projectsSvc.AddPlant(c.Request.Context(), id, input)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusCreated, selection)
}

// RemoveProjectPlant takes a plant off the project's list.
func (h *Handler) RemoveProjectPlant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	plantID, ok := pathID(c, "plantId")
	if !ok {
		return
	}
	if err := h.projectsSvc.RemovePlant(c.Request.Context(), id, plantID); err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.Status(http.StatusNoContent)
}

// ProjectSummary aggregates a project's plant list with catalog pricing.
func (h *Handler) ProjectSummary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.projectsSvc.Summary(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "project_error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
