package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/catalog"
)

// ListPlants returns catalog entries, optionally filtered.
func (h *Handler) ListPlants(c *gin.Context) {
	filter := catalog.PlantFilter{
		Query:      strings.TrimSpace(c.Query("q")),
		NativeOnly: c.Query("native") == "true",
	}
	if raw := c.Query("supplierId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid supplierId", err))
			return
		}
		filter.SupplierID = &id
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid limit", err))
			return
		}
		filter.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid offset", err))
			return
		}
		filter.Offset = offset
	}
	plants, err := h.catalogSvc.ListPlants(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": plants})
}

// CreatePlant adds a catalog entry.
func (h *Handler) CreatePlant(c *gin.Context) {
	var input catalog.PlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	plant, err := h.catalogSvc.CreatePlant(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.JSON(http.StatusCreated, plant)
}

// GetPlant returns a single catalog entry.
func (h *Handler) GetPlant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	plant, err := h.catalogSvc.GetPlant(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.JSON(http.StatusOK, plant)
}

// UpdatePlant replaces a catalog entry.
func (h *Handler) UpdatePlant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input catalog.PlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	plant, err := h.catalogSvc.UpdatePlant(c.Request.Context(), id, input)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.JSON(http.StatusOK, plant)
}

// DeletePlant removes a catalog entry and its photo.
func (h *Handler) DeletePlant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeletePlant(c.Request.Context(), id); err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.Status(http.StatusNoContent)
}

// SimilarPlants returns trait-vector neighbors of a plant.
func (h *Handler) SimilarPlants(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid limit", err))
			return
		}
		limit = parsed
	}
	matches, err := h.catalogSvc.SimilarPlants(c.Request.Context(), id, limit)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": matches})
}

// UploadPhoto attaches a photo to a plant, replacing any previous one.
func (h *Handler) UploadPhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "file is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read upload", err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "catalog_error", "failed to read file", err))
		return
	}
	photo, err := h.catalogSvc.AttachPhoto(c.Request.Context(), id, catalog.PhotoUpload{
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Content:  data,
	})
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.JSON(http.StatusOK, photo)
}

// GetPhoto streams the plant's photo.
func (h *Handler) GetPhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	photo, reader, err := h.catalogSvc.OpenPhoto(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	defer reader.Close()
	c.DataFromReader(http.StatusOK, photo.SizeBytes, photo.MimeType, reader, nil)
}

// ListSuppliers returns all suppliers.
func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.catalogSvc.ListSuppliers(c.Request.Context())
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": suppliers})
}

// CreateSupplier adds a supplier.
func (h *Handler) CreateSupplier(c *gin.Context) {
	var input catalog.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	supplier, err := h.catalogSvc.CreateSupplier(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// GetSupplier returns a single supplier.
func (h *Handler) GetSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	supplier, err := h.catalogSvc.GetSupplier(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier replaces a supplier's details.
func (h *Handler) UpdateSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input catalog.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	supplier, err := h.catalogSvc.UpdateSupplier(c.Request.Context(), id, input)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier with no remaining plants.
func (h *Handler) DeleteSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteSupplier(c.Request.Context(), id); err != nil {
		abortWithError(c, domainHTTPError(err, "catalog_error"))
		return
	}
	c.Status(http.StatusNoContent)
}
