package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/manjunathhanchinal/BackendAppStore/internal/middleware"
	"github.com/manjunathhanchinal/BackendAppStore/internal/service"
)

// CatalogHandler exposes the app CRUD and download endpoints.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create handles POST /api/apps (admin only at the routing layer).
func (h *CatalogHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var in service.CreateAppInput
	if err := c.ShouldBindJSON(&in); err != nil {
		logrus.WithError(err).Warn("Handler.CreateApp: invalid input")
		ErrorResponse(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	app, err := h.catalogService.Create(c.Request.Context(), in, caller)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, gin.H{"message": "app added", "app": app})
}

// List handles GET /api/apps.
func (h *CatalogHandler) List(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	views, err := h.catalogService.List(c.Request.Context(), caller)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, views)
}

// GetByID handles GET /api/apps/:id.
func (h *CatalogHandler) GetByID(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid app id")
		return
	}

	view, err := h.catalogService.GetByID(c.Request.Context(), id, caller)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"app": view})
}

// GetByName handles GET /api/apps/byname/:name.
func (h *CatalogHandler) GetByName(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	view, err := h.catalogService.GetByName(c.Request.Context(), c.Param("name"), caller)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"app": view})
}

// Update handles PUT /api/apps/:id. The body is decoded strictly: any key
// outside the whitelist of mutable fields is rejected.
func (h *CatalogHandler) Update(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid app id")
		return
	}

	var patch service.UpdateAppInput
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateApp: invalid patch body")
		ErrorResponse(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	app, err := h.catalogService.Update(c.Request.Context(), id, patch, caller)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"message": "app updated", "app": app})
}

// Delete handles DELETE /api/apps/:id.
func (h *CatalogHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid app id")
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), id, caller); err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"message": "app deleted"})
}

// Download handles POST /api/apps/:id/download.
func (h *CatalogHandler) Download(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid app id")
		return
	}

	if err := h.catalogService.Download(c.Request.Context(), id, caller); err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"message": "download successful"})
}

// DownloadCount handles GET /api/apps/:id/download-count (admin only at
// the routing layer).
func (h *CatalogHandler) DownloadCount(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid app id")
		return
	}

	count, err := h.catalogService.DownloadCount(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"downloadCount": count})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
