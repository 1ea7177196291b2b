package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marosa/locator-service/internal/directory"
	"github.com/marosa/locator-service/internal/jobs"
)

// AdminHandler handles protected operational endpoints
type AdminHandler struct {
	cache *directory.Cache
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cache *directory.Cache) *AdminHandler {
	return &AdminHandler{cache: cache}
}

// RefreshDirectory force-reloads every cached directory snapshot
// @Summary Refresh directory cache
// @Description Reloads every cached city snapshot from the backing store
// @Tags admin
// @Produce json
// @Security AdminKeyAuth
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/admin/refresh [post]
func (h *AdminHandler) RefreshDirectory(c *gin.Context) {
	if err := h.cache.RefreshAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Directory refresh failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PruneStaleStoresResponse reports how many stores the prune removed
type PruneStaleStoresResponse struct {
	Deleted int `json:"deleted"`
}

// PruneStaleStores removes stores the place feed stopped reporting
// @Summary Prune stale stores
// @Description Deletes stores not seen in the place feed within the retention window
// @Tags admin
// @Produce json
// @Security AdminKeyAuth
// @Success 200 {object} PruneStaleStoresResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/admin/prune [post]
func (h *AdminHandler) PruneStaleStores(c *gin.Context) {
	deleted, err := jobs.CleanupStaleStoresDefault(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prune failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, PruneStaleStoresResponse{Deleted: deleted})
}
