package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marosa/locator-service/internal/database"
	"github.com/marosa/locator-service/internal/directory"
	"github.com/marosa/locator-service/internal/hours"
	"github.com/marosa/locator-service/internal/places"
)

// StoresHandler handles store directory HTTP endpoints
type StoresHandler struct {
	cache     *directory.Cache
	repo      *database.StoreRepository
	evaluator *hours.Evaluator
}

// NewStoresHandler creates a new stores handler
func NewStoresHandler(cache *directory.Cache, repo *database.StoreRepository, evaluator *hours.Evaluator) *StoresHandler {
	return &StoresHandler{
		cache:     cache,
		repo:      repo,
		evaluator: evaluator,
	}
}

// StoreStatus represents the evaluated opening state of a store
type StoreStatus struct {
	State       string `json:"state" jsonschema:"required"`
	StatusLabel string `json:"statusLabel" jsonschema:"required"`
	DetailLabel string `json:"detailLabel"`
}

// StoreView represents one store in API responses
type StoreView struct {
	PlaceID   string      `json:"placeId" jsonschema:"required"`
	Name      string      `json:"name" jsonschema:"required"`
	City      string      `json:"city"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Rating    float64     `json:"rating"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	Status    StoreStatus `json:"status"`
}

// ListStoresResponse represents the store list response
type ListStoresResponse struct {
	Stores []StoreView `json:"stores"`
	Total  int         `json:"total"`
}

// ListStoresRequest represents query parameters for listing stores
type ListStoresRequest struct {
	City string `form:"city"`
}

// ListStores returns the store directory, optionally scoped to one city
// @Summary List stores
// @Description Returns all stores, or only the stores of one city, with their current opening status
// @Tags stores
// @Produce json
// @Param city query string false "English city name to scope the list to"
// @Success 200 {object} ListStoresResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/stores [get]
func (h *StoresHandler) ListStores(c *gin.Context) {
	var req ListStoresRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.cache.Get(c.Request.Context(), req.City)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load store directory"})
		return
	}

	c.JSON(http.StatusOK, ListStoresResponse{
		Stores: h.storeViews(snapshot.Places),
		Total:  len(snapshot.Places),
	})
}

// StoresInAreaRequest represents the bounding box query for area lookups
type StoresInAreaRequest struct {
	SWLat float64 `form:"swLat" binding:"min=-90,max=90"`
	SWLng float64 `form:"swLng" binding:"min=-180,max=180"`
	NELat float64 `form:"neLat" binding:"min=-90,max=90"`
	NELng float64 `form:"neLng" binding:"min=-180,max=180"`
}

// StoresInArea returns stores inside a map viewport
// @Summary List stores in an area
// @Description Returns the stores whose coordinates fall inside the given bounding box
// @Tags stores
// @Produce json
// @Param swLat query number true "South-west latitude"
// @Param swLng query number true "South-west longitude"
// @Param neLat query number true "North-east latitude"
// @Param neLng query number true "North-east longitude"
// @Success 200 {object} ListStoresResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/stores/areas [get]
func (h *StoresHandler) StoresInArea(c *gin.Context) {
	var req StoresInAreaRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SWLat > req.NELat || req.SWLng > req.NELng {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bounding box corners are swapped"})
		return
	}

	records, err := h.repo.ListStoresInArea(c.Request.Context(), req.SWLat, req.SWLng, req.NELat, req.NELng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query stores"})
		return
	}

	placesInArea := make([]places.Place, 0, len(records))
	for _, rec := range records {
		placesInArea = append(placesInArea, rec.Place())
	}

	c.JSON(http.StatusOK, ListStoresResponse{
		Stores: h.storeViews(placesInArea),
		Total:  len(placesInArea),
	})
}

// GetStore returns a single store by its place ID
// @Summary Get store
// @Description Returns one store with its current opening status
// @Tags stores
// @Produce json
// @Param placeId path string true "Place ID"
// @Success 200 {object} StoreView
// @Failure 404 {object} map[string]string "Store not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/stores/{placeId} [get]
func (h *StoresHandler) GetStore(c *gin.Context) {
	placeID := c.Param("placeId")

	record, err := h.repo.GetStore(c.Request.Context(), placeID)
	if err != nil {
		if errors.Is(err, database.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load store"})
		return
	}

	c.JSON(http.StatusOK, h.storeView(record.Place()))
}

// GetStoreStatus returns only the opening status of a store
// @Summary Get store opening status
// @Description Evaluates the store's weekly schedule against the current local time
// @Tags stores
// @Produce json
// @Param placeId path string true "Place ID"
// @Success 200 {object} StoreStatus
// @Failure 404 {object} map[string]string "Store not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/stores/{placeId}/status [get]
func (h *StoresHandler) GetStoreStatus(c *gin.Context) {
	placeID := c.Param("placeId")

	record, err := h.repo.GetStore(c.Request.Context(), placeID)
	if err != nil {
		if errors.Is(err, database.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load store"})
		return
	}

	c.JSON(http.StatusOK, h.status(record.Hours))
}

func (h *StoresHandler) status(schedule *hours.Schedule) StoreStatus {
	st := h.evaluator.ComputeNow(schedule)
	return StoreStatus{
		State:       string(st.State),
		StatusLabel: st.StatusLabel,
		DetailLabel: st.DetailLabel,
	}
}

func (h *StoresHandler) storeView(p places.Place) StoreView {
	return StoreView{
		PlaceID:   p.PlaceID,
		Name:      p.Name(),
		City:      p.City,
		Latitude:  p.Position.Lat,
		Longitude: p.Position.Lng,
		Rating:    p.EffectiveRating(),
		ImageURL:  p.ImageURL,
		Status:    h.status(p.OpeningHours),
	}
}

func (h *StoresHandler) storeViews(pool []places.Place) []StoreView {
	views := make([]StoreView, 0, len(pool))
	for _, p := range pool {
		views = append(views, h.storeView(p))
	}
	return views
}
