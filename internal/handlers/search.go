package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marosa/locator-service/internal/directory"
	"github.com/marosa/locator-service/internal/search"
)

// SearchHandler handles locator search HTTP endpoints
type SearchHandler struct {
	cache  *directory.Cache
	opts   search.Options
	stores *StoresHandler
}

// NewSearchHandler creates a new search handler. The stores handler renders
// matched places into the shared store view shape.
func NewSearchHandler(cache *directory.Cache, opts search.Options, stores *StoresHandler) *SearchHandler {
	return &SearchHandler{
		cache:  cache,
		opts:   opts,
		stores: stores,
	}
}

// SearchRequest represents query parameters for the combined search
type SearchRequest struct {
	Query string `form:"q"`
	City  string `form:"city"`
	Limit int    `form:"limit" binding:"min=0"`
}

// SearchResponse represents the combined search response
type SearchResponse struct {
	Cities []CityInfo  `json:"cities"`
	Stores []StoreView `json:"locations"`
	Query  string      `json:"query"`
}

// Search matches cities and stores against a free-text query
// @Summary Search cities and stores
// @Description Case-insensitive substring search over city names and store names. Cyrillic queries match Bulgarian city names, Latin queries match English ones; store names always fold with Bulgarian casing rules. Prefix matches rank first.
// @Tags search
// @Produce json
// @Param q query string true "Search text"
// @Param city query string false "English city name to scope store candidates to"
// @Param limit query int false "Per-pool result cap, bounded by the configured maximum"
// @Success 200 {object} SearchResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.cache.Get(c.Request.Context(), req.City)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load search candidates"})
		return
	}

	opts := h.opts
	if req.Limit > 0 && (opts.MaxResults == 0 || req.Limit < opts.MaxResults) {
		opts.MaxResults = req.Limit
	}

	result := search.Match(req.Query, snapshot.Cities, snapshot.Places, opts)

	matchedCities := make([]CityInfo, 0, len(result.Cities))
	for _, city := range result.Cities {
		matchedCities = append(matchedCities, CityInfo{
			EnglishName:   city.EnglishName,
			BulgarianName: city.BulgarianName,
			Latitude:      city.Latitude,
			Longitude:     city.Longitude,
		})
	}

	c.JSON(http.StatusOK, SearchResponse{
		Cities: matchedCities,
		Stores: h.stores.storeViews(result.Places),
		Query:  req.Query,
	})
}
