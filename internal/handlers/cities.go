package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marosa/locator-service/internal/cities"
)

// CityInfo represents one supported city
type CityInfo struct {
	EnglishName   string  `json:"englishName" jsonschema:"required"`
	BulgarianName string  `json:"bulgarianName" jsonschema:"required"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// ListCitiesResponse represents the supported-cities response
type ListCitiesResponse struct {
	Cities []CityInfo `json:"cities"`
	Total  int        `json:"total"`
}

// ListCities returns all supported cities
// @Summary List supported cities
// @Description Returns every city the directory covers, with both name variants and center coordinates
// @Tags cities
// @Produce json
// @Success 200 {object} ListCitiesResponse
// @Router /api/cities [get]
func ListCities(c *gin.Context) {
	all := cities.All()

	out := make([]CityInfo, 0, len(all))
	for _, city := range all {
		out = append(out, CityInfo{
			EnglishName:   city.EnglishName,
			BulgarianName: city.BulgarianName,
			Latitude:      city.Latitude,
			Longitude:     city.Longitude,
		})
	}

	c.JSON(http.StatusOK, ListCitiesResponse{
		Cities: out,
		Total:  len(out),
	})
}
