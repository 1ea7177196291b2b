package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marosa/locator-service/internal/brochure"
	"github.com/marosa/locator-service/internal/directory"
	"github.com/marosa/locator-service/internal/hours"
	"github.com/marosa/locator-service/internal/places"
	"github.com/marosa/locator-service/internal/search"
	"github.com/marosa/locator-service/internal/storage"
)

func testEvaluator(t *testing.T) *hours.Evaluator {
	t.Helper()
	ev, err := hours.NewEvaluator(hours.DefaultConfig())
	require.NoError(t, err)
	return ev
}

func staticCache(pool []places.Place) *directory.Cache {
	loader := func(ctx context.Context, city string) ([]places.Place, error) {
		return pool, nil
	}
	return directory.NewCache(loader, directory.DefaultConfig())
}

func testPlaces() []places.Place {
	return []places.Place{
		{
			PlaceID:     "loc-001",
			DisplayName: &places.DisplayName{Text: "Мароса Люлин"},
			Position:    places.LatLng{Lat: 42.7167, Lng: 23.25},
			City:        "Sofia",
		},
		{
			PlaceID:     "loc-002",
			DisplayName: &places.DisplayName{Text: "Мароса Варна"},
			Position:    places.LatLng{Lat: 43.2141, Lng: 27.9147},
			City:        "Varna",
		},
	}
}

func TestListCitiesEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/cities", ListCities)

	req, err := http.NewRequest("GET", "/api/cities", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ListCitiesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, len(response.Cities), response.Total)
	assert.Greater(t, response.Total, 10)

	var sofia *CityInfo
	for i := range response.Cities {
		if response.Cities[i].EnglishName == "Sofia" {
			sofia = &response.Cities[i]
			break
		}
	}
	require.NotNil(t, sofia, "Sofia should be in the city list")
	assert.Equal(t, "София", sofia.BulgarianName)
}

func TestListStoresEndpoint(t *testing.T) {
	h := NewStoresHandler(staticCache(testPlaces()), nil, testEvaluator(t))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/stores", h.ListStores)

	req, err := http.NewRequest("GET", "/api/stores", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ListStoresResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.Equal(t, 2, response.Total)
	assert.Equal(t, "Мароса Люлин", response.Stores[0].Name)
	// No schedule on the test places, the state must degrade gracefully.
	assert.Equal(t, string(hours.StateUnknown), response.Stores[0].Status.State)
	assert.Equal(t, "Няма информация", response.Stores[0].Status.StatusLabel)
	// Rating defaults when the directory has none.
	assert.Equal(t, places.DefaultRating, response.Stores[0].Rating)
}

func TestStoresInAreaRejectsSwappedCorners(t *testing.T) {
	h := NewStoresHandler(staticCache(nil), nil, testEvaluator(t))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/stores/areas", h.StoresInArea)

	req, err := http.NewRequest("GET", "/api/stores/areas?swLat=43&swLng=23&neLat=42&neLng=24", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEndpoint(t *testing.T) {
	stores := NewStoresHandler(staticCache(testPlaces()), nil, testEvaluator(t))
	h := NewSearchHandler(staticCache(testPlaces()), search.Options{MaxResults: 10}, stores)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/search", h.Search)

	req, err := http.NewRequest("GET", "/api/search?q=Мароса", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "Мароса", response.Query)
	assert.Empty(t, response.Cities)
	require.Len(t, response.Stores, 2)
	assert.Equal(t, "loc-001", response.Stores[0].PlaceID)
}

func TestSearchEndpointLimit(t *testing.T) {
	stores := NewStoresHandler(staticCache(testPlaces()), nil, testEvaluator(t))
	h := NewSearchHandler(staticCache(testPlaces()), search.Options{MaxResults: 10}, stores)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/search", h.Search)

	req, err := http.NewRequest("GET", "/api/search?q=Мароса&limit=1", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.Len(t, response.Stores, 1)
	assert.Equal(t, "loc-001", response.Stores[0].PlaceID)
}

func TestSearchEndpointMatchesCities(t *testing.T) {
	stores := NewStoresHandler(staticCache(nil), nil, testEvaluator(t))
	h := NewSearchHandler(staticCache(nil), search.Options{MaxResults: 10}, stores)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/search", h.Search)

	req, err := http.NewRequest("GET", "/api/search?q=Пловдив", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.Len(t, response.Cities, 1)
	assert.Equal(t, "Plovdiv", response.Cities[0].EnglishName)
	assert.Empty(t, response.Stores)
}

func TestGetBrochureEndpoint(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := brochure.NewService(store, "", zerolog.Nop())

	_, err = svc.Import(context.Background(), "weekly", "Седмична брошура", []brochure.PageAsset{
		{Content: []byte("p1"), Ext: "jpg"},
		{Content: []byte("p2"), Ext: "jpg"},
		{Content: []byte("p3"), Ext: "jpg"},
	})
	require.NoError(t, err)

	h := NewBrochureHandler(svc, "")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/brochure", h.GetBrochure)

	req, err := http.NewRequest("GET", "/api/brochure?slug=weekly&page=2&pageSize=2", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response GetBrochureResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "Седмична брошура", response.Title)
	assert.Equal(t, 3, response.PageCount)
	require.Len(t, response.Pages, 1)
	assert.Equal(t, 3, response.Pages[0].Number)
}

func TestGetBrochureNotFound(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	h := NewBrochureHandler(brochure.NewService(store, "", zerolog.Nop()), "")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/brochure", h.GetBrochure)

	req, err := http.NewRequest("GET", "/api/brochure?slug=missing", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBrochureRequiresSlug(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	h := NewBrochureHandler(brochure.NewService(store, "", zerolog.Nop()), "")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/brochure", h.GetBrochure)

	req, err := http.NewRequest("GET", "/api/brochure", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBrochureDefaultSlug(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := brochure.NewService(store, "", zerolog.Nop())

	_, err = svc.Import(context.Background(), "weekly", "Седмична брошура", []brochure.PageAsset{
		{Content: []byte("p1"), Ext: "jpg"},
	})
	require.NoError(t, err)

	h := NewBrochureHandler(svc, "weekly")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/brochure", h.GetBrochure)

	req, err := http.NewRequest("GET", "/api/brochure", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response GetBrochureResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "weekly", response.Slug)
}
