package server

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/handlers"
	"github.com/bookwise/recommender/internal/middleware"
	"github.com/bookwise/recommender/internal/models"
	"github.com/bookwise/recommender/internal/recommendations"
	"github.com/bookwise/recommender/internal/repository"
	"github.com/bookwise/recommender/internal/similarity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(gzipEnabled bool) *config.Config {
	return &config.Config{
		Port:                   "5000",
		Environment:            "test",
		DefaultRecommendations: 5,
		MaxRecommendations:     50,
		RequestTimeout:         time.Second,
		GzipEnabled:            gzipEnabled,
	}
}

func newRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()

	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryBookRepository(
		&models.Book{ID: "9b2f6a52-4c1e-4d0e-9a57-1f1c0d2b7a11", Title: "Gone Girl", Author: "Gillian Flynn",
			Genre: "Mystery, Thriller", Rating: 4, TotalCopies: 2, AvailableCopies: 1, CreatedAt: created},
		&models.Book{ID: "0c3a7e14-8d5b-4f62-b1a9-6e2d4c8f9a30", Title: "The Big Sleep", Author: "Raymond Chandler",
			Genre: "Detective", Rating: 5, TotalCopies: 1, AvailableCopies: 1, CreatedAt: created.Add(-time.Hour)},
	)
	engine := recommendations.NewEngine(repo, similarity.NewScorer(similarity.DefaultTable()),
		cfg.DefaultRecommendations, cfg.MaxRecommendations)
	return NewRouter(cfg, handlers.NewHandlers(engine, repo, cfg))
}

func TestRouterServesAPI(t *testing.T) {
	router := newRouter(t, testConfig(false))

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations/9b2f6a52-4c1e-4d0e-9a57-1f1c0d2b7a11?limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var body handlers.RecommendationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Recommendations, 1)
	assert.Equal(t, "The Big Sleep", body.Recommendations[0].Title)
}

func TestRouterAllowsAnyOrigin(t *testing.T) {
	router := newRouter(t, testConfig(false))

	req := httptest.NewRequest(http.MethodGet, "/api/genres", nil)
	req.Header.Set("Origin", "https://library.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterPreflight(t *testing.T) {
	router := newRouter(t, testConfig(false))

	req := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
	req.Header.Set("Origin", "https://library.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterGzip(t *testing.T) {
	router := newRouter(t, testConfig(true))

	req := httptest.NewRequest(http.MethodGet, "/api/genres", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)

	var body struct {
		Success bool     `json:"success"`
		Genres  []string `json:"genres"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, body.Success)
	assert.Equal(t, []string{"Detective", "Mystery, Thriller"}, body.Genres)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newRouter(t, testConfig(true))

	warm := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(httptest.NewRecorder(), warm)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookwise_http_requests_total")
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newRouter(t, testConfig(false))

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterRecoversWithJSON(t *testing.T) {
	router := newRouter(t, testConfig(false))
	router.GET("/api/explode", func(*gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/explode", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestNewHTTPServerBindsAllInterfaces(t *testing.T) {
	srv := NewHTTPServer(testConfig(false), http.NotFoundHandler())
	assert.Equal(t, "0.0.0.0:5000", srv.Addr)
}
