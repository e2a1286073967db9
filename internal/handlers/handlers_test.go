package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/models"
	"github.com/bookwise/recommender/internal/recommendations"
	"github.com/bookwise/recommender/internal/repository"
	"github.com/bookwise/recommender/internal/similarity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var fixtureTime = time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Port:                   "5000",
		Environment:            "test",
		DefaultRecommendations: 5,
		MaxRecommendations:     50,
		RequestTimeout:         time.Second,
	}
}

func newBook(id, title, genre string, rating, available int, age time.Duration) *models.Book {
	return &models.Book{
		ID:              id,
		Title:           title,
		Author:          "Author of " + title,
		Genre:           genre,
		Rating:          rating,
		CoverURL:        "https://covers.example.com/" + id + ".jpg",
		CoverColor:      "#a1b2c3",
		Description:     "About " + title,
		TotalCopies:     available + 1,
		AvailableCopies: available,
		CreatedAt:       fixtureTime.Add(-age),
	}
}

// setupRouter wires handlers over an in-memory repository
func setupRouter(repo repository.BookRepository) (*gin.Engine, *Handlers) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	engine := recommendations.NewEngine(repo, similarity.NewScorer(similarity.DefaultTable()),
		cfg.DefaultRecommendations, cfg.MaxRecommendations)
	h := NewHandlers(engine, repo, cfg)

	router := gin.New()
	h.RegisterRoutes(router)
	return router, h
}

func doGet(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}
