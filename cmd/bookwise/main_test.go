package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bookwise/recommender/internal/config"
	"github.com/bookwise/recommender/internal/handlers"
	"github.com/bookwise/recommender/internal/models"
	"github.com/bookwise/recommender/internal/recommendations"
	"github.com/bookwise/recommender/internal/repository"
	"github.com/bookwise/recommender/internal/similarity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with fresh flag values
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	outputFmt = "text"
	verbose = false
	similarityTablePath = ""
	recLimit = 0
	apiTimeout = 5 * time.Second

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func startAPI(t *testing.T, ping func(context.Context) error) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	created := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryBookRepository(
		&models.Book{ID: "1f0e8a8e-7a3c-4c55-9a3a-2b1d0c9e8f70", Title: "Gone Girl", Author: "Gillian Flynn",
			Genre: "Mystery, Thriller", Rating: 4, TotalCopies: 3, AvailableCopies: 2, CreatedAt: created},
		&models.Book{ID: "6d2c4b1a-9e8f-4a7b-8c6d-5e4f3a2b1c0d", Title: "The Big Sleep", Author: "Raymond Chandler",
			Genre: "Detective", Rating: 5, TotalCopies: 1, AvailableCopies: 1, CreatedAt: created.Add(-time.Hour)},
		&models.Book{ID: "a7b6c5d4-e3f2-4a1b-9c8d-7e6f5a4b3c2d", Title: "Dracula", Author: "Bram Stoker",
			Genre: "Horror", Rating: 4, TotalCopies: 2, AvailableCopies: 0, CreatedAt: created.Add(-2 * time.Hour)},
	)

	cfg := &config.Config{Port: "5000", Environment: "test", DefaultRecommendations: 5, MaxRecommendations: 50, RequestTimeout: time.Second}
	engine := recommendations.NewEngine(repo, similarity.NewScorer(similarity.DefaultTable()), 5, 50)
	h := handlers.NewHandlers(engine, repo, cfg)
	if ping != nil {
		h.SetPinger(ping)
	}

	router := gin.New()
	h.RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestSimilarityText(t *testing.T) {
	out, err := runCLI(t, "similarity", "Mystery, Thriller", "Detective")
	require.NoError(t, err)
	assert.Contains(t, out, "0.90")
	assert.Contains(t, out, "table")
	assert.Contains(t, out, "mystery ~ detective")
}

func TestSimilarityJSON(t *testing.T) {
	out, err := runCLI(t, "similarity", "Poetry", "Cooking", "--output", "json")
	require.NoError(t, err)

	var result similarityResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, similarity.FloorScore, result.Score)
	assert.Equal(t, string(similarity.MatchFallback), result.Kind)
	assert.Equal(t, similarity.DefaultTable().Source(), result.TableSource)
}

func TestSimilarityCustomTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cooking:\n  baking: 0.7\n"), 0o644))

	out, err := runCLI(t, "similarity", "Baking", "Cooking", "--table", path, "-o", "json")
	require.NoError(t, err)

	var result similarityResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.InDelta(t, 0.7, result.Score, 1e-9)
	assert.Equal(t, path, result.TableSource)
}

func TestSimilarityMissingTable(t *testing.T) {
	_, err := runCLI(t, "similarity", "a", "b", "--table", filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestSimilarityNeedsTwoGenres(t *testing.T) {
	_, err := runCLI(t, "similarity", "Mystery")
	assert.Error(t, err)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := runCLI(t, "similarity", "a", "b", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --output")
}

func TestRecommendText(t *testing.T) {
	url := startAPI(t, nil)

	out, err := runCLI(t, "recommend", "1f0e8a8e-7a3c-4c55-9a3a-2b1d0c9e8f70", "--api-url", url, "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Gone Girl")
	assert.Contains(t, out, "The Big Sleep")
	assert.Contains(t, out, "0.90")
	assert.Contains(t, out, "Dracula")
	assert.Contains(t, out, "0/2")
}

func TestRecommendJSON(t *testing.T) {
	url := startAPI(t, nil)

	out, err := runCLI(t, "recommend", "1f0e8a8e-7a3c-4c55-9a3a-2b1d0c9e8f70", "--api-url", url, "-l", "1", "-o", "json")
	require.NoError(t, err)

	var resp handlers.RecommendationsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "The Big Sleep", resp.Recommendations[0].Title)
}

func TestRecommendUnknownBook(t *testing.T) {
	url := startAPI(t, nil)

	_, err := runCLI(t, "recommend", "00000000-0000-0000-0000-000000000000", "--api-url", url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRecommendNegativeLimit(t *testing.T) {
	_, err := runCLI(t, "recommend", "x", "--limit", "-1")
	assert.Error(t, err)
}

func TestGenres(t *testing.T) {
	url := startAPI(t, nil)

	out, err := runCLI(t, "genres", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "Detective\nHorror\nMystery, Thriller\n", out)
}

func TestHealth(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		url := startAPI(t, func(context.Context) error { return nil })

		out, err := runCLI(t, "health", "--api-url", url)
		require.NoError(t, err)
		assert.Contains(t, out, "status: ok")
		assert.Contains(t, out, "database: connected")
	})

	t.Run("disconnected", func(t *testing.T) {
		url := startAPI(t, nil)

		out, err := runCLI(t, "health", "--api-url", url)
		require.Error(t, err)
		assert.Contains(t, out, "database: disconnected")
	})
}
