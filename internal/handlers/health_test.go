package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bookwise/recommender/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	testCases := []struct {
		name     string
		pinger   Pinger
		expected string
	}{
		{"connected", func(context.Context) error { return nil }, "connected"},
		{"ping fails", func(context.Context) error { return errors.New("connection refused") }, "disconnected"},
		{"no database", nil, "disconnected"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, h := setupRouter(repository.NewMemoryBookRepository())
			h.SetPinger(tc.pinger)

			w, body := doGet(t, router, "/api/health")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "ok", body["status"])
			assert.Equal(t, tc.expected, body["database"])
			assert.Equal(t, "5000", body["port"])
			assert.Equal(t, "test", body["environment"])
		})
	}
}

func TestHealthCheckPanic(t *testing.T) {
	router, h := setupRouter(repository.NewMemoryBookRepository())
	h.SetPinger(func(context.Context) error { panic("driver exploded") })

	w, body := doGet(t, router, "/api/health")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "driver exploded", body["error"])
}

func TestHealthCheckPingHasDeadline(t *testing.T) {
	router, h := setupRouter(repository.NewMemoryBookRepository())

	var hadDeadline bool
	h.SetPinger(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})

	w, _ := doGet(t, router, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hadDeadline)
}
