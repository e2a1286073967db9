package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bookwise/recommender/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	dbConnected    = "connected"
	dbDisconnected = "disconnected"
)

// HealthResponse reports process and database status
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Port        string `json:"port"`
	Environment string `json:"environment"`
}

// HealthCheck reports liveness. A failed database ping is reported in the
// body but does not fail the check.
// GET /api/health
func (h *Handlers) HealthCheck(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Health check panicked", zap.Any("panic", r))
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": "error",
				"error":  fmt.Sprint(r),
			})
		}
	}()

	c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		Database:    h.databaseStatus(c.Request.Context()),
		Port:        h.port,
		Environment: h.environment,
	})
}

func (h *Handlers) databaseStatus(ctx context.Context) string {
	if h.pinger == nil {
		return dbDisconnected
	}

	ctx, cancel := context.WithTimeout(ctx, h.pingTimeout)
	defer cancel()

	if err := h.pinger(ctx); err != nil {
		logger.Log.Warn("Database ping failed", zap.Error(err))
		return dbDisconnected
	}
	return dbConnected
}
