package util

import (
	"net/http"

	"github.com/bookwise/recommender/internal/errors"
	"github.com/bookwise/recommender/internal/logger"
	"github.com/bookwise/recommender/internal/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request. Only the client-safe
// message is rendered; details stay in the logs.
type ErrorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
}

// RespondWithAPIError sends {"error": message} with the error's status
func RespondWithAPIError(c *gin.Context, apiErr *errors.APIError) {
	logAPIError(c, apiErr)
	c.JSON(apiErr.Status, ErrorResponse{Error: apiErr.Message})
}

// RespondFailure sends {"success": false, "error": message}, the shape used by
// the catalogue endpoints
func RespondFailure(c *gin.Context, apiErr *errors.APIError) {
	logAPIError(c, apiErr)
	success := false
	c.JSON(apiErr.Status, ErrorResponse{Success: &success, Error: apiErr.Message})
}

// RespondNotFound sends a 404 Not Found response
func RespondNotFound(c *gin.Context, resource string) {
	RespondWithAPIError(c, errors.NotFound(resource))
}

// RespondInternalError sends a 500 Internal Server Error response
func RespondInternalError(c *gin.Context, message string) {
	RespondWithAPIError(c, errors.InternalError(message))
}

func logAPIError(c *gin.Context, apiErr *errors.APIError) {
	fields := []zap.Field{
		logger.WithRequestID(GetRequestID(c)),
		zap.String("code", string(apiErr.Code)),
		zap.String("message", apiErr.Message),
		zap.String("path", c.FullPath()),
		logger.WithStatus(apiErr.Status),
	}
	if apiErr.Details != "" {
		fields = append(fields, zap.String("details", apiErr.Details))
	}

	if apiErr.Status >= http.StatusInternalServerError {
		logger.Log.Error("API error", fields...)
		metrics.RecordError(string(apiErr.Code), c.FullPath())
	} else if apiErr.Status >= http.StatusBadRequest {
		logger.Log.Warn("API error", fields...)
	}
}
