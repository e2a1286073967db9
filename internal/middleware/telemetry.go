package middleware

import (
	"github.com/bookwise/recommender/internal/util"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware returns the handlers that trace HTTP requests using
// OpenTelemetry: the official otelgin middleware, followed by one that adds
// request attributes while the server span is still open.
func TracingMiddleware(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{otelgin.Middleware(serviceName), annotateSpan}
}

func annotateSpan(c *gin.Context) {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		c.Next()
		return
	}

	if requestID := util.GetRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request.id", requestID))
	}
	if bookID := c.Param("bookId"); bookID != "" {
		span.SetAttributes(attribute.String("book.id", bookID))
	}
	if limit := c.Query("limit"); limit != "" {
		span.SetAttributes(attribute.String("query.limit", limit))
	}

	c.Next()

	// Record Gin errors as span events
	for _, ginErr := range c.Errors {
		if ginErr.Err != nil {
			span.RecordError(ginErr.Err, trace.WithStackTrace(true))
			span.SetStatus(codes.Error, ginErr.Error())
		}
	}
}
