package util

import "github.com/gin-gonic/gin"

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// GetRequestID returns the id assigned by the request id middleware, or ""
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(RequestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
