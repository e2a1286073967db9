package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the API on r
func (h *Handlers) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/recommendations/:bookId", h.GetRecommendations)
		api.GET("/genres", h.GetGenres)
		api.GET("/books", h.GetBooks)
	}
}
