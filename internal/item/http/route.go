package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all item routes. Writes pass through the rate limiter.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, identity, limiter gin.HandlerFunc) {
	group := g.Group("/items")
	group.Use(identity)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", limiter, h.Create)
		group.PATCH("/:id", limiter, h.Update)
		group.POST("/:id/comment", limiter, h.AddComment)
		group.POST("/:id/photo", limiter, h.UploadPhoto)
	}
}
