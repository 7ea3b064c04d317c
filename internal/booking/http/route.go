package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all booking routes. Every route needs a caller identity;
// writes additionally pass through the per-user rate limiter.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, identity, limiter gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(identity)
	{
		group.GET("", h.ListByBooker)
		group.GET("/owner", h.ListByOwner)
		group.GET("/:id", h.Get)
		group.POST("", limiter, h.Create)
		group.PATCH("/:id", limiter, h.Decide)
	}
}
