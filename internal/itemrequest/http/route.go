package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all item request routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, identity, limiter gin.HandlerFunc) {
	group := g.Group("/requests")
	group.Use(identity)
	{
		group.GET("", h.ListMine)
		group.GET("/all", h.ListOthers)
		group.GET("/:id", h.Get)
		group.POST("", limiter, h.Create)
	}
}
