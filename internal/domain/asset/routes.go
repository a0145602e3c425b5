package asset

import (
	"github.com/gin-gonic/gin"

	"culturehub/internal/middleware"
)

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cultural-centers/:id/assets", h.List)
	rg.POST("/cultural-centers/:id/assets", middleware.AdminOnly(), h.Create)

	assets := rg.Group("/assets", middleware.AdminOnly())
	{
		assets.PUT("/:id", h.Update)
		assets.DELETE("/:id", h.Delete)
	}
}
