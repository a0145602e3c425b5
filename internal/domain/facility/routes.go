package facility

import (
	"github.com/gin-gonic/gin"

	"culturehub/internal/middleware"
)

// RegisterRoutes mounts the registry on an authenticated group. Writes are admin only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	centers := rg.Group("/cultural-centers")
	{
		centers.GET("", h.List)
		centers.GET("/rates", h.Rates)
		centers.GET("/:id", h.Get)

		centers.POST("", middleware.AdminOnly(), h.Create)
		centers.PUT("/:id", middleware.AdminOnly(), h.Update)
		centers.DELETE("/:id", middleware.AdminOnly(), h.Delete)
	}
}
