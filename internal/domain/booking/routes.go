package booking

import (
	"github.com/gin-gonic/gin"

	"culturehub/internal/middleware"
)

// RegisterRoutes mounts booking routes on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.List)
		bookings.GET("/calendar", h.Calendar)
		bookings.GET("/stats", middleware.AdminOnly(), h.Stats)
		bookings.POST("/quote", h.Quote)
		bookings.POST("", h.Create)

		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/confirm-payment", h.ConfirmPayment)
		bookings.POST("/:id/reject", middleware.AdminOnly(), h.Reject)
		bookings.DELETE("/:id", h.Delete)
	}
}
