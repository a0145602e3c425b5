// Package server assembles the HTTP API from the domain packages.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"culturehub/internal/config"
	"culturehub/internal/domain/asset"
	"culturehub/internal/domain/booking"
	"culturehub/internal/domain/calendar"
	"culturehub/internal/domain/facility"
	"culturehub/internal/domain/pricing"
	"culturehub/internal/middleware"
	"culturehub/internal/pkg/jwt"
	"culturehub/internal/pkg/lock"
	"culturehub/internal/pkg/response"
)

type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
	Engine *pricing.Engine
	JWT    *jwt.Service
	Locker lock.Locker
	// Bus is optional.
	Bus booking.MessagePublisher
}

// App is the wired API plus the background pieces main needs to run.
type App struct {
	Router  *gin.Engine
	Hub     *calendar.Hub
	Sweeper *booking.Sweeper
}

func New(d Deps) *App {
	if d.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := calendar.NewHub(d.Log)
	notifier := booking.NewNotifier(hub, d.Bus, d.Log)

	facilityRepo := facility.NewRepository(d.DB)
	bookingRepo := booking.NewRepository(d.DB)

	facilityHandler := facility.NewHandler(facility.NewService(facilityRepo, d.Engine, d.Log))
	assetHandler := asset.NewHandler(asset.NewService(asset.NewRepository(d.DB), d.Log))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, facilityRepo, d.Engine, d.Locker, notifier, d.Log))
	wsHandler := calendar.NewWSHandler(hub, d.JWT, d.Config.CORSAllowedOrigins, d.Log)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.CORS(d.Config.CORSAllowedOrigins),
	)

	r.GET("/health", healthHandler(d.DB))

	api := r.Group("/api")
	// websocket authenticates with a query token
	wsHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(d.JWT))
	{
		facilityHandler.RegisterRoutes(protected)
		assetHandler.RegisterRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
	}

	return &App{
		Router:  r,
		Hub:     hub,
		Sweeper: booking.NewSweeper(bookingRepo, notifier, d.Config.PendingPaymentTTL, d.Log),
	}
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	}
}
