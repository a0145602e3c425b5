package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"

	"culturehub/internal/config"
	"culturehub/internal/database"
	"culturehub/internal/domain/pricing"
	jwtsvc "culturehub/internal/pkg/jwt"
	"culturehub/internal/pkg/lock"
	"culturehub/internal/pkg/logger"
	"culturehub/internal/pkg/mq"
	"culturehub/internal/server"
)

func main() {
	boot := logger.New("info", false)
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migrate")
	}

	rates, err := config.LoadRateOverrides(cfg.RateOverridesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("rate overrides")
	}
	engine := pricing.NewEngine(rates, cfg.Location())
	log.Info().Int("overrides", len(rates)).Str("timezone", cfg.Location().String()).Msg("pricing engine ready")

	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisURL != "" {
		rdb, err := lock.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("redis")
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, log)
		log.Info().Msg("using redis facility locks")
	}

	deps := server.Deps{
		DB:     db,
		Config: cfg,
		Log:    log,
		Engine: engine,
		JWT:    jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		Locker: locker,
	}
	if cfg.RabbitURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq")
		}
		defer pub.Close()
		deps.Bus = pub
		log.Info().Str("exchange", cfg.BookingExchange).Msg("publishing booking events")
	}

	app := server.New(deps)

	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	if _, err := app.Sweeper.Schedule(sched, cfg.SweepInterval); err != nil {
		log.Fatal().Err(err).Msg("schedule pending-payment sweep")
	}
	sched.Start()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sched.Shutdown(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown")
	}
	app.Hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
