package main

import (
	"context"
	"time"

	"culturehub/internal/config"
	"culturehub/internal/database"
	"culturehub/internal/domain/booking"
	"culturehub/internal/pkg/logger"
	"culturehub/internal/pkg/mq"
)

// One-shot sweep of abandoned PENDING_PAYMENT bookings, for cron.
func main() {
	boot := logger.New("info", false)
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	var bus booking.MessagePublisher
	if cfg.RabbitURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq")
		}
		defer pub.Close()
		bus = pub
	}

	sweeper := booking.NewSweeper(
		booking.NewRepository(db),
		booking.NewNotifier(nil, bus, log),
		cfg.PendingPaymentTTL,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := sweeper.Sweep(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("booking cleanup failed")
	}
	log.Info().Int("deleted", n).Dur("ttl", cfg.PendingPaymentTTL).Msg("booking cleanup completed")
}
