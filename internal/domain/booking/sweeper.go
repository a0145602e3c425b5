package booking

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"culturehub/internal/domain"
	"culturehub/internal/domain/calendar"
)

// Sweeper removes PENDING_PAYMENT bookings whose checkout was abandoned
// without the compensating delete ever reaching the server.
type Sweeper struct {
	repo   Repository
	events *Notifier
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

func NewSweeper(repo Repository, events *Notifier, ttl time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		repo:   repo,
		events: events,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

// Sweep deletes stale pending-payment bookings and returns how many went.
// A booking confirmed between the scan and the delete is left alone.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	started := s.now()
	cutoff := started.Add(-s.ttl)

	stale, err := s.repo.ListStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for i := range stale {
		b := &stale[i]
		ok, err := s.repo.DeleteIfStatus(ctx, b.ID, domain.BookingPendingPayment)
		if err != nil {
			s.log.Error().Err(err).Int64("booking_id", b.ID).Msg("expire pending booking")
			continue
		}
		if !ok {
			continue
		}
		deleted++
		s.events.Emit(ctx, calendar.EventBookingExpired, b)
	}

	if deleted > 0 {
		s.log.Info().
			Int("deleted", deleted).
			Time("cutoff", cutoff).
			Dur("took", time.Since(started)).
			Msg("expired pending-payment bookings")
	}
	return deleted, nil
}

// Schedule registers the sweep as a singleton duration job on sched.
func (s *Sweeper) Schedule(sched gocron.Scheduler, every time.Duration) (gocron.Job, error) {
	return sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), every)
			defer cancel()
			if _, err := s.Sweep(ctx); err != nil {
				s.log.Error().Err(err).Msg("pending-payment sweep failed")
			}
		}),
		gocron.WithName("pending-payment-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
}
