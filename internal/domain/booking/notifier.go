package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"culturehub/internal/domain"
	"culturehub/internal/domain/calendar"
)

const publishTimeout = 5 * time.Second

// Notifier fans booking lifecycle events out to the calendar hub and the
// message bus. Either sink may be nil. Failures are logged, never returned.
type Notifier struct {
	hub Broadcaster
	bus MessagePublisher
	log zerolog.Logger
}

func NewNotifier(hub Broadcaster, bus MessagePublisher, log zerolog.Logger) *Notifier {
	return &Notifier{hub: hub, bus: bus, log: log}
}

func (n *Notifier) Emit(ctx context.Context, eventType string, b *domain.Booking) {
	if n == nil {
		return
	}
	ev := calendar.NewEvent(eventType, b)

	if n.hub != nil {
		n.hub.Broadcast(ev)
	}
	if n.bus != nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := n.bus.PublishJSON(pubCtx, eventType, ev); err != nil {
			n.log.Error().Err(err).Str("event", eventType).Int64("booking_id", ev.Booking.ID).
				Msg("publish booking event")
		}
	}
}
