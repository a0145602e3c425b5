package calendar

import (
	"time"

	"culturehub/internal/domain"
)

// Booking lifecycle event types.
const (
	EventBookingCreated  = "booking.created"
	EventBookingApproved = "booking.approved"
	EventBookingRejected = "booking.rejected"
	EventBookingDeleted  = "booking.deleted"
	EventBookingExpired  = "booking.expired"
)

// Event is pushed to calendar subscribers and published to the message bus.
type Event struct {
	Type             string          `json:"type"`
	CulturalCenterID int64           `json:"culturalCenterId"`
	Booking          *domain.Booking `json:"booking,omitempty"`
	At               time.Time       `json:"at"`
}

func NewEvent(eventType string, b *domain.Booking) Event {
	ev := Event{Type: eventType, At: time.Now().UTC()}
	if b != nil {
		cp := *b
		cp.CulturalCenter = nil
		ev.Booking = &cp
		ev.CulturalCenterID = b.CulturalCenterID
	}
	return ev
}

// Redacted applies domain.Booking.Redacted to the payload.
func (e Event) Redacted() Event {
	if e.Booking == nil || e.Booking.Visibility != domain.VisibilityPrivate {
		return e
	}
	cp := e.Booking.Redacted()
	e.Booking = &cp
	return e
}
