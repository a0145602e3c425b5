package booking

import (
	"context"
	"time"

	"culturehub/internal/domain"
	"culturehub/internal/domain/calendar"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, f ListFilter) ([]domain.Booking, error)
	// CreateWithNoOverlap inserts b unless a booking of the same facility in
	// one of the blocking statuses overlaps it.
	CreateWithNoOverlap(ctx context.Context, b *domain.Booking, blocking []domain.BookingStatus) error
	// Approve re-checks overlap against approved bookings and marks b paid.
	Approve(ctx context.Context, b *domain.Booking) error
	TransitionStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteIfStatus(ctx context.Context, id int64, status domain.BookingStatus) (bool, error)
	ListStalePending(ctx context.Context, createdBefore time.Time) ([]domain.Booking, error)
}

// FacilityReader is the slice of the facility registry bookings need.
type FacilityReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	List(ctx context.Context, building string) ([]domain.Facility, error)
}

type Broadcaster interface {
	Broadcast(ev calendar.Event)
}

type MessagePublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
