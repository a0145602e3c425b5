package facility

import (
	"context"

	"culturehub/internal/domain"
)

type Repository interface {
	List(ctx context.Context, building string) ([]domain.Facility, error)
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	GetByName(ctx context.Context, name string) (*domain.Facility, error)
	Create(ctx context.Context, f *domain.Facility) error
	Update(ctx context.Context, f *domain.Facility) error
	Delete(ctx context.Context, id int64) error
	CountBookings(ctx context.Context, id int64) (int64, error)
}
