package asset

import (
	"context"

	"culturehub/internal/domain"
)

type Repository interface {
	ListByFacility(ctx context.Context, facilityID int64) ([]domain.Asset, error)
	GetByID(ctx context.Context, id int64) (*domain.Asset, error)
	Create(ctx context.Context, a *domain.Asset) error
	Update(ctx context.Context, a *domain.Asset) error
	Delete(ctx context.Context, id int64) error
	FacilityExists(ctx context.Context, facilityID int64) (bool, error)
}
