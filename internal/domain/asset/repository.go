package asset

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"culturehub/internal/domain"
)

type assetRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &assetRepository{db: db}
}

func (r *assetRepository) ListByFacility(ctx context.Context, facilityID int64) ([]domain.Asset, error) {
	var out []domain.Asset
	err := r.db.WithContext(ctx).
		Where("cultural_center_id = ?", facilityID).
		Order("category ASC, name ASC").
		Find(&out).Error
	return out, err
}

func (r *assetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	var a domain.Asset
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepository) Create(ctx context.Context, a *domain.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assetRepository) Update(ctx context.Context, a *domain.Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *assetRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Asset{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *assetRepository) FacilityExists(ctx context.Context, facilityID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Facility{}).Where("id = ?", facilityID).Count(&n).Error
	return n > 0, err
}
