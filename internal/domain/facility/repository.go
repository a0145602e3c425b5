package facility

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"culturehub/internal/domain"
)

type facilityRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &facilityRepository{db: db}
}

func (r *facilityRepository) List(ctx context.Context, building string) ([]domain.Facility, error) {
	var out []domain.Facility
	q := r.db.WithContext(ctx).Order("building ASC, name ASC")
	if building != "" {
		q = q.Where("building = ?", building)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *facilityRepository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	var f domain.Facility
	err := r.db.WithContext(ctx).First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facilityRepository) GetByName(ctx context.Context, name string) (*domain.Facility, error) {
	var f domain.Facility
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facilityRepository) Create(ctx context.Context, f *domain.Facility) error {
	return mapWriteError(r.db.WithContext(ctx).Create(f).Error)
}

func (r *facilityRepository) Update(ctx context.Context, f *domain.Facility) error {
	return mapWriteError(r.db.WithContext(ctx).Save(f).Error)
}

func (r *facilityRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Facility{}, id).Error
}

func (r *facilityRepository) CountBookings(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("cultural_center_id = ?", id).
		Count(&n).Error
	return n, err
}

// mapWriteError turns a unique violation on the name index into ErrNameTaken.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrNameTaken
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrNameTaken
	}
	return err
}
