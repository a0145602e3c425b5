package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"culturehub/internal/domain"
)

// postgres SQLSTATEs raised by the optional no-overlap exclusion constraint
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Preload("CulturalCenter").First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) List(ctx context.Context, f ListFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{}).Preload("CulturalCenter")
	if f.FacilityID > 0 {
		q = q.Where("cultural_center_id = ?", f.FacilityID)
	}
	if len(f.FacilityIDs) > 0 {
		q = q.Where("cultural_center_id IN ?", f.FacilityIDs)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if !f.From.IsZero() {
		q = q.Where("end_time > ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		q = q.Where("start_time < ?", f.To.UTC())
	}

	var out []domain.Booking
	if err := q.Order("start_time ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWithNoOverlap runs in a txn and locks overlapping candidates so two
// writers cannot both see a free slot.
func (r *bookingRepository) CreateWithNoOverlap(ctx context.Context, b *domain.Booking, blocking []domain.BookingStatus) error {
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := overlapExists(tx, b.CulturalCenterID, b.StartTime, b.EndTime, blocking, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		return tx.Omit(clause.Associations).Create(b).Error
	})
	return mapConflict(err)
}

func (r *bookingRepository) Approve(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := overlapExists(tx, b.CulturalCenterID, b.StartTime, b.EndTime,
			[]domain.BookingStatus{domain.BookingApproved}, b.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}

		res := tx.Model(&domain.Booking{}).
			Where("id = ? AND status IN ?", b.ID, []domain.BookingStatus{domain.BookingPending, domain.BookingPendingPayment}).
			Updates(map[string]any{"status": domain.BookingApproved, "fee_paid": true})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return mapConflict(err)
	}
	b.Status = domain.BookingApproved
	b.FeePaid = true
	return nil
}

func (r *bookingRepository) TransitionStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Booking{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *bookingRepository) DeleteIfStatus(ctx context.Context, id int64, status domain.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).Where("status = ?", status).Delete(&domain.Booking{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *bookingRepository) ListStalePending(ctx context.Context, createdBefore time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.BookingPendingPayment, createdBefore.UTC()).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func overlapExists(tx *gorm.DB, facilityID int64, start, end time.Time, statuses []domain.BookingStatus, excludeID int64) (bool, error) {
	q := tx.Model(&domain.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cultural_center_id = ? AND status IN ?", facilityID, statuses).
		Where("start_time < ? AND end_time > ?", end.UTC(), start.UTC())
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var existing domain.Booking
	err := q.Take(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation) {
		return ErrSlotTaken
	}
	return err
}
