package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"culturehub/internal/domain"
	"culturehub/internal/domain/calendar"
	"culturehub/internal/domain/facility"
	"culturehub/internal/domain/pricing"
	"culturehub/internal/pkg/lock"
)

const lockWait = 5 * time.Second

// holdingStatuses block a new booking of the same facility and time.
var holdingStatuses = []domain.BookingStatus{
	domain.BookingPending,
	domain.BookingPendingPayment,
	domain.BookingApproved,
}

type Service struct {
	repo       Repository
	facilities FacilityReader
	engine     *pricing.Engine
	locker     lock.Locker
	events     *Notifier
	log        zerolog.Logger
	now        func() time.Time
}

func NewService(
	repo Repository,
	facilities FacilityReader,
	engine *pricing.Engine,
	locker lock.Locker,
	events *Notifier,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		facilities: facilities,
		engine:     engine,
		locker:     locker,
		events:     events,
		log:        log,
		now:        time.Now,
	}
}

// Quote prices a form in progress. Incomplete input yields a zero quote, not an error.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (pricing.Quote, error) {
	if req.CulturalCenterID <= 0 {
		return s.engine.ComputeRentalFee(nil, req.StartTime, req.EndTime), nil
	}
	f, err := s.facilities.GetByID(ctx, req.CulturalCenterID)
	if err != nil {
		return pricing.Quote{}, s.facilityError(err)
	}
	return s.engine.ComputeRentalFee(f, req.StartTime, req.EndTime), nil
}

func (s *Service) Create(ctx context.Context, actor Actor, req CreateRequest) (*domain.Booking, error) {
	start, okStart := s.engine.ParseTime(req.StartTime)
	end, okEnd := s.engine.ParseTime(req.EndTime)
	if !okStart || !okEnd {
		return nil, ErrInvalidTime
	}
	if !end.After(start) {
		return nil, ErrInvalidInterval
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}
	if !visibility.Valid() {
		return nil, fmt.Errorf("%w: visibility must be PUBLIC or PRIVATE", ErrValidation)
	}

	status, err := initialStatus(actor, req.Status)
	if err != nil {
		return nil, err
	}

	f, err := s.facilities.GetByID(ctx, req.CulturalCenterID)
	if err != nil {
		return nil, s.facilityError(err)
	}

	quote := s.engine.QuoteInterval(f, start, end)
	if req.Fee != nil && *req.Fee != quote.Amount {
		s.log.Warn().
			Int64("facility_id", f.ID).
			Int64("client_fee", *req.Fee).
			Int64("server_fee", quote.Amount).
			Msg("client fee differs from quote, using server fee")
	}
	fee := quote.Amount

	b := &domain.Booking{
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		StartTime:        start.UTC(),
		EndTime:          end.UTC(),
		Visibility:       visibility,
		Status:           status,
		CulturalCenterID: f.ID,
		UserID:           actor.UserID,
		UserName:         actor.Name,
		BookerName:       strings.TrimSpace(req.BookerName),
		BookerPhone:      strings.TrimSpace(req.BookerPhone),
		Fee:              &fee,
		FeePaid:          status == domain.BookingApproved,
	}

	unlock, err := s.lockFacility(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	err = s.repo.CreateWithNoOverlap(ctx, b, holdingStatuses)
	unlock()
	if err != nil {
		return nil, err
	}

	b.CulturalCenter = f
	s.log.Info().
		Int64("booking_id", b.ID).
		Int64("facility_id", f.ID).
		Str("status", string(b.Status)).
		Int64("fee", fee).
		Msg("booking created")
	s.events.Emit(ctx, calendar.EventBookingCreated, b)
	if b.Status == domain.BookingApproved {
		s.events.Emit(ctx, calendar.EventBookingApproved, b)
	}
	return b, nil
}

// initialStatus forces non-admins into the pay-first flow.
func initialStatus(actor Actor, requested domain.BookingStatus) (domain.BookingStatus, error) {
	if !actor.Admin {
		return domain.BookingPendingPayment, nil
	}
	switch requested {
	case "":
		return domain.BookingPendingPayment, nil
	case domain.BookingPending, domain.BookingPendingPayment, domain.BookingApproved:
		return requested, nil
	}
	return "", fmt.Errorf("%w: status %q not allowed on create", ErrValidation, requested)
}

func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := visibleTo(actor, *b)
	return &out, nil
}

func (s *Service) List(ctx context.Context, actor Actor, q ListQuery) ([]domain.Booking, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, q.Status)
	}
	all, err := s.repo.List(ctx, ListFilter{FacilityID: q.FacilityID, Status: q.Status})
	if err != nil {
		return nil, err
	}
	for i := range all {
		all[i] = visibleTo(actor, all[i])
	}
	return pricing.FilterAndSort(all, q.Search, q.Sort), nil
}

// ConfirmPayment approves a pending booking. Confirming an approved booking is a no-op.
func (s *Service) ConfirmPayment(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && b.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	switch b.Status {
	case domain.BookingApproved:
		return b, nil
	case domain.BookingPending, domain.BookingPendingPayment:
	default:
		return nil, ErrInvalidTransition
	}

	unlock, err := s.lockFacility(ctx, b.CulturalCenterID)
	if err != nil {
		return nil, err
	}
	err = s.repo.Approve(ctx, b)
	unlock()
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("booking_id", b.ID).Int64("user_id", actor.UserID).Msg("booking payment confirmed")
	s.events.Emit(ctx, calendar.EventBookingApproved, b)
	return b, nil
}

func (s *Service) Reject(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.TransitionStatus(ctx, id,
		[]domain.BookingStatus{domain.BookingPending, domain.BookingPendingPayment},
		domain.BookingRejected,
	); err != nil {
		return nil, err
	}
	b.Status = domain.BookingRejected

	s.log.Info().Int64("booking_id", b.ID).Int64("admin_id", actor.UserID).Msg("booking rejected")
	s.events.Emit(ctx, calendar.EventBookingRejected, b)
	return b, nil
}

// Delete is the compensating step of the create/confirm flow and may be
// retried: a booking that is already gone counts as deleted. Non-admins may
// only drop their own unpaid bookings.
func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	b, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if !actor.Admin {
		if b.UserID != actor.UserID {
			return ErrForbidden
		}
		if b.Status != domain.BookingPendingPayment && b.Status != domain.BookingPending {
			return ErrForbidden
		}
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		s.log.Info().Int64("booking_id", id).Int64("user_id", actor.UserID).Msg("booking deleted")
		s.events.Emit(ctx, calendar.EventBookingDeleted, b)
	}
	return nil
}

// Calendar builds the facility x hour grid for one local day.
func (s *Service) Calendar(ctx context.Context, actor Actor, q CalendarQuery) (*CalendarView, error) {
	day, err := s.parseDay(q.Date)
	if err != nil {
		return nil, err
	}

	facilities, err := s.facilities.List(ctx, strings.TrimSpace(q.Building))
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(facilities))
	for _, f := range facilities {
		ids = append(ids, f.ID)
	}

	view := &CalendarView{
		Date:     day.Format(time.DateOnly),
		Hours:    pricing.SlotHours(),
		Rows:     make([]CalendarRow, 0, len(facilities)),
		Bookings: []domain.Booking{},
	}
	if len(ids) == 0 {
		return view, nil
	}

	bookings, err := s.repo.List(ctx, ListFilter{
		FacilityIDs: ids,
		Status:      domain.BookingApproved,
		From:        day,
		To:          day.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, err
	}

	shown := bookings[:0]
	for _, b := range bookings {
		if b.Visibility == domain.VisibilityPrivate && !q.ShowPrivate {
			continue
		}
		b.CulturalCenter = nil
		shown = append(shown, visibleTo(actor, b))
	}
	view.Bookings = shown

	for _, f := range facilities {
		row := CalendarRow{CulturalCenter: f, Slots: make([]CalendarSlot, 0, len(view.Hours))}
		for _, h := range view.Hours {
			slot := CalendarSlot{Hour: h}
			if b := s.engine.FindBookingForSlot(shown, f.ID, h); b != nil {
				slot.Booked = true
				slot.Booking = b
			}
			row.Slots = append(row.Slots, slot)
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}

// Stats summarizes bookings starting in [from, to), both local dates. Empty
// bounds default to the current month.
func (s *Service) Stats(ctx context.Context, from, to string) (*Stats, error) {
	loc := s.engine.Location()
	now := s.now().In(loc)

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	if from != "" {
		d, err := s.parseDay(from)
		if err != nil {
			return nil, err
		}
		start = d
	}
	end := start.AddDate(0, 1, 0)
	if to != "" {
		d, err := s.parseDay(to)
		if err != nil {
			return nil, err
		}
		end = d
	}
	if !end.After(start) {
		return nil, ErrInvalidInterval
	}

	bookings, err := s.repo.List(ctx, ListFilter{From: start, To: end})
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		From: start.Format(time.DateOnly),
		To:   end.Format(time.DateOnly),
		ByStatus: map[domain.BookingStatus]int{
			domain.BookingPending:        0,
			domain.BookingPendingPayment: 0,
			domain.BookingApproved:       0,
			domain.BookingRejected:       0,
		},
		ApprovedHours: []FacilityHours{},
	}
	perFacility := map[int64]*FacilityHours{}

	for _, b := range bookings {
		if b.StartTime.Before(start) {
			continue
		}
		stats.Total++
		stats.ByStatus[b.Status]++

		fee := int64(0)
		if b.Fee != nil {
			fee = *b.Fee
		}
		if b.FeePaid {
			stats.PaidRevenue += fee
		} else if b.Status == domain.BookingPendingPayment {
			stats.Outstanding += fee
		}

		if b.Status == domain.BookingApproved {
			fh, ok := perFacility[b.CulturalCenterID]
			if !ok {
				fh = &FacilityHours{CulturalCenterID: b.CulturalCenterID}
				if b.CulturalCenter != nil {
					fh.Name = b.CulturalCenter.Name
				}
				perFacility[b.CulturalCenterID] = fh
			}
			fh.Hours += b.EndTime.Sub(b.StartTime).Hours()
			fh.Bookings++
		}
	}

	for _, fh := range perFacility {
		stats.ApprovedHours = append(stats.ApprovedHours, *fh)
	}
	sort.Slice(stats.ApprovedHours, func(i, j int) bool {
		return stats.ApprovedHours[i].CulturalCenterID < stats.ApprovedHours[j].CulturalCenterID
	})
	return stats, nil
}

func (s *Service) parseDay(v string) (time.Time, error) {
	loc := s.engine.Location()
	if strings.TrimSpace(v) == "" {
		now := s.now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(v), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return d, nil
}

func (s *Service) lockFacility(ctx context.Context, facilityID int64) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, lockWait)
	defer cancel()
	unlock, err := s.locker.Lock(lockCtx, fmt.Sprintf("facility:%d", facilityID))
	if err != nil {
		s.log.Warn().Err(err).Int64("facility_id", facilityID).Msg("facility lock not acquired")
		return nil, fmt.Errorf("%w: %v", ErrBusy, err)
	}
	return unlock, nil
}

func (s *Service) facilityError(err error) error {
	if errors.Is(err, facility.ErrNotFound) {
		return ErrFacilityNotFound
	}
	return err
}

// visibleTo redacts other people's private bookings for non-admins.
func visibleTo(actor Actor, b domain.Booking) domain.Booking {
	if actor.Admin || b.UserID == actor.UserID {
		return b
	}
	return b.Redacted()
}
