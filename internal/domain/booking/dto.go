package booking

import (
	"time"

	"culturehub/internal/domain"
	"culturehub/internal/domain/pricing"
)

// CreateRequest mirrors the booking form. Fee is the client's preview and is
// only compared against the server quote.
type CreateRequest struct {
	Title            string               `json:"title" validate:"required,max=255"`
	Description      string               `json:"description"`
	StartTime        string               `json:"startTime" validate:"required"`
	EndTime          string               `json:"endTime" validate:"required"`
	CulturalCenterID int64                `json:"culturalCenterId" validate:"required,gt=0"`
	Visibility       domain.Visibility    `json:"visibility"`
	BookerName       string               `json:"bookerName" validate:"max=255"`
	BookerPhone      string               `json:"bookerPhone" validate:"max=32"`
	Status           domain.BookingStatus `json:"status"`
	Fee              *int64               `json:"fee"`
}

type QuoteRequest struct {
	CulturalCenterID int64  `json:"culturalCenterId"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
}

// Actor is the authenticated caller.
type Actor struct {
	UserID int64
	Name   string
	Admin  bool
}

type ListQuery struct {
	Search     string
	Sort       pricing.SortMode
	FacilityID int64
	Status     domain.BookingStatus
}

// ListFilter is the storage-level filter. Zero values are ignored.
type ListFilter struct {
	FacilityID  int64
	FacilityIDs []int64
	Status      domain.BookingStatus
	Statuses    []domain.BookingStatus
	// From/To select bookings overlapping [From, To).
	From time.Time
	To   time.Time
}

type CalendarQuery struct {
	Date        string
	Building    string
	ShowPrivate bool
}

type CalendarSlot struct {
	Hour    int             `json:"hour"`
	Booked  bool            `json:"booked"`
	Booking *domain.Booking `json:"booking,omitempty"`
}

type CalendarRow struct {
	CulturalCenter domain.Facility `json:"culturalCenter"`
	Slots          []CalendarSlot  `json:"slots"`
}

type CalendarView struct {
	Date     string           `json:"date"`
	Hours    []int            `json:"hours"`
	Rows     []CalendarRow    `json:"rows"`
	Bookings []domain.Booking `json:"bookings"`
}

type FacilityHours struct {
	CulturalCenterID int64   `json:"culturalCenterId"`
	Name             string  `json:"name"`
	Hours            float64 `json:"hours"`
	Bookings         int     `json:"bookings"`
}

type Stats struct {
	From          string                       `json:"from"`
	To            string                       `json:"to"`
	Total         int                          `json:"total"`
	ByStatus      map[domain.BookingStatus]int `json:"byStatus"`
	PaidRevenue   int64                        `json:"paidRevenue"`
	Outstanding   int64                        `json:"outstanding"`
	ApprovedHours []FacilityHours              `json:"approvedHours"`
}
