package domain

import "time"

type BookingStatus string

const (
	BookingPending        BookingStatus = "PENDING"
	BookingPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingApproved       BookingStatus = "APPROVED"
	BookingRejected       BookingStatus = "REJECTED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingPendingPayment, BookingApproved, BookingRejected:
		return true
	}
	return false
}

// HoldsSlot reports whether a booking in this status blocks other bookings.
func (s BookingStatus) HoldsSlot() bool {
	return s == BookingPending || s == BookingPendingPayment || s == BookingApproved
}

type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type Booking struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	Title       string        `json:"title" gorm:"size:255;not null"`
	Description string        `json:"description,omitempty" gorm:"type:text"`
	StartTime   time.Time     `json:"startTime" gorm:"not null;index"`
	EndTime     time.Time     `json:"endTime" gorm:"not null;index"`
	Visibility  Visibility    `json:"visibility" gorm:"size:16;not null;default:PUBLIC"`
	Status      BookingStatus `json:"status" gorm:"size:32;not null;index"`

	CulturalCenterID int64 `json:"culturalCenterId" gorm:"not null;index"`

	// UserID is the system user who entered the booking; BookerName/BookerPhone
	// are set for walk-in bookers without an account.
	UserID      int64  `json:"userId" gorm:"index"`
	UserName    string `json:"userName,omitempty" gorm:"size:255"`
	BookerName  string `json:"bookerName,omitempty" gorm:"size:255"`
	BookerPhone string `json:"bookerPhone,omitempty" gorm:"size:32"`

	// Fee is the price snapshot taken when the booking was created.
	Fee     *int64 `json:"fee"`
	FeePaid bool   `json:"feePaid" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	CulturalCenter *Facility `json:"culturalCenter,omitempty" gorm:"foreignKey:CulturalCenterID"`
}

func (Booking) TableName() string {
	return "bookings"
}

// DisplayBookerName is the walk-in booker when present, otherwise the account holder.
func (b Booking) DisplayBookerName() string {
	if b.BookerName != "" {
		return b.BookerName
	}
	return b.UserName
}

// Redacted hides who booked a private slot and what for. Times, status and
// facility stay so calendars still render the cell as taken.
func (b Booking) Redacted() Booking {
	if b.Visibility != VisibilityPrivate {
		return b
	}
	b.Title = ""
	b.Description = ""
	b.UserID = 0
	b.UserName = ""
	b.BookerName = ""
	b.BookerPhone = ""
	b.Fee = nil
	return b
}
