package pricing

import "culturehub/internal/domain"

// IsSlotBooked reports whether an approved booking of the facility covers the
// local hour cell.
func (e *Engine) IsSlotBooked(bookings []domain.Booking, facilityID int64, hour int) bool {
	return e.FindBookingForSlot(bookings, facilityID, hour) != nil
}

// FindBookingForSlot returns the first approved booking of the facility with
// startHour <= hour < endHour, or nil. Hours are read in the engine's location.
func (e *Engine) FindBookingForSlot(bookings []domain.Booking, facilityID int64, hour int) *domain.Booking {
	for i := range bookings {
		b := &bookings[i]
		if b.CulturalCenterID != facilityID || b.Status != domain.BookingApproved {
			continue
		}
		startHour := b.StartTime.In(e.loc).Hour()
		endHour := b.EndTime.In(e.loc).Hour()
		if startHour <= hour && hour < endHour {
			return b
		}
	}
	return nil
}

// SlotHours lists the calendar cells from SlotStartHour to SlotEndHour-1.
func SlotHours() []int {
	hours := make([]int, 0, SlotEndHour-SlotStartHour)
	for h := SlotStartHour; h < SlotEndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}
