package booking

import "errors"

var (
	ErrNotFound          = errors.New("booking not found")
	ErrFacilityNotFound  = errors.New("cultural center not found")
	ErrValidation        = errors.New("validation error")
	ErrInvalidTime       = errors.New("invalid start or end time")
	ErrInvalidInterval   = errors.New("end time must be after start time")
	ErrSlotTaken         = errors.New("time slot is already booked")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBusy              = errors.New("cultural center is busy, retry")
)
