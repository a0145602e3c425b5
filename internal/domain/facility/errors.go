package facility

import "errors"

var (
	ErrNotFound   = errors.New("cultural center not found")
	ErrNameTaken  = errors.New("cultural center name already exists")
	ErrInUse      = errors.New("cultural center has bookings")
	ErrValidation = errors.New("validation error")
)
