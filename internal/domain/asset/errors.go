package asset

import "errors"

var (
	ErrNotFound         = errors.New("asset not found")
	ErrFacilityNotFound = errors.New("cultural center not found")
	ErrInvalidCondition = errors.New("invalid asset condition")
)
