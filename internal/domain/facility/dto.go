package facility

import "culturehub/internal/domain/pricing"

type CreateRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Building       string `json:"building" validate:"max=255"`
	Floor          string `json:"floor" validate:"max=64"`
	Room           string `json:"room" validate:"max=64"`
	Capacity       int    `json:"capacity" validate:"gte=0"`
	BaseHourlyRate *int64 `json:"baseHourlyRate" validate:"omitempty,gte=0"`
	Description    string `json:"description"`
}

// UpdateRequest only touches the fields that are present.
type UpdateRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=255"`
	Building       *string `json:"building" validate:"omitempty,max=255"`
	Floor          *string `json:"floor" validate:"omitempty,max=64"`
	Room           *string `json:"room" validate:"omitempty,max=64"`
	Capacity       *int    `json:"capacity" validate:"omitempty,gte=0"`
	BaseHourlyRate *int64  `json:"baseHourlyRate" validate:"omitempty,gte=0"`
	Description    *string `json:"description"`
}

// RateView is the hourly rate a new booking of the facility would be charged.
type RateView struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	UnitRate int64              `json:"unitRate"`
	Source   pricing.RateSource `json:"source"`
}
