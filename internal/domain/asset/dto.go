package asset

import "culturehub/internal/domain"

type CreateRequest struct {
	Name      string                `json:"name" validate:"required,max=255"`
	Category  string                `json:"category" validate:"max=64"`
	Quantity  int                   `json:"quantity" validate:"required,gt=0"`
	Condition domain.AssetCondition `json:"condition"`
	Note      string                `json:"note"`
}

type UpdateRequest struct {
	Name      *string                `json:"name" validate:"omitempty,min=1,max=255"`
	Category  *string                `json:"category" validate:"omitempty,max=64"`
	Quantity  *int                   `json:"quantity" validate:"omitempty,gt=0"`
	Condition *domain.AssetCondition `json:"condition"`
	Note      *string                `json:"note"`
}

// Summary counts units per condition for one facility.
type Summary struct {
	CulturalCenterID int64                         `json:"culturalCenterId"`
	Total            int                           `json:"total"`
	ByCondition      map[domain.AssetCondition]int `json:"byCondition"`
}

type ListResponse struct {
	Assets  []domain.Asset `json:"assets"`
	Summary Summary        `json:"summary"`
}
