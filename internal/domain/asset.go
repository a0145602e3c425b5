package domain

import "time"

type AssetCondition string

const (
	AssetGood        AssetCondition = "GOOD"
	AssetNeedsRepair AssetCondition = "NEEDS_REPAIR"
	AssetBroken      AssetCondition = "BROKEN"
)

func (c AssetCondition) Valid() bool {
	switch c {
	case AssetGood, AssetNeedsRepair, AssetBroken:
		return true
	}
	return false
}

// Asset is a piece of equipment kept at a facility (speakers, chairs, nets).
type Asset struct {
	ID               int64          `json:"id" gorm:"primaryKey"`
	CulturalCenterID int64          `json:"culturalCenterId" gorm:"not null;index"`
	Name             string         `json:"name" gorm:"size:255;not null"`
	Category         string         `json:"category,omitempty" gorm:"size:64"`
	Quantity         int            `json:"quantity" gorm:"not null"`
	Condition        AssetCondition `json:"condition" gorm:"size:32;not null;default:GOOD"`
	Note             string         `json:"note,omitempty" gorm:"type:text"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`

	CulturalCenter *Facility `json:"-" gorm:"foreignKey:CulturalCenterID;constraint:OnDelete:CASCADE"`
}

func (Asset) TableName() string {
	return "assets"
}
