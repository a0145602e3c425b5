package domain

import "time"

// Facility is a bookable cultural-center room or outdoor venue.
type Facility struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null;uniqueIndex" validate:"required"`
	Slug           string    `json:"slug" gorm:"size:255;index"`
	Building       string    `json:"building" gorm:"size:255;index"`
	Floor          string    `json:"floor,omitempty" gorm:"size:64"`
	Room           string    `json:"room,omitempty" gorm:"size:64"`
	Capacity       int       `json:"capacity" validate:"gte=0"`
	BaseHourlyRate *int64    `json:"baseHourlyRate"`
	Description    string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Facility) TableName() string {
	return "cultural_centers"
}
