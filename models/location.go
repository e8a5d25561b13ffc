package models

import (
	"time"
)

type LocationStatus string

const (
	LocationActive      LocationStatus = "active"
	LocationInactive    LocationStatus = "inactive"
	LocationMaintenance LocationStatus = "maintenance"
)

func (s LocationStatus) Valid() bool {
	switch s {
	case LocationActive, LocationInactive, LocationMaintenance:
		return true
	}
	return false
}

type Location struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"size:100;not null;index"`
	Description string         `json:"description" gorm:"type:text"`
	Address     string         `json:"address" gorm:"size:255"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	Status      LocationStatus `json:"status" gorm:"size:20;not null;default:active"`
	CreatedBy   *uint          `json:"created_by,omitempty" gorm:"index"`
	Creator     *User          `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
	Devices     []Device       `json:"-" gorm:"foreignKey:LocationID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
