package models

import (
	"time"
)

type DeviceStatus string

const (
	DeviceOnline      DeviceStatus = "online"
	DeviceOffline     DeviceStatus = "offline"
	DeviceMaintenance DeviceStatus = "maintenance"
	DeviceError       DeviceStatus = "error"
)

func (s DeviceStatus) Valid() bool {
	switch s {
	case DeviceOnline, DeviceOffline, DeviceMaintenance, DeviceError:
		return true
	}
	return false
}

type DeviceType string

const (
	DeviceDisplay DeviceType = "display"
	DeviceSensor  DeviceType = "sensor"
	DeviceKiosk   DeviceType = "kiosk"
	DeviceCamera  DeviceType = "camera"
)

func (t DeviceType) Valid() bool {
	switch t {
	case DeviceDisplay, DeviceSensor, DeviceKiosk, DeviceCamera:
		return true
	}
	return false
}

type Device struct {
	ID              uint         `json:"id" gorm:"primaryKey"`
	Name            string       `json:"name" gorm:"size:100;not null;index"`
	Type            DeviceType   `json:"device_type" gorm:"column:device_type;size:50;not null"`
	SerialNumber    string       `json:"serial_number" gorm:"uniqueIndex;size:100"`
	Status          DeviceStatus `json:"status" gorm:"size:20;not null;default:offline"`
	FirmwareVersion string       `json:"firmware_version" gorm:"size:20"`
	IPAddress       string       `json:"ip_address" gorm:"size:45"`
	LocationID      *uint        `json:"location_id,omitempty" gorm:"index"`
	Location        *Location    `json:"-" gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
	LastSeenAt      *time.Time   `json:"last_seen_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
