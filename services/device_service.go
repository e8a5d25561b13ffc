package services

import (
	"strings"
	"time"

	"signage-command-center/be/apperrors"
	"signage-command-center/be/authz"
	"signage-command-center/be/models"

	"gorm.io/gorm"
)

type DeviceService struct {
	db  *gorm.DB
	hub *DeviceEventHub
}

func NewDeviceService(db *gorm.DB, hub *DeviceEventHub) *DeviceService {
	return &DeviceService{db: db, hub: hub}
}

type CreateDeviceInput struct {
	Name            string
	Type            models.DeviceType
	SerialNumber    string
	Status          models.DeviceStatus
	FirmwareVersion string
	IPAddress       string
	LocationID      *uint
}

type UpdateDeviceInput struct {
	Name            *string
	Type            *models.DeviceType
	SerialNumber    *string
	Status          *models.DeviceStatus
	FirmwareVersion *string
	IPAddress       *string
	LocationID      *uint
}

func (s *DeviceService) Create(actor *models.User, in CreateDeviceInput) (*models.Device, error) {
	if _, err := authorize(actor, authz.ResourceDevice, authz.ActionCreate); err != nil {
		return nil, err
	}

	if !in.Type.Valid() {
		return nil, apperrors.NewValidation("invalid device type: %s", in.Type)
	}
	status := in.Status
	if status == "" {
		status = models.DeviceOffline
	}
	if !status.Valid() {
		return nil, apperrors.NewValidation("invalid device status: %s", status)
	}
	if in.LocationID != nil {
		var location models.Location
		if err := s.db.First(&location, *in.LocationID).Error; err != nil {
			return nil, translateNotFound(err)
		}
	}

	device := models.Device{
		Name:            in.Name,
		Type:            in.Type,
		SerialNumber:    in.SerialNumber,
		Status:          status,
		FirmwareVersion: in.FirmwareVersion,
		IPAddress:       in.IPAddress,
		LocationID:      in.LocationID,
	}

	if err := s.db.Create(&device).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewValidation("serial_number already registered: %s", in.SerialNumber)
		}
		return nil, err
	}
	return &device, nil
}

func (s *DeviceService) Get(id uint) (*models.Device, error) {
	var device models.Device
	if err := s.db.First(&device, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &device, nil
}

func (s *DeviceService) List() ([]models.Device, error) {
	var devices []models.Device
	if err := s.db.Order("created_at DESC").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (s *DeviceService) Update(actor *models.User, id uint, in UpdateDeviceInput) (*models.Device, error) {
	if _, err := authorize(actor, authz.ResourceDevice, authz.ActionUpdate); err != nil {
		return nil, err
	}

	device, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	oldStatus := device.Status

	if in.Name != nil {
		device.Name = *in.Name
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, apperrors.NewValidation("invalid device type: %s", *in.Type)
		}
		device.Type = *in.Type
	}
	if in.SerialNumber != nil {
		device.SerialNumber = *in.SerialNumber
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperrors.NewValidation("invalid device status: %s", *in.Status)
		}
		device.Status = *in.Status
	}
	if in.FirmwareVersion != nil {
		device.FirmwareVersion = *in.FirmwareVersion
	}
	if in.IPAddress != nil {
		device.IPAddress = *in.IPAddress
	}
	if in.LocationID != nil {
		var location models.Location
		if err := s.db.First(&location, *in.LocationID).Error; err != nil {
			return nil, translateNotFound(err)
		}
		device.LocationID = in.LocationID
	}

	if err := s.db.Save(device).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewValidation("serial_number already registered: %s", device.SerialNumber)
		}
		return nil, err
	}

	if device.Status != oldStatus {
		s.notifyStatusChange(device, oldStatus)
	}
	return device, nil
}

// UpdateStatus changes only the status and stamps last_seen_at.
func (s *DeviceService) UpdateStatus(actor *models.User, id uint, status models.DeviceStatus) (*models.Device, error) {
	if _, err := authorize(actor, authz.ResourceDevice, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.NewValidation("invalid device status: %s", status)
	}

	device, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	oldStatus := device.Status
	now := time.Now().UTC()
	device.Status = status
	device.LastSeenAt = &now

	if err := s.db.Save(device).Error; err != nil {
		return nil, err
	}
	if device.Status != oldStatus {
		s.notifyStatusChange(device, oldStatus)
	}
	return device, nil
}

// Heartbeat marks the device online and refreshes last_seen_at. Any
// authenticated caller may report one; field devices authenticate as
// ordinary accounts.
func (s *DeviceService) Heartbeat(id uint) (*models.Device, error) {
	device, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	oldStatus := device.Status
	now := time.Now().UTC()
	device.Status = models.DeviceOnline
	device.LastSeenAt = &now

	if err := s.db.Save(device).Error; err != nil {
		return nil, err
	}
	if device.Status != oldStatus {
		s.notifyStatusChange(device, oldStatus)
	}
	return device, nil
}

func (s *DeviceService) Delete(actor *models.User, id uint) error {
	if _, err := authorize(actor, authz.ResourceDevice, authz.ActionDelete); err != nil {
		return err
	}

	device, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(device).Error
}

func (s *DeviceService) notifyStatusChange(device *models.Device, oldStatus models.DeviceStatus) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(DeviceEvent{
		DeviceID:  device.ID,
		Name:      device.Name,
		OldStatus: oldStatus,
		NewStatus: device.Status,
		At:        time.Now().UTC(),
	})
}

// isUniqueViolation matches unique-constraint failures across the postgres
// and sqlite drivers without importing either.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique")
}
