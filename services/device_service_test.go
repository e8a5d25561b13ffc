package services

import (
	"testing"

	"signage-command-center/be/apperrors"
	"signage-command-center/be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeviceService(db, nil)
	admin := newTestUser(t, db, "admin", models.RoleAdmin)

	_, err := svc.Create(admin, CreateDeviceInput{Name: "Thing", Type: "toaster"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(admin, CreateDeviceInput{
		Name: "Display", Type: models.DeviceDisplay, Status: "broken",
	})
	assert.True(t, apperrors.IsValidation(err))

	device, err := svc.Create(admin, CreateDeviceInput{
		Name: "Display", Type: models.DeviceDisplay, SerialNumber: "DSP-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DeviceOffline, device.Status)
}

func TestDeviceSerialUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeviceService(db, nil)
	admin := newTestUser(t, db, "admin", models.RoleAdmin)

	_, err := svc.Create(admin, CreateDeviceInput{
		Name: "A", Type: models.DeviceSensor, SerialNumber: "SNS-1",
	})
	require.NoError(t, err)

	_, err = svc.Create(admin, CreateDeviceInput{
		Name: "B", Type: models.DeviceSensor, SerialNumber: "SNS-1",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestDeviceStatusUpdateStampsLastSeen(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeviceService(db, nil)
	admin := newTestUser(t, db, "admin", models.RoleAdmin)

	device, err := svc.Create(admin, CreateDeviceInput{
		Name: "Kiosk", Type: models.DeviceKiosk, SerialNumber: "KSK-1",
	})
	require.NoError(t, err)
	assert.Nil(t, device.LastSeenAt)

	updated, err := svc.UpdateStatus(admin, device.ID, models.DeviceOnline)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceOnline, updated.Status)
	assert.NotNil(t, updated.LastSeenAt)

	_, err = svc.UpdateStatus(admin, device.ID, "sleeping")
	assert.True(t, apperrors.IsValidation(err))
}

func TestDeviceMutationDeniedForViewerAndClient(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeviceService(db, nil)
	admin := newTestUser(t, db, "admin", models.RoleAdmin)
	client := newTestUser(t, db, "client", models.RoleClient)
	viewer := newTestUser(t, db, "viewer", models.RoleViewer)

	device, err := svc.Create(admin, CreateDeviceInput{
		Name: "Camera", Type: models.DeviceCamera, SerialNumber: "CAM-1",
	})
	require.NoError(t, err)

	for _, actor := range []*models.User{client, viewer} {
		_, err = svc.Create(actor, CreateDeviceInput{Name: "X", Type: models.DeviceSensor})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		_, err = svc.UpdateStatus(actor, device.ID, models.DeviceOnline)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		assert.ErrorIs(t, svc.Delete(actor, device.ID), apperrors.ErrForbidden)
	}
}

func TestHeartbeatMarksOnline(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeviceService(db, nil)
	admin := newTestUser(t, db, "admin", models.RoleAdmin)

	device, err := svc.Create(admin, CreateDeviceInput{
		Name: "Sensor", Type: models.DeviceSensor, SerialNumber: "SNS-2",
		Status: models.DeviceError,
	})
	require.NoError(t, err)

	beat, err := svc.Heartbeat(device.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceOnline, beat.Status)
	assert.NotNil(t, beat.LastSeenAt)

	_, err = svc.Heartbeat(9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeviceUnknownLocationRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeviceService(db, nil)
	admin := newTestUser(t, db, "admin", models.RoleAdmin)

	missing := uint(4242)
	_, err := svc.Create(admin, CreateDeviceInput{
		Name: "Display", Type: models.DeviceDisplay, LocationID: &missing,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
