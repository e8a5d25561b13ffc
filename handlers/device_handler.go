package handlers

import (
	"fmt"
	"log"
	"net/http"

	"signage-command-center/be/models"
	"signage-command-center/be/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type DeviceHandler struct {
	devices  *services.DeviceService
	users    *services.UserService
	activity *services.ActivityService
	hub      *services.DeviceEventHub
}

func NewDeviceHandler(devices *services.DeviceService, users *services.UserService, activity *services.ActivityService, hub *services.DeviceEventHub) *DeviceHandler {
	return &DeviceHandler{
		devices:  devices,
		users:    users,
		activity: activity,
		hub:      hub,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Auth is enforced by the token middleware before the upgrade.
		return true
	},
}

type CreateDeviceRequest struct {
	Name            string `json:"name" binding:"required"`
	Type            string `json:"device_type" binding:"required"`
	SerialNumber    string `json:"serial_number"`
	Status          string `json:"status"`
	FirmwareVersion string `json:"firmware_version"`
	IPAddress       string `json:"ip_address"`
	LocationID      *uint  `json:"location_id"`
}

type UpdateDeviceRequest struct {
	Name            *string `json:"name"`
	Type            *string `json:"device_type"`
	SerialNumber    *string `json:"serial_number"`
	Status          *string `json:"status"`
	FirmwareVersion *string `json:"firmware_version"`
	IPAddress       *string `json:"ip_address"`
	LocationID      *uint   `json:"location_id"`
}

type UpdateDeviceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *DeviceHandler) GetDevices(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	devices, err := h.devices.List()
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "devices_viewed", "", c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, devices)
}

func (h *DeviceHandler) GetDevice(c *gin.Context) {
	if _, ok := currentUser(c, h.users); !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	device, err := h.devices.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	var req CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := h.devices.Create(user, services.CreateDeviceInput{
		Name:            req.Name,
		Type:            models.DeviceType(req.Type),
		SerialNumber:    req.SerialNumber,
		Status:          models.DeviceStatus(req.Status),
		FirmwareVersion: req.FirmwareVersion,
		IPAddress:       req.IPAddress,
		LocationID:      req.LocationID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "device_created", "Created device: "+device.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusCreated, device)
}

func (h *DeviceHandler) UpdateDevice(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.UpdateDeviceInput{
		Name:            req.Name,
		SerialNumber:    req.SerialNumber,
		FirmwareVersion: req.FirmwareVersion,
		IPAddress:       req.IPAddress,
		LocationID:      req.LocationID,
	}
	if req.Type != nil {
		t := models.DeviceType(*req.Type)
		in.Type = &t
	}
	if req.Status != nil {
		s := models.DeviceStatus(*req.Status)
		in.Status = &s
	}

	device, err := h.devices.Update(user, id, in)
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "device_updated", "Updated device: "+device.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, device)
}

func (h *DeviceHandler) UpdateDeviceStatus(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req UpdateDeviceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	old, err := h.devices.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	oldStatus := old.Status

	device, err := h.devices.UpdateStatus(user, id, models.DeviceStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "device_status_updated",
		fmt.Sprintf("Device %s status: %s -> %s", device.Name, oldStatus, device.Status),
		c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, device)
}

// Heartbeat lets a device agent report liveness.
func (h *DeviceHandler) Heartbeat(c *gin.Context) {
	if _, ok := currentUser(c, h.users); !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	device, err := h.devices.Heartbeat(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	device, err := h.devices.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.devices.Delete(user, id); err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "device_deleted", "Deleted device: "+device.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Device %q deleted successfully", device.Name)})
}

// StreamEvents upgrades to a websocket and pushes device status events
// until the client disconnects.
func (h *DeviceHandler) StreamEvents(c *gin.Context) {
	if _, ok := currentUser(c, h.users); !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Device event websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(conn)
	defer func() {
		h.hub.Unregister(conn)
		conn.Close()
	}()

	// Drain client frames; the connection is write-only from our side.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
