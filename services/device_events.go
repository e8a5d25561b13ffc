package services

import (
	"log"
	"sync"
	"time"

	"signage-command-center/be/models"

	"github.com/gorilla/websocket"
)

// DeviceEvent is pushed to websocket subscribers whenever a device's status
// changes.
type DeviceEvent struct {
	DeviceID  uint                `json:"device_id"`
	Name      string              `json:"name"`
	OldStatus models.DeviceStatus `json:"old_status"`
	NewStatus models.DeviceStatus `json:"new_status"`
	At        time.Time           `json:"at"`
}

// DeviceEventHub fans device status events out to connected websocket
// clients. Broadcast runs inline on the request that caused the change;
// there is no background loop.
type DeviceEventHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewDeviceEventHub() *DeviceEventHub {
	return &DeviceEventHub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *DeviceEventHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *DeviceEventHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

func (h *DeviceEventHub) Broadcast(event DeviceEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Dropping device event subscriber: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
