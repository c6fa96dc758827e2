// Package websocket pushes opaque recompute signals to connected
// clients: a pricing change fans out to every quote screen, a
// settlement event goes to the affected driver. Payloads carry no
// state; receivers re-fetch and re-derive.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"motora/pkg/logger"
)

// Event types understood by the clients. The payload beyond the type
// is advisory; clients must treat every event as "recompute now".
const (
	EventPricingChanged = "pricing.changed"
	EventBalanceChanged = "balance.changed"
	EventPayoutUpdated  = "payout.updated"
	EventFeeUpdated     = "fee.updated"
)

type Event struct {
	Type      string                 `json:"type"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	logger     *logger.Logger
	mutex      sync.RWMutex
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func driverRoom(driverID primitive.ObjectID) string {
	return "driver_" + driverID.Hex()
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	h.joinRoom(client, "all")
	if client.UserType == "driver" {
		h.joinRoom(client, "drivers")
		h.joinRoom(client, driverRoom(client.UserID))
	}

	h.logger.WithField("user_id", client.UserID.Hex()).Debug("WebSocket client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	for room := range client.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	close(client.send)

	h.logger.WithField("user_id", client.UserID.Hex()).Debug("WebSocket client unregistered")
}

func (h *Hub) joinRoom(client *Client, room string) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	client.rooms[room] = true
}

func (h *Hub) sendToRoom(room string, event Event) {
	event.Timestamp = time.Now().Unix()

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal websocket event")
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.rooms[room] {
		select {
		case client.send <- data:
		default:
			// Slow consumer: drop the signal, the client catches up
			// on its next re-fetch.
		}
	}
}

// BroadcastPricingChanged notifies every connected client that pricing
// or availability configuration changed.
func (h *Hub) BroadcastPricingChanged(serviceType, region string) {
	h.sendToRoom("all", Event{
		Type: EventPricingChanged,
		Data: map[string]interface{}{
			"service_type": serviceType,
			"region":       region,
		},
	})
}

// NotifyDriver pushes a settlement recompute signal to one driver.
func (h *Hub) NotifyDriver(driverID primitive.ObjectID, eventType string) {
	h.sendToRoom(driverRoom(driverID), Event{Type: eventType})
}
