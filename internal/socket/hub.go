package socket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	logrus "github.com/sirupsen/logrus"
)

// Event is one record mutation pushed to dashboard clients.
type Event struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	ID       string `json:"id"`
}

// Hub tracks connected dashboard clients and fans mutation events out to
// all of them.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection under its id.
func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientID] = conn
	logrus.WithField("client", clientID).Debug("websocket client registered")
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[clientID]; ok {
		delete(h.clients, clientID)
		logrus.WithField("client", clientID).Debug("websocket client unregistered")
	}
}

// Broadcast sends an event to every connected client. Clients whose write
// fails are dropped; a delivery failure never reaches the caller.
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Warn("could not encode websocket event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logrus.WithField("client", id).WithError(err).Debug("dropping stale websocket client")
			conn.Close()
			delete(h.clients, id)
		}
	}
}
