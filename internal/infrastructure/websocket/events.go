package websocket

import (
	"encoding/json"
	"time"

	"targ/pkg/logger"
)

// Control events. Domain events use the service.Push* types.
const (
	EventPing  = "ping"
	EventPong  = "pong"
	EventError = "error"
)

type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{Type: eventType, Data: data, Timestamp: time.Now().UTC()}
}

type inbound struct {
	Type string `json:"type"`
}

// HandleClientMessage answers control frames sent by a client.
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		m.reply(client, NewEvent(EventError, map[string]string{"message": "Invalid message format"}))
		return
	}

	switch msg.Type {
	case EventPing:
		m.reply(client, NewEvent(EventPong, nil))
	default:
		logger.Debug("WebSocket: ignoring %q from %s", msg.Type, client.UserID)
	}
}

func (m *Manager) reply(client *Client, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if _, ok := m.clients[client.UserID][client]; !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}
