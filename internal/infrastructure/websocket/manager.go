package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"targ/internal/domain/service"
	"targ/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Client is one open socket. A user may hold several.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
	}
}

type delivery struct {
	userID  string
	payload []byte
}

// Manager owns the set of open sockets. Registration and delivery go through its loop.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		done:       make(chan struct{}),
	}
}

// Register adds the client to the loop. It returns false once the manager has stopped.
func (m *Manager) Register(client *Client) bool {
	select {
	case m.register <- client:
		return true
	case <-m.done:
		return false
	}
}

// Unregister removes the client. After shutdown every socket is already closed.
func (m *Manager) Unregister(client *Client) {
	select {
	case m.unregister <- client:
	case <-m.done:
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.register:
				m.mutex.Lock()
				if m.clients[client.UserID] == nil {
					m.clients[client.UserID] = make(map[*Client]struct{})
				}
				m.clients[client.UserID][client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("WebSocket client registered: %s", client.UserID)

			case client := <-m.unregister:
				m.remove(client)
				logger.Debug("WebSocket client unregistered: %s", client.UserID)

			case d := <-m.deliver:
				m.mutex.RLock()
				var stale []*Client
				for client := range m.clients[d.userID] {
					select {
					case client.Send <- d.payload:
					default:
						stale = append(stale, client)
					}
				}
				m.mutex.RUnlock()
				for _, client := range stale {
					m.remove(client)
				}

			case <-ctx.Done():
				close(m.done)
				m.closeAll()
				return
			}
		}
	}()
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	sockets, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := sockets[client]; !ok {
		return
	}
	delete(sockets, client)
	close(client.Send)
	if len(sockets) == 0 {
		delete(m.clients, client.UserID)
	}
}

func (m *Manager) closeAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for userID, sockets := range m.clients {
		for client := range sockets {
			close(client.Send)
		}
		delete(m.clients, userID)
	}
}

// IsOnline reports whether the user has at least one open socket.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients[userID]) > 0
}

// Push queues an event for every socket of the user. It never blocks the caller;
// events for a full queue are dropped.
func (m *Manager) Push(userID, eventType string, data interface{}) {
	payload, err := json.Marshal(NewEvent(eventType, data))
	if err != nil {
		logger.Error("WebSocket: failed to encode %s event: %v", eventType, err)
		return
	}

	select {
	case m.deliver <- delivery{userID: userID, payload: payload}:
	default:
		logger.Warn("WebSocket: delivery queue full, dropping %s for %s", eventType, userID)
	}
}

var _ service.Pusher = (*Manager)(nil)

// ReadPump reads frames until the socket closes. Clients only send control events.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			return
		}
		m.HandleClientMessage(c, message)
	}
}

// WritePump sends queued events and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
