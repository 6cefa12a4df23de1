package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"rugstore/internal/domain/entity"
	"rugstore/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// Event is what connected admin dashboards receive.
type Event struct {
	Type string       `json:"type"`
	Lead *entity.Lead `json:"lead,omitempty"`
	At   string       `json:"at"`
}

const EventLeadCreated = "lead.created"

// Client is one admin dashboard connection.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
	}
}

// Manager fans lead events out to every connected admin.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.RWMutex
	log        logger.Logger
}

func NewManager(log logger.Logger) *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBuffer),
		done:       make(chan struct{}),
		log:        log.With("component", "lead-feed"),
	}
}

// Start runs the manager loop until ctx is done.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				m.log.Debug("client registered", "client", client.ID, "uid", client.UserID)

			case client := <-m.Unregister:
				m.remove(client)

			case message := <-m.broadcast:
				m.mutex.RLock()
				var slow []*Client
				for _, client := range m.clients {
					select {
					case client.Send <- message:
					default:
						slow = append(slow, client)
					}
				}
				m.mutex.RUnlock()
				for _, client := range slow {
					m.log.Warn("dropping slow client", "client", client.ID)
					m.remove(client)
				}

			case <-ctx.Done():
				close(m.done)
				m.mutex.Lock()
				for id, client := range m.clients {
					close(client.Send)
					delete(m.clients, id)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

// Join hands the client to the manager loop. It reports false once the
// manager has stopped, in which case the caller still owns the connection.
func (m *Manager) Join(client *Client) bool {
	select {
	case <-m.done:
		return false
	default:
	}
	select {
	case m.Register <- client:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.clients[client.ID]; ok {
		delete(m.clients, client.ID)
		close(client.Send)
		m.log.Debug("client unregistered", "client", client.ID)
	}
}

func (m *Manager) Connected() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// LeadCreated queues a lead.created event. It never blocks the caller; when
// the queue is full the event is dropped and dashboards catch up on reload.
func (m *Manager) LeadCreated(lead entity.Lead) {
	message, err := json.Marshal(Event{
		Type: EventLeadCreated,
		Lead: &lead,
		At:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		m.log.Error("failed to encode lead event", "error", err)
		return
	}

	select {
	case m.broadcast <- message:
	default:
		m.log.Warn("lead feed queue full, event dropped", "lead", lead.ID)
	}
}

// ReadPump drains the connection so control frames are handled; dashboards
// do not send data.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		select {
		case m.Unregister <- c:
		case <-m.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.log.Warn("websocket read error", "client", c.ID, "error", err)
			}
			return
		}
	}
}

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
