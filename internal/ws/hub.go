package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go-sales-dashboard/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type EventType string

const (
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
	EventStockRestocked EventType = "stock_restocked"
	EventSaleRecorded   EventType = "sale_recorded"
	EventRestockAlert   EventType = "restock_alert"
)

// Event is what dashboard clients receive. Clients re-read the affected data on any event.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewEvent(t EventType, data interface{}, message string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
	}
}

// Run serves register, unregister and broadcast requests until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			count := len(h.Clients)
			h.mutex.Unlock()
			logger.Debug().Int("clients", count).Msg("WS client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues ev for every connected client without blocking the caller.
// A nil hub drops the event.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}

	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error().Err(err).Str("event", string(ev.Type)).Msg("Failed to encode WS event")
		return
	}

	select {
	case h.Broadcast <- msg:
	default:
		go func() { h.Broadcast <- msg }()
	}
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.Clients {
		conn.Close()
		delete(h.Clients, conn)
	}
}
