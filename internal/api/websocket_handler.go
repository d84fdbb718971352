package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/pkg/logger"
)

const (
	websocketReadBufferSize        = 1024
	websocketWriteBufferSize       = 1024
	websocketSendChannelBufferSize = 256

	hubSubscriberID = "admin-websocket-hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  websocketReadBufferSize,
	WriteBufferSize: websocketWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventSubscriber delivers tenant events published by any instance.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subscriberID string, callback func(domain.TenantEvent)) error
	Unsubscribe(subscriberID string)
	Close()
}

type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// WebSocketHandler streams tenant lifecycle events to connected super
// admins. One Redis subscription is held while at least one client is
// connected.
type WebSocketHandler struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *logger.Logger
	events     EventSubscriber
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewWebSocketHandler(logger *logger.Logger, events EventSubscriber) *WebSocketHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHandler{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		events:     events,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// HandleWebSocket godoc
// @Summary Stream tenant lifecycle events
// @Description Upgrade to a websocket that receives every tenant event as JSON
// @Tags tenants
// @Security BearerAuth
// @Success 101
// @Router /admin/tenants/events/stream [get]
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, websocketSendChannelBufferSize),
	}

	select {
	case h.register <- client:
	case <-h.ctx.Done():
		conn.Close()
		return
	}

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			first := len(h.clients) == 1
			h.mutex.Unlock()

			if first {
				if err := h.events.Subscribe(h.ctx, hubSubscriberID, h.handleEvent); err != nil {
					h.logger.Errorf("Failed to subscribe to tenant events: %v", err)
				}
			}

		case client := <-h.unregister:
			h.removeClient(client)

		case <-h.ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			return
		}
	}
}

func (h *WebSocketHandler) Stop() {
	h.cancel()
	h.events.Close()
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHandler) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *WebSocketHandler) removeClient(client *Client) {
	h.mutex.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	last := ok && len(h.clients) == 0
	h.mutex.Unlock()

	if last {
		h.events.Unsubscribe(hubSubscriberID)
	}
}

func (h *WebSocketHandler) handleEvent(event domain.TenantEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorf("Error marshaling tenant event: %v", err)
		return
	}

	var slow []*Client
	h.mutex.RLock()
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			slow = append(slow, client)
		}
	}
	h.mutex.RUnlock()

	// Clients that cannot keep up are dropped by the hub loop, which owns
	// the subscription
	for _, client := range slow {
		select {
		case h.unregister <- client:
		case <-h.ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandler) writePump(client *Client) {
	defer func() {
		client.conn.Close()
	}()

	for message := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	// Channel was closed, send close message
	_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *Client) {
	defer func() {
		select {
		case h.unregister <- client:
		case <-h.ctx.Done():
		}
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnf("Unexpected close error on event stream: %v", err)
			}
			return
		}
	}
}
