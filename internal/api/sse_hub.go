package api

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"kuesioner/internal"
)

// EventTally is the SSE event name carrying aggregate updates
const EventTally = "tally"

// DefaultPingInterval is how often idle streams receive a keep-alive ping
const DefaultPingInterval = 30 * time.Second

// TallyEvent is one update pushed to every connected client
type TallyEvent struct {
	ID        string      `json:"id"`
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// SSEHub fans tally events out to connected Server-Sent Events clients
type SSEHub struct {
	clients    map[chan TallyEvent]bool
	clientsMu  sync.RWMutex
	register   chan chan TallyEvent
	unregister chan chan TallyEvent
	broadcast  chan TallyEvent
	stop       chan struct{}
	stopOnce   sync.Once

	latest       *TallyEvent
	pingInterval time.Duration
	logger       *internal.Logger
}

// NewSSEHub creates a new SSE hub and starts its event loop
func NewSSEHub(logger *internal.Logger) *SSEHub {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	hub := &SSEHub{
		clients:      make(map[chan TallyEvent]bool),
		register:     make(chan chan TallyEvent, 10),
		unregister:   make(chan chan TallyEvent, 10),
		broadcast:    make(chan TallyEvent, 100),
		stop:         make(chan struct{}),
		pingInterval: DefaultPingInterval,
		logger:       logger,
	}

	go hub.run()
	return hub
}

// SetPingInterval changes the keep-alive interval for new streams
func (h *SSEHub) SetPingInterval(interval time.Duration) {
	h.pingInterval = interval
}

// run processes SSE hub operations
func (h *SSEHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			// Late joiners start from the most recent tally
			if h.latest != nil {
				client <- *h.latest
			}
			h.logger.Debug("[SSE] Client registered (total clients: %d)", len(h.clients))
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if h.clients[client] {
				delete(h.clients, client)
				close(client)
				h.logger.Debug("[SSE] Client unregistered (remaining clients: %d)", len(h.clients))
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.Lock()
			h.latest = &event
			for client := range h.clients {
				select {
				case client <- event:
				default:
					h.logger.Warn("[SSE] Client channel full, skipping event %s", event.ID)
				}
			}
			h.clientsMu.Unlock()

		case <-h.stop:
			h.clientsMu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client)
			}
			h.clientsMu.Unlock()
			return
		}
	}
}

// Broadcast queues an event for every connected client
func (h *SSEHub) Broadcast(event TallyEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("[SSE] Broadcast channel full, dropping event: %s", event.ID)
	}
}

// Close disconnects every client and stops the event loop
func (h *SSEHub) Close() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// HandleSSE streams tally events until the client disconnects
func (h *SSEHub) HandleSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Cache-Control")

	clientChan := make(chan TallyEvent, 10)

	select {
	case h.register <- clientChan:
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "SSE hub registration failed"})
		return
	}

	defer func() {
		select {
		case h.unregister <- clientChan:
		case <-h.stop:
		}
	}()

	// Send headers now so clients see the stream open before the first event
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	pingInterval := h.pingInterval
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-clientChan:
			if !ok {
				return false
			}
			eventJSON, err := json.Marshal(event.Data)
			if err != nil {
				h.logger.Error("[SSE] Failed to marshal event: %v", err)
				return true
			}
			c.Render(-1, sse.Event{Id: event.ID, Event: event.EventType, Data: string(eventJSON)})
			return true

		case <-time.After(pingInterval):
			c.SSEvent("ping", `{"status": "alive", "timestamp": "`+time.Now().Format(time.RFC3339)+`"}`)
			return true

		case <-ctx.Done():
			return false
		}
	})
}

// ClientCount returns the number of connected clients
func (h *SSEHub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}
