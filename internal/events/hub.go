// Package events fans tracking record changes out to live subscribers.
package events

import (
	"context"
	"net/http"
	"sync"
	"time"

	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/internal/metrics"
	"baby-tracker-go/pkg/logger"
	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const (
	subscriberBuffer = 32
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
)

type subscriber struct {
	childID string
	events  chan tracking.Event
}

// Hub delivers events to subscribers of the event's child. Delivery never
// blocks the publisher: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*subscriber]struct{}
	log         logger.Logger
	metrics     *metrics.Metrics
	upgrader    websocket.Upgrader
}

func NewHub(log logger.Logger, m *metrics.Metrics, allowedOrigins []string) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		log:         log,
		metrics:     m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (h *Hub) Publish(event tracking.Event) {
	h.metrics.RecordEvent(string(event.Category), string(event.Action))

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[event.ChildID] {
		select {
		case sub.events <- event:
		default:
			h.log.Warn("events.publish: subscriber buffer full", "child_id", event.ChildID, "category", event.Category)
		}
	}
}

// Subscribe registers interest in one child. The returned cancel function
// must be called to release the subscription.
func (h *Hub) Subscribe(childID string) (<-chan tracking.Event, func()) {
	sub := &subscriber{childID: childID, events: make(chan tracking.Event, subscriberBuffer)}

	h.mu.Lock()
	if h.subscribers[childID] == nil {
		h.subscribers[childID] = make(map[*subscriber]struct{})
	}
	h.subscribers[childID][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return sub.events, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[childID], sub)
			if len(h.subscribers[childID]) == 0 {
				delete(h.subscribers, childID)
			}
			h.mu.Unlock()
		})
	}
}

func (h *Hub) SubscriberCount(childID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[childID])
}

// ServeWS upgrades the request and streams the child's events as JSON text
// frames until the client goes away or ctx ends.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, childID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.BusinessError("events.live: upgrade failed", err, "child_id", childID)
		return
	}
	defer conn.Close()

	h.metrics.SubscriberConnected()
	defer h.metrics.SubscriberDisconnected()

	events, cancel := h.Subscribe(childID)
	defer cancel()

	ctx, stop := context.WithCancel(r.Context())
	defer stop()
	go h.readPump(conn, stop)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case event := <-events:
			payload, err := sonic.Marshal(event)
			if err != nil {
				h.log.InternalError("events.live: encode event", err, "child_id", childID)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.log.Debug("events.live: client gone", "child_id", childID, "err", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so control messages are processed, and
// reports disconnects through stop.
func (h *Hub) readPump(conn *websocket.Conn, stop context.CancelFunc) {
	defer stop()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

var _ tracking.Publisher = (*Hub)(nil)
