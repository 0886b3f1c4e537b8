package realtime

import (
	"sync"

	"github.com/rs/zerolog"
)

// delivery is one payload addressed to every connection of a user
type delivery struct {
	userID  int64
	payload []byte
}

// Hub maintains the set of active clients keyed by user id. A user may hold
// several connections (tabs, devices); each receives every delivery.
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	closeOnce  sync.Once

	// counts mirrors len(clients[id]) for readers outside Run
	mu     sync.RWMutex
	counts map[int64]int

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		deliver:    make(chan delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		counts:     make(map[int64]int),
		logger:     logger.With().Str("component", "realtime_hub").Logger(),
	}
}

// Run owns the client map until Close is called
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliver:
			h.deliverToUser(d)

		case <-h.done:
			for _, set := range h.clients {
				for client := range set {
					h.unregisterClient(client)
				}
			}
			return
		}
	}
}

// Close stops Run and disconnects every client
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *Hub) registerClient(client *Client) {
	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	h.setCount(client.userID, len(h.clients[client.userID]))

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok || !set[client] {
		return
	}

	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.setCount(client.userID, len(set))

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

func (h *Hub) deliverToUser(d delivery) {
	set, ok := h.clients[d.userID]
	if !ok {
		h.logger.Debug().Int64("userID", d.userID).Msg("No connected clients for delivery")
		return
	}

	for client := range set {
		select {
		case client.send <- d.payload:
		default:
			// slow consumer
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) setCount(userID int64, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n == 0 {
		delete(h.counts, userID)
		return
	}
	h.counts[userID] = n
}

// SendToUser queues payload for every connection of userID. It never blocks:
// when the hub is saturated or closed the payload is dropped.
func (h *Hub) SendToUser(userID int64, payload []byte) bool {
	select {
	case <-h.done:
		return false
	default:
	}

	select {
	case h.deliver <- delivery{userID: userID, payload: payload}:
		return true
	default:
		h.logger.Warn().Int64("userID", userID).Msg("Hub saturated, dropping delivery")
		return false
	}
}

// ClientCount returns the number of live connections of userID
func (h *Hub) ClientCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.counts[userID]
}

// OnlineUsers returns how many users hold at least one connection
func (h *Hub) OnlineUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.counts)
}

// attach hands a client to Run. It reports false once the hub is closed.
func (h *Hub) attach(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) detach(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
