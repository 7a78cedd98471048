package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/alaasumrain/skribble-arabic/game/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Hub maintains the set of active connections and routes coordinator events
// to them. It satisfies room.Emitter.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Client

	service service.GameService

	register   chan *Client
	unregister chan *Client
}

// NewHub creates a hub with no connections. Call Bind before serving.
func NewHub() *Hub {
	return &Hub{
		conns:      make(map[string]*Client),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
	}
}

// Bind attaches the game service the hub dispatches inbound events to. The
// hub is constructed first because the service's emitter is the hub itself.
func (h *Hub) Bind(svc service.GameService) {
	h.service = svc
}

// Run starts the hub's event loop. It returns when ctx is cancelled, after
// closing every connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// ServeWS upgrades an HTTP request to a WebSocket connection and registers
// it with the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("ip", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	client := newClient(h, conn, uuid.NewString(), r.RemoteAddr)
	h.register <- client
}

// ToConn implements room.Emitter: it marshals the event envelope and hands
// it to the connection's write pump without blocking. Unknown connections
// and full send buffers drop the event.
func (h *Hub) ToConn(connID, event string, payload any) {
	h.mu.RLock()
	client, ok := h.conns[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to marshal event payload")
			return
		}
		env.Data = data
	}

	frame, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal event envelope")
		return
	}

	select {
	case client.send <- frame:
	default:
		// Slow client: drop the event; the next snapshot resynchronizes it.
	}
}

// ConnCount returns the number of live connections.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()

	log.Info().Str("conn", c.id).Str("ip", c.ip).Msg("connection opened")

	go c.writePump()
	go c.readPump()
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	_, present := h.conns[c.id]
	delete(h.conns, c.id)
	h.mu.Unlock()

	if !present {
		return
	}
	close(c.send)

	// Removing the connection from the hub first means the departing
	// player never receives its own player-left broadcast.
	h.service.Disconnect(context.Background(), c.id)
	log.Info().Str("conn", c.id).Msg("connection closed")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[string]*Client)
	h.mu.Unlock()

	for _, c := range conns {
		c.closeSocket()
	}
}
