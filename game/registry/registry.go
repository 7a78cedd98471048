package registry

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/alaasumrain/skribble-arabic/game/room"
)

// ErrRoomNotFound is returned when a join references an unknown room code.
var ErrRoomNotFound = errors.New("room not found")

// membership records which room a connection sits in and the display name it
// joined with.
type membership struct {
	roomID string
	name   string
}

// Registry is the connection-to-room router. It owns room lifecycle: rooms
// are created on demand and deleted the moment they empty.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*room.Room
	conns   map[string]membership
	emitter room.Emitter
}

// New creates an empty registry. Rooms it constructs broadcast through the
// given emitter.
func New(emitter room.Emitter) *Registry {
	return &Registry{
		rooms:   make(map[string]*room.Room),
		conns:   make(map[string]membership),
		emitter: emitter,
	}
}

// CreateRoom constructs a new room with the creator as its sole player and
// registers both mappings. The only failure mode is room-code exhaustion,
// which is practically unreachable.
func (g *Registry) CreateRoom(connID, displayName string, settings room.Settings) (*room.Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := ""
	for i := 0; i < maxCodeAttempts; i++ {
		c := generateCode()
		if _, taken := g.rooms[c]; !taken {
			code = c
			break
		}
	}
	if code == "" {
		return nil, ErrCodeSpaceExhausted
	}

	r := room.New(code, settings, connID, displayName, g.emitter)
	g.rooms[code] = r
	g.conns[connID] = membership{roomID: code, name: displayName}

	log.Info().Str("room", code).Str("player", displayName).Msg("room created")
	return r, nil
}

// JoinRoom appends the player to an existing room. It fails with
// ErrRoomNotFound for an unknown code, and passes through the room's own
// refusals (started game, full roster).
func (g *Registry) JoinRoom(connID, roomID, displayName string) (*room.Room, error) {
	g.mu.RLock()
	r, ok := g.rooms[roomID]
	g.mu.RUnlock()
	if !ok {
		return nil, ErrRoomNotFound
	}

	if err := r.AddPlayer(connID, displayName); err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.conns[connID] = membership{roomID: roomID, name: displayName}
	g.mu.Unlock()

	log.Info().Str("room", roomID).Str("player", displayName).Msg("player joined")
	return r, nil
}

// Resolve returns the room a connection currently sits in. Every inbound
// event except create and join finds its target this way.
func (g *Registry) Resolve(connID string) (*room.Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	m, ok := g.conns[connID]
	if !ok {
		return nil, false
	}
	r, ok := g.rooms[m.roomID]
	return r, ok
}

// Leave removes the connection's player from its room, deleting the room if
// it empties. Unknown connections are ignored.
func (g *Registry) Leave(connID string) {
	g.mu.Lock()
	m, ok := g.conns[connID]
	delete(g.conns, connID)
	var r *room.Room
	if ok {
		r = g.rooms[m.roomID]
	}
	g.mu.Unlock()

	if r == nil {
		return
	}

	_, empty := r.RemovePlayer(connID)
	if empty {
		r.Close()
		g.mu.Lock()
		delete(g.rooms, m.roomID)
		g.mu.Unlock()
		log.Info().Str("room", m.roomID).Msg("room destroyed (empty)")
	}
}

// Get returns a room by code.
func (g *Registry) Get(roomID string) (*room.Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[roomID]
	return r, ok
}

// Rooms returns all live rooms.
func (g *Registry) Rooms() []*room.Room {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*room.Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		out = append(out, r)
	}
	return out
}

// Counts reports the number of live rooms and tracked connections.
func (g *Registry) Counts() (rooms, players int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms), len(g.conns)
}

// CloseAll stops every room's timer. Used on shutdown.
func (g *Registry) CloseAll() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, r := range g.rooms {
		r.Close()
	}
	g.rooms = make(map[string]*room.Room)
	g.conns = make(map[string]membership)
}
