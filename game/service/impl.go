package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/alaasumrain/skribble-arabic/game/registry"
	"github.com/alaasumrain/skribble-arabic/game/room"
)

// gameServiceImpl implements the GameService interface.
type gameServiceImpl struct {
	registry RoomRegistry
	configs  ConfigStore
	emitter  room.Emitter
}

// NewGameService creates a new game service instance.
func NewGameService(registry RoomRegistry, configs ConfigStore, emitter room.Emitter) GameService {
	return &gameServiceImpl{
		registry: registry,
		configs:  configs,
		emitter:  emitter,
	}
}

// CreateRoom creates a room with the sender as sole player and sends the
// room-created event back to the creator. An empty configName selects the
// default configuration.
func (s *gameServiceImpl) CreateRoom(ctx context.Context, connID, displayName, configName string) error {
	cfg := s.configs.GetDefault()
	if configName != "" {
		loaded, err := s.configs.LoadConfig(configName)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", configName, err)
		}
		cfg = loaded
	}

	r, err := s.registry.CreateRoom(connID, displayName, cfg.Settings())
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	snap := r.Snapshot()
	s.emitter.ToConn(connID, room.EventRoomCreated, roomCreatedPayload{
		RoomID:    r.ID(),
		GameState: snap.RedactedFor(connID),
	})
	return nil
}

// JoinRoom appends the sender to an existing room; the room broadcasts the
// updated roster itself.
func (s *gameServiceImpl) JoinRoom(ctx context.Context, connID, roomID, displayName string) error {
	_, err := s.registry.JoinRoom(connID, roomID, displayName)
	return err
}

// StartGame begins the sender's room. Unresolvable senders and too-small
// rosters are silent no-ops.
func (s *gameServiceImpl) StartGame(ctx context.Context, connID string) {
	r, ok := s.registry.Resolve(connID)
	if !ok {
		return
	}
	r.Start()
}

// SubmitStroke relays a drawing stroke. Non-drawers are silently dropped.
func (s *gameServiceImpl) SubmitStroke(ctx context.Context, connID string, stroke json.RawMessage) {
	r, ok := s.registry.Resolve(connID)
	if !ok {
		return
	}
	r.SubmitStroke(connID, stroke)
}

// SubmitChat appends a chat message and evaluates it as a guess.
func (s *gameServiceImpl) SubmitChat(ctx context.Context, connID, text string) {
	r, ok := s.registry.Resolve(connID)
	if !ok {
		return
	}
	r.SubmitChat(connID, text)
}

// ClearCanvas wipes the current turn's strokes. Drawer only.
func (s *gameServiceImpl) ClearCanvas(ctx context.Context, connID string) {
	r, ok := s.registry.Resolve(connID)
	if !ok {
		return
	}
	r.ClearCanvas(connID)
}

// SendState sends the sender a fresh snapshot of their room.
func (s *gameServiceImpl) SendState(ctx context.Context, connID string) {
	r, ok := s.registry.Resolve(connID)
	if !ok {
		return
	}
	r.SendStateTo(connID)
}

// Disconnect removes the sender from their room, destroying the room if it
// empties. A reconnecting client arrives with a fresh connection identity
// and is treated as a brand-new join.
func (s *gameServiceImpl) Disconnect(ctx context.Context, connID string) {
	s.registry.Leave(connID)
	log.Debug().Str("conn", connID).Msg("connection left")
}

// ListRooms summarizes all live rooms.
func (s *gameServiceImpl) ListRooms(ctx context.Context) []RoomInfo {
	rooms := s.registry.Rooms()
	infos := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		snap := r.Snapshot()
		infos = append(infos, RoomInfo{
			ID:        snap.ID,
			Players:   len(snap.Players),
			Round:     snap.Round,
			MaxRounds: snap.MaxRounds,
			Started:   snap.GameStarted,
			Ended:     snap.GameEnded,
		})
	}
	return infos
}

// GetRoom returns the operator-facing snapshot of one room, secret word
// redacted.
func (s *gameServiceImpl) GetRoom(ctx context.Context, roomID string) (room.Snapshot, error) {
	r, ok := s.registry.Get(roomID)
	if !ok {
		return room.Snapshot{}, fmt.Errorf("room %s: %w", roomID, registry.ErrRoomNotFound)
	}
	return r.Snapshot().Redacted(), nil
}

// Stats reports live room and player counts.
func (s *gameServiceImpl) Stats(ctx context.Context) ServerStats {
	rooms, players := s.registry.Counts()
	return ServerStats{Rooms: rooms, Players: players}
}
