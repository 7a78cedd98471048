package service

import (
	"context"
	"encoding/json"

	"github.com/alaasumrain/skribble-arabic/game/config"
	"github.com/alaasumrain/skribble-arabic/game/room"
)

// GameService defines all game-related operations. The connID identifies the
// sending connection; transports supply it, clients never do.
type GameService interface {
	// Inbound client events
	CreateRoom(ctx context.Context, connID, displayName, configName string) error
	JoinRoom(ctx context.Context, connID, roomID, displayName string) error
	StartGame(ctx context.Context, connID string)
	SubmitStroke(ctx context.Context, connID string, stroke json.RawMessage)
	SubmitChat(ctx context.Context, connID, text string)
	ClearCanvas(ctx context.Context, connID string)
	SendState(ctx context.Context, connID string)
	Disconnect(ctx context.Context, connID string)

	// Read side for REST and MCP
	ListRooms(ctx context.Context) []RoomInfo
	GetRoom(ctx context.Context, roomID string) (room.Snapshot, error)
	Stats(ctx context.Context) ServerStats
}

// RoomRegistry defines the room routing and lifecycle operations the service
// depends on.
type RoomRegistry interface {
	CreateRoom(connID, displayName string, settings room.Settings) (*room.Room, error)
	JoinRoom(connID, roomID, displayName string) (*room.Room, error)
	Resolve(connID string) (*room.Room, bool)
	Leave(connID string)
	Get(roomID string) (*room.Room, bool)
	Rooms() []*room.Room
	Counts() (rooms, players int)
	CloseAll()
}

// ConfigStore defines the configuration operations the service depends on.
type ConfigStore interface {
	LoadConfig(name string) (*config.GameConfig, error)
	GetDefault() *config.GameConfig
	ListConfigs() ([]*config.ConfigInfo, error)
	SaveConfig(name string, cfg *config.GameConfig) error
}

// RoomInfo summarizes one live room for listings. The secret word is never
// part of it.
type RoomInfo struct {
	ID        string `json:"id"`
	Players   int    `json:"players"`
	Round     int    `json:"round"`
	MaxRounds int    `json:"maxRounds"`
	Started   bool   `json:"started"`
	Ended     bool   `json:"ended"`
}

// ServerStats is the process-level view served by the status endpoint.
type ServerStats struct {
	Rooms   int `json:"rooms"`
	Players int `json:"players"`
}

// roomCreatedPayload is the room-created event body sent to the creator.
type roomCreatedPayload struct {
	RoomID    string        `json:"roomId"`
	GameState room.Snapshot `json:"gameState"`
}
