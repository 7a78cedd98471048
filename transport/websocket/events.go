package websocket

import (
	"encoding/json"
	"errors"

	"github.com/alaasumrain/skribble-arabic/game/registry"
	"github.com/alaasumrain/skribble-arabic/game/room"
)

// Inbound event names (client → coordinator).
const (
	eventCreateRoom   = "create-room"
	eventJoinRoom     = "join-room"
	eventStartGame    = "start-game"
	eventDrawingData  = "drawing-data"
	eventChatMessage  = "chat-message"
	eventClearCanvas  = "clear-canvas"
	eventGetGameState = "get-game-state"
)

// Envelope is one WebSocket frame in either direction.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type createRoomPayload struct {
	PlayerName string `json:"playerName"`
	Config     string `json:"config,omitempty"`
}

type joinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type chatPayload struct {
	Message string `json:"message"`
}

// Client-facing error strings, kept verbatim from the Arabic client.
const (
	errTextRoomNotFound = "الغرفة غير موجودة"
	errTextGameStarted  = "اللعبة بدأت بالفعل"
	errTextRoomFull     = "الغرفة ممتلئة"
	errTextUnexpected   = "حدث خطأ غير متوقع"
)

// errorText maps a coordinator error onto the fixed string the client
// displays in a room-error event.
func errorText(err error) string {
	switch {
	case errors.Is(err, registry.ErrRoomNotFound):
		return errTextRoomNotFound
	case errors.Is(err, room.ErrGameAlreadyStarted):
		return errTextGameStarted
	case errors.Is(err, room.ErrRoomFull):
		return errTextRoomFull
	default:
		return errTextUnexpected
	}
}
