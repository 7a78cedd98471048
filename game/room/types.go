package room

import (
	"encoding/json"
	"unicode/utf8"
)

// Outbound event names. These are the wire-level event identifiers the
// browser client listens for; transports forward them verbatim.
const (
	EventRoomCreated  = "room-created"
	EventPlayerJoined = "player-joined"
	EventPlayerLeft   = "player-left"
	EventGameStarted  = "game-started"
	EventGameUpdate   = "game-update"
	EventDrawingData  = "drawing-data"
	EventClearCanvas  = "clear-canvas"
	EventChatMessage  = "chat-message"
	EventTimerUpdate  = "timer-update"
	EventRoomError    = "room-error"
)

// Emitter delivers an outbound event to a single connection. Implementations
// must not block: the Room calls Emit while holding its state lock.
type Emitter interface {
	ToConn(connID, event string, payload any)
}

// Player is one seat in the room. Join order is preserved and defines the
// turn rotation.
type Player struct {
	ConnID     string `json:"id"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	IsDrawing  bool   `json:"isDrawing"`
	HasGuessed bool   `json:"hasGuessed"`
}

// ChatMessage is a chat entry with its guess-evaluation outcome. The display
// name is snapshotted at send time.
type ChatMessage struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
	IsGuess    bool   `json:"isGuess"`
	IsCorrect  bool   `json:"isCorrect"`
}

// Settings are the fixed parameters a Room is created with.
type Settings struct {
	MaxPlayers  int
	MaxRounds   int
	TurnSeconds int
	Words       []string
}

// TimerUpdate is the per-second countdown payload broadcast to the room.
type TimerUpdate struct {
	TimeLeft int `json:"timeLeft"`
	Round    int `json:"round"`
}

// Snapshot is the full externally visible projection of a Room, broadcast
// after every mutating event. CurrentWord carries the plaintext secret;
// callers sending to non-drawers must use RedactedFor.
type Snapshot struct {
	ID            string            `json:"id"`
	Players       []Player          `json:"players"`
	CurrentDrawer string            `json:"currentDrawer"`
	CurrentWord   string            `json:"currentWord"`
	WordLength    int               `json:"wordLength"`
	TimeLeft      int               `json:"timeLeft"`
	Round         int               `json:"round"`
	MaxRounds     int               `json:"maxRounds"`
	GameStarted   bool              `json:"gameStarted"`
	GameEnded     bool              `json:"gameEnded"`
	DrawingData   []json.RawMessage `json:"drawingData"`
	ChatHistory   []ChatMessage     `json:"chatHistory"`
}

// RedactedFor returns a copy of the snapshot safe to send to connID. While a
// game is in progress the secret word is blanked for everyone except the
// drawer; the word length stays so clients can render the hint blanks. Once
// the game has ended the word is revealed to all.
func (s Snapshot) RedactedFor(connID string) Snapshot {
	if s.GameStarted && !s.GameEnded && connID != s.CurrentDrawer {
		s.CurrentWord = ""
	}
	return s
}

// Redacted returns the snapshot with the secret word blanked unconditionally
// while a game is in progress. Used for the operator-facing REST view.
func (s Snapshot) Redacted() Snapshot {
	return s.RedactedFor("")
}

func wordLength(word string) int {
	return utf8.RuneCountInString(word)
}
