package room

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrRoomFull           = errors.New("room full")
)

const (
	// minPlayersToStart is the roster size required before a game can begin.
	minPlayersToStart = 2

	// guessFloor is the minimum points a correct guess is worth, so late
	// guesses still count even when the clock has nearly run out.
	guessFloor = 20

	// drawerReward is the flat bonus the drawer earns per correct guess.
	drawerReward = 10

	// chatHistoryWindow caps how many chat entries a snapshot exposes.
	chatHistoryWindow = 50

	// graceTicks is how many timer ticks to wait after everyone has guessed
	// before advancing, so the last guess can render before the canvas resets.
	graceTicks = 2
)

// Room is one independent game session. All exported methods are safe for
// concurrent use; a single mutex serializes every mutation including the
// turn-timer tick.
type Room struct {
	mu sync.Mutex

	id       string
	settings Settings

	players  []*Player
	drawerID string // conn id of the current drawer, empty before the first turn
	word     string
	timeLeft int
	round    int
	started  bool
	ended    bool

	strokes []json.RawMessage
	chat    []ChatMessage

	// graceLeft counts down the everyone-guessed delay in timer ticks.
	graceLeft int

	timer     *turnTimer
	newTicker tickerFactory

	emitter Emitter
}

// New creates a room with the creator already seated as its first player.
func New(id string, settings Settings, creatorConnID, creatorName string, emitter Emitter) *Room {
	r := &Room{
		id:        id,
		settings:  settings,
		emitter:   emitter,
		newTicker: defaultTicker,
	}
	r.players = append(r.players, &Player{ConnID: creatorConnID, Name: strings.TrimSpace(creatorName)})
	return r
}

// ID returns the room code.
func (r *Room) ID() string {
	return r.id
}

// PlayerCount returns the current roster size.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// AddPlayer appends a player to the roster. It fails once the game has
// started or the room is at capacity.
func (r *Room) AddPlayer(connID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrGameAlreadyStarted
	}
	if len(r.players) >= r.settings.MaxPlayers {
		return ErrRoomFull
	}

	r.players = append(r.players, &Player{ConnID: connID, Name: strings.TrimSpace(name)})
	r.broadcastStateLocked(EventPlayerJoined)
	return nil
}

// RemovePlayer splices the player out of the roster. If the departing player
// was drawing, the turn advances immediately and the abandoned word is
// discarded. The second return value reports whether the room is now empty;
// the owner must destroy an empty room.
func (r *Room) RemovePlayer(connID string) (removed, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.players {
		if p.ConnID == connID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, len(r.players) == 0
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	if len(r.players) == 0 {
		r.stopTimerLocked()
		return true, true
	}

	if r.started && !r.ended && connID == r.drawerID {
		r.advanceTurnLocked()
	}
	r.broadcastStateLocked(EventPlayerLeft)
	return true, false
}

// Start begins the game: round 1, first drawer, first word, timer running.
// It reports whether the game actually started; with fewer than two players
// it is a silent no-op, and a started or ended room never restarts.
func (r *Room) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started || len(r.players) < minPlayersToStart {
		return false
	}

	r.started = true
	r.round = 1
	r.advanceTurnLocked()
	r.broadcastStateLocked(EventGameStarted)
	log.Info().Str("room", r.id).Int("players", len(r.players)).Msg("game started")
	return true
}

// SubmitChat appends the text to the chat log and evaluates it as a guess.
// A guess scores when the sender is not drawing, has not already guessed
// this turn, and the trimmed, case-normalized text equals the current word.
// The message is broadcast room-wide; a correct guess additionally triggers
// a state broadcast. Returns false if the sender is not in the room.
func (r *Room) SubmitChat(connID, text string) (ChatMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sender := r.findLocked(connID)
	if sender == nil {
		return ChatMessage{}, false
	}

	msg := ChatMessage{
		PlayerID:   connID,
		PlayerName: sender.Name,
		Message:    text,
		Timestamp:  time.Now().UnixMilli(),
		IsGuess:    true,
	}

	if r.started && !r.ended && r.word != "" &&
		!sender.IsDrawing && !sender.HasGuessed &&
		normalizeGuess(text) == normalizeGuess(r.word) {
		msg.IsCorrect = true
		sender.HasGuessed = true

		points := r.timeLeft
		if points < guessFloor {
			points = guessFloor
		}
		sender.Score += points
		if drawer := r.findLocked(r.drawerID); drawer != nil {
			drawer.Score += drawerReward
		}

		if r.everyoneGuessedLocked() {
			r.graceLeft = graceTicks
		}
	}

	r.chat = append(r.chat, msg)
	r.broadcastLocked(EventChatMessage, msg)
	if msg.IsCorrect {
		r.broadcastStateLocked(EventGameUpdate)
	}
	return msg, true
}

// SubmitStroke buffers a stroke and relays it to everyone but the sender.
// Strokes from anyone but the current drawer are dropped; the payload itself
// is never inspected.
func (r *Room) SubmitStroke(connID string, stroke json.RawMessage) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ended || r.drawerID == "" || connID != r.drawerID {
		return false
	}

	r.strokes = append(r.strokes, stroke)
	r.broadcastExceptLocked(connID, EventDrawingData, stroke)
	return true
}

// ClearCanvas empties the stroke buffer and tells the room to wipe the
// canvas. Only the current drawer may clear.
func (r *Room) ClearCanvas(connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ended || r.drawerID == "" || connID != r.drawerID {
		return false
	}

	r.strokes = nil
	r.broadcastLocked(EventClearCanvas, nil)
	return true
}

// Snapshot returns the full room projection, chat truncated to the most
// recent entries. The secret word is included in plaintext; redact before
// sending to non-drawers.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// SendStateTo emits a game-update snapshot, redacted for the recipient, to
// a single connection.
func (r *Room) SendStateTo(connID string) {
	r.mu.Lock()
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.emitter.ToConn(connID, EventGameUpdate, snap.RedactedFor(connID))
}

// Close stops the turn timer. The owner calls it when destroying the room.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimerLocked()
}

// advanceTurnLocked rotates the drawer to the next roster position, bumping
// the round when the rotation wraps. A wrap past the final round ends the
// game instead of starting a turn. Mid-game departures shift the rotation
// without reassignment; that fairness quirk is the accepted behavior.
func (r *Room) advanceTurnLocked() {
	for _, p := range r.players {
		p.IsDrawing = false
		p.HasGuessed = false
	}
	r.graceLeft = 0

	idx := -1
	for i, p := range r.players {
		if p.ConnID == r.drawerID {
			idx = i
			break
		}
	}
	next := (idx + 1) % len(r.players)
	if next == 0 && r.drawerID != "" {
		r.round++
	}
	if r.round > r.settings.MaxRounds {
		r.endGameLocked()
		return
	}

	drawer := r.players[next]
	r.drawerID = drawer.ConnID
	drawer.IsDrawing = true
	r.word = r.settings.Words[rand.Intn(len(r.settings.Words))]
	r.timeLeft = r.settings.TurnSeconds
	r.strokes = nil
	r.startTimerLocked()

	log.Debug().Str("room", r.id).Str("drawer", drawer.Name).Int("round", r.round).Msg("turn advanced")
}

// endGameLocked enters the terminal state: timer released, roster sorted by
// score descending (stable, so equal scores keep join order).
func (r *Room) endGameLocked() {
	r.ended = true
	r.stopTimerLocked()
	sort.SliceStable(r.players, func(i, j int) bool {
		return r.players[i].Score > r.players[j].Score
	})
	log.Info().Str("room", r.id).Msg("game ended")
}

func (r *Room) findLocked(connID string) *Player {
	for _, p := range r.players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

func (r *Room) everyoneGuessedLocked() bool {
	for _, p := range r.players {
		if !p.IsDrawing && !p.HasGuessed {
			return false
		}
	}
	return true
}

func (r *Room) snapshotLocked() Snapshot {
	players := make([]Player, len(r.players))
	for i, p := range r.players {
		players[i] = *p
	}

	chat := r.chat
	if len(chat) > chatHistoryWindow {
		chat = chat[len(chat)-chatHistoryWindow:]
	}
	chatCopy := make([]ChatMessage, len(chat))
	copy(chatCopy, chat)

	strokes := make([]json.RawMessage, len(r.strokes))
	copy(strokes, r.strokes)

	return Snapshot{
		ID:            r.id,
		Players:       players,
		CurrentDrawer: r.drawerID,
		CurrentWord:   r.word,
		WordLength:    wordLength(r.word),
		TimeLeft:      r.timeLeft,
		Round:         r.round,
		MaxRounds:     r.settings.MaxRounds,
		GameStarted:   r.started,
		GameEnded:     r.ended,
		DrawingData:   strokes,
		ChatHistory:   chatCopy,
	}
}

// broadcastLocked sends the same payload to every player.
func (r *Room) broadcastLocked(event string, payload any) {
	for _, p := range r.players {
		r.emitter.ToConn(p.ConnID, event, payload)
	}
}

// broadcastExceptLocked sends the payload to every player but one.
func (r *Room) broadcastExceptLocked(exceptConnID, event string, payload any) {
	for _, p := range r.players {
		if p.ConnID == exceptConnID {
			continue
		}
		r.emitter.ToConn(p.ConnID, event, payload)
	}
}

// broadcastStateLocked sends a per-recipient redacted snapshot to everyone.
func (r *Room) broadcastStateLocked(event string) {
	snap := r.snapshotLocked()
	for _, p := range r.players {
		r.emitter.ToConn(p.ConnID, event, snap.RedactedFor(p.ConnID))
	}
}

// normalizeGuess applies the only accepted guess normalization: whitespace
// trimming and case folding. Matching is exact, never fuzzy.
func normalizeGuess(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
