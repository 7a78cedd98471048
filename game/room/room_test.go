package room

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeEmitter records every event the room sends, per connection.
type fakeEmitter struct {
	mu     sync.Mutex
	events []emittedEvent
}

type emittedEvent struct {
	connID  string
	event   string
	payload any
}

func (f *fakeEmitter) ToConn(connID, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, emittedEvent{connID: connID, event: event, payload: payload})
}

func (f *fakeEmitter) countByEvent(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.event == event {
			n++
		}
	}
	return n
}

// snapshotsFor returns every Snapshot payload sent to a connection.
func (f *fakeEmitter) snapshotsFor(connID string) []Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	var snaps []Snapshot
	for _, e := range f.events {
		if e.connID != connID {
			continue
		}
		if snap, ok := e.payload.(Snapshot); ok {
			snaps = append(snaps, snap)
		}
	}
	return snaps
}

func (f *fakeEmitter) eventsFor(connID, event string) []emittedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []emittedEvent
	for _, e := range f.events {
		if e.connID == connID && e.event == event {
			out = append(out, e)
		}
	}
	return out
}

// blockedTicker never fires; tests drive time by calling tick directly.
func blockedTicker(time.Duration) (<-chan time.Time, func()) {
	return nil, func() {}
}

func testSettings(words ...string) Settings {
	if len(words) == 0 {
		words = []string{"قطة"}
	}
	return Settings{
		MaxPlayers:  8,
		MaxRounds:   3,
		TurnSeconds: 80,
		Words:       words,
	}
}

func newTestRoom(settings Settings) (*Room, *fakeEmitter) {
	emitter := &fakeEmitter{}
	r := New("ABC123", settings, "conn-a", "أحمد", emitter)
	r.newTicker = blockedTicker
	return r, emitter
}

func TestAddPlayer(t *testing.T) {
	t.Run("full room rejects a new player", func(t *testing.T) {
		settings := testSettings()
		settings.MaxPlayers = 2
		r, _ := newTestRoom(settings)

		if err := r.AddPlayer("conn-b", "سارة"); err != nil {
			t.Fatalf("AddPlayer failed: %v", err)
		}
		if err := r.AddPlayer("conn-c", "خالد"); !errors.Is(err, ErrRoomFull) {
			t.Errorf("expected ErrRoomFull, got %v", err)
		}
		if got := r.PlayerCount(); got != 2 {
			t.Errorf("expected 2 players, got %d", got)
		}
	})

	t.Run("started game rejects a new player", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")
		r.Start()

		if err := r.AddPlayer("conn-c", "خالد"); !errors.Is(err, ErrGameAlreadyStarted) {
			t.Errorf("expected ErrGameAlreadyStarted, got %v", err)
		}
	})

	t.Run("join broadcasts the roster to everyone", func(t *testing.T) {
		r, emitter := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")

		for _, conn := range []string{"conn-a", "conn-b"} {
			if got := len(emitter.eventsFor(conn, EventPlayerJoined)); got != 1 {
				t.Errorf("expected 1 player-joined for %s, got %d", conn, got)
			}
		}
	})

	t.Run("display names are trimmed", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "  سارة  ")

		snap := r.Snapshot()
		if snap.Players[1].Name != "سارة" {
			t.Errorf("expected trimmed name, got %q", snap.Players[1].Name)
		}
	})
}

func TestStart(t *testing.T) {
	t.Run("single player cannot start", func(t *testing.T) {
		r, emitter := newTestRoom(testSettings())

		if r.Start() {
			t.Error("expected Start to refuse a single-player room")
		}
		snap := r.Snapshot()
		if snap.GameStarted {
			t.Error("game should not be started")
		}
		if emitter.countByEvent(EventGameStarted) != 0 {
			t.Error("no game-started event should be sent")
		}
	})

	t.Run("start assigns round, drawer, word, and clock", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")

		if !r.Start() {
			t.Fatal("Start failed")
		}

		snap := r.Snapshot()
		if !snap.GameStarted || snap.GameEnded {
			t.Error("expected a running game")
		}
		if snap.Round != 1 {
			t.Errorf("expected round 1, got %d", snap.Round)
		}
		if snap.CurrentDrawer != "conn-a" {
			t.Errorf("expected the creator to draw first, got %s", snap.CurrentDrawer)
		}
		if snap.CurrentWord == "" {
			t.Error("expected a secret word to be chosen")
		}
		if snap.TimeLeft != 80 {
			t.Errorf("expected a full 80s clock, got %d", snap.TimeLeft)
		}

		drawing := 0
		for _, p := range snap.Players {
			if p.IsDrawing {
				drawing++
			}
		}
		if drawing != 1 {
			t.Errorf("expected exactly one drawer, got %d", drawing)
		}
	})

	t.Run("a started room never restarts", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")
		r.Start()

		if r.Start() {
			t.Error("expected second Start to be a no-op")
		}
	})
}

func TestSubmitChat(t *testing.T) {
	t.Run("correct guess awards guesser and drawer", func(t *testing.T) {
		r, _ := newTestRoom(testSettings("قطة"))
		r.AddPlayer("conn-b", "سارة")
		r.Start()

		msg, ok := r.SubmitChat("conn-b", "  قطة ")
		if !ok || !msg.IsCorrect {
			t.Fatalf("expected a correct guess, got ok=%v correct=%v", ok, msg.IsCorrect)
		}

		snap := r.Snapshot()
		if snap.Players[1].Score != 80 {
			t.Errorf("expected guesser to earn timeLeft=80 points, got %d", snap.Players[1].Score)
		}
		if snap.Players[0].Score != 10 {
			t.Errorf("expected drawer to earn 10 points, got %d", snap.Players[0].Score)
		}
		if !snap.Players[1].HasGuessed {
			t.Error("expected guesser to be marked as guessed")
		}
	})

	t.Run("late guess still earns the floor", func(t *testing.T) {
		r, _ := newTestRoom(testSettings("قطة"))
		r.AddPlayer("conn-b", "سارة")
		r.Start()
		r.mu.Lock()
		r.timeLeft = 5
		r.mu.Unlock()

		r.SubmitChat("conn-b", "قطة")

		snap := r.Snapshot()
		if snap.Players[1].Score != 20 {
			t.Errorf("expected floor of 20 points, got %d", snap.Players[1].Score)
		}
	})

	t.Run("a player scores at most once per turn", func(t *testing.T) {
		r, _ := newTestRoom(testSettings("قطة"))
		r.AddPlayer("conn-b", "سارة")
		r.AddPlayer("conn-c", "خالد")
		r.Start()

		r.SubmitChat("conn-b", "قطة")
		msg, _ := r.SubmitChat("conn-b", "قطة")
		if msg.IsCorrect {
			t.Error("expected repeat guess to not score")
		}

		snap := r.Snapshot()
		if snap.Players[1].Score != 80 {
			t.Errorf("expected score unchanged at 80, got %d", snap.Players[1].Score)
		}
		if snap.Players[0].Score != 10 {
			t.Errorf("expected drawer score unchanged at 10, got %d", snap.Players[0].Score)
		}
	})

	t.Run("the drawer cannot guess", func(t *testing.T) {
		r, _ := newTestRoom(testSettings("قطة"))
		r.AddPlayer("conn-b", "سارة")
		r.Start()

		msg, _ := r.SubmitChat("conn-a", "قطة")
		if msg.IsCorrect {
			t.Error("expected the drawer's own word to not score")
		}
	})

	t.Run("wrong guess is plain chat", func(t *testing.T) {
		r, emitter := newTestRoom(testSettings("قطة"))
		r.AddPlayer("conn-b", "سارة")
		r.Start()

		msg, ok := r.SubmitChat("conn-b", "كلب")
		if !ok {
			t.Fatal("SubmitChat failed")
		}
		if msg.IsCorrect {
			t.Error("expected an incorrect guess")
		}

		snap := r.Snapshot()
		if snap.Players[1].Score != 0 {
			t.Errorf("expected no points, got %d", snap.Players[1].Score)
		}
		for _, conn := range []string{"conn-a", "conn-b"} {
			if got := len(emitter.eventsFor(conn, EventChatMessage)); got != 1 {
				t.Errorf("expected chat broadcast to %s, got %d events", conn, got)
			}
		}
	})

	t.Run("unknown sender is rejected", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		if _, ok := r.SubmitChat("conn-x", "مرحبا"); ok {
			t.Error("expected unknown sender to be rejected")
		}
	})

	t.Run("everyone guessed schedules the turn advance", func(t *testing.T) {
		r, _ := newTestRoom(testSettings("قطة"))
		r.AddPlayer("conn-b", "سارة")
		r.Start()

		r.SubmitChat("conn-b", "قطة")

		r.mu.Lock()
		grace, timer := r.graceLeft, r.timer
		r.mu.Unlock()
		if grace != graceTicks {
			t.Fatalf("expected grace countdown of %d ticks, got %d", graceTicks, grace)
		}

		// Drain the grace delay; the second tick rotates the turn.
		r.tick(timer)
		snapBefore := r.Snapshot()
		if snapBefore.CurrentDrawer != "conn-a" {
			t.Error("drawer should not rotate before the grace delay expires")
		}
		r.tick(timer)

		snap := r.Snapshot()
		if snap.CurrentDrawer != "conn-b" {
			t.Errorf("expected the turn to pass to conn-b, got %s", snap.CurrentDrawer)
		}
		for _, p := range snap.Players {
			if p.HasGuessed {
				t.Errorf("expected guess flags reset, %s still set", p.Name)
			}
		}
	})
}

func TestChatHistoryWindow(t *testing.T) {
	r, _ := newTestRoom(testSettings())
	r.AddPlayer("conn-b", "سارة")

	for i := 0; i < chatHistoryWindow+10; i++ {
		r.SubmitChat("conn-b", fmt.Sprintf("رسالة %d", i))
	}

	snap := r.Snapshot()
	if len(snap.ChatHistory) != chatHistoryWindow {
		t.Fatalf("expected %d chat entries, got %d", chatHistoryWindow, len(snap.ChatHistory))
	}
	if snap.ChatHistory[0].Message != "رسالة 10" {
		t.Errorf("expected oldest retained message to be #10, got %q", snap.ChatHistory[0].Message)
	}
}

func TestSubmitStroke(t *testing.T) {
	stroke := json.RawMessage(`{"x":1,"y":2}`)

	t.Run("only the drawer may draw", func(t *testing.T) {
		r, emitter := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")
		r.Start()

		if r.SubmitStroke("conn-b", stroke) {
			t.Error("expected non-drawer stroke to be dropped")
		}
		if emitter.countByEvent(EventDrawingData) != 0 {
			t.Error("dropped stroke must not be relayed")
		}
	})

	t.Run("strokes relay to everyone but the sender", func(t *testing.T) {
		r, emitter := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")
		r.AddPlayer("conn-c", "خالد")
		r.Start()

		if !r.SubmitStroke("conn-a", stroke) {
			t.Fatal("drawer stroke rejected")
		}

		if got := len(emitter.eventsFor("conn-a", EventDrawingData)); got != 0 {
			t.Errorf("sender must not receive its own stroke, got %d", got)
		}
		for _, conn := range []string{"conn-b", "conn-c"} {
			if got := len(emitter.eventsFor(conn, EventDrawingData)); got != 1 {
				t.Errorf("expected 1 stroke relayed to %s, got %d", conn, got)
			}
		}

		snap := r.Snapshot()
		if len(snap.DrawingData) != 1 {
			t.Errorf("expected 1 buffered stroke, got %d", len(snap.DrawingData))
		}
	})

	t.Run("strokes before the game starts are dropped", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		if r.SubmitStroke("conn-a", stroke) {
			t.Error("expected pre-game stroke to be dropped")
		}
	})
}

func TestClearCanvas(t *testing.T) {
	r, emitter := newTestRoom(testSettings())
	r.AddPlayer("conn-b", "سارة")
	r.Start()
	r.SubmitStroke("conn-a", json.RawMessage(`{"x":1}`))

	if r.ClearCanvas("conn-b") {
		t.Error("expected non-drawer clear to be refused")
	}
	if !r.ClearCanvas("conn-a") {
		t.Fatal("drawer clear refused")
	}

	snap := r.Snapshot()
	if len(snap.DrawingData) != 0 {
		t.Errorf("expected empty stroke buffer, got %d", len(snap.DrawingData))
	}
	if got := emitter.countByEvent(EventClearCanvas); got != 2 {
		t.Errorf("expected clear-canvas broadcast to both players, got %d", got)
	}
}

func TestTimerTick(t *testing.T) {
	t.Run("tick counts down and broadcasts", func(t *testing.T) {
		r, emitter := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")
		r.Start()

		r.mu.Lock()
		timer := r.timer
		r.mu.Unlock()

		if !r.tick(timer) {
			t.Fatal("live timer tick reported stale")
		}

		snap := r.Snapshot()
		if snap.TimeLeft != 79 {
			t.Errorf("expected 79s left, got %d", snap.TimeLeft)
		}

		updates := emitter.eventsFor("conn-b", EventTimerUpdate)
		if len(updates) != 1 {
			t.Fatalf("expected 1 timer-update, got %d", len(updates))
		}
		tu := updates[0].payload.(TimerUpdate)
		if tu.TimeLeft != 79 || tu.Round != 1 {
			t.Errorf("unexpected timer payload: %+v", tu)
		}
	})

	t.Run("timeout rotates the turn and resets the canvas", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")
		r.Start()
		r.SubmitStroke("conn-a", json.RawMessage(`{"x":1}`))

		r.mu.Lock()
		r.timeLeft = 1
		timer := r.timer
		r.mu.Unlock()

		r.tick(timer)

		snap := r.Snapshot()
		if snap.CurrentDrawer != "conn-b" {
			t.Errorf("expected the turn to pass to conn-b, got %s", snap.CurrentDrawer)
		}
		if snap.TimeLeft != 80 {
			t.Errorf("expected a fresh clock, got %d", snap.TimeLeft)
		}
		if len(snap.DrawingData) != 0 {
			t.Errorf("expected the canvas cleared, got %d strokes", len(snap.DrawingData))
		}
		if snap.Round != 1 {
			t.Errorf("round must not change mid-rotation, got %d", snap.Round)
		}
	})

	t.Run("a replaced timer stops ticking", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")
		r.Start()

		r.mu.Lock()
		stale := r.timer
		r.timeLeft = 1
		r.mu.Unlock()

		// Timeout replaces the timer; the old handle must report stale.
		r.tick(stale)
		if r.tick(stale) {
			t.Error("expected stale timer tick to report dead")
		}

		snap := r.Snapshot()
		if snap.TimeLeft != 80 {
			t.Errorf("stale tick must not touch the clock, got %d", snap.TimeLeft)
		}
	})
}

func TestRoundProgression(t *testing.T) {
	settings := testSettings()
	settings.MaxRounds = 1
	r, _ := newTestRoom(settings)
	r.AddPlayer("conn-b", "سارة")
	r.Start()
	r.SubmitChat("conn-b", "قطة")

	// Burn through both turns of the single round.
	for i := 0; i < 2; i++ {
		r.mu.Lock()
		r.timeLeft = 1
		r.graceLeft = 0
		timer := r.timer
		r.mu.Unlock()
		r.tick(timer)
	}

	snap := r.Snapshot()
	if !snap.GameEnded {
		t.Fatal("expected the game to end after the rotation wrapped")
	}
	if snap.CurrentWord == "" {
		t.Error("the final word should be revealed after the game ends")
	}

	// Final standings: guesser (80) ahead of drawer (10).
	if snap.Players[0].ConnID != "conn-b" {
		t.Errorf("expected conn-b to lead the standings, got %s", snap.Players[0].ConnID)
	}
	if snap.Players[0].Score < snap.Players[1].Score {
		t.Error("standings must be sorted by score descending")
	}
}

func TestRemovePlayer(t *testing.T) {
	t.Run("drawer departure advances the turn", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")
		r.AddPlayer("conn-c", "خالد")
		r.Start()

		removed, empty := r.RemovePlayer("conn-a")
		if !removed || empty {
			t.Fatalf("unexpected removal result: removed=%v empty=%v", removed, empty)
		}

		snap := r.Snapshot()
		if snap.CurrentDrawer == "" || snap.CurrentDrawer == "conn-a" {
			t.Errorf("expected a new drawer, got %q", snap.CurrentDrawer)
		}
		drawing := 0
		for _, p := range snap.Players {
			if p.IsDrawing {
				drawing++
			}
		}
		if drawing != 1 {
			t.Errorf("expected exactly one drawer after departure, got %d", drawing)
		}
	})

	t.Run("last departure empties the room", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		if _, empty := r.RemovePlayer("conn-a"); !empty {
			t.Error("expected the room to report empty")
		}
	})

	t.Run("unknown connection is a no-op", func(t *testing.T) {
		r, _ := newTestRoom(testSettings())
		removed, empty := r.RemovePlayer("conn-x")
		if removed || empty {
			t.Errorf("unexpected result: removed=%v empty=%v", removed, empty)
		}
	})

	t.Run("departure broadcasts the roster", func(t *testing.T) {
		r, emitter := newTestRoom(testSettings())
		r.AddPlayer("conn-b", "سارة")
		r.RemovePlayer("conn-b")

		if got := len(emitter.eventsFor("conn-a", EventPlayerLeft)); got != 1 {
			t.Errorf("expected 1 player-left for conn-a, got %d", got)
		}
	})
}

func TestRedaction(t *testing.T) {
	r, emitter := newTestRoom(testSettings("قطة"))
	r.AddPlayer("conn-b", "سارة")
	r.Start()

	snap := r.Snapshot()

	t.Run("non-drawers never see the word", func(t *testing.T) {
		redacted := snap.RedactedFor("conn-b")
		if redacted.CurrentWord != "" {
			t.Errorf("expected blanked word, got %q", redacted.CurrentWord)
		}
		if redacted.WordLength != 3 {
			t.Errorf("expected word length hint 3, got %d", redacted.WordLength)
		}
	})

	t.Run("the drawer sees the word", func(t *testing.T) {
		if got := snap.RedactedFor("conn-a").CurrentWord; got != "قطة" {
			t.Errorf("expected the drawer to see the word, got %q", got)
		}
	})

	t.Run("broadcast snapshots are redacted per recipient", func(t *testing.T) {
		for _, s := range emitter.snapshotsFor("conn-b") {
			if s.GameStarted && !s.GameEnded && s.CurrentWord != "" {
				t.Fatalf("word leaked to non-drawer in a %q broadcast", EventGameStarted)
			}
		}
	})

	t.Run("the word is revealed after the game ends", func(t *testing.T) {
		r.mu.Lock()
		r.endGameLocked()
		r.mu.Unlock()

		final := r.Snapshot().RedactedFor("conn-b")
		if final.CurrentWord == "" {
			t.Error("expected the word revealed after the game ended")
		}
	})
}

func TestSendStateTo(t *testing.T) {
	r, emitter := newTestRoom(testSettings("قطة"))
	r.AddPlayer("conn-b", "سارة")
	r.Start()

	r.SendStateTo("conn-b")

	updates := emitter.eventsFor("conn-b", EventGameUpdate)
	if len(updates) == 0 {
		t.Fatal("expected a game-update to the requester")
	}
	snap := updates[len(updates)-1].payload.(Snapshot)
	if snap.CurrentWord != "" {
		t.Error("on-demand state must be redacted for non-drawers")
	}
}
