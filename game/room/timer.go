package room

import "time"

// tickerFactory abstracts the one-second ticker so tests can drive ticks by
// hand instead of waiting on wall-clock time.
type tickerFactory func(d time.Duration) (<-chan time.Time, func())

func defaultTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// turnTimer is the handle for one turn's countdown goroutine. Exactly one
// timer is live per room; replacing or stopping it closes the previous
// goroutine's stop channel.
type turnTimer struct {
	stop chan struct{}
}

// startTimerLocked replaces any running timer with a fresh countdown.
func (r *Room) startTimerLocked() {
	r.stopTimerLocked()
	t := &turnTimer{stop: make(chan struct{})}
	r.timer = t
	go r.runTimer(t)
}

func (r *Room) stopTimerLocked() {
	if r.timer != nil {
		close(r.timer.stop)
		r.timer = nil
	}
}

func (r *Room) runTimer(t *turnTimer) {
	ticks, stop := r.newTicker(time.Second)
	defer stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticks:
			if !r.tick(t) {
				return
			}
		}
	}
}

// tick is one second of game time, serialized with every other room
// mutation. It broadcasts the countdown, drains the everyone-guessed grace
// delay, and advances the turn when the clock runs out. It reports whether
// the calling timer is still the room's live timer.
func (r *Room) tick(t *turnTimer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != t || r.ended {
		return false
	}

	r.timeLeft--
	r.broadcastLocked(EventTimerUpdate, TimerUpdate{TimeLeft: r.timeLeft, Round: r.round})

	if r.graceLeft > 0 {
		r.graceLeft--
		if r.graceLeft == 0 {
			r.advanceTurnLocked()
			r.broadcastStateLocked(EventGameUpdate)
		}
		return r.timer == t
	}

	if r.timeLeft <= 0 {
		r.advanceTurnLocked()
		r.broadcastStateLocked(EventGameUpdate)
	}
	return r.timer == t
}
