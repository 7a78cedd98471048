// Package room implements the authoritative state machine for one game
// session: the player roster, turn rotation, secret-word selection, guess
// scoring, the stroke replay buffer, and the per-turn countdown.
//
// The package implements:
//   - Turn and round progression with cyclic drawer rotation
//   - Guess evaluation against the secret word with speed-based scoring
//   - Drawing-stroke buffering and relay for late joiners
//   - A one-second turn timer processed under the same lock as client events
//   - Full-state snapshots with per-recipient word redaction
//
// Concurrency:
//
// Every mutation of a Room is serialized by a single mutex. The turn timer
// is owned by the Room and its tick runs under the same mutex, so timer
// expiry is just another serialized mutation rather than a separately
// synchronized code path. Outbound events are handed to an Emitter, which
// must not block; the websocket hub satisfies this with buffered,
// drop-on-full sends.
//
// Lifecycle:
//
// A Room is created with its first player already seated, mutated by
// join/leave/turn/guess/stroke events, and closed by its owner when the
// roster becomes empty. Close stops the timer; a closed Room is never
// mutated again.
package room
