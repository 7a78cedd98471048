// Package websocket provides the WebSocket transport for the game
// coordinator.
//
// The package implements:
//   - Connection upgrade and lifecycle management
//   - JSON event framing between client and coordinator
//   - Fan-out of coordinator events to connections
//   - Per-connection chat rate limiting
//
// Architecture:
//
// A central Hub tracks every live connection by its generated connection ID.
// Each connection runs a read pump and a write pump goroutine; the read pump
// decodes event envelopes and dispatches them to the game service, the write
// pump drains a buffered send channel. Sends never block the game state:
// when a client's buffer is full the event is dropped and the slow client
// resynchronizes from the next full snapshot.
//
// Message Protocol:
//
// Frames are JSON envelopes: {"event": "<name>", "data": <payload>}. The
// inbound event names are create-room, join-room, start-game, drawing-data,
// chat-message, clear-canvas and get-game-state; outbound names are defined
// in the room package. A disconnect is not an event: closing the socket is
// the signal, and the read pump reports it to the service.
//
// The Hub is the coordinator's Emitter: rooms address connections by ID and
// the hub routes each event to the matching socket.
package websocket
