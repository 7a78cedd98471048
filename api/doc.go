// Package api provides the REST surface of the game server: the status and
// health endpoints, read-only room listings for operators, word-list
// configuration management, and the WebSocket upgrade route. Room snapshots
// served here always have the secret word redacted; gameplay state flows
// over the WebSocket transport, never REST.
package api
