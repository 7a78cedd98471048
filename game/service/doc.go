// Package service defines the coordinator-facing operations: every inbound
// client event (create, join, start, stroke, chat, clear, state request,
// disconnect) plus the read-side operations the REST API and MCP tools use.
//
// The service resolves each event's sender to a room through the registry,
// applies the mutation, and lets the room broadcast the resulting events.
// Authorization failures and events from connections with no membership are
// silently ignored; only create/join surface errors, and those go back to
// the requesting connection alone.
package service
