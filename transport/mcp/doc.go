// Package mcp exposes an operator interface to the game server over the
// Model Context Protocol. It is a thin client that proxies every tool call
// to the REST API, so the same server can be inspected from an MCP-capable
// assistant: live room listings, redacted room state, process stats, and
// the word-list configurations. No tool mutates game state; the only write
// tool creates word-list configurations, which are content, not state.
package mcp
