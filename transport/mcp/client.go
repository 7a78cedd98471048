package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alaasumrain/skribble-arabic/game/config"
	"github.com/alaasumrain/skribble-arabic/game/room"
	"github.com/alaasumrain/skribble-arabic/game/service"
)

// Client is a thin MCP client that proxies to the REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools.
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Arabic Skribbl Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Arabic Skribbl game server - MCP operator interface

This is a thin client that proxies all requests to the REST API server.

The server coordinates real-time drawing-and-guessing rooms. Players connect
over WebSocket; these tools give a read-only operator view.

AVAILABLE TOOLS:
- server_status: Process-level stats (live rooms and connected players)
- list_rooms: Summaries of every live room
- room_state: Full snapshot of one room (secret word redacted)
- list_configs: Available word-list configurations
- create_config: Save a new word-list configuration

Rooms are created and played over the WebSocket transport; no tool can
mutate a running game.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools.
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_status",
		Description: "Get process-level stats: live room and player counts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all live game rooms",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRooms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "room_state",
		Description: "Get the full state of one room; the secret word is redacted",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "6-character room code",
				},
			},
			Required: []string{"room_id"},
		},
	}, c.handleRoomState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List the available word-list configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_config",
		Description: "Save a new word-list configuration players can pick at room creation",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "File name for the config (without .json)",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Display name",
				},
				"words": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Word list (at least 10 unique words)",
				},
				"language": map[string]interface{}{
					"type":        "string",
					"description": "BCP 47 language tag, defaults to ar",
				},
				"max_players": map[string]interface{}{
					"type":        "number",
					"description": "Room capacity 2-8, defaults to 8",
				},
				"max_rounds": map[string]interface{}{
					"type":        "number",
					"description": "Rounds per game, defaults to 3",
				},
				"turn_seconds": map[string]interface{}{
					"type":        "number",
					"description": "Turn length in seconds 10-300, defaults to 80",
				},
			},
			Required: []string{"config_id", "name", "words"},
		},
	}, c.handleCreateConfig)
}

// GetMCPServer returns the underlying MCP server, used to mount the /mcp
// HTTP endpoint and the stdio mode.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// Tool handlers

func (c *Client) handleServerStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var status struct {
		Status    string `json:"status"`
		Message   string `json:"message"`
		Timestamp string `json:"timestamp"`
		Rooms     int    `json:"rooms"`
		Players   int    `json:"players"`
	}

	if err := c.apiCall("GET", "/", nil, &status); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Status: %s\nRooms: %d\nPlayers: %d\nTimestamp: %s\n",
		status.Status, status.Rooms, status.Players, status.Timestamp)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                `json:"count"`
		Rooms []service.RoomInfo `json:"rooms"`
	}

	if err := c.apiCall("GET", "/api/rooms", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No live rooms."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Live rooms (%d):\n\n", response.Count)
	for _, r := range response.Rooms {
		phase := "lobby"
		switch {
		case r.Ended:
			phase = "ended"
		case r.Started:
			phase = fmt.Sprintf("round %d/%d", r.Round, r.MaxRounds)
		}
		fmt.Fprintf(&b, "- %s: %d players, %s\n", r.ID, r.Players, phase)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleRoomState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)

	var snap room.Snapshot
	if err := c.apiCall("GET", fmt.Sprintf("/api/rooms/%s", roomID), nil, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snap)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                  `json:"count"`
		Configs []*config.ConfigInfo `json:"configs"`
	}

	if err := c.apiCall("GET", "/api/configs", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available configs (%d):\n\n", response.Count)
	for _, cfg := range response.Configs {
		fmt.Fprintf(&b, "- %s: %s (%s, %d words, %d rounds, %ds turns)\n",
			cfg.ConfigID, cfg.Name, cfg.Language, cfg.WordCount, cfg.MaxRounds, cfg.TurnSeconds)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleCreateConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	configID, _ := args["config_id"].(string)
	name, _ := args["name"].(string)

	cfg := config.GameConfig{
		Name:        name,
		Language:    "ar",
		MaxPlayers:  8,
		MaxRounds:   3,
		TurnSeconds: 80,
	}
	if lang, ok := args["language"].(string); ok && lang != "" {
		cfg.Language = lang
	}
	if v, ok := args["max_players"].(float64); ok {
		cfg.MaxPlayers = int(v)
	}
	if v, ok := args["max_rounds"].(float64); ok {
		cfg.MaxRounds = int(v)
	}
	if v, ok := args["turn_seconds"].(float64); ok {
		cfg.TurnSeconds = int(v)
	}
	if words, ok := args["words"].([]interface{}); ok {
		for _, w := range words {
			if s, ok := w.(string); ok {
				cfg.Words = append(cfg.Words, s)
			}
		}
	}

	body := map[string]interface{}{
		"config_id": configID,
		"config":    cfg,
	}
	var response map[string]string
	if err := c.apiCall("POST", "/api/configs", body, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Config %s created: %s (%d words, %d rounds, %ds turns)",
		configID, cfg.Name, len(cfg.Words), cfg.MaxRounds, cfg.TurnSeconds)
	return mcp.NewToolResultText(result), nil
}

// formatSnapshot renders a room snapshot as operator-readable text.
func formatSnapshot(snap *room.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Room %s\n", snap.ID)
	switch {
	case snap.GameEnded:
		fmt.Fprintf(&b, "Phase: ended after %d rounds\n", snap.MaxRounds)
	case snap.GameStarted:
		fmt.Fprintf(&b, "Phase: round %d/%d, %ds left, word length %d\n",
			snap.Round, snap.MaxRounds, snap.TimeLeft, snap.WordLength)
	default:
		fmt.Fprintf(&b, "Phase: lobby\n")
	}

	fmt.Fprintf(&b, "Players (%d):\n", len(snap.Players))
	for _, p := range snap.Players {
		marker := ""
		if p.IsDrawing {
			marker = " [drawing]"
		} else if p.HasGuessed {
			marker = " [guessed]"
		}
		fmt.Fprintf(&b, "- %s: %d points%s\n", p.Name, p.Score, marker)
	}

	fmt.Fprintf(&b, "Strokes buffered: %d, chat messages: %d\n",
		len(snap.DrawingData), len(snap.ChatHistory))
	return b.String()
}
