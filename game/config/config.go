package config

import (
	"fmt"
	"strings"

	"github.com/alaasumrain/skribble-arabic/game/room"
)

// Room parameter bounds. The 8-player cap matches the canvas layout the
// client renders; turns shorter than 10 seconds are not playable.
const (
	MinPlayers     = 2
	MaxPlayers     = 8
	MinTurnSeconds = 10
	MaxTurnSeconds = 300
	MinWords       = 10
)

// GameConfig is one named game configuration as stored on disk.
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	MaxPlayers  int      `json:"max_players"`
	MaxRounds   int      `json:"max_rounds"`
	TurnSeconds int      `json:"turn_seconds"`
	Words       []string `json:"words"`
}

// ConfigInfo summarizes one loadable configuration for listings.
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	WordCount   int    `json:"word_count"`
	MaxRounds   int    `json:"max_rounds"`
	TurnSeconds int    `json:"turn_seconds"`
}

// Settings converts the configuration into the parameters a room runs with.
func (c *GameConfig) Settings() room.Settings {
	return room.Settings{
		MaxPlayers:  c.MaxPlayers,
		MaxRounds:   c.MaxRounds,
		TurnSeconds: c.TurnSeconds,
		Words:       c.Words,
	}
}

// ValidateGameConfig validates a game configuration for correctness and
// playability.
func ValidateGameConfig(c *GameConfig) error {
	if c.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if c.MaxPlayers < MinPlayers || c.MaxPlayers > MaxPlayers {
		return fmt.Errorf("config validation: max_players must be between %d and %d, got %d", MinPlayers, MaxPlayers, c.MaxPlayers)
	}
	if c.MaxRounds < 1 {
		return fmt.Errorf("config validation: max_rounds must be at least 1, got %d", c.MaxRounds)
	}
	if c.TurnSeconds < MinTurnSeconds || c.TurnSeconds > MaxTurnSeconds {
		return fmt.Errorf("config validation: turn_seconds must be between %d and %d, got %d", MinTurnSeconds, MaxTurnSeconds, c.TurnSeconds)
	}
	if len(c.Words) < MinWords {
		return fmt.Errorf("config validation: at least %d words required, got %d", MinWords, len(c.Words))
	}

	seen := make(map[string]int, len(c.Words))
	for i, w := range c.Words {
		trimmed := strings.TrimSpace(w)
		if trimmed == "" {
			return fmt.Errorf("config validation: word %d is empty", i+1)
		}
		if prev, dup := seen[trimmed]; dup {
			return fmt.Errorf("config validation: duplicate word %q at positions %d and %d", trimmed, prev+1, i+1)
		}
		seen[trimmed] = i
	}
	return nil
}
