// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Player, round, and turn bounds
//   - Word list size, empty entries, and duplicates
//   - Script consistency: words in a config declaring language "ar" must
//     contain Arabic letters
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Parameter bounds, kept in sync with the game/config package.
const (
	minPlayers     = 2
	maxPlayers     = 8
	minTurnSeconds = 10
	maxTurnSeconds = 300
	minWords       = 10
)

// Config mirrors the JSON schema for a game configuration.
type Config struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	MaxPlayers  int      `json:"max_players"`
	MaxRounds   int      `json:"max_rounds"`
	TurnSeconds int      `json:"turn_seconds"`
	Words       []string `json:"words"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Name is required")
	}

	if config.MaxPlayers < minPlayers || config.MaxPlayers > maxPlayers {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("max_players must be between %d and %d, got %d", minPlayers, maxPlayers, config.MaxPlayers))
	}

	if config.MaxRounds < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("max_rounds must be at least 1, got %d", config.MaxRounds))
	}

	if config.TurnSeconds < minTurnSeconds || config.TurnSeconds > maxTurnSeconds {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("turn_seconds must be between %d and %d, got %d", minTurnSeconds, maxTurnSeconds, config.TurnSeconds))
	}

	if len(config.Words) < minWords {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("At least %d words required, got %d", minWords, len(config.Words)))
	}

	seen := map[string]int{}
	for i, word := range config.Words {
		trimmed := strings.TrimSpace(word)
		if trimmed == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Word %d is empty", i+1))
			continue
		}
		if prev, dup := seen[trimmed]; dup {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate word %q at positions %d and %d", trimmed, prev+1, i+1))
		}
		seen[trimmed] = i
	}

	// Script validation for word lists declaring an Arabic language
	if result.Valid && strings.HasPrefix(config.Language, "ar") {
		scriptResult := validateArabicScript(config.Words)
		if !scriptResult.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, scriptResult.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Language: %s", config.Language))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Words: %d", len(config.Words)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Players: up to %d", config.MaxPlayers))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Rounds: %d x %ds turns", config.MaxRounds, config.TurnSeconds))
	}

	return result
}

// validateArabicScript checks that every word contains at least one Arabic
// letter. Latin-only entries in an Arabic word list are almost always paste
// mistakes.
func validateArabicScript(words []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	nonArabic := []string{}
	for _, word := range words {
		hasArabic := false
		for _, r := range word {
			if unicode.Is(unicode.Arabic, r) {
				hasArabic = true
				break
			}
		}
		if !hasArabic {
			nonArabic = append(nonArabic, word)
		}
	}

	if len(nonArabic) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Script failure: %d/%d words contain no Arabic letters", len(nonArabic), len(words)))
		for _, word := range nonArabic {
			result.Errors = append(result.Errors, fmt.Sprintf("Not Arabic: %q", word))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Script: all %d words contain Arabic letters", len(words)))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
