// Command analyze prints quick, human-readable heuristics about configuration
// files in the project's configs directory. It summarizes word counts, word
// length distribution, estimated game duration, and highlights words that are
// likely too short or too long to draw-and-guess well.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Words shorter than this are near-impossible to draw distinctively; words
// longer than this rarely fit the hint blanks on small screens.
const (
	shortWordRunes = 3
	longWordRunes  = 12
)

// AnalysisConfig is a light struct for reading config files used by analysis.
type AnalysisConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	MaxPlayers  int      `json:"max_players"`
	MaxRounds   int      `json:"max_rounds"`
	TurnSeconds int      `json:"turn_seconds"`
	Words       []string `json:"words"`
}

func main() {
	files, err := filepath.Glob(filepath.Join("configs", "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Println("No config files found under configs/")
		os.Exit(1)
	}

	for _, configFile := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(configFile))
		analyzeConfig(configFile)
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config AnalysisConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Language: %s\n", config.Language)
	fmt.Printf("Players: up to %d\n", config.MaxPlayers)
	fmt.Printf("Rounds: %d x %ds turns\n", config.MaxRounds, config.TurnSeconds)

	if len(config.Words) == 0 {
		fmt.Println("⚠️  WARNING: word list is empty")
		return
	}

	minLen, maxLen, total := utf8.RuneCountInString(config.Words[0]), 0, 0
	var short, long []string
	seen := map[string]bool{}
	duplicates := 0

	for _, word := range config.Words {
		n := utf8.RuneCountInString(word)
		total += n
		if n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
		if n < shortWordRunes {
			short = append(short, word)
		}
		if n > longWordRunes {
			long = append(long, word)
		}
		if seen[word] {
			duplicates++
		}
		seen[word] = true
	}

	fmt.Printf("Words: %d (lengths %d-%d, avg %.1f runes)\n",
		len(config.Words), minLen, maxLen, float64(total)/float64(len(config.Words)))

	// Each player draws once per round, so a full game at max capacity runs
	// rounds * players turns.
	turns := config.MaxRounds * config.MaxPlayers
	fmt.Printf("Full game at capacity: %d turns, ~%d minutes\n",
		turns, turns*config.TurnSeconds/60)

	if turns > len(config.Words) {
		fmt.Printf("⚠️  WARNING: a full game draws %d words but only %d are available; repeats are likely\n",
			turns, len(config.Words))
	}

	if duplicates > 0 {
		fmt.Printf("⚠️  WARNING: %d duplicate words\n", duplicates)
	}

	if len(short) > 0 {
		fmt.Printf("⚠️  %d words shorter than %d runes:", len(short), shortWordRunes)
		printSample(short)
	}

	if len(long) > 0 {
		fmt.Printf("⚠️  %d words longer than %d runes:", len(long), longWordRunes)
		printSample(long)
	}
}

// printSample prints up to 5 words from a list on one line.
func printSample(words []string) {
	for i, w := range words {
		if i == 5 {
			fmt.Printf(" …")
			break
		}
		fmt.Printf(" %s", w)
	}
	fmt.Println()
}
