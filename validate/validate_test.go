package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	validConfig := `{
		"name": "Test Config",
		"description": "Test configuration",
		"language": "ar",
		"max_players": 8,
		"max_rounds": 3,
		"turn_seconds": 80,
		"words": ["قطة", "كلب", "بيت", "شمس", "قمر", "شجرة", "سيارة", "كتاب", "قلم", "باب"]
	}`

	path := writeTempConfig(t, validConfig)
	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{"name": "test", invalid json}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config due to bad JSON")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Invalid JSON") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Invalid JSON' error")
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Failed to read file") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Failed to read file' error")
	}
}

func TestValidateConfig_TooFewWords(t *testing.T) {
	config := `{
		"name": "Test",
		"language": "ar",
		"max_players": 8,
		"max_rounds": 3,
		"turn_seconds": 80,
		"words": ["قطة", "كلب"]
	}`

	result := validateConfig(writeTempConfig(t, config))
	if result.Valid {
		t.Error("Expected invalid config due to short word list")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "words required") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected word count error")
	}
}

func TestValidateConfig_DuplicateWords(t *testing.T) {
	config := `{
		"name": "Test",
		"language": "ar",
		"max_players": 8,
		"max_rounds": 3,
		"turn_seconds": 80,
		"words": ["قطة", "كلب", "بيت", "شمس", "قمر", "شجرة", "سيارة", "كتاب", "قلم", "قطة"]
	}`

	result := validateConfig(writeTempConfig(t, config))
	if result.Valid {
		t.Error("Expected invalid config due to duplicate word")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Duplicate word") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Duplicate word' error")
	}
}

func TestValidateConfig_InvalidBounds(t *testing.T) {
	config := `{
		"name": "Test",
		"language": "ar",
		"max_players": 20,
		"max_rounds": 0,
		"turn_seconds": 5,
		"words": ["قطة", "كلب", "بيت", "شمس", "قمر", "شجرة", "سيارة", "كتاب", "قلم", "باب"]
	}`

	result := validateConfig(writeTempConfig(t, config))
	if result.Valid {
		t.Error("Expected invalid config due to out-of-bounds parameters")
	}

	foundPlayers := false
	foundRounds := false
	foundTurn := false
	for _, err := range result.Errors {
		if contains(err, "max_players") {
			foundPlayers = true
		}
		if contains(err, "max_rounds") {
			foundRounds = true
		}
		if contains(err, "turn_seconds") {
			foundTurn = true
		}
	}
	if !foundPlayers {
		t.Error("Expected 'max_players' error")
	}
	if !foundRounds {
		t.Error("Expected 'max_rounds' error")
	}
	if !foundTurn {
		t.Error("Expected 'turn_seconds' error")
	}
}

func TestValidateArabicScript_ValidWords(t *testing.T) {
	result := validateArabicScript([]string{"قطة", "كلب", "بيت"})
	if !result.Valid {
		t.Errorf("Expected valid script check, but got errors: %v", result.Errors)
	}
}

func TestValidateArabicScript_LatinWord(t *testing.T) {
	result := validateArabicScript([]string{"قطة", "cat", "بيت"})
	if result.Valid {
		t.Error("Expected invalid script check due to Latin-only word")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Script failure") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Script failure' error")
	}
}

// Helper function to check if a string contains a substring
func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
