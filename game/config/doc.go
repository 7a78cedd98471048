// Package config loads and caches the named game configurations: word lists
// plus the room parameters (player cap, round count, turn length) a room is
// created with. Configurations live as JSON files in a config directory and
// are selected by name at room creation; a built-in Arabic word list serves
// as the fallback default when no usable files are present.
package config
