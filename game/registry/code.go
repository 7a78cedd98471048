package registry

import (
	"crypto/rand"
	"errors"
)

// Room codes are short so players can read them aloud; the uppercase
// alphanumeric alphabet avoids ambiguity with URL encoding.
const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6

	// maxCodeAttempts bounds the retry-with-regeneration loop on collision.
	// With 36^6 codes and a handful of live rooms the loop practically never
	// repeats, but an unbounded loop would hide a broken randomness source.
	maxCodeAttempts = 8
)

// ErrCodeSpaceExhausted is returned when a fresh room code could not be
// generated within the attempt bound.
var ErrCodeSpaceExhausted = errors.New("could not generate a unique room code")

// generateCode returns a random 6-character room code.
func generateCode() string {
	buf := make([]byte, codeLength)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}
