// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cipher

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// MinKey is the smallest usable rotation.
	MinKey = 1
	// MaxKey is the largest usable rotation.
	MaxKey = 25
	// DefaultKey replaces any key outside [MinKey, MaxKey].
	DefaultKey = 3

	alphabetSize = 26
)

// Direction selects encryption or decryption.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Decrypt {
		return "decrypt"
	}
	return "encrypt"
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// KeyError reports a key rejected by ValidateKey.
type KeyError struct {
	Key int
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid key %d: must be between %d and %d", e.Key, MinKey, MaxKey)
}

// ValidKey reports whether key is inside [MinKey, MaxKey].
func ValidKey(key int) bool {
	return key >= MinKey && key <= MaxKey
}

// ValidateKey returns a *KeyError for keys outside [MinKey, MaxKey].
func ValidateKey(key int) error {
	if !ValidKey(key) {
		return &KeyError{Key: key}
	}
	return nil
}

// NormalizeKey returns key unchanged when valid and DefaultKey otherwise.
// Keys are never wrapped modulo the alphabet.
func NormalizeKey(key int) int {
	if !ValidKey(key) {
		return DefaultKey
	}
	return key
}

// KeyFromString parses a decimal key leniently. Non-numeric or out-of-range
// input yields DefaultKey.
func KeyFromString(s string) int {
	key, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultKey
	}
	return NormalizeKey(key)
}

// =============================================================================
// TRANSFORM
// =============================================================================

// Transform applies the rotation cipher to text. Decryption is the forward
// transform with shift (26 - key) % 26.
func Transform(text string, key int, dir Direction) string {
	shift := NormalizeKey(key)
	if dir == Decrypt {
		shift = (alphabetSize - shift) % alphabetSize
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(rotate(r, shift))
	}
	return b.String()
}

// EncryptText encrypts text with key.
func EncryptText(text string, key int) string {
	return Transform(text, key, Encrypt)
}

// DecryptText decrypts text that was encrypted with key.
func DecryptText(text string, key int) string {
	return Transform(text, key, Decrypt)
}

func rotate(r rune, shift int) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return 'a' + (r-'a'+rune(shift))%alphabetSize
	case r >= 'A' && r <= 'Z':
		return 'A' + (r-'A'+rune(shift))%alphabetSize
	default:
		return r
	}
}
