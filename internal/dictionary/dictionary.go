// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dictionary provides the word-membership oracle used for key recovery.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmpty is returned when a word list yields no words.
	ErrEmpty = errors.New("dictionary contains no words")
)

// =============================================================================
// ORACLE
// =============================================================================

// Oracle answers whether a lowercase word is in the dictionary.
// Lookups must be in-memory or otherwise non-blocking.
type Oracle interface {
	Contains(word string) bool
}

// Sizer is implemented by oracles that can report how many words they hold.
type Sizer interface {
	Len() int
}

// =============================================================================
// WORD SET
// =============================================================================

// WordSet is an immutable in-memory Oracle.
type WordSet struct {
	words map[string]struct{}
}

// NewWordSet builds a set from words, normalizing each one.
func NewWordSet(words ...string) *WordSet {
	ws := &WordSet{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if n := Normalize(w); n != "" {
			ws.words[n] = struct{}{}
		}
	}
	return ws
}

// Contains reports whether word is in the set. Matching is exact; callers
// pass lowercase input.
func (ws *WordSet) Contains(word string) bool {
	if ws == nil {
		return false
	}
	_, ok := ws.words[word]
	return ok
}

// Len returns the number of distinct words.
func (ws *WordSet) Len() int {
	if ws == nil {
		return 0
	}
	return len(ws.words)
}

// Words returns the words in sorted order.
func (ws *WordSet) Words() []string {
	if ws == nil {
		return nil
	}
	out := make([]string, 0, len(ws.words))
	for w := range ws.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Normalize trims, lowercases and NFC-normalizes a dictionary entry.
func Normalize(word string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(word)))
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads one word per line. Blank lines and lines starting with '#' are
// skipped.
func Load(r io.Reader) (*WordSet, error) {
	ws := &WordSet{words: make(map[string]struct{})}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ws.words[Normalize(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	if len(ws.words) == 0 {
		return nil, ErrEmpty
	}
	return ws, nil
}

// LoadFile loads a word list from path.
func LoadFile(path string) (*WordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	ws, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ws, nil
}
