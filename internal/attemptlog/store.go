// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package attemptlog

import (
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/caesar-tui/internal/util"
)

// DefaultFileName is the artifact name inside the caesar config directory.
const DefaultFileName = "bruteforce.log"

// ErrNoLog is returned by Load when no run has been saved yet.
var ErrNoLog = errors.New("no brute-force log saved")

// Store keeps the trace of the most recent run. Each Save replaces the
// previous artifact.
type Store struct {
	path string
}

// NewStore returns a Store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the artifact location.
func (s *Store) Path() string {
	return s.path
}

// Save atomically replaces the stored trace with text.
func (s *Store) Save(text string) error {
	if err := util.AtomicWriteFile(s.path, []byte(text), 0600); err != nil {
		return fmt.Errorf("failed to save brute-force log: %w", err)
	}
	return nil
}

// Load returns the stored trace. It returns ErrNoLog when nothing was saved.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoLog
		}
		return "", fmt.Errorf("failed to read brute-force log: %w", err)
	}
	return string(data), nil
}

// Clear removes the stored trace. Clearing an absent log is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear brute-force log: %w", err)
	}
	return nil
}
