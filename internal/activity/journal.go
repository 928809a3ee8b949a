// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package activity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultMaxFileSize is the journal size that triggers rotation (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// DefaultFileName is the journal name inside the caesar config directory.
const DefaultFileName = "journal.log"

// =============================================================================
// LOGGER
// =============================================================================

// Logger appends redacted events to the journal file. It is safe for
// concurrent use. A nil *Logger discards everything.
type Logger struct {
	path      string
	file      *os.File
	mu        sync.Mutex
	enabled   bool
	maxSize   int64
	redactors []Redactor
	now       func() time.Time
}

// New opens (or creates) the journal at path.
func New(path string) (*Logger, error) {
	if path == "" {
		return nil, errors.New("journal path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	return &Logger{
		path:      path,
		file:      file,
		enabled:   true,
		maxSize:   DefaultMaxFileSize,
		redactors: defaultRedactors(),
		now:       time.Now,
	}, nil
}

// Log writes one event. Error text and metadata values are redacted first.
func (l *Logger) Log(event Event) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || l.file == nil {
		return nil
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}
	if event.Error != "" {
		event.Error = l.redactLocked(event.Error)
	}
	if len(event.Metadata) > 0 {
		clean := make(map[string]string, len(event.Metadata))
		for k, v := range event.Metadata {
			clean[k] = l.redactLocked(v)
		}
		event.Metadata = clean
	}

	if err := l.checkRotationLocked(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(l.file, event.ToLogLine()); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

// =============================================================================
// CONVENIENCE METHODS
// =============================================================================

// LogCipher records an encrypt or decrypt. tagged notes whether a PIN tag
// was added or stripped.
func (l *Logger) LogCipher(eventType string, key int, tagged bool) error {
	return l.Log(Event{
		EventType: eventType,
		RunID:     NewRunID(),
		Key:       key,
		Success:   true,
		Metadata:  map[string]string{"tagged": strconv.FormatBool(tagged)},
	})
}

// LogAttackStart records the start of a key recovery run.
func (l *Logger) LogAttackStart(runID string, tokens int, tagged bool) error {
	return l.Log(Event{
		EventType: EventAttackStart,
		RunID:     runID,
		Success:   true,
		Metadata: map[string]string{
			"tokens": strconv.Itoa(tokens),
			"tagged": strconv.FormatBool(tagged),
		},
	})
}

// LogAttackResult records how a key recovery run ended.
func (l *Logger) LogAttackResult(runID, outcome string, key, attempts int) error {
	return l.Log(Event{
		EventType: EventAttackResult,
		RunID:     runID,
		Key:       key,
		Success:   outcome == "recovered",
		Metadata: map[string]string{
			"outcome":  outcome,
			"attempts": strconv.Itoa(attempts),
		},
	})
}

// LogPINRejected records a failed PIN check.
func (l *Logger) LogPINRejected(runID, reason string) error {
	return l.Log(Event{
		EventType: EventPINRejected,
		RunID:     runID,
		Success:   false,
		Error:     reason,
	})
}

// LogEvent records an event with arbitrary metadata.
func (l *Logger) LogEvent(eventType string, metadata map[string]string) error {
	return l.Log(Event{
		EventType: eventType,
		RunID:     NewRunID(),
		Success:   true,
		Metadata:  metadata,
	})
}

// =============================================================================
// REDACTION
// =============================================================================

// Redact applies every redactor to input.
func (l *Logger) Redact(input string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.redactLocked(input)
}

func (l *Logger) redactLocked(input string) string {
	result := input
	for _, redactor := range l.redactors {
		result = redactor.Redact(result)
	}
	return result
}

// AddRedactor adds a custom redactor.
func (l *Logger) AddRedactor(r Redactor) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.redactors = append(l.redactors, r)
}

// =============================================================================
// FILE ROTATION
// =============================================================================

// Rotate moves the current journal aside with a timestamp suffix and starts
// a new one.
func (l *Logger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rotateLocked()
}

func (l *Logger) rotateLocked() error {
	if l.file == nil {
		return nil
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close journal for rotation: %w", err)
	}

	ext := filepath.Ext(l.path)
	base := strings.TrimSuffix(l.path, ext)
	rotatedPath := fmt.Sprintf("%s_%s%s", base, l.now().Format("20060102_150405"), ext)

	if err := os.Rename(l.path, rotatedPath); err != nil {
		l.file, _ = os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		return fmt.Errorf("failed to rotate journal: %w", err)
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		l.file = nil
		return fmt.Errorf("failed to create journal after rotation: %w", err)
	}
	l.file = file
	return nil
}

func (l *Logger) checkRotationLocked() error {
	if l.maxSize <= 0 {
		return nil
	}
	info, err := l.file.Stat()
	if err != nil {
		return nil
	}
	if info.Size() >= l.maxSize {
		return l.rotateLocked()
	}
	return nil
}

// SetMaxSize sets the size that triggers rotation. Zero disables rotation.
func (l *Logger) SetMaxSize(size int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.maxSize = size
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SetEnabled turns journaling on or off.
func (l *Logger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// IsEnabled reports whether events are written.
func (l *Logger) IsEnabled() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Path returns the journal file path.
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// Close closes the journal file. Further events are dropped.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
