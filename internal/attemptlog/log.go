// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package attemptlog renders key recovery runs as a plain-text trace and
// persists the most recent trace.
package attemptlog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jeranaias/caesar-tui/internal/recovery"
)

// Fixed lines of the trace.
const (
	HeaderLine      = "Attempting brute-force (word search strategy)..."
	PINVerifiedLine = "PIN verified successfully. Starting attack..."
	FullMessageLine = "Full decrypted message:"
	FailedLine      = "Attack failed. No matching word found in dictionary."
)

// Log is an append-only buffer of trace lines. Export drains it, so a
// trace never carries lines from an earlier run.
type Log struct {
	mu    sync.Mutex
	lines []string
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// Len returns the number of buffered lines.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// Record appends the trace of res. Attempts are grouped by token in the
// order they were evaluated. A cancelled run or a nil result adds nothing.
func (l *Log) Record(res *recovery.Result) {
	if res == nil || res.Outcome == recovery.OutcomeCancelled {
		return
	}
	lines := Render(res)

	l.mu.Lock()
	l.lines = append(l.lines, lines...)
	l.mu.Unlock()
}

// Export returns the buffered lines joined by newlines and resets the Log.
func (l *Log) Export() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := strings.Join(l.lines, "\n")
	l.lines = nil
	return out
}

// Render returns the trace lines for res without buffering them.
func Render(res *recovery.Result) []string {
	lines := []string{HeaderLine}
	if res.PINVerified {
		lines = append(lines, PINVerifiedLine)
	}

	current := -1
	for _, a := range res.Attempts {
		if a.TokenIndex != current {
			if current >= 0 {
				lines = append(lines, noMatchLine(res.Tokens[current]))
			}
			current = a.TokenIndex
			lines = append(lines, fmt.Sprintf("\n--- Checking encrypted word: \"%s\" (Word #%d) ---", a.Token, a.TokenIndex+1))
		}
		lines = append(lines, attemptLine(a))
	}

	if res.Found() {
		lines = append(lines,
			fmt.Sprintf("\n--- Key is likely: %d (based on word: %s) ---", res.Key, res.MatchedWord),
			"\n"+FullMessageLine,
			res.Plaintext,
		)
		return lines
	}

	if current >= 0 {
		lines = append(lines, noMatchLine(res.Tokens[current]))
	}
	return append(lines, "\n"+FailedLine)
}

func attemptLine(a recovery.Attempt) string {
	verdict := "(No match)"
	if a.Matched {
		verdict = "Match found!"
	}
	return fmt.Sprintf("  Attempting Key %d: \"%s\"... %s", a.Key, a.Candidate, verdict)
}

func noMatchLine(token string) string {
	return fmt.Sprintf("--- No match found for word \"%s\" ---", token)
}
