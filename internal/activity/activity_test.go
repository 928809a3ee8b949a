// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package activity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// =============================================================================
// EVENT FORMAT
// =============================================================================

func TestEvent_ToLogLine(t *testing.T) {
	e := Event{
		Timestamp: time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC),
		EventType: EventAttackResult,
		RunID:     "run-1",
		Key:       5,
		Success:   true,
		Metadata:  map[string]string{"outcome": "recovered", "attempts": "5"},
	}
	require.Equal(t,
		"2025-03-09 14:05:07 | ATTACK_RESULT | run-1 | 5 | SUCCESS | attempts=5 outcome=recovered",
		e.ToLogLine())
}

func TestEvent_ToLogLineStatus(t *testing.T) {
	e := Event{EventType: EventPINRejected, RunID: "r"}
	require.Contains(t, e.ToLogLine(), "| FAILURE |")

	e.Error = "incorrect PIN"
	require.Contains(t, e.ToLogLine(), "| ERROR: incorrect PIN |")
	require.Contains(t, e.ToLogLine(), "| r |  |", "zero key is left blank")
}

func TestEvent_ToJSON(t *testing.T) {
	e := Event{EventType: EventTheme, RunID: "x", Success: true}
	out, err := e.ToJSON()
	require.NoError(t, err)
	require.Contains(t, out, `"event_type":"THEME"`)
	require.NotContains(t, out, `"key"`)
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	require.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

// =============================================================================
// REDACTION
// =============================================================================

func TestRedactSecrets(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"pin assignment", "open with pin=1234 now", "open with pin=[REDACTED] now"},
		{"pin colon", "PIN: 9999", "PIN=[REDACTED]"},
		{"tag", "[HASH:1509442]mjqqt", "[HASH:REDACTED]mjqqt"},
		{"negative tag", "x [HASH:-42] y", "x [HASH:REDACTED] y"},
		{"link fingerprint", "r.html#k=5&h=-1910022912", "r.html#k=5&h=REDACTED"},
		{"link ciphertext", "r.html#c=aGk=&k=5&h=-1910022912", "r.html#c=REDACTED&k=5&h=REDACTED"},
		{"ciphertext after key", "r.html#k=5&c=bWpx+cXQ/&h=1", "r.html#k=5&c=REDACTED&h=REDACTED"},
		{"untouched", "spin the wheel", "spin the wheel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RedactSecrets(tt.input))
		})
	}
}

// =============================================================================
// LOGGER
// =============================================================================

func TestLogger_WritesRedactedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".caesar", DefaultFileName)
	l, err := New(path)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.LogCipher(EventEncrypt, 5, true))
	require.NoError(t, l.LogEvent(EventLink, map[string]string{"url": "receiver.html#c=aGk=&k=5&h=1509442"}))
	require.NoError(t, l.LogPINRejected("run-9", "bad pin=0000"))

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "| ENCRYPT |")
	require.Contains(t, lines[0], "| 5 | SUCCESS | tagged=true")
	require.Contains(t, lines[1], "h=REDACTED")
	require.Contains(t, lines[1], "c=REDACTED")
	require.NotContains(t, lines[1], "1509442")
	require.NotContains(t, lines[1], "aGk=")
	require.Contains(t, lines[2], "ERROR: bad pin=[REDACTED]")
}

func TestLogger_AttackEventsShareRunID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")
	l, err := New(path)
	require.NoError(t, err)
	defer l.Close()

	run := NewRunID()
	require.NoError(t, l.LogAttackStart(run, 2, false))
	require.NoError(t, l.LogAttackResult(run, "exhausted", 0, 50))

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	for _, line := range lines {
		require.Contains(t, line, "| "+run+" |")
	}
	require.Contains(t, lines[1], "FAILURE | attempts=50 outcome=exhausted")
}

func TestNew_EmptyPath(t *testing.T) {
	l, err := New("")
	require.Error(t, err)
	require.Nil(t, l)
}

func TestLogger_Disabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")
	l, err := New(path)
	require.NoError(t, err)
	defer l.Close()

	l.SetEnabled(false)
	require.False(t, l.IsEnabled())
	require.NoError(t, l.LogEvent(EventTheme, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Zero(t, info.Size())
}

func TestLogger_NilSafe(t *testing.T) {
	var l *Logger
	require.NoError(t, l.LogEvent(EventTheme, nil))
	require.False(t, l.IsEnabled())
	require.NoError(t, l.Close())
}

func TestLogger_MetadataNotMutated(t *testing.T) {
	l, err := New(filepath.Join(t.TempDir(), "journal.log"))
	require.NoError(t, err)
	defer l.Close()

	meta := map[string]string{"input": "[HASH:1]abc"}
	require.NoError(t, l.LogEvent(EventDecrypt, meta))
	require.Equal(t, "[HASH:1]abc", meta["input"])
}

func TestLogger_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.log")
	l, err := New(path)
	require.NoError(t, err)
	defer l.Close()

	l.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	l.SetMaxSize(10)

	require.NoError(t, l.LogEvent(EventTheme, map[string]string{"theme": "dark"}))
	require.NoError(t, l.LogEvent(EventTheme, map[string]string{"theme": "light"}))

	rotated := filepath.Join(dir, "journal_20250102_030405.log")
	old := readLines(t, rotated)
	require.Len(t, old, 1)
	require.Contains(t, old[0], "theme=dark")

	current := readLines(t, path)
	require.Len(t, current, 1)
	require.Contains(t, current[0], "theme=light")
}

func TestLogger_ClosedDropsEvents(t *testing.T) {
	l, err := New(filepath.Join(t.TempDir(), "journal.log"))
	require.NoError(t, err)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	require.NoError(t, l.LogEvent(EventTheme, nil))
}
