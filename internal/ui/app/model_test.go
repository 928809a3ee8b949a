// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/caesar-tui/internal/attemptlog"
	"github.com/jeranaias/caesar-tui/internal/config"
	"github.com/jeranaias/caesar-tui/internal/recovery"
	"github.com/jeranaias/caesar-tui/internal/service"
)

const taggedHello = "[HASH:1509442]mjqqt btwqi" // "hello world", key 5, PIN 1234

type fixture struct {
	m      *Model
	svc    *service.Service
	copied []string
	saved  []*config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CAESAR_HOME", dir)

	cfg := config.Default()
	cfg.Log.Path = filepath.Join(dir, "bruteforce.log")
	cfg.Log.JournalEnabled = false
	cfg.Dictionary.Watch = false

	f := &fixture{}
	svc, err := service.New(cfg, service.WithConfigSaver(func(c *config.Config) error {
		f.saved = append(f.saved, c.Clone())
		return nil
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	f.svc = svc
	f.m = New(svc)
	f.m.Clipboard = func(s string) error {
		f.copied = append(f.copied, s)
		return nil
	}
	f.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return f
}

func (f *fixture) press(k tea.KeyType) tea.Cmd {
	_, cmd := f.m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func (f *fixture) typeText(s string) {
	f.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// attack presses C-b and delivers the finished run when one was started.
func (f *fixture) attack(t *testing.T) {
	t.Helper()
	cmd := f.press(tea.KeyCtrlB)
	require.NotNil(t, cmd)
	f.m.Update(cmd())
}

func TestNewModel(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, "3", f.m.key.Value())
	require.Equal(t, FieldMessage, f.m.Focus())
	require.Equal(t, OverlayNone, f.m.Overlay())
	require.Equal(t, "light", f.m.Theme().Name())
}

func TestEncryptDecrypt(t *testing.T) {
	f := newFixture(t)
	f.m.message.SetValue("hello world")
	f.m.key.SetValue("5")

	f.press(tea.KeyCtrlE)
	require.Equal(t, "mjqqt btwqi", f.m.Output())
	require.Equal(t, statusSuccess, f.m.statusKind)

	f.m.pin.SetValue("1234")
	f.press(tea.KeyCtrlE)
	require.Equal(t, taggedHello, f.m.Output())

	f.m.message.SetValue(taggedHello)
	f.press(tea.KeyCtrlD)
	require.Equal(t, "hello world", f.m.Output())
}

func TestCipherErrors(t *testing.T) {
	tests := []struct {
		name    string
		message string
		key     string
		want    string
	}{
		{"non-numeric key", "hello", "abc", "key must be a number"},
		{"key out of range", "hello", "30", "30"},
		{"empty message", "", "5", "Type a message first."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.m.message.SetValue(tt.message)
			f.m.key.SetValue(tt.key)
			f.press(tea.KeyCtrlE)
			require.Equal(t, statusError, f.m.statusKind)
			require.Contains(t, f.m.Status(), tt.want)
			require.Empty(t, f.m.Output())
		})
	}
}

func TestAttackUntagged(t *testing.T) {
	f := newFixture(t)
	f.m.message.SetValue("mjqqt btwqi")

	f.attack(t)
	require.Equal(t, "hello world", f.m.Output())
	require.Equal(t, "5", f.m.key.Value())
	require.False(t, f.m.busy)
	require.Contains(t, f.m.Status(), "Key recovered: 5")

	saved, err := f.svc.LastLog()
	require.NoError(t, err)
	require.Contains(t, saved, "Match found!")
	require.Contains(t, f.m.log.View(), "hello world")
}

func TestAttackExhausted(t *testing.T) {
	f := newFixture(t)
	f.m.message.SetValue("qqqq zzzz")

	f.attack(t)
	require.Empty(t, f.m.Output())
	require.Equal(t, statusError, f.m.statusKind)
	require.Contains(t, f.m.Status(), "could not be recovered")
}

func TestAttackTagged(t *testing.T) {
	t.Run("correct PIN", func(t *testing.T) {
		f := newFixture(t)
		f.m.message.SetValue(taggedHello)

		f.press(tea.KeyCtrlB)
		require.Equal(t, OverlayPIN, f.m.Overlay())
		require.Contains(t, f.m.View(), "PIN required")

		f.typeText("1234")
		cmd := f.press(tea.KeyEnter)
		require.Equal(t, OverlayNone, f.m.Overlay())
		require.NotNil(t, cmd)
		f.m.Update(cmd())
		require.Equal(t, "hello world", f.m.Output())
	})

	t.Run("wrong PIN", func(t *testing.T) {
		f := newFixture(t)
		f.m.message.SetValue(taggedHello)

		f.press(tea.KeyCtrlB)
		f.typeText("9999")
		f.m.Update(f.press(tea.KeyEnter)())
		require.Empty(t, f.m.Output())
		require.Equal(t, "Incorrect PIN. Attack aborted.", f.m.Status())

		_, err := f.svc.LastLog()
		require.ErrorIs(t, err, attemptlog.ErrNoLog)
	})

	t.Run("escape cancels", func(t *testing.T) {
		f := newFixture(t)
		f.m.message.SetValue(taggedHello)

		f.press(tea.KeyCtrlB)
		f.m.Update(f.press(tea.KeyEsc)())
		require.Equal(t, OverlayNone, f.m.Overlay())
		require.Equal(t, "Cancelled: no PIN entered.", f.m.Status())
		require.Empty(t, f.m.Output())
	})

	t.Run("empty PIN cancels", func(t *testing.T) {
		f := newFixture(t)
		f.m.message.SetValue(taggedHello)

		f.press(tea.KeyCtrlB)
		f.m.Update(f.press(tea.KeyEnter)())
		require.Equal(t, "Cancelled: no PIN entered.", f.m.Status())
	})
}

func TestAttackDoneWithSaveError(t *testing.T) {
	f := newFixture(t)
	f.m.message.SetValue("mjqqt btwqi")

	report, err := f.svc.Crack("mjqqt btwqi", recovery.NoPIN, service.CrackOptions{})
	require.NoError(t, err)

	f.m.Update(AttackDoneMsg{Report: report, Err: errors.New("disk full")})
	require.Equal(t, "hello world", f.m.Output())
	require.Equal(t, statusWarning, f.m.statusKind)
	require.Equal(t, "disk full", f.m.Status())
}

func TestCopy(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlY)
	require.Equal(t, statusWarning, f.m.statusKind)
	require.Empty(t, f.copied)

	f.m.message.SetValue("abc")
	f.press(tea.KeyCtrlE)
	f.press(tea.KeyCtrlY)
	require.Equal(t, []string{"def"}, f.copied)

	f.m.Clipboard = func(string) error { return errors.New("no clipboard") }
	f.press(tea.KeyCtrlY)
	require.Contains(t, f.m.Status(), "Copy failed")
}

func TestLinkAndQR(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlR)
	require.Equal(t, OverlayNone, f.m.Overlay())

	f.m.message.SetValue("hello world")
	f.m.key.SetValue("5")
	f.press(tea.KeyCtrlL)
	require.Equal(t, statusError, f.m.statusKind, "a link needs a PIN")

	f.m.pin.SetValue("1234")
	f.press(tea.KeyCtrlL)
	require.Equal(t, "receiver.html#c=bWpxcXQgYnR3cWk=&k=5&h=1509442", f.m.link)

	f.press(tea.KeyCtrlY)
	require.Equal(t, []string{f.m.link}, f.copied)

	f.press(tea.KeyCtrlR)
	require.Equal(t, OverlayQR, f.m.Overlay())
	require.NotEmpty(t, f.m.qr)
	f.press(tea.KeyEsc)
	require.Equal(t, OverlayNone, f.m.Overlay())
}

func TestToggleTheme(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlT)
	require.Equal(t, "dark", f.m.Theme().Name())
	require.Equal(t, 120, f.m.Theme().Width)
	require.Len(t, f.saved, 1)
	require.Equal(t, config.ThemeDark, f.saved[0].UI.Theme)

	f.press(tea.KeyCtrlT)
	require.Equal(t, "light", f.m.Theme().Name())
}

func TestViewLog(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyCtrlO)
	require.Equal(t, statusWarning, f.m.statusKind)

	f.m.message.SetValue("mjqqt btwqi")
	f.attack(t)
	f.m.setLogPlaceholder()

	f.press(tea.KeyCtrlO)
	require.Equal(t, statusInfo, f.m.statusKind)
	require.Contains(t, f.m.log.View(), "hello world")
}

func TestFocusCycle(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyTab)
	require.Equal(t, FieldKey, f.m.Focus())
	f.press(tea.KeyTab)
	require.Equal(t, FieldPIN, f.m.Focus())
	f.press(tea.KeyTab)
	require.Equal(t, FieldMessage, f.m.Focus())
	f.press(tea.KeyShiftTab)
	require.Equal(t, FieldPIN, f.m.Focus())

	f.typeText("42")
	require.Equal(t, "42", f.m.pin.Value())
}

func TestHelpOverlay(t *testing.T) {
	f := newFixture(t)
	f.press(tea.KeyF1)
	require.Equal(t, OverlayHelp, f.m.Overlay())
	require.Contains(t, f.m.View(), "encrypt")
	f.press(tea.KeyF1)
	require.Equal(t, OverlayNone, f.m.Overlay())
}

func TestDictReloaded(t *testing.T) {
	f := newFixture(t)
	f.m.Update(DictReloadedMsg{Words: 12})
	require.Equal(t, "Dictionary reloaded (12 words).", f.m.Status())

	f.m.Update(DictReloadedMsg{Err: errors.New("bad file")})
	require.Equal(t, statusWarning, f.m.statusKind)
}

func TestViewLayouts(t *testing.T) {
	for _, width := range []int{50, 80, 140} {
		f := newFixture(t)
		f.m.Update(tea.WindowSizeMsg{Width: width, Height: 40})
		view := f.m.View()
		require.Contains(t, view, "Brute-force log")
		require.Contains(t, view, "Message")
		require.GreaterOrEqual(t, f.m.log.Height, minLogHeight)
	}
}

func TestRenderTrace(t *testing.T) {
	f := newFixture(t)
	trace := strings.Join([]string{
		attemptlog.HeaderLine,
		`  Attempting Key 1: "lipps"... (No match)`,
		`  Attempting Key 5: "hello"... Match found!`,
		attemptlog.FullMessageLine,
		"hello world",
	}, "\n")
	out := f.m.renderTrace(trace)
	require.Contains(t, out, "lipps")
	require.Contains(t, out, "hello world")
	require.Equal(t, 5, strings.Count(out, "\n")+1)
}
