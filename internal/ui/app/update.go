// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/caesar-tui/internal/attemptlog"
	"github.com/jeranaias/caesar-tui/internal/recovery"
	"github.com/jeranaias/caesar-tui/internal/service"
	"github.com/jeranaias/caesar-tui/internal/share"
	"github.com/jeranaias/caesar-tui/internal/ui/styles"
)

// errBadKey is shown when the key field does not hold a number.
var errBadKey = errors.New("key must be a number from 1 to 25")

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case AttackDoneMsg:
		m.handleAttackDone(msg)
		return m, nil

	case DictReloadedMsg:
		if msg.Err != nil {
			m.setStatus(statusWarning, "Dictionary reload failed: "+msg.Err.Error())
		} else {
			m.setStatus(statusInfo, fmt.Sprintf("Dictionary reloaded (%d words).", msg.Words))
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.overlay {
		case OverlayPIN:
			return m, m.updatePINPrompt(msg)
		case OverlayQR, OverlayHelp:
			if key.Matches(msg, m.keys.Close, m.keys.Help) {
				m.overlay = OverlayNone
			}
			return m, nil
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	return m, m.updateFocused(msg)
}

// handleKey runs workbench shortcuts. It reports false for keys that belong
// to the focused field.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Encrypt):
		m.encrypt()
	case key.Matches(msg, m.keys.Decrypt):
		m.decrypt()
	case key.Matches(msg, m.keys.Attack):
		return m.attack(), true
	case key.Matches(msg, m.keys.Copy):
		m.copyLast()
	case key.Matches(msg, m.keys.Link):
		m.buildLink()
	case key.Matches(msg, m.keys.QR):
		m.showQR()
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.ViewLog):
		m.viewLog()
	case key.Matches(msg, m.keys.Help):
		m.overlay = OverlayHelp
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % fieldCount), true
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount), true
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return cmd, true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case FieldKey:
		m.key, cmd = m.key.Update(msg)
	case FieldPIN:
		m.pin, cmd = m.pin.Update(msg)
	default:
		m.message, cmd = m.message.Update(msg)
	}
	return cmd
}

// updatePINPrompt handles keys while the attack PIN prompt is open. Esc or
// an empty answer cancels the attack.
func (m *Model) updatePINPrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		return m.submitPIN(recovery.Declined)
	case tea.KeyEnter:
		return m.submitPIN(recovery.WithPIN(strings.TrimSpace(m.prompt.Value())))
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) submitPIN(pin recovery.PIN) tea.Cmd {
	text := m.attackText
	m.overlay = OverlayNone
	m.attackText = ""
	m.prompt.Reset()
	m.prompt.Blur()
	return m.startAttack(text, pin)
}

// =============================================================================
// ACTIONS
// =============================================================================

// keyValue parses the key field. Range checks are left to the service.
func (m *Model) keyValue() (int, error) {
	k, err := strconv.Atoi(strings.TrimSpace(m.key.Value()))
	if err != nil {
		return 0, errBadKey
	}
	return k, nil
}

func (m *Model) encrypt() {
	k, err := m.keyValue()
	if err != nil {
		m.fail(err)
		return
	}
	out, err := m.svc.Encrypt(m.message.Value(), k, m.pin.Value())
	if err != nil {
		m.fail(err)
		return
	}
	m.setOutput(out)
	if strings.TrimSpace(m.pin.Value()) != "" {
		m.setStatus(statusSuccess, fmt.Sprintf("Encrypted with key %d and a PIN tag.", k))
		return
	}
	m.setStatus(statusSuccess, fmt.Sprintf("Encrypted with key %d.", k))
}

func (m *Model) decrypt() {
	k, err := m.keyValue()
	if err != nil {
		m.fail(err)
		return
	}
	out, err := m.svc.Decrypt(m.message.Value(), k)
	if err != nil {
		m.fail(err)
		return
	}
	m.setOutput(out)
	m.setStatus(statusSuccess, fmt.Sprintf("Decrypted with key %d.", k))
}

// attack starts key recovery on the message, asking for the PIN first when
// the message carries a tag.
func (m *Model) attack() tea.Cmd {
	if m.busy {
		m.setStatus(statusWarning, "An attack is already running.")
		return nil
	}
	text := m.message.Value()
	if text == "" {
		m.fail(recovery.ErrMissingCiphertext)
		return nil
	}
	if m.svc.NeedsPIN(text) {
		m.attackText = text
		m.overlay = OverlayPIN
		m.prompt.Reset()
		return m.prompt.Focus()
	}
	return m.startAttack(text, recovery.NoPIN)
}

func (m *Model) startAttack(text string, pin recovery.PIN) tea.Cmd {
	m.busy = true
	m.setStatus(statusInfo, "Attacking...")
	return attackCmd(m.svc, text, pin)
}

func (m *Model) handleAttackDone(msg AttackDoneMsg) {
	m.busy = false
	if msg.Report == nil {
		m.fail(msg.Err)
		return
	}

	res := msg.Report.Result
	switch res.Outcome {
	case recovery.OutcomeCancelled:
		m.setStatus(statusWarning, "Cancelled: no PIN entered.")
		return
	case recovery.OutcomeRecovered:
		m.setOutput(res.Plaintext)
		m.key.SetValue(strconv.Itoa(res.Key))
		m.setStatus(statusSuccess, fmt.Sprintf("Key recovered: %d (word: %s).", res.Key, res.MatchedWord))
	default:
		m.setStatus(statusError, "No dictionary word found. The key could not be recovered.")
	}
	m.setLog(msg.Report.Trace)

	if msg.Err != nil {
		m.setStatus(statusWarning, msg.Err.Error())
	}
}

func (m *Model) copyLast() {
	if m.last == "" {
		m.setStatus(statusWarning, "Nothing to copy yet.")
		return
	}
	if err := m.Clipboard(m.last); err != nil {
		m.setStatus(statusError, "Copy failed: "+err.Error())
		return
	}
	m.setStatus(statusSuccess, "Copied to clipboard.")
}

func (m *Model) buildLink() {
	k, err := m.keyValue()
	if err != nil {
		m.fail(err)
		return
	}
	link, err := m.svc.Link(m.message.Value(), k, m.pin.Value(), "")
	if err != nil {
		m.fail(err)
		return
	}
	m.link = link
	m.last = link
	m.setStatus(statusSuccess, "Link created. C-y copies it, C-r shows a QR code.")
}

func (m *Model) showQR() {
	if m.link == "" {
		m.setStatus(statusWarning, "Create a link first (C-l).")
		return
	}
	qr, err := m.svc.QRTerminal(m.link)
	if err != nil {
		m.fail(err)
		return
	}
	m.qr = qr
	m.overlay = OverlayQR
}

func (m *Model) toggleTheme() {
	name, err := m.svc.ToggleTheme()
	if err != nil {
		m.fail(err)
		return
	}
	m.theme = styles.NewTheme(name)
	m.theme.SetSize(m.width, m.height)
	m.setStatus(statusInfo, "Theme: "+name)
}

func (m *Model) viewLog() {
	trace, err := m.svc.LastLog()
	if errors.Is(err, attemptlog.ErrNoLog) {
		m.setStatus(statusWarning, "No brute-force log saved yet.")
		return
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.setLog(trace)
	m.setStatus(statusInfo, "Showing the last brute-force log.")
}

func (m *Model) setOutput(out string) {
	m.output = out
	m.last = out
}

// fail shows err on the status line with a hint where one helps.
func (m *Model) fail(err error) {
	var throttled *service.ThrottleError
	switch {
	case err == nil:
		return
	case errors.As(err, &throttled):
		m.setStatus(statusError, err.Error())
	case errors.Is(err, recovery.ErrPINMismatch), errors.Is(err, share.ErrPINMismatch):
		m.setStatus(statusError, "Incorrect PIN. Attack aborted.")
	case errors.Is(err, service.ErrEmptyText), errors.Is(err, recovery.ErrMissingCiphertext):
		m.setStatus(statusError, "Type a message first.")
	default:
		m.setStatus(statusError, err.Error())
	}
}
