// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/caesar-tui/internal/recovery"
	"github.com/jeranaias/caesar-tui/internal/service"
)

// =============================================================================
// MESSAGES
// =============================================================================

// AttackDoneMsg carries the outcome of a background key recovery run.
// Report may be set together with Err when only saving the log failed.
type AttackDoneMsg struct {
	Report *service.CrackReport
	Err    error
}

// DictReloadedMsg is sent after the watched word list was reloaded.
type DictReloadedMsg struct {
	Words int
	Err   error
}

// =============================================================================
// COMMANDS
// =============================================================================

// attackCmd runs Crack off the UI goroutine.
func attackCmd(svc *service.Service, text string, pin recovery.PIN) tea.Cmd {
	return func() tea.Msg {
		report, err := svc.Crack(text, pin, service.CrackOptions{Save: true})
		return AttackDoneMsg{Report: report, Err: err}
	}
}
