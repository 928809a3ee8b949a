// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styles for caesar command output.
//
// Colors are disabled for non-TTY output, when NO_COLOR is set, or with
// --no-color. FORCE_COLOR overrides TTY detection.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Light gray
			Width(16)

	// ValueStyle is used for regular values
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// CipherStyle highlights ciphertext and recovered plaintext
	CipherStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")). // Gold
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")). // Green
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Orange

	// DimStyle is used for hints and secondary information
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// PromptStyle is the shell prompt
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// =============================================================================
// HELPERS
// =============================================================================

// RenderSeparator renders a horizontal separator line. Default width is 50.
func RenderSeparator(width ...int) string {
	w := 50
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return SeparatorStyle.Render(strings.Repeat("=", w))
}

// RenderLabel renders a label with consistent width.
func RenderLabel(label string) string {
	return LabelStyle.Render(label)
}

// RenderStatus renders a status indicator for a recovery outcome or a
// generic ok/fail state.
func RenderStatus(status string) string {
	switch strings.ToLower(status) {
	case "ok", "recovered", "success":
		return SuccessStyle.Render("[OK]")
	case "fail", "failed", "exhausted":
		return ErrorStyle.Render("[FAIL]")
	case "cancelled", "warning":
		return WarningStyle.Render("[WARN]")
	default:
		return DimStyle.Render("[" + strings.ToUpper(status) + "]")
	}
}
