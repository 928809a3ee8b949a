// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components of the workbench.
type Theme struct {
	Palette Palette

	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// PANEL STYLES
	// ==========================================================================

	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style
	Label        lipgloss.Style
	Output       lipgloss.Style
	Placeholder  lipgloss.Style

	// ==========================================================================
	// BRUTE-FORCE LOG STYLES
	// ==========================================================================

	LogHeader lipgloss.Style
	LogMiss   lipgloss.Style
	LogMatch  lipgloss.Style
	LogResult lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES
	// ==========================================================================

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	LinkStyle    lipgloss.Style
}

// NewTheme creates the theme named name ("dark" or "light").
func NewTheme(name string) *Theme {
	p := PaletteFor(name)
	t := &Theme{
		Palette:      p,
		IsDark:       p.Name == DarkPalette.Name,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// Name returns the palette name.
func (t *Theme) Name() string {
	return t.Palette.Name
}

// initStyles initializes all the lip gloss styles from the palette.
func (t *Theme) initStyles() {
	p := t.Palette

	t.App = lipgloss.NewStyle().
		Foreground(p.TextPrimary).
		Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Foreground(p.TextPrimary).
		Background(p.SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		Background(p.SurfaceDim)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Background(p.SurfaceDim).
		Italic(true)

	// Panels
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.PanelFocused = t.Panel.Copy().
		BorderForeground(p.Primary)

	t.PanelTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.Label = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Width(8)

	t.Output = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Brute-force log
	t.LogHeader = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	t.LogMiss = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.LogMatch = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	t.LogResult = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Background(p.SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Background(p.SurfaceDim).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Background(p.SurfaceDim)

	// Overlays
	t.Modal = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)

	t.ModalTitle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)

	// Status
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)

	t.LinkStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Underline(true)
}

// RenderSuccess renders message with the success indicator.
func (t *Theme) RenderSuccess(message string) string {
	return t.SuccessStyle.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders message with the error indicator.
func (t *Theme) RenderError(message string) string {
	return t.ErrorStyle.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders message with the warning indicator.
func (t *Theme) RenderWarning(message string) string {
	return t.WarningStyle.Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders message with the info indicator.
func (t *Theme) RenderInfo(message string) string {
	return t.InfoStyle.Render(StatusIndicators.Info + " " + message)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns, input and log side by side
)
