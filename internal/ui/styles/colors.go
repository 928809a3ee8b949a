// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors one theme renders with. The theme is chosen
// by the user, so palettes use plain colors instead of adaptive ones.
type Palette struct {
	Name string

	// Accents
	Primary   lipgloss.Color // brand, focused borders, titles
	Secondary lipgloss.Color // keys, highlighted values

	// Semantic
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	// Surfaces
	Surface    lipgloss.Color
	SurfaceDim lipgloss.Color
	Overlay    lipgloss.Color

	// Text
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color
}

// =============================================================================
// PALETTES
// =============================================================================

// DarkPalette is the Catppuccin Mocha based dark theme.
var DarkPalette = Palette{
	Name:          "dark",
	Primary:       lipgloss.Color("#A78BFA"),
	Secondary:     lipgloss.Color("#22D3EE"),
	Success:       lipgloss.Color("#4ADE80"),
	Error:         lipgloss.Color("#F87171"),
	Warning:       lipgloss.Color("#FBBF24"),
	Surface:       lipgloss.Color("#1E1E2E"),
	SurfaceDim:    lipgloss.Color("#181825"),
	Overlay:       lipgloss.Color("#45475A"),
	TextPrimary:   lipgloss.Color("#CDD6F4"),
	TextSecondary: lipgloss.Color("#A6ADC8"),
	TextMuted:     lipgloss.Color("#6C7086"),
	TextInverse:   lipgloss.Color("#1E1E2E"),
}

// LightPalette is the default light theme.
var LightPalette = Palette{
	Name:          "light",
	Primary:       lipgloss.Color("#7C3AED"),
	Secondary:     lipgloss.Color("#0891B2"),
	Success:       lipgloss.Color("#15803D"),
	Error:         lipgloss.Color("#B91C1C"),
	Warning:       lipgloss.Color("#B45309"),
	Surface:       lipgloss.Color("#FFFFFF"),
	SurfaceDim:    lipgloss.Color("#F5F5F5"),
	Overlay:       lipgloss.Color("#D4D4D4"),
	TextPrimary:   lipgloss.Color("#1F2937"),
	TextSecondary: lipgloss.Color("#4B5563"),
	TextMuted:     lipgloss.Color("#9CA3AF"),
	TextInverse:   lipgloss.Color("#FFFFFF"),
}

// PaletteFor returns the palette named name. Unknown names get the light
// palette.
func PaletteFor(name string) Palette {
	if name == DarkPalette.Name {
		return DarkPalette
	}
	return LightPalette
}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet holds ASCII indicators shown next to colored status
// text so it reads without color.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
}

// StatusIndicators are the indicators in use.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
}
