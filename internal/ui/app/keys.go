// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the workbench shortcuts. Letters always go to the focused
// field, so every action sits on a control or function key.
type KeyMap struct {
	Encrypt  key.Binding
	Decrypt  key.Binding
	Attack   key.Binding
	Copy     key.Binding
	Link     key.Binding
	QR       key.Binding
	Theme    key.Binding
	ViewLog  key.Binding
	Next     key.Binding
	Prev     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Close    key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Encrypt: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "encrypt"),
		),
		Decrypt: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "decrypt"),
		),
		Attack: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "attack"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy"),
		),
		Link: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "link"),
		),
		QR: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "QR code"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		ViewLog: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "view log"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous field"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll log up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll log down"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the shortcut bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Encrypt, k.Decrypt, k.Attack, k.Copy, k.Link, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Encrypt, k.Decrypt, k.Attack, k.Copy},
		{k.Link, k.QR, k.Theme, k.ViewLog},
		{k.Next, k.Prev, k.PageUp, k.PageDown},
		{k.Help, k.Close, k.Quit},
	}
}
