// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/caesar-tui/internal/cipher"
	"github.com/jeranaias/caesar-tui/internal/service"
	"github.com/jeranaias/caesar-tui/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// Field identifies the focused input.
type Field int

const (
	FieldMessage Field = iota
	FieldKey
	FieldPIN
	fieldCount
)

// Overlay is the modal drawn over the workbench, if any.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayPIN          // PIN prompt before attacking a tagged message
	OverlayQR
	OverlayHelp
)

// statusKind selects the style of the status line.
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

const (
	messageHeight = 4
	minLogHeight  = 3
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the workbench: a message editor, key and PIN fields, the output
// of the last action and the brute-force log.
type Model struct {
	svc   *service.Service
	theme *styles.Theme
	keys  KeyMap
	help  help.Model

	message textarea.Model
	key     textinput.Model
	pin     textinput.Model
	prompt  textinput.Model
	log     viewport.Model

	focus   Field
	overlay Overlay

	output string
	link   string
	qr     string
	// last is what Copy puts on the clipboard: the latest output or link.
	last string

	status     string
	statusKind statusKind

	// attackText is the ciphertext waiting for the PIN prompt.
	attackText string
	busy       bool

	width  int
	height int

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error
}

// New creates the workbench model for svc.
func New(svc *service.Service) *Model {
	msg := textarea.New()
	msg.Placeholder = "Type a message or paste ciphertext..."
	msg.ShowLineNumbers = false
	msg.CharLimit = 0
	msg.SetHeight(messageHeight)

	key := textinput.New()
	key.Placeholder = "1-25"
	key.CharLimit = 3
	key.Width = 4
	key.Prompt = ""
	key.SetValue(strconv.Itoa(cipher.NormalizeKey(svc.Config().Cipher.DefaultKey)))

	pin := newPINInput()
	pin.Placeholder = "optional"

	m := &Model{
		svc:       svc,
		theme:     styles.NewTheme(svc.Theme()),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		message:   msg,
		key:       key,
		pin:       pin,
		prompt:    newPINInput(),
		log:       viewport.New(40, minLogHeight),
		Clipboard: clipboard.WriteAll,
	}
	m.message.Focus()
	m.setLogPlaceholder()
	m.setStatus(statusInfo, "Ready. Press F1 for shortcuts.")
	return m
}

func newPINInput() textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	in.CharLimit = 32
	in.Width = 12
	return in
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Focus returns the focused field.
func (m *Model) Focus() Field {
	return m.focus
}

// Overlay returns the open overlay.
func (m *Model) Overlay() Overlay {
	return m.overlay
}

// Output returns the result of the last action.
func (m *Model) Output() string {
	return m.output
}

// Status returns the status line text.
func (m *Model) Status() string {
	return m.status
}

// Theme returns the active theme.
func (m *Model) Theme() *styles.Theme {
	return m.theme
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// setFocus moves focus to f and blurs the other fields.
func (m *Model) setFocus(f Field) tea.Cmd {
	m.focus = f
	m.message.Blur()
	m.key.Blur()
	m.pin.Blur()

	switch f {
	case FieldKey:
		return m.key.Focus()
	case FieldPIN:
		return m.pin.Focus()
	default:
		return m.message.Focus()
	}
}
