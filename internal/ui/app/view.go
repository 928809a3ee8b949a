// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/caesar-tui/internal/attemptlog"
	"github.com/jeranaias/caesar-tui/internal/ui/styles"
	"github.com/jeranaias/caesar-tui/internal/util"
)

// =============================================================================
// LAYOUT
// =============================================================================

// Layout dimensions in terminal cells.
const (
	headerHeight  = 1
	footerHeight  = 2 // status line and shortcut bar
	panelChrome   = 3 // border and title
	editorExtra   = 1 // key and PIN row
	outputLines   = 3
	panelPaddingX = 2
	panelBorderX  = 2
	wideLeftRatio = 2
	minPanelWidth = 20
	defaultWidth  = 80
	defaultHeight = 24
)

// resize lays the panels out for a terminal of width x height.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)
	m.help.Width = width

	leftW, logW := m.columnWidths()
	m.message.SetWidth(max(leftW-panelBorderX-panelPaddingX, 1))

	body := height - headerHeight - footerHeight
	left := m.editorHeight() + m.outputHeight()
	logH := body - panelChrome
	if m.theme.GetLayoutMode() != styles.LayoutWide {
		logH = body - left - panelChrome
	}
	m.log.Width = max(logW-panelBorderX-panelPaddingX, 1)
	m.log.Height = max(logH, minLogHeight)
}

// columnWidths returns the outer widths of the left column and the log
// panel. Outside wide mode the log sits below the left column.
func (m *Model) columnWidths() (int, int) {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	if m.theme.GetLayoutMode() != styles.LayoutWide {
		return w, w
	}
	left := max(w/wideLeftRatio, minPanelWidth)
	return left, w - left
}

func (m *Model) editorHeight() int {
	return messageHeight + editorExtra + panelChrome
}

func (m *Model) outputHeight() int {
	return outputLines + panelChrome
}

// =============================================================================
// LOG
// =============================================================================

func (m *Model) setLogPlaceholder() {
	m.log.SetContent(m.theme.Placeholder.Render("Run an attack (C-b) to see the brute-force log."))
}

// setLog shows a brute-force trace with match and miss lines styled.
func (m *Model) setLog(trace string) {
	if trace == "" {
		m.setLogPlaceholder()
		return
	}
	m.log.SetContent(m.renderTrace(trace))
	m.log.GotoBottom()
}

func (m *Model) renderTrace(trace string) string {
	wrap := lipgloss.NewStyle().Width(m.log.Width)
	lines := strings.Split(trace, "\n")
	out := make([]string, 0, len(lines))
	result := false

	for _, line := range lines {
		var style lipgloss.Style
		switch {
		case result:
			style = m.theme.LogResult
		case strings.HasSuffix(line, "Match found!"):
			style = m.theme.LogMatch
		case strings.HasSuffix(line, "(No match)"):
			style = m.theme.LogMiss
		case strings.HasPrefix(line, "---"),
			line == attemptlog.HeaderLine,
			line == attemptlog.PINVerifiedLine:
			style = m.theme.LogHeader
		case line == attemptlog.FailedLine:
			style = m.theme.ErrorStyle
		case line == attemptlog.FullMessageLine:
			style = m.theme.LogHeader
			result = true
		default:
			out = append(out, wrap.Render(line))
			continue
		}
		out = append(out, style.Inherit(wrap).Render(line))
	}
	return strings.Join(out, "\n")
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		m.resize(defaultWidth, defaultHeight)
	}

	switch m.overlay {
	case OverlayPIN:
		return m.renderOverlay("PIN required",
			"This message is PIN protected.\nEnter PIN (Esc or empty to cancel):\n\n"+m.prompt.View())
	case OverlayQR:
		return m.renderOverlay("Share link", m.qr+"\n"+m.theme.Placeholder.Render("Esc to close"))
	case OverlayHelp:
		m.help.ShowAll = true
		view := m.renderOverlay("Shortcuts", m.help.View(m.keys))
		m.help.ShowAll = false
		return view
	}

	leftW, logW := m.columnWidths()
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderEditor(leftW),
		m.renderOutput(leftW),
	)
	logPanel := m.renderPanel("Brute-force log", m.log.View(), logW, false)

	var body string
	if m.theme.GetLayoutMode() == styles.LayoutWide {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, logPanel)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, left, logPanel)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatus(),
		m.renderShortcuts(),
	)
}

func (m *Model) renderHeader() string {
	t := m.theme
	title := t.HeaderTitle.Render("caesar") + t.HeaderSubtitle.Render("  rotation cipher workbench")

	info := m.svc.Dictionary()
	dict := t.HeaderSubtitle.Render(fmt.Sprintf("dict: %s, %d words  theme: %s", info.Kind, info.Words, t.Name()))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(dict) - panelPaddingX
	if gap < 1 {
		return t.Header.Width(m.width).Render(title)
	}
	return t.Header.Width(m.width).Render(title + strings.Repeat(" ", gap) + dict)
}

func (m *Model) renderEditor(width int) string {
	row := m.fieldLabel("Key", FieldKey) + m.key.View() + "   " + m.fieldLabel("PIN", FieldPIN) + m.pin.View()
	content := lipgloss.JoinVertical(lipgloss.Left, m.message.View(), row)
	return m.renderPanel("Message", content, width, m.focus == FieldMessage)
}

// fieldLabel highlights the label of the focused field.
func (m *Model) fieldLabel(label string, f Field) string {
	if m.focus == f {
		return m.theme.Label.Copy().Inherit(m.theme.PanelTitle).Render(label)
	}
	return m.theme.Label.Render(label)
}

func (m *Model) renderOutput(width int) string {
	t := m.theme
	inner := width - panelBorderX - panelPaddingX

	var lines []string
	if m.output == "" {
		lines = append(lines, t.Placeholder.Render("Encrypt, decrypt or attack to see output."))
	} else {
		out := lipgloss.NewStyle().Width(inner).MaxHeight(outputLines - 1).Render(m.output)
		lines = append(lines, t.Output.Render(out))
	}
	if m.link != "" {
		lines = append(lines, t.Label.Render("Link")+t.LinkStyle.Render(util.TruncateWidth(m.link, inner-t.Label.GetWidth())))
	}
	return m.renderPanel("Output", strings.Join(lines, "\n"), width, false)
}

func (m *Model) renderPanel(title, content string, width int, focused bool) string {
	style := m.theme.Panel
	if focused {
		style = m.theme.PanelFocused
	}
	return style.Width(width - panelBorderX).Render(
		m.theme.PanelTitle.Render(title) + "\n" + content,
	)
}

func (m *Model) renderOverlay(title, content string) string {
	box := m.theme.Modal.Render(m.theme.ModalTitle.Render(title) + "\n" + content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderStatus() string {
	t := m.theme
	text := util.TruncateWidth(m.status, max(m.width-8, 1))
	switch m.statusKind {
	case statusSuccess:
		return t.RenderSuccess(text)
	case statusWarning:
		return t.RenderWarning(text)
	case statusError:
		return t.RenderError(text)
	default:
		return t.RenderInfo(text)
	}
}

func (m *Model) renderShortcuts() string {
	t := m.theme
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, t.ShortcutKey.Render(h.Key)+t.ShortcutDesc.Render(" "+h.Desc))
	}
	bar := strings.Join(parts, t.ShortcutDesc.Render("  "))
	return t.StatusBar.Width(m.width).MaxWidth(m.width).Render(bar)
}
