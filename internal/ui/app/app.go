// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/caesar-tui/internal/service"
)

// Run starts the workbench on the alternate screen and blocks until the
// user quits. Dictionary reloads are forwarded to the running program.
func Run(svc *service.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())

	err := svc.WatchDictionary(func(words int, err error) {
		p.Send(DictReloadedMsg{Words: words, Err: err})
	})
	if err != nil {
		return fmt.Errorf("failed to watch dictionary: %w", err)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("workbench error: %w", err)
	}
	return nil
}
