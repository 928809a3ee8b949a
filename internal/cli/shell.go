// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shell.go - Interactive caesar shell with line editing and history.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/peterh/liner"

	"github.com/jeranaias/caesar-tui/internal/config"
)

// shellCommands are offered for tab completion.
var shellCommands = []string{
	"encrypt", "decrypt", "crack", "link", "open", "log",
	"theme", "dict", "config", "version", "help", "exit", "quit",
}

// =============================================================================
// LINE EDITOR
// =============================================================================

// lineEditor wraps liner with history persistence.
type lineEditor struct {
	line        *liner.State
	historyFile string
}

func newLineEditor(historyFile string) *lineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCommand)

	e := &lineEditor{line: line, historyFile: historyFile}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}
	return e
}

// readLine reads one line and adds it to the history.
func (e *lineEditor) readLine(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

// readPIN reads a PIN without echo. Ctrl+C cancels.
func (e *lineEditor) readPIN(prompt string) (string, error) {
	pin, err := e.line.PasswordPrompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pin), nil
}

// close saves history with owner-only permissions and restores the
// terminal.
func (e *lineEditor) close() {
	if e.historyFile != "" {
		if dir, err := config.ConfigDir(); err == nil {
			os.MkdirAll(dir, 0700)
		}
		if f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			e.line.WriteHistory(f)
			f.Close()
		}
	}
	e.line.Close()
}

func completeCommand(line string) []string {
	if strings.ContainsRune(line, ' ') {
		return nil
	}
	var out []string
	for _, c := range shellCommands {
		if strings.HasPrefix(c, strings.ToLower(line)) {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// REPL
// =============================================================================

// RunShell runs the interactive shell until exit, Ctrl+C or Ctrl+D. Each
// line is parsed like a command line without the program name. Global
// flags given to "caesar shell" apply to every line.
func (r *Runner) RunShell(args Args) error {
	if !CanPrompt() {
		return errors.New("the shell needs an interactive terminal")
	}

	editor := newLineEditor(config.HistoryPath())
	defer editor.close()

	if err := r.svc.WatchDictionary(func(words int, err error) {
		if err != nil {
			r.warnf("dictionary reload failed: %v", err)
		}
	}); err != nil {
		r.warnf("cannot watch dictionary: %v", err)
	}

	shell := *r
	shell.inShell = true
	shell.Stdin = nil
	shell.Prompt = editor.readPIN

	fmt.Fprintln(r.Stdout, TitleStyle.Render("caesar shell")+" "+DimStyle.Render("(type help, or exit to quit)"))

	for {
		input, err := editor.readLine(PromptStyle.Render("caesar> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.Stdout)
				return nil
			}
			return err
		}

		if done := shell.execLine(input, args); done {
			return nil
		}
	}
}

// execLine runs one shell line and reports whether the shell should exit.
func (r *Runner) execLine(input string, global Args) bool {
	words := splitLine(input)
	if len(words) == 0 {
		return false
	}
	switch strings.ToLower(words[0]) {
	case "exit", "quit", ":q":
		return true
	}

	cmd, args := ParseArgs(words)
	args.JSON = args.JSON || global.JSON
	args.Quiet = args.Quiet || global.Quiet
	args.NoColor = args.NoColor || global.NoColor

	if err := r.Run(cmd, args); err != nil {
		r.Report(err, args.JSON)
	}
	return false
}

// splitLine splits a shell line into words. Single and double quotes group
// words; a backslash escapes the next character outside single quotes.
func splitLine(line string) []string {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, c := range line {
		switch {
		case escaped:
			current.WriteRune(c)
			escaped = false
		case c == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				current.WriteRune(c)
			}
		case c == '"' || c == '\'':
			quote = c
			inWord = true
		case unicode.IsSpace(c):
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(c)
			inWord = true
		}
	}
	if inWord {
		words = append(words, current.String())
	}
	return words
}
