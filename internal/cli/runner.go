// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// runner.go - Command dispatch shared by the command line and the shell.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/caesar-tui/internal/config"
	"github.com/jeranaias/caesar-tui/internal/service"
)

// Runner executes parsed commands against a Service.
type Runner struct {
	svc *service.Service

	Stdout io.Writer
	Stderr io.Writer

	// Stdin supplies text when no text argument is given. Nil disables
	// reading from stdin.
	Stdin io.Reader

	// Prompt asks for a PIN. Nil disables prompting.
	Prompt PromptFunc

	// Clipboard copies text for --copy.
	Clipboard func(string) error

	// SaveConfig persists "config set".
	SaveConfig func(*config.Config) error

	// Width wraps status messages. Zero uses the terminal width.
	Width int

	inShell bool
}

// NewRunner creates a Runner wired to the process's standard streams.
// Stdin is only read for text when it is not a terminal.
func NewRunner(svc *service.Service) *Runner {
	r := &Runner{
		svc:        svc,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Prompt:     PromptHidden,
		Clipboard:  clipboard.WriteAll,
		SaveConfig: config.Save,
	}
	if !IsTTY() {
		r.Stdin = os.Stdin
	}
	return r
}

// Service returns the service commands run against.
func (r *Runner) Service() *service.Service {
	return r.svc
}

// Run executes cmd. Errors are returned undisplayed; use r.Report.
func (r *Runner) Run(cmd Command, args Args) error {
	if args.NoColor {
		ForceColorsEnabled(false)
	}

	switch cmd {
	case CmdEncrypt:
		return r.handleEncrypt(args)
	case CmdDecrypt:
		return r.handleDecrypt(args)
	case CmdCrack:
		return r.handleCrack(args)
	case CmdLink:
		return r.handleLink(args)
	case CmdOpen:
		return r.handleOpen(args)
	case CmdLog:
		return r.handleLog(args)
	case CmdTheme:
		return r.handleTheme(args)
	case CmdDict:
		return r.handleDict(args)
	case CmdConfig:
		return r.handleConfig(args)
	case CmdShell:
		if r.inShell {
			return errors.New("already in the shell")
		}
		return r.RunShell(args)
	case CmdVersion:
		return r.handleVersion(args)
	case CmdHelp:
		fprintUsage(r.Stdout)
		return nil
	case CmdTUI:
		return errors.New("the workbench cannot be started from here")
	default:
		return NewValidationErrorWithExample("command", args.Name, "unknown command", "caesar help")
	}
}

// Report displays err the way the command line does. JSON errors go to
// Stdout, human errors to Stderr.
func (r *Runner) Report(err error, jsonMode bool) {
	var done *reportedError
	if errors.As(err, &done) {
		return
	}
	fdisplayError(r.Stdout, r.Stderr, err, jsonMode)
}

// reportedError marks an error whose details were already written as part
// of the command output. It only carries the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// =============================================================================
// SHARED HANDLER HELPERS
// =============================================================================

// inputText returns the text argument, falling back to Stdin.
func (r *Runner) inputText(args Args, what, example string) (string, error) {
	if args.Text != "" {
		return args.Text, nil
	}
	if r.Stdin != nil {
		text, err := readText(r.Stdin)
		if err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
	}
	return "", ErrMissingArgument(what, example)
}

// key returns the -k value, or the configured default key.
func (r *Runner) key(args Args) (int, error) {
	if !args.KeySet {
		return r.svc.Config().Cipher.DefaultKey, nil
	}
	return ParseKey(args.KeyRaw)
}

// promptPIN asks for a PIN. It reports ok=false when no prompt is possible.
func (r *Runner) promptPIN(prompt string) (pin string, ok bool, err error) {
	if r.Prompt == nil {
		return "", false, nil
	}
	pin, err = r.Prompt(prompt)
	if errors.Is(err, ErrNoTerminal) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return pin, true, nil
}

// copyOut copies text when --copy is set and reports whether it worked.
// Clipboard problems are warnings.
func (r *Runner) copyOut(args Args, text string) bool {
	if !args.Copy || r.Clipboard == nil {
		return false
	}
	if err := r.Clipboard(text); err != nil {
		r.warnf("could not copy to clipboard: %v", err)
		return false
	}
	if !args.JSON && !args.Quiet {
		fmt.Fprintln(r.Stderr, DimStyle.Render("Copied to clipboard."))
	}
	return true
}

func (r *Runner) warnf(format string, a ...interface{}) {
	fmt.Fprintf(r.Stderr, "Warning: "+format+"\n", a...)
}

func (r *Runner) printJSON(command string, data interface{}) error {
	return NewJSONResponse(command, data).Write(r.Stdout)
}

func (r *Runner) field(label string, value interface{}) {
	fmt.Fprintf(r.Stdout, "%s %v\n", RenderLabel(label), value)
}

// wrap fits a message to the output width.
func (r *Runner) wrap(text string) string {
	return WrapText(text, r.Width)
}

func (r *Runner) title(text string) {
	fmt.Fprintln(r.Stdout, TitleStyle.Render(text))
	fmt.Fprintln(r.Stdout, RenderSeparator(lipgloss.Width(text)))
}

// =============================================================================
// VERSION
// =============================================================================

func (r *Runner) handleVersion(args Args) error {
	if args.JSON {
		return r.printJSON("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		})
	}
	if args.Quiet {
		fmt.Fprintln(r.Stdout, Version)
		return nil
	}
	fprintVersion(r.Stdout)
	return nil
}

// shortPath replaces the home directory prefix with ~.
func shortPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}
