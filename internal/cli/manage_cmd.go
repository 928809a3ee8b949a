// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// manage_cmd.go - log, theme, dict and config commands.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/caesar-tui/internal/config"
	"github.com/jeranaias/caesar-tui/internal/util"
)

// =============================================================================
// LOG
// =============================================================================

func (r *Runner) handleLog(args Args) error {
	store := r.svc.LogStore()

	if args.Clear {
		if err := r.svc.ClearLog(); err != nil {
			return NewCommandError("log", "clear", "could not delete the log", err)
		}
		if args.JSON {
			return r.printJSON("log", LogData{Path: store.Path(), Cleared: true})
		}
		if !args.Quiet {
			fmt.Fprintln(r.Stdout, SuccessStyle.Render("Brute-force log cleared."))
		}
		return nil
	}

	content, err := r.svc.LastLog()
	if err != nil {
		return err
	}
	if args.JSON {
		return r.printJSON("log", LogData{Path: store.Path(), Content: content})
	}
	fmt.Fprintln(r.Stdout, content)
	return nil
}

// =============================================================================
// THEME
// =============================================================================

func (r *Runner) handleTheme(args Args) error {
	var (
		theme   string
		changed bool
		err     error
	)

	switch args.Subcommand {
	case "", "show":
		theme = r.svc.Theme()
	case "toggle":
		theme, err = r.svc.ToggleTheme()
		changed = true
	case config.ThemeDark, config.ThemeLight:
		theme = args.Subcommand
		err = r.svc.SetTheme(theme)
		changed = true
	default:
		return ErrUnknownSubcommand("theme", args.Subcommand, "show", "dark", "light", "toggle")
	}
	if err != nil {
		return err
	}

	switch {
	case args.JSON:
		return r.printJSON("theme", ThemeData{Theme: theme, Changed: changed})
	case args.Quiet || !changed:
		fmt.Fprintln(r.Stdout, theme)
	default:
		fmt.Fprintf(r.Stdout, "%s %s\n", SuccessStyle.Render("Theme set to"), theme)
	}
	return nil
}

// =============================================================================
// DICTIONARY
// =============================================================================

func (r *Runner) handleDict(args Args) error {
	switch args.Subcommand {
	case "", "count", "info":
		info := r.svc.Dictionary()
		switch {
		case args.JSON:
			return r.printJSON("dict", info)
		case args.Quiet:
			fmt.Fprintln(r.Stdout, info.Words)
			return nil
		}
		r.field("Source:", info.Kind)
		if info.Path != "" {
			r.field("Path:", shortPath(info.Path))
		}
		r.field("Words:", info.Words)
		return nil

	case "check":
		word := strings.TrimSpace(args.Text)
		if word == "" {
			return ErrMissingArgument("word", "caesar dict check hello")
		}
		known, err := r.svc.HasWord(word)
		if err != nil {
			return err
		}
		switch {
		case args.JSON:
			return r.printJSON("dict check", DictCheckData{Word: word, Known: known})
		case known:
			fmt.Fprintf(r.Stdout, "%s %q is in the dictionary\n", RenderStatus("ok"), word)
			return nil
		default:
			fmt.Fprintf(r.Stdout, "%s %q is not in the dictionary\n", RenderStatus("fail"), word)
			return &reportedError{err: NewNotFoundError("word", word)}
		}

	case "import":
		path := strings.TrimSpace(args.Text)
		if path == "" {
			return ErrMissingArgument("file", "caesar dict import words.txt")
		}
		added, err := r.svc.ImportWords(path)
		if err != nil {
			return err
		}
		data := DictImportData{File: path, Added: added, Words: r.svc.Dictionary().Words}
		if args.JSON {
			return r.printJSON("dict import", data)
		}
		if !args.Quiet {
			fmt.Fprintf(r.Stdout, "%s Imported %d new words (%d total)\n", RenderStatus("ok"), data.Added, data.Words)
		}
		return nil

	default:
		return ErrUnknownSubcommand("dict", args.Subcommand, "count", "check", "import")
	}
}

// =============================================================================
// CONFIG
// =============================================================================

func (r *Runner) handleConfig(args Args) error {
	cfg := r.svc.Config()

	switch args.Subcommand {
	case "", "show":
		if args.JSON {
			return r.printJSON("config show", cfg)
		}
		return toml.NewEncoder(r.Stdout).Encode(cfg)

	case "get":
		if args.ConfigKey == "" {
			return ErrMissingArgument("key", "caesar config get ui.theme")
		}
		value, err := cfg.Get(args.ConfigKey)
		if err != nil {
			return NewValidationErrorWithExample("key", args.ConfigKey, err.Error(),
				strings.Join(config.GetAllKeys(), ", "))
		}
		if args.JSON {
			return r.printJSON("config get", ConfigValueData{Key: args.ConfigKey, Value: value})
		}
		fmt.Fprintln(r.Stdout, value)
		return nil

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			return ErrMissingArgument("key and value", "caesar config set share.qr_size 512")
		}
		return r.configSet(args)

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		_, statErr := os.Stat(path)
		exists := statErr == nil
		if args.JSON {
			return r.printJSON("config path", ConfigPathData{Path: path, Exists: exists})
		}
		fmt.Fprintln(r.Stdout, path)
		if !exists && !args.Quiet {
			fmt.Fprintln(r.Stderr, DimStyle.Render("(not created yet; defaults are in use)"))
		}
		return nil

	case "keys":
		keys := config.GetAllKeys()
		if args.Quiet {
			for _, k := range keys {
				fmt.Fprintln(r.Stdout, k)
			}
			return nil
		}
		width := 0
		for _, k := range keys {
			width = max(width, util.StringWidth(k))
		}
		for _, k := range keys {
			value, _ := cfg.Get(k)
			fmt.Fprintf(r.Stdout, "%s  %s\n", util.PadWidth(k, width), DimStyle.Render(fmt.Sprint(value)))
		}
		return nil

	default:
		return ErrUnknownSubcommand("config", args.Subcommand, "show", "get", "set", "path", "keys")
	}
}

// configSet changes one key on a copy of the configuration, validates and
// saves it, and only then installs it.
func (r *Runner) configSet(args Args) error {
	cfg := r.svc.Config()
	next := cfg.Clone()

	if err := next.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return NewValidationErrorWithExample(args.ConfigKey, args.ConfigVal, err.Error(),
			"caesar config keys")
	}
	next.Migrate()
	if err := next.Validate(); err != nil {
		return err
	}
	if err := r.SaveConfig(next); err != nil {
		return NewCommandError("config", "set", "could not save configuration", err)
	}
	*cfg = *next
	config.SetGlobal(cfg)

	value, _ := cfg.Get(args.ConfigKey)
	switch {
	case args.JSON:
		return r.printJSON("config set", ConfigValueData{Key: args.ConfigKey, Value: value})
	case !args.Quiet:
		fmt.Fprintf(r.Stdout, "%s %s = %v\n", RenderStatus("ok"), args.ConfigKey, value)
	}
	return nil
}
