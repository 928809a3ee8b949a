// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Shared argument parsing for caesar commands.

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits command arguments into flags and positionals.
// It handles:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: declared up front, they never consume a value
//   - "--": everything after it is positional
//
// Message text often follows a boolean flag ("--copy hello"), so unknown
// flags take a value only when one is present.
type ArgParser struct {
	flags      map[string]string // string flags
	boolFlags  map[string]bool   // boolean flags
	positional []string          // positional arguments including subcommand
	raw        []string
}

// NewArgParser parses raw. Names in bools are treated as boolean flags.
//
// Example:
//
//	p := NewArgParser([]string{"--copy", "mjqqt", "btwqi", "-k", "5"}, "copy")
//	p.BoolFlag("copy")     // true
//	p.Flag("k")            // "5"
//	p.Positional(1)        // "btwqi"
func NewArgParser(raw []string, bools ...string) *ArgParser {
	parser := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
		raw:       raw,
	}

	isBool := make(map[string]bool, len(bools))
	for _, b := range bools {
		isBool[b] = true
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			parser.positional = append(parser.positional, raw[i+1:]...)
			break
		}

		if !isFlag(arg) {
			parser.positional = append(parser.positional, arg)
			continue
		}

		// --flag=value
		if name, value, ok := strings.Cut(arg, "="); ok {
			name = strings.TrimLeft(name, "-")
			if isBool[name] {
				parser.boolFlags[name] = value == "true" || value == "1"
			} else {
				parser.flags[name] = value
			}
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if isBool[name] {
			parser.boolFlags[name] = true
			continue
		}

		if i+1 < len(raw) && !isFlag(raw[i+1]) {
			parser.flags[name] = raw[i+1]
			i++
		} else {
			parser.boolFlags[name] = true
		}
	}

	return parser
}

// isFlag reports whether arg looks like a flag. Negative numbers and a
// lone "-" are values.
func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	if _, err := strconv.Atoi(arg); err == nil {
		return false
	}
	return true
}

// Subcommand returns the first positional argument.
func (p *ArgParser) Subcommand() string {
	return p.Positional(0)
}

// Flag returns the value of the first of names that was given as a string
// flag, or "".
func (p *ArgParser) Flag(names ...string) string {
	v, _ := p.Lookup(names...)
	return v
}

// Lookup is like Flag but also reports whether any of names was given. A
// string flag given without a value is reported as present with "".
func (p *ArgParser) Lookup(names ...string) (string, bool) {
	for _, name := range names {
		name = strings.TrimLeft(name, "-")
		if val, ok := p.flags[name]; ok {
			return val, true
		}
		if _, ok := p.boolFlags[name]; ok {
			return "", true
		}
	}
	return "", false
}

// FlagInt returns the flag value as an integer.
func (p *ArgParser) FlagInt(names ...string) (int, error) {
	val, ok := p.Lookup(names...)
	if !ok {
		return 0, fmt.Errorf("flag %s not found", names[0])
	}
	return strconv.Atoi(val)
}

// BoolFlag returns the value of a boolean flag.
func (p *ArgParser) BoolFlag(names ...string) bool {
	for _, name := range names {
		if p.boolFlags[strings.TrimLeft(name, "-")] {
			return true
		}
	}
	return false
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns the positional arguments starting at index.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return []string{}
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// HasFlag returns true if the flag exists (either as string or bool flag).
func (p *ArgParser) HasFlag(name string) bool {
	_, ok := p.Lookup(name)
	return ok
}

// Raw returns the original raw arguments.
func (p *ArgParser) Raw() []string {
	return p.raw
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ParseKey parses a rotation key typed by the user.
func ParseKey(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingArgument("key", "caesar encrypt \"hello\" -k 3")
	}
	key, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidFormat("key", s, "an integer between 1 and 25")
	}
	return key, nil
}

// JoinPositionalArgs joins positional arguments from startIndex with single
// spaces. Messages given as several words become one text.
func JoinPositionalArgs(parser *ArgParser, startIndex int) string {
	return strings.Join(parser.PositionalFrom(startIndex), " ")
}
