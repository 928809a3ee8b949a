// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command line parsing for caesar.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdEncrypt
	CmdDecrypt
	CmdCrack
	CmdLink
	CmdOpen
	CmdLog
	CmdTheme
	CmdDict
	CmdConfig
	CmdShell
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdEncrypt:
		return "encrypt"
	case CmdDecrypt:
		return "decrypt"
	case CmdCrack:
		return "crack"
	case CmdLink:
		return "link"
	case CmdOpen:
		return "open"
	case CmdLog:
		return "log"
	case CmdTheme:
		return "theme"
	case CmdDict:
		return "dict"
	case CmdConfig:
		return "config"
	case CmdShell:
		return "shell"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON    bool // Output in JSON format
	Quiet   bool // Print only the result
	NoColor bool

	// Command-specific
	Text       string // message, ciphertext or link
	KeyRaw     string // value of -k/--key as typed
	KeySet     bool
	PIN        string
	PINSet     bool
	Copy       bool
	NoSave     bool
	Base       string
	QRFile     string
	QRTerm     bool
	Clear      bool
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Name is the unrecognized command word for CmdUnknown.
	Name string

	// Raw args (remaining after the command word)
	Raw []string
}

const usageText = `caesar - rotation cipher workbench

Caesar encrypts and decrypts text with a Caesar shift, protects messages
with a PIN tag, recovers unknown keys by dictionary-guided brute force and
builds shareable links.

Usage:
  caesar                         Start the TUI workbench (default)
  caesar encrypt <text> -k N     Encrypt text with key N (1-25)
  caesar decrypt <text> -k N     Decrypt text with key N
  caesar crack <text>            Recover the key by brute force
  caesar link <text> -k N        Build a shareable link
  caesar open <url>              Open a shareable link
  caesar log                     Show the last brute-force log
  caesar theme [dark|light|toggle]
                                 Show or change the theme
  caesar dict [count|check|import]
                                 Dictionary information and import
  caesar config [show|get|set|path|keys]
                                 Configuration
  caesar shell                   Interactive shell
  caesar version                 Show version information
  caesar help                    Show this help

Command Options:
  -k, --key N        Rotation key (default: cipher.default_key)
  -p, --pin P        PIN for tagging, cracking or opening a link
  --copy             Copy the result to the clipboard
  --no-save          crack: do not write the brute-force log
  --base URL         link: receiver page (default: share.base_url)
  --qr FILE          link: write a QR code PNG
  --qr-term          link: print a QR code in the terminal
  --clear            log: delete the saved log

Global Options:
  --json             Output in JSON format
  -q, --quiet        Print only the result
  --no-color         Disable colored output
  -h, --help         Show this help
  -V, --version      Show version

Examples:
  caesar encrypt "hello world" -k 5
  caesar encrypt "meet at noon" -k 7 --pin 1234
  caesar crack "mjqqt btwqi"
  caesar crack "[HASH:1509442]mjqqt btwqi" --pin 1234
  caesar link "hello world" -k 5 --pin 1234 --qr-term
  echo "mjqqt btwqi" | caesar crack --json

If no text argument is given and stdin is not a terminal, the text is read
from stdin. Use -- to pass text that starts with a dash.

Version: %s
`

// PrintUsage prints the usage information.
func PrintUsage() {
	fprintUsage(os.Stdout)
}

func fprintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fprintVersion(os.Stdout)
}

func fprintVersion(w io.Writer) {
	fmt.Fprintf(w, "caesar version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses an argument vector without the program name.
func ParseArgs(argv []string) (Command, Args) {
	// Parse global flags first
	remaining, parsedArgs := parseGlobalFlags(argv)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "encrypt", "enc", "e":
		parseCipherArgs(&parsedArgs, remaining)
		return CmdEncrypt, parsedArgs

	case "decrypt", "dec", "d":
		parseCipherArgs(&parsedArgs, remaining)
		return CmdDecrypt, parsedArgs

	case "crack", "attack", "bruteforce":
		parseCrackArgs(&parsedArgs, remaining)
		return CmdCrack, parsedArgs

	case "link", "share":
		parseLinkArgs(&parsedArgs, remaining)
		return CmdLink, parsedArgs

	case "open", "receive":
		parseOpenArgs(&parsedArgs, remaining)
		return CmdOpen, parsedArgs

	case "log":
		parseLogArgs(&parsedArgs, remaining)
		return CmdLog, parsedArgs

	case "theme":
		parseSubcommandArgs(&parsedArgs, remaining)
		return CmdTheme, parsedArgs

	case "dict", "dictionary":
		parseSubcommandArgs(&parsedArgs, remaining)
		return CmdDict, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "shell", "repl":
		return CmdShell, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Name = cmd
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts flags that apply to every command. "--" stops
// global flag parsing and is passed through.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i:]...)
			break
		}

		switch arg {
		case "--json":
			parsedArgs.JSON = true
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "--no-color":
			parsedArgs.NoColor = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// parseCipherArgs parses encrypt and decrypt arguments.
func parseCipherArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining, "copy")
	args.KeyRaw, args.KeySet = p.Lookup("k", "key")
	args.PIN, args.PINSet = p.Lookup("p", "pin")
	args.Copy = p.BoolFlag("copy")
	args.Text = JoinPositionalArgs(p, 0)
}

// parseCrackArgs parses crack arguments.
func parseCrackArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining, "copy", "no-save")
	args.PIN, args.PINSet = p.Lookup("p", "pin")
	args.Copy = p.BoolFlag("copy")
	args.NoSave = p.BoolFlag("no-save")
	args.Text = JoinPositionalArgs(p, 0)
}

// parseLinkArgs parses link arguments.
func parseLinkArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining, "copy", "qr-term")
	args.KeyRaw, args.KeySet = p.Lookup("k", "key")
	args.PIN, args.PINSet = p.Lookup("p", "pin")
	args.Base = p.Flag("base")
	args.QRFile = p.Flag("qr")
	args.QRTerm = p.BoolFlag("qr-term")
	args.Copy = p.BoolFlag("copy")
	args.Text = JoinPositionalArgs(p, 0)
}

// parseOpenArgs parses open arguments. A link is a single token.
func parseOpenArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining, "copy")
	args.PIN, args.PINSet = p.Lookup("p", "pin")
	args.Copy = p.BoolFlag("copy")
	args.Text = p.Positional(0)
}

// parseLogArgs parses log arguments.
func parseLogArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining, "clear")
	args.Clear = p.BoolFlag("clear") || p.Subcommand() == "clear"
	args.Subcommand = p.Subcommand()
}

// parseSubcommandArgs handles "<sub> [value...]" commands such as theme and
// dict.
func parseSubcommandArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Subcommand = strings.ToLower(p.Subcommand())
	args.Text = JoinPositionalArgs(p, 1)
}

// parseConfigArgs parses config command arguments.
func parseConfigArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Subcommand = strings.ToLower(p.Subcommand())
	args.ConfigKey = p.Positional(1)
	args.ConfigVal = JoinPositionalArgs(p, 2)
}
