// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/caesar-tui/internal/attemptlog"
	"github.com/jeranaias/caesar-tui/internal/cipher"
	"github.com/jeranaias/caesar-tui/internal/config"
	"github.com/jeranaias/caesar-tui/internal/recovery"
	"github.com/jeranaias/caesar-tui/internal/service"
	"github.com/jeranaias/caesar-tui/internal/share"
	"github.com/jeranaias/caesar-tui/internal/util"
)

func TestMain(m *testing.M) {
	ForceColorsEnabled(false)
	os.Exit(m.Run())
}

// =============================================================================
// PARSING
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		argv  []string
		want  Command
		check func(*testing.T, Args)
	}{
		{
			name: "no args starts the workbench",
			argv: nil,
			want: CmdTUI,
		},
		{
			name: "encrypt with key and pin",
			argv: []string{"encrypt", "hello", "world", "-k", "5", "--pin", "1234"},
			want: CmdEncrypt,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "hello world", a.Text)
				require.True(t, a.KeySet)
				require.Equal(t, "5", a.KeyRaw)
				require.True(t, a.PINSet)
				require.Equal(t, "1234", a.PIN)
			},
		},
		{
			name: "boolean flag before text",
			argv: []string{"decrypt", "--copy", "mjqqt", "btwqi", "--key=5"},
			want: CmdDecrypt,
			check: func(t *testing.T, a Args) {
				require.True(t, a.Copy)
				require.Equal(t, "mjqqt btwqi", a.Text)
				require.Equal(t, "5", a.KeyRaw)
			},
		},
		{
			name: "global flags anywhere",
			argv: []string{"crack", "--json", "mjqqt", "-q", "--no-save"},
			want: CmdCrack,
			check: func(t *testing.T, a Args) {
				require.True(t, a.JSON)
				require.True(t, a.Quiet)
				require.True(t, a.NoSave)
				require.Equal(t, "mjqqt", a.Text)
				require.False(t, a.PINSet)
			},
		},
		{
			name: "double dash keeps dashes in text",
			argv: []string{"encrypt", "-k", "3", "--", "-abc", "--json"},
			want: CmdEncrypt,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "-abc --json", a.Text)
				require.False(t, a.JSON)
			},
		},
		{
			name: "link options",
			argv: []string{"link", "hi", "-k", "2", "-p", "9", "--base", "https://x/r.html", "--qr", "out.png", "--qr-term"},
			want: CmdLink,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "hi", a.Text)
				require.Equal(t, "https://x/r.html", a.Base)
				require.Equal(t, "out.png", a.QRFile)
				require.True(t, a.QRTerm)
				require.Equal(t, "9", a.PIN)
			},
		},
		{
			name: "open takes one link",
			argv: []string{"open", "receiver.html#c=YQ==&k=1&h=2", "--pin", "1"},
			want: CmdOpen,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "receiver.html#c=YQ==&k=1&h=2", a.Text)
			},
		},
		{
			name: "log clear",
			argv: []string{"log", "--clear"},
			want: CmdLog,
			check: func(t *testing.T, a Args) {
				require.True(t, a.Clear)
			},
		},
		{
			name: "theme toggle",
			argv: []string{"theme", "Toggle"},
			want: CmdTheme,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "toggle", a.Subcommand)
			},
		},
		{
			name: "dict check",
			argv: []string{"dict", "check", "hello"},
			want: CmdDict,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "check", a.Subcommand)
				require.Equal(t, "hello", a.Text)
			},
		},
		{
			name: "config set",
			argv: []string{"config", "set", "share.base_url", "https://example.com/r.html"},
			want: CmdConfig,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "set", a.Subcommand)
				require.Equal(t, "share.base_url", a.ConfigKey)
				require.Equal(t, "https://example.com/r.html", a.ConfigVal)
			},
		},
		{name: "version flag", argv: []string{"-V"}, want: CmdVersion},
		{name: "help flag", argv: []string{"--help"}, want: CmdHelp},
		{name: "shell", argv: []string{"shell"}, want: CmdShell},
		{
			name: "unknown",
			argv: []string{"frobnicate"},
			want: CmdUnknown,
			check: func(t *testing.T, a Args) {
				require.Equal(t, "frobnicate", a.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			require.Equal(t, tt.want, cmd)
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"--copy", "a", "-k", "-3", "b", "--pin"}, "copy")
	require.True(t, p.BoolFlag("copy"))
	require.Equal(t, "-3", p.Flag("k", "key"))
	require.Equal(t, []string{"a", "b"}, p.PositionalFrom(0))

	pin, ok := p.Lookup("p", "pin")
	require.True(t, ok)
	require.Empty(t, pin)

	_, ok = p.Lookup("base")
	require.False(t, ok)

	n, err := p.FlagInt("k")
	require.NoError(t, err)
	require.Equal(t, -3, n)
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey(" 7 ")
	require.NoError(t, err)
	require.Equal(t, 7, k)

	_, err = ParseKey("seven")
	require.Equal(t, ExitUsageError, GetExitCode(err))

	_, err = ParseKey("")
	require.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`crack mjqqt btwqi`, []string{"crack", "mjqqt", "btwqi"}},
		{`encrypt "hello, world" -k 5`, []string{"encrypt", "hello, world", "-k", "5"}},
		{`open 'a#c=b&k=1'`, []string{"open", "a#c=b&k=1"}},
		{`say it\'s`, []string{"say", "it's"}},
		{`  `, nil},
		{`x ""`, []string{"x", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, splitLine(tt.in))
		})
	}
}

func TestCompleteCommand(t *testing.T) {
	require.Equal(t, []string{"crack", "config"}, completeCommand("c"))
	require.Nil(t, completeCommand("crack m"))
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"validation", ErrMissingArgument("text", ""), ExitUsageError},
		{"key", cipher.ValidateKey(30), ExitUsageError},
		{"missing pin", recovery.ErrPINRequired, ExitUsageError},
		{"bad link", share.ErrInvalidLink, ExitUsageError},
		{"config", config.ValidateErrors{{Field: "ui.theme", Message: "bad"}}, ExitConfigError},
		{"wrong pin", recovery.ErrPINMismatch, ExitAuthError},
		{"wrong link pin", share.ErrPINMismatch, ExitAuthError},
		{"throttled", &service.ThrottleError{}, ExitAuthError},
		{"not found", NewNotFoundError("key", "x"), ExitNotFoundError},
		{"no log", attemptlog.ErrNoLog, ExitNotFoundError},
		{"reported", &reportedError{err: NewNotFoundError("key", "x")}, ExitNotFoundError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

// =============================================================================
// RUNNER
// =============================================================================

type harness struct {
	r       *Runner
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	copied  []string
	saved   []*config.Config
	prompts int
	pin     string
	dir     string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CAESAR_HOME", dir)

	cfg := config.Default()
	cfg.Log.Path = filepath.Join(dir, "bruteforce.log")
	cfg.Log.JournalEnabled = false

	h := &harness{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, dir: dir}
	svc, err := service.New(cfg, service.WithConfigSaver(func(c *config.Config) error {
		h.saved = append(h.saved, c.Clone())
		return nil
	}))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	h.r = &Runner{
		svc:    svc,
		Stdout: h.out,
		Stderr: h.errOut,
		Prompt: func(string) (string, error) {
			h.prompts++
			return h.pin, nil
		},
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
		SaveConfig: func(c *config.Config) error {
			h.saved = append(h.saved, c.Clone())
			return nil
		},
	}
	return h
}

func (h *harness) run(argv ...string) error {
	h.out.Reset()
	h.errOut.Reset()
	cmd, args := ParseArgs(argv)
	return h.r.Run(cmd, args)
}

func decodeData(t *testing.T, raw []byte, into interface{}) *JSONResponse {
	t.Helper()
	resp := &JSONResponse{Data: into}
	require.NoError(t, json.Unmarshal(raw, resp))
	return resp
}

func TestRun_EncryptDecrypt(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("encrypt", "hello", "world", "-k", "5", "-q"))
	require.Equal(t, "mjqqt btwqi\n", h.out.String())

	require.NoError(t, h.run("encrypt", "hello world", "-k", "5", "--pin", "1234", "--json"))
	var data CipherData
	resp := decodeData(t, h.out.Bytes(), &data)
	require.True(t, resp.Success)
	require.Equal(t, "encrypt", resp.Command)
	require.Equal(t, "[HASH:1509442]mjqqt btwqi", data.Output)
	require.True(t, data.Tagged)

	require.NoError(t, h.run("decrypt", "[HASH:1509442]mjqqt btwqi", "-k", "5", "-q", "--copy"))
	require.Equal(t, "hello world\n", h.out.String())
	require.Equal(t, []string{"hello world"}, h.copied)
}

func TestRun_EncryptUsesDefaultKey(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("encrypt", "abc", "-q"))
	require.Equal(t, "def\n", h.out.String())
}

func TestRun_EncryptErrors(t *testing.T) {
	h := newHarness(t)

	err := h.run("encrypt", "hello", "-k", "26")
	var keyErr *cipher.KeyError
	require.ErrorAs(t, err, &keyErr)
	require.Equal(t, ExitUsageError, GetExitCode(err))

	err = h.run("encrypt", "-k", "5")
	require.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestRun_TextFromStdin(t *testing.T) {
	h := newHarness(t)
	h.r.Stdin = strings.NewReader("mjqqt btwqi\n")

	require.NoError(t, h.run("decrypt", "-k", "5", "-q"))
	require.Equal(t, "hello world\n", h.out.String())
}

func TestRun_CrackAndLog(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("crack", "mjqqt", "btwqi", "-q"))
	require.Equal(t, "hello world\n", h.out.String())

	require.NoError(t, h.run("log"))
	require.True(t, strings.HasPrefix(h.out.String(), attemptlog.HeaderLine))
	require.Contains(t, h.out.String(), "Attempting Key 5: \"hello\"... Match found!")

	require.NoError(t, h.run("log", "--clear"))
	err := h.run("log")
	require.ErrorIs(t, err, attemptlog.ErrNoLog)
	require.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestRun_CrackJSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("crack", "mjqqt btwqi", "--json", "--no-save"))
	var data CrackData
	decodeData(t, h.out.Bytes(), &data)
	require.Equal(t, "recovered", data.Outcome)
	require.Equal(t, 5, data.Key)
	require.Equal(t, "hello", data.MatchedWord)
	require.Equal(t, 5, data.Attempts)
	require.Empty(t, data.LogPath)
	require.NotEmpty(t, data.RunID)

	_, err := os.Stat(filepath.Join(h.dir, "bruteforce.log"))
	require.True(t, os.IsNotExist(err))
}

func TestRun_CrackExhausted(t *testing.T) {
	h := newHarness(t)

	err := h.run("crack", "qqqq zzzz")
	require.Equal(t, ExitNotFoundError, GetExitCode(err))
	require.Contains(t, h.out.String(), "could not be recovered")

	err = h.run("crack", "qqqq zzzz", "--json")
	require.Equal(t, ExitNotFoundError, GetExitCode(err))
	var data CrackData
	decodeData(t, h.out.Bytes(), &data)
	require.Equal(t, "exhausted", data.Outcome)
	require.Equal(t, 50, data.Attempts)

	h.out.Reset()
	h.r.Report(err, true)
	require.Empty(t, h.out.String(), "already reported errors are not printed again")
}

func TestRun_CrackPINPrompt(t *testing.T) {
	tagged := "[HASH:1509442]mjqqt btwqi"

	t.Run("prompted pin", func(t *testing.T) {
		h := newHarness(t)
		h.pin = "1234"
		require.NoError(t, h.run("crack", tagged, "-q"))
		require.Equal(t, "hello world\n", h.out.String())
		require.Equal(t, 1, h.prompts)
	})

	t.Run("empty answer cancels", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.run("crack", tagged))
		require.Contains(t, h.errOut.String(), "Cancelled")
		require.Empty(t, h.out.String())

		_, err := h.r.Service().LastLog()
		require.ErrorIs(t, err, attemptlog.ErrNoLog)
	})

	t.Run("flag skips prompt", func(t *testing.T) {
		h := newHarness(t)
		err := h.run("crack", tagged, "--pin", "0000")
		require.ErrorIs(t, err, recovery.ErrPINMismatch)
		require.Equal(t, ExitAuthError, GetExitCode(err))
		require.Zero(t, h.prompts)
	})

	t.Run("no terminal", func(t *testing.T) {
		h := newHarness(t)
		h.r.Prompt = func(string) (string, error) { return "", ErrNoTerminal }
		err := h.run("crack", tagged)
		require.ErrorIs(t, err, recovery.ErrPINRequired)
	})

	t.Run("untagged never prompts", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.run("crack", "mjqqt btwqi", "-q"))
		require.Zero(t, h.prompts)
	})
}

func TestRun_LinkAndOpen(t *testing.T) {
	h := newHarness(t)
	want := "receiver.html#c=bWpxcXQgYnR3cWk=&k=5&h=1509442"

	require.NoError(t, h.run("link", "hello world", "-k", "5", "--pin", "1234", "-q", "--copy"))
	require.Equal(t, want+"\n", h.out.String())
	require.Equal(t, []string{want}, h.copied)

	require.NoError(t, h.run("open", want, "--pin", "1234", "-q"))
	require.Equal(t, "hello world\n", h.out.String())

	err := h.run("open", want, "--pin", "4321")
	require.ErrorIs(t, err, share.ErrPINMismatch)
	require.Equal(t, ExitAuthError, GetExitCode(err))

	err = h.run("open", "receiver.html", "--pin", "1234")
	require.ErrorIs(t, err, share.ErrInvalidLink)
}

func TestRun_LinkRequiresPIN(t *testing.T) {
	h := newHarness(t)
	err := h.run("link", "hello", "-k", "5")
	require.ErrorIs(t, err, share.ErrMissingPIN)
	require.Equal(t, 1, h.prompts)
}

func TestRun_LinkQRFile(t *testing.T) {
	h := newHarness(t)
	out := filepath.Join(h.dir, "link.png")

	require.NoError(t, h.run("link", "hello", "-k", "3", "--pin", "7", "--qr", out, "--json"))
	var data LinkData
	decodeData(t, h.out.Bytes(), &data)
	require.Equal(t, out, data.QRFile)

	png, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestRun_Theme(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("theme"))
	require.Equal(t, "light\n", h.out.String())

	require.NoError(t, h.run("theme", "toggle", "-q"))
	require.Equal(t, "dark\n", h.out.String())
	require.Len(t, h.saved, 1)
	require.Equal(t, config.ThemeDark, h.saved[0].UI.Theme)

	err := h.run("theme", "purple")
	require.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestRun_Dict(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("dict", "--json"))
	var info service.DictionaryInfo
	decodeData(t, h.out.Bytes(), &info)
	require.Equal(t, "embedded", info.Kind)
	require.Positive(t, info.Words)

	require.NoError(t, h.run("dict", "check", "Hello"))
	require.Contains(t, h.out.String(), "is in the dictionary")

	err := h.run("dict", "check", "qqqq")
	require.Equal(t, ExitNotFoundError, GetExitCode(err))

	err = h.run("dict", "import", filepath.Join(h.dir, "words.txt"))
	require.ErrorIs(t, err, service.ErrNoWordStore)
}

func TestRun_Config(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("config", "get", "ui.theme"))
	require.Equal(t, "light\n", h.out.String())

	require.NoError(t, h.run("config", "set", "share.qr_size", "512", "-q"))
	require.Len(t, h.saved, 1)
	require.Equal(t, 512, h.saved[0].Share.QRSize)
	require.Equal(t, 512, h.r.Service().Config().Share.QRSize)

	err := h.run("config", "set", "share.qr_size", "10")
	require.Equal(t, ExitConfigError, GetExitCode(err))
	require.Len(t, h.saved, 1)
	require.Equal(t, 512, h.r.Service().Config().Share.QRSize)

	err = h.run("config", "get", "nope.value")
	require.Equal(t, ExitUsageError, GetExitCode(err))

	require.NoError(t, h.run("config", "show"))
	require.Contains(t, h.out.String(), "[share]")
}

func TestRun_ConfigKeys(t *testing.T) {
	h := newHarness(t)
	keys := config.GetAllKeys()

	require.NoError(t, h.run("config", "keys", "-q"))
	require.Equal(t, strings.Join(keys, "\n")+"\n", h.out.String())

	require.NoError(t, h.run("config", "keys"))
	lines := strings.Split(strings.TrimSuffix(h.out.String(), "\n"), "\n")
	require.Len(t, lines, len(keys))

	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	for i, k := range keys {
		require.True(t, strings.HasPrefix(lines[i], util.PadWidth(k, width)+"  "), lines[i])
		if k == "ui.theme" {
			require.True(t, strings.HasSuffix(lines[i], "light"), lines[i])
		}
	}
}

func TestRun_CrackMessagesWrap(t *testing.T) {
	h := newHarness(t)
	h.r.Width = 20

	err := h.run("crack", "qqqq zzzz")
	require.Equal(t, ExitNotFoundError, GetExitCode(err))
	require.Contains(t, h.out.String(), "found. The key could")
	require.NotContains(t, h.out.String(), "No dictionary word found.")
}

func TestRun_VersionAndUnknown(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("version", "--json"))
	var v VersionData
	decodeData(t, h.out.Bytes(), &v)
	require.Equal(t, Version, v.Version)

	err := h.run("frobnicate")
	require.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestExecLine(t *testing.T) {
	h := newHarness(t)
	h.r.inShell = true

	require.False(t, h.r.execLine(`encrypt "hello world" -k 5`, Args{Quiet: true}))
	require.Equal(t, "mjqqt btwqi\n", h.out.String())

	h.out.Reset()
	require.False(t, h.r.execLine("shell", Args{}))
	require.Contains(t, h.errOut.String(), "already in the shell")

	require.True(t, h.r.execLine("exit", Args{}))
	require.False(t, h.r.execLine("   ", Args{}))
}

func TestReportJSON(t *testing.T) {
	h := newHarness(t)
	h.r.Report(ErrMissingArgument("text", "caesar encrypt hi"), true)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &out))
	require.Equal(t, false, out["success"])
	require.Equal(t, "validation_error", out["error_type"])
	require.EqualValues(t, ExitUsageError, out["exit_code"])
}

func TestWrapText(t *testing.T) {
	require.Equal(t, "aaa bbb\nccc", WrapText("aaa bbb ccc", 7))
	require.Equal(t, "short", WrapText("short", 40))
}
