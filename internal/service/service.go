// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package service ties the cipher packages to configuration, persistence
// and the activity journal. The CLI, the shell and the TUI all go through
// a Service.
package service

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/caesar-tui/internal/activity"
	"github.com/jeranaias/caesar-tui/internal/attemptlog"
	"github.com/jeranaias/caesar-tui/internal/cipher"
	"github.com/jeranaias/caesar-tui/internal/config"
	"github.com/jeranaias/caesar-tui/internal/dictionary"
	"github.com/jeranaias/caesar-tui/internal/pintag"
	"github.com/jeranaias/caesar-tui/internal/recovery"
	"github.com/jeranaias/caesar-tui/internal/share"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyText is returned when an operation gets no input text.
	ErrEmptyText = errors.New("no text supplied")

	// ErrNoWordStore is returned by ImportWords when no SQLite store is set.
	ErrNoWordStore = errors.New("no SQLite word store configured (set dictionary.sqlite_path)")
)

// =============================================================================
// SERVICE
// =============================================================================

// Service runs caesar operations against one configuration.
type Service struct {
	cfg      *config.Config
	saveCfg  func(*config.Config) error
	logs     *attemptlog.Store
	journal  *activity.Logger
	throttle *PINThrottle

	mu     sync.Mutex
	source *dictionary.Source
	store  *dictionary.SQLiteStore
	static *dictionary.WordSet
}

// Option configures a Service.
type Option func(*Service)

// WithJournal replaces the journal opened from the configuration.
func WithJournal(l *activity.Logger) Option {
	return func(s *Service) { s.journal = l }
}

// WithConfigSaver replaces config.Save for theme persistence.
func WithConfigSaver(fn func(*config.Config) error) Option {
	return func(s *Service) { s.saveCfg = fn }
}

// WithThrottle replaces the PIN throttle built from the configuration.
func WithThrottle(t *PINThrottle) Option {
	return func(s *Service) { s.throttle = t }
}

// New opens the dictionary, the brute-force log store and the journal
// described by cfg. A nil cfg uses config.Default.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Service{
		cfg:     cfg,
		saveCfg: config.Save,
		logs:    attemptlog.NewStore(cfg.BruteForceLogPath()),
		throttle: NewPINThrottle(cfg.Security.PINMaxFailures,
			time.Duration(cfg.Security.PINCooldownSecs)*time.Second),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.openDictionary(); err != nil {
		return nil, err
	}

	if s.journal == nil && cfg.Log.JournalEnabled {
		j, err := activity.New(cfg.JournalPath())
		if err != nil {
			// The journal is best effort.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			s.journal = j
		}
	}

	return s, nil
}

func (s *Service) openDictionary() error {
	switch {
	case s.cfg.Dictionary.SQLitePath != "":
		store, err := dictionary.OpenSQLite(s.cfg.Dictionary.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open word store: %w", err)
		}
		s.store = store
	case s.cfg.Dictionary.Path != "":
		src, err := dictionary.NewSource(s.cfg.Dictionary.Path)
		if err != nil {
			return fmt.Errorf("failed to load dictionary %s: %w", s.cfg.Dictionary.Path, err)
		}
		s.source = src
	default:
		s.static = dictionary.Default()
	}
	return nil
}

// Config returns the configuration in use.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Journal returns the activity journal, which may be nil.
func (s *Service) Journal() *activity.Logger {
	return s.journal
}

// LogStore returns the brute-force log store.
func (s *Service) LogStore() *attemptlog.Store {
	return s.logs
}

// Close stops the dictionary watcher and closes open files.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.source != nil {
		errs = append(errs, s.source.Close())
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	errs = append(errs, s.journal.Close())
	return errors.Join(errs...)
}

// =============================================================================
// CIPHER OPERATIONS
// =============================================================================

// Encrypt rotates text by key and, when pin is non-empty after trimming,
// prefixes the PIN tag. Keys outside 1..25 are rejected.
func (s *Service) Encrypt(text string, key int, pin string) (string, error) {
	if text == "" {
		return "", ErrEmptyText
	}
	if err := cipher.ValidateKey(key); err != nil {
		return "", err
	}

	pin = strings.TrimSpace(pin)
	out := pintag.Protect(cipher.EncryptText(text, key), pin)
	s.journal.LogCipher(activity.EventEncrypt, key, pin != "")
	return out, nil
}

// Decrypt strips any PIN tag and rotates the body back by key. The tag is
// not checked.
func (s *Service) Decrypt(text string, key int) (string, error) {
	if text == "" {
		return "", ErrEmptyText
	}
	if err := cipher.ValidateKey(key); err != nil {
		return "", err
	}

	tagged := pintag.Extract(text)
	out := cipher.DecryptText(tagged.Body, key)
	s.journal.LogCipher(activity.EventDecrypt, key, tagged.HasTag)
	return out, nil
}

// =============================================================================
// KEY RECOVERY
// =============================================================================

// CrackOptions controls a Crack call.
type CrackOptions struct {
	// Save writes the trace to the brute-force log store.
	Save bool
}

// CrackReport is the outcome of a Crack call.
type CrackReport struct {
	RunID  string
	Result *recovery.Result
	Trace  string
}

// NeedsPIN reports whether text carries a PIN tag.
func (s *Service) NeedsPIN(text string) bool {
	return pintag.Extract(text).HasTag
}

// Crack recovers the key of text using a snapshot of the dictionary. Wrong
// PINs spend throttle budget; while the throttle is closed, PIN-tagged input
// is refused with a *ThrottleError before the PIN is checked.
func (s *Service) Crack(text string, pin recovery.PIN, opts CrackOptions) (*CrackReport, error) {
	oracle, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	engine, err := recovery.New(oracle, recovery.WithMaxTokens(s.cfg.Dictionary.MaxTokens))
	if err != nil {
		return nil, err
	}

	tagged := engine.NeedsPIN(text)
	if tagged && pin.IsSet() {
		if err := s.throttle.Check(); err != nil {
			return nil, err
		}
	}

	runID := activity.NewRunID()
	if text != "" {
		tokens := recovery.Tokenize(pintag.Extract(text).Body, engine.MaxTokens())
		s.journal.LogAttackStart(runID, len(tokens), tagged)
	}

	res, err := engine.Recover(text, pin)
	if err != nil {
		if errors.Is(err, recovery.ErrPINMismatch) {
			s.throttle.Failure()
			s.journal.LogPINRejected(runID, err.Error())
		}
		return nil, err
	}

	report := &CrackReport{RunID: runID, Result: res}
	s.journal.LogAttackResult(runID, res.Outcome.String(), res.Key, len(res.Attempts))

	if res.Outcome == recovery.OutcomeCancelled {
		return report, nil
	}

	trace := attemptlog.New()
	trace.Record(res)
	report.Trace = trace.Export()

	if opts.Save {
		if err := s.logs.Save(report.Trace); err != nil {
			return report, err
		}
	}
	return report, nil
}

// snapshot returns an oracle that stays fixed for one attack.
func (s *Service) snapshot() (dictionary.Oracle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.store != nil:
		return s.store.Snapshot()
	case s.source != nil:
		return s.source.Current(), nil
	default:
		return s.static, nil
	}
}

// LastLog returns the saved trace of the most recent attack.
func (s *Service) LastLog() (string, error) {
	return s.logs.Load()
}

// ClearLog removes the saved trace.
func (s *Service) ClearLog() error {
	return s.logs.Clear()
}

// =============================================================================
// SHARING
// =============================================================================

// Link builds a shareable link. An empty base uses the configured base URL.
func (s *Service) Link(plaintext string, key int, pin, base string) (string, error) {
	if base == "" {
		base = s.cfg.Share.BaseURL
	}
	link, err := share.BuildLink(base, plaintext, key, pin)
	if err != nil {
		return "", err
	}
	s.journal.LogEvent(activity.EventLink, map[string]string{"base": base, "key": strconv.Itoa(key)})
	return link, nil
}

// OpenLink parses a share link and decrypts it with pin. Wrong PINs are
// throttled the same way as in Crack.
func (s *Service) OpenLink(link, pin string) (string, error) {
	p, err := share.ParseLink(link)
	if err != nil {
		return "", err
	}
	if err := s.throttle.Check(); err != nil {
		return "", err
	}

	msg, err := p.Open(pin)
	if err != nil {
		if errors.Is(err, share.ErrPINMismatch) {
			s.throttle.Failure()
			s.journal.LogPINRejected(activity.NewRunID(), "share link: "+err.Error())
		}
		return "", err
	}
	return msg, nil
}

// QRCode renders link as a PNG of the configured size.
func (s *Service) QRCode(link string) ([]byte, error) {
	return share.QRCode(link, s.cfg.Share.QRSize)
}

// QRTerminal renders link as terminal text.
func (s *Service) QRTerminal(link string) (string, error) {
	return share.QRTerminal(link)
}

// =============================================================================
// THEME
// =============================================================================

// Theme returns the configured theme name.
func (s *Service) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.UI.Theme
}

// SetTheme persists theme ("dark" or "light").
func (s *Service) SetTheme(theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme != config.ThemeDark && theme != config.ThemeLight {
		return config.ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light", theme),
		}
	}

	s.mu.Lock()
	prev := s.cfg.UI.Theme
	s.cfg.UI.Theme = theme
	err := s.saveCfg(s.cfg)
	if err != nil {
		s.cfg.UI.Theme = prev
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	s.journal.LogEvent(activity.EventTheme, map[string]string{"theme": theme})
	return nil
}

// ToggleTheme switches between dark and light and returns the new theme.
func (s *Service) ToggleTheme() (string, error) {
	next := config.ThemeDark
	if s.Theme() == config.ThemeDark {
		next = config.ThemeLight
	}
	if err := s.SetTheme(next); err != nil {
		return "", err
	}
	return next, nil
}

// =============================================================================
// DICTIONARY
// =============================================================================

// DictionaryInfo describes the dictionary in use.
type DictionaryInfo struct {
	Kind  string `json:"kind"` // "embedded", "file" or "sqlite"
	Path  string `json:"path,omitempty"`
	Words int    `json:"words"`
}

// Dictionary returns information about the active dictionary.
func (s *Service) Dictionary() DictionaryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.store != nil:
		return DictionaryInfo{Kind: "sqlite", Path: s.store.Path(), Words: s.store.Len()}
	case s.source != nil:
		return DictionaryInfo{Kind: "file", Path: s.source.Path(), Words: s.source.Len()}
	default:
		return DictionaryInfo{Kind: "embedded", Words: s.static.Len()}
	}
}

// HasWord reports whether word, after normalization, is in the dictionary.
func (s *Service) HasWord(word string) (bool, error) {
	oracle, err := s.snapshot()
	if err != nil {
		return false, err
	}
	return oracle.Contains(dictionary.Normalize(word)), nil
}

// ImportWords adds the words of a list file to the SQLite store.
func (s *Service) ImportWords(path string) (int, error) {
	s.mu.Lock()
	store := s.store
	s.mu.Unlock()
	if store == nil {
		return 0, ErrNoWordStore
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	added, err := store.ImportFrom(f)
	if err != nil {
		return added, err
	}
	s.journal.LogEvent(activity.EventDictImport, map[string]string{
		"file":  path,
		"added": fmt.Sprintf("%d", added),
	})
	return added, nil
}

// WatchDictionary reloads a file dictionary when it changes. onReload, if
// not nil, is called after every reload attempt. It is a no-op for the
// embedded list and the SQLite store, or when watching is disabled.
func (s *Service) WatchDictionary(onReload func(words int, err error)) error {
	s.mu.Lock()
	src := s.source
	s.mu.Unlock()
	if src == nil || !s.cfg.Dictionary.Watch {
		return nil
	}

	if onReload != nil {
		src.OnReload(func(ws *dictionary.WordSet, err error) {
			onReload(ws.Len(), err)
		})
	}
	return src.Watch()
}
