// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/caesar-tui/internal/activity"
	"github.com/jeranaias/caesar-tui/internal/attemptlog"
	"github.com/jeranaias/caesar-tui/internal/cipher"
	"github.com/jeranaias/caesar-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete caesar configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Cipher     CipherConfig     `toml:"cipher" json:"cipher"`
	Dictionary DictionaryConfig `toml:"dictionary" json:"dictionary"`
	Share      ShareConfig      `toml:"share" json:"share"`
	Log        LogConfig        `toml:"log" json:"log"`
	Security   SecurityConfig   `toml:"security" json:"security"`
	UI         UIConfig         `toml:"ui" json:"ui"`
}

// CipherConfig holds cipher defaults.
type CipherConfig struct {
	// DefaultKey is the key shown when the workbench opens.
	DefaultKey int `toml:"default_key" json:"default_key"`
}

// DictionaryConfig selects the word list used for key recovery.
type DictionaryConfig struct {
	// Path is a word list file, one word per line. Empty uses the embedded list.
	Path string `toml:"path" json:"path"`

	// SQLitePath is an optional SQLite word store. It takes precedence over Path.
	SQLitePath string `toml:"sqlite_path" json:"sqlite_path"`

	// Watch reloads Path when the file changes.
	Watch bool `toml:"watch" json:"watch"`

	// MaxTokens is how many ciphertext words are searched.
	MaxTokens int `toml:"max_tokens" json:"max_tokens"`
}

// ShareConfig controls shareable links.
type ShareConfig struct {
	BaseURL string `toml:"base_url" json:"base_url"`
	QRSize  int    `toml:"qr_size" json:"qr_size"`
}

// LogConfig controls the brute-force log artifact and the journal.
type LogConfig struct {
	// Path of the last brute-force log. Empty uses ~/.caesar/bruteforce.log.
	Path string `toml:"path" json:"path"`

	JournalEnabled bool `toml:"journal_enabled" json:"journal_enabled"`

	// JournalPath of the operation journal. Empty uses ~/.caesar/journal.log.
	JournalPath string `toml:"journal_path" json:"journal_path"`
}

// SecurityConfig throttles PIN guessing.
type SecurityConfig struct {
	// PINMaxFailures is the burst of wrong PINs allowed before cooling down.
	PINMaxFailures int `toml:"pin_max_failures" json:"pin_max_failures"`

	// PINCooldownSecs is the time for one failure to be forgiven.
	PINCooldownSecs int `toml:"pin_cooldown_secs" json:"pin_cooldown_secs"`
}

// UIConfig contains user interface settings.
type UIConfig struct {
	Theme string `toml:"theme" json:"theme"` // "dark" or "light"
}

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Cipher: CipherConfig{
			DefaultKey: cipher.DefaultKey,
		},

		Dictionary: DictionaryConfig{
			Path:       "",
			SQLitePath: "",
			Watch:      true,
			MaxTokens:  10,
		},

		Share: ShareConfig{
			BaseURL: "receiver.html",
			QRSize:  256,
		},

		Log: LogConfig{
			Path:           "",
			JournalEnabled: true,
			JournalPath:    "",
		},

		Security: SecurityConfig{
			PINMaxFailures:  5,
			PINCooldownSecs: 30,
		},

		UI: UIConfig{
			Theme: ThemeLight,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the caesar configuration directory. CAESAR_HOME
// overrides the default ~/.caesar.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CAESAR_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".caesar"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// BruteForceLogPath returns the configured brute-force log path.
func (c *Config) BruteForceLogPath() string {
	if c.Log.Path != "" {
		return c.Log.Path
	}
	return configFile(attemptlog.DefaultFileName)
}

// JournalPath returns the configured journal path.
func (c *Config) JournalPath() string {
	if c.Log.JournalPath != "" {
		return c.Log.JournalPath
	}
	return configFile(activity.DefaultFileName)
}

// configFile places name in ConfigDir, or in ./.caesar when the home
// directory is unknown.
func configFile(name string) string {
	dir, err := ConfigDir()
	if err != nil {
		return filepath.Join(".caesar", name)
	}
	return filepath.Join(dir, name)
}

// HistoryPath returns the shell history file.
func HistoryPath() string {
	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.caesar/config.toml, falling back to config.json and then to
// defaults. Environment overrides are applied last. When a file exists but
// cannot be decoded, the defaults are returned together with the error.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg := Default()
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg := Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.Migrate()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults restores zero values a file may have blanked.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Cipher.DefaultKey == 0 {
		cfg.Cipher.DefaultKey = defaults.Cipher.DefaultKey
	}
	if cfg.Dictionary.MaxTokens == 0 {
		cfg.Dictionary.MaxTokens = defaults.Dictionary.MaxTokens
	}
	if cfg.Share.BaseURL == "" {
		cfg.Share.BaseURL = defaults.Share.BaseURL
	}
	if cfg.Share.QRSize == 0 {
		cfg.Share.QRSize = defaults.Share.QRSize
	}
	if cfg.Security.PINMaxFailures == 0 {
		cfg.Security.PINMaxFailures = defaults.Security.PINMaxFailures
	}
	if cfg.Security.PINCooldownSecs == 0 {
		cfg.Security.PINCooldownSecs = defaults.Security.PINCooldownSecs
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to ~/.caesar/config.toml.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path with a header comment. The file is owner-only.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# caesar configuration file")
	fmt.Fprintln(&buf, "# Generated by caesar - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and returns ValidateErrors listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if !cipher.ValidKey(c.Cipher.DefaultKey) {
		errs = append(errs, ValidationError{
			Field:   "cipher.default_key",
			Message: fmt.Sprintf("must be between %d and %d, got %d", cipher.MinKey, cipher.MaxKey, c.Cipher.DefaultKey),
		})
	}

	if c.Dictionary.MaxTokens < 1 || c.Dictionary.MaxTokens > 1000 {
		errs = append(errs, ValidationError{
			Field:   "dictionary.max_tokens",
			Message: fmt.Sprintf("must be between 1 and 1000, got %d", c.Dictionary.MaxTokens),
		})
	}

	if c.Dictionary.Path != "" && c.Dictionary.SQLitePath != "" &&
		filepath.Clean(c.Dictionary.Path) == filepath.Clean(c.Dictionary.SQLitePath) {
		errs = append(errs, ValidationError{
			Field:   "dictionary.sqlite_path",
			Message: "must differ from dictionary.path",
		})
	}

	if strings.TrimSpace(c.Share.BaseURL) == "" {
		errs = append(errs, ValidationError{
			Field:   "share.base_url",
			Message: "cannot be empty",
		})
	} else if strings.Contains(c.Share.BaseURL, "#") {
		errs = append(errs, ValidationError{
			Field:   "share.base_url",
			Message: "must not contain a fragment",
		})
	}

	if c.Share.QRSize < 64 || c.Share.QRSize > 4096 {
		errs = append(errs, ValidationError{
			Field:   "share.qr_size",
			Message: fmt.Sprintf("must be between 64 and 4096 pixels, got %d", c.Share.QRSize),
		})
	}

	if c.Security.PINMaxFailures < 1 {
		errs = append(errs, ValidationError{
			Field:   "security.pin_max_failures",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Security.PINMaxFailures),
		})
	}
	if c.Security.PINCooldownSecs < 0 || c.Security.PINCooldownSecs > 86400 {
		errs = append(errs, ValidationError{
			Field:   "security.pin_cooldown_secs",
			Message: fmt.Sprintf("must be between 0 and 86400, got %d", c.Security.PINCooldownSecs),
		})
	}

	switch c.UI.Theme {
	case ThemeDark, ThemeLight:
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Migrate normalizes values written by hand or by older versions.
func (c *Config) Migrate() {
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	// Early builds stored the dark theme as "dark-mode", the CSS class name.
	if c.UI.Theme == "dark-mode" {
		c.UI.Theme = ThemeDark
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CAESAR_DICTIONARY: overrides dictionary.path
//   - CAESAR_DICTIONARY_DB: overrides dictionary.sqlite_path
//   - CAESAR_THEME: overrides ui.theme
//   - CAESAR_SHARE_BASE: overrides share.base_url
//   - CAESAR_LOG_PATH: overrides log.path
//   - CAESAR_NO_JOURNAL: set to "1" or "true" to disable the journal
func (c *Config) ApplyEnvOverrides() {
	if path := os.Getenv("CAESAR_DICTIONARY"); path != "" {
		c.Dictionary.Path = path
	}
	if db := os.Getenv("CAESAR_DICTIONARY_DB"); db != "" {
		c.Dictionary.SQLitePath = db
	}
	if theme := os.Getenv("CAESAR_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if base := os.Getenv("CAESAR_SHARE_BASE"); base != "" {
		c.Share.BaseURL = base
	}
	if path := os.Getenv("CAESAR_LOG_PATH"); path != "" {
		c.Log.Path = path
	}
	if off := os.Getenv("CAESAR_NO_JOURNAL"); off != "" {
		if off == "1" || strings.EqualFold(off, "true") {
			c.Log.JournalEnabled = false
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g. "ui.theme").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a configuration value using dot notation. String values are
// converted to the field type. The result is not validated; call Validate.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("'%s' is a section, not a value", key)
			}
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts snake_case or kebab-case to a Go field name.
// Matching is case-insensitive, so "qr_size" finds QRSize.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strings.TrimSpace(strVal), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			switch strings.ToLower(strings.TrimSpace(strVal)) {
			case "1", "true", "yes", "on":
				field.SetBool(true)
			case "0", "false", "no", "off":
				field.SetBool(false)
			default:
				return fmt.Errorf("invalid boolean value: %q", strVal)
			}
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && field.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"cipher.default_key",
		"dictionary.path",
		"dictionary.sqlite_path",
		"dictionary.watch",
		"dictionary.max_tokens",
		"share.base_url",
		"share.qr_size",
		"log.path",
		"log.journal_enabled",
		"log.journal_path",
		"security.pin_max_failures",
		"security.pin_cooldown_secs",
		"ui.theme",
	}
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the configuration as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first use.
// Load problems are reported on stderr and defaults are used.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the global configuration.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the global configuration so the next Global
// call loads again.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
