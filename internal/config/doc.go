// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for caesar.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - DictionaryConfig: word list source for key recovery
//   - ShareConfig: link base URL and QR size
//   - LogConfig: brute-force log and journal locations
//   - SecurityConfig: PIN guess throttling
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CAESAR_*)
//   - ~/.caesar/config.toml
//   - ~/.caesar/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
//	}
//
//	_ = cfg.Set("ui.theme", "dark")
//	if err := cfg.Validate(); err == nil {
//	    _ = config.Save(cfg)
//	}
package config
