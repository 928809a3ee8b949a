// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dictionary provides the word-membership oracle used for key recovery.
//
// # Key Types
//
//   - Oracle: the Contains(word) capability the recovery engine depends on
//   - WordSet: immutable in-memory set, built from a list or a text file
//   - SQLiteStore: persistent word store backed by modernc.org/sqlite
//   - Source: file-backed set that reloads on change via fsnotify
//
// Entries are normalized on the way in (trimmed, lowercased, NFC). Lookups
// are exact, so callers lowercase their input before calling Contains.
//
// # Usage
//
//	ws := dictionary.Default()
//	ws.Contains("hello") // true
//
//	src, err := dictionary.NewSource("/usr/share/dict/words")
//	if err != nil {
//	    return err
//	}
//	src.Watch()
//	defer src.Close()
//	engine, err := recovery.New(src.Current())
package dictionary
