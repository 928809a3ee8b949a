// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cipher provides the rotation (Caesar) cipher used by caesar.
//
// The cipher shifts each ASCII letter within its own case by a fixed key in
// the range 1-25. Every other character, including digits, punctuation,
// whitespace and non-ASCII runes, passes through unchanged.
//
// # Key Policy
//
// The library side is lenient: Transform never fails, and a key outside
// 1-25 is replaced with DefaultKey (3). Front ends that must reject bad
// input call ValidateKey first.
//
// # Usage
//
//	ct := cipher.EncryptText("hello world", 5) // "mjqqt btwqi"
//	pt := cipher.DecryptText(ct, 5)            // "hello world"
//
//	key := cipher.KeyFromString(flagValue) // "x" -> 3
package cipher
