// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the caesar packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync and rename
//
// Display Width:
//   - TruncateWidth: cut a string to a column budget with an ellipsis
//   - PadWidth: right-pad a string to a column budget
//   - StringWidth: display columns of a string
//
// # Usage
//
//	// Persist the brute-force log without leaving a partial file behind
//	err := util.AtomicWriteFile(path, []byte(text), 0600)
//
//	// Fit a candidate decode into a fixed TUI column
//	cell := util.TruncateWidth(candidate, 24)
package util
