// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package recovery

import "errors"

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoDictionary is returned by New when no usable oracle is supplied.
	ErrNoDictionary = errors.New("no dictionary loaded")

	// ErrMissingCiphertext is returned when Recover is called with empty input.
	ErrMissingCiphertext = errors.New("no ciphertext supplied")

	// ErrPINRequired is returned when a tagged message is attacked with NoPIN.
	ErrPINRequired = errors.New("message is PIN protected: a PIN is required")

	// ErrPINMismatch is returned when the supplied PIN does not match the tag.
	ErrPINMismatch = errors.New("incorrect PIN")
)
