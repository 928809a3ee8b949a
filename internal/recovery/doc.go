// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package recovery recovers the key of a rotation-cipher message by
// dictionary-guided brute force.
//
// # Search Order
//
// The message body is split into tokens on whitespace and , . ! ? and the
// first ten tokens are searched in order. For each token every key from 1 to
// 25 is tried in ascending order; the first lowercased decode present in the
// dictionary wins and the whole body is decrypted with that key. The order
// is part of the contract: when several tokens or keys would validate, the
// earliest token and then the smallest key is chosen.
//
// # PIN Gate
//
// Messages carrying a "[HASH:n]" tag are only attacked after the PIN has
// been checked. The PIN is an explicit argument:
//
//	res, err := engine.Recover(text, recovery.WithPIN(pin))
//	res, err := engine.Recover(text, recovery.Declined) // user cancelled
//	res, err := engine.Recover(text, recovery.NoPIN)    // untagged input
//
// A wrong PIN fails with ErrPINMismatch before any token is examined.
//
// # Results
//
//	switch {
//	case errors.Is(err, recovery.ErrPINMismatch):
//	    // gate failure
//	case res.Outcome == recovery.OutcomeCancelled:
//	    // user declined the prompt
//	case res.Found():
//	    fmt.Println(res.Key, res.Plaintext)
//	default:
//	    // search exhausted
//	}
package recovery
