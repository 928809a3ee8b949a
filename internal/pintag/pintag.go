// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pintag binds a PIN fingerprint to ciphertext as a "[HASH:n]" prefix.
//
// The fingerprint is a 32-bit rolling hash. It is a lightweight check that
// the reader knows the PIN, not an authentication primitive: collisions are
// easy to find and the tag is sent in the clear.
package pintag

import (
	"regexp"
	"strconv"
	"unicode/utf16"
)

const (
	tagPrefix = "[HASH:"
	tagSuffix = "]"
)

// tagPattern only matches at offset 0.
var tagPattern = regexp.MustCompile(`^\[HASH:([^\]]+)\]`)

// Tagged is the result of splitting a message into tag and body.
type Tagged struct {
	// Tag is the raw text captured between "[HASH:" and "]".
	Tag string
	// HasTag is false when the message carries no tag at offset 0.
	HasTag bool
	// Body is the message with the tag removed.
	Body string
}

// Fingerprint computes h = h*31 + unit over the UTF-16 code units of pin,
// wrapping at 32 bits and read as a signed value.
func Fingerprint(pin string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(pin)) {
		h = h*31 + int32(unit)
	}
	return h
}

// FingerprintString returns the decimal form of Fingerprint(pin).
func FingerprintString(pin string) string {
	return strconv.FormatInt(int64(Fingerprint(pin)), 10)
}

// Embed prepends the tag for fingerprint to body.
func Embed(body string, fingerprint int32) string {
	return tagPrefix + strconv.FormatInt(int64(fingerprint), 10) + tagSuffix + body
}

// Protect embeds the fingerprint of pin when pin is non-empty and returns
// body unchanged otherwise.
func Protect(body, pin string) string {
	if pin == "" {
		return body
	}
	return Embed(body, Fingerprint(pin))
}

// Extract splits a leading tag from text. Tags anywhere but offset 0 are
// treated as ordinary body text.
func Extract(text string) Tagged {
	m := tagPattern.FindStringSubmatch(text)
	if m == nil {
		return Tagged{Body: text}
	}
	return Tagged{
		Tag:    m[1],
		HasTag: true,
		Body:   text[len(m[0]):],
	}
}

// Verify reports whether pin matches tag. The comparison is on the decimal
// string, so "-0" or "+5" never match even though they parse.
func Verify(pin, tag string) bool {
	return FingerprintString(pin) == tag
}
