// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package recovery

import (
	"strings"
	"unicode"
)

// isDelimiter reports whether r separates tokens: any whitespace or one of
// the sentence punctuation marks , . ! ?
func isDelimiter(r rune) bool {
	switch r {
	case ',', '.', '!', '?':
		return true
	}
	return unicode.IsSpace(r)
}

// Tokenize splits text on delimiters and returns at most max tokens in
// order. Runs of delimiters never produce empty tokens, so no slot is spent
// on them. A max of zero or less returns every token.
func Tokenize(text string, max int) []string {
	tokens := strings.FieldsFunc(text, isDelimiter)
	if max > 0 && len(tokens) > max {
		tokens = tokens[:max]
	}
	return tokens
}
