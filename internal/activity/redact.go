// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package activity

import "regexp"

// Redactor removes sensitive data from journal text.
type Redactor interface {
	Redact(input string) string
	Name() string
}

// PatternRedactor replaces regex matches with a fixed string.
type PatternRedactor struct {
	name    string
	pattern *regexp.Regexp
	replace string
}

// NewPatternRedactor creates a pattern-based redactor. replace may use
// regexp expansion such as ${1}.
func NewPatternRedactor(name string, pattern *regexp.Regexp, replace string) *PatternRedactor {
	return &PatternRedactor{
		name:    name,
		pattern: pattern,
		replace: replace,
	}
}

// Redact replaces matches with the replacement string.
func (r *PatternRedactor) Redact(input string) string {
	return r.pattern.ReplaceAllString(input, r.replace)
}

// Name returns the redactor name.
func (r *PatternRedactor) Name() string {
	return r.name
}

var secretPatterns = []struct {
	name    string
	pattern *regexp.Regexp
	replace string
}{
	{"PIN", regexp.MustCompile(`(?i)\b(pin)\s*[=:]\s*\S+`), "${1}=[REDACTED]"},
	{"Tag", regexp.MustCompile(`\[HASH:[^\]]+\]`), "[HASH:REDACTED]"},
	{"Fingerprint", regexp.MustCompile(`([#&]h=)[-0-9]+`), "${1}REDACTED"},
	{"Ciphertext", regexp.MustCompile(`([#&]c=)[A-Za-z0-9+/=%_-]+`), "${1}REDACTED"},
}

func defaultRedactors() []Redactor {
	redactors := make([]Redactor, 0, len(secretPatterns))
	for _, sp := range secretPatterns {
		redactors = append(redactors, NewPatternRedactor(sp.name, sp.pattern, sp.replace))
	}
	return redactors
}

// RedactSecrets applies the built-in redactors to input.
func RedactSecrets(input string) string {
	for _, r := range defaultRedactors() {
		input = r.Redact(input)
	}
	return input
}
