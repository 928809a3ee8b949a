// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package recovery

import (
	"strings"

	"github.com/jeranaias/caesar-tui/internal/cipher"
	"github.com/jeranaias/caesar-tui/internal/dictionary"
	"github.com/jeranaias/caesar-tui/internal/pintag"
)

// DefaultMaxTokens is how many tokens are tried before giving up.
const DefaultMaxTokens = 10

// =============================================================================
// PIN INPUT
// =============================================================================

type pinState int

const (
	pinNone pinState = iota
	pinDeclined
	pinProvided
)

// PIN is the caller's answer to the PIN gate of a tagged message.
type PIN struct {
	state pinState
	value string
}

var (
	// NoPIN means the caller has no PIN to offer.
	NoPIN = PIN{state: pinNone}
	// Declined means the user was asked for a PIN and cancelled.
	Declined = PIN{state: pinDeclined}
)

// WithPIN wraps a PIN entered by the user. An empty value is a cancellation.
func WithPIN(value string) PIN {
	if value == "" {
		return Declined
	}
	return PIN{state: pinProvided, value: value}
}

// IsDeclined reports whether the PIN represents a cancellation.
func (p PIN) IsDeclined() bool {
	return p.state == pinDeclined
}

// IsSet reports whether a PIN value was supplied.
func (p PIN) IsSet() bool {
	return p.state == pinProvided
}

// =============================================================================
// RESULT
// =============================================================================

// Outcome is the terminal state of one Recover call.
type Outcome int

const (
	// OutcomeExhausted means every token and key was tried without a hit.
	OutcomeExhausted Outcome = iota
	// OutcomeRecovered means a key was found and the message decrypted.
	OutcomeRecovered
	// OutcomeCancelled means the user declined the PIN prompt.
	OutcomeCancelled
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeRecovered:
		return "recovered"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "exhausted"
	}
}

// Attempt records one (token, key) trial.
type Attempt struct {
	TokenIndex int    // zero-based position among the searched tokens
	Token      string // token as it appears in the ciphertext
	Key        int    // key tried
	Candidate  string // lowercased decode of Token under Key
	Matched    bool   // Candidate is in the dictionary
}

// Result describes one Recover call. It is not modified after return.
type Result struct {
	Outcome Outcome

	// Set when Outcome is OutcomeRecovered.
	Key         int
	SourceToken string
	MatchedWord string
	Plaintext   string

	// Tokens are the tokens selected for the search, in order.
	Tokens []string
	// Attempts holds every trial in evaluation order.
	Attempts []Attempt
	// PINVerified is true when the message was tagged and the PIN matched.
	PINVerified bool
}

// Found reports whether a key was recovered.
func (r *Result) Found() bool {
	return r != nil && r.Outcome == OutcomeRecovered
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine performs key recovery against a fixed dictionary. An Engine keeps
// no per-call state; every Recover call builds its own trace.
type Engine struct {
	oracle    dictionary.Oracle
	maxTokens int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxTokens limits the number of tokens searched. Values below 1 keep
// the default.
func WithMaxTokens(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// New creates an Engine. It fails with ErrNoDictionary when oracle is nil or
// reports that it holds no words.
func New(oracle dictionary.Oracle, opts ...Option) (*Engine, error) {
	if oracle == nil {
		return nil, ErrNoDictionary
	}
	if sized, ok := oracle.(dictionary.Sizer); ok && sized.Len() == 0 {
		return nil, ErrNoDictionary
	}

	e := &Engine{
		oracle:    oracle,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// MaxTokens returns the token limit.
func (e *Engine) MaxTokens() int {
	return e.maxTokens
}

// NeedsPIN reports whether ciphertext carries a PIN tag.
func (e *Engine) NeedsPIN(ciphertext string) bool {
	return pintag.Extract(ciphertext).HasTag
}

// Recover searches for the key of ciphertext.
//
// Tokens are tried in order and, for each token, keys 1 through 25 in
// ascending order. The first decode found in the dictionary decides the key
// and the search stops there. Search exhaustion and PIN cancellation are
// reported through Result.Outcome with a nil error.
func (e *Engine) Recover(ciphertext string, pin PIN) (*Result, error) {
	if ciphertext == "" {
		return nil, ErrMissingCiphertext
	}

	tagged := pintag.Extract(ciphertext)
	res := &Result{}

	if tagged.HasTag {
		switch {
		case pin.IsDeclined():
			res.Outcome = OutcomeCancelled
			return res, nil
		case !pin.IsSet():
			return nil, ErrPINRequired
		case !pintag.Verify(pin.value, tagged.Tag):
			return nil, ErrPINMismatch
		}
		res.PINVerified = true
	}

	body := tagged.Body
	res.Tokens = Tokenize(body, e.maxTokens)
	res.Attempts = make([]Attempt, 0, len(res.Tokens)*cipher.MaxKey)

	for i, token := range res.Tokens {
		for key := cipher.MinKey; key <= cipher.MaxKey; key++ {
			candidate := strings.ToLower(cipher.Transform(token, key, cipher.Decrypt))
			hit := e.oracle.Contains(candidate)

			res.Attempts = append(res.Attempts, Attempt{
				TokenIndex: i,
				Token:      token,
				Key:        key,
				Candidate:  candidate,
				Matched:    hit,
			})

			if hit {
				res.Outcome = OutcomeRecovered
				res.Key = key
				res.SourceToken = token
				res.MatchedWord = candidate
				res.Plaintext = cipher.Transform(body, key, cipher.Decrypt)
				return res, nil
			}
		}
	}

	res.Outcome = OutcomeExhausted
	return res, nil
}
