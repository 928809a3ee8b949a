// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package share builds and opens PIN-guarded shareable links and renders
// them as QR codes.
//
// A link carries everything in its fragment, which browsers never send to
// a server:
//
//	receiver.html#c=<base64(ciphertext)>&k=<key>&h=<fingerprint>
package share

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/caesar-tui/internal/cipher"
	"github.com/jeranaias/caesar-tui/internal/pintag"
)

// DefaultBase is the receiver page used when no base URL is configured.
const DefaultBase = "receiver.html"

var (
	// ErrMissingText is returned when a link is requested for empty text.
	ErrMissingText = errors.New("enter the original message first")
	// ErrMissingPIN is returned when a link is requested without a PIN.
	ErrMissingPIN = errors.New("enter a PIN to secure the link")
	// ErrInvalidLink is returned when a URL does not carry a usable payload.
	ErrInvalidLink = errors.New("not a valid share link")
	// ErrPINMismatch is returned by Payload.Open for a wrong PIN.
	ErrPINMismatch = errors.New("incorrect PIN")
)

// Payload is the content of a share link fragment.
type Payload struct {
	Ciphertext  string
	Key         int
	Fingerprint string
}

// BuildLink encrypts plaintext under key and returns a link whose fragment
// carries the ciphertext, the key and the PIN fingerprint. Surrounding
// whitespace in pin is ignored. Unlike the cipher itself the key is not
// defaulted: a key outside 1..25 is a *cipher.KeyError.
func BuildLink(base, plaintext string, key int, pin string) (string, error) {
	if plaintext == "" {
		return "", ErrMissingText
	}
	if err := cipher.ValidateKey(key); err != nil {
		return "", err
	}
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return "", ErrMissingPIN
	}
	if base == "" {
		base = DefaultBase
	}
	// Any fragment already on the base is replaced.
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}

	p := Payload{
		Ciphertext:  cipher.EncryptText(plaintext, key),
		Key:         key,
		Fingerprint: pintag.FingerprintString(pin),
	}
	return base + "#" + p.Fragment(), nil
}

// Fragment encodes p as "c=...&k=...&h=...".
func (p Payload) Fragment() string {
	return fmt.Sprintf("c=%s&k=%d&h=%s",
		base64.StdEncoding.EncodeToString([]byte(p.Ciphertext)), p.Key, p.Fingerprint)
}

// ParseLink extracts the payload from a share link. Only the fragment is
// read. Values are taken literally, so base64 '+' and '=' survive.
func ParseLink(link string) (Payload, error) {
	i := strings.IndexByte(link, '#')
	if i < 0 {
		return Payload{}, fmt.Errorf("%w: no fragment", ErrInvalidLink)
	}

	fields := make(map[string]string, 3)
	for _, part := range strings.Split(link[i+1:], "&") {
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		fields[name] = value
	}

	encoded, ok := fields["c"]
	if !ok {
		return Payload{}, fmt.Errorf("%w: missing ciphertext", ErrInvalidLink)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: ciphertext: %v", ErrInvalidLink, err)
	}

	key, err := strconv.Atoi(fields["k"])
	if err != nil || !cipher.ValidKey(key) {
		return Payload{}, fmt.Errorf("%w: key %q", ErrInvalidLink, fields["k"])
	}

	fp, ok := fields["h"]
	if !ok || fp == "" {
		return Payload{}, fmt.Errorf("%w: missing PIN fingerprint", ErrInvalidLink)
	}

	return Payload{Ciphertext: string(raw), Key: key, Fingerprint: fp}, nil
}

// Open checks pin against the payload fingerprint and returns the decrypted
// message.
func (p Payload) Open(pin string) (string, error) {
	if !pintag.Verify(strings.TrimSpace(pin), p.Fingerprint) {
		return "", ErrPINMismatch
	}
	return cipher.DecryptText(p.Ciphertext, p.Key), nil
}
