// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package share

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/caesar-tui/internal/cipher"
	"github.com/jeranaias/caesar-tui/internal/pintag"
)

// =============================================================================
// LINKS
// =============================================================================

func TestBuildLink_Format(t *testing.T) {
	link, err := BuildLink("", "hello world", 5, "1234")
	require.NoError(t, err)
	// base64("mjqqt btwqi") = "bWpxcXQgYnR3cWk="
	require.Equal(t, "receiver.html#c=bWpxcXQgYnR3cWk=&k=5&h=1509442", link)
}

func TestBuildLink_CustomBase(t *testing.T) {
	link, err := BuildLink("https://example.org/r.html#old", "hi", 1, " 1234 ")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://example.org/r.html#c="))
	require.True(t, strings.HasSuffix(link, "&h="+pintag.FingerprintString("1234")))
}

func TestBuildLink_Validation(t *testing.T) {
	_, err := BuildLink("", "", 5, "1234")
	require.ErrorIs(t, err, ErrMissingText)

	_, err = BuildLink("", "hi", 0, "1234")
	var keyErr *cipher.KeyError
	require.ErrorAs(t, err, &keyErr)
	require.Equal(t, 0, keyErr.Key)

	_, err = BuildLink("", "hi", 26, "1234")
	require.ErrorAs(t, err, &keyErr)

	_, err = BuildLink("", "hi", 5, "   ")
	require.ErrorIs(t, err, ErrMissingPIN)
}

func TestLink_RoundTrip(t *testing.T) {
	msgs := []string{"hello world", "Attack at Dawn!", "ünïcode + ascii ~~~ ???"}
	for _, msg := range msgs {
		for key := cipher.MinKey; key <= cipher.MaxKey; key += 6 {
			link, err := BuildLink("", msg, key, "4321")
			require.NoError(t, err)

			p, err := ParseLink(link)
			require.NoError(t, err)
			require.Equal(t, key, p.Key)
			require.Equal(t, cipher.EncryptText(msg, key), p.Ciphertext)

			got, err := p.Open("4321")
			require.NoError(t, err)
			require.Equal(t, msg, got)
		}
	}
}

func TestPayload_OpenWrongPIN(t *testing.T) {
	link, err := BuildLink("", "secret", 9, "1234")
	require.NoError(t, err)
	p, err := ParseLink(link)
	require.NoError(t, err)

	_, err = p.Open("0000")
	require.ErrorIs(t, err, ErrPINMismatch)
	_, err = p.Open("")
	require.ErrorIs(t, err, ErrPINMismatch)
}

func TestParseLink_Invalid(t *testing.T) {
	tests := []struct {
		name string
		link string
	}{
		{"no fragment", "receiver.html"},
		{"missing c", "receiver.html#k=5&h=1"},
		{"bad base64", "receiver.html#c=***&k=5&h=1"},
		{"bad key", "receiver.html#c=aGk=&k=x&h=1"},
		{"key out of range", "receiver.html#c=aGk=&k=26&h=1"},
		{"missing h", "receiver.html#c=aGk=&k=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLink(tt.link)
			require.ErrorIs(t, err, ErrInvalidLink)
		})
	}
}

func TestParseLink_NegativeFingerprint(t *testing.T) {
	pin := "zzzzzzzz"
	require.Less(t, pintag.Fingerprint(pin), int32(0))

	link, err := BuildLink("", "negative", 3, pin)
	require.NoError(t, err)
	p, err := ParseLink(link)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(p.Fingerprint, "-"))

	got, err := p.Open(pin)
	require.NoError(t, err)
	require.Equal(t, "negative", got)
}

// =============================================================================
// QR CODES
// =============================================================================

func TestQRCode_PNG(t *testing.T) {
	data, err := QRCode("receiver.html#c=bWpxcXQgYnR3cWk=&k=5&h=1509442", 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 256, img.Bounds().Dx())
	require.Equal(t, 256, img.Bounds().Dy())
}

func TestQRCode_SmallSizeRaised(t *testing.T) {
	data, err := QRCode("hello", 1)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.GreaterOrEqual(t, img.Bounds().Dx(), 21)
}

func TestQRCode_Empty(t *testing.T) {
	_, err := QRCode("", 256)
	require.Error(t, err)
	_, err = QRTerminal("")
	require.Error(t, err)
}

func TestQRTerminal(t *testing.T) {
	out, err := QRTerminal("hello")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Version 1 code: 21 modules plus the quiet zone on both sides.
	width := 21 + 2*quietZone
	require.Len(t, lines, (width+1)/2)
	for _, line := range lines {
		require.Equal(t, width, len([]rune(line)))
	}
	// The quiet zone is light, so the first row is solid.
	require.Equal(t, strings.Repeat("█", width), lines[0])
}
