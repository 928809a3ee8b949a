// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pintag

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprint_KnownValues(t *testing.T) {
	tests := []struct {
		pin  string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 97*31 + 98},
		{"1234", 1509442},
		{"0000", 1477632},
	}

	for _, tt := range tests {
		if got := Fingerprint(tt.pin); got != tt.want {
			t.Errorf("Fingerprint(%q) = %d, want %d", tt.pin, got, tt.want)
		}
	}
}

func TestFingerprint_WrapsToSignedInt32(t *testing.T) {
	// Long inputs overflow; the reference value is computed with int64
	// arithmetic reduced modulo 2^32.
	pin := strings.Repeat("secret-pin-", 8)

	var ref int64
	for _, r := range pin {
		ref = (ref*31 + int64(r)) % (1 << 32)
	}
	if ref > math.MaxInt32 {
		ref -= 1 << 32
	}

	require.Equal(t, int32(ref), Fingerprint(pin))
}

func TestFingerprint_UTF16Units(t *testing.T) {
	// U+1F600 is a surrogate pair: 0xD83D, 0xDE00.
	want := int32(0xD83D)*31 + int32(0xDE00)
	require.Equal(t, want, Fingerprint("\U0001F600"))
}

func TestFingerprint_OrderSensitive(t *testing.T) {
	require.NotEqual(t, Fingerprint("12"), Fingerprint("21"))
}

func TestEmbedExtract_RoundTrip(t *testing.T) {
	bodies := []string{"", "mjqqt btwqi", "no tag here ]", "[not a tag"}
	pins := []string{"1234", "0000", "correct horse", strings.Repeat("z", 40)}

	for _, body := range bodies {
		for _, pin := range pins {
			got := Extract(Embed(body, Fingerprint(pin)))
			require.True(t, got.HasTag)
			require.Equal(t, FingerprintString(pin), got.Tag)
			require.Equal(t, body, got.Body)
		}
	}
}

func TestEmbed_NegativeFingerprint(t *testing.T) {
	require.Equal(t, "[HASH:-42]abc", Embed("abc", -42))
	got := Extract("[HASH:-42]abc")
	require.Equal(t, "-42", got.Tag)
	require.Equal(t, "abc", got.Body)
}

func TestExtract_OnlyAtOffsetZero(t *testing.T) {
	for _, text := range []string{
		" [HASH:1]abc",
		"abc[HASH:1]",
		"[HASH:]abc",
		"[hash:1]abc",
		"",
	} {
		got := Extract(text)
		require.False(t, got.HasTag, "text %q", text)
		require.Equal(t, text, got.Body)
	}
}

func TestExtract_SecondTagStaysInBody(t *testing.T) {
	got := Extract("[HASH:1][HASH:2]body")
	require.Equal(t, "1", got.Tag)
	require.Equal(t, "[HASH:2]body", got.Body)
}

func TestVerify(t *testing.T) {
	tag := Extract(Protect("mjqqt", "1234")).Tag
	require.True(t, Verify("1234", tag))
	require.False(t, Verify("0000", tag))

	// String comparison: numerically equal but differently printed tags fail.
	require.True(t, Verify("a", "97"))
	require.False(t, Verify("a", "097"))
	require.False(t, Verify("a", "+97"))
	require.True(t, Verify("", "0"))
	require.False(t, Verify("", "-0"))
}

func TestProtect_EmptyPIN(t *testing.T) {
	require.Equal(t, "body", Protect("body", ""))
}
