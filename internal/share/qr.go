// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package share

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// DefaultQRSize is the edge length in pixels of generated QR images.
const DefaultQRSize = 256

// quietZone is the blank border, in modules, around terminal QR codes.
const quietZone = 2

var errEmptyQR = errors.New("nothing to encode")

func encodeQR(text string) (barcode.Barcode, error) {
	if text == "" {
		return nil, errEmptyQR
	}
	code, err := qr.Encode(text, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return code, nil
}

// QRCode returns a PNG image of text as a size x size QR code. Sizes below
// the module count of the code are raised to fit.
func QRCode(text string, size int) ([]byte, error) {
	code, err := encodeQR(text)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	if modules := code.Bounds().Dx(); size < modules {
		size = modules
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("failed to scale QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// QRTerminal renders text as a QR code made of half-block characters, two
// module rows per line. Light modules are drawn, dark ones left blank, so the
// code scans on dark terminal backgrounds.
func QRTerminal(text string) (string, error) {
	code, err := encodeQR(text)
	if err != nil {
		return "", err
	}

	b := code.Bounds()
	dark := func(x, y int) bool {
		if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
			return false
		}
		return isDark(code, x, y)
	}

	var sb strings.Builder
	for y := b.Min.Y - quietZone; y < b.Max.Y+quietZone; y += 2 {
		for x := b.Min.X - quietZone; x < b.Max.X+quietZone; x++ {
			top, bottom := !dark(x, y), !dark(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func isDark(img image.Image, x, y int) bool {
	r, g, bl, _ := img.At(x, y).RGBA()
	return (r+g+bl)/3 < 0x8000
}
