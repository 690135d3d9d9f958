// Copyright 2026 The S3tc Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package s3tc

import (
	"bytes"
	"image"
	"testing"
)

// fillTestBlock fills pixels with deterministic pseudo-random bytes (a
// xorshift32 sequence), so tests are reproducible without golden files.
func fillTestBlock(pixels *[64]byte, seed uint32) {
	s := (2 * seed) + 1
	for i := range pixels {
		s ^= s << 13
		s ^= s >> 17
		s ^= s << 5
		pixels[i] = uint8(s >> 24)
	}
}

func makeTestImage(width int, height int, seed uint32) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	s := (2 * seed) + 1
	for i := range m.Pix {
		s ^= s << 13
		s ^= s >> 17
		s ^= s << 5
		m.Pix[i] = uint8(s >> 24)
	}
	return m
}

func TestEncodeDeterminism(tt *testing.T) {
	formats := []Format{
		FormatDXT1Green,
		FormatDXT1,
		FormatDXT1A,
		FormatDXT3,
		FormatDXT5,
	}

	// 21×10 is deliberately not a multiple of 4, exercising edge-pixel
	// replication too.
	src := makeTestImage(21, 10, 6)

	for _, f := range formats {
		buf0 := &bytes.Buffer{}
		buf1 := &bytes.Buffer{}
		if err := Encode(buf0, src, f, nil); err != nil {
			tt.Errorf("f=%v: Encode: %v", f, err)
			continue
		}
		if err := Encode(buf1, src, f, nil); err != nil {
			tt.Errorf("f=%v: Encode: %v", f, err)
			continue
		}

		if !bytes.Equal(buf0.Bytes(), buf1.Bytes()) {
			tt.Errorf("f=%v: two encodings of the same image differ", f)
		}

		wantLen := 6 * 3 * f.BytesPerBlock()
		if buf0.Len() != wantLen {
			tt.Errorf("f=%v: encoded length: got %d, want %d", f, buf0.Len(), wantLen)
		}
	}
}

func TestRoundAndExpand565(tt *testing.T) {
	for v := 0; v < 256; v++ {
		c := [3]float64{float64(v), float64(v), float64(v)}
		w := roundAndExpand565(&c)

		if e := expand565(w); e != c {
			tt.Fatalf("v=%d: roundAndExpand565 and expand565 disagree: %v vs %v", v, c, e)
		}

		// The maximum round-trip error is one replicated quantization step: 8
		// for the 5-bit channels, 4 for the 6-bit channel.
		if d := c[0] - float64(v); (d < -8) || (d > 8) {
			tt.Errorf("v=%d: red round-trip error %v out of range", v, d)
		}
		if d := c[1] - float64(v); (d < -4) || (d > 4) {
			tt.Errorf("v=%d: green round-trip error %v out of range", v, d)
		}
		if d := c[2] - float64(v); (d < -8) || (d > 8) {
			tt.Errorf("v=%d: blue round-trip error %v out of range", v, d)
		}
	}
}

func TestColorEndpointOrdering(tt *testing.T) {
	e := &encoder{}
	for seed := uint32(0); seed < 100; seed++ {
		fillTestBlock(&e.pixels, seed)

		code4 := e.encodeColor4()
		if col0, col1 := uint16(code4), uint16(code4>>16); col0 < col1 {
			tt.Errorf("seed=%d: 4-color mode: col0 %#04x < col1 %#04x", seed, col0, col1)
		}

		// Force some transparency so the 1-bit-alpha encoder takes the
		// 3-color path, whose endpoint order convention is inverted.
		for i := range 8 {
			e.pixels[(8*i)+3] = uint8(seed % 0x80)
		}
		code3 := e.encodeColor(true)
		if col0, col1 := uint16(code3), uint16(code3>>16); col0 > col1 {
			tt.Errorf("seed=%d: 3-color mode: col0 %#04x > col1 %#04x", seed, col0, col1)
		}
	}
}

func TestOptimizeEndPoints4NonRegression(tt *testing.T) {
	e := &encoder{}
	for seed := uint32(0); seed < 200; seed++ {
		fillTestBlock(&e.pixels, seed)

		// Replicate the pre-refinement pipeline to get the seed candidate.
		block := [16][3]float64{}
		e.extractColorBlockRGB(&block)
		maxColor, minColor := findMinMaxColorsBox(&block, 16)
		selectDiagonal(&block, 16, &maxColor, &minColor)
		insetBBox(&maxColor, &minColor)
		color0 := roundAndExpand565(&maxColor)
		color1 := roundAndExpand565(&minColor)
		if color0 < color1 {
			maxColor, minColor = minColor, maxColor
			color0, color1 = color1, color0
		}
		indices := computeIndices4(&block, &maxColor, &minColor)
		seedError := colorBlockError(&block, color0, color1, indices)

		code := e.encodeColor4()
		finalError := colorBlockError(&block, uint16(code), uint16(code>>16), uint32(code>>32))

		if finalError > seedError {
			tt.Errorf("seed=%d: refined error %v worse than seed error %v", seed, finalError, seedError)
		}
	}
}

func TestUniformBlock(tt *testing.T) {
	testCases := [][3]uint8{
		{0x00, 0x00, 0x00},
		{0xFF, 0xFF, 0xFF},
		{0xFF, 0x00, 0x00},
		{0x0C, 0x22, 0x38},
		{0xC8, 0x64, 0x32},
		{0x01, 0x02, 0x03},
		{0x80, 0x80, 0x80},
	}

	e := &encoder{}
	for _, tc := range testCases {
		for i := range 16 {
			e.pixels[(4*i)+0] = tc[0]
			e.pixels[(4*i)+1] = tc[1]
			e.pixels[(4*i)+2] = tc[2]
			e.pixels[(4*i)+3] = 0xFF
		}

		fastCode := encodeSolidColor(tc[0], tc[1], tc[2])
		if got := e.encodeColor(false); got != fastCode {
			tt.Errorf("tc=%v: encodeColor did not take the single-color fast path", tc)
		}

		for _, code := range []uint64{fastCode, e.encodeColor4()} {
			decoded := [64]byte{}
			decodeColorBlock(&decoded, code, false, false)
			for i := range 16 {
				dR := int32(decoded[(4*i)+0]) - int32(tc[0])
				dG := int32(decoded[(4*i)+1]) - int32(tc[1])
				dB := int32(decoded[(4*i)+2]) - int32(tc[2])
				if (abs32(dR) > 8) || (abs32(dG) > 4) || (abs32(dB) > 8) {
					tt.Errorf("tc=%v: pixel %d decoded as (%d, %d, %d), more than one quantization step away",
						tc, i, decoded[(4*i)+0], decoded[(4*i)+1], decoded[(4*i)+2])
					break
				}
			}
		}
	}
}

func TestTransparentBlock(tt *testing.T) {
	e := &encoder{}

	// Varied colors, every alpha below the punch-through threshold.
	fillTestBlock(&e.pixels, 99)
	for i := range 16 {
		e.pixels[(4*i)+3] = uint8(3 * i)
	}
	code := e.encodeColor(true)
	if indices := uint32(code >> 32); indices != 0xFFFF_FFFF {
		tt.Errorf("general path: indices %#08x, want all pixels on the transparent slot", indices)
	}

	// A uniform fully transparent block takes the sentinel encoding.
	for i := range 16 {
		e.pixels[(4*i)+0] = 0x12
		e.pixels[(4*i)+1] = 0x34
		e.pixels[(4*i)+2] = 0x56
		e.pixels[(4*i)+3] = 0x00
	}
	if got := e.encodeColor(true); got != transparentBlock {
		tt.Errorf("uniform path: got %#016x, want %#016x", got, transparentBlock)
	}

	decoded := [64]byte{}
	decodeColorBlock(&decoded, transparentBlock, true, false)
	for i := range 16 {
		if decoded[(4*i)+3] != 0x00 {
			tt.Fatalf("sentinel block decoded pixel %d with alpha %#02x", i, decoded[(4*i)+3])
		}
	}
}

func TestAlpha4(tt *testing.T) {
	e := &encoder{}
	fillTestBlock(&e.pixels, 7)

	code := e.encodeAlpha4()
	for i := range 16 {
		got := uint8((code >> (4 * i)) & 15)
		if want := e.pixels[(4*i)+3] >> 4; got != want {
			tt.Fatalf("pixel %d: nibble %#x, want %#x", i, got, want)
		}
	}
}

func TestAlpha8Monotonic(tt *testing.T) {
	e := &encoder{}
	for seed := uint32(0); seed < 200; seed++ {
		fillTestBlock(&e.pixels, seed)

		code := e.encodeAlpha8()
		if alpha0, alpha1 := uint8(code), uint8(code>>8); alpha0 < alpha1 {
			tt.Errorf("seed=%d: alpha0 %d < alpha1 %d", seed, alpha0, alpha1)
		}
	}
}

func TestAlpha8Uniform(tt *testing.T) {
	e := &encoder{}
	for _, v := range []uint8{0x00, 0x25, 0x80, 0xFF} {
		for i := range 16 {
			e.pixels[(4*i)+3] = v
		}

		decoded := [64]byte{}
		decodeAlpha8Block(&decoded, e.encodeAlpha8())
		for i := range 16 {
			if decoded[(4*i)+3] != v {
				tt.Errorf("v=%#02x: pixel %d decoded as %#02x", v, i, decoded[(4*i)+3])
				break
			}
		}
	}
}

func TestAlpha8TwoLevel(tt *testing.T) {
	// A two-level alpha pattern whose levels are exactly representable as
	// endpoints must be recovered with zero error by the refinement loop.
	e := &encoder{}
	for i := range 16 {
		if (i % 2) == 0 {
			e.pixels[(4*i)+3] = 0xF0
		} else {
			e.pixels[(4*i)+3] = 0x10
		}
	}

	decoded := [64]byte{}
	decodeAlpha8Block(&decoded, e.encodeAlpha8())
	for i := range 16 {
		if decoded[(4*i)+3] != e.pixels[(4*i)+3] {
			tt.Errorf("pixel %d: decoded alpha %#02x, want %#02x", i, decoded[(4*i)+3], e.pixels[(4*i)+3])
		}
	}
}

func TestAlpha8NonRegression(tt *testing.T) {
	e := &encoder{}
	for seed := uint32(0); seed < 100; seed++ {
		fillTestBlock(&e.pixels, seed)

		// Replicate the loop's seed block and its error.
		alpha0, alpha1 := uint8(0), uint8(255)
		for i := range 16 {
			alpha := e.pixels[(4*i)+3]
			alpha0 = max(alpha0, alpha)
			alpha1 = min(alpha1, alpha)
		}
		block := alphaBlock{
			alpha0: alpha0 - ((alpha0 - alpha1) / 34),
			alpha1: alpha1 + ((alpha0 - alpha1) / 34),
		}
		seedError := e.computeAlphaIndices(&block)

		decoded := [64]byte{}
		decodeAlpha8Block(&decoded, e.encodeAlpha8())
		finalError := uint32(0)
		for i := range 16 {
			d := int32(decoded[(4*i)+3]) - int32(e.pixels[(4*i)+3])
			finalError += uint32(d * d)
		}

		if finalError > seedError {
			tt.Errorf("seed=%d: refined error %d worse than seed error %d", seed, finalError, seedError)
		}
	}
}

func TestGreenBruteForceExact(tt *testing.T) {
	// Greens 162 and 40 are the exact expansions of the 6-bit values 40 and
	// 10, so the exhaustive search must recover the pattern with zero error.
	e := &encoder{}
	fillTestBlock(&e.pixels, 42)
	for i := range 16 {
		if (i % 2) == 0 {
			e.pixels[(4*i)+1] = 162
		} else {
			e.pixels[(4*i)+1] = 40
		}
	}

	code := e.encodeGreen()
	col0, col1 := uint16(code), uint16(code>>16)
	if ((col0 >> 11) != 31) || ((col1 >> 11) != 31) || ((col0 & 31) != 0) || ((col1 & 31) != 0) {
		tt.Fatalf("endpoints %#04x, %#04x: red must be 31 and blue 0", col0, col1)
	}

	palette := greenPalette(int32((col0>>5)&63), int32((col1>>5)&63))
	indices := uint32(code >> 32)
	for i := range 16 {
		got := palette[(indices>>(2*i))&3]
		if want := int32(e.pixels[(4*i)+1]); got != want {
			tt.Errorf("pixel %d: reconstructed green %d, want %d", i, got, want)
		}
	}
}

func TestEncodeBadArgument(tt *testing.T) {
	src := makeTestImage(4, 4, 1)
	if err := Encode(nil, src, FormatDXT1, nil); err != ErrBadArgument {
		tt.Errorf("nil dst: got %v, want %v", err, ErrBadArgument)
	}
	if err := Encode(&bytes.Buffer{}, nil, FormatDXT1, nil); err != ErrBadArgument {
		tt.Errorf("nil src: got %v, want %v", err, ErrBadArgument)
	}
	if err := Encode(&bytes.Buffer{}, src, Format(0x55), nil); err != ErrBadArgument {
		tt.Errorf("bad format: got %v, want %v", err, ErrBadArgument)
	}
}
