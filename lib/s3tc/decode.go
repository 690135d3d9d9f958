// Copyright 2026 The S3tc Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package s3tc

import (
	"image"
	"io"
)

// Decode reads (blocksWide × blocksHigh) packed blocks from r and writes the
// reconstructed pixels to dst, whose concrete type must match what the
// Format's NewImage method returns.
func (f Format) Decode(dst SubsettableImage, r io.Reader, blocksWide int, blocksHigh int) error {
	bytesPerBlock := f.BytesPerBlock()
	if (dst == nil) || (r == nil) || (f < 0) || (bytesPerBlock == 0) ||
		(blocksWide <= 0) || (blocksHigh <= 0) {
		return ErrBadArgument
	}

	set := (func(px int, py int, pixels *[64]byte))(nil)
	switch dst := dst.(type) {
	case *image.RGBA:
		set = func(px int, py int, pixels *[64]byte) {
			for y := range 4 {
				i := dst.PixOffset(px, py+y)
				copy(dst.Pix[i:i+16], pixels[16*y:])
			}
		}
	case *image.NRGBA:
		set = func(px int, py int, pixels *[64]byte) {
			for y := range 4 {
				i := dst.PixOffset(px, py+y)
				copy(dst.Pix[i:i+16], pixels[16*y:])
			}
		}
	default:
		return ErrBadImageType
	}

	buf := [16]byte{}
	pixels := [64]byte{}

	for blockY := 0; blockY < blocksHigh; blockY++ {
		for blockX := 0; blockX < blocksWide; blockX++ {
			if _, err := io.ReadFull(r, buf[:bytesPerBlock]); err != nil {
				return err
			}

			switch f {
			case FormatDXT1, FormatDXT1A:
				decodeColorBlock(&pixels, readU64LE(buf[:8]), f == FormatDXT1A, false)

			case FormatDXT3:
				decodeColorBlock(&pixels, readU64LE(buf[8:16]), false, true)
				decodeAlpha4Block(&pixels, readU64LE(buf[:8]))

			case FormatDXT5:
				decodeColorBlock(&pixels, readU64LE(buf[8:16]), false, true)
				decodeAlpha8Block(&pixels, readU64LE(buf[:8]))
			}

			set(4*blockX, 4*blockY, &pixels)
		}
	}
	return nil
}

// decodeColorBlock reconstructs a color block's 16 RGBA pixels. col0 > col1
// selects the 4-color mode, otherwise the 3-color mode whose index 3 is
// transparent black (when oneBitAlpha) or opaque black. DXT3 and DXT5 color
// blocks pass always4: their blocks are 4-color regardless of endpoint order.
func decodeColorBlock(pixels *[64]byte, code uint64, oneBitAlpha bool, always4 bool) {
	col0 := uint16(code >> 0)
	col1 := uint16(code >> 16)
	indices := uint32(code >> 32)

	c0 := expand565I32(col0)
	c1 := expand565I32(col1)

	palette := [4][4]uint8{}
	for c := range 3 {
		palette[0][c] = uint8(c0[c])
		palette[1][c] = uint8(c1[c])
	}
	palette[0][3] = 0xFF
	palette[1][3] = 0xFF

	if always4 || (col0 > col1) {
		for c := range 3 {
			palette[2][c] = uint8(((2 * c0[c]) + c1[c]) / 3)
			palette[3][c] = uint8((c0[c] + (2 * c1[c])) / 3)
		}
		palette[2][3] = 0xFF
		palette[3][3] = 0xFF
	} else {
		for c := range 3 {
			palette[2][c] = uint8((c0[c] + c1[c]) / 2)
			palette[3][c] = 0x00
		}
		palette[2][3] = 0xFF
		if oneBitAlpha {
			palette[3][3] = 0x00
		} else {
			palette[3][3] = 0xFF
		}
	}

	for i := range 16 {
		p := &palette[(indices>>(2*i))&3]
		pixels[(4*i)+0] = p[0]
		pixels[(4*i)+1] = p[1]
		pixels[(4*i)+2] = p[2]
		pixels[(4*i)+3] = p[3]
	}
}

func expand565I32(w uint16) [3]int32 {
	r := int32((w >> 11) & 31)
	g := int32((w >> 5) & 63)
	b := int32(w & 31)
	return [3]int32{
		(r << 3) | (r >> 2),
		(g << 2) | (g >> 4),
		(b << 3) | (b >> 2),
	}
}

func decodeAlpha4Block(pixels *[64]byte, code uint64) {
	for i := range 16 {
		nibble := uint8((code >> (4 * i)) & 15)
		pixels[(4*i)+3] = (nibble << 4) | nibble
	}
}

func decodeAlpha8Block(pixels *[64]byte, code uint64) {
	block := alphaBlock{
		alpha0: uint8(code >> 0),
		alpha1: uint8(code >> 8),
	}
	alphas := [8]uint8{}
	block.evaluatePalette(&alphas)

	for i := range 16 {
		pixels[(4*i)+3] = alphas[(code>>(16+(3*i)))&7]
	}
}

func readU64LE(b []byte) uint64 {
	return (uint64(b[0]) << 0) |
		(uint64(b[1]) << 8) |
		(uint64(b[2]) << 16) |
		(uint64(b[3]) << 24) |
		(uint64(b[4]) << 32) |
		(uint64(b[5]) << 40) |
		(uint64(b[6]) << 48) |
		(uint64(b[7]) << 56)
}
