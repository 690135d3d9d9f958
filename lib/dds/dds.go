// Copyright 2026 The S3tc Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package dds implements the DDS (DirectDraw Surface) container format for
// S3TC textures.
//
// Only the FourCC compressed pixel formats DXT1, DXT3 and DXT5 are supported
// (DXT2 and DXT4 are read as their non-premultiplied siblings), with a single
// top-level surface: no mipmap chains, cube maps or volume textures.
//
// DDS is specified at
// https://learn.microsoft.com/en-us/windows/win32/direct3ddds/dx-graphics-dds-pguide
package dds

import (
	"errors"
	"image"
	"io"

	"github.com/nigeltao/s3tc/lib/s3tc"
)

// Magic is the byte string prefix of every DDS image file.
const Magic = "DDS "

func init() {
	image.RegisterFormat("dds", Magic, Decode, DecodeConfig)
}

var (
	ErrBadArgument       = errors.New("dds: bad argument")
	ErrNotADDSFile       = errors.New("dds: not a DDS file")
	ErrUnsupportedFormat = errors.New("dds: unsupported format")
	ErrImageIsTooLarge   = errors.New("dds: image is too large")
)

const (
	headerSize      = 124
	pixelFormatSize = 32

	flagCaps        = 0x00000001
	flagHeight      = 0x00000002
	flagWidth       = 0x00000004
	flagPixelFormat = 0x00001000
	flagLinearSize  = 0x00080000

	pixelFormatFlagFourCC = 0x00000004

	capsTexture = 0x00001000
)

// FourCC "DXT1" decodes as FormatDXT1A: a DXT1 file may contain 3-color
// blocks whose fourth palette slot means "fully transparent", and decoding
// with the 1-bit alpha model preserves that transparency.
var fourCCToS3TCFormats = map[uint32]s3tc.Format{
	fourCC("DXT1"): s3tc.FormatDXT1A,
	fourCC("DXT2"): s3tc.FormatDXT3,
	fourCC("DXT3"): s3tc.FormatDXT3,
	fourCC("DXT4"): s3tc.FormatDXT5,
	fourCC("DXT5"): s3tc.FormatDXT5,
}

func fourCC(s string) uint32 {
	return uint32(s[0]) | (uint32(s[1]) << 8) | (uint32(s[2]) << 16) | (uint32(s[3]) << 24)
}

func decodeConfig(r io.Reader) (retFormat s3tc.Format, retConfig image.Config, retErr error) {
	buf := [4 + headerSize]byte{}
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, image.Config{}, err
	} else if (buf[0] != Magic[0]) ||
		(buf[1] != Magic[1]) ||
		(buf[2] != Magic[2]) ||
		(buf[3] != Magic[3]) ||
		(readU32LE(buf[4:]) != headerSize) ||
		(readU32LE(buf[76:]) != pixelFormatSize) {
		return 0, image.Config{}, ErrNotADDSFile
	}

	height := readU32LE(buf[12:])
	width := readU32LE(buf[16:])
	if (width == 0) || (width > 65532) || (height == 0) || (height > 65532) {
		return 0, image.Config{}, ErrNotADDSFile
	}

	if (readU32LE(buf[80:]) & pixelFormatFlagFourCC) == 0 {
		return 0, image.Config{}, ErrUnsupportedFormat
	}
	format, ok := fourCCToS3TCFormats[readU32LE(buf[84:])]
	if !ok {
		return 0, image.Config{}, ErrUnsupportedFormat
	}

	return format, image.Config{
		ColorModel: format.ColorModel(),
		Width:      int(width),
		Height:     int(height),
	}, nil
}

// DecodeConfig reads a DDS image configuration from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	_, config, err := decodeConfig(r)
	return config, err
}

// Decode reads a DDS image from r.
//
// Only the top-level surface is read: any mipmap data after it is left
// unconsumed.
func Decode(r io.Reader) (image.Image, error) {
	format, config, err := decodeConfig(r)
	if err != nil {
		return nil, err
	}
	m, err := format.NewImage(config.Width, config.Height)
	if err != nil {
		return nil, err
	}
	b := m.Bounds()
	if err = format.Decode(m, r, b.Dx()/4, b.Dy()/4); err != nil {
		return nil, err
	}
	return m.SubImage(image.Rect(0, 0, config.Width, config.Height)), nil
}

// EncodeOptions are optional arguments to Encode. The zero value is valid and
// means to use the default configuration.
type EncodeOptions struct {
	// If zero, the default is to use s3tc.FormatDXT1.
	Format s3tc.Format
}

// Encode writes src to w in the DDS format.
//
// options may be nil, which means to use the default configuration.
func Encode(w io.Writer, src image.Image, options *EncodeOptions) error {
	b := src.Bounds()
	bW, bH := b.Dx(), b.Dy()
	if (bW > 65532) || (bH > 65532) {
		return ErrImageIsTooLarge
	}

	f := s3tc.FormatDXT1
	if (options != nil) && (options.Format != 0) {
		f = options.Format
	}
	if f.FourCC() == "" {
		return ErrBadArgument
	}

	blocksWide := (bW + 3) / 4
	blocksHigh := (bH + 3) / 4
	linearSize := blocksWide * blocksHigh * f.BytesPerBlock()

	buf := [4 + headerSize]byte{}
	copy(buf[:4], Magic)
	writeU32LE(buf[4:], headerSize)
	writeU32LE(buf[8:], flagCaps|flagHeight|flagWidth|flagPixelFormat|flagLinearSize)
	writeU32LE(buf[12:], uint32(bH))
	writeU32LE(buf[16:], uint32(bW))
	writeU32LE(buf[20:], uint32(linearSize))
	writeU32LE(buf[76:], pixelFormatSize)
	writeU32LE(buf[80:], pixelFormatFlagFourCC)
	writeU32LE(buf[84:], fourCC(f.FourCC()))
	writeU32LE(buf[108:], capsTexture)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	return s3tc.Encode(w, src, f, nil)
}

func readU32LE(b []byte) uint32 {
	return uint32(b[0]) | (uint32(b[1]) << 8) | (uint32(b[2]) << 16) | (uint32(b[3]) << 24)
}

func writeU32LE(b []byte, u uint32) {
	b[0] = uint8(u >> 0)
	b[1] = uint8(u >> 8)
	b[2] = uint8(u >> 16)
	b[3] = uint8(u >> 24)
}
