// Copyright 2026 The S3tc Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package s3tc implements the S3TC (also known as DXTn or BC1-BC3) block
// texture compression formats.
//
// S3TC textures are usually wrapped in .dds (DirectDraw Surface) container
// files, which prepend a header stating width, height and pixel format.
//
// S3TC is specified at
// https://registry.khronos.org/OpenGL/extensions/EXT/EXT_texture_compression_s3tc.txt
// and in the Direct3D documentation for the BC1, BC2 and BC3 formats.
package s3tc

import (
	"errors"
	"image"
	"image/color"
)

var (
	ErrBadArgument     = errors.New("s3tc: bad argument")
	ErrBadImageType    = errors.New("s3tc: bad image type")
	ErrImageIsTooLarge = errors.New("s3tc: image is too large")
)

// SubsettableImage is an image.Image that also has a SubImage method, like all
// of the Go standard library's image types.
type SubsettableImage interface {
	image.Image
	SubImage(r image.Rectangle) image.Image
}

// AlphaModel is a Format's transparency model.
type AlphaModel uint8

const (
	AlphaModelOpaque       = AlphaModel(0)
	AlphaModel1Bit         = AlphaModel(1)
	AlphaModel4Bit         = AlphaModel(2)
	AlphaModelInterpolated = AlphaModel(3)
)

// Format gives the "color type" specialization of the S3TC family.
//
// Non-negative values correspond to formats that can appear in a DDS file.
//
// Negative values have no counterpart in the DDS file format. They can be
// passed to Encode (they represent a specialization of a larger format;
// DXT1Green is a green-channel-only subset of DXT1) but are not used by
// Decode.
//
// FormatDXT1 and FormatDXT1A share the same block layout and the same "DXT1"
// FourCC. They differ in whether the encoder may use the 3-color block mode,
// whose fourth palette slot means "fully transparent" instead of a color.
type Format int8

const (
	FormatDXT1Green = Format(-1)

	FormatDXT1  = Format(0x00)
	FormatDXT1A = Format(0x01)
	FormatDXT3  = Format(0x02)
	FormatDXT5  = Format(0x03)
)

// AlphaModel returns the Format's transparency model.
func (f Format) AlphaModel() AlphaModel {
	switch f {
	case FormatDXT1Green,
		FormatDXT1:
		return AlphaModelOpaque

	case FormatDXT1A:
		return AlphaModel1Bit

	case FormatDXT3:
		return AlphaModel4Bit

	case FormatDXT5:
		return AlphaModelInterpolated
	}

	return 0
}

// BytesPerBlock returns the Format-dependent number of bytes used to encode
// each 4×4 pixel block.
func (f Format) BytesPerBlock() int {
	switch f {
	case FormatDXT1Green,
		FormatDXT1,
		FormatDXT1A:
		return 8

	case FormatDXT3,
		FormatDXT5:
		return 16
	}

	return 0
}

// FourCC returns the four-character code identifying the Format in a DDS
// file's pixel format, or "" if the Format has no DDS counterpart.
func (f Format) FourCC() string {
	switch f {
	case FormatDXT1,
		FormatDXT1A:
		return "DXT1"
	case FormatDXT3:
		return "DXT3"
	case FormatDXT5:
		return "DXT5"
	}

	return ""
}

// ColorModel returns the Go standard library's color model that best matches
// the Format.
func (f Format) ColorModel() color.Model {
	switch f {
	case FormatDXT1Green,
		FormatDXT1,
		FormatDXT1A:
		return color.RGBAModel

	case FormatDXT3,
		FormatDXT5:
		return color.NRGBAModel
	}

	return nil
}

// NewImage returns an image.Image, whose concrete type is one of the standard
// library's image types, that's suitable for the Format.
//
// The requested width and height will be rounded up to a multiple of 4.
//
// It returns an error if the width or height is negative or above 65536.
func (f Format) NewImage(width int, height int) (SubsettableImage, error) {
	if (width < 0) || (width >= 65536) ||
		(height < 0) || (height >= 65536) {
		return nil, ErrBadArgument
	}
	r := image.Rect(0, 0, (width+3)&^3, (height+3)&^3)

	switch f {
	case FormatDXT1Green,
		FormatDXT1,
		FormatDXT1A:
		return image.NewRGBA(r), nil

	case FormatDXT3,
		FormatDXT5:
		return image.NewNRGBA(r), nil
	}

	return nil, ErrBadArgument
}

// OpenGLInternalFormat returns the OpenGL internalFormat enum value for f,
// suitable for passing to the glCompressedTexImage2D function.
func (f Format) OpenGLInternalFormat() uint32 {
	switch f {
	case FormatDXT1Green,
		FormatDXT1:
		return 0x83F0 // GL_COMPRESSED_RGB_S3TC_DXT1_EXT
	case FormatDXT1A:
		return 0x83F1 // GL_COMPRESSED_RGBA_S3TC_DXT1_EXT
	case FormatDXT3:
		return 0x83F2 // GL_COMPRESSED_RGBA_S3TC_DXT3_EXT
	case FormatDXT5:
		return 0x83F3 // GL_COMPRESSED_RGBA_S3TC_DXT5_EXT
	}

	return 0
}

// DXGIFormat returns the DXGI_FORMAT enum value for f, as used by Direct3D 10
// and later.
func (f Format) DXGIFormat() uint32 {
	switch f {
	case FormatDXT1Green,
		FormatDXT1,
		FormatDXT1A:
		return 71 // DXGI_FORMAT_BC1_UNORM
	case FormatDXT3:
		return 74 // DXGI_FORMAT_BC2_UNORM
	case FormatDXT5:
		return 77 // DXGI_FORMAT_BC3_UNORM
	}

	return 0
}
