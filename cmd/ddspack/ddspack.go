// Copyright 2026 The S3tc Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// ddspack decodes and encodes the DDS-wrapped S3TC (DXT1, DXT3 and DXT5)
// lossy texture formats.
package main

import (
	"errors"
	"flag"
	"image"
	"image/png"
	"os"

	"github.com/nigeltao/s3tc/lib/dds"
	"github.com/nigeltao/s3tc/lib/s3tc"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	decodeFlag = flag.Bool("decode", false, "whether to decode the input")
	encodeFlag = flag.Bool("encode", false, "whether to encode the input")
	formatFlag = flag.String("format", "", "texture format to encode")
)

const usageStr = `ddspack decodes and encodes the DDS-wrapped S3TC lossy texture formats.

Usage: choose one of

    ddspack -decode [path]
    ddspack -encode [path]

The path to the input image file is optional. If omitted, stdin is read.

When encoding you can also pass one of these flags (before the path):

    -format=dxt1 (this is the default)
    -format=dxt1a
    -format=dxt3
    -format=dxt5

The output image (in PNG or DDS format) is written to stdout.

Decode inputs DDS and outputs PNG.
Encode inputs BMP, GIF, JPEG, PNG, TIFF or WEBP and outputs DDS.
`

var ErrBadFormatFlag = errors.New("main: bad -format flag")

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	flag.Parse()

	inFile := os.Stdin
	switch flag.NArg() {
	case 0:
		// No-op.
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		inFile = f
	default:
		return errors.New("too many filenames; the maximum is one")
	}

	if *decodeFlag && !*encodeFlag {
		return decode(inFile)
	}
	if !*decodeFlag && *encodeFlag {
		return encode(inFile)
	}
	return errors.New("must specify exactly one of -decode, -encode or -help")
}

func decode(inFile *os.File) error {
	src, err := dds.Decode(inFile)
	if err != nil {
		return err
	}
	return png.Encode(os.Stdout, src)
}

func encode(inFile *os.File) error {
	f := s3tc.FormatDXT1
	switch *formatFlag {
	case "", "dxt1":
		// No-op.
	case "dxt1a":
		f = s3tc.FormatDXT1A
	case "dxt3":
		f = s3tc.FormatDXT3
	case "dxt5":
		f = s3tc.FormatDXT5
	default:
		return ErrBadFormatFlag
	}

	src, _, err := image.Decode(inFile)
	if err != nil {
		return err
	}
	return dds.Encode(os.Stdout, src, &dds.EncodeOptions{Format: f})
}
