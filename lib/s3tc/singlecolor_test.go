// Copyright 2026 The S3tc Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package s3tc

import (
	"testing"
)

// tableError returns the reconstruction error of a table's endpoint pair for
// the 8-bit value v.
func tableError(table *[256][2]uint8, v int32, shiftUp int32, shiftDown int32) int32 {
	hi := int32(table[v][0])
	lo := int32(table[v][1])
	hiE := (hi << shiftUp) | (hi >> shiftDown)
	loE := (lo << shiftUp) | (lo >> shiftDown)
	return abs32((((2 * hiE) + loE) / 3) - v)
}

func TestOMatchTablesAreOptimal(tt *testing.T) {
	for v := int32(0); v < 256; v++ {
		got5 := tableError(&omatch5, v, 3, 2)
		got6 := tableError(&omatch6, v, 2, 4)

		// Independently brute-force the best achievable errors.
		want5, want6 := int32(256), int32(256)
		for hi := int32(0); hi < 64; hi++ {
			for lo := int32(0); lo < 64; lo++ {
				if (hi < 32) && (lo < 32) {
					hiE := (hi << 3) | (hi >> 2)
					loE := (lo << 3) | (lo >> 2)
					want5 = min(want5, abs32((((2*hiE)+loE)/3)-v))
				}
				hiE := (hi << 2) | (hi >> 4)
				loE := (lo << 2) | (lo >> 4)
				want6 = min(want6, abs32((((2*hiE)+loE)/3)-v))
			}
		}

		if got5 != want5 {
			tt.Errorf("v=%d: omatch5 error %d, best achievable %d", v, got5, want5)
		}
		if got6 != want6 {
			tt.Errorf("v=%d: omatch6 error %d, best achievable %d", v, got6, want6)
		}
	}
}

func TestEncodeSolidColorOrdering(tt *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				code := encodeSolidColor(uint8(r), uint8(g), uint8(b))
				col0, col1 := uint16(code), uint16(code>>16)
				if col0 < col1 {
					tt.Fatalf("rgb=(%d, %d, %d): col0 %#04x < col1 %#04x", r, g, b, col0, col1)
				}

				decoded := [64]byte{}
				decodeColorBlock(&decoded, code, false, false)
				dR := abs32(int32(decoded[0]) - int32(r))
				dG := abs32(int32(decoded[1]) - int32(g))
				dB := abs32(int32(decoded[2]) - int32(b))
				if (dR > 8) || (dG > 4) || (dB > 8) {
					tt.Fatalf("rgb=(%d, %d, %d): decoded (%d, %d, %d)",
						r, g, b, decoded[0], decoded[1], decoded[2])
				}
			}
		}
	}
}
