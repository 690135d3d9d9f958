// Copyright 2026 The S3tc Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package s3tc

// Single color compression, based on
// https://mollyrocket.com/forums/viewtopic.php?t=392
//
// A solid-color block is encoded with a fixed 0xAAAAAAAA index field, so
// every pixel reconstructs as the 2/3:1/3 interpolant of the two endpoints.
// That turns per-channel endpoint selection into a 256-entry table lookup:
// for each 8-bit input value, the pair of quantized channel values whose
// interpolant lands nearest.
//
// The tables are immutable after package initialization and shared by every
// encoder.

var (
	omatch5 = makeOMatchTable(31, 3, 2)
	omatch6 = makeOMatchTable(63, 2, 4)
)

// makeOMatchTable builds the optimal-match table for one channel depth.
// shiftUp and shiftDown give the channel's replicate-bit expansion. Ties keep
// the first minimum found (scanning table[v][0] outer, ascending), so the
// tables are deterministic.
func makeOMatchTable(channelMax int32, shiftUp int32, shiftDown int32) (table [256][2]uint8) {
	for v := int32(0); v < 256; v++ {
		bestError := int32(256)
		for hi := int32(0); hi <= channelMax; hi++ {
			hiE := (hi << shiftUp) | (hi >> shiftDown)
			for lo := int32(0); lo <= channelMax; lo++ {
				loE := (lo << shiftUp) | (lo >> shiftDown)
				if err := abs32((((2 * hiE) + loE) / 3) - v); err < bestError {
					bestError = err
					table[v][0] = uint8(hi)
					table[v][1] = uint8(lo)
				}
			}
		}
	}
	return table
}

// encodeSolidColor is the single-color fast path: per-channel optimal-match
// table lookups, a fixed alternating index pattern, and a parity flip if the
// looked-up endpoints pack in ascending order (which would otherwise signal
// the 3-color block mode).
func encodeSolidColor(r uint8, g uint8, b uint8) uint64 {
	col0 := (uint16(omatch5[r][0]) << 11) | (uint16(omatch6[g][0]) << 5) | uint16(omatch5[b][0])
	col1 := (uint16(omatch5[r][1]) << 11) | (uint16(omatch6[g][1]) << 5) | uint16(omatch5[b][1])
	indices := uint32(0xAAAA_AAAA)

	if col0 < col1 {
		col0, col1 = col1, col0
		indices ^= 0x5555_5555
	}

	return uint64(col0) | (uint64(col1) << 16) | (uint64(indices) << 32)
}
