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

// EncodeOptions are optional arguments to Encode. The zero value is valid and
// means to use the default configuration.
//
// There are no fields for now, but there may be some in the future.
type EncodeOptions struct {
}

// Encode writes src to dst in the S3TC format f.
//
// options may be nil, which means to use the default configuration.
func Encode(dst io.Writer, src image.Image, f Format, options *EncodeOptions) error {
	if (dst == nil) || (src == nil) || (f.BytesPerBlock() == 0) {
		return ErrBadArgument
	}

	b := src.Bounds()
	bW, bH := b.Dx(), b.Dy()
	if (bW > 65532) || (bH > 65532) {
		return ErrImageIsTooLarge
	}

	e, bufJ := &encoder{}, 0
	extract := makeExtract(&e.pixels, src)

	for blockY := 0; blockY < bH; blockY += 4 {
		for blockX := 0; blockX < bW; blockX += 4 {
			extract(blockX, blockY)

			switch f {
			case FormatDXT3:
				writeU64LE(e.buf[bufJ+0:], e.encodeAlpha4())
				writeU64LE(e.buf[bufJ+8:], e.encodeColor(false))
				bufJ += 16

			case FormatDXT5:
				writeU64LE(e.buf[bufJ+0:], e.encodeAlpha8())
				writeU64LE(e.buf[bufJ+8:], e.encodeColor(false))
				bufJ += 16

			case FormatDXT1A:
				writeU64LE(e.buf[bufJ:], e.encodeColor(true))
				bufJ += 8

			case FormatDXT1Green:
				writeU64LE(e.buf[bufJ:], e.encodeGreen())
				bufJ += 8

			default: // FormatDXT1.
				writeU64LE(e.buf[bufJ:], e.encodeColor(false))
				bufJ += 8
			}

			if bufJ >= encoderBufferSize {
				if _, err := dst.Write(e.buf[:]); err != nil {
					return err
				}
				bufJ = 0
			}
		}
	}

	if bufJ > 0 {
		if _, err := dst.Write(e.buf[:bufJ]); err != nil {
			return err
		}
	}
	return nil
}

const encoderBufferSize = 4096 - 64 - 64

// transparentBlock is the sentinel encoding of a fully transparent color
// block: zeroed endpoints with every index selecting the 3-color mode's
// transparent slot.
const transparentBlock = uint64(0xFFFF_FFFF) << 32

type encoder struct {
	pixels [64]byte
	buf    [encoderBufferSize]byte
}

func (e *encoder) hasTransparentPixelsWhenUsingOneBitAlpha() bool {
	for i := range 16 {
		if e.pixels[(4*i)+3] < 0x80 {
			return true
		}
	}
	return false
}

// isSolidColor reports whether all 16 pixels share the same RGB value (and,
// if includeAlpha, the same alpha value).
func (e *encoder) isSolidColor(includeAlpha bool) bool {
	n := 3
	if includeAlpha {
		n = 4
	}
	for i := 1; i < 16; i++ {
		for c := range n {
			if e.pixels[(4*i)+c] != e.pixels[c] {
				return false
			}
		}
	}
	return true
}

// encodeColor encodes the 16-pixel color block, choosing between the 4-color
// mode, the 3-color punch-through mode (only when formatIsOneBitAlpha and the
// block actually contains transparent pixels) and the single-color fast path.
func (e *encoder) encodeColor(formatIsOneBitAlpha bool) uint64 {
	if formatIsOneBitAlpha && e.hasTransparentPixelsWhenUsingOneBitAlpha() {
		if e.isSolidColor(true) && (e.pixels[3] == 0x00) {
			return transparentBlock
		}
		return e.encodeColor3()
	}
	if e.isSolidColor(false) {
		return encodeSolidColor(e.pixels[0], e.pixels[1], e.pixels[2])
	}
	return e.encodeColor4()
}

// encodeColor4 implements the 4-color block mode: endpoint selection by
// bounding box, diagonal selection and inset, then one closed-form
// least-squares refinement pass.
func (e *encoder) encodeColor4() uint64 {
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

	if optColor0, optColor1, optIndices, ok := optimizeEndPoints4(&block, indices); ok {
		// Keep whichever of the initial and refined candidates reconstructs
		// with less total squared error: refinement followed by 5:6:5
		// re-quantization is not guaranteed to improve.
		if colorBlockError(&block, optColor0, optColor1, optIndices) <=
			colorBlockError(&block, color0, color1, indices) {
			color0, color1, indices = optColor0, optColor1, optIndices
		}
	}

	return uint64(color0) | (uint64(color1) << 16) | (uint64(indices) << 32)
}

// encodeColor3 implements the 3-color punch-through block mode. Endpoint
// selection only considers pixels that aren't transparent.
//
// The smaller packed endpoint is stored first: col0 <= col1 is the 3-color
// mode signal in the block layout. There is no least-squares refinement pass
// here: the transparent index-3 slot is outside the two-endpoint
// interpolation model that optimizeEndPoints4 solves.
func (e *encoder) encodeColor3() uint64 {
	block := [16][3]float64{}
	num := e.extractColorBlockRGBA(&block)

	maxColor, minColor := findMinMaxColorsBox(&block, num)
	selectDiagonal(&block, num, &maxColor, &minColor)
	insetBBox(&maxColor, &minColor)

	color0 := roundAndExpand565(&maxColor)
	color1 := roundAndExpand565(&minColor)
	if color0 < color1 {
		maxColor, minColor = minColor, maxColor
		color0, color1 = color1, color0
	}
	indices := e.computeIndices3(&maxColor, &minColor)

	return uint64(color1) | (uint64(color0) << 16) | (uint64(indices) << 32)
}

func (e *encoder) extractColorBlockRGB(block *[16][3]float64) {
	for i := range 16 {
		block[i] = [3]float64{
			float64(e.pixels[(4*i)+0]),
			float64(e.pixels[(4*i)+1]),
			float64(e.pixels[(4*i)+2]),
		}
	}
}

// extractColorBlockRGBA is like extractColorBlockRGB but skips transparent
// pixels, returning how many opaque pixels were written to block.
func (e *encoder) extractColorBlockRGBA(block *[16][3]float64) int {
	num := 0
	for i := range 16 {
		if e.pixels[(4*i)+3] > 0x7F {
			block[num] = [3]float64{
				float64(e.pixels[(4*i)+0]),
				float64(e.pixels[(4*i)+1]),
				float64(e.pixels[(4*i)+2]),
			}
			num++
		}
	}
	return num
}

// findMinMaxColorsBox returns the component-wise maximum and minimum over the
// first num block colors: the two corners of the axis-aligned bounding box.
func findMinMaxColorsBox(block *[16][3]float64, num int) (maxColor [3]float64, minColor [3]float64) {
	maxColor = [3]float64{0, 0, 0}
	minColor = [3]float64{255, 255, 255}
	for i := range num {
		for c := range 3 {
			maxColor[c] = max(maxColor[c], block[i][c])
			minColor[c] = min(minColor[c], block[i][c])
		}
	}
	return maxColor, minColor
}

// selectDiagonal picks the bounding box diagonal that best aligns with the
// block's principal spread, by the sign of the R/B and G/B covariances about
// the box center. A negative covariance swaps that component between the two
// corners.
func selectDiagonal(block *[16][3]float64, num int, maxColor *[3]float64, minColor *[3]float64) {
	center := [3]float64{
		(maxColor[0] + minColor[0]) * 0.5,
		(maxColor[1] + minColor[1]) * 0.5,
		(maxColor[2] + minColor[2]) * 0.5,
	}

	covarianceRB := 0.0
	covarianceGB := 0.0
	for i := range num {
		tB := block[i][2] - center[2]
		covarianceRB += (block[i][0] - center[0]) * tB
		covarianceGB += (block[i][1] - center[1]) * tB
	}

	if covarianceRB < 0 {
		maxColor[0], minColor[0] = minColor[0], maxColor[0]
	}
	if covarianceGB < 0 {
		maxColor[1], minColor[1] = minColor[1], maxColor[1]
	}
}

// insetBBox shrinks the bounding box toward its center by 1/16 of its extent
// minus a small fixed bias, countering the systematic rounding error of
// nearest-palette quantization on bounded data.
func insetBBox(maxColor *[3]float64, minColor *[3]float64) {
	for c := range 3 {
		inset := ((maxColor[c] - minColor[c]) / 16) - ((8.0 / 255.0) / 16)
		maxColor[c] = min(max(maxColor[c]-inset, 0), 255)
		minColor[c] = min(max(minColor[c]+inset, 0), 255)
	}
}

// roundAndExpand565 quantizes v to the 5:6:5 grid, returning the packed
// 16-bit word and replacing v with the replicate-bit expansion of the
// quantized channels, so that subsequent math sees the exact values a decoder
// would reconstruct.
func roundAndExpand565(v *[3]float64) uint16 {
	r := uint32(min(max(v[0]*(31.0/255.0), 0), 31) + 0.5)
	g := uint32(min(max(v[1]*(63.0/255.0), 0), 63) + 0.5)
	b := uint32(min(max(v[2]*(31.0/255.0), 0), 31) + 0.5)

	w := uint16((r << 11) | (g << 5) | b)

	r = (r << 3) | (r >> 2)
	g = (g << 2) | (g >> 4)
	b = (b << 3) | (b >> 2)
	*v = [3]float64{float64(r), float64(g), float64(b)}

	return w
}

// expand565 returns the replicate-bit 8-bit expansion of a packed 5:6:5 word.
func expand565(w uint16) [3]float64 {
	r := (w >> 11) & 31
	g := (w >> 5) & 63
	b := w & 31
	return [3]float64{
		float64((r << 3) | (r >> 2)),
		float64((g << 2) | (g >> 4)),
		float64((b << 3) | (b >> 2)),
	}
}

// colorDistance returns the squared Euclidean distance between two colors.
func colorDistance(c0 [3]float64, c1 [3]float64) float64 {
	d0 := c0[0] - c1[0]
	d1 := c0[1] - c1[1]
	d2 := c0[2] - c1[2]
	return (d0 * d0) + (d1 * d1) + (d2 * d2)
}

func lerpColor(a [3]float64, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		(a[0] * (1 - t)) + (b[0] * t),
		(a[1] * (1 - t)) + (b[1] * t),
		(a[2] * (1 - t)) + (b[2] * t),
	}
}

func btou32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// computeIndices4 assigns each pixel the nearest entry of the 4-color palette
// {max, min, lerp(max,min,1/3), lerp(max,min,2/3)}, packed 2 bits per pixel.
//
// The chained comparisons are a branch-free argmin over the 4 candidate
// distances. Exact ties resolve to the lower-numbered palette entry; that
// tie-break is part of the format's reproducibility contract, not an accident
// of this encoding.
func computeIndices4(block *[16][3]float64, maxColor *[3]float64, minColor *[3]float64) uint32 {
	palette := [4][3]float64{}
	palette[0] = *maxColor
	palette[1] = *minColor
	palette[2] = lerpColor(palette[0], palette[1], 1.0/3.0)
	palette[3] = lerpColor(palette[0], palette[1], 2.0/3.0)

	indices := uint32(0)
	for i := range 16 {
		d0 := colorDistance(palette[0], block[i])
		d1 := colorDistance(palette[1], block[i])
		d2 := colorDistance(palette[2], block[i])
		d3 := colorDistance(palette[3], block[i])

		b0 := btou32(d0 > d3)
		b1 := btou32(d1 > d2)
		b2 := btou32(d0 > d2)
		b3 := btou32(d1 > d3)
		b4 := btou32(d2 > d3)

		x0 := b1 & b2
		x1 := b0 & b3
		x2 := b0 & b4

		indices |= (x2 | ((x0 | x1) << 1)) << (2 * i)
	}
	return indices
}

// computeIndices3 assigns each pixel the nearest entry of the 3-color palette
// {min, max, midpoint}, except that transparent pixels are forced to the
// reserved index 3. Ties resolve to the first matching entry.
func (e *encoder) computeIndices3(maxColor *[3]float64, minColor *[3]float64) uint32 {
	palette := [3][3]float64{}
	palette[0] = *minColor
	palette[1] = *maxColor
	palette[2] = [3]float64{
		(palette[0][0] + palette[1][0]) * 0.5,
		(palette[0][1] + palette[1][1]) * 0.5,
		(palette[0][2] + palette[1][2]) * 0.5,
	}

	indices := uint32(0)
	for i := range 16 {
		c := [3]float64{
			float64(e.pixels[(4*i)+0]),
			float64(e.pixels[(4*i)+1]),
			float64(e.pixels[(4*i)+2]),
		}

		d0 := colorDistance(palette[0], c)
		d1 := colorDistance(palette[1], c)
		d2 := colorDistance(palette[2], c)

		index := uint32(0)
		if e.pixels[(4*i)+3] < 0x80 {
			index = 3
		} else if (d0 < d1) && (d0 < d2) {
			index = 0
		} else if d1 < d2 {
			index = 1
		} else {
			index = 2
		}

		indices |= index << (2 * i)
	}
	return indices
}

// optimizeEndPoints4 treats the given index field as a fixed partition and
// solves the 2×2 normal equations for the endpoint pair minimizing the total
// squared error, then re-quantizes, re-orders and re-assigns indices.
//
// ok is false when the system is degenerate (a uniform index field gives a
// zero determinant); the caller keeps its current endpoints in that case.
func optimizeEndPoints4(block *[16][3]float64, indices uint32) (col0 uint16, col1 uint16, retIndices uint32, ok bool) {
	alpha2Sum := 0.0
	beta2Sum := 0.0
	alphaBetaSum := 0.0
	alphaXSum := [3]float64{}
	betaXSum := [3]float64{}

	for i := range 16 {
		bits := indices >> (2 * i)

		beta := float64(bits & 1)
		if (bits & 2) != 0 {
			beta = (1 + beta) / 3
		}
		alpha := 1 - beta

		alpha2Sum += alpha * alpha
		beta2Sum += beta * beta
		alphaBetaSum += alpha * beta
		for c := range 3 {
			alphaXSum[c] += alpha * block[i][c]
			betaXSum[c] += beta * block[i][c]
		}
	}

	denom := (alpha2Sum * beta2Sum) - (alphaBetaSum * alphaBetaSum)
	if denom == 0 {
		return 0, 0, 0, false
	}
	factor := 1 / denom

	a := [3]float64{}
	b := [3]float64{}
	for c := range 3 {
		a[c] = min(max(((alphaXSum[c]*beta2Sum)-(betaXSum[c]*alphaBetaSum))*factor, 0), 255)
		b[c] = min(max(((betaXSum[c]*alpha2Sum)-(alphaXSum[c]*alphaBetaSum))*factor, 0), 255)
	}

	col0 = roundAndExpand565(&a)
	col1 = roundAndExpand565(&b)
	if col0 < col1 {
		a, b = b, a
		col0, col1 = col1, col0
	}

	return col0, col1, computeIndices4(block, &a, &b), true
}

// colorBlockError returns the total squared reconstruction error of a packed
// 4-color block against the source colors.
func colorBlockError(block *[16][3]float64, col0 uint16, col1 uint16, indices uint32) float64 {
	c0 := expand565(col0)
	c1 := expand565(col1)
	palette := [4][3]float64{
		c0,
		c1,
		lerpColor(c0, c1, 1.0/3.0),
		lerpColor(c0, c1, 2.0/3.0),
	}

	total := 0.0
	for i := range 16 {
		total += colorDistance(palette[(indices>>(2*i))&3], block[i])
	}
	return total
}

// encodeGreen implements the brute-force green channel compressor: a 4-color
// block reproducing only the green channel with minimum absolute error, with
// red pinned to 31 and blue to 0 on both endpoints.
func (e *encoder) encodeGreen() uint64 {
	ming, maxg := uint8(63), uint8(0)
	for i := range 16 {
		green := e.pixels[(4*i)+1] >> 2
		ming = min(ming, green)
		maxg = max(maxg, green)
	}

	bestG0, bestG1 := int32(maxg), int32(ming)

	if (maxg - ming) > 4 {
		bestError := e.greenBlockError(bestG0, bestG1)

		for g0 := int32(ming) + 5; g0 < int32(maxg); g0++ {
			for g1 := int32(ming); g1 < g0-4; g1++ {
				// The two endpoint-to-extremum gaps lower-bound the total
				// error of any (g0, g1) candidate.
				if ((int32(maxg) - g0) + (g1 - int32(ming))) > bestError {
					continue
				}

				if err := e.greenBlockError(g0, g1); err < bestError {
					bestError, bestG0, bestG1 = err, g0, g1
				}
			}
		}
	}

	col0 := (uint16(31) << 11) | (uint16(bestG0) << 5)
	col1 := (uint16(31) << 11) | (uint16(bestG1) << 5)
	indices := e.computeGreenIndices(greenPalette(bestG0, bestG1))
	return uint64(col0) | (uint64(col1) << 16) | (uint64(indices) << 32)
}

// greenPalette expands two 6-bit green endpoints to the 4-entry interpolated
// palette a decoder would reconstruct.
func greenPalette(g0 int32, g1 int32) [4]int32 {
	palette := [4]int32{}
	palette[0] = (g0 << 2) | (g0 >> 4)
	palette[1] = (g1 << 2) | (g1 >> 4)
	palette[2] = ((2 * palette[0]) + palette[1]) / 3
	palette[3] = ((2 * palette[1]) + palette[0]) / 3
	return palette
}

func (e *encoder) greenBlockError(g0 int32, g1 int32) int32 {
	palette := greenPalette(g0, g1)

	totalError := int32(0)
	for i := range 16 {
		green := int32(e.pixels[(4*i)+1])

		err := abs32(green - palette[0])
		err = min(err, abs32(green-palette[1]))
		err = min(err, abs32(green-palette[2]))
		err = min(err, abs32(green-palette[3]))

		totalError += err
	}
	return totalError
}

// computeGreenIndices is computeIndices4 restricted to the green channel,
// with the same branch-free argmin and the same lowest-index tie-break.
func (e *encoder) computeGreenIndices(palette [4]int32) uint32 {
	indices := uint32(0)
	for i := range 16 {
		green := int32(e.pixels[(4*i)+1])

		d0 := abs32(palette[0] - green)
		d1 := abs32(palette[1] - green)
		d2 := abs32(palette[2] - green)
		d3 := abs32(palette[3] - green)

		b0 := btou32(d0 > d3)
		b1 := btou32(d1 > d2)
		b2 := btou32(d0 > d2)
		b3 := btou32(d1 > d3)
		b4 := btou32(d2 > d3)

		x0 := b1 & b2
		x1 := b0 & b3
		x2 := b0 & b4

		indices |= (x2 | ((x0 | x1) << 1)) << (2 * i)
	}
	return indices
}

// encodeAlpha4 emits the explicit 4-bit alpha block: each pixel's alpha
// truncated to its top 4 bits, in pixel order. This mode has no free
// parameters to fit.
func (e *encoder) encodeAlpha4() uint64 {
	code := uint64(0)
	for i := range 16 {
		code |= uint64(e.pixels[(4*i)+3]>>4) << (4 * i)
	}
	return code
}

// alphaBlock is the working form of an interpolated alpha block: two 8-bit
// endpoints and sixteen 3-bit palette indices, unpacked for easy mutation by
// the refinement loop.
type alphaBlock struct {
	alpha0  uint8
	alpha1  uint8
	indices [16]uint8
}

// evaluatePalette writes the block's 8 reconstruction levels. With
// alpha0 > alpha1 all 6 interior levels interpolate the endpoints; otherwise
// only 4 do, and the last two slots are absolute 0 and 255.
func (b *alphaBlock) evaluatePalette(alphas *[8]uint8) {
	a0, a1 := int32(b.alpha0), int32(b.alpha1)
	alphas[0] = b.alpha0
	alphas[1] = b.alpha1
	if a0 > a1 {
		for i := int32(2); i < 8; i++ {
			alphas[i] = uint8((((8 - i) * a0) + ((i - 1) * a1)) / 7)
		}
	} else {
		for i := int32(2); i < 6; i++ {
			alphas[i] = uint8((((6 - i) * a0) + ((i - 1) * a1)) / 5)
		}
		alphas[6] = 0x00
		alphas[7] = 0xFF
	}
}

// computeAlphaIndices assigns each pixel the nearest of the block's 8 alpha
// levels (first match wins on ties) and returns the total squared error.
func (e *encoder) computeAlphaIndices(block *alphaBlock) uint32 {
	alphas := [8]uint8{}
	block.evaluatePalette(&alphas)

	totalError := uint32(0)
	for i := range 16 {
		alpha := e.pixels[(4*i)+3]

		bestError, best := uint32(256*256), uint8(0)
		for p := range 8 {
			d := int32(alphas[p]) - int32(alpha)
			if err := uint32(d * d); err < bestError {
				bestError, best = err, uint8(p)
			}
		}

		totalError += bestError
		block.indices[i] = best
	}
	return totalError
}

// optimizeAlpha8 treats the block's index field as a fixed partition and
// solves the 2×2 normal equations for the endpoint pair minimizing the total
// squared error over the 8-level ramp.
//
// A zero determinant leaves the block unchanged. If the endpoints solve out
// in ascending order they are swapped and every index remapped through the
// fixed permutation that reverses the 6-level ramp while keeping the two
// reserved slots in place. If they solve out equal, every index is forced to
// the endpoint-0 slot rather than leaving an ambiguous ramp.
func (e *encoder) optimizeAlpha8(block *alphaBlock) {
	alpha2Sum := 0.0
	beta2Sum := 0.0
	alphaBetaSum := 0.0
	alphaXSum := 0.0
	betaXSum := 0.0

	for i := range 16 {
		idx := block.indices[i]

		alpha := 0.0
		if idx < 2 {
			alpha = 1 - float64(idx)
		} else {
			alpha = (8 - float64(idx)) / 7
		}
		beta := 1 - alpha

		x := float64(e.pixels[(4*i)+3])
		alpha2Sum += alpha * alpha
		beta2Sum += beta * beta
		alphaBetaSum += alpha * beta
		alphaXSum += alpha * x
		betaXSum += beta * x
	}

	denom := (alpha2Sum * beta2Sum) - (alphaBetaSum * alphaBetaSum)
	if denom == 0 {
		return
	}
	factor := 1 / denom

	a := ((alphaXSum * beta2Sum) - (betaXSum * alphaBetaSum)) * factor
	b := ((betaXSum * alpha2Sum) - (alphaXSum * alphaBetaSum)) * factor

	alpha0 := uint8(min(max(a, 0), 255))
	alpha1 := uint8(min(max(b, 0), 255))

	if alpha0 < alpha1 {
		alpha0, alpha1 = alpha1, alpha0

		for i := range 16 {
			if idx := block.indices[i]; idx < 2 {
				block.indices[i] = 1 - idx
			} else {
				block.indices[i] = 9 - idx
			}
		}
	} else if alpha0 == alpha1 {
		for i := range 16 {
			block.indices[i] = 0
		}
	}

	block.alpha0 = alpha0
	block.alpha1 = alpha1
}

// encodeAlpha8 emits the interpolated 8-level alpha block: endpoints seeded
// from the observed extrema, then an alternating assign/solve loop that keeps
// the best block seen, terminating on no improvement or on an index field
// repeating the best one's.
func (e *encoder) encodeAlpha8() uint64 {
	alpha0, alpha1 := uint8(0), uint8(255)
	for i := range 16 {
		alpha := e.pixels[(4*i)+3]
		alpha0 = max(alpha0, alpha)
		alpha1 = min(alpha1, alpha)
	}

	// Pull the endpoints slightly inside the observed extrema, which seats
	// the 6 interpolated levels better on the reconstruction grid.
	block := alphaBlock{
		alpha0: alpha0 - ((alpha0 - alpha1) / 34),
		alpha1: alpha1 + ((alpha0 - alpha1) / 34),
	}
	bestError := e.computeAlphaIndices(&block)
	bestBlock := block

	for {
		e.optimizeAlpha8(&block)
		err := e.computeAlphaIndices(&block)

		if err >= bestError {
			break
		}
		if block.indices == bestBlock.indices {
			bestBlock = block
			break
		}

		bestError = err
		bestBlock = block
	}

	return packAlphaBlock(&bestBlock)
}

func packAlphaBlock(b *alphaBlock) uint64 {
	code := uint64(b.alpha0) | (uint64(b.alpha1) << 8)
	for i := range 16 {
		code |= uint64(b.indices[i]) << (16 + (3 * i))
	}
	return code
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func writeU64LE(b []byte, u uint64) {
	b[0] = uint8(u >> 0)
	b[1] = uint8(u >> 8)
	b[2] = uint8(u >> 16)
	b[3] = uint8(u >> 24)
	b[4] = uint8(u >> 32)
	b[5] = uint8(u >> 40)
	b[6] = uint8(u >> 48)
	b[7] = uint8(u >> 56)
}
