// seehuhn.de/go/gradation - tone curves for video frames
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package gradation

// BT.601 weights of the luma component, and the chroma scale factors.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114

	chromaU = 1.772 // 2*(1-lumaB)
	chromaV = 1.402 // 2*(1-lumaR)
)

// The same constants in 16.16 fixed point.
const (
	fixLumaR = 19595
	fixLumaG = 38470
	fixLumaB = 7471

	fixToU = 36984 // 1/chromaU
	fixToV = 46745 // 1/chromaV

	fixUToB = 116130 // chromaU
	fixVToR = 91881  // chromaV
	fixUToG = 22554  // chromaU*lumaB/lumaG
	fixVToG = 46802  // chromaV*lumaR/lumaG

	fixHalf   = 32768
	fixOffset = 128 << 16
)

// RGBToYUV converts a pixel to YUV, using 16.16 fixed point arithmetic.
// U and V are offset by 128.
func RGBToYUV(r, g, b uint8) (y, u, v uint8) {
	ri, gi, bi := int32(r), int32(g), int32(b)
	yi := (fixLumaR*ri + fixLumaG*gi + fixLumaB*bi + fixHalf) >> 16
	ui := (fixToU*(bi-yi) + fixOffset + fixHalf) >> 16
	vi := (fixToV*(ri-yi) + fixOffset + fixHalf) >> 16
	return uint8(yi), uint8(clamp(ui, 0, 255)), uint8(clamp(vi, 0, 255))
}

// YUVToRGB is the inverse of [RGBToYUV].  The result is saturated to the
// valid range.
func YUVToRGB(y, u, v uint8) (r, g, b uint8) {
	yi, ui, vi := int32(y), int32(u)-128, int32(v)-128
	ri := yi + ((fixVToR*vi + fixHalf) >> 16)
	gi := yi + ((-fixUToG*ui - fixVToG*vi + fixHalf) >> 16)
	bi := yi + ((fixUToB*ui + fixHalf) >> 16)
	return uint8(clamp(ri, 0, 255)), uint8(clamp(gi, 0, 255)), uint8(clamp(bi, 0, 255))
}

// RGBToYUVFloat converts a pixel with components in [0, 255] to YUV.
// U and V are offset by 128.  The result is not clamped.
func RGBToYUVFloat(r, g, b float64) (y, u, v float64) {
	y = lumaR*r + lumaG*g + lumaB*b
	u = (b-y)/chromaU + 128
	v = (r-y)/chromaV + 128
	return y, u, v
}

// YUVToRGBFloat is the inverse of [RGBToYUVFloat].  The result is
// saturated to [0, 255].
func YUVToRGBFloat(y, u, v float64) (r, g, b float64) {
	r = y + chromaV*(v-128)
	b = y + chromaU*(u-128)
	g = (y - lumaR*r - lumaB*b) / lumaG
	return clamp(r, 0, 255), clamp(g, 0, 255), clamp(b, 0, 255)
}
