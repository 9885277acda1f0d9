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

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// whitePointD65 is the XYZ reference white used for the Lab conversion.
var whitePointD65 = [3]float64{0.95047, 1.0, 1.08883}

// rgbToXYZMatrix converts linear sRGB to XYZ (D65), row major.
var rgbToXYZMatrix = []float64{
	0.41239079926595948, 0.35758433938387796, 0.18048078840183429,
	0.21263900587151036, 0.71516867876775593, 0.072192315360733715,
	0.019330818715591851, 0.11919477979462599, 0.95053215224966058,
}

var xyzToRGBMatrix = invertMatrix3x3(rgbToXYZMatrix)

// RGBToLab converts an sRGB pixel with components in [0, 255] to CIE Lab
// relative to the D65 white point.  L is in [0, 100].
func RGBToLab(r, g, b float64) (L, A, B float64) {
	return linearToLab(srgbToLinear(r/255), srgbToLinear(g/255), srgbToLinear(b/255))
}

// LabToRGB is the inverse of [RGBToLab].  Colours outside the sRGB gamut
// are clipped, and the result is in [0, 255].
func LabToRGB(L, A, B float64) (r, g, b float64) {
	lr, lg, lb := labToLinear(L, A, B)
	return 255 * linearToSRGB(lr), 255 * linearToSRGB(lg), 255 * linearToSRGB(lb)
}

func linearToLab(r, g, b float64) (L, A, B float64) {
	m := rgbToXYZMatrix
	x := m[0]*r + m[1]*g + m[2]*b
	y := m[3]*r + m[4]*g + m[5]*b
	z := m[6]*r + m[7]*g + m[8]*b
	return xyzToLab(x, y, z)
}

func labToLinear(L, A, B float64) (r, g, b float64) {
	x, y, z := labToXYZ(L, A, B)
	m := xyzToRGBMatrix
	r = clamp(m[0]*x+m[1]*y+m[2]*z, 0, 1)
	g = clamp(m[3]*x+m[4]*y+m[5]*z, 0, 1)
	b = clamp(m[6]*x+m[7]*y+m[8]*z, 0, 1)
	return r, g, b
}

// xyzToLab converts XYZ to Lab relative to the D65 white point.
func xyzToLab(X, Y, Z float64) (L, a, b float64) {
	fx := labF(X / whitePointD65[0])
	fy := labF(Y / whitePointD65[1])
	fz := labF(Z / whitePointD65[2])

	L = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return L, a, b
}

// labToXYZ converts Lab to XYZ relative to the D65 white point.
func labToXYZ(L, a, b float64) (X, Y, Z float64) {
	fy := (L + 16) / 116
	fx := a/500 + fy
	fz := fy - b/200

	return labFInv(fx) * whitePointD65[0], labFInv(fy) * whitePointD65[1], labFInv(fz) * whitePointD65[2]
}

func labF(t float64) float64 {
	// threshold (6/29)^3, linear part t/(3*(6/29)^2) + 4/29
	if t > 216.0/24389.0 {
		return math.Cbrt(t)
	}
	return t*841.0/108.0 + 16.0/116.0
}

func labFInv(t float64) float64 {
	if t > 6.0/29.0 {
		return t * t * t
	}
	return (t - 16.0/116.0) * 108.0 / 841.0
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// EncodeLab packs a Lab colour into three bytes, as used by [LabTables].
// L is scaled from [0, 100] to [0, 255], a and b are offset by 128.
// The result is 0x00LLAABB.
func EncodeLab(L, A, B float64) uint32 {
	l8 := roundByte(L * 2.55)
	a8 := roundByte(A + 128)
	b8 := roundByte(B + 128)
	return uint32(l8)<<16 | uint32(a8)<<8 | uint32(b8)
}

// DecodeLab is the inverse of [EncodeLab].
func DecodeLab(lab uint32) (L, A, B float64) {
	L = float64((lab>>16)&0xFF) / 2.55
	A = float64((lab>>8)&0xFF) - 128
	B = float64(lab&0xFF) - 128
	return L, A, B
}

const labTableSize = 1 << 24

// LabTables maps between packed 24-bit RGB pixels and byte-encoded Lab
// colours (see [EncodeLab]).
//
// Because the Lab values are quantised to 8 bits per component, a round
// trip through both tables does not reproduce every pixel exactly.  The
// colour difference of a round trip stays below 2 Lab units (CIE76).
// Single components can still change by up to 26 levels, where they
// hardly affect the colour.
//
// The tables are immutable and safe for concurrent use.
type LabTables struct {
	toLab []uint32
	toRGB []uint32
}

// ToLab returns the encoded Lab colour of a 0x00RRGGBB pixel.
// The top byte of the argument is ignored.
func (t *LabTables) ToLab(rgb uint32) uint32 {
	return t.toLab[rgb&0xFFFFFF]
}

// ToRGB returns the 0x00RRGGBB pixel of an encoded Lab colour.
// The top byte of the argument is ignored.
func (t *LabTables) ToRGB(lab uint32) uint32 {
	return t.toRGB[lab&0xFFFFFF]
}

var (
	labOnce   sync.Once
	labShared *LabTables
	labReady  atomic.Bool
)

// SharedLabTables returns the process-wide Lab lookup tables.
// The tables are built on the first call, which takes a noticeable amount
// of time and allocates 128 MiB.  Concurrent first calls wait for a single
// build.
func SharedLabTables() *LabTables {
	labOnce.Do(func() {
		labShared = buildLabTables()
		labReady.Store(true)
	})
	return labShared
}

// LabTablesReady reports whether [SharedLabTables] has finished building
// the tables.
func LabTablesReady() bool {
	return labReady.Load()
}

func buildLabTables() *LabTables {
	t := &LabTables{
		toLab: make([]uint32, labTableSize),
		toRGB: make([]uint32, labTableSize),
	}

	var lin [256]float64
	for i := range lin {
		lin[i] = srgbToLinear(float64(i) / 255)
	}

	// Bands of 65536 entries are independent of each other.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for hi := range 256 {
		g.Go(func() error {
			t.fillBand(hi, &lin)
			return nil
		})
	}
	_ = g.Wait() // the bands never fail

	return t
}

func (t *LabTables) fillBand(hi int, lin *[256]float64) {
	base := hi << 16
	for mid := range 256 {
		for lo := range 256 {
			idx := base | mid<<8 | lo

			t.toLab[idx] = EncodeLab(linearToLab(lin[hi], lin[mid], lin[lo]))

			r, g, b := LabToRGB(DecodeLab(uint32(idx)))
			t.toRGB[idx] = uint32(roundByte(r))<<16 | uint32(roundByte(g))<<8 | uint32(roundByte(b))
		}
	}
}

// invertMatrix3x3 returns the inverse of a 3x3 matrix.
func invertMatrix3x3(m []float64) []float64 {
	if len(m) != 9 {
		return nil
	}

	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det == 0 {
		return nil
	}

	invDet := 1.0 / det

	return []float64{
		(e*i - f*h) * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet,
		(f*g - d*i) * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet,
		(d*h - e*g) * invDet, (b*g - a*h) * invDet, (a*e - b*d) * invDet,
	}
}
