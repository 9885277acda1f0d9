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
	"encoding/binary"
	"errors"
	"math"
)

// Transform applies the curves to every pixel of src and stores the
// result in dst.  Both frames must have the same size; their strides may
// differ.  The alpha byte of every pixel is copied unchanged.
// The frames may be the same, to transform a frame in place.
//
// In [ModeLab] the shared Lab tables are built on first use
// (see [SharedLabTables]).
func (g *Gradation) Transform(dst, src *Frame) error {
	if !g.Mode.IsValid() {
		return errInvalidMode
	}
	if err := src.check(); err != nil {
		return err
	}
	if err := dst.check(); err != nil {
		return err
	}
	if dst.Width != src.Width || dst.Height != src.Height {
		return errFrameMismatch
	}

	width := src.Width
	switch {
	case g.Mode == ModeOff:
		for y := range src.Height {
			copy(dst.row(y), src.row(y))
		}

	case g.Precise && g.Mode != ModeCMYK && g.Mode != ModeLab:
		k := g.floatKernel()
		for y := range src.Height {
			in, out := src.row(y), dst.row(y)
			for x := range width {
				p := binary.LittleEndian.Uint32(in[4*x:])
				r, gr, b := k(float64(p>>16&0xFF), float64(p>>8&0xFF), float64(p&0xFF))
				q := uint32(roundByte(r))<<16 | uint32(roundByte(gr))<<8 | uint32(roundByte(b))
				binary.LittleEndian.PutUint32(out[4*x:], q|p&0xFF000000)
			}
		}

	default:
		k := g.kernel()
		for y := range src.Height {
			in, out := src.row(y), dst.row(y)
			for x := range width {
				p := binary.LittleEndian.Uint32(in[4*x:])
				binary.LittleEndian.PutUint32(out[4*x:], k(p&0xFFFFFF)|p&0xFF000000)
			}
		}
	}
	return nil
}

// Pixel applies the curves to a single pixel, using the integer path.
func (g *Gradation) Pixel(r, gr, b uint8) (uint8, uint8, uint8) {
	p := g.kernel()(uint32(r)<<16 | uint32(gr)<<8 | uint32(b))
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// PixelFloat applies the curves to a single pixel with components in
// [0, 255], using the floating point path which interpolates between
// table entries.  The result is not rounded.
//
// [ModeCMYK] and [ModeLab] have no floating point path; for these modes
// the input is rounded and the integer path is used.
func (g *Gradation) PixelFloat(r, gr, b float64) (float64, float64, float64) {
	return g.floatKernel()(r, gr, b)
}

// kernel returns the integer pixel function of the current mode.
// The function maps 0x00RRGGBB to 0x00RRGGBB.
func (g *Gradation) kernel() func(uint32) uint32 {
	switch cs := g.Channels().(type) {
	case YUVChannels:
		return yuvKernel(cs)
	case CMYKChannels:
		return cmykKernel(cs)
	case HSVChannels:
		return hsvKernel(cs)
	case LabChannels:
		return labKernel(cs, SharedLabTables())
	case RGBChannels:
		switch g.Mode {
		case ModeFull:
			return func(p uint32) uint32 {
				return applyRGB(cs.Master, applyChannels(cs, p))
			}
		case ModeRGBW:
			return func(p uint32) uint32 {
				return applyWeighted(cs.Master, p)
			}
		case ModeFullW:
			return func(p uint32) uint32 {
				return applyWeighted(cs.Master, applyChannels(cs, p))
			}
		case ModeOff:
			return func(p uint32) uint32 { return p }
		default:
			return func(p uint32) uint32 {
				return applyRGB(cs.Master, p)
			}
		}
	}
	panic("unreachable")
}

// applyRGB applies c to all three components of p.
func applyRGB(c *Curve, p uint32) uint32 {
	return c.red[p>>16&0xFF] + c.green[p>>8&0xFF] + c.blue[p&0xFF]
}

// applyChannels applies the red, green and blue curves to p.
func applyChannels(cs RGBChannels, p uint32) uint32 {
	return cs.Red.red[p>>16&0xFF] + cs.Green.green[p>>8&0xFF] + cs.Blue.blue[p&0xFF]
}

// applyWeighted shifts all components of p by the amount the curve c
// changes the weighted brightness of p.
func applyWeighted(c *Curve, p uint32) uint32 {
	bw := (77*(p>>16&0xFF) + 150*(p>>8&0xFF) + 29*(p&0xFF)) >> 8
	r := clamp(int32(p&0xFF0000)+c.redDelta[bw], 0, 0xFF0000)
	g := clamp(int32(p&0x00FF00)+c.greenDelta[bw], 0, 0x00FF00)
	b := clamp(int32(p&0x0000FF)+c.blueDelta[bw], 0, 0x0000FF)
	return uint32(r) | uint32(g) | uint32(b)
}

func yuvKernel(cs YUVChannels) func(uint32) uint32 {
	return func(p uint32) uint32 {
		y, u, v := RGBToYUV(uint8(p>>16), uint8(p>>8), uint8(p))
		r, g, b := YUVToRGB(cs.Y.ints[y], cs.U.ints[u], cs.V.ints[v])
		return pack(r, g, b)
	}
}

func cmykKernel(cs CMYKChannels) func(uint32) uint32 {
	return func(p uint32) uint32 {
		c, m, y, k := RGBToCMYK(uint8(p>>16), uint8(p>>8), uint8(p))
		r, g, b := CMYKToRGB(cs.C.ints[c], cs.M.ints[m], cs.Y.ints[y], cs.K.ints[k])
		return pack(r, g, b)
	}
}

func hsvKernel(cs HSVChannels) func(uint32) uint32 {
	return func(p uint32) uint32 {
		h, s, v := RGBToHSV(uint8(p>>16), uint8(p>>8), uint8(p))
		// the curve moves the hue in whole steps of 6, the remainder is kept
		h = uint16(cs.H.ints[h/6])*6 + h%6
		r, g, b := HSVToRGB(h, cs.S.ints[s], cs.V.ints[v])
		return pack(r, g, b)
	}
}

func labKernel(cs LabChannels, t *LabTables) func(uint32) uint32 {
	return func(p uint32) uint32 {
		lab := t.ToLab(p)
		l := cs.L.red[lab>>16&0xFF] + cs.A.green[lab>>8&0xFF] + cs.B.blue[lab&0xFF]
		return t.ToRGB(l)
	}
}

func pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// floatKernel returns the floating point pixel function of the current
// mode.
func (g *Gradation) floatKernel() func(r, g, b float64) (float64, float64, float64) {
	switch cs := g.Channels().(type) {
	case YUVChannels:
		return func(r, gr, b float64) (float64, float64, float64) {
			y, u, v := RGBToYUVFloat(r, gr, b)
			return YUVToRGBFloat(cs.Y.Eval(y), cs.U.Eval(u), cs.V.Eval(v))
		}
	case HSVChannels:
		return func(r, gr, b float64) (float64, float64, float64) {
			h, s, v := RGBToHSVFloat(r, gr, b)
			return HSVToRGBFloat(cs.H.Eval(h), cs.S.Eval(s), cs.V.Eval(v))
		}
	case RGBChannels:
		m := cs.Master
		switch g.Mode {
		case ModeFull:
			return func(r, gr, b float64) (float64, float64, float64) {
				return m.Eval(cs.Red.Eval(r)), m.Eval(cs.Green.Eval(gr)), m.Eval(cs.Blue.Eval(b))
			}
		case ModeRGBW:
			return func(r, gr, b float64) (float64, float64, float64) {
				return weightedFloat(m, r, gr, b)
			}
		case ModeFullW:
			return func(r, gr, b float64) (float64, float64, float64) {
				return weightedFloat(m, cs.Red.Eval(r), cs.Green.Eval(gr), cs.Blue.Eval(b))
			}
		case ModeOff:
			return func(r, gr, b float64) (float64, float64, float64) {
				return r, gr, b
			}
		default:
			return func(r, gr, b float64) (float64, float64, float64) {
				return m.Eval(r), m.Eval(gr), m.Eval(b)
			}
		}
	}

	// CMYK and Lab
	k := g.kernel()
	return func(r, gr, b float64) (float64, float64, float64) {
		p := k(pack(roundByte(r), roundByte(gr), roundByte(b)))
		return float64(p >> 16 & 0xFF), float64(p >> 8 & 0xFF), float64(p & 0xFF)
	}
}

// weightedFloat is the floating point version of [applyWeighted].
// For integer inputs the brightness is truncated like in the byte path,
// so that both paths round to the same result.
func weightedFloat(c *Curve, r, g, b float64) (float64, float64, float64) {
	bw := (77*r + 150*g + 29*b) / 256
	if r == math.Trunc(r) && g == math.Trunc(g) && b == math.Trunc(b) {
		bw = math.Trunc(bw)
	}
	d := c.Eval(bw) - bw
	return clamp(r+d, 0, 255), clamp(g+d, 0, 255), clamp(b+d, 0, 255)
}

var errFrameMismatch = errors.New("gradation: source and destination frames differ in size")
