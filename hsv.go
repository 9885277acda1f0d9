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

// HueSteps is the number of hue values used by [RGBToHSV].
// Each of the six sectors of the colour wheel is divided into 256 steps.
const HueSteps = 6 * 256

// RGBToHSV converts a pixel to HSV, using integer arithmetic.
// The hue h is in [0, HueSteps), saturation and value are in [0, 255].
// Grey pixels have hue and saturation 0.
func RGBToHSV(r, g, b uint8) (h uint16, s, v uint8) {
	ri, gi, bi := int32(r), int32(g), int32(b)
	mx := max(ri, gi, bi)
	mn := min(ri, gi, bi)
	delta := mx - mn

	v = uint8(mx)
	if mx == 0 {
		return 0, 0, 0
	}
	s = uint8((delta*255 + mx/2) / mx)
	if delta == 0 {
		return 0, s, v
	}

	var base, num int32
	switch mx {
	case ri:
		base, num = 0, gi-bi
	case gi:
		base, num = 512, bi-ri
	default:
		base, num = 1024, ri-gi
	}
	var hi int32
	if num >= 0 {
		hi = base + (num*256+delta/2)/delta
	} else {
		hi = base - (-num*256+delta/2)/delta
	}
	if hi < 0 {
		hi += HueSteps
	} else if hi >= HueSteps {
		hi -= HueSteps
	}
	return uint16(hi), s, v
}

// HSVToRGB is the inverse of [RGBToHSV].
// Hue values outside [0, HueSteps) are reduced modulo HueSteps.
func HSVToRGB(h uint16, s, v uint8) (r, g, b uint8) {
	h %= HueSteps
	sector := h >> 8
	f := int32(h & 0xFF)
	vi, si := int32(v), int32(s)

	p := uint8((vi*(255-si) + 127) / 255)
	q := uint8((vi*(65280-si*f) + 32640) / 65280)
	t := uint8((vi*(65280-si*(256-f)) + 32640) / 65280)

	switch sector {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// hueScale maps the six sectors of the colour wheel onto [0, 255).
const hueScale = 42.5

// RGBToHSVFloat converts a pixel with components in [0, 255] to HSV.
// The hue is in [0, 255), saturation and value are in [0, 255].
func RGBToHSVFloat(r, g, b float64) (h, s, v float64) {
	mx := max(r, g, b)
	mn := min(r, g, b)
	delta := mx - mn

	v = mx
	if mx <= 0 {
		return 0, 0, v
	}
	s = delta / mx * 255
	if delta <= 0 {
		return 0, s, v
	}

	switch mx {
	case r:
		h = (g - b) / delta
		if h < 0 {
			h += 6
		}
	case g:
		h = 2 + (b-r)/delta
	default:
		h = 4 + (r-g)/delta
	}
	h *= hueScale
	if h >= 255 {
		h -= 255
	}
	return h, s, v
}

// HSVToRGBFloat is the inverse of [RGBToHSVFloat].
// A hue of 255 is the same as a hue of 0.
func HSVToRGBFloat(h, s, v float64) (r, g, b float64) {
	s = clamp(s, 0, 255) / 255
	v = clamp(v, 0, 255)
	if s == 0 {
		return v, v, v
	}

	hh := clamp(h, 0, 255) / hueScale
	sector := int(hh)
	f := hh - float64(sector)
	if sector >= 6 {
		sector, f = 0, 0
	}

	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch sector {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
