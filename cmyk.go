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

// RGBToCMYK converts a pixel to CMYK.
// The black component is k = 255 - max(r, g, b), the other components
// measure how far each channel falls short of the maximum.
func RGBToCMYK(r, g, b uint8) (c, m, y, k uint8) {
	ri, gi, bi := int32(r), int32(g), int32(b)
	mx := max(ri, gi, bi)
	div := mx + 1 // 256 - k, never zero
	c = uint8(((mx-ri)*256 + div/2) / div)
	m = uint8(((mx-gi)*256 + div/2) / div)
	y = uint8(((mx-bi)*256 + div/2) / div)
	return c, m, y, uint8(255 - mx)
}

// CMYKToRGB is the inverse of [RGBToCMYK].
func CMYKToRGB(c, m, y, k uint8) (r, g, b uint8) {
	return cmykChannel(c, k), cmykChannel(m, k), cmykChannel(y, k)
}

// cmykChannel recombines one colour component with black.
// Only the lower bound needs clamping: the subtracted term is never
// negative, so the result never exceeds 255.
func cmykChannel(c, k uint8) uint8 {
	ci, ki := int32(c), int32(k)
	v := 255 - ((ci*(256-ki)+128)>>8 + ki)
	if v < 0 {
		v = 0
	}
	return uint8(v)
}
