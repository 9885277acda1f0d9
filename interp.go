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

// interpolate evaluates a lookup table at a fractional input in [0, 255]
// by linear interpolation between the two neighbouring entries.
// Inputs outside the range are clamped.
func interpolate(t *[256]float64, x float64) float64 {
	if !(x > 0) {
		return t[0]
	}
	if x >= 255 {
		return t[255]
	}
	i := int(x)
	frac := x - float64(i)
	return t[i] + frac*(t[i+1]-t[i])
}
