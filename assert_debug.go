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

//go:build gradationdebug

package gradation

import "fmt"

func assertPoints(mode DrawMode, points []Point) {
	if err := validatePoints(mode, points); err != nil {
		panic(fmt.Sprintf("gradation: solver called with invalid %s curve %v: %v", mode, points, err))
	}
}
