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

import "math"

// solve fills t with the curve through the given control points and
// returns the exponent of the power law for [Gamma] curves, or 1
// otherwise.
//
// The points must be valid for the draw mode (see validatePoints).
// Outside the range of the control points the curve is continued flat.
func solve(mode DrawMode, points []Point, t *[256]float64) float64 {
	assertPoints(mode, points)

	first := points[0]
	last := points[len(points)-1]
	for x := 0; x < int(first.X); x++ {
		t[x] = float64(first.Y)
	}

	exponent := 1.0
	switch {
	case mode == Gamma:
		exponent = solveGamma(points, t)
	case mode == Spline && len(points) > 2:
		solveSpline(points, t)
	default:
		solveLinear(points, t)
	}

	for x := int(last.X) + 1; x < 256; x++ {
		t[x] = float64(last.Y)
	}
	return exponent
}

func solveLinear(points []Point, t *[256]float64) {
	for i := 1; i < len(points); i++ {
		x0, y0 := float64(points[i-1].X), float64(points[i-1].Y)
		x1, y1 := float64(points[i].X), float64(points[i].Y)
		for x := int(points[i-1].X); x <= int(points[i].X); x++ {
			t[x] = (float64(x)-x0)*(y1-y0)/(x1-x0) + y0
		}
	}
}

// solveSpline fits a natural cubic spline through at least three points.
//
// On segment i the spline is a*s^3 + b[i]*s^2 + c*s + y[i] with
// s = x - x[i].  The b coefficients are half the second derivative at the
// knots and vanish at both ends.
func solveSpline(points []Point, t *[256]float64) {
	n := len(points)
	h := make([]float64, n-1)
	slope := make([]float64, n-1)
	for i := range h {
		h[i] = float64(points[i+1].X) - float64(points[i].X)
		slope[i] = (float64(points[i+1].Y) - float64(points[i].Y)) / h[i]
	}

	b := make([]float64, n)
	if n == 3 {
		b[1] = 3 * (slope[1] - slope[0]) / (2 * (h[0] + h[1]))
	} else {
		// Row k of the tridiagonal system determines b[k+1]:
		//   h[k]*b[k] + 2*(h[k]+h[k+1])*b[k+1] + h[k+1]*b[k+2] = rhs[k]
		m := n - 2
		diag := make([]float64, m)
		rhs := make([]float64, m)
		for k := range m {
			diag[k] = 2 * (h[k] + h[k+1])
			rhs[k] = 3 * (slope[k+1] - slope[k])
		}
		for k := 1; k < m; k++ {
			w := h[k] / diag[k-1]
			diag[k] -= w * h[k]
			rhs[k] -= w * rhs[k-1]
		}
		b[m] = rhs[m-1] / diag[m-1]
		for k := m - 2; k >= 0; k-- {
			b[k+1] = (rhs[k] - h[k+1]*b[k+2]) / diag[k]
		}
	}

	for i := 0; i < n-1; i++ {
		a := (b[i+1] - b[i]) / (3 * h[i])
		c := slope[i] - h[i]*(2*b[i]+b[i+1])/3
		d := float64(points[i].Y)
		x0 := int(points[i].X)
		for x := x0; x < int(points[i+1].X); x++ {
			s := float64(x - x0)
			t[x] = clamp(((a*s+b[i])*s+c)*s+d, 0, 255)
		}
	}
	last := points[n-1]
	t[last.X] = float64(last.Y)
}

// solveGamma fits y = y0 + dy*((x-x0)/dx)^e through three points.
func solveGamma(points []Point, t *[256]float64) float64 {
	p0, p2 := points[0], points[2]
	exponent := gammaExponent(points[0], points[1], points[2])

	x0, y0 := float64(p0.X), float64(p0.Y)
	dx := float64(p2.X) - x0
	dy := float64(p2.Y) - y0
	for x := int(p0.X); x <= int(p2.X); x++ {
		t[x] = y0 + dy*math.Pow((float64(x)-x0)/dx, exponent)
	}
	return exponent
}

// gammaExponent returns the exponent e of the power law through the
// three points.  If the middle point does not lie strictly between the
// end points, the result is 1.
func gammaExponent(p0, p1, p2 Point) float64 {
	dy := float64(p2.Y) - float64(p0.Y)
	if dy == 0 {
		return 1
	}
	ry := (float64(p1.Y) - float64(p0.Y)) / dy
	rx := (float64(p1.X) - float64(p0.X)) / (float64(p2.X) - float64(p0.X))
	if ry <= 0 || ry >= 1 {
		return 1
	}
	return math.Log(ry) / math.Log(rx)
}
