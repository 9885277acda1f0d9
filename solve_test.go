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
	"math/rand"
	"testing"
)

func TestSolveLinear(t *testing.T) {
	var table [256]float64
	solve(Linear, []Point{{0, 0}, {252, 63}}, &table)
	for x := range 256 {
		want := float64(x) / 4
		if x > 252 {
			want = 63
		}
		if math.Abs(table[x]-want) > 1e-12 {
			t.Errorf("table[%d] = %f, want %f", x, table[x], want)
		}
	}
}

func TestSolveFlatEnds(t *testing.T) {
	for _, mode := range []DrawMode{Linear, Spline} {
		var table [256]float64
		solve(mode, []Point{{50, 100}, {120, 90}, {200, 150}}, &table)
		for x := range 50 {
			if table[x] != 100 {
				t.Errorf("%s: table[%d] = %f, want 100", mode, x, table[x])
			}
		}
		for x := 201; x < 256; x++ {
			if table[x] != 150 {
				t.Errorf("%s: table[%d] = %f, want 150", mode, x, table[x])
			}
		}
	}
}

func TestSplineTwoPoints(t *testing.T) {
	points := []Point{{10, 200}, {240, 30}}
	var spline, linear [256]float64
	solve(Spline, points, &spline)
	solve(Linear, points, &linear)
	if spline != linear {
		t.Error("two point spline differs from the straight line")
	}
}

func TestSplineCollinear(t *testing.T) {
	for _, points := range [][]Point{
		{{0, 0}, {100, 50}, {250, 125}},
		{{0, 0}, {100, 50}, {200, 100}, {250, 125}},
		{{4, 2}, {10, 5}, {60, 30}, {62, 31}, {200, 100}},
	} {
		var table [256]float64
		solve(Spline, points, &table)
		for _, p := range points {
			for x := int(p.X) - 2; x <= int(p.X)+2; x++ {
				if x < int(points[0].X) || x > int(points[len(points)-1].X) {
					continue
				}
				if math.Abs(table[x]-float64(x)/2) > 1e-9 {
					t.Errorf("%d points: table[%d] = %f, want %f", len(points), x, table[x], float64(x)/2)
				}
			}
		}
	}
}

// randomPoints returns between 2 and MaxPoints points with strictly
// increasing x coordinates.
func randomPoints(rng *rand.Rand) []Point {
	n := 2 + rng.Intn(MaxPoints-1)
	xs := rng.Perm(256)[:n]
	seen := make([]bool, 256)
	for _, x := range xs {
		seen[x] = true
	}
	points := make([]Point, 0, n)
	for x, ok := range seen {
		if ok {
			points = append(points, Point{uint8(x), uint8(rng.Intn(256))})
		}
	}
	return points
}

func TestSplineKnots(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for range 200 {
		points := randomPoints(rng)
		var table [256]float64
		solve(Spline, points, &table)
		for _, p := range points {
			if table[p.X] != float64(p.Y) {
				t.Fatalf("%v: table[%d] = %f, want %d", points, p.X, table[p.X], p.Y)
			}
		}
		for x, v := range table {
			if v < 0 || v > 255 {
				t.Fatalf("%v: table[%d] = %f out of range", points, x, v)
			}
		}
	}
}

// referenceSpline evaluates the natural cubic spline through points at x,
// using the second derivatives found by Gaussian elimination.
func referenceSpline(points []Point, x float64) float64 {
	n := len(points)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		xs[i], ys[i] = float64(p.X), float64(p.Y)
	}

	// system for the second derivatives M[1], ..., M[n-2]
	m := n - 2
	a := make([][]float64, m)
	for k := range a {
		a[k] = make([]float64, m+1)
		i := k + 1
		h0, h1 := xs[i]-xs[i-1], xs[i+1]-xs[i]
		if k > 0 {
			a[k][k-1] = h0
		}
		a[k][k] = 2 * (h0 + h1)
		if k < m-1 {
			a[k][k+1] = h1
		}
		a[k][m] = 6 * ((ys[i+1]-ys[i])/h1 - (ys[i]-ys[i-1])/h0)
	}
	for k := range m {
		for j := k + 1; j < m; j++ {
			f := a[j][k] / a[k][k]
			for l := k; l <= m; l++ {
				a[j][l] -= f * a[k][l]
			}
		}
	}
	M := make([]float64, n)
	for k := m - 1; k >= 0; k-- {
		s := a[k][m]
		for l := k + 1; l < m; l++ {
			s -= a[k][l] * M[l+1]
		}
		M[k+1] = s / a[k][k]
	}

	i := 0
	for i < n-2 && x > xs[i+1] {
		i++
	}
	h := xs[i+1] - xs[i]
	u, v := xs[i+1]-x, x-xs[i]
	return M[i]*u*u*u/(6*h) + M[i+1]*v*v*v/(6*h) +
		(ys[i]/h-M[i]*h/6)*u + (ys[i+1]/h-M[i+1]*h/6)*v
}

func TestSplineReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 100 {
		points := randomPoints(rng)
		if len(points) < 3 {
			continue
		}
		var table [256]float64
		solve(Spline, points, &table)
		for x := int(points[0].X); x <= int(points[len(points)-1].X); x++ {
			want := clamp(referenceSpline(points, float64(x)), 0, 255)
			if math.Abs(table[x]-want) > 1e-6 {
				t.Fatalf("%v: table[%d] = %f, want %f", points, x, table[x], want)
			}
		}
	}
}

func TestSolveGamma(t *testing.T) {
	points := []Point{{0, 0}, {128, 64}, {255, 255}}
	var table [256]float64
	e := solve(Gamma, points, &table)

	want := math.Log(64.0/255) / math.Log(128.0/255)
	if math.Abs(e-want) > 1e-12 {
		t.Errorf("exponent = %f, want %f", e, want)
	}
	if roundByte(table[128]) != 64 {
		t.Errorf("table[128] = %f, want 64", table[128])
	}
	if table[0] != 0 || table[255] != 255 {
		t.Errorf("end points: %f %f", table[0], table[255])
	}
}

func TestGammaDisplayRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for range 100 {
		x0 := rng.Intn(100)
		x2 := 155 + rng.Intn(101)
		y0 := rng.Intn(100)
		y2 := 155 + rng.Intn(101)
		if rng.Intn(2) == 0 {
			y0, y2 = y2, y0
		}
		x1 := x0 + 1 + rng.Intn(x2-x0-1)
		y1 := min(y0, y2) + 1 + rng.Intn(max(y0, y2)-min(y0, y2)-1)

		c := NewCurve()
		err := c.SetPoints(Gamma, []Point{
			{uint8(x0), uint8(y0)}, {uint8(x1), uint8(y1)}, {uint8(x2), uint8(y2)},
		})
		if err != nil {
			t.Fatal(err)
		}
		pts := c.Points()
		e := gammaExponent(pts[0], pts[1], pts[2])
		got := NewCurve()
		got.SetPoints(Gamma, pts)
		if got.DisplayGamma() != c.DisplayGamma() {
			t.Errorf("%v: gamma %s != %s", pts, got.DisplayGamma(), c.DisplayGamma())
		}
		if math.Abs(e-c.Gamma()) > 1e-12 {
			t.Errorf("%v: exponent %f != %f", pts, e, c.Gamma())
		}
	}
}

func TestGammaDegenerate(t *testing.T) {
	tests := [][3]Point{
		{{0, 100}, {128, 100}, {255, 100}},
		{{0, 0}, {128, 0}, {255, 255}},
		{{0, 0}, {128, 255}, {255, 255}},
	}
	for _, p := range tests {
		if e := gammaExponent(p[0], p[1], p[2]); e != 1 {
			t.Errorf("%v: exponent %f, want 1", p, e)
		}
	}
}

func TestInterpolate(t *testing.T) {
	var table [256]float64
	for i := range table {
		table[i] = float64(2 * i)
	}
	tests := []struct {
		x, want float64
	}{
		{0, 0},
		{3.25, 6.5},
		{254.5, 509},
		{255, 510},
		{-4, 0},
		{300, 510},
		{math.NaN(), 0},
	}
	for _, test := range tests {
		if got := interpolate(&table, test.x); got != test.want {
			t.Errorf("interpolate(%g) = %g, want %g", test.x, got, test.want)
		}
	}
}
