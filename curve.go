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
	"errors"
	"fmt"
	"slices"
	"sort"

	"golang.org/x/exp/constraints"
)

// Curve is the transfer function of one channel.
//
// For the draw modes [Linear], [Spline] and [Gamma] the curve is described
// by its control points, and the lookup table is recomputed after every
// change.  In [Pen] mode no control points are kept and the table is
// edited directly.
//
// The floating point table is the only stored representation of the
// transfer function.  The rounded byte table and the pre-shifted tables
// used by the integer pixel path are derived from it whenever it changes.
//
// A Curve is not safe for concurrent use.  In particular, a curve must not
// be edited while a frame transform which uses it is in progress.
type Curve struct {
	mode   DrawMode
	points []Point
	gamma  float64

	table [256]float64

	ints [256]uint8

	// ints shifted into the R, G and B positions of a packed pixel
	red, green, blue [256]uint32

	// ints[i]-i shifted into the R, G and B positions of a packed pixel
	redDelta, greenDelta, blueDelta [256]int32
}

// NewCurve returns an identity curve in [Pen] mode.
func NewCurve() *Curve {
	c := &Curve{}
	c.init()
	return c
}

func (c *Curve) init() {
	c.mode = Pen
	c.points = nil
	c.gamma = 1
	for i := range c.table {
		c.table[i] = float64(i)
	}
	c.update()
}

func (c *Curve) clone() Curve {
	res := *c
	res.points = slices.Clone(c.points)
	return res
}

// resolve recomputes the table from the control points.
func (c *Curve) resolve() {
	if c.mode == Pen {
		c.gamma = 1
	} else {
		c.gamma = solve(c.mode, c.points, &c.table)
	}
	c.update()
}

// update refreshes the tables derived from c.table.
func (c *Curve) update() {
	for i, v := range c.table {
		q := roundByte(v)
		c.ints[i] = q
		c.red[i] = uint32(q) << 16
		c.green[i] = uint32(q) << 8
		c.blue[i] = uint32(q)

		d := int32(q) - int32(i)
		c.redDelta[i] = d << 16
		c.greenDelta[i] = d << 8
		c.blueDelta[i] = d
	}
}

// DrawMode returns the draw mode of the curve.
func (c *Curve) DrawMode() DrawMode {
	return c.mode
}

// Points returns a copy of the control points.
// In [Pen] mode the result is nil.
func (c *Curve) Points() []Point {
	return slices.Clone(c.points)
}

// Table returns the lookup table, rounded to integers.
func (c *Curve) Table() [256]uint8 {
	return c.ints
}

// FloatTable returns the unrounded lookup table.
func (c *Curve) FloatTable() [256]float64 {
	return c.table
}

// Value returns the rounded curve value at x.
func (c *Curve) Value(x uint8) uint8 {
	return c.ints[x]
}

// Eval evaluates the curve at a fractional input x in [0, 255], using
// linear interpolation between the table entries.
func (c *Curve) Eval(x float64) float64 {
	return interpolate(&c.table, x)
}

// IsIdentity reports whether the curve maps every byte value to itself.
func (c *Curve) IsIdentity() bool {
	for i, v := range c.ints {
		if int(v) != i {
			return false
		}
	}
	return true
}

// Gamma returns the exponent of the power law fitted in [Gamma] mode.
// For all other draw modes the result is 1.
func (c *Curve) Gamma() float64 {
	return c.gamma
}

// DisplayGamma returns the gamma value shown to users, which is the
// reciprocal of the fitted exponent, formatted with three decimals.
func (c *Curve) DisplayGamma() string {
	return fmt.Sprintf("%.3f", 1/c.gamma)
}

// Reset sets the curve to the identity.  The draw mode is kept.
func (c *Curve) Reset() {
	switch c.mode {
	case Pen:
		c.init()
		return
	case Gamma:
		c.points = []Point{{0, 0}, {128, 128}, {255, 255}}
	default:
		c.points = []Point{{0, 0}, {255, 255}}
	}
	c.resolve()
}

// SetDrawMode changes the draw mode, converting the existing curve.
//
// When leaving [Pen] mode, the new control points are taken from the two
// ends of the table.  When entering [Gamma] mode, the first and last
// control points are kept and a middle point is placed on the line
// between them.  When entering [Pen] mode, the current table is kept.
func (c *Curve) SetDrawMode(mode DrawMode) error {
	if mode > Gamma {
		return fmt.Errorf("gradation: invalid draw mode %d", mode)
	}
	if mode == c.mode {
		return nil
	}

	var first, last Point
	if c.mode == Pen {
		first = Point{0, c.ints[0]}
		last = Point{255, c.ints[255]}
	} else {
		first = c.points[0]
		last = c.points[len(c.points)-1]
	}

	switch mode {
	case Pen:
		c.points = nil
	case Gamma:
		if int(last.X)-int(first.X) < 2 {
			first.X, last.X = 0, 255
		}
		midX := (int(first.X) + int(last.X)) / 2
		midY := int(first.Y) + ((midX-int(first.X))*(int(last.Y)-int(first.Y))+(int(last.X)-int(first.X))/2)/(int(last.X)-int(first.X))
		c.points = []Point{first, {uint8(midX), uint8(midY)}, last}
		c.clampGammaMiddle()
	default:
		if c.mode == Pen {
			c.points = []Point{first, last}
		}
	}
	c.mode = mode
	c.resolve()
	return nil
}

// SetPoints replaces the control points and the draw mode.
//
// The points must have strictly increasing x coordinates.  [Linear] and
// [Spline] curves need between 2 and [MaxPoints] points, [Gamma] curves
// need exactly 3.  Use [Curve.SetTable] for [Pen] curves.
func (c *Curve) SetPoints(mode DrawMode, points []Point) error {
	err := validatePoints(mode, points)
	if err != nil {
		return err
	}
	c.mode = mode
	c.points = slices.Clone(points)
	c.resolve()
	return nil
}

func validatePoints(mode DrawMode, points []Point) error {
	switch mode {
	case Linear, Spline:
		if len(points) < 2 {
			return ErrTooFewPoints
		} else if len(points) > MaxPoints {
			return ErrTooManyPoints
		}
	case Gamma:
		if len(points) < 3 {
			return ErrTooFewPoints
		} else if len(points) > 3 {
			return ErrTooManyPoints
		}
	default:
		return ErrWrongMode
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return ErrPointOrder
		}
	}
	return nil
}

// AddPoint inserts a control point and returns its index.
// If a point with the same x coordinate exists, its y coordinate is
// replaced instead.
func (c *Curve) AddPoint(x, y uint8) (int, error) {
	if c.mode != Linear && c.mode != Spline {
		return -1, ErrWrongMode
	}

	i := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].X >= x
	})
	if i < len(c.points) && c.points[i].X == x {
		c.points[i].Y = y
		c.resolve()
		return i, nil
	}
	if len(c.points) >= MaxPoints {
		return -1, ErrTooManyPoints
	}
	c.points = slices.Insert(c.points, i, Point{x, y})
	c.resolve()
	return i, nil
}

// MovePoint moves control point i to (x, y).
//
// The x coordinate is clamped so that the points stay strictly increasing,
// y is clamped to [0, 255].  For [Gamma] curves the middle point is kept
// strictly between the two end points.
func (c *Curve) MovePoint(i, x, y int) error {
	if c.mode == Pen {
		return ErrWrongMode
	}
	n := len(c.points)
	if i < 0 || i >= n {
		return ErrPointIndex
	}

	lo, hi := 0, 255
	if i > 0 {
		lo = int(c.points[i-1].X) + 1
	}
	if i < n-1 {
		hi = int(c.points[i+1].X) - 1
	}
	c.points[i] = Point{uint8(clamp(x, lo, hi)), uint8(clamp(y, 0, 255))}
	if c.mode == Gamma {
		c.clampGammaMiddle()
	}
	c.resolve()
	return nil
}

func (c *Curve) clampGammaMiddle() {
	y0, y2 := int(c.points[0].Y), int(c.points[2].Y)
	lo, hi := min(y0, y2)+1, max(y0, y2)-1
	if lo > hi {
		c.points[1].Y = uint8(y0)
		return
	}
	c.points[1].Y = uint8(clamp(int(c.points[1].Y), lo, hi))
}

// DeletePoint removes control point i.
// Curves always keep at least two control points, and the three points of
// a [Gamma] curve cannot be removed.
func (c *Curve) DeletePoint(i int) error {
	if c.mode == Pen {
		return ErrWrongMode
	}
	if i < 0 || i >= len(c.points) {
		return ErrPointIndex
	}
	if c.mode == Gamma || len(c.points) <= 2 {
		return ErrTooFewPoints
	}
	c.points = slices.Delete(c.points, i, i+1)
	c.resolve()
	return nil
}

// SetTable switches the curve to [Pen] mode and sets the table.
func (c *Curve) SetTable(table [256]uint8) {
	c.mode = Pen
	c.points = nil
	c.gamma = 1
	for i, v := range table {
		c.table[i] = float64(v)
	}
	c.update()
}

// SetEntry sets a single table entry of a [Pen] curve.
func (c *Curve) SetEntry(x, y uint8) error {
	if c.mode != Pen {
		return ErrWrongMode
	}
	c.table[x] = float64(y)
	c.update()
	return nil
}

// DrawLine sets the table entries of a [Pen] curve between x0 and x1 to
// a straight line from (x0, y0) to (x1, y1).
func (c *Curve) DrawLine(x0, y0, x1, y1 uint8) error {
	if c.mode != Pen {
		return ErrWrongMode
	}
	if x1 < x0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	if x0 == x1 {
		c.table[x0] = float64(y1)
	} else {
		dx := float64(x1) - float64(x0)
		dy := float64(y1) - float64(y0)
		for x := int(x0); x <= int(x1); x++ {
			c.table[x] = float64(roundByte(float64(y0) + (float64(x)-float64(x0))*dy/dx))
		}
	}
	c.update()
	return nil
}

// Invert mirrors the curve vertically, replacing every output y by 255-y.
func (c *Curve) Invert() {
	if c.mode == Pen {
		for i, v := range c.table {
			c.table[i] = 255 - v
		}
		c.update()
		return
	}
	for i := range c.points {
		c.points[i].Y = 255 - c.points[i].Y
	}
	c.resolve()
}

// Smooth applies a [1 2 1]/4 filter to the table of a [Pen] curve.
// The two end entries are not changed.
func (c *Curve) Smooth() error {
	if c.mode != Pen {
		return ErrWrongMode
	}
	prev := c.table
	for i := 1; i < 255; i++ {
		c.table[i] = float64(roundByte((prev[i-1] + 2*prev[i] + prev[i+1]) / 4))
	}
	c.update()
	return nil
}

// Errors returned by the curve editing methods.
var (
	ErrTooManyPoints = errors.New("gradation: too many control points")
	ErrTooFewPoints  = errors.New("gradation: too few control points")
	ErrPointOrder    = errors.New("gradation: control points are not strictly increasing")
	ErrPointIndex    = errors.New("gradation: control point index out of range")
	ErrWrongMode     = errors.New("gradation: operation not available in this draw mode")
)

func roundByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 254.5 {
		return 255
	}
	return uint8(v + 0.5)
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
