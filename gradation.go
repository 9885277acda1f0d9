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

// Package gradation applies tone curves to video frames.
//
// A [Gradation] holds five curves and a processing [Mode].  Each curve maps
// the byte values 0 to 255 to new values.  Curves are described by control
// points (straight lines, natural cubic splines or a power law) or drawn
// free-hand as a table.  The mode decides in which colour space the curves
// are applied: directly to R, G and B, to the weighted brightness, or
// after conversion to YUV, CMYK, HSV or CIE Lab.
//
// # Editing Curves
//
// Use [Gradation.Curve] to access a curve slot, and the methods of [Curve]
// to change it:
//
//	g := gradation.New()
//	g.Mode = gradation.ModeRGB
//	err := g.Curve(0).SetPoints(gradation.Spline, []gradation.Point{
//		{X: 0, Y: 0}, {X: 64, Y: 40}, {X: 192, Y: 220}, {X: 255, Y: 255},
//	})
//
// [Gradation.Channels] gives access to the curves by their role in the
// colour space of the current mode.
//
// # Transforming Frames
//
// [Gradation.Transform] applies the curves to a [Frame] of packed 32-bit
// pixels.  [Gradation.Pixel] and [Gradation.PixelFloat] transform single
// pixels.  If Precise is set, frames are processed in floating point,
// interpolating between table entries.
//
// [Filter] wraps a Gradation for use by a video host which processes
// frames concurrently with configuration changes.
//
// # Curve Files
//
// Curves can be read from and written to the AMP, ACV, CSV, CRV, MAP and
// SmartCurve HSV formats, see [Gradation.Import] and [Gradation.Export].
// A few curves are built in, see [Preset].
package gradation

// Gradation holds the curves of a filter instance together with the
// processing mode which determines how the curves are applied.
//
// A Gradation is not safe for concurrent use.  Frames may be transformed
// concurrently, but no curve may be changed while a transform is in
// progress.  [Filter] provides the necessary locking.
type Gradation struct {
	// Mode selects the pixel transform.
	Mode Mode

	// Precise selects the floating point pixel path, which interpolates
	// between table entries.  The modes [ModeCMYK] and [ModeLab] always
	// use integer arithmetic.
	Precise bool

	curves [NumChannels]Curve
}

// New returns a Gradation in [ModeRGB] where all curves are the identity.
func New() *Gradation {
	g := &Gradation{}
	g.Reset()
	return g
}

// Reset sets all curves to the identity in [Pen] mode.
// The processing mode is not changed.
func (g *Gradation) Reset() {
	for i := range g.curves {
		g.curves[i].init()
	}
}

// Curve returns the curve in slot i, where 0 <= i < [NumChannels].
// The meaning of the slots is described at [NumChannels].
func (g *Gradation) Curve(i int) *Curve {
	return &g.curves[i]
}

// Clone returns a deep copy of g.
func (g *Gradation) Clone() *Gradation {
	res := &Gradation{
		Mode:    g.Mode,
		Precise: g.Precise,
	}
	for i := range g.curves {
		res.curves[i] = g.curves[i].clone()
	}
	return res
}

// Channels returns the curves which are used by the current processing
// mode, labelled by their role in the mode's colour space.
// The dynamic type of the result is one of [RGBChannels], [YUVChannels],
// [CMYKChannels], [HSVChannels] or [LabChannels].
func (g *Gradation) Channels() ChannelSet {
	c := &g.curves
	switch g.Mode.Space() {
	case SpaceYUV:
		return YUVChannels{Y: &c[1], U: &c[2], V: &c[3]}
	case SpaceCMYK:
		return CMYKChannels{C: &c[1], M: &c[2], Y: &c[3], K: &c[4]}
	case SpaceHSV:
		return HSVChannels{H: &c[1], S: &c[2], V: &c[3]}
	case SpaceLab:
		return LabChannels{L: &c[1], A: &c[2], B: &c[3]}
	default:
		return RGBChannels{Master: &c[0], Red: &c[1], Green: &c[2], Blue: &c[3]}
	}
}

// ChannelSet gives named access to the curves of one colour space.
type ChannelSet interface {
	// Space returns the colour space of the channel set.
	Space() ColorSpace

	// Curves lists the curves in slot order.
	Curves() []*Curve
}

// RGBChannels are the curves used by [ModeRGB], [ModeFull], [ModeRGBW],
// [ModeFullW] and [ModeOff].
type RGBChannels struct {
	Master, Red, Green, Blue *Curve
}

// Space implements the [ChannelSet] interface.
func (RGBChannels) Space() ColorSpace { return SpaceRGB }

// Curves implements the [ChannelSet] interface.
func (s RGBChannels) Curves() []*Curve {
	return []*Curve{s.Master, s.Red, s.Green, s.Blue}
}

// YUVChannels are the curves used by [ModeYUV].
type YUVChannels struct {
	Y, U, V *Curve
}

// Space implements the [ChannelSet] interface.
func (YUVChannels) Space() ColorSpace { return SpaceYUV }

// Curves implements the [ChannelSet] interface.
func (s YUVChannels) Curves() []*Curve { return []*Curve{s.Y, s.U, s.V} }

// CMYKChannels are the curves used by [ModeCMYK].
type CMYKChannels struct {
	C, M, Y, K *Curve
}

// Space implements the [ChannelSet] interface.
func (CMYKChannels) Space() ColorSpace { return SpaceCMYK }

// Curves implements the [ChannelSet] interface.
func (s CMYKChannels) Curves() []*Curve { return []*Curve{s.C, s.M, s.Y, s.K} }

// HSVChannels are the curves used by [ModeHSV].
type HSVChannels struct {
	H, S, V *Curve
}

// Space implements the [ChannelSet] interface.
func (HSVChannels) Space() ColorSpace { return SpaceHSV }

// Curves implements the [ChannelSet] interface.
func (s HSVChannels) Curves() []*Curve { return []*Curve{s.H, s.S, s.V} }

// LabChannels are the curves used by [ModeLab].
type LabChannels struct {
	L, A, B *Curve
}

// Space implements the [ChannelSet] interface.
func (LabChannels) Space() ColorSpace { return SpaceLab }

// Curves implements the [ChannelSet] interface.
func (s LabChannels) Curves() []*Curve { return []*Curve{s.L, s.A, s.B} }
