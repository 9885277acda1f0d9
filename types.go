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

import "fmt"

// Mode selects the pixel transform applied to a frame.
type Mode int

// These are the supported processing modes.
const (
	// ModeRGB applies the master curve to each of R, G and B.
	ModeRGB Mode = iota

	// ModeFull applies the red, green and blue curves first and then the
	// master curve to the result.
	ModeFull

	// ModeRGBW uses the master curve to shift all three channels by the
	// same amount, indexed by the weighted brightness of the pixel.
	ModeRGBW

	// ModeFullW applies the red, green and blue curves and then the
	// weighted master curve.
	ModeFullW

	// ModeOff copies the frame unchanged.
	ModeOff

	// ModeYUV applies the Y, U and V curves in YUV space.
	ModeYUV

	// ModeCMYK applies the C, M, Y and K curves in CMYK space.
	ModeCMYK

	// ModeHSV applies the H, S and V curves in HSV space.
	ModeHSV

	// ModeLab applies the L, a and b curves in CIE Lab space.
	ModeLab

	numModes
)

var modeNames = [numModes]string{
	ModeRGB:   "RGB",
	ModeFull:  "Full",
	ModeRGBW:  "RGBW",
	ModeFullW: "FullW",
	ModeOff:   "Off",
	ModeYUV:   "YUV",
	ModeCMYK:  "CMYK",
	ModeHSV:   "HSV",
	ModeLab:   "Lab",
}

func (m Mode) String() string {
	if m >= 0 && m < numModes {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// IsValid reports whether m is one of the known processing modes.
func (m Mode) IsValid() bool {
	return m >= 0 && m < numModes
}

// ParseMode returns the processing mode with the given name.
// The comparison is case-sensitive and uses the names returned by
// [Mode.String].
func ParseMode(name string) (Mode, error) {
	for m, s := range modeNames {
		if s == name {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("gradation: unknown processing mode %q", name)
}

// Space returns the colour space in which the mode applies its curves.
func (m Mode) Space() ColorSpace {
	switch m {
	case ModeYUV:
		return SpaceYUV
	case ModeCMYK:
		return SpaceCMYK
	case ModeHSV:
		return SpaceHSV
	case ModeLab:
		return SpaceLab
	default:
		return SpaceRGB
	}
}

// ColorSpace identifies the meaning of the curve slots.
type ColorSpace int

// These are the colour spaces curves can be applied in.
const (
	SpaceRGB ColorSpace = iota
	SpaceYUV
	SpaceCMYK
	SpaceHSV
	SpaceLab
)

func (s ColorSpace) String() string {
	switch s {
	case SpaceRGB:
		return "RGB"
	case SpaceYUV:
		return "YUV"
	case SpaceCMYK:
		return "CMYK"
	case SpaceHSV:
		return "HSV"
	case SpaceLab:
		return "Lab"
	default:
		return fmt.Sprintf("ColorSpace(%d)", int(s))
	}
}

// DrawMode selects how the control points of a curve are turned into a
// lookup table.
type DrawMode uint8

// These are the supported draw modes.
const (
	// Pen curves are drawn free-hand; the table is edited directly and
	// no control points are kept.
	Pen DrawMode = iota

	// Linear connects the control points by straight lines.
	Linear

	// Spline fits a natural cubic spline through the control points.
	Spline

	// Gamma fits a power law through exactly three control points.
	Gamma
)

func (m DrawMode) String() string {
	switch m {
	case Pen:
		return "pen"
	case Linear:
		return "linear"
	case Spline:
		return "spline"
	case Gamma:
		return "gamma"
	default:
		return fmt.Sprintf("DrawMode(%d)", uint8(m))
	}
}

// NumChannels is the number of curve slots of a [Gradation].
//
// Slot 0 holds the master curve used by the RGB based modes.  The meaning
// of slots 1 to 4 depends on the colour space:
//
//	RGB:  1=R 2=G 3=B
//	YUV:  1=Y 2=U 3=V
//	CMYK: 1=C 2=M 3=Y 4=K
//	HSV:  1=H 2=S 3=V
//	Lab:  1=L 2=a 3=b
//
// Use [Gradation.Channels] to access the curves by name.
const NumChannels = 5

// MaxPoints is the maximal number of control points of a curve.
const MaxPoints = 32

// Point is a control point of a curve.
type Point struct {
	X, Y uint8
}
