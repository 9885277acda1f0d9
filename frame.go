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
	"image"
	"image/color"
)

// Frame is a video frame in packed 32-bit format.
//
// Every pixel is stored as a little-endian 32-bit word 0xAARRGGBB, so that
// the bytes in memory are B, G, R, A.  Rows start Stride bytes apart;
// the stride may exceed 4*Width to allow for padding.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

// NewFrame allocates a frame of the given size without row padding.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Pix:    make([]byte, 4*width*height),
		Width:  width,
		Height: height,
		Stride: 4 * width,
	}
}

// At returns the pixel at (x, y) as 0xAARRGGBB.
func (f *Frame) At(x, y int) uint32 {
	return binary.LittleEndian.Uint32(f.Pix[y*f.Stride+4*x:])
}

// Set stores the pixel 0xAARRGGBB at (x, y).
func (f *Frame) Set(x, y int, p uint32) {
	binary.LittleEndian.PutUint32(f.Pix[y*f.Stride+4*x:], p)
}

func (f *Frame) row(y int) []byte {
	return f.Pix[y*f.Stride : y*f.Stride+4*f.Width]
}

func (f *Frame) check() error {
	if f == nil || f.Width < 0 || f.Height < 0 || f.Stride < 4*f.Width {
		return ErrFrameSize
	}
	if f.Height > 0 && len(f.Pix) < (f.Height-1)*f.Stride+4*f.Width {
		return ErrFrameSize
	}
	return nil
}

// FrameFromImage converts an image to a new frame.
// Colours are converted to non-premultiplied 8-bit RGBA.
func FrameFromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	f := NewFrame(bounds.Dx(), bounds.Dy())
	if src, ok := img.(*image.NRGBA); ok {
		for y := range f.Height {
			i := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := range f.Width {
				s := src.Pix[i+4*x : i+4*x+4]
				f.Set(x, y, uint32(s[3])<<24|uint32(s[0])<<16|uint32(s[1])<<8|uint32(s[2]))
			}
		}
		return f
	}
	for y := range f.Height {
		for x := range f.Width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			f.Set(x, y, uint32(c.A)<<24|uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B))
		}
	}
	return f
}

// Image converts the frame to a new image.
func (f *Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := range f.Height {
		i := img.PixOffset(0, y)
		for x := range f.Width {
			p := f.At(x, y)
			img.Pix[i+4*x] = uint8(p >> 16)
			img.Pix[i+4*x+1] = uint8(p >> 8)
			img.Pix[i+4*x+2] = uint8(p)
			img.Pix[i+4*x+3] = uint8(p >> 24)
		}
	}
	return img
}

// ErrFrameSize indicates that the pixel buffer of a frame is too small for
// its width, height and stride.
var ErrFrameSize = errors.New("gradation: invalid frame geometry")
