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
	"image"
	"image/color"
	"testing"
)

func TestFrameByteOrder(t *testing.T) {
	f := NewFrame(2, 1)
	f.Set(1, 0, 0x11223344)
	want := []byte{0, 0, 0, 0, 0x44, 0x33, 0x22, 0x11}
	if string(f.Pix) != string(want) {
		t.Errorf("got % x, want % x", f.Pix, want)
	}
	if f.At(1, 0) != 0x11223344 {
		t.Errorf("At = %08x", f.At(1, 0))
	}
}

func TestFrameImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(-3, 2, 7, 9))
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 20), uint8(y * 30), uint8(x + y), uint8(100 + x)})
		}
	}

	f := FrameFromImage(img)
	if f.Width != 10 || f.Height != 7 {
		t.Fatalf("frame size %dx%d", f.Width, f.Height)
	}
	c := img.NRGBAAt(-3, 2)
	if got, want := f.At(0, 0), uint32(c.A)<<24|uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B); got != want {
		t.Errorf("At(0, 0) = %08x, want %08x", got, want)
	}

	back := f.Image()
	for y := range f.Height {
		for x := range f.Width {
			got := back.NRGBAAt(x, y)
			want := img.NRGBAAt(x-3, y+2)
			if got != want {
				t.Fatalf("(%d, %d): %v != %v", x, y, got, want)
			}
		}
	}

	// other image types go through the colour model
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 77})
	f = FrameFromImage(gray)
	if got := f.At(1, 1); got != 0xFF4D4D4D {
		t.Errorf("grey pixel: %08x", got)
	}
}
