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
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
)

// ExportFile writes the curves to a file.  If format is FormatUnknown,
// the format is determined from the file name.
func (g *Gradation) ExportFile(name string, format Format) error {
	if format == FormatUnknown {
		format = FormatFromName(name)
	}
	data, err := g.Export(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrCannotOpen, err)
	}
	return nil
}

// Export encodes the curves in the given file format.
//
// FormatAMP, FormatCSV and FormatSmartHSV store the byte tables only.
// FormatACV stores control points; [Pen] curves are represented by 17
// samples of their table.  FormatCRV and FormatMAP store everything.
func (g *Gradation) Export(format Format) ([]byte, error) {
	switch format {
	case FormatAMP:
		return g.encodeRaw(), nil
	case FormatCSV:
		return g.encodeCSV(), nil
	case FormatACV:
		return g.encodeACV(), nil
	case FormatCRV, FormatMAP:
		return g.encodeCRV(format), nil
	case FormatSmartHSV:
		return g.encodeSmartHSV(), nil
	default:
		return nil, ErrUnknownFormat
	}
}

func (g *Gradation) encodeRaw() []byte {
	buf := make([]byte, NumChannels*256)
	for i := range g.curves {
		copy(buf[i*256:], g.curves[i].ints[:])
	}
	return buf
}

func (g *Gradation) encodeCSV() []byte {
	buf := &bytes.Buffer{}
	for _, v := range g.encodeRaw() {
		buf.WriteString(strconv.Itoa(int(v)))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func (g *Gradation) encodeACV() []byte {
	buf := make([]byte, 4, 4+NumChannels*(2+4*MaxPoints))
	putUint16(buf, 0, 4)
	putUint16(buf, 2, NumChannels)
	for i := range g.curves {
		points := g.curves[i].acvPoints()
		buf = append(buf, byte(len(points)>>8), byte(len(points)))
		for _, p := range points {
			buf = append(buf, 0, p.Y, 0, p.X)
		}
	}
	return buf
}

// acvPoints returns the control points to store for c in an ACV file.
func (c *Curve) acvPoints() []Point {
	if c.mode != Pen {
		return c.points
	}
	points := make([]Point, 0, 17)
	for x := 0; x < 256; x += 16 {
		points = append(points, Point{uint8(x), c.ints[x]})
	}
	return append(points, Point{255, c.ints[255]})
}

func (g *Gradation) encodeCRV(format Format) []byte {
	buf := make([]byte, crvFileSize)
	buf[0] = crvSignature
	buf[1] = crvVersion
	buf[2] = byte(g.Mode)
	for pos := range NumChannels {
		off := crvHeaderSize + pos*crvBlockSize
		block := buf[off : off+crvBlockSize]
		c := &g.curves[crvSlot(pos, format)]

		block[0] = byte(c.mode)
		gamma := clamp(math.Round(1000/c.gamma), 0, math.MaxUint16)
		block[1] = byte(uint16(gamma))
		block[2] = byte(uint16(gamma) >> 8)
		block[3] = byte(len(c.points))
		for i, p := range c.points {
			block[crvOffsetPoints+2*i] = p.X
			block[crvOffsetPoints+2*i+1] = p.Y
		}
		copy(block[crvOffsetTable:], c.ints[:])
	}
	return buf
}

func (g *Gradation) encodeSmartHSV() []byte {
	buf := make([]byte, 3*256)
	for i, slot := range smartHSVOrder {
		copy(buf[i*256:], g.curves[slot].ints[:])
	}
	return buf
}

func putUint16(data []byte, offset int, value uint16) {
	data[offset] = byte(value >> 8)
	data[offset+1] = byte(value)
}
