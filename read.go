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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Format identifies a curve file format.
type Format int

// These are the supported curve file formats.
const (
	FormatUnknown Format = iota

	// FormatAMP is a raw dump of the five byte tables, 1280 bytes.
	// Files of up to 256 bytes contain only the master curve, files of
	// up to 768 bytes only the curves in slots 1 to 3.
	FormatAMP

	// FormatACV is the point based curve format of Photoshop.
	FormatACV

	// FormatCSV has the same layout as FormatAMP, with one decimal
	// number per line.
	FormatCSV

	// FormatCRV stores draw mode, control points and byte table of
	// every curve, together with the processing mode.
	FormatCRV

	// FormatMAP is FormatCRV with slots 0 and 4 exchanged.
	FormatMAP

	// FormatSmartHSV is a 768 byte dump of the H, S and V tables,
	// stored in the order S, V, H.
	FormatSmartHSV
)

func (f Format) String() string {
	switch f {
	case FormatAMP:
		return "AMP"
	case FormatACV:
		return "ACV"
	case FormatCSV:
		return "CSV"
	case FormatCRV:
		return "CRV"
	case FormatMAP:
		return "MAP"
	case FormatSmartHSV:
		return "SmartCurve HSV"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromName guesses the file format from the extension of a file
// name.  The result is FormatUnknown if the extension is not recognised.
// SmartCurve HSV files share the extension ".amp" with FormatAMP and are
// never detected.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".amp":
		return FormatAMP
	case ".acv":
		return FormatACV
	case ".csv":
		return FormatCSV
	case ".crv":
		return FormatCRV
	case ".map":
		return FormatMAP
	default:
		return FormatUnknown
	}
}

// ImportFile reads curves from a file.  If format is FormatUnknown, the
// format is determined from the file name.
// On error, g is not changed.
func (g *Gradation) ImportFile(name string, format Format) error {
	if format == FormatUnknown {
		format = FormatFromName(name)
		if format == FormatUnknown {
			return ErrUnknownFormat
		}
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCannotOpen, err)
	}
	return g.Import(data, format)
}

// Import reads curves from file data of the given format.
// Imported point based curves are solved, and curves not present in
// the file are reset to the identity.  On error, g is not changed.
func (g *Gradation) Import(data []byte, format Format) error {
	res := g.Clone()

	var err error
	switch format {
	case FormatAMP:
		err = decodeRaw(res, data, format)
	case FormatCSV:
		err = decodeCSV(res, data)
	case FormatACV:
		err = decodeACV(res, data)
	case FormatCRV, FormatMAP:
		err = decodeCRV(res, data, format)
	case FormatSmartHSV:
		err = decodeSmartHSV(res, data)
	default:
		err = ErrUnknownFormat
	}
	if err != nil {
		return err
	}

	*g = *res
	return nil
}

// decodeRaw fills the byte tables from a raw dump in slot order.
// Dumps of up to 256 bytes hold the master curve, dumps of up to 768
// bytes the curves in slots 1 to 3, and longer dumps all curves.
// Table entries missing from a short dump keep their identity value,
// and curves not present in the dump are reset to the identity.
func decodeRaw(g *Gradation, data []byte, format Format) error {
	var first, count int
	switch n := len(data); {
	case n == 0:
		return &FormatError{Format: format, Pos: 0, Reason: "empty file"}
	case n <= 256:
		first, count = 0, 1
	case n <= 3*256:
		first, count = 1, 3
	default:
		first, count = 0, NumChannels
	}

	for i := range g.curves {
		g.curves[i].init()
	}
	for i := range count {
		var t [256]uint8
		for j := range t {
			t[j] = uint8(j)
		}
		if off := i * 256; off < len(data) {
			copy(t[:], data[off:])
		}
		g.curves[first+i].SetTable(t)
	}
	return nil
}

func decodeCSV(g *Gradation, data []byte) error {
	var values []byte
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.FieldsFunc(scanner.Text(), func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		for _, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil || v < 0 || v > 255 {
				return &FormatError{Format: FormatCSV, Pos: line, Reason: fmt.Sprintf("invalid value %q", field)}
			}
			values = append(values, byte(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return &FormatError{Format: FormatCSV, Pos: line, Reason: err.Error()}
	}
	if len(values) > NumChannels*256 {
		return &FormatError{Format: FormatCSV, Pos: line, Reason: "too many values"}
	}
	err := decodeRaw(g, values, FormatCSV)
	if e, ok := err.(*FormatError); ok {
		e.Pos = line
	}
	return err
}

func decodeACV(g *Gradation, data []byte) error {
	if len(data) < 4 {
		return &FormatError{Format: FormatACV, Pos: 0, Reason: "file too short"}
	}
	if v := getUint16(data, 0); v != 1 && v != 4 {
		return &FormatError{Format: FormatACV, Pos: 0, Reason: fmt.Sprintf("unsupported version %d", v)}
	}
	numCurves := int(getUint16(data, 2))

	pos := 4
	for ch := range numCurves {
		if pos+2 > len(data) {
			return &FormatError{Format: FormatACV, Pos: pos, Reason: "truncated curve"}
		}
		n := int(getUint16(data, pos))
		if n < 2 || n > MaxPoints {
			return &FormatError{Format: FormatACV, Pos: pos, Reason: fmt.Sprintf("invalid number of points %d", n)}
		}
		pos += 2
		if pos+4*n > len(data) {
			return &FormatError{Format: FormatACV, Pos: pos, Reason: "truncated curve"}
		}

		points := make([]Point, n)
		for i := range points {
			// pairs are stored as (output, input)
			y, x := getUint16(data, pos), getUint16(data, pos+2)
			if x > 255 || y > 255 {
				return &FormatError{Format: FormatACV, Pos: pos, Reason: "point out of range"}
			}
			points[i] = Point{X: uint8(x), Y: uint8(y)}
			pos += 4
		}
		if ch >= NumChannels {
			continue
		}
		if err := g.curves[ch].SetPoints(Spline, points); err != nil {
			return &FormatError{Format: FormatACV, Pos: pos - 4*n, Reason: err.Error()}
		}
	}

	for ch := numCurves; ch < NumChannels; ch++ {
		g.curves[ch].SetPoints(Spline, identityPoints)
	}
	return nil
}

var identityPoints = []Point{{0, 0}, {255, 255}}

// Layout of CRV and MAP files.
const (
	crvHeaderSize = 3
	crvBlockSize  = 4 + 2*MaxPoints + 256
	crvFileSize   = crvHeaderSize + NumChannels*crvBlockSize

	crvSignature = 'G'
	crvVersion   = 1

	crvOffsetPoints = 4
	crvOffsetTable  = 4 + 2*MaxPoints
)

// crvSlot returns the curve slot stored at the given position of a CRV
// or MAP file.
func crvSlot(pos int, format Format) int {
	if format == FormatMAP {
		switch pos {
		case 0:
			return 4
		case 4:
			return 0
		}
	}
	return pos
}

func decodeCRV(g *Gradation, data []byte, format Format) error {
	if len(data) < crvFileSize {
		return &FormatError{Format: format, Pos: len(data), Reason: "file too short"}
	}
	if data[0] != crvSignature || data[1] != crvVersion {
		return &FormatError{Format: format, Pos: 0, Reason: "missing signature"}
	}
	mode := Mode(data[2])
	if !mode.IsValid() {
		return &FormatError{Format: format, Pos: 2, Reason: fmt.Sprintf("invalid processing mode %d", data[2])}
	}

	for pos := range NumChannels {
		off := crvHeaderSize + pos*crvBlockSize
		block := data[off : off+crvBlockSize]
		c := &g.curves[crvSlot(pos, format)]

		switch dm := DrawMode(block[0]); dm {
		case Pen:
			var t [256]uint8
			copy(t[:], block[crvOffsetTable:])
			c.SetTable(t)
		case Linear, Spline, Gamma:
			n := int(block[3])
			if n > MaxPoints {
				return &FormatError{Format: format, Pos: off + 3, Reason: fmt.Sprintf("invalid number of points %d", n)}
			}
			points := make([]Point, n)
			for i := range points {
				points[i] = Point{X: block[crvOffsetPoints+2*i], Y: block[crvOffsetPoints+2*i+1]}
			}
			if err := c.SetPoints(dm, points); err != nil {
				return &FormatError{Format: format, Pos: off + crvOffsetPoints, Reason: err.Error()}
			}
		default:
			return &FormatError{Format: format, Pos: off, Reason: fmt.Sprintf("invalid draw mode %d", block[0])}
		}
	}
	g.Mode = mode
	return nil
}

// smartHSVOrder lists the H, S and V slots in the order of the file.
var smartHSVOrder = [3]int{2, 3, 1}

func decodeSmartHSV(g *Gradation, data []byte) error {
	if len(data) < 3*256 {
		return &FormatError{Format: FormatSmartHSV, Pos: len(data), Reason: "file too short"}
	}
	for i := range g.curves {
		g.curves[i].init()
	}
	for i, slot := range smartHSVOrder {
		var t [256]uint8
		copy(t[:], data[i*256:])
		g.curves[slot].SetTable(t)
	}
	g.Mode = ModeHSV
	return nil
}

func getUint16(data []byte, offset int) uint16 {
	return uint16(data[offset])<<8 | uint16(data[offset+1])
}

// FormatError indicates that a curve file is malformed.
type FormatError struct {
	Format Format

	// Pos is the byte offset of the problem; for FormatCSV it is the
	// line number.
	Pos int

	Reason string
}

func (e *FormatError) Error() string {
	unit := "byte"
	if e.Format == FormatCSV {
		unit = "line"
	}
	return fmt.Sprintf("gradation: invalid %s file (%s %d): %s", e.Format, unit, e.Pos, e.Reason)
}

var (
	// ErrUnknownFormat is returned when a curve file format is not
	// supported or cannot be determined.
	ErrUnknownFormat = errors.New("gradation: unknown curve file format")

	// ErrCannotOpen is returned when a curve file cannot be read or
	// written.
	ErrCannotOpen = errors.New("gradation: cannot open file")
)
