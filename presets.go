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
	"embed"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

// Built-in curve presets, stored as ACV files.
//
//go:embed presets/*.acv
var presetFiles embed.FS

// presetModes gives the processing mode used with each preset.
var presetModes = map[string]Mode{
	"identity": ModeRGB,
	"negative": ModeRGB,
	"contrast": ModeRGB,
	"brighten": ModeRGB,
	"darken":   ModeRGB,
	"warm":     ModeFull,
}

// PresetNames returns the names of the built-in presets in alphabetical
// order.
func PresetNames() []string {
	names := maps.Keys(presetModes)
	slices.Sort(names)
	return names
}

// Preset returns a new Gradation initialised from a built-in preset.
func Preset(name string) (*Gradation, error) {
	mode, ok := presetModes[name]
	if !ok {
		return nil, fmt.Errorf("gradation: unknown preset %q", name)
	}
	data, err := presetFiles.ReadFile("presets/" + name + ".acv")
	if err != nil {
		return nil, err
	}

	g := New()
	g.Mode = mode
	if err := g.Import(data, FormatACV); err != nil {
		return nil, err
	}
	return g, nil
}
