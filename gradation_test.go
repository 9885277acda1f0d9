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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMode(t *testing.T) {
	for m := range numModes {
		got, err := ParseMode(m.String())
		if err != nil {
			t.Errorf("%s: %v", m, err)
		} else if got != m {
			t.Errorf("ParseMode(%q) = %s", m.String(), got)
		}
	}
	for _, name := range []string{"", "rgb", "LAB", "Mode(3)"} {
		if _, err := ParseMode(name); err == nil {
			t.Errorf("ParseMode(%q) succeeded", name)
		}
	}
	if numModes.IsValid() || Mode(-1).IsValid() {
		t.Error("invalid mode reported as valid")
	}
}

func TestChannels(t *testing.T) {
	g := New()
	slots := func(cs ChannelSet) []int {
		var res []int
		for _, c := range cs.Curves() {
			for i := range NumChannels {
				if g.Curve(i) == c {
					res = append(res, i)
				}
			}
		}
		return res
	}

	tests := []struct {
		mode  Mode
		space ColorSpace
		slots []int
	}{
		{ModeRGB, SpaceRGB, []int{0, 1, 2, 3}},
		{ModeFullW, SpaceRGB, []int{0, 1, 2, 3}},
		{ModeYUV, SpaceYUV, []int{1, 2, 3}},
		{ModeCMYK, SpaceCMYK, []int{1, 2, 3, 4}},
		{ModeHSV, SpaceHSV, []int{1, 2, 3}},
		{ModeLab, SpaceLab, []int{1, 2, 3}},
	}
	for _, test := range tests {
		g.Mode = test.mode
		cs := g.Channels()
		if cs.Space() != test.space || test.mode.Space() != test.space {
			t.Errorf("%s: space %s, want %s", test.mode, cs.Space(), test.space)
		}
		if d := cmp.Diff(test.slots, slots(cs)); d != "" {
			t.Errorf("%s: %s", test.mode, d)
		}
	}

	g.Mode = ModeCMYK
	if k := g.Channels().(CMYKChannels).K; k != g.Curve(4) {
		t.Error("K is not in slot 4")
	}
}

func TestClone(t *testing.T) {
	g := New()
	g.Mode = ModeHSV
	g.Precise = true
	g.Curve(2).SetPoints(Spline, []Point{{0, 10}, {100, 200}, {255, 30}})

	h := g.Clone()
	if h.Mode != ModeHSV || !h.Precise {
		t.Error("settings not copied")
	}
	if h.Curve(2).Table() != g.Curve(2).Table() {
		t.Error("tables not copied")
	}

	h.Curve(2).MovePoint(1, 50, 50)
	if d := cmp.Diff([]Point{{0, 10}, {100, 200}, {255, 30}}, g.Curve(2).Points()); d != "" {
		t.Errorf("editing the clone changed the original: %s", d)
	}
}

func TestGradationReset(t *testing.T) {
	g := New()
	g.Mode = ModeYUV
	for i := range NumChannels {
		g.Curve(i).SetPoints(Linear, []Point{{0, 255}, {255, 0}})
	}
	g.Reset()
	if g.Mode != ModeYUV {
		t.Errorf("mode changed to %s", g.Mode)
	}
	for i := range NumChannels {
		c := g.Curve(i)
		if !c.IsIdentity() || c.DrawMode() != Pen {
			t.Errorf("slot %d: %s curve, identity %t", i, c.DrawMode(), c.IsIdentity())
		}
	}
}
