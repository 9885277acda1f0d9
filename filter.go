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
	"sync"
)

// Filter adapts a [Gradation] to the life cycle of a video host: [Filter.Start]
// is called when the filter is activated, [Filter.Run] once per frame and
// [Filter.End] when the filter is deactivated.
//
// A Filter is safe for concurrent use.  Frames may be processed
// concurrently, while configuration changes wait for running frames to
// complete.
type Filter struct {
	mu      sync.RWMutex
	g       *Gradation
	running bool
}

// NewFilter returns a filter using a copy of g.
// If g is nil, all curves are the identity.
func NewFilter(g *Gradation) *Filter {
	if g == nil {
		g = New()
	} else {
		g = g.Clone()
	}
	return &Filter{g: g}
}

// Start prepares the filter for processing frames.
func (f *Filter) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.g.Mode.IsValid() {
		return errInvalidMode
	}
	if f.g.Mode == ModeLab {
		SharedLabTables()
	}
	f.running = true
	return nil
}

// Run transforms one frame.  The frames may be the same.
func (f *Filter) Run(dst, src *Frame) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.running {
		return ErrNotStarted
	}
	return f.g.Transform(dst, src)
}

// End stops frame processing.  The configuration is kept, and the filter
// can be started again.
func (f *Filter) End() {
	f.mu.Lock()
	f.running = false
	f.mu.Unlock()
}

// Configure changes the configuration of the filter.
// The function edit is called with a copy of the current configuration.
// If edit returns nil, the copy replaces the configuration; otherwise
// the configuration is left unchanged and the error is returned.
func (f *Filter) Configure(edit func(g *Gradation) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	g := f.g.Clone()
	if err := edit(g); err != nil {
		return err
	}
	if f.running && g.Mode == ModeLab {
		SharedLabTables()
	}
	f.g = g
	return nil
}

// Import reads curves from a file of the given format into the filter
// configuration.  On error the configuration is not changed.
func (f *Filter) Import(data []byte, format Format) error {
	return f.Configure(func(g *Gradation) error {
		return g.Import(data, format)
	})
}

// Gradation returns a copy of the current configuration.
func (f *Filter) Gradation() *Gradation {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.g.Clone()
}

var (
	// ErrNotStarted is returned by [Filter.Run] if the filter has not
	// been started.
	ErrNotStarted = errors.New("gradation: filter not started")

	errInvalidMode = errors.New("gradation: invalid processing mode")
)
