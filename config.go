// seehuhn.de/go/vectorize - trace raster images into vector outlines
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

package vectorize

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/vectorize/bitmap"
	"seehuhn.de/go/vectorize/contour"
	"seehuhn.de/go/vectorize/curve"
)

// ErrInvalidInput is returned for malformed pixel buffers and invalid
// configuration values.
var ErrInvalidInput = bitmap.ErrInvalidInput

// ErrTraceInvariant indicates an internal failure of the contour tracer.
var ErrTraceInvariant = contour.ErrTraceInvariant

// PixelBuffer holds the pixels of an image, see [bitmap.Pixels].
type PixelBuffer = bitmap.Pixels

// TurnPolicy selects how contours are continued at ambiguous lattice
// points, see [contour.TurnPolicy].
type TurnPolicy = contour.TurnPolicy

// These are the available turn policies.
const (
	TurnBlack    = contour.TurnBlack
	TurnWhite    = contour.TurnWhite
	TurnLeft     = contour.TurnLeft
	TurnRight    = contour.TurnRight
	TurnMinority = contour.TurnMinority
	TurnMajority = contour.TurnMajority
)

// ParseTurnPolicy converts a lower-case policy name, like "minority",
// into a TurnPolicy.
func ParseTurnPolicy(s string) (TurnPolicy, error) {
	return contour.ParseTurnPolicy(s)
}

// Config holds the parameters of a trace.
type Config struct {
	// Threshold is the luminance, in 0..255, separating foreground from
	// background.  Pixels darker than Threshold are traced.
	Threshold int `toml:"threshold"`

	// Invert traces pixels with luminance at least Threshold instead.
	Invert bool `toml:"invert"`

	// ColorMode produces one layer per quantised colour, instead of a
	// single black layer.
	ColorMode bool `toml:"color_mode"`

	// Colors is the number of quantisation levels per channel used in
	// colour mode, in 2..16.
	Colors int `toml:"colors"`

	// Palette optionally lists the colours, as "#rrggbb", used in colour
	// mode.  Each pixel is mapped to the perceptually nearest entry.
	Palette []string `toml:"palette,omitempty"`

	// TurnPolicy resolves ambiguous pixel junctions; in TOML it is one
	// of "black", "white", "left", "right", "minority" or "majority".
	TurnPolicy TurnPolicy `toml:"turn_policy"`

	// TurdSize is the area, in pixels, up to which contours are
	// discarded as noise.
	TurdSize int `toml:"turd_size"`

	// AlphaMax is the corner threshold, in 0..MaxAlphaMax.  Zero gives a
	// polygon, larger values give smoother outlines; from 4/3 on there
	// are no corners at all.
	AlphaMax float64 `toml:"alpha_max"`

	// OptiCurve joins adjacent Bézier segments where this changes the
	// outline by at most OptTolerance.
	OptiCurve bool `toml:"opticurve"`

	// OptTolerance is the maximal deviation allowed when joining
	// segments.
	OptTolerance float64 `toml:"opt_tolerance"`

	// Workers limits the number of colour layers traced concurrently.
	// Zero means GOMAXPROCS.
	Workers int `toml:"workers,omitempty"`
}

// MaxAlphaMax is the largest accepted value of Config.AlphaMax.
const MaxAlphaMax = 1.34

// DefaultConfig returns the default settings: black outlines of pixels
// darker than 50% gray.
func DefaultConfig() Config {
	return Config{
		Threshold:    128,
		Colors:       4,
		TurnPolicy:   TurnBlack,
		TurdSize:     2,
		AlphaMax:     1,
		OptiCurve:    true,
		OptTolerance: curve.DefaultOptTolerance,
	}
}

// Validate checks that all fields are in range.  The returned error
// wraps ErrInvalidInput.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...))
	}

	if c.Threshold < 0 || c.Threshold > 255 {
		add("threshold %d outside 0..255", c.Threshold)
	}
	if c.Colors < 2 || c.Colors > 16 {
		add("%d colour levels outside 2..16", c.Colors)
	}
	if _, err := c.palette(); err != nil {
		errs = append(errs, err)
	}
	if !c.TurnPolicy.Valid() {
		add("unknown turn policy %d", int(c.TurnPolicy))
	}
	if c.TurdSize < 0 {
		add("negative turd size %d", c.TurdSize)
	}
	if !(c.AlphaMax >= 0 && c.AlphaMax <= MaxAlphaMax) {
		add("alpha max %g outside 0..%g", c.AlphaMax, MaxAlphaMax)
	}
	if !(c.OptTolerance >= 0) {
		add("negative opt tolerance %g", c.OptTolerance)
	}
	if c.Workers < 0 {
		add("negative worker count %d", c.Workers)
	}
	return errors.Join(errs...)
}

// palette parses the Palette field.
func (c *Config) palette() ([]color.RGBA, error) {
	var res []color.RGBA
	for _, s := range c.Palette {
		col, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: palette colour %q", ErrInvalidInput, s)
		}
		r, g, b := col.RGB255()
		res = append(res, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return res, nil
}

// ReadConfig reads a TOML configuration.  Settings missing from the
// input keep their default values.  The result is not validated.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// WriteConfig writes cfg in TOML format.
func WriteConfig(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
