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

// Package testcases provides images with known content for testing the
// tracer.
//
// Each test case is either a vector shape, which is rasterized to obtain
// the input pixels, or a literal pixel pattern.
package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorize/bitmap"
	"seehuhn.de/go/vectorize/raster"
)

// TestCase defines a single input image.
type TestCase struct {
	Name   string // lowercase a-z, 0-9 and _ only
	Width  int    // image width in pixels
	Height int    // image height in pixels

	// Path is the shape painted black onto a white background.
	Path path.Path
	Rule raster.FillRule
	CTM  matrix.Matrix // zero value means no transform

	// Rows, if set, gives the pixels directly, using the notation of
	// [bitmap.Parse].  Path is ignored in this case.
	Rows []string
}

// coverage returns the fraction of each pixel covered by the shape.
func (tc *TestCase) coverage() []float32 {
	w, h := tc.Width, tc.Height
	buf := make([]float32, w*h)
	if tc.Rows != nil {
		bm := bitmap.Parse(tc.Rows...)
		for y := range h {
			for x := range w {
				if bm.Get(x, y) {
					buf[y*w+x] = 1
				}
			}
		}
		return buf
	}

	r := raster.NewRasterizer(rect.Rect{URx: float64(w), URy: float64(h)})
	if tc.CTM != (matrix.Matrix{}) {
		r.CTM = tc.CTM
	}
	r.Fill(tc.Path, tc.Rule, func(y, x0 int, cov []float32) {
		copy(buf[y*w+x0:], cov)
	})
	return buf
}

// Pixels returns the anti-aliased gray scale image of the test case.
func (tc *TestCase) Pixels() *bitmap.Pixels {
	cov := tc.coverage()
	gray := make([]uint8, len(cov))
	for i, c := range cov {
		gray[i] = uint8(255 - int(c*255+0.5))
	}
	return &bitmap.Pixels{Width: tc.Width, Height: tc.Height, Gray: gray}
}

// Bitmap returns the pixels which are at least half covered by the
// shape.  This is the bitmap obtained by binarizing Pixels with the
// default threshold.
func (tc *TestCase) Bitmap() *bitmap.Bitmap {
	cov := tc.coverage()
	bm := bitmap.New(tc.Width, tc.Height)
	for i, c := range cov {
		if c >= 0.5 {
			bm.Set(i%tc.Width, i/tc.Width, true)
		}
	}
	return bm
}

// shape collects the commands of a path.
type shape struct {
	cmds []path.Command
	pts  [][]vec.Vec2
}

func (s *shape) add(cmd path.Command, pts ...vec.Vec2) *shape {
	s.cmds = append(s.cmds, cmd)
	s.pts = append(s.pts, pts)
	return s
}

func (s *shape) MoveTo(p vec.Vec2) *shape         { return s.add(path.CmdMoveTo, p) }
func (s *shape) LineTo(p vec.Vec2) *shape         { return s.add(path.CmdLineTo, p) }
func (s *shape) QuadTo(c, p vec.Vec2) *shape      { return s.add(path.CmdQuadTo, c, p) }
func (s *shape) CubeTo(c1, c2, p vec.Vec2) *shape { return s.add(path.CmdCubeTo, c1, c2, p) }
func (s *shape) Close() *shape                    { return s.add(path.CmdClose) }

// Path returns an iterator over the commands.
func (s *shape) Path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i, cmd := range s.cmds {
			if !yield(cmd, s.pts[i]) {
				return
			}
		}
	}
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
