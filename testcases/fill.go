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

package testcases

import (
	"math"

	"seehuhn.de/go/vectorize/raster"
)

var fillCases = []TestCase{
	{
		Name:   "rectangle",
		Path:   rectangle(10, 10, 44, 44).Path(),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "rectangle_offset",
		Path:   rectangle(10.5, 12.25, 40.5, 30.75).Path(),
		Width:  64,
		Height: 48,
	},
	{
		Name:   "triangle",
		Path:   triangle(10, 50, 32, 10, 54, 50).Path(),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "star_nonzero",
		Path:   fivePointStar(32, 32, 25).Path(),
		Width:  64,
		Height: 64,
		Rule:   raster.NonZero,
	},
	{
		Name:   "star_evenodd",
		Path:   fivePointStar(32, 32, 25).Path(),
		Width:  64,
		Height: 64,
		Rule:   raster.EvenOdd,
	},
	{
		Name:   "frame",
		Path:   frame(8, 8, 56, 56, 12).Path(),
		Width:  64,
		Height: 64,
		Rule:   raster.EvenOdd,
	},
	{
		Name:   "nested_frames",
		Path:   nestedFrames(32, 32, 28, 6).Path(),
		Width:  64,
		Height: 64,
		Rule:   raster.EvenOdd,
	},
}

func rectangle(x1, y1, x2, y2 float64) *shape {
	return (&shape{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}

func triangle(x1, y1, x2, y2, x3, y3 float64) *shape {
	return (&shape{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// fivePointStar builds a self-intersecting five-pointed star.  Under the
// even-odd rule the central pentagon is a hole.
func fivePointStar(cx, cy, r float64) *shape {
	p := &shape{}
	for k, i := range []int{0, 2, 4, 1, 3} {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		v := pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
		if k == 0 {
			p = p.MoveTo(v)
		} else {
			p = p.LineTo(v)
		}
	}
	return p.Close()
}

// frame builds a square ring of the given border width.
func frame(x1, y1, x2, y2, border float64) *shape {
	p := rectangle(x1, y1, x2, y2)
	return p.MoveTo(pt(x1+border, y1+border)).
		LineTo(pt(x2-border, y1+border)).
		LineTo(pt(x2-border, y2-border)).
		LineTo(pt(x1+border, y2-border)).
		Close()
}

// nestedFrames builds concentric squares with alternating fill, for
// testing deeply nested holes.
func nestedFrames(cx, cy, r, step float64) *shape {
	p := &shape{}
	for ; r > 0; r -= step {
		p = p.MoveTo(pt(cx-r, cy-r)).
			LineTo(pt(cx+r, cy-r)).
			LineTo(pt(cx+r, cy+r)).
			LineTo(pt(cx-r, cy+r)).
			Close()
	}
	return p
}
