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
	"seehuhn.de/go/vectorize/raster"
)

// kappa places Bézier control points for a quarter circle.
const kappa = 0.5522847498307936

var curveCases = []TestCase{
	{
		Name:   "circle",
		Path:   circle(32, 32, 25).Path(),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "circle_small",
		Path:   circle(8, 8, 4.5).Path(),
		Width:  16,
		Height: 16,
	},
	{
		Name:   "circle_large",
		Path:   circle(100, 100, 90).Path(),
		Width:  200,
		Height: 200,
	},
	{
		Name:   "ellipse",
		Path:   ellipse(48, 32, 40, 20).Path(),
		Width:  96,
		Height: 64,
	},
	{
		Name:   "ring",
		Path:   ring(32, 32, 28, 14).Path(),
		Width:  64,
		Height: 64,
		Rule:   raster.EvenOdd,
	},
	{
		Name:   "cubic_scurve",
		Path:   cubicCurve(5, 32, 20, 0, 44, 64, 59, 32).Path(),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "quadratic_deep",
		Path:   quadraticCurve(8, 56, 32, -40, 56, 56).Path(),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "pie",
		Path:   pie(32, 32, 26).Path(),
		Width:  64,
		Height: 64,
	},
}

func quadraticCurve(x1, y1, cx, cy, x2, y2 float64) *shape {
	return (&shape{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt(cx, cy), pt(x2, y2)).
		Close()
}

func cubicCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) *shape {
	return (&shape{}).
		MoveTo(pt(x1, y1)).
		CubeTo(pt(c1x, c1y), pt(c2x, c2y), pt(x2, y2)).
		Close()
}

func circle(cx, cy, r float64) *shape {
	return ellipse(cx, cy, r, r)
}

// ellipse builds an approximate ellipse from four cubic Bézier curves.
func ellipse(cx, cy, rx, ry float64) *shape {
	kx := rx * kappa
	ky := ry * kappa
	return (&shape{}).
		MoveTo(pt(cx+rx, cy)).
		CubeTo(pt(cx+rx, cy-ky), pt(cx+kx, cy-ry), pt(cx, cy-ry)).
		CubeTo(pt(cx-kx, cy-ry), pt(cx-rx, cy-ky), pt(cx-rx, cy)).
		CubeTo(pt(cx-rx, cy+ky), pt(cx-kx, cy+ry), pt(cx, cy+ry)).
		CubeTo(pt(cx+kx, cy+ry), pt(cx+rx, cy+ky), pt(cx+rx, cy)).
		Close()
}

// ring builds two concentric circles, to be filled with the even-odd
// rule.
func ring(cx, cy, outer, inner float64) *shape {
	p := circle(cx, cy, outer)
	k := inner * kappa
	return p.MoveTo(pt(cx+inner, cy)).
		CubeTo(pt(cx+inner, cy-k), pt(cx+k, cy-inner), pt(cx, cy-inner)).
		CubeTo(pt(cx-k, cy-inner), pt(cx-inner, cy-k), pt(cx-inner, cy)).
		CubeTo(pt(cx-inner, cy+k), pt(cx-k, cy+inner), pt(cx, cy+inner)).
		CubeTo(pt(cx+k, cy+inner), pt(cx+inner, cy+k), pt(cx+inner, cy)).
		Close()
}

// pie builds a three-quarter disc, which has both sharp corners and
// smooth arcs.
func pie(cx, cy, r float64) *shape {
	k := r * kappa
	return (&shape{}).
		MoveTo(pt(cx, cy)).
		LineTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy+k), pt(cx+k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx-k, cy+r), pt(cx-r, cy+k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy-k), pt(cx-k, cy-r), pt(cx, cy-r)).
		Close()
}
