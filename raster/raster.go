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

// Package raster renders traced documents back into pixels.
//
// The scan converter computes exact area coverage for polygons and
// approximates curves by line segments.  It is used to check traced
// outlines against their source bitmaps, and to preview results.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// FillRule selects how path windings are turned into coverage.
type FillRule int

// These are the supported fill rules.
const (
	NonZero FillRule = iota
	EvenOdd
)

func (f FillRule) String() string {
	if f == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// edge is a line segment in device coordinates, with y0 != y1.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) yRange() (float64, float64) {
	return min(e.y0, e.y1), max(e.y0, e.y1)
}

// A Rasterizer converts closed paths into per-pixel coverage values in
// the range 0 to 1.  Buffers are kept between calls, so a single
// Rasterizer should be reused for many paths.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps path coordinates to device pixels.
	CTM matrix.Matrix

	// Clip restricts output to this integer-aligned device rectangle.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the line segments used to approximate it.
	Flatness float64

	// bufferedLimit is the largest bounding box area, in pixels, which is
	// handled with full-size accumulation buffers.  Larger paths are
	// processed one scanline at a time.
	bufferedLimit int

	cover  []float32
	area   []float32
	rowSet []bool
	edges  []edge
	active []int

	// device space bounding box of r.edges
	haveBox      bool
	boxX0, boxX1 float64
	boxY0, boxY1 float64
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, using
// the identity transformation.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:           matrix.Identity,
		Clip:          clip,
		Flatness:      defaultFlatness,
		bufferedLimit: bufferedLimit,
	}
}

// Fill computes the coverage of p under the given fill rule.  The emit
// callback is called once per non-empty row, with the coverage of the
// pixels starting at column x0.  The slice is only valid during the call.
func (r *Rasterizer) Fill(p path.Path, rule FillRule, emit func(y, x0 int, coverage []float32)) {
	x0, x1, y0, y1, ok := r.collect(p)
	if !ok {
		return
	}
	if (x1-x0)*(y1-y0) < r.bufferedLimit {
		r.fillBuffered(x0, x1, y0, y1, rule, emit)
	} else {
		r.fillScanlines(x0, x1, y0, y1, rule, emit)
	}
}

// collect converts p into device space edges.  The returned box is the
// pixel range touched by the edges, clipped to r.Clip.
func (r *Rasterizer) collect(p path.Path) (x0, x1, y0, y1 int, ok bool) {
	r.edges = r.edges[:0]
	r.haveBox = false

	var cur, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = pts[0]
			start = cur
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			r.flattenQuad(cur, pts[0], pts[1])
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2])
			cur = pts[2]
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	// fill implicitly closes an open final subpath
	if cur != start {
		r.addEdge(cur, start)
	}

	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	x0 = max(int(math.Floor(r.boxX0)), int(r.Clip.LLx))
	x1 = min(int(math.Floor(r.boxX1))+1, int(r.Clip.URx))
	y0 = max(int(math.Floor(r.boxY0)), int(r.Clip.LLy))
	y1 = min(int(math.Floor(r.boxY1))+1, int(r.Clip.URy))
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0, false
	}
	return x0, x1, y0, y1, true
}

func (r *Rasterizer) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2) {
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// flattenCubic splits a cubic Bézier curve into n line segments, where n
// is given by Wang's formula.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if !r.haveBox {
		r.boxX0, r.boxX1 = x0, x0
		r.boxY0, r.boxY1 = y0, y0
		r.haveBox = true
	}
	r.boxX0 = min(r.boxX0, x0, x1)
	r.boxX1 = max(r.boxX1, x0, x1)
	r.boxY0 = min(r.boxY0, y0, y1)
	r.boxY1 = max(r.boxY1, y0, y1)
}

// Each edge adds, for every pixel it crosses, its signed vertical extent
// to cover[] and the part of that extent lying left of the edge to
// area[].  Summing cover[] from the left and adding area[] of the
// current pixel gives the signed winding area inside each pixel.

// accumulate adds the part of e inside scanline y to cover and area.
// Index 0 of both buffers corresponds to column bx0.  Contributions left
// of bx0 are folded into column bx0, contributions right of bx1 are
// dropped.
func accumulate(e *edge, y int, cover, area []float32, bx0, bx1 int) {
	ey0, ey1 := e.yRange()
	top := max(float64(y), ey0)
	bot := min(float64(y+1), ey1)
	if bot <= top {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(top-e.y0)
	xb := e.x0 + e.dxdy*(bot-e.y0)
	if xa > xb {
		xa, xb = xb, xa
	}
	left := int(math.Floor(xa))
	right := int(math.Floor(xb))

	switch {
	case right < bx0:
		c := sign * float32(bot-top)
		cover[0] += c
		area[0] += c
		return
	case left >= bx1:
		return
	case left == right:
		deposit(e, top, bot, sign, left, cover, area, bx0, bx1)
		return
	}

	dydx := 1 / e.dxdy
	for col := left; col <= right; col++ {
		ya := e.y0 + dydx*(float64(col)-e.x0)
		yb := e.y0 + dydx*(float64(col+1)-e.x0)
		lo := max(min(ya, yb), top)
		hi := min(max(ya, yb), bot)
		if hi <= lo {
			continue
		}
		deposit(e, lo, hi, sign, col, cover, area, bx0, bx1)
	}
}

// deposit records the part of e between lo and hi, which lies inside
// pixel column col.
func deposit(e *edge, lo, hi float64, sign float32, col int, cover, area []float32, bx0, bx1 int) {
	c := sign * float32(hi-lo)
	if col < bx0 {
		cover[0] += c
		area[0] += c
		return
	}
	if col >= bx1 {
		return
	}
	xMid := e.x0 + e.dxdy*((lo+hi)/2-e.y0)
	frac := xMid - float64(col)
	i := col - bx0
	cover[i] += c
	area[i] += c * float32(1-frac)
}

// integrate turns the accumulated buffers of one row into coverage
// values, overwriting cover.
func integrate(cover, area []float32, rule FillRule) {
	var acc float32
	for i := range cover {
		w := acc + area[i]
		acc += cover[i]
		if w < 0 {
			w = -w
		}
		if rule == EvenOdd {
			w -= 2 * float32(int(w/2))
			if w > 1 {
				w = 2 - w
			}
		} else if w > 1 {
			w = 1
		}
		cover[i] = w
	}
}

// trimZeros returns the non-zero part of a row and its offset.
func trimZeros(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return row[lo:hi], lo
}

// fillBuffered accumulates all edges into full-size buffers covering
// the box, then integrates row by row.
func (r *Rasterizer) fillBuffered(x0, x1, y0, y1 int, rule FillRule, emit func(y, x0 int, coverage []float32)) {
	w := x1 - x0
	h := y1 - y0
	n := w * h
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	r.rowSet = slices.Grow(r.rowSet[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.rowSet)

	for i := range r.edges {
		e := &r.edges[i]
		lo, hi := e.yRange()
		first := max(int(math.Floor(lo)), y0)
		last := min(int(math.Floor(hi))+1, y1)
		for y := first; y < last; y++ {
			row := y - y0
			off := row * w
			accumulate(e, y, r.cover[off:off+w], r.area[off:off+w], x0, x1)
			r.rowSet[row] = true
		}
	}

	for row := range h {
		if !r.rowSet[row] {
			continue
		}
		off := row * w
		cov := r.cover[off : off+w]
		integrate(cov, r.area[off:off+w], rule)
		if t, k := trimZeros(cov); t != nil {
			emit(y0+row, x0+k, t)
		}
	}
}

// fillScanlines processes one row at a time, keeping a list of the
// edges which intersect the current row.
func (r *Rasterizer) fillScanlines(x0, x1, y0, y1 int, rule FillRule, emit func(y, x0 int, coverage []float32)) {
	w := x1 - x0
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := y0; y < y1; y++ {
		top := float64(y)
		for next < len(r.edges) {
			lo, _ := r.edges[next].yRange()
			if lo >= top+1 {
				break
			}
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if _, hi := e.yRange(); hi <= top {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			accumulate(e, y, r.cover, r.area, x0, x1)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area, rule)
		if t, k := trimZeros(r.cover); t != nil {
			emit(y, x0+k, t)
		}
	}
}

const (
	// defaultFlatness is the default curve approximation tolerance, in
	// device pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	bufferedLimit = 65536
)
