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

package contour

import (
	"image"
	"slices"
)

// Path is a closed contour on the pixel lattice.
//
// Points lists every lattice point along the boundary; consecutive
// points (and the last and first point) differ by one unit step.
// Contours are oriented so that the enclosed region lies to the left of
// the direction of travel when viewed with y pointing down.
type Path struct {
	Points []image.Point

	// Sign is +1 for the outline of a set region and -1 for a hole.
	Sign int

	// Area is the number of pixels enclosed by the contour, including the
	// pixels of any nested holes.
	Area int

	// Bounds is the smallest rectangle containing all points.
	Bounds image.Rectangle

	// Children are the contours directly nested inside this one. They
	// have the opposite sign.
	Children []*Path

	Parent *Path

	seq int // discovery order
}

// Len returns the number of lattice points.
func (p *Path) Len() int {
	return len(p.Points)
}

// Corners returns the points at which the contour changes direction.
func (p *Path) Corners() []image.Point {
	n := len(p.Points)
	var res []image.Point
	for i, q := range p.Points {
		prev := p.Points[(i+n-1)%n]
		next := p.Points[(i+1)%n]
		if q.Sub(prev) != next.Sub(q) {
			res = append(res, q)
		}
	}
	return res
}

// ContainsPixel reports whether the centre of pixel (x, y) lies inside
// the contour.
func (p *Path) ContainsPixel(x, y int) bool {
	if x < p.Bounds.Min.X || x >= p.Bounds.Max.X || y < p.Bounds.Min.Y || y >= p.Bounds.Max.Y {
		return false
	}
	// count the vertical edges in row y to the right of the pixel centre
	inside := false
	n := len(p.Points)
	for i, a := range p.Points {
		b := p.Points[(i+1)%n]
		if a.X != b.X || a.X <= x {
			continue
		}
		if min(a.Y, b.Y) == y {
			inside = !inside
		}
	}
	return inside
}

// Depth returns the nesting level, 0 for top-level contours.
func (p *Path) Depth() int {
	d := 0
	for q := p.Parent; q != nil; q = q.Parent {
		d++
	}
	return d
}

// Roots returns the top-level contours of a traced list, preserving
// order.
func Roots(paths []*Path) []*Path {
	var res []*Path
	for _, p := range paths {
		if p.Parent == nil {
			res = append(res, p)
		}
	}
	return res
}

// Walk calls fn for p and all contours nested inside it, parents before
// children.
func (p *Path) Walk(fn func(*Path)) {
	fn(p)
	for _, c := range p.Children {
		c.Walk(fn)
	}
}

// signedArea returns twice the signed shoelace area of the contour.
func signedArea(pts []image.Point) int {
	n := len(pts)
	a := 0
	for i, p := range pts {
		q := pts[(i+1)%n]
		a += p.X*q.Y - q.X*p.Y
	}
	return a
}

// buildTree links every contour to the innermost earlier contour which
// encloses it. An enclosing contour always starts before the contours
// it contains in scan order.
func buildTree(paths []*Path) {
	for i, p := range paths {
		start := p.Points[0]
		var parent *Path
		for _, q := range paths[:i] {
			if parent != nil && q.Area >= parent.Area {
				continue
			}
			if q.ContainsPixel(start.X, start.Y) {
				parent = q
			}
		}
		p.Parent = parent
	}
}

// byArea orders contours by decreasing area, keeping scan order for
// ties.
func byArea(a, b *Path) int {
	if a.Area != b.Area {
		return b.Area - a.Area
	}
	return a.seq - b.seq
}

// sortAndLink sorts the contours and fills in the Children lists in the
// same order.
func sortAndLink(paths []*Path) {
	slices.SortFunc(paths, byArea)
	for _, p := range paths {
		p.Children = nil
	}
	for _, p := range paths {
		if p.Parent != nil {
			p.Parent.Children = append(p.Parent.Children, p)
		}
	}
}
