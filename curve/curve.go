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

// Package curve turns optimal polygons into closed outlines made of
// straight and cubic Bézier segments.
package curve

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Kind distinguishes straight from cubic segments.
type Kind uint8

// The segment kinds.
const (
	Line Kind = iota
	Cubic
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Cubic:
		return "cubic"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Segment is one piece of an outline. For straight segments the control
// points C1 and C2 are unused.
type Segment struct {
	Kind   Kind
	Start  vec.Vec2
	C1, C2 vec.Vec2
	End    vec.Vec2
}

// Curve is a closed outline. The end point of every segment is the start
// point of the next one, and the last segment ends where the first one
// starts.
type Curve struct {
	Segments []Segment

	// Sign is +1 for outlines of filled regions and -1 for holes. Holes
	// wind in the opposite direction to outlines.
	Sign int
}

// Closed reports whether consecutive segments join up, including the
// join from the last segment back to the first.
func (c *Curve) Closed() bool {
	n := len(c.Segments)
	if n == 0 {
		return false
	}
	for i, s := range c.Segments {
		next := c.Segments[(i+1)%n]
		if !near(s.End, next.Start) {
			return false
		}
	}
	return true
}

// Count returns the number of straight and cubic segments.
func (c *Curve) Count() (lines, cubics int) {
	for _, s := range c.Segments {
		if s.Kind == Cubic {
			cubics++
		} else {
			lines++
		}
	}
	return lines, cubics
}

// SignedArea returns the area enclosed by the curve, positive for
// counter-clockwise orientation in a y-up coordinate system.
func (c *Curve) SignedArea() float64 {
	a := 0.0
	for _, s := range c.Segments {
		p0, p3 := s.Start, s.End
		if s.Kind == Line {
			a += cross(p0, p3) * 10
			continue
		}
		p1, p2 := s.C1, s.C2
		a += 6*cross(p0, p1) + 3*cross(p0, p2) + cross(p0, p3) +
			3*cross(p1, p2) + 3*cross(p1, p3) + 6*cross(p2, p3)
	}
	return a / 20
}

// Area returns the absolute enclosed area.
func (c *Curve) Area() float64 {
	return math.Abs(c.SignedArea())
}

// Bounds returns the bounding box of all end and control points.
func (c *Curve) Bounds() (lo, hi vec.Vec2) {
	if len(c.Segments) == 0 {
		return
	}
	lo = c.Segments[0].Start
	hi = lo
	add := func(p vec.Vec2) {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	for _, s := range c.Segments {
		if s.Kind == Cubic {
			add(s.C1)
			add(s.C2)
		}
		add(s.End)
	}
	return lo, hi
}

// PointAt evaluates the segment at parameter t in [0, 1].
func (s *Segment) PointAt(t float64) vec.Vec2 {
	if s.Kind == Line {
		return lerp(t, s.Start, s.End)
	}
	return bezier(t, s.Start, s.C1, s.C2, s.End)
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func near(a, b vec.Vec2) bool {
	return math.Abs(a.X-b.X) <= 1e-9 && math.Abs(a.Y-b.Y) <= 1e-9
}

// lerp returns a + t(b - a).
func lerp(t float64, a, b vec.Vec2) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

func bezier(t float64, p0, p1, p2, p3 vec.Vec2) vec.Vec2 {
	s := 1 - t
	return p0.Mul(s * s * s).
		Add(p1.Mul(3 * s * s * t)).
		Add(p2.Mul(3 * s * t * t)).
		Add(p3.Mul(t * t * t))
}
