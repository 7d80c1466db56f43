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

// Package polygon reduces pixel contours to optimal polygons.
//
// A contour from package contour has one vertex per unit step along the
// pixel boundary. Optimize selects the smallest subset of these points
// such that every edge of the resulting polygon stays close to the
// boundary, then moves the vertices to the best position between the
// neighbouring least-squares lines.
package polygon

import (
	"image"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorize/contour"
)

// MaxDeviation bounds the distance between any point of a contour and
// the chord of the polygon edge which replaces it.
const MaxDeviation = 1.5

// MaxShift bounds the distance, in each coordinate, by which a polygon
// vertex is moved away from the contour point it was selected from.
const MaxShift = 0.5

// Polygon is a closed polygon approximating a contour.
type Polygon struct {
	// Path is the contour this polygon was derived from.
	Path *contour.Path

	// Index holds, for every vertex, the index of the contour point it
	// was selected from.
	Index []int

	// Vertices are the adjusted vertex positions.
	Vertices []vec.Vec2

	// Alpha measures how sharp the polygon turns at each vertex.
	// Values range from 0 (straight) to 4/3 (the vertex lies far outside
	// the chord of its neighbours). A vertex is rendered as a corner if
	// its alpha is at least the alphaMax of the curve fitter.
	Alpha []float64

	// Sign is copied from the contour. The vertices of holes are stored
	// in reverse order, so that holes wind opposite to their enclosing
	// outlines.
	Sign int
}

// Len returns the number of vertices.
func (p *Polygon) Len() int {
	return len(p.Vertices)
}

// IsCorner reports whether vertex i is classified as a corner for the
// given alphaMax.
func (p *Polygon) IsCorner(i int, alphaMax float64) bool {
	return p.Alpha[i] >= alphaMax
}

// Optimize computes the optimal polygon for a contour.
//
// Contours with fewer than four points are copied unchanged.
func Optimize(path *contour.Path) *Polygon {
	pt := path.Points
	n := len(pt)
	poly := &Polygon{Path: path, Sign: path.Sign}

	if n < 4 {
		for i, q := range pt {
			poly.Index = append(poly.Index, i)
			poly.Vertices = append(poly.Vertices, toVec(q))
		}
	} else {
		s := newSums(pt)
		lon := straightRuns(pt)
		poly.Index = bestPolygon(s, lon)
		poly.Vertices = adjustVertices(s, poly.Index)
	}

	if poly.Sign < 0 {
		reverse(poly.Index)
		reverse(poly.Vertices)
	}
	poly.Alpha = cornerAlpha(poly.Vertices)
	return poly
}

// cornerAlpha computes the alpha value of every vertex from its
// neighbours.
func cornerAlpha(v []vec.Vec2) []float64 {
	m := len(v)
	alpha := make([]float64, m)
	if m < 3 {
		for j := range alpha {
			alpha[j] = 4.0 / 3
		}
		return alpha
	}
	for j := range m {
		a := v[mod(j-1, m)]
		b := v[j]
		c := v[mod(j+1, m)]

		// L1 length of the chord; a unit square centred on b touches the
		// chord iff |area(a, b, c)| <= denom
		denom := math.Abs(c.X-a.X) + math.Abs(c.Y-a.Y)
		if denom == 0 {
			alpha[j] = 4.0 / 3
			continue
		}
		dd := math.Abs(parallelogram(a, b, c)) / denom
		if dd > 1 {
			alpha[j] = (1 - 1/dd) / 0.75
		}
	}
	return alpha
}

// parallelogram returns (b-a)×(c-a), twice the signed area of the
// triangle abc.
func parallelogram(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

func toVec(p image.Point) vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// mod returns a modulo n in the range 0..n-1.
func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// floorDiv returns floor(a/b) for b > 0.
func floorDiv(a, b int) int {
	if a >= 0 {
		return a / b
	}
	return -1 - (-1-a)/b
}

// cyclic reports whether a <= b < c in the cyclic order of indices.
func cyclic(a, b, c int) bool {
	if a <= c {
		return a <= b && b < c
	}
	return a <= b || b < c
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func cross(a, b image.Point) int {
	return a.X*b.Y - a.Y*b.X
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
