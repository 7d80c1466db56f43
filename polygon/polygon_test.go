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

package polygon_test

import (
	"image"
	"maps"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorize/bitmap"
	"seehuhn.de/go/vectorize/contour"
	"seehuhn.de/go/vectorize/polygon"
	"seehuhn.de/go/vectorize/testcases"
)

func tracePaths(t *testing.T, bm *bitmap.Bitmap) []*contour.Path {
	t.Helper()
	paths, err := contour.Trace(bm, contour.Options{Policy: contour.TurnMinority})
	if err != nil {
		t.Fatal(err)
	}
	return paths
}

func toVec(p image.Point) vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// distToLine returns the distance of p from the line through a and b.
func distToLine(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return p.Sub(a).Length()
	}
	w := p.Sub(a)
	return math.Abs(w.X*d.Y-w.Y*d.X) / l
}

func shoelace(v []vec.Vec2) float64 {
	a := 0.0
	for i, p := range v {
		q := v[(i+1)%len(v)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func TestSquare(t *testing.T) {
	bm := bitmap.Parse(
		"......",
		".####.",
		".####.",
		".####.",
		".####.",
		"......",
	)
	paths := tracePaths(t, bm)
	poly := polygon.Optimize(paths[0])

	corners := []vec.Vec2{{X: 1, Y: 1}, {X: 1, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 1}}
	if poly.Len() != 4 {
		t.Fatalf("expected 4 vertices, got %d: %v", poly.Len(), poly.Vertices)
	}
	for i, v := range poly.Vertices {
		if v.Sub(corners[i]).Length() > 1e-6 {
			t.Errorf("vertex %d at %v is not a corner of the square", i, v)
		}
		if !poly.IsCorner(i, 0) || poly.IsCorner(i, 1) {
			t.Errorf("vertex %d: alpha %g", i, poly.Alpha[i])
		}
	}
}

func TestHoleOrientation(t *testing.T) {
	var tc testcases.TestCase
	for _, c := range testcases.All["pattern"] {
		if c.Name == "island" {
			tc = c
		}
	}
	paths := tracePaths(t, tc.Bitmap())
	if len(paths) != 3 {
		t.Fatalf("expected 3 contours, got %d", len(paths))
	}
	var areas []float64
	for _, p := range paths {
		poly := polygon.Optimize(p)
		if poly.Sign != p.Sign {
			t.Errorf("sign changed from %d to %d", p.Sign, poly.Sign)
		}
		areas = append(areas, shoelace(poly.Vertices))
	}
	if areas[0]*areas[1] >= 0 || areas[1]*areas[2] >= 0 {
		t.Errorf("holes do not wind opposite to outlines: %v", areas)
	}
}

// TestTolerance checks, for all test images, that every contour point
// stays close to the polygon edge replacing it, and that vertices only
// move within the unit square around their contour point.
func TestTolerance(t *testing.T) {
	const eps = 1e-9
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				for _, path := range tracePaths(t, tc.Bitmap()) {
					checkPolygon(t, path, polygon.Optimize(path), eps)
				}
			})
		}
	}
}

func checkPolygon(t *testing.T, path *contour.Path, poly *polygon.Polygon, eps float64) {
	t.Helper()
	pt := path.Points
	n := len(pt)
	m := poly.Len()
	if m < 3 || len(poly.Index) != m || len(poly.Alpha) != m {
		t.Fatalf("malformed polygon with %d vertices", m)
	}

	for k, v := range poly.Vertices {
		src := toVec(pt[poly.Index[k]])
		if math.Abs(v.X-src.X) > polygon.MaxShift+eps || math.Abs(v.Y-src.Y) > polygon.MaxShift+eps {
			t.Errorf("vertex %d moved from %v to %v", k, src, v)
		}
		if a := poly.Alpha[k]; a < 0 || a > 4.0/3 {
			t.Errorf("vertex %d: alpha %g out of range", k, a)
		}
	}

	idx := slices.Clone(poly.Index)
	if poly.Sign < 0 {
		slices.Reverse(idx)
	}
	if !slices.IsSorted(idx) || idx[0] != 0 {
		t.Fatalf("vertex indices %v not in contour order", idx)
	}
	for k, i := range idx {
		j := n
		if k+1 < len(idx) {
			j = idx[k+1]
		}
		a, b := toVec(pt[i]), toVec(pt[j%n])
		for l := i + 1; l < j; l++ {
			if d := distToLine(toVec(pt[l]), a, b); d > polygon.MaxDeviation {
				t.Errorf("point %d at %v is %.2f away from edge %v-%v", l, pt[l], d, a, b)
			}
		}
	}
}
