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

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

var approaches = []struct {
	name  string
	limit int
}{
	{"buffered", 1 << 30},
	{"scanlines", 0},
}

func render(r *Rasterizer, p path.Path, rule FillRule, w, h int) []float32 {
	buf := make([]float32, w*h)
	r.Fill(p, rule, func(y, x0 int, cov []float32) {
		copy(buf[y*w+x0:], cov)
	})
	return buf
}

// TestTriangleCoverage checks exact coverage values for the triangle
// (0,0), (10,0), (10,1), where pixel x is covered by (2x+1)/20.
func TestTriangleCoverage(t *testing.T) {
	tri := polygons([]vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 1}})

	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
			r.bufferedLimit = a.limit
			cov := render(r, tri, NonZero, 10, 1)
			for x := range 10 {
				want := float32(2*x+1) / 20
				if math.Abs(float64(cov[x]-want)) > 1e-6 {
					t.Errorf("pixel %d: got %.4f, want %.4f", x, cov[x], want)
				}
			}
		})
	}
}

// polygons returns a path made of closed polygons.
func polygons(rings ...[]vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, ring := range rings {
			if !yield(path.CmdMoveTo, ring[:1]) {
				return
			}
			for i := 1; i < len(ring); i++ {
				if !yield(path.CmdLineTo, ring[i:i+1]) {
					return
				}
			}
			if !yield(path.CmdClose, nil) {
				return
			}
		}
	}
}

func square(x0, y0, x1, y1 float64, ccw bool) []vec.Vec2 {
	if ccw {
		return []vec.Vec2{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
	}
	return []vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func TestFillRules(t *testing.T) {
	// two nested squares with the same orientation
	same := polygons(square(0, 0, 8, 8, false), square(2, 2, 6, 6, false))
	// the inner square reversed, as used for holes
	hole := polygons(square(0, 0, 8, 8, false), square(2, 2, 6, 6, true))

	type probe struct {
		p    path.Path
		rule FillRule
		want float32 // coverage of the centre pixel
	}
	probes := []probe{
		{same, NonZero, 1},
		{same, EvenOdd, 0},
		{hole, NonZero, 0},
		{hole, EvenOdd, 0},
	}
	for _, a := range approaches {
		for i, pr := range probes {
			t.Run(fmt.Sprintf("%s-%d-%s", a.name, i, pr.rule), func(t *testing.T) {
				r := NewRasterizer(rect.Rect{URx: 8, URy: 8})
				r.bufferedLimit = a.limit
				cov := render(r, pr.p, pr.rule, 8, 8)
				if got := cov[4*8+4]; got != pr.want {
					t.Errorf("centre: got %g, want %g", got, pr.want)
				}
				if got := cov[1*8+1]; got != 1 {
					t.Errorf("ring: got %g, want 1", got)
				}
			})
		}
	}
}

func TestApproachesAgree(t *testing.T) {
	const size = 64
	o := makeOPath(size/2, size/2, size*0.45, size*0.3)
	clip := rect.Rect{URx: size, URy: size}

	rA := NewRasterizer(clip)
	rA.bufferedLimit = approaches[0].limit
	rB := NewRasterizer(clip)
	rB.bufferedLimit = approaches[1].limit

	for _, rule := range []FillRule{NonZero, EvenOdd} {
		a := render(rA, o, rule, size, size)
		b := render(rB, o, rule, size, size)
		for i := range a {
			if math.Abs(float64(a[i]-b[i])) > 1e-5 {
				t.Fatalf("%s: pixel (%d,%d) differs: %g vs %g",
					rule, i%size, i/size, a[i], b[i])
			}
		}
	}
}

// TestAgainstVector compares the coverage with the output of the
// rasterizer from golang.org/x/image/vector.
func TestAgainstVector(t *testing.T) {
	const size = 80
	cx, cy := float64(size)/2, float64(size)/2
	outerR, innerR := float64(size)*0.45, float64(size)*0.3

	r := NewRasterizer(rect.Rect{URx: size, URy: size})
	ours := render(r, makeOPath(cx, cy, outerR, innerR), NonZero, size, size)

	v := vector.NewRasterizer(size, size)
	addCircleToVector(v, float32(cx), float32(cy), float32(outerR), false)
	addCircleToVector(v, float32(cx), float32(cy), float32(innerR), true)
	ref := image.NewAlpha(image.Rect(0, 0, size, size))
	v.Draw(ref, ref.Bounds(), image.NewUniform(color.Alpha{255}), image.Point{})

	total := 0.0
	worst := 0.0
	for i, c := range ours {
		d := math.Abs(float64(c)*255 - float64(ref.Pix[i]))
		total += d
		worst = max(worst, d)
	}
	if mean := total / float64(len(ours)); mean > 1 {
		t.Errorf("mean difference %.3f too large", mean)
	}
	if worst > 48 {
		t.Errorf("maximal difference %.1f too large", worst)
	}
}
