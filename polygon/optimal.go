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

package polygon

import (
	"image"
	"math"

	"seehuhn.de/go/geom/vec"
)

// sums holds prefix sums of the contour coordinates, relative to the
// first point, for computing least-squares fits of arbitrary runs in
// constant time.
type sums struct {
	pt   []image.Point
	orig image.Point
	x    []int
	y    []int
	xx   []int
	xy   []int
	yy   []int
}

func newSums(pt []image.Point) *sums {
	n := len(pt)
	s := &sums{
		pt:   pt,
		orig: pt[0],
		x:    make([]int, n+1),
		y:    make([]int, n+1),
		xx:   make([]int, n+1),
		xy:   make([]int, n+1),
		yy:   make([]int, n+1),
	}
	for i, p := range pt {
		x := p.X - s.orig.X
		y := p.Y - s.orig.Y
		s.x[i+1] = s.x[i] + x
		s.y[i+1] = s.y[i] + y
		s.xx[i+1] = s.xx[i] + x*x
		s.xy[i+1] = s.xy[i] + x*y
		s.yy[i+1] = s.yy[i] + y*y
	}
	return s
}

// moments returns the sums over the points i..j (inclusive, i <= j,
// possibly wrapping around once or more) and the point count.
func (s *sums) moments(i, j int) (x, y, xx, xy, yy, k float64) {
	n := len(s.pt)
	r := 0 // number of full turns
	for j >= n {
		j -= n
		r++
	}
	for i >= n {
		i -= n
		r--
	}
	for j < 0 {
		j += n
		r--
	}
	for i < 0 {
		i += n
		r++
	}
	x = float64(s.x[j+1] - s.x[i] + r*s.x[n])
	y = float64(s.y[j+1] - s.y[i] + r*s.y[n])
	xx = float64(s.xx[j+1] - s.xx[i] + r*s.xx[n])
	xy = float64(s.xy[j+1] - s.xy[i] + r*s.xy[n])
	yy = float64(s.yy[j+1] - s.yy[i] + r*s.yy[n])
	k = float64(j + 1 - i + r*n)
	return
}

// fitLine returns the centroid and principal direction of the points
// i..j, relative to the first contour point. The direction is zero if
// the points have no preferred direction.
func (s *sums) fitLine(i, j int) (ctr, dir vec.Vec2) {
	x, y, xx, xy, yy, k := s.moments(i, j)
	ctr = vec.Vec2{X: x / k, Y: y / k}

	a := (xx - x*x/k) / k
	b := (xy - x*y/k) / k
	c := (yy - y*y/k) / k

	// larger eigenvalue of the covariance matrix
	lambda := (a + c + math.Sqrt((a-c)*(a-c)+4*b*b)) / 2
	a -= lambda
	c -= lambda

	if math.Abs(a) >= math.Abs(c) {
		if l := math.Hypot(a, b); l != 0 {
			dir = vec.Vec2{X: -b / l, Y: a / l}
		}
	} else {
		if l := math.Hypot(c, b); l != 0 {
			dir = vec.Vec2{X: -c / l, Y: b / l}
		}
	}
	return ctr, dir
}

// penalty measures how badly the chord from point i to point j (j may
// equal n, meaning point 0 after one full turn) represents the points
// in between: the root of the summed squared distances, scaled by the
// chord length.
func (s *sums) penalty(i, j int) float64 {
	pt := s.pt
	n := len(pt)
	jj := j
	if jj >= n {
		jj -= n
	}
	x, y, xx, xy, yy, k := s.moments(i, j)

	px := float64(pt[i].X+pt[jj].X)/2 - float64(s.orig.X)
	py := float64(pt[i].Y+pt[jj].Y)/2 - float64(s.orig.Y)
	ey := float64(pt[jj].X - pt[i].X)
	ex := -float64(pt[jj].Y - pt[i].Y)

	a := (xx-2*x*px)/k + px*px
	b := (xy-x*py-y*px)/k + px*py
	c := (yy-2*y*py)/k + py*py

	return math.Sqrt(ex*ex*a + 2*ex*ey*b + ey*ey*c)
}

// straightRuns returns, for each contour point i, the index (modulo n)
// one past the end of the longest run starting at i which can be
// replaced by a single straight edge.
func straightRuns(pt []image.Point) []int {
	n := len(pt)

	// nextCorner[i] is the first point after i that is not on the same
	// axis-parallel segment as i
	nextCorner := make([]int, n)
	k := 0
	for i := n - 1; i >= 0; i-- {
		if pt[i].X != pt[k].X && pt[i].Y != pt[k].Y {
			k = i + 1
		}
		nextCorner[i] = k
	}

	piv := make([]int, n)
	for i := range n {
		piv[i] = pivot(pt, nextCorner, i)
	}

	// lon[i] is the largest k such that every i' in i..k-1 has its pivot
	// at or beyond k
	lon := make([]int, n)
	j := piv[n-1]
	lon[n-1] = j
	for i := n - 2; i >= 0; i-- {
		if cyclic(i+1, piv[i], j) {
			j = piv[i]
		}
		lon[i] = j
	}
	for i := n - 1; cyclic(mod(i+1, n), j, lon[i]); i-- {
		lon[i] = j
	}
	return lon
}

// unbounded stands for "no limit" when solving the integer constraints
// in pivot; it only needs to exceed any contour length.
const unbounded = 10000000

// pivot returns the furthest point k such that all points strictly
// between i and k lie within unit distance (in the maximum norm) of the
// line through points i and k.
func pivot(pt []image.Point, nextCorner []int, i int) int {
	n := len(pt)

	// the four axis directions, once all have occurred the run cannot
	// be straight
	var seen [4]bool
	seen[dirIndex(pt[mod(i+1, n)].Sub(pt[i]))] = true

	// the admissible directions from point i form the wedge between
	// lo and hi
	var lo, hi image.Point

	k := nextCorner[i]
	k1 := i
	for {
		d := pt[k].Sub(pt[k1])
		seen[dirIndex(image.Pt(sign(d.X), sign(d.Y)))] = true
		if seen[0] && seen[1] && seen[2] && seen[3] {
			return k1
		}

		cur := pt[k].Sub(pt[i])
		if cross(lo, cur) < 0 || cross(hi, cur) > 0 {
			break
		}

		if abs(cur.X) > 1 || abs(cur.Y) > 1 {
			var off image.Point
			if cur.Y >= 0 && (cur.Y > 0 || cur.X < 0) {
				off.X = cur.X + 1
			} else {
				off.X = cur.X - 1
			}
			if cur.X <= 0 && (cur.X < 0 || cur.Y < 0) {
				off.Y = cur.Y + 1
			} else {
				off.Y = cur.Y - 1
			}
			if cross(lo, off) >= 0 {
				lo = off
			}

			if cur.Y <= 0 && (cur.Y < 0 || cur.X < 0) {
				off.X = cur.X + 1
			} else {
				off.X = cur.X - 1
			}
			if cur.X >= 0 && (cur.X > 0 || cur.Y < 0) {
				off.Y = cur.Y + 1
			} else {
				off.Y = cur.Y - 1
			}
			if cross(hi, off) <= 0 {
				hi = off
			}
		}

		k1 = k
		k = nextCorner[k1]
		if !cyclic(k, i, k1) {
			break
		}
	}

	// k1 satisfies the constraints, k does not; find the last point on
	// the axis-parallel segment from k1 towards k which still does
	dk := pt[k].Sub(pt[k1])
	dk = image.Pt(sign(dk.X), sign(dk.Y))
	cur := pt[k1].Sub(pt[i])

	a := cross(lo, cur)
	b := cross(lo, dk)
	c := cross(hi, cur)
	d := cross(hi, dk)

	j := unbounded
	if b < 0 {
		j = floorDiv(a, -b)
	}
	if d > 0 {
		j = min(j, floorDiv(-c, d))
	}
	return mod(k1+j, n)
}

// dirIndex maps the four unit steps to 0..3.
func dirIndex(d image.Point) int {
	return (3 + 3*d.X + d.Y) / 2
}

// bestPolygon selects the polygon with the fewest edges, and among
// those the one with the lowest total penalty. Point 0 is always a
// vertex.
func bestPolygon(s *sums, lon []int) []int {
	n := len(s.pt)

	// clip0[i]: furthest point reachable by one edge from i, with
	// wrap-around mapped to n
	clip0 := make([]int, n)
	for i := range n {
		c := mod(lon[mod(i-1, n)]-1, n)
		if c == i {
			c = mod(i+1, n)
		}
		if c < i {
			clip0[i] = n
		} else {
			clip0[i] = c
		}
	}

	// clip1[j]: first point from which j is reachable by one edge
	clip1 := make([]int, n+1)
	j := 1
	for i := range n {
		for j <= clip0[i] {
			clip1[j] = i
			j++
		}
	}

	// seg0[j]: furthest point reachable from 0 with j edges
	seg0 := make([]int, n+1)
	i := 0
	for j = 0; i < n; j++ {
		seg0[j] = i
		i = clip0[i]
	}
	seg0[j] = n
	m := j

	// seg1[j]: earliest point from which n is reachable with m-j edges
	seg1 := make([]int, n+1)
	i = n
	for j = m; j > 0; j-- {
		seg1[j] = i
		i = clip1[i]
	}
	seg1[0] = 0

	pen := make([]float64, n+1)
	prev := make([]int, n+1)
	for j = 1; j <= m; j++ {
		for i := seg1[j]; i <= seg0[j]; i++ {
			best := -1.0
			for k := seg0[j-1]; k >= clip1[i]; k-- {
				p := s.penalty(k, i) + pen[k]
				if best < 0 || p < best {
					prev[i] = k
					best = p
				}
			}
			pen[i] = best
		}
	}

	res := make([]int, m)
	for i, j := n, m-1; i > 0; j-- {
		i = prev[i]
		res[j] = i
	}
	return res
}

// quadForm is a quadratic form on the affine plane, (x, y, 1) Q
// (x, y, 1)^T.
type quadForm [3][3]float64

func (q *quadForm) eval(w vec.Vec2) float64 {
	v := [3]float64{w.X, w.Y, 1}
	sum := 0.0
	for i := range 3 {
		for j := range 3 {
			sum += v[i] * q[i][j] * v[j]
		}
	}
	return sum
}

// addLine adds the squared distance from the line through ctr with
// direction dir.
func (q *quadForm) addLine(ctr, dir vec.Vec2) {
	d := dir.X*dir.X + dir.Y*dir.Y
	if d == 0 {
		return
	}
	v := [3]float64{dir.Y, -dir.X, 0}
	v[2] = -v[1]*ctr.Y - v[0]*ctr.X
	for i := range 3 {
		for j := range 3 {
			q[i][j] += v[i] * v[j] / d
		}
	}
}

// adjustVertices places each vertex at the point of the unit square
// around its contour point which is closest, in the least-squares
// sense, to the fitted lines of the two adjacent edges.
func adjustVertices(s *sums, po []int) []vec.Vec2 {
	m := len(po)
	n := len(s.pt)
	orig := toVec(s.orig)

	forms := make([]quadForm, m)
	for i := range m {
		j := po[mod(i+1, m)]
		j = mod(j-po[i], n) + po[i]
		ctr, dir := s.fitLine(po[i], j)
		forms[i].addLine(ctr, dir)
	}

	res := make([]vec.Vec2, m)
	for i := range m {
		q := forms[mod(i-1, m)]
		for r := range 3 {
			for c := range 3 {
				q[r][c] += forms[i][r][c]
			}
		}
		p := toVec(s.pt[po[i]]).Sub(orig)
		res[i] = minimizeInSquare(&q, p).Add(orig)
	}
	return res
}

// minimizeInSquare returns the minimum of q over the square of side 1
// centred at p.
func minimizeInSquare(q *quadForm, p vec.Vec2) vec.Vec2 {
	for {
		det := q[0][0]*q[1][1] - q[0][1]*q[1][0]
		if det != 0 {
			w := vec.Vec2{
				X: (-q[0][2]*q[1][1] + q[1][2]*q[0][1]) / det,
				Y: (q[0][2]*q[1][0] - q[1][2]*q[0][0]) / det,
			}
			if math.Abs(w.X-p.X) <= MaxShift && math.Abs(w.Y-p.Y) <= MaxShift {
				return w
			}
			break
		}

		// the lines are parallel; add an orthogonal line through p
		var v vec.Vec2
		switch {
		case q[0][0] > q[1][1]:
			v = vec.Vec2{X: -q[0][1], Y: q[0][0]}
		case q[1][1] != 0:
			v = vec.Vec2{X: -q[1][1], Y: q[1][0]}
		default:
			v = vec.Vec2{X: 1, Y: 0}
		}
		q.addLine(p, vec.Vec2{X: -v.Y, Y: v.X})
	}

	// the unconstrained minimum lies outside; search the boundary
	best := p
	bestVal := q.eval(p)
	try := func(w vec.Vec2) {
		if v := q.eval(w); v < bestVal {
			best, bestVal = w, v
		}
	}
	if q[0][0] != 0 {
		for z := range 2 {
			y := p.Y - MaxShift + float64(z)
			x := -(q[0][1]*y + q[0][2]) / q[0][0]
			if math.Abs(x-p.X) <= MaxShift {
				try(vec.Vec2{X: x, Y: y})
			}
		}
	}
	if q[1][1] != 0 {
		for z := range 2 {
			x := p.X - MaxShift + float64(z)
			y := -(q[1][0]*x + q[1][2]) / q[1][1]
			if math.Abs(y-p.Y) <= MaxShift {
				try(vec.Vec2{X: x, Y: y})
			}
		}
	}
	for l := range 2 {
		for k := range 2 {
			try(vec.Vec2{X: p.X - MaxShift + float64(l), Y: p.Y - MaxShift + float64(k)})
		}
	}
	return best
}
