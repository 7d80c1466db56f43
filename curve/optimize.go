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

package curve

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// cos179 is the cosine of 179 degrees; runs which bend back by more
// than this are never merged.
const cos179 = -0.999847695156

// merge describes a cubic replacing the joints i+1..j.
type merge struct {
	pen    float64
	c1, c2 vec.Vec2
	s      float64
	alpha  float64
}

// optimize replaces runs of smooth joints by single cubic segments. The
// run selection minimises the number of segments, then the total
// penalty.
func optimize(js []joint, tol float64) []joint {
	m := len(js)

	// convexity: +1 or -1 for smooth joints, 0 for corners
	conv := make([]int, m)
	for i := range m {
		if !js[i].corner {
			conv[i] = signf(parallelogram(js[mod(i-1, m)].vertex, js[i].vertex, js[mod(i+1, m)].vertex))
		}
	}

	// areac[i] is the area enclosed by joints 0..i-1 and the point 0
	areac := make([]float64, m+1)
	area := 0.0
	p0 := js[0].vertex
	for i := range m {
		i1 := mod(i+1, m)
		if !js[i1].corner {
			alpha := js[i1].alpha
			area += 0.3 * alpha * (4 - alpha) * parallelogram(js[i].end, js[i1].vertex, js[i1].end) / 2
			area += parallelogram(p0, js[i].end, js[i1].end) / 2
		}
		areac[i+1] = area
	}

	prev := make([]int, m+1)
	pen := make([]float64, m+1)
	count := make([]int, m+1)
	best := make([]merge, m+1)
	prev[0] = -1
	for j := 1; j <= m; j++ {
		prev[j] = j - 1
		pen[j] = pen[j-1]
		count[j] = count[j-1] + 1
		for i := j - 2; i >= 0; i-- {
			o, ok := mergePenalty(js, i, mod(j, m), tol, conv, areac)
			if !ok {
				break
			}
			if count[j] > count[i]+1 || (count[j] == count[i]+1 && pen[j] > pen[i]+o.pen) {
				prev[j] = i
				pen[j] = pen[i] + o.pen
				count[j] = count[i] + 1
				best[j] = o
			}
		}
	}

	res := make([]joint, count[m])
	j := m
	for i := count[m] - 1; i >= 0; i-- {
		old := js[mod(j, m)]
		if prev[j] == j-1 {
			res[i] = old
		} else {
			o := best[j]
			res[i] = joint{
				c1:     o.c1,
				c2:     o.c2,
				end:    old.end,
				vertex: lerp(o.s, old.end, old.vertex),
				alpha:  o.alpha,
			}
		}
		j = prev[j]
	}
	return res
}

// mergePenalty tries to replace the joints i+1..j by one cubic from the
// end of joint i to the end of joint j. It fails if the run is not
// convex, contains a corner, bends too far, or the cubic strays from the
// polygon by more than tol.
func mergePenalty(js []joint, i, j int, tol float64, conv []int, areac []float64) (merge, bool) {
	m := len(js)
	var res merge
	if i == j {
		return res, false
	}

	i1 := mod(i+1, m)
	c := conv[i1]
	if c == 0 {
		return res, false
	}
	vi, vi1 := js[i].vertex, js[i1].vertex
	d := dist(vi, vi1)
	for k := i1; k != j; {
		k1 := mod(k+1, m)
		k2 := mod(k+2, m)
		if conv[k1] != c {
			return res, false
		}
		vk1, vk2 := js[k1].vertex, js[k2].vertex
		if signf(crossDiff(vi, vi1, vk1, vk2)) != c {
			return res, false
		}
		if dotDiff(vi, vi1, vk1, vk2) < d*dist(vk1, vk2)*cos179 {
			return res, false
		}
		k = k1
	}

	p0 := js[i].end
	p1 := js[i1].vertex
	p2 := js[j].vertex
	p3 := js[j].end

	area := areac[j] - areac[i]
	area -= parallelogram(js[0].vertex, js[i].end, js[j].end) / 2
	if i >= j {
		area += areac[m]
	}

	// o is the intersection of p0p1 and p3p2: o = p0+t(p1-p0) = p3+s(p2-p3)
	a1 := parallelogram(p0, p1, p2)
	a2 := parallelogram(p0, p1, p3)
	a3 := parallelogram(p0, p2, p3)
	a4 := a1 + a3 - a2
	if a2 == a1 {
		return res, false
	}
	t := a3 / (a3 - a4)
	s := a2 / (a2 - a1)
	triangle := a2 * t / 2
	if triangle == 0 {
		return res, false
	}
	r := area / triangle
	if 4-r/0.3 < 0 {
		return res, false
	}
	alpha := 2 - math.Sqrt(4-r/0.3)

	res.c1 = lerp(t*alpha, p0, p1)
	res.c2 = lerp(s*alpha, p3, p2)
	res.alpha = alpha
	res.s = s
	p1, p2 = res.c1, res.c2

	// the cubic must be tangent to each polygon edge it replaces
	for k := i1; k != j; {
		k1 := mod(k+1, m)
		vk, vk1 := js[k].vertex, js[k1].vertex
		tt := tangent(p0, p1, p2, p3, vk, vk1)
		if tt < -0.5 {
			return res, false
		}
		pt := bezier(tt, p0, p1, p2, p3)
		dd := dist(vk, vk1)
		if dd == 0 {
			return res, false
		}
		d1 := parallelogram(vk, vk1, pt) / dd
		if math.Abs(d1) > tol {
			return res, false
		}
		if dotFrom(vk, vk1, pt) < 0 || dotFrom(vk1, vk, pt) < 0 {
			return res, false
		}
		res.pen += d1 * d1
		k = k1
	}

	// and must not cut the original corners by more than tol
	for k := i; k != j; {
		k1 := mod(k+1, m)
		ek, ek1 := js[k].end, js[k1].end
		tt := tangent(p0, p1, p2, p3, ek, ek1)
		if tt < -0.5 {
			return res, false
		}
		pt := bezier(tt, p0, p1, p2, p3)
		dd := dist(ek, ek1)
		if dd == 0 {
			return res, false
		}
		d1 := parallelogram(ek, ek1, pt) / dd
		d2 := parallelogram(ek, ek1, js[k1].vertex) / dd
		d2 *= 0.75 * js[k1].alpha
		if d2 < 0 {
			d1, d2 = -d1, -d2
		}
		if d1 < d2-tol {
			return res, false
		}
		if d1 < d2 {
			res.pen += (d1 - d2) * (d1 - d2)
		}
		k = k1
	}

	return res, true
}

// tangent returns the parameter t in [0, 1] at which the cubic
// (p0, p1, p2, p3) is parallel to q1-q0, or -1 if there is none.
func tangent(p0, p1, p2, p3, q0, q1 vec.Vec2) float64 {
	a0 := crossDiff(p0, p1, q0, q1)
	b0 := crossDiff(p1, p2, q0, q1)
	c0 := crossDiff(p2, p3, q0, q1)

	a := a0 - 2*b0 + c0
	b := -2*a0 + 2*b0
	c := a0

	disc := b*b - 4*a*c
	if a == 0 || disc < 0 {
		return -1
	}
	sq := math.Sqrt(disc)
	r1 := (-b + sq) / (2 * a)
	r2 := (-b - sq) / (2 * a)
	switch {
	case r1 >= 0 && r1 <= 1:
		return r1
	case r2 >= 0 && r2 <= 1:
		return r2
	}
	return -1
}

// parallelogram returns (b-a)×(c-a).
func parallelogram(a, b, c vec.Vec2) float64 {
	return cross(b.Sub(a), c.Sub(a))
}

// crossDiff returns (p1-p0)×(p3-p2).
func crossDiff(p0, p1, p2, p3 vec.Vec2) float64 {
	return cross(p1.Sub(p0), p3.Sub(p2))
}

// dotDiff returns (p1-p0)·(p3-p2).
func dotDiff(p0, p1, p2, p3 vec.Vec2) float64 {
	return p1.Sub(p0).Dot(p3.Sub(p2))
}

// dotFrom returns (p1-p0)·(p2-p0).
func dotFrom(p0, p1, p2 vec.Vec2) float64 {
	return p1.Sub(p0).Dot(p2.Sub(p0))
}

func dist(a, b vec.Vec2) float64 {
	return b.Sub(a).Length()
}

func signf(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
