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

	"seehuhn.de/go/vectorize/polygon"
)

// Range of the corner threshold. At MaxAlpha no vertex is a corner.
const (
	MinAlpha = 0.0
	MaxAlpha = 4.0 / 3
)

// DefaultOptTolerance is the default deviation allowed when merging
// neighbouring cubic segments.
const DefaultOptTolerance = 0.2

// Options controls curve fitting.
type Options struct {
	// AlphaMax is the corner threshold: vertices with an alpha value of
	// at least AlphaMax become corners, all others are smoothed. Zero
	// keeps every vertex as a corner.
	AlphaMax float64

	// OptiCurve enables joining runs of cubic segments into single
	// segments where this changes the shape by at most OptTolerance.
	OptiCurve bool

	OptTolerance float64
}

// DefaultOptions returns the options used by Fit.
func DefaultOptions(alphaMax float64) Options {
	return Options{
		AlphaMax:     alphaMax,
		OptiCurve:    true,
		OptTolerance: DefaultOptTolerance,
	}
}

// Fit converts a polygon into a closed curve, using curve optimisation
// with the default tolerance.
func Fit(p *polygon.Polygon, alphaMax float64) *Curve {
	return FitWith(p, DefaultOptions(alphaMax))
}

// Classify reports, for each polygon vertex, whether it becomes a corner
// for the given alphaMax.
func Classify(p *polygon.Polygon, alphaMax float64) []bool {
	res := make([]bool, p.Len())
	for i := range res {
		res[i] = p.IsCorner(i, alphaMax)
	}
	return res
}

// FitWith converts a polygon into a closed curve.
func FitWith(p *polygon.Polygon, opt Options) *Curve {
	c := &Curve{Sign: p.Sign}
	m := p.Len()
	if m == 0 {
		return c
	}
	if m < 3 {
		for i, v := range p.Vertices {
			c.Segments = append(c.Segments, Segment{Kind: Line, Start: v, End: p.Vertices[(i+1)%m]})
		}
		return c
	}

	js := smooth(p, opt.AlphaMax)
	if opt.OptiCurve {
		js = optimize(js, opt.OptTolerance)
	}

	n := len(js)
	for i, j := range js {
		start := js[(i+n-1)%n].end
		if j.corner {
			c.Segments = append(c.Segments,
				Segment{Kind: Line, Start: start, End: j.vertex},
				Segment{Kind: Line, Start: j.vertex, End: j.end})
		} else {
			c.Segments = append(c.Segments,
				Segment{Kind: Cubic, Start: start, C1: j.c1, C2: j.c2, End: j.end})
		}
	}
	c.Segments = mergeLines(c.Segments)
	return c
}

// joint is one element of the intermediate curve: it runs from the end
// of the previous joint, past (corner) or towards (smooth) the polygon
// vertex, to the midpoint of the following polygon edge.
type joint struct {
	corner bool
	vertex vec.Vec2
	c1, c2 vec.Vec2
	end    vec.Vec2
	alpha  float64
}

// smooth decides for each vertex between a corner and a cubic segment.
func smooth(p *polygon.Polygon, alphaMax float64) []joint {
	v := p.Vertices
	m := len(v)
	js := make([]joint, m)
	for j := range m {
		i := (j + m - 1) % m
		k := (j + 1) % m
		alpha := p.Alpha[j]
		js[j].vertex = v[j]
		js[j].end = lerp(0.5, v[j], v[k])
		if p.IsCorner(j, alphaMax) {
			js[j].corner = true
		} else {
			alpha = min(max(alpha, 0.55), 1)
			js[j].c1 = lerp(0.5+0.5*alpha, v[i], v[j])
			js[j].c2 = lerp(0.5+0.5*alpha, v[k], v[j])
		}
		js[j].alpha = alpha
	}
	return js
}

// mergeLines joins consecutive collinear straight segments, including
// across the start of the curve.
func mergeLines(segs []Segment) []Segment {
	collinear := func(a, b Segment) bool {
		if a.Kind != Line || b.Kind != Line {
			return false
		}
		d1 := a.End.Sub(a.Start)
		d2 := b.End.Sub(b.Start)
		l := d1.Length() * d2.Length()
		return l > 0 && math.Abs(cross(d1, d2)) <= 1e-9*l && d1.Dot(d2) > 0
	}

	var res []Segment
	for _, s := range segs {
		if k := len(res); k > 0 && collinear(res[k-1], s) {
			res[k-1].End = s.End
			continue
		}
		res = append(res, s)
	}
	for len(res) > 1 && collinear(res[len(res)-1], res[0]) {
		last := res[len(res)-1]
		res[0].Start = last.Start
		res = res[:len(res)-1]
	}
	return res
}
