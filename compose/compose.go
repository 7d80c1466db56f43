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

// Package compose assembles traced outlines into layered documents.
package compose

import (
	"cmp"
	"image/color"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorize/curve"
)

// Outline is a traced curve together with the outlines nested directly
// inside it. Holes are the children of outer outlines, and outer
// outlines inside a hole are the children of that hole.
type Outline struct {
	Curve    *curve.Curve
	Children []*Outline
}

// LayerInput holds the traced outlines of one colour.
type LayerInput struct {
	// Key orders layers of equal area; it is the colour as 0xRRGGBB.
	Key     uint32
	Color   color.RGBA
	Default bool
	Roots   []*Outline
}

// Shape is an outer curve together with its holes.
type Shape struct {
	Outer *curve.Curve
	Holes []*curve.Curve
}

// Area returns the area of the outer curve minus the area of the holes.
func (s *Shape) Area() float64 {
	a := s.Outer.Area()
	for _, h := range s.Holes {
		a -= h.Area()
	}
	return a
}

// Layer is the set of shapes filled with one colour.
type Layer struct {
	Key   uint32
	Color color.RGBA

	// Default is set for the single layer of a monochrome trace.
	Default bool

	Shapes []*Shape
}

// Area returns the total filled area of the layer.
func (l *Layer) Area() float64 {
	a := 0.0
	for _, s := range l.Shapes {
		a += s.Area()
	}
	return a
}

// Curves returns all curves of the layer, each outer curve followed by
// its holes.
func (l *Layer) Curves() []*curve.Curve {
	var res []*curve.Curve
	for _, s := range l.Shapes {
		res = append(res, s.Outer)
		res = append(res, s.Holes...)
	}
	return res
}

// Path returns the outlines of the layer as a path, to be filled with
// the nonzero winding rule.
func (l *Layer) Path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		for _, c := range l.Curves() {
			if len(c.Segments) == 0 {
				continue
			}
			buf[0] = c.Segments[0].Start
			if !yield(path.CmdMoveTo, buf[:1]) {
				return
			}
			for _, s := range c.Segments {
				var ok bool
				if s.Kind == curve.Cubic {
					buf[0], buf[1], buf[2] = s.C1, s.C2, s.End
					ok = yield(path.CmdCubeTo, buf[:3])
				} else {
					buf[0] = s.End
					ok = yield(path.CmdLineTo, buf[:1])
				}
				if !ok {
					return
				}
			}
			if !yield(path.CmdClose, nil) {
				return
			}
		}
	}
}

// IsEmpty reports whether the layer has no outlines to paint.
func (l *Layer) IsEmpty() bool {
	for _, c := range l.Curves() {
		if len(c.Segments) > 0 {
			return false
		}
	}
	return true
}

// Document is the complete result of tracing one image.
type Document struct {
	Width, Height int

	// Layers are ordered back to front.
	Layers []*Layer
}

// NumCurves returns the total number of curves in all layers.
func (d *Document) NumCurves() int {
	n := 0
	for _, l := range d.Layers {
		for _, s := range l.Shapes {
			n += 1 + len(s.Holes)
		}
	}
	return n
}

// Compose builds a document from per-colour outline trees.
//
// Layers are ordered by decreasing area, so that large background shapes
// are painted first; layers of equal area are ordered by key. Layers
// without any shapes are kept, so a monochrome trace always has exactly
// one layer.
func Compose(width, height int, inputs []LayerInput) *Document {
	doc := &Document{Width: width, Height: height}
	for _, in := range inputs {
		l := &Layer{Key: in.Key, Color: in.Color, Default: in.Default}
		for _, o := range in.Roots {
			l.addShapes(o)
		}
		doc.Layers = append(doc.Layers, l)
	}

	areas := make(map[*Layer]float64, len(doc.Layers))
	for _, l := range doc.Layers {
		areas[l] = l.Area()
	}
	slices.SortStableFunc(doc.Layers, func(a, b *Layer) int {
		if c := cmp.Compare(areas[b], areas[a]); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return doc
}

// addShapes adds the shape rooted at the outer outline o, and
// recursively the shapes nested inside its holes.
func (l *Layer) addShapes(o *Outline) {
	s := &Shape{Outer: o.Curve}
	l.Shapes = append(l.Shapes, s)
	for _, h := range o.Children {
		s.Holes = append(s.Holes, h.Curve)
		for _, inner := range h.Children {
			l.addShapes(inner)
		}
	}
}
