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
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorize/bitmap"
	"seehuhn.de/go/vectorize/compose"
	"seehuhn.de/go/vectorize/curve"
)

// polyCurve returns a closed curve made of straight segments.
func polyCurve(sign int, pts ...vec.Vec2) *curve.Curve {
	c := &curve.Curve{Sign: sign}
	for i, p := range pts {
		c.Segments = append(c.Segments, curve.Segment{
			Kind:  curve.Line,
			Start: p,
			End:   pts[(i+1)%len(pts)],
		})
	}
	return c
}

func box(sign int, x0, y0, x1, y1 float64) *curve.Curve {
	a := vec.Vec2{X: x0, Y: y0}
	b := vec.Vec2{X: x0, Y: y1}
	c := vec.Vec2{X: x1, Y: y1}
	d := vec.Vec2{X: x1, Y: y0}
	if sign < 0 {
		return polyCurve(sign, a, d, c, b)
	}
	return polyCurve(sign, a, b, c, d)
}

func frameDocument() *compose.Document {
	outer := &compose.Outline{Curve: box(1, 1, 1, 7, 7)}
	hole := &compose.Outline{Curve: box(-1, 3, 3, 5, 5)}
	outer.Children = []*compose.Outline{hole}
	return compose.Compose(8, 8, []compose.LayerInput{
		{Default: true, Roots: []*compose.Outline{outer}},
	})
}

func TestRenderBitmap(t *testing.T) {
	got := RenderBitmap(frameDocument())
	want := bitmap.Parse(
		"........",
		".######.",
		".######.",
		".##..##.",
		".##..##.",
		".######.",
		".######.",
		"........",
	)
	if d := cmp.Diff(want.String(), got.String()); d != "" {
		t.Errorf("unexpected bitmap (-want +got):\n%s", d)
	}
}

func TestRenderImage(t *testing.T) {
	doc := frameDocument()
	img := RenderImage(doc, 2)
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("wrong size %v", b)
	}

	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	probes := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, white},
		{3, 3, black},
		{8, 8, white}, // inside the hole
		{12, 4, black},
		{15, 15, white},
	}
	for _, p := range probes {
		if got := img.RGBAAt(p.x, p.y); got != p.want {
			t.Errorf("pixel (%d,%d): got %v, want %v", p.x, p.y, got, p.want)
		}
	}
}

func TestRenderImageColour(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	doc := compose.Compose(4, 4, []compose.LayerInput{
		{
			Key:   0xff0000,
			Color: red,
			Roots: []*compose.Outline{{Curve: box(1, 0, 0, 2, 4)}},
		},
	})
	img := RenderImage(doc, 1)
	if got := img.RGBAAt(1, 1); got != red {
		t.Errorf("inside: got %v, want %v", got, red)
	}
	if got := img.RGBAAt(3, 1); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("outside: got %v, want white", got)
	}
}
