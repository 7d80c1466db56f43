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

package bitmap

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func gray(w, h int, values ...uint8) *Pixels {
	return &Pixels{Width: w, Height: h, Gray: values}
}

func TestCheck(t *testing.T) {
	bad := []*Pixels{
		nil,
		{Width: 0, Height: 1, Gray: []uint8{}},
		{Width: 2, Height: 2, Gray: []uint8{1, 2, 3}},
		{Width: 1, Height: 1, RGB: []uint8{1, 2}},
		{Width: 1, Height: 1},
		{Width: 1, Height: 1, Gray: []uint8{0}, RGB: []uint8{0, 0, 0}},
	}
	for i, p := range bad {
		if err := p.Check(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%d: expected ErrInvalidInput, got %v", i, err)
		}
		if _, err := Binarize(p, Options{Threshold: 128}); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%d: Binarize accepted invalid input", i)
		}
	}
	if err := gray(2, 1, 0, 255).Check(); err != nil {
		t.Errorf("valid buffer rejected: %v", err)
	}
}

func TestThresholdBoundary(t *testing.T) {
	// a uniform image exactly at the threshold is background
	pix := gray(3, 2, 128, 128, 128, 128, 128, 128)
	planes, err := Binarize(pix, Options{Threshold: 128})
	if err != nil {
		t.Fatal(err)
	}
	if len(planes) != 1 || !planes[0].Default {
		t.Fatalf("expected one default plane, got %d", len(planes))
	}
	if !planes[0].Bitmap.Empty() {
		t.Error("pixels at the threshold were set")
	}

	planes, err = Binarize(pix, Options{Threshold: 129})
	if err != nil {
		t.Fatal(err)
	}
	if planes[0].Bitmap.Count() != 6 {
		t.Error("pixels below the threshold were not set")
	}
}

func TestInvert(t *testing.T) {
	pix := gray(4, 1, 0, 100, 200, 255)
	normal, err := Binarize(pix, Options{Threshold: 150})
	if err != nil {
		t.Fatal(err)
	}
	inverted, err := Binarize(pix, Options{Threshold: 150, Invert: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := normal[0].Bitmap.String(); got != "##..\n" {
		t.Errorf("normal: got %q", got)
	}
	if got := inverted[0].Bitmap.String(); got != "..##\n" {
		t.Errorf("inverted: got %q", got)
	}
}

func TestLuminance(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    int
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{255, 0, 0, 76},
		{0, 255, 0, 150},
		{0, 0, 255, 29},
		{128, 128, 128, 128},
	}
	for _, c := range cases {
		if got := Luminance(c.r, c.g, c.b); got != c.want {
			t.Errorf("Luminance(%d,%d,%d) = %d, want %d", c.r, c.g, c.b, got, c.want)
		}
	}
}

func rgb(w, h int, cols ...color.RGBA) *Pixels {
	p := &Pixels{Width: w, Height: h}
	for _, c := range cols {
		p.RGB = append(p.RGB, c.R, c.G, c.B)
	}
	return p
}

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestColorPlanes(t *testing.T) {
	pix := rgb(3, 2,
		red, white, blue,
		red, red, white,
	)
	planes, err := Binarize(pix, Options{Threshold: 128, ColorMode: true, Levels: 4})
	if err != nil {
		t.Fatal(err)
	}

	type summary struct {
		Hex    string
		Pixels string
	}
	var got []summary
	for _, p := range planes {
		if p.Default {
			t.Error("colour plane marked as default")
		}
		got = append(got, summary{p.Hex(), p.Bitmap.String()})
	}
	// planes are sorted by key; white is background
	want := []summary{
		{"#2020df", "..#\n...\n"},
		{"#df2020", "#..\n##.\n"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected planes (-want +got):\n%s", d)
	}
}

func TestPalette(t *testing.T) {
	orange := color.RGBA{R: 250, G: 120, B: 10, A: 255}
	navy := color.RGBA{R: 10, G: 10, B: 90, A: 255}
	pix := rgb(2, 2,
		color.RGBA{R: 240, G: 100, B: 0}, color.RGBA{R: 0, G: 0, B: 120},
		white, color.RGBA{R: 255, G: 140, B: 30},
	)
	planes, err := Binarize(pix, Options{
		Threshold: 200,
		ColorMode: true,
		Palette:   []color.RGBA{orange, navy, white},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(planes) != 2 {
		t.Fatalf("expected 2 planes, got %d", len(planes))
	}
	if planes[0].Color != navy || planes[0].Bitmap.String() != ".#\n..\n" {
		t.Errorf("unexpected first plane %v:\n%s", planes[0].Color, planes[0].Bitmap)
	}
	if planes[1].Color != orange || planes[1].Bitmap.String() != "#.\n.#\n" {
		t.Errorf("unexpected second plane %v:\n%s", planes[1].Color, planes[1].Bitmap)
	}
}

func TestBadOptions(t *testing.T) {
	pix := gray(1, 1, 0)
	for _, opt := range []Options{
		{Threshold: -1},
		{Threshold: 256},
		{Threshold: 128, ColorMode: true, Levels: 1},
		{Threshold: 128, ColorMode: true, Levels: 17},
	} {
		if _, err := Binarize(pix, opt); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", opt, err)
		}
	}
}
