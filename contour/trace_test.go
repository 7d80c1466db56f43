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

package contour_test

import (
	"errors"
	"image"
	"maps"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/vectorize/bitmap"
	"seehuhn.de/go/vectorize/contour"
	"seehuhn.de/go/vectorize/testcases"
)

func trace(t *testing.T, bm *bitmap.Bitmap, policy contour.TurnPolicy, turdSize int) []*contour.Path {
	t.Helper()
	paths, err := contour.Trace(bm, contour.Options{Policy: policy, TurdSize: turdSize})
	if err != nil {
		t.Fatal(err)
	}
	return paths
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
	paths := trace(t, bm, contour.TurnBlack, 2)
	if len(paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(paths))
	}
	p := paths[0]
	if p.Sign != 1 || p.Area != 16 || p.Len() != 16 {
		t.Errorf("got sign %d, area %d, length %d", p.Sign, p.Area, p.Len())
	}
	if want := image.Rect(1, 1, 5, 5); p.Bounds != want {
		t.Errorf("bounds: got %v, want %v", p.Bounds, want)
	}
	wantCorners := []image.Point{{1, 1}, {1, 5}, {5, 5}, {5, 1}}
	if d := cmp.Diff(wantCorners, p.Corners()); d != "" {
		t.Errorf("unexpected corners (-want +got):\n%s", d)
	}
}

func TestCheckerboard(t *testing.T) {
	bm := bitmap.Parse(
		"#.",
		".#",
	)

	joined := []image.Point{{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 2}, {2, 1}, {1, 1}, {1, 0}}
	for _, policy := range []contour.TurnPolicy{contour.TurnBlack, contour.TurnRight, contour.TurnMinority} {
		paths := trace(t, bm, policy, 0)
		if len(paths) != 1 {
			t.Errorf("%s: expected one path, got %d", policy, len(paths))
			continue
		}
		if d := cmp.Diff(joined, paths[0].Points); d != "" {
			t.Errorf("%s: unexpected path (-want +got):\n%s", policy, d)
		}
		if paths[0].Area != 2 {
			t.Errorf("%s: area %d, want 2", policy, paths[0].Area)
		}
	}

	for _, policy := range []contour.TurnPolicy{contour.TurnWhite, contour.TurnLeft, contour.TurnMajority} {
		paths := trace(t, bm, policy, 0)
		if len(paths) != 2 {
			t.Errorf("%s: expected two paths, got %d", policy, len(paths))
			continue
		}
		for i, p := range paths {
			if p.Area != 1 || p.Len() != 4 || p.Sign != 1 || p.Parent != nil {
				t.Errorf("%s: path %d has area %d, length %d", policy, i, p.Area, p.Len())
			}
		}
		if paths[0].Points[0] != (image.Point{0, 0}) || paths[1].Points[0] != (image.Point{1, 1}) {
			t.Errorf("%s: paths not in scan order", policy)
		}
	}
}

func TestNesting(t *testing.T) {
	bm := bitmap.Parse(testcases.All["pattern"][3].Rows...) // island
	paths := trace(t, bm, contour.TurnBlack, 0)

	type info struct {
		Sign, Area, Depth int
	}
	var got []info
	for _, p := range paths {
		got = append(got, info{p.Sign, p.Area, p.Depth()})
	}
	want := []info{{1, 81, 0}, {-1, 49, 1}, {1, 9, 2}}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", d)
	}

	roots := contour.Roots(paths)
	if len(roots) != 1 || roots[0] != paths[0] {
		t.Fatal("wrong roots")
	}
	if len(paths[0].Children) != 1 || paths[0].Children[0] != paths[1] {
		t.Error("hole is not a child of the outline")
	}
	if len(paths[1].Children) != 1 || paths[1].Children[0] != paths[2] {
		t.Error("island is not a child of the hole")
	}
	flat := contour.Flatten(roots)
	if !slices.Equal(paths, flat) {
		t.Error("Flatten does not restore the traced order")
	}
}

func TestTurdSize(t *testing.T) {
	var rows []string
	for _, tc := range testcases.All["pattern"] {
		if tc.Name == "speckles" {
			rows = tc.Rows
		}
	}
	bm := bitmap.Parse(rows...)

	all := trace(t, bm, contour.TurnBlack, 0)
	if len(all) != 5 {
		t.Errorf("expected 5 paths without suppression, got %d", len(all))
	}
	kept := trace(t, bm, contour.TurnBlack, 2)
	if len(kept) != 1 || kept[0].Area != 25 {
		t.Errorf("expected only the block to survive, got %d paths", len(kept))
	}
	none := trace(t, bm, contour.TurnBlack, 25)
	if len(none) != 0 {
		t.Errorf("expected no paths, got %d", len(none))
	}
}

func TestEmpty(t *testing.T) {
	paths := trace(t, bitmap.New(10, 10), contour.TurnBlack, 0)
	if len(paths) != 0 {
		t.Errorf("empty bitmap gave %d paths", len(paths))
	}
}

func TestFullImage(t *testing.T) {
	bm := bitmap.New(7, 3)
	for y := range 3 {
		bm.FlipRow(y, 0, 7)
	}
	paths := trace(t, bm, contour.TurnBlack, 0)
	if len(paths) != 1 || paths[0].Area != 21 || paths[0].Bounds != image.Rect(0, 0, 7, 3) {
		t.Errorf("unexpected result for a full bitmap")
	}
}

func TestInvalidOptions(t *testing.T) {
	bm := bitmap.Parse("#")
	for _, opt := range []contour.Options{
		{Policy: contour.TurnPolicy(17)},
		{Policy: contour.TurnPolicy(-1)},
		{TurdSize: -1},
	} {
		if _, err := contour.Trace(bm, opt); !errors.Is(err, bitmap.ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", opt, err)
		}
	}
}

var policies = []contour.TurnPolicy{
	contour.TurnBlack, contour.TurnWhite, contour.TurnLeft,
	contour.TurnRight, contour.TurnMinority, contour.TurnMajority,
}

// TestInvariants checks structural properties of the traced contours for
// all test images and turn policies.
func TestInvariants(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			bm := tc.Bitmap()
			orig := bm.Clone()
			for _, policy := range policies {
				t.Run(category+"_"+tc.Name+"_"+policy.String(), func(t *testing.T) {
					paths := trace(t, bm, policy, 0)
					if !bm.Equal(orig) {
						t.Fatal("input bitmap was modified")
					}

					total := 0
					for i, p := range paths {
						checkClosed(t, p)
						total += p.Sign * p.Area
						if p.Parent != nil && p.Parent.Sign != -p.Sign {
							t.Errorf("path %d: parent has the same sign", i)
						}
						if (p.Depth()%2 == 0) != (p.Sign > 0) {
							t.Errorf("path %d: sign %d at depth %d", i, p.Sign, p.Depth())
						}
						if i > 0 && paths[i-1].Area < p.Area {
							t.Errorf("path %d: not sorted by area", i)
						}
					}
					if total != bm.Count() {
						t.Errorf("signed areas add up to %d, want %d", total, bm.Count())
					}
				})
			}
		}
	}
}

func checkClosed(t *testing.T, p *contour.Path) {
	t.Helper()
	n := p.Len()
	for i, a := range p.Points {
		b := p.Points[(i+1)%n]
		d := b.Sub(a)
		if d.X*d.X+d.Y*d.Y != 1 {
			t.Errorf("step %v -> %v is not a unit step", a, b)
			return
		}
	}
}

func TestDeterministic(t *testing.T) {
	tc := testcases.All["curve"][0]
	bm := tc.Bitmap()
	for _, policy := range policies {
		a := trace(t, bm, policy, 2)
		b := trace(t, bm, policy, 2)
		if len(a) != len(b) {
			t.Fatalf("%s: path counts differ", policy)
		}
		for i := range a {
			if d := cmp.Diff(a[i].Points, b[i].Points); d != "" {
				t.Errorf("%s: path %d differs:\n%s", policy, i, d)
			}
		}
	}
}
