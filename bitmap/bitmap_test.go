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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseString(t *testing.T) {
	rows := []string{
		"#..#",
		".##.",
		"....",
	}
	bm := Parse(rows...)
	if bm.Width != 4 || bm.Height != 3 {
		t.Fatalf("wrong size %dx%d", bm.Width, bm.Height)
	}
	want := "#..#\n.##.\n....\n"
	if d := cmp.Diff(want, bm.String()); d != "" {
		t.Errorf("unexpected string (-want +got):\n%s", d)
	}
	if bm.Count() != 4 {
		t.Errorf("Count: got %d, want 4", bm.Count())
	}
}

func TestOutOfRange(t *testing.T) {
	bm := New(3, 3)
	bm.Set(-1, 0, true)
	bm.Set(3, 0, true)
	bm.Set(0, 3, true)
	if !bm.Empty() {
		t.Error("writes outside the bitmap changed it")
	}
	bm.Set(1, 1, true)
	for _, p := range [][2]int{{-1, 1}, {1, -1}, {3, 1}, {1, 3}} {
		if bm.Get(p[0], p[1]) {
			t.Errorf("pixel %v outside the bitmap is set", p)
		}
	}
}

// TestWideRows exercises rows spanning several words.
func TestWideRows(t *testing.T) {
	bm := New(150, 2)
	bm.FlipRow(1, 10, 140)
	if got := bm.Count(); got != 130 {
		t.Fatalf("Count after FlipRow: got %d, want 130", got)
	}
	for _, x := range []int{9, 140} {
		if bm.Get(x, 1) {
			t.Errorf("pixel %d should be unset", x)
		}
	}
	for _, x := range []int{10, 63, 64, 127, 128, 139} {
		if !bm.Get(x, 1) {
			t.Errorf("pixel %d should be set", x)
		}
	}

	bm.FlipRow(1, 0, 150)
	if got := bm.Count(); got != 20 {
		t.Errorf("Count after second FlipRow: got %d, want 20", got)
	}
	bm.FlipRow(1, -5, 200)
	if got := bm.Count(); got != 130 {
		t.Errorf("Count after clipped FlipRow: got %d, want 130", got)
	}
}

func TestNextSet(t *testing.T) {
	bm := New(100, 4)
	bm.Set(70, 0, true)
	bm.Set(3, 2, true)
	bm.Set(99, 3, true)

	type pos struct{ X, Y int }
	var got []pos
	x, y := 0, 0
	for {
		var ok bool
		x, y, ok = bm.NextSet(x, y)
		if !ok {
			break
		}
		got = append(got, pos{x, y})
		x++
	}
	want := []pos{{70, 0}, {3, 2}, {99, 3}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected scan order (-want +got):\n%s", d)
	}
}

func TestCloneEqual(t *testing.T) {
	a := Parse("##.", ".#.")
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone differs from original")
	}
	b.Set(2, 1, true)
	if a.Equal(b) || a.Get(2, 1) {
		t.Error("clone shares storage with the original")
	}
	if a.Equal(New(3, 3)) {
		t.Error("bitmaps of different size compare equal")
	}
}
