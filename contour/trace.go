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

package contour

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"seehuhn.de/go/vectorize/bitmap"
)

// ErrTraceInvariant indicates an internal inconsistency while following
// a contour. It is never caused by the input and signals a bug.
var ErrTraceInvariant = errors.New("contour trace invariant violated")

// Options controls contour extraction.
type Options struct {
	Policy TurnPolicy

	// TurdSize suppresses speckles: contours enclosing at most this
	// many pixels are dropped.
	TurdSize int
}

// step is the action taken at a lattice point, given the two pixels
// ahead of the current direction.
type step uint8

const (
	goStraight step = iota
	turnOutside
	turnInside
	saddle
)

// stepTable is indexed by [inside pixel set][outside pixel set].
var stepTable = [2][2]step{
	{turnInside, saddle},
	{goStraight, turnOutside},
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Trace extracts all contours of bm.
//
// The result lists outer contours and holes together, sorted by
// decreasing area with ties in scan order (top to bottom, left to
// right). Nesting is recorded in the Parent and Children fields.
// bm is not modified.
func Trace(bm *bitmap.Bitmap, opt Options) ([]*Path, error) {
	if !opt.Policy.Valid() {
		return nil, fmt.Errorf("%w: turn policy %d", bitmap.ErrInvalidInput, int(opt.Policy))
	}
	if opt.TurdSize < 0 {
		return nil, fmt.Errorf("%w: negative turd size %d", bitmap.ErrInvalidInput, opt.TurdSize)
	}

	work := bm.Clone()
	maxSteps := 4*(bm.Width+1)*(bm.Height+1) + 4

	var paths []*Path
	x, y := 0, 0
	seq := 0
	for {
		var ok bool
		x, y, ok = work.NextSet(x, y)
		if !ok {
			break
		}

		sign := -1
		if bm.Get(x, y) {
			sign = +1
		}
		p, err := follow(work, image.Pt(x, y), sign, opt.Policy, maxSteps)
		if err != nil {
			return nil, err
		}
		invertInterior(work, p)

		if p.Area > opt.TurdSize {
			p.seq = seq
			seq++
			paths = append(paths, p)
		}
	}

	buildTree(paths)
	sortAndLink(paths)
	return paths, nil
}

// follow walks the boundary of the region containing the set pixel
// whose top-left corner is start. The pixels above and to the left of
// start must be unset in bm.
func follow(bm *bitmap.Bitmap, start image.Point, sign int, policy TurnPolicy, maxSteps int) (*Path, error) {
	p := &Path{Sign: sign}

	pos := start
	dir := image.Pt(0, 1)
	minPt, maxPt := start, start
	for {
		p.Points = append(p.Points, pos)
		if len(p.Points) > maxSteps {
			return nil, fmt.Errorf("%w: contour from %v does not close after %d steps",
				ErrTraceInvariant, start, maxSteps)
		}

		pos = pos.Add(dir)
		minPt.X, minPt.Y = min(minPt.X, pos.X), min(minPt.Y, pos.Y)
		maxPt.X, maxPt.Y = max(maxPt.X, pos.X), max(maxPt.Y, pos.Y)
		if pos == start {
			break
		}

		inDir := image.Pt(dir.Y, -dir.X)
		outDir := image.Pt(-dir.Y, dir.X)
		in := bm.Get(aheadPixel(pos, dir, inDir))
		out := bm.Get(aheadPixel(pos, dir, outDir))

		switch stepTable[b2i(in)][b2i(out)] {
		case turnOutside:
			dir = outDir
		case turnInside:
			dir = inDir
		case saddle:
			if resolveSaddle(bm, policy, sign, pos) {
				dir = outDir
			} else {
				dir = inDir
			}
		}
	}

	if len(p.Points) < 4 {
		return nil, fmt.Errorf("%w: degenerate contour with %d points at %v",
			ErrTraceInvariant, len(p.Points), start)
	}
	a := signedArea(p.Points)
	if a > 0 {
		return nil, fmt.Errorf("%w: contour at %v has wrong orientation", ErrTraceInvariant, start)
	}
	p.Area = -a / 2
	p.Bounds = image.Rectangle{Min: minPt, Max: maxPt}
	return p, nil
}

// aheadPixel returns the pixel diagonally adjacent to lattice point q in
// direction dir+side.
func aheadPixel(q, dir, side image.Point) (int, int) {
	// 2q+dir+side has odd coordinates, so halving after subtracting one
	// is exact and rounds towards minus infinity
	return (2*q.X + dir.X + side.X - 1) / 2, (2*q.Y + dir.Y + side.Y - 1) / 2
}

// invertInterior flips every pixel enclosed by p, by flipping the span
// between each vertical boundary edge and the left edge of the bounding
// box.
func invertInterior(bm *bitmap.Bitmap, p *Path) {
	n := len(p.Points)
	x0 := p.Bounds.Min.X
	for i, a := range p.Points {
		b := p.Points[(i+1)%n]
		if a.X != b.X {
			continue
		}
		bm.FlipRow(min(a.Y, b.Y), x0, a.X)
	}
}

// Flatten returns the contours of a tree, sorted as by Trace.
func Flatten(roots []*Path) []*Path {
	var res []*Path
	for _, r := range roots {
		r.Walk(func(p *Path) { res = append(res, p) })
	}
	slices.SortFunc(res, byArea)
	return res
}
