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
	"fmt"
	"image"

	"seehuhn.de/go/vectorize/bitmap"
)

// TurnPolicy decides how a contour continues at a saddle, i.e. at a
// lattice point where two diagonally opposite pixels are set and the
// other two are unset.
type TurnPolicy int

// The supported turn policies.
const (
	// TurnBlack connects set pixels across saddles.
	TurnBlack TurnPolicy = iota
	// TurnWhite connects unset pixels across saddles.
	TurnWhite
	// TurnLeft always turns left (towards the interior of the contour).
	TurnLeft
	// TurnRight always turns right (towards the exterior of the contour).
	TurnRight
	// TurnMinority connects the colour which is less frequent nearby.
	TurnMinority
	// TurnMajority connects the colour which is more frequent nearby.
	TurnMajority

	numPolicies
)

var policyNames = [numPolicies]string{
	TurnBlack:    "black",
	TurnWhite:    "white",
	TurnLeft:     "left",
	TurnRight:    "right",
	TurnMinority: "minority",
	TurnMajority: "majority",
}

func (p TurnPolicy) String() string {
	if p < 0 || p >= numPolicies {
		return fmt.Sprintf("TurnPolicy(%d)", int(p))
	}
	return policyNames[p]
}

// Valid reports whether p is one of the defined policies.
func (p TurnPolicy) Valid() bool {
	return p >= 0 && p < numPolicies
}

// ParseTurnPolicy converts a policy name, as returned by String, back to
// a TurnPolicy.
func ParseTurnPolicy(s string) (TurnPolicy, error) {
	for p, name := range policyNames {
		if name == s {
			return TurnPolicy(p), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown turn policy %q", bitmap.ErrInvalidInput, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p TurnPolicy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: turn policy %d", bitmap.ErrInvalidInput, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *TurnPolicy) UnmarshalText(text []byte) error {
	q, err := ParseTurnPolicy(string(text))
	if err != nil {
		return err
	}
	*p = q
	return nil
}

// locality summarises which colour dominates around a lattice point.
type locality uint8

const (
	localTie locality = iota
	localSet
	localUnset
)

// joinSaddle is indexed by policy, contour sign (0 for outer, 1 for
// hole) and locality. True means the contour turns towards its exterior,
// so that the diagonal pixel ahead becomes part of the same region.
//
// Outer contours enclose set pixels, holes enclose unset pixels. Ties
// in the window count fall back to "black" for majority and to "white"
// for minority.
var joinSaddle = [numPolicies][2][3]bool{
	TurnBlack: {
		{true, true, true},
		{false, false, false},
	},
	TurnWhite: {
		{false, false, false},
		{true, true, true},
	},
	TurnLeft: {
		{false, false, false},
		{false, false, false},
	},
	TurnRight: {
		{true, true, true},
		{true, true, true},
	},
	TurnMinority: {
		{false, false, true},
		{true, false, true},
	},
	TurnMajority: {
		{true, true, false},
		{false, true, false},
	},
}

// usesWindow marks the policies which look beyond the 2x2 cell.
var usesWindow = [numPolicies]bool{
	TurnMinority: true,
	TurnMajority: true,
}

// Window radii inspected by the minority and majority policies.
const (
	minWindow = 2
	maxWindow = 4
)

// localMajority counts set and unset pixels on square rings of growing
// radius around the lattice point q and reports the first non-tied
// result.
func localMajority(bm *bitmap.Bitmap, q image.Point) locality {
	for r := minWindow; r <= maxWindow; r++ {
		ct := 0
		count := func(x, y int) {
			if bm.Get(x, y) {
				ct++
			} else {
				ct--
			}
		}
		// the ring consists of the pixels x in [q.X-r, q.X+r) and
		// y in [q.Y-r, q.Y+r) which touch the border of that square
		for i := -r; i < r-1; i++ {
			count(q.X+i, q.Y-r)     // top, left to right
			count(q.X+r-1, q.Y+i)   // right, top to bottom
			count(q.X-i-1, q.Y+r-1) // bottom, right to left
			count(q.X-r, q.Y-i-1)   // left, bottom to top
		}
		switch {
		case ct > 0:
			return localSet
		case ct < 0:
			return localUnset
		}
	}
	return localTie
}

// resolveSaddle returns true if the contour should turn towards its
// exterior at the saddle point q.
func resolveSaddle(bm *bitmap.Bitmap, policy TurnPolicy, sign int, q image.Point) bool {
	s := 0
	if sign < 0 {
		s = 1
	}
	loc := localTie
	if usesWindow[policy] {
		loc = localMajority(bm, q)
	}
	return joinSaddle[policy][s][loc]
}
