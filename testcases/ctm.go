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

package testcases

import (
	"seehuhn.de/go/geom/matrix"
)

// ctmCases place shapes using a transformation matrix, giving edges at
// angles which do not occur in the other categories.
var ctmCases = []TestCase{
	{
		Name:   "scale_10x",
		Path:   rectangle(0, 0, 4, 4).Path(),
		Width:  128,
		Height: 128,
		CTM:    matrix.Scale(10, 10).Translate(44, 44),
	},
	{
		Name:   "rotate_45deg",
		Path:   rectangle(-15, -15, 15, 15).Path(),
		Width:  64,
		Height: 64,
		CTM:    matrix.RotateDeg(45).Translate(32, 32),
	},
	{
		Name:   "rotate_5deg",
		Path:   rectangle(-20, -10, 20, 10).Path(),
		Width:  64,
		Height: 64,
		CTM:    matrix.RotateDeg(5).Translate(32, 32),
	},
	{
		Name:   "circle_to_ellipse",
		Path:   circle(0, 0, 15).Path(),
		Width:  128,
		Height: 64,
		CTM:    matrix.Scale(2, 1).Translate(64, 32),
	},
	{
		Name:   "shear_and_rotate",
		Path:   rectangle(-12, -12, 12, 12).Path(),
		Width:  64,
		Height: 64,
		CTM:    matrix.Matrix{1, 0, 0.3, 1, 0, 0}.RotateDeg(30).Translate(32, 32),
	},
}
