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

// patternCases are small literal bitmaps with exactly known contours.
var patternCases = []TestCase{
	{
		Name:   "square",
		Width:  6,
		Height: 6,
		Rows: []string{
			"......",
			".####.",
			".####.",
			".####.",
			".####.",
			"......",
		},
	},
	{
		Name:   "checkerboard",
		Width:  2,
		Height: 2,
		Rows: []string{
			"#.",
			".#",
		},
	},
	{
		Name:   "hollow_box",
		Width:  8,
		Height: 8,
		Rows: []string{
			"########",
			"########",
			"##....##",
			"##....##",
			"##....##",
			"##....##",
			"########",
			"########",
		},
	},
	{
		Name:   "island",
		Width:  11,
		Height: 11,
		Rows: []string{
			"...........",
			".#########.",
			".#.......#.",
			".#.......#.",
			".#..###..#.",
			".#..###..#.",
			".#..###..#.",
			".#.......#.",
			".#.......#.",
			".#########.",
			"...........",
		},
	},
	{
		Name:   "speckles",
		Width:  12,
		Height: 8,
		Rows: []string{
			"#...........",
			"......#.....",
			"..######....",
			"..######..#.",
			"..######....",
			"..######....",
			"...........#",
			".#..........",
		},
	},
	{
		Name:   "staircase",
		Width:  8,
		Height: 8,
		Rows: []string{
			"#.......",
			"##......",
			"###.....",
			"####....",
			"#####...",
			"######..",
			"#######.",
			"########",
		},
	},
	{
		Name:   "letter_l",
		Width:  7,
		Height: 9,
		Rows: []string{
			".......",
			".##....",
			".##....",
			".##....",
			".##....",
			".##....",
			".#####.",
			".#####.",
			".......",
		},
	},
}
