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

// Package bitmap holds the binary images traced by the contour tracer,
// together with the thresholding and colour separation which derive them
// from pixel data.
package bitmap

import (
	"math/bits"
	"strings"
)

// wordBits is the number of pixels packed into one word of a row.
const wordBits = 64

// Bitmap is a binary image. Pixel (x, y) covers the unit square with
// top-left corner (x, y); y grows downwards.
//
// Reads outside the image return false; writes outside the image are
// ignored.
type Bitmap struct {
	Width, Height int

	stride int // words per row
	words  []uint64
}

// New allocates an all-unset bitmap.
func New(width, height int) *Bitmap {
	stride := (width + wordBits - 1) / wordBits
	return &Bitmap{
		Width:  width,
		Height: height,
		stride: stride,
		words:  make([]uint64, stride*height),
	}
}

// Get reports whether pixel (x, y) is set.
func (b *Bitmap) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	w := b.words[y*b.stride+x/wordBits]
	return w&(1<<(x%wordBits)) != 0
}

// Set changes the state of pixel (x, y).
func (b *Bitmap) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	idx := y*b.stride + x/wordBits
	mask := uint64(1) << (x % wordBits)
	if on {
		b.words[idx] |= mask
	} else {
		b.words[idx] &^= mask
	}
}

// FlipRow inverts the pixels x0 <= x < x1 of row y.
func (b *Bitmap) FlipRow(y, x0, x1 int) {
	if y < 0 || y >= b.Height {
		return
	}
	x0 = max(x0, 0)
	x1 = min(x1, b.Width)
	row := b.words[y*b.stride : (y+1)*b.stride]
	for x0 < x1 {
		i := x0 / wordBits
		lo := x0 % wordBits
		hi := min(x1-i*wordBits, wordBits)
		var mask uint64
		if hi-lo == wordBits {
			mask = ^uint64(0)
		} else {
			mask = ((uint64(1) << (hi - lo)) - 1) << lo
		}
		row[i] ^= mask
		x0 = i*wordBits + hi
	}
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether no pixel is set.
func (b *Bitmap) Empty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// NextSet returns the first set pixel at or after (x, y) in row-major
// order.
func (b *Bitmap) NextSet(x, y int) (int, int, bool) {
	if y < 0 {
		x, y = 0, 0
	}
	x = max(x, 0)
	for ; y < b.Height; y++ {
		row := b.words[y*b.stride : (y+1)*b.stride]
		for i := x / wordBits; i < b.stride; i++ {
			w := row[i]
			if i == x/wordBits {
				w &^= (uint64(1) << (x % wordBits)) - 1
			}
			if w != 0 {
				return i*wordBits + bits.TrailingZeros64(w), y, true
			}
		}
		x = 0
	}
	return 0, 0, false
}

// Clone returns an independent copy of b.
func (b *Bitmap) Clone() *Bitmap {
	c := *b
	c.words = append([]uint64(nil), b.words...)
	return &c
}

// Equal reports whether both bitmaps have the same size and pixels.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if b.Width != other.Width || b.Height != other.Height {
		return false
	}
	for i, w := range b.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

// Parse builds a bitmap from rows of text. The characters '#', 'X' and
// '1' denote set pixels; everything else is unset. Short rows are padded.
func Parse(rows ...string) *Bitmap {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	b := New(width, len(rows))
	for y, r := range rows {
		for x, c := range r {
			b.Set(x, y, c == '#' || c == 'X' || c == '1')
		}
	}
	return b
}

// String draws the bitmap using '#' for set and '.' for unset pixels.
func (b *Bitmap) String() string {
	var sb strings.Builder
	for y := range b.Height {
		for x := range b.Width {
			if b.Get(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
