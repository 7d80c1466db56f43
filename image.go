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

package vectorize

import (
	"image"
)

// FromImage converts img into a PixelBuffer.  Transparent pixels are
// composited onto a white background.  Gray images give a Gray buffer,
// all other images an RGB buffer.
func FromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := &PixelBuffer{Width: w, Height: h}

	if g, ok := img.(*image.Gray); ok {
		pix.Gray = make([]uint8, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := g.PixOffset(b.Min.X, y)
			pix.Gray = append(pix.Gray, g.Pix[off:off+w]...)
		}
		return pix
	}

	pix.RGB = make([]uint8, 0, 3*w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			// colours are alpha-premultiplied
			bg := 0xffff - a
			pix.RGB = append(pix.RGB,
				uint8((r+bg)>>8), uint8((g+bg)>>8), uint8((bl+bg)>>8))
		}
	}
	return pix
}
