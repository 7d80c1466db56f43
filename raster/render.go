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
	"image"
	"image/color"
	"image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/vectorize/bitmap"
	"seehuhn.de/go/vectorize/compose"
)

// Mask returns the coverage of a single layer as an alpha mask of size
// w×h.  Document coordinates are multiplied by scale.
func Mask(l *compose.Layer, w, h int, scale float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r := NewRasterizer(rect.Rect{URx: float64(w), URy: float64(h)})
	r.CTM = matrix.Scale(scale, scale)
	r.Fill(l.Path(), NonZero, func(y, x0 int, cov []float32) {
		row := mask.Pix[y*mask.Stride:]
		for i, c := range cov {
			row[x0+i] = uint8(c*255 + 0.5)
		}
	})
	return mask
}

// RenderBitmap renders all layers of doc at scale 1 and returns the pixels
// which are at least half covered by some layer.
func RenderBitmap(doc *compose.Document) *bitmap.Bitmap {
	bm := bitmap.New(doc.Width, doc.Height)
	for _, l := range doc.Layers {
		mask := Mask(l, doc.Width, doc.Height, 1)
		for y := range doc.Height {
			row := mask.Pix[y*mask.Stride:]
			for x := range doc.Width {
				if row[x] >= 128 {
					bm.Set(x, y, true)
				}
			}
		}
	}
	return bm
}

// RenderImage paints the layers of doc back to front onto a white background.
// The result has size (scale·Width)×(scale·Height).
func RenderImage(doc *compose.Document, scale float64) *image.RGBA {
	w := int(float64(doc.Width)*scale + 0.5)
	h := int(float64(doc.Height)*scale + 0.5)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	for _, l := range doc.Layers {
		col := l.Color
		if l.Default {
			col = color.RGBA{A: 255}
		}
		mask := Mask(l, w, h, scale)
		draw.DrawMask(img, img.Bounds(), image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
	}
	return img
}
