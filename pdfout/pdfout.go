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

// Package pdfout writes traced documents as single-page PDF files.
//
// One PDF unit corresponds to one pixel of the traced image.  Colour
// layers are painted in DeviceRGB, the layer of a monochrome trace in
// black.
package pdfout

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/vectorize/bitmap"
	"seehuhn.de/go/vectorize/compose"
)

// Write creates the PDF file fname containing the document.
func Write(fname string, doc *compose.Document) error {
	if doc.Width <= 0 || doc.Height <= 0 {
		return fmt.Errorf("%w: empty %dx%d document", bitmap.ErrInvalidInput, doc.Width, doc.Height)
	}
	paper := &pdf.Rectangle{
		URx: float64(doc.Width),
		URy: float64(doc.Height),
	}

	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left; traced coordinates use top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(doc.Height)})

	for _, l := range doc.Layers {
		if l.IsEmpty() {
			continue
		}
		page.SetFillColor(fillColor(l))
		for cmd, pts := range l.Path() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
		page.Fill()
	}

	return page.Close()
}

// fillColor returns the PDF colour used to paint a layer.
func fillColor(l *compose.Layer) color.Color {
	if l.Default {
		return color.DeviceGray(0)
	}
	return color.DeviceRGB{
		float64(l.Color.R) / 255,
		float64(l.Color.G) / 255,
		float64(l.Color.B) / 255,
	}
}
