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

// Package svg writes traced documents as SVG.
package svg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorize/compose"
	"seehuhn.de/go/vectorize/curve"
)

// Emit returns the SVG text of a document.
func Emit(doc *compose.Document) string {
	var sb strings.Builder
	_ = Write(&sb, doc)
	return sb.String()
}

// Write writes a document as a standalone SVG file. Every layer becomes
// one path element; holes wind opposite to their outlines, so the
// default nonzero fill rule leaves them empty.
func Write(w io.Writer, doc *compose.Document) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		doc.Width, doc.Height, doc.Width, doc.Height)
	for _, l := range doc.Layers {
		d := PathData(l)
		if d == "" {
			continue
		}
		fmt.Fprintf(bw, `<path fill="%s" stroke="none" d="%s"/>`+"\n", fillColor(l), d)
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// PathData returns the "d" attribute for all curves of a layer.
func PathData(l *compose.Layer) string {
	var sb strings.Builder
	for _, c := range l.Curves() {
		if len(c.Segments) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		writeCurve(&sb, c)
	}
	return sb.String()
}

func writeCurve(sb *strings.Builder, c *curve.Curve) {
	sb.WriteByte('M')
	writePoint(sb, c.Segments[0].Start)
	for i, s := range c.Segments {
		if i == len(c.Segments)-1 && s.Kind == curve.Line {
			// the closing line is implied by Z
			break
		}
		switch s.Kind {
		case curve.Line:
			sb.WriteString(" L")
			writePoint(sb, s.End)
		case curve.Cubic:
			sb.WriteString(" C")
			writePoint(sb, s.C1)
			sb.WriteByte(' ')
			writePoint(sb, s.C2)
			sb.WriteByte(' ')
			writePoint(sb, s.End)
		}
	}
	sb.WriteString(" Z")
}

func writePoint(sb *strings.Builder, p vec.Vec2) {
	sb.WriteString(formatNumber(p.X))
	sb.WriteByte(',')
	sb.WriteString(formatNumber(p.Y))
}

// formatNumber prints x with at most three decimals and no trailing
// zeros.
func formatNumber(x float64) string {
	s := strconv.FormatFloat(x, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		s = "0"
	}
	return s
}

func fillColor(l *compose.Layer) string {
	if l.Default {
		return "black"
	}
	c := colorful.Color{
		R: float64(l.Color.R) / 255,
		G: float64(l.Color.G) / 255,
		B: float64(l.Color.B) / 255,
	}
	return c.Hex()
}
