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

// Package vectorize converts raster images into vector outlines.
//
// The conversion runs in stages, each implemented by a sub-package:
//
//   - [bitmap] turns pixels into one or more two-colour bitmaps,
//   - [contour] traces the boundaries of the set regions,
//   - [polygon] replaces each boundary by an optimal polygon,
//   - [curve] smooths the polygons into lines and cubic Bézier curves,
//   - [compose] groups the curves into ordered colour layers.
//
// [Trace] runs the whole pipeline.  The result can be written using
// the [svg] or [pdfout] packages, or rendered back into pixels using
// the [raster] package.
//
// [bitmap]: https://pkg.go.dev/seehuhn.de/go/vectorize/bitmap
// [contour]: https://pkg.go.dev/seehuhn.de/go/vectorize/contour
// [polygon]: https://pkg.go.dev/seehuhn.de/go/vectorize/polygon
// [curve]: https://pkg.go.dev/seehuhn.de/go/vectorize/curve
// [compose]: https://pkg.go.dev/seehuhn.de/go/vectorize/compose
// [svg]: https://pkg.go.dev/seehuhn.de/go/vectorize/svg
// [pdfout]: https://pkg.go.dev/seehuhn.de/go/vectorize/pdfout
// [raster]: https://pkg.go.dev/seehuhn.de/go/vectorize/raster
package vectorize
