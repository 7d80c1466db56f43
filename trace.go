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
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/vectorize/bitmap"
	"seehuhn.de/go/vectorize/compose"
	"seehuhn.de/go/vectorize/contour"
	"seehuhn.de/go/vectorize/curve"
	"seehuhn.de/go/vectorize/polygon"
)

// Trace converts pix into a layered vector document.
//
// Either a complete document or an error is returned.  Errors caused by
// the arguments wrap ErrInvalidInput.
func Trace(pix *PixelBuffer, cfg Config) (*compose.Document, error) {
	return TraceContext(context.Background(), pix, cfg)
}

// TraceContext is like Trace, but stops early with the context's error
// if ctx is cancelled.  Colour layers are traced concurrently.
func TraceContext(ctx context.Context, pix *PixelBuffer, cfg Config) (*compose.Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := pix.Check(); err != nil {
		return nil, err
	}
	palette, _ := cfg.palette()
	log := Logger()
	start := time.Now()

	planes, err := bitmap.Binarize(pix, bitmap.Options{
		Threshold: cfg.Threshold,
		Invert:    cfg.Invert,
		ColorMode: cfg.ColorMode,
		Levels:    cfg.Colors,
		Palette:   palette,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("binarized",
		"width", pix.Width, "height", pix.Height,
		"planes", len(planes), "elapsed", time.Since(start))

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	inputs := make([]compose.LayerInput, len(planes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, pl := range planes {
		g.Go(func() error {
			roots, err := tracePlane(gctx, pl.Bitmap, &cfg)
			if err != nil {
				return fmt.Errorf("layer %s: %w", pl.Hex(), err)
			}
			inputs[i] = compose.LayerInput{
				Key:     pl.Key,
				Color:   pl.Color,
				Default: pl.Default,
				Roots:   roots,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := compose.Compose(pix.Width, pix.Height, inputs)
	log.Debug("traced",
		"layers", len(doc.Layers), "curves", doc.NumCurves(),
		"elapsed", time.Since(start))
	return doc, nil
}

// tracePlane runs the contour, polygon and curve stages on one bitmap.
func tracePlane(ctx context.Context, bm *bitmap.Bitmap, cfg *Config) ([]*compose.Outline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paths, err := contour.Trace(bm, contour.Options{
		Policy:   cfg.TurnPolicy,
		TurdSize: cfg.TurdSize,
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opt := curve.Options{
		AlphaMax:     cfg.AlphaMax,
		OptiCurve:    cfg.OptiCurve,
		OptTolerance: cfg.OptTolerance,
	}
	var roots []*compose.Outline
	for _, p := range contour.Roots(paths) {
		roots = append(roots, fitTree(p, opt))
	}

	Logger().Debug("plane traced", "pixels", bm.Count(), "paths", len(paths))
	return roots, nil
}

// fitTree converts a contour and everything nested inside it.
func fitTree(p *contour.Path, opt curve.Options) *compose.Outline {
	o := &compose.Outline{
		Curve: curve.FitWith(polygon.Optimize(p), opt),
	}
	for _, c := range p.Children {
		o.Children = append(o.Children, fitTree(c, opt))
	}
	return o
}
