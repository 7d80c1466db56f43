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

package main

import (
	"bufio"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/vectorize"
	"seehuhn.de/go/vectorize/compose"
	"seehuhn.de/go/vectorize/pdfout"
	"seehuhn.de/go/vectorize/raster"
	"seehuhn.de/go/vectorize/svg"
)

type traceOptions struct {
	output     string
	configFile string
	timeout    time.Duration
	scale      float64

	threshold    int
	invert       bool
	colorMode    bool
	colors       int
	palette      []string
	policy       string
	turdSize     int
	alphaMax     float64
	optiCurve    bool
	optTolerance float64
	workers      int
}

func newTraceCmd() *cobra.Command {
	def := vectorize.DefaultConfig()
	opt := &traceOptions{}

	cmd := &cobra.Command{
		Use:   "trace [flags] input",
		Short: "Trace an image",
		Long: `Trace a PNG, JPEG, GIF, BMP, TIFF or WebP image.

The output format is chosen by the extension of the output file:
.svg (the default), .pdf, or .png for a rendered preview.  The
output "-" writes SVG to standard output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, opt, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opt.output, "output", "o", "", "output file (default: input with .svg extension)")
	f.StringVar(&opt.configFile, "config", "", "read settings from this TOML file")
	f.DurationVar(&opt.timeout, "timeout", 0, "abort tracing after this time")
	f.Float64Var(&opt.scale, "scale", 1, "scale factor for PNG previews")

	f.IntVarP(&opt.threshold, "threshold", "t", def.Threshold, "luminance threshold `0..255`")
	f.BoolVarP(&opt.invert, "invert", "i", def.Invert, "trace light pixels on a dark background")
	f.BoolVarP(&opt.colorMode, "color", "c", def.ColorMode, "trace one layer per colour")
	f.IntVar(&opt.colors, "colors", def.Colors, "colour levels per channel `2..16`")
	f.StringSliceVar(&opt.palette, "palette", nil, "map colours to this list of #rrggbb values")
	f.StringVar(&opt.policy, "policy", def.TurnPolicy.String(), "turn policy (black, white, left, right, minority, majority)")
	f.IntVar(&opt.turdSize, "turdsize", def.TurdSize, "discard shapes of at most this many pixels")
	f.Float64VarP(&opt.alphaMax, "alphamax", "a", def.AlphaMax, "corner threshold `0..1.333`")
	f.BoolVar(&opt.optiCurve, "opticurve", def.OptiCurve, "join adjacent curve segments")
	f.Float64Var(&opt.optTolerance, "opttolerance", def.OptTolerance, "tolerance for joining curve segments")
	f.IntVar(&opt.workers, "workers", def.Workers, "number of colour layers traced in parallel (0: all CPUs)")

	return cmd
}

// config combines the defaults, the config file and the flags given on
// the command line, in this order.
func (opt *traceOptions) config(flags *pflag.FlagSet) (vectorize.Config, error) {
	cfg := vectorize.DefaultConfig()
	if opt.configFile != "" {
		fd, err := os.Open(opt.configFile)
		if err != nil {
			return cfg, err
		}
		cfg, err = vectorize.ReadConfig(fd)
		fd.Close()
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", opt.configFile, err)
		}
	}

	var err error
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "threshold":
			cfg.Threshold = opt.threshold
		case "invert":
			cfg.Invert = opt.invert
		case "color":
			cfg.ColorMode = opt.colorMode
		case "colors":
			cfg.Colors = opt.colors
		case "palette":
			cfg.Palette = opt.palette
		case "policy":
			var p vectorize.TurnPolicy
			p, err = vectorize.ParseTurnPolicy(opt.policy)
			cfg.TurnPolicy = p
		case "turdsize":
			cfg.TurdSize = opt.turdSize
		case "alphamax":
			cfg.AlphaMax = opt.alphaMax
		case "opticurve":
			cfg.OptiCurve = opt.optiCurve
		case "opttolerance":
			cfg.OptTolerance = opt.optTolerance
		case "workers":
			cfg.Workers = opt.workers
		}
	})
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func runTrace(cmd *cobra.Command, opt *traceOptions, input string) error {
	cfg, err := opt.config(cmd.Flags())
	if err != nil {
		return err
	}
	if !(opt.scale > 0) {
		return fmt.Errorf("%w: preview scale %g", vectorize.ErrInvalidInput, opt.scale)
	}

	img, err := decodeImage(input)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opt.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opt.timeout)
		defer cancel()
	}

	doc, err := vectorize.TraceContext(ctx, vectorize.FromImage(img), cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	output := opt.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	if output == "-" {
		return writeSVG(cmd.OutOrStdout(), doc)
	}
	return writeDocument(output, doc, opt.scale)
}

func decodeImage(fname string) (image.Image, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, _, err := image.Decode(bufio.NewReader(fd))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return img, nil
}

func writeSVG(w io.Writer, doc *compose.Document) error {
	bw := bufio.NewWriter(w)
	if err := svg.Write(bw, doc); err != nil {
		return err
	}
	return bw.Flush()
}

// writeDocument writes doc to fname, using the format given by the file
// name extension.
func writeDocument(fname string, doc *compose.Document, scale float64) (err error) {
	ext := strings.ToLower(filepath.Ext(fname))
	if ext == ".pdf" {
		return pdfout.Write(fname, doc)
	}
	if ext != ".svg" && ext != ".png" {
		return fmt.Errorf("%s: unsupported output format %q", fname, ext)
	}

	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
	}()

	if ext == ".png" {
		return png.Encode(fd, raster.RenderImage(doc, scale))
	}
	return writeSVG(fd, doc)
}
