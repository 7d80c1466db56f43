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
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"seehuhn.de/go/vectorize"
	"seehuhn.de/go/vectorize/testcases"
)

func newFixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures [dir]",
		Short: "Write the built-in test images and their traces",
		Long: `Write every built-in test image as PNG, together with its SVG
trace using the default settings, into dir (default "fixtures").
An index of all images is written to dir/index.json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "fixtures"
			if len(args) > 0 {
				dir = args[0]
			}
			return writeFixtures(dir)
		},
	}
}

type fixtureInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pixels int    `json:"pixels"`
	Curves int    `json:"curves"`
	Lines  int    `json:"lines"`
	Cubics int    `json:"cubics"`
}

func writeFixtures(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var index struct {
		Fixtures []fixtureInfo `json:"fixtures"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			info, err := writeFixture(dir, name, &tc)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			index.Fixtures = append(index.Fixtures, info)
			vectorize.Logger().Debug("fixture written", slog.String("name", name))
		}
	}

	fd, err := os.Create(filepath.Join(dir, "index.json"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(fd)
	enc.SetIndent("", "  ")
	err = enc.Encode(index)
	if cerr := fd.Close(); err == nil {
		err = cerr
	}
	return err
}

func writeFixture(dir, name string, tc *testcases.TestCase) (fixtureInfo, error) {
	info := fixtureInfo{Name: name, Width: tc.Width, Height: tc.Height}

	pix := tc.Pixels()
	img := &image.Gray{
		Pix:    pix.Gray,
		Stride: pix.Width,
		Rect:   image.Rect(0, 0, pix.Width, pix.Height),
	}
	if err := writePNG(filepath.Join(dir, name+".png"), img); err != nil {
		return info, err
	}

	doc, err := vectorize.Trace(pix, vectorize.DefaultConfig())
	if err != nil {
		return info, err
	}
	for _, l := range doc.Layers {
		for _, c := range l.Curves() {
			lines, cubics := c.Count()
			info.Lines += lines
			info.Cubics += cubics
		}
	}
	info.Curves = doc.NumCurves()
	info.Pixels = tc.Bitmap().Count()

	return info, writeDocument(filepath.Join(dir, name+".svg"), doc, 1)
}

func writePNG(fname string, img image.Image) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(fd, img)
	if cerr := fd.Close(); err == nil {
		err = cerr
	}
	return err
}
