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

package bitmap

import (
	"errors"
	"fmt"
	"image/color"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidInput is returned for malformed pixel buffers and out-of-range
// parameters.
var ErrInvalidInput = errors.New("invalid input")

// Pixels is a decoded image, stored row-major. Exactly one of Gray
// (one byte per pixel) and RGB (three bytes per pixel) is used.
type Pixels struct {
	Width, Height int
	Gray          []uint8
	RGB           []uint8
}

// Check verifies that the buffer dimensions match the pixel data.
func (p *Pixels) Check() error {
	if p == nil {
		return fmt.Errorf("%w: no pixel buffer", ErrInvalidInput)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: empty %dx%d pixel buffer", ErrInvalidInput, p.Width, p.Height)
	}
	n := p.Width * p.Height
	switch {
	case p.Gray != nil && p.RGB != nil:
		return fmt.Errorf("%w: both gray and RGB pixel data given", ErrInvalidInput)
	case p.Gray != nil:
		if len(p.Gray) != n {
			return fmt.Errorf("%w: %d gray values for %dx%d pixels", ErrInvalidInput, len(p.Gray), p.Width, p.Height)
		}
	case p.RGB != nil:
		if len(p.RGB) != 3*n {
			return fmt.Errorf("%w: %d RGB values for %dx%d pixels", ErrInvalidInput, len(p.RGB), p.Width, p.Height)
		}
	default:
		return fmt.Errorf("%w: no pixel data", ErrInvalidInput)
	}
	return nil
}

// rgb returns the colour of pixel i.
func (p *Pixels) rgb(i int) (r, g, b uint8) {
	if p.Gray != nil {
		v := p.Gray[i]
		return v, v, v
	}
	return p.RGB[3*i], p.RGB[3*i+1], p.RGB[3*i+2]
}

// Luminance returns the Rec. 601 luma of an sRGB colour, in 0..255.
func Luminance(r, g, b uint8) int {
	return (299*int(r) + 587*int(g) + 114*int(b) + 500) / 1000
}

// Plane is one binary separation of an image.
type Plane struct {
	// Key identifies the colour as 0xRRGGBB.  Monochrome planes use
	// key 0 and have Default set.
	Key     uint32
	Color   color.RGBA
	Default bool
	Bitmap  *Bitmap
}

// Options controls the binarisation.
type Options struct {
	// Threshold separates foreground from background luminance.
	Threshold int

	// Invert selects light-on-dark tracing: a pixel is set iff its
	// luminance is at least Threshold. By default a pixel is set iff its
	// luminance is below Threshold.
	Invert bool

	// ColorMode produces one plane per palette colour.
	ColorMode bool

	// Levels is the number of quantisation buckets per channel in colour
	// mode.
	Levels int

	// Palette, if non-empty, replaces the uniform buckets by the nearest
	// palette colour (CIE L*a*b* distance).
	Palette []color.RGBA
}

// Binarize converts pixel data into binary planes.
//
// In monochrome mode the result is a single plane. In colour mode each
// pixel is mapped to a palette entry and one plane is returned for every
// entry that occurs and is not considered background; the planes are
// sorted by key.
func Binarize(p *Pixels, opt Options) ([]Plane, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	if opt.Threshold < 0 || opt.Threshold > 255 {
		return nil, fmt.Errorf("%w: threshold %d outside 0..255", ErrInvalidInput, opt.Threshold)
	}

	if !opt.ColorMode {
		bm := New(p.Width, p.Height)
		for y := range p.Height {
			for x := range p.Width {
				r, g, b := p.rgb(y*p.Width + x)
				bm.Set(x, y, isForeground(Luminance(r, g, b), opt))
			}
		}
		return []Plane{{Color: color.RGBA{A: 255}, Default: true, Bitmap: bm}}, nil
	}

	var q quantizer
	if len(opt.Palette) > 0 {
		q = newPaletteQuantizer(opt.Palette)
	} else {
		if opt.Levels < 2 || opt.Levels > 16 {
			return nil, fmt.Errorf("%w: %d colour levels outside 2..16", ErrInvalidInput, opt.Levels)
		}
		q = uniformQuantizer(opt.Levels)
	}

	planes := make(map[uint32]*Bitmap)
	for y := range p.Height {
		for x := range p.Width {
			key := q.quantize(p.rgb(y*p.Width + x))
			r, g, b := unpack(key)
			if !isForeground(Luminance(r, g, b), opt) {
				continue
			}
			bm := planes[key]
			if bm == nil {
				bm = New(p.Width, p.Height)
				planes[key] = bm
			}
			bm.Set(x, y, true)
		}
	}

	keys := make([]uint32, 0, len(planes))
	for key := range planes {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	res := make([]Plane, len(keys))
	for i, key := range keys {
		r, g, b := unpack(key)
		res[i] = Plane{
			Key:    key,
			Color:  color.RGBA{R: r, G: g, B: b, A: 255},
			Bitmap: planes[key],
		}
	}
	return res, nil
}

// isForeground applies the threshold polarity.
func isForeground(lum int, opt Options) bool {
	if opt.Invert {
		return lum >= opt.Threshold
	}
	return lum < opt.Threshold
}

type quantizer interface {
	quantize(r, g, b uint8) uint32
}

// uniformQuantizer maps each channel to the centre of one of n equal
// buckets.
type uniformQuantizer int

func (n uniformQuantizer) quantize(r, g, b uint8) uint32 {
	return pack(n.level(r), n.level(g), n.level(b))
}

func (n uniformQuantizer) level(v uint8) uint8 {
	k := int(n)
	bucket := int(v) * k / 256
	return uint8(((2*bucket+1)*255 + k) / (2 * k))
}

// paletteQuantizer maps each colour to the perceptually closest palette
// entry. Ties go to the earlier entry.
type paletteQuantizer struct {
	keys  []uint32
	lab   []colorful.Color
	cache map[uint32]uint32
}

func newPaletteQuantizer(pal []color.RGBA) *paletteQuantizer {
	q := &paletteQuantizer{cache: make(map[uint32]uint32)}
	for _, c := range pal {
		q.keys = append(q.keys, pack(c.R, c.G, c.B))
		q.lab = append(q.lab, colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		})
	}
	return q
}

func (q *paletteQuantizer) quantize(r, g, b uint8) uint32 {
	key := pack(r, g, b)
	if res, ok := q.cache[key]; ok {
		return res
	}
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best := 0
	bestDist := c.DistanceLab(q.lab[0])
	for i := 1; i < len(q.lab); i++ {
		if d := c.DistanceLab(q.lab[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	q.cache[key] = q.keys[best]
	return q.keys[best]
}

func pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func unpack(key uint32) (r, g, b uint8) {
	return uint8(key >> 16), uint8(key >> 8), uint8(key)
}

// Hex formats a plane colour as "#rrggbb".
func (p Plane) Hex() string {
	c := colorful.Color{
		R: float64(p.Color.R) / 255,
		G: float64(p.Color.G) / 255,
		B: float64(p.Color.B) / 255,
	}
	return c.Hex()
}
