/*
Package raster turns fonts and image files into the grayscale sample grids
the bitmap encoder consumes.

Fonts are TrueType or OpenType, rasterized at a given pixel size, and are not
safe for concurrent use.
*/
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"io/ioutil"

	"github.com/bodgit/crumbpack/bitmap"
	"github.com/bodgit/crumbpack/layout"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font renders glyphs from a font face in fixed foreground and background
// gray levels.
type Font struct {
	face   font.Face
	has    func(rune) bool
	fg, bg uint8
}

// OpenFont reads the TrueType or OpenType font at path for rendering at size
// pixels.
func OpenFont(path string, size float64, fg, bg uint8) (*Font, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewOpenType(b, size, fg, bg)
}

// NewOpenType returns a Font for the TrueType or OpenType data in b.
func NewOpenType(b []byte, size float64, fg, bg uint8) (*Font, error) {
	f, err := opentype.Parse(b)
	if err != nil {
		return nil, err
	}

	// At 72 DPI a point is a pixel
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	var buf sfnt.Buffer
	return &Font{
		face: face,
		has: func(r rune) bool {
			i, err := f.GlyphIndex(&buf, r)
			return err == nil && i != 0
		},
		fg: fg,
		bg: bg,
	}, nil
}

// Metrics returns the rounded vertical metrics and the advance of a space.
func (f *Font) Metrics() layout.Metrics {
	m := f.face.Metrics()
	adv, _ := f.face.GlyphAdvance(' ')
	return layout.Metrics{
		Ascent:     m.Ascent.Round(),
		Descent:    m.Descent.Round(),
		SpaceWidth: adv.Round(),
	}
}

// Colors returns the foreground and background gray levels.
func (f *Font) Colors() (uint8, uint8) {
	return f.fg, f.bg
}

// HasGlyph reports whether the font itself defines r.
func (f *Font) HasGlyph(r rune) bool {
	return f.has(r)
}

// Smallest rectangle within r holding a non-transparent mask pixel
func inkBounds(mask image.Image, r image.Rectangle) image.Rectangle {
	var ink image.Rectangle
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if _, _, _, a := mask.At(x, y).RGBA(); a != 0 {
				ink = ink.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return ink
}

// Render draws r with its origin on the baseline and returns the bounding
// box of the inked pixels along with those pixels. A glyph without ink, or
// one the face cannot draw at all, has empty bounds.
func (f *Font) Render(r rune) (layout.Bounds, *bitmap.Grid, error) {
	dr, mask, maskp, _, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if !ok || dr.Empty() {
		return layout.Bounds{}, &bitmap.Grid{}, nil
	}

	// Work in mask coordinates then translate back to the destination
	offset := maskp.Sub(dr.Min)
	ink := inkBounds(mask, dr.Add(offset))
	if ink.Empty() {
		return layout.Bounds{}, &bitmap.Grid{}, nil
	}

	m := image.NewGray(image.Rect(0, 0, ink.Dx(), ink.Dy()))
	draw.Draw(m, m.Bounds(), image.NewUniform(color.Gray{Y: f.bg}), image.Point{}, draw.Src)
	draw.DrawMask(m, m.Bounds(), image.NewUniform(color.Gray{Y: f.fg}), image.Point{}, mask, ink.Min, draw.Over)

	origin := ink.Min.Sub(offset)
	return layout.Bounds{
		Left:   origin.X,
		Top:    origin.Y,
		Width:  ink.Dx(),
		Height: ink.Dy(),
	}, bitmap.GridFromImage(m), nil
}
