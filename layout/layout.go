/*
Package layout assembles encoded units into the tables the display runtime
uses to find them.

An image is a single unit. A font is a sparse table of glyphs sorted by code
point, each pointing at its own slice of one shared data buffer. Glyphs with
no pixels, such as a space, have no entry and use no data; the runtime draws
nothing for a code point without an entry and advances by the font's space
width.
*/
package layout

import (
	"bytes"
	"errors"
	"sort"

	"github.com/bodgit/crumbpack/bitmap"
)

var (
	// ErrDuplicate is returned when a code point is added twice.
	ErrDuplicate = errors.New("layout: duplicate code point")
	errSize      = errors.New("layout: data does not match encoded size")
)

// Bounds is a unit's bounding box. Left and Top are relative to the origin,
// the baseline for glyphs, so a negative Top is above the baseline.
type Bounds struct {
	Left, Top     int
	Width, Height int
}

// Empty reports whether the bounding box has no pixels.
func (b Bounds) Empty() bool {
	return b.Width*b.Height == 0
}

// Metrics are the font-wide vertical metrics and the advance used for
// missing or blank glyphs.
type Metrics struct {
	Ascent, Descent int
	SpaceWidth      int
}

// Glyph locates one glyph's data within Font.Data.
type Glyph struct {
	CodePoint rune
	Bounds
	Offset     int
	Size       int
	FieldWidth bitmap.FieldWidth
}

// Font is a compiled bitmap font.
type Font struct {
	Metrics
	Foreground, Background bitmap.Crumb
	Glyphs                 []Glyph
	Data                   []byte

	samples, bits int
}

// Lookup returns the glyph for r, if present.
func (f *Font) Lookup(r rune) (Glyph, bool) {
	i := sort.Search(len(f.Glyphs), func(i int) bool { return f.Glyphs[i].CodePoint >= r })
	if i < len(f.Glyphs) && f.Glyphs[i].CodePoint == r {
		return f.Glyphs[i], true
	}
	return Glyph{}, false
}

// Slice returns the packed data for g.
func (f *Font) Slice(g Glyph) []byte {
	return f.Data[g.Offset : g.Offset+g.Size]
}

// Ratio returns the compression ratio across all glyphs, or 0 if the font is
// empty.
func (f *Font) Ratio() float64 {
	if f.bits == 0 {
		return 0
	}
	return float64(f.samples*2) / float64(f.bits)
}

// Image is a compiled image.
type Image struct {
	Width, Height int
	bitmap.Params
	Data []byte
}

// NewImage encodes g as a single unit.
func NewImage(g *bitmap.Grid) (*Image, error) {
	b := new(bytes.Buffer)
	p, err := bitmap.Encode(b, g)
	if err != nil {
		return nil, err
	}
	return &Image{
		Width:  g.Width,
		Height: g.Height,
		Params: p,
		Data:   b.Bytes(),
	}, nil
}
