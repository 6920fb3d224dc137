/*
Package bitmap implements the crumb-packed bitmap encoder and decoder used
by the e-paper display runtime.

Each 8-bit grayscale sample is quantized into a 2-bit color code, a "crumb",
with darker samples mapping to higher codes. Crumbs are packed four to a byte
with the first crumb in bits 7-6 and the last in bits 1-0. A final partial
byte is padded with zero bits.

A unit is stored either uncompressed, one crumb per sample in row-major
order, or run-length encoded with a field width of 2, 4 or 6 bits. In the
latter case each run is written as one color crumb followed by the run length
in width/2 crumbs, most significant crumb first. A run longer than the field
can hold is split into consecutive runs of the same color. The field width is
chosen per unit as whichever produces the fewest bits, preferring the
narrower width, or no compression, on a tie.
*/
package bitmap

import (
	"errors"
	"image"
	"image/color"
)

// Crumb is a 2-bit color code.
type Crumb uint8

// FieldWidth is the number of bits used for a run length. Uncompressed means
// the unit is stored as one crumb per sample.
type FieldWidth int

// Uncompressed is the zero FieldWidth.
const Uncompressed FieldWidth = 0

const crumbBits = 2

var (
	// ErrShape is returned when a grid's dimensions don't match its samples.
	ErrShape = errors.New("bitmap: sample count does not match dimensions")
	// ErrFieldWidth is returned for a field width that isn't 0, 2, 4 or 6.
	ErrFieldWidth = errors.New("bitmap: invalid field width")
)

// MaxRun returns the longest run a single token can hold.
func (f FieldWidth) MaxRun() int {
	return 1<<uint(f) - 1
}

func (f FieldWidth) valid() bool {
	if f == Uncompressed {
		return true
	}
	for _, w := range FieldWidths {
		if f == w {
			return true
		}
	}
	return false
}

func (f FieldWidth) String() string {
	switch f {
	case Uncompressed:
		return "uncompressed"
	case 2:
		return "rle2"
	case 4:
		return "rle4"
	case 6:
		return "rle6"
	}
	return "invalid"
}

// Grid is a width by height grid of 8-bit grayscale samples in row-major
// order.
type Grid struct {
	Width, Height int
	Pix           []uint8
}

// NewGrid returns a Grid over pix, which must hold exactly w*h samples.
func NewGrid(w, h int, pix []uint8) (*Grid, error) {
	g := &Grid{Width: w, Height: h, Pix: pix}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) validate() error {
	if g.Width < 0 || g.Height < 0 || g.Width*g.Height != len(g.Pix) {
		return ErrShape
	}
	return nil
}

// Len returns the number of samples in the grid.
func (g *Grid) Len() int {
	return len(g.Pix)
}

// GridFromImage converts m to grayscale and returns it as a Grid with the
// top-left corner at (0, 0).
func GridFromImage(m image.Image) *Grid {
	b := m.Bounds()
	g := &Grid{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]uint8, 0, b.Dx()*b.Dy()),
	}

	if gm, ok := m.(*image.Gray); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := gm.PixOffset(b.Min.X, y)
			g.Pix = append(g.Pix, gm.Pix[i:i+b.Dx()]...)
		}
		return g
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.Pix = append(g.Pix, color.GrayModel.Convert(m.At(x, y)).(color.Gray).Y)
		}
	}
	return g
}
