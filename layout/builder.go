package layout

import (
	"sort"

	"github.com/bodgit/crumbpack/bitmap"
)

type unit struct {
	bounds Bounds
	data   []byte
	params bitmap.Params
}

// Builder collects independently encoded glyphs, in any order, and lays them
// out into a Font.
type Builder struct {
	units map[rune]unit
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		units: make(map[rune]unit),
	}
}

// Length returns the number of glyphs added.
func (b *Builder) Length() int {
	return len(b.units)
}

// Add records the packed data for code point r. A glyph with empty bounds is
// ignored.
func (b *Builder) Add(r rune, bounds Bounds, data []byte, p bitmap.Params) error {
	if bounds.Empty() {
		return nil
	}
	if len(data) != p.Bytes {
		return errSize
	}
	if _, ok := b.units[r]; ok {
		return ErrDuplicate
	}
	b.units[r] = unit{
		bounds: bounds,
		data:   data,
		params: p,
	}
	return nil
}

// Font concatenates the glyph data in code point order and returns the
// resulting Font.
func (b *Builder) Font(m Metrics, fg, bg bitmap.Crumb) *Font {
	keys := make([]rune, 0, len(b.units))
	for k := range b.units {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	f := &Font{
		Metrics:    m,
		Foreground: fg,
		Background: bg,
		Glyphs:     make([]Glyph, 0, len(keys)),
		Data:       []byte{},
	}

	for _, k := range keys {
		u := b.units[k]
		f.Glyphs = append(f.Glyphs, Glyph{
			CodePoint:  k,
			Bounds:     u.bounds,
			Offset:     len(f.Data),
			Size:       len(u.data),
			FieldWidth: u.params.FieldWidth,
		})
		f.Data = append(f.Data, u.data...)
		f.samples += u.params.Samples
		f.bits += u.params.Bits
	}

	return f
}
