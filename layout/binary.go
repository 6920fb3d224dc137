package layout

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/bodgit/crumbpack/bitmap"
)

const maxGlyphs = math.MaxUint16

var errLayout = errors.New("layout: glyph offsets are not contiguous")

type fontHeader struct {
	Count                       uint16
	Ascent, Descent, SpaceWidth int16
	Foreground, Background      uint8
	Samples, Bits               uint32
}

type glyphEntry struct {
	CodePoint     uint32
	Width, Height uint16
	Top, Left     int16
	Offset        uint32
	Size          uint16
	FieldWidth    uint8
	_             uint8
}

// MarshalBinary encodes the font into a little-endian header, the glyph table
// and then the glyph data.
func (f *Font) MarshalBinary() ([]byte, error) {
	if len(f.Glyphs) > maxGlyphs {
		return nil, fmt.Errorf("layout: more than %d glyphs", maxGlyphs)
	}

	b := new(bytes.Buffer)

	h := fontHeader{
		Count:      uint16(len(f.Glyphs)),
		Ascent:     int16(f.Ascent),
		Descent:    int16(f.Descent),
		SpaceWidth: int16(f.SpaceWidth),
		Foreground: uint8(f.Foreground),
		Background: uint8(f.Background),
		Samples:    uint32(f.samples),
		Bits:       uint32(f.bits),
	}
	if err := binary.Write(b, binary.LittleEndian, &h); err != nil {
		return nil, err
	}

	for _, g := range f.Glyphs {
		e := glyphEntry{
			CodePoint:  uint32(g.CodePoint),
			Width:      uint16(g.Width),
			Height:     uint16(g.Height),
			Top:        int16(g.Top),
			Left:       int16(g.Left),
			Offset:     uint32(g.Offset),
			Size:       uint16(g.Size),
			FieldWidth: uint8(g.FieldWidth),
		}
		if err := binary.Write(b, binary.LittleEndian, &e); err != nil {
			return nil, err
		}
	}

	if _, err := b.Write(f.Data); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the font from binary form.
func (f *Font) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	var h fontHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return err
	}

	*f = Font{
		Metrics: Metrics{
			Ascent:     int(h.Ascent),
			Descent:    int(h.Descent),
			SpaceWidth: int(h.SpaceWidth),
		},
		Foreground: bitmap.Crumb(h.Foreground),
		Background: bitmap.Crumb(h.Background),
		Glyphs:     make([]Glyph, 0, h.Count),
		samples:    int(h.Samples),
		bits:       int(h.Bits),
	}

	var offset int
	for i := 0; i < int(h.Count); i++ {
		var e glyphEntry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return err
		}
		if int(e.Offset) != offset {
			return errLayout
		}
		offset += int(e.Size)
		f.Glyphs = append(f.Glyphs, Glyph{
			CodePoint: rune(e.CodePoint),
			Bounds: Bounds{
				Left:   int(e.Left),
				Top:    int(e.Top),
				Width:  int(e.Width),
				Height: int(e.Height),
			},
			Offset:     int(e.Offset),
			Size:       int(e.Size),
			FieldWidth: bitmap.FieldWidth(e.FieldWidth),
		})
	}

	f.Data = make([]byte, offset)
	if _, err := io.ReadFull(r, f.Data); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if r.Len() > 0 {
		return errLayout
	}

	return nil
}
