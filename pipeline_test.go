package crumbpack

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/bodgit/crumbpack/bitmap"
	"github.com/bodgit/crumbpack/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	missing map[rune]bool
	fail    rune
	calls   []rune
}

func (s *fakeSource) Metrics() layout.Metrics {
	return layout.Metrics{Ascent: 10, Descent: 3, SpaceWidth: 4}
}

func (s *fakeSource) Colors() (uint8, uint8) {
	return 0, 255
}

func (s *fakeSource) HasGlyph(r rune) bool {
	return !s.missing[r]
}

func (s *fakeSource) Render(r rune) (layout.Bounds, *bitmap.Grid, error) {
	s.calls = append(s.calls, r)
	if r == s.fail {
		return layout.Bounds{}, nil, errors.New("render failed")
	}
	if r == ' ' {
		return layout.Bounds{}, &bitmap.Grid{}, nil
	}

	w, h := int(r%7)+1, int(r%5)+2
	pix := make([]uint8, w*h)
	for i := range pix {
		if (i+int(r))%3 == 0 {
			pix[i] = 0
		} else {
			pix[i] = 255
		}
	}
	return layout.Bounds{Left: 0, Top: -h, Width: w, Height: h}, &bitmap.Grid{Width: w, Height: h, Pix: pix}, nil
}

func newTestCompiler() (*Compiler, *bytes.Buffer) {
	warnings := new(bytes.Buffer)
	return New(nil, nil, log.New(warnings, "", 0)), warnings
}

func TestCompileFont(t *testing.T) {
	c, warnings := newTestCompiler()
	src := &fakeSource{missing: map[rune]bool{'~': true, 0xfffd: true}}

	runes, err := layout.ParseRanges("!-~,�, ")
	require.NoError(t, err)

	f, err := c.CompileFont(context.Background(), src, runes)
	require.NoError(t, err)

	// Every code point is rendered exactly once, in order
	assert.Equal(t, runes, src.calls)

	// Space is skipped, everything else is present
	_, ok := f.Lookup(' ')
	assert.False(t, ok)
	assert.Len(t, f.Glyphs, len(runes)-1)

	// Missing glyphs are still encoded
	_, ok = f.Lookup('~')
	assert.True(t, ok)
	_, ok = f.Lookup(0xfffd)
	assert.True(t, ok)

	assert.Contains(t, warnings.String(), "U+007E")
	assert.NotContains(t, warnings.String(), "U+FFFD")

	offset := 0
	for i, g := range f.Glyphs {
		if i > 0 {
			assert.Less(t, f.Glyphs[i-1].CodePoint, g.CodePoint)
		}
		assert.Equal(t, offset, g.Offset)
		offset += g.Size

		_, grid, err := src.Render(g.CodePoint)
		require.NoError(t, err)
		want, err := bitmap.QuantizeGrid(grid)
		require.NoError(t, err)
		got, err := bitmap.Decode(bytes.NewReader(f.Slice(g)), g.Width*g.Height, g.FieldWidth)
		require.NoError(t, err)
		assert.Equal(t, want, got, "U+%04X", g.CodePoint)
	}
	assert.Equal(t, len(f.Data), offset)

	assert.Equal(t, bitmap.Crumb(3), f.Foreground)
	assert.Equal(t, bitmap.Crumb(0), f.Background)
	assert.Equal(t, 4, f.SpaceWidth)
}

func TestCompileFontError(t *testing.T) {
	c, _ := newTestCompiler()
	src := &fakeSource{fail: 'M'}

	runes, err := layout.ParseRanges("A-Z")
	require.NoError(t, err)

	f, err := c.CompileFont(context.Background(), src, runes)
	assert.EqualError(t, err, "render failed")
	assert.Nil(t, f)
}

func TestCompileFontCancelled(t *testing.T) {
	c, _ := newTestCompiler()
	c.workers = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runes, err := layout.ParseRanges("A-Z")
	require.NoError(t, err)

	_, err = c.CompileFont(ctx, &fakeSource{}, runes)
	assert.Equal(t, context.Canceled, err)
}

func TestCompileFontEmpty(t *testing.T) {
	c, _ := newTestCompiler()

	f, err := c.CompileFont(context.Background(), &fakeSource{}, []rune{' '})
	require.NoError(t, err)
	assert.Empty(t, f.Glyphs)
	assert.Empty(t, f.Data)
	assert.Equal(t, 0.0, f.Ratio())
}

func TestCompileImage(t *testing.T) {
	c, _ := newTestCompiler()

	m, err := c.CompileImage(&bitmap.Grid{Width: 4, Height: 1, Pix: []uint8{10, 10, 200, 200}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xf5}, m.Data)

	_, err = c.CompileImage(&bitmap.Grid{Width: 4, Height: 1})
	assert.Equal(t, bitmap.ErrShape, err)
}
