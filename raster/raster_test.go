package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/crumbpack/bitmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

func countInk(g *bitmap.Grid) int {
	n := 0
	for _, v := range g.Pix {
		if bitmap.Quantize(v) == 3 {
			n++
		}
	}
	return n
}

func TestOpenType(t *testing.T) {
	f, err := NewOpenType(goregular.TTF, 16, 0, 255)
	require.NoError(t, err)

	m := f.Metrics()
	assert.Greater(t, m.Ascent, 0)
	assert.Greater(t, m.Descent, 0)
	assert.Greater(t, m.SpaceWidth, 0)

	assert.True(t, f.HasGlyph('A'))
	assert.True(t, f.HasGlyph('é'))
	assert.False(t, f.HasGlyph(0x4e00))

	fg, bg := f.Colors()
	assert.Equal(t, uint8(0), fg)
	assert.Equal(t, uint8(255), bg)

	b, g, err := f.Render('A')
	require.NoError(t, err)
	assert.False(t, b.Empty())
	assert.Equal(t, b.Width*b.Height, g.Len())
	assert.Equal(t, b.Width, g.Width)
	assert.Less(t, b.Top, 0)
	assert.Greater(t, countInk(g), 0)

	// Descender goes below the baseline
	b, _, err = f.Render('g')
	require.NoError(t, err)
	assert.Greater(t, b.Top+b.Height, 0)

	b, g, err = f.Render(' ')
	require.NoError(t, err)
	assert.True(t, b.Empty())
	assert.Equal(t, 0, g.Len())
}

func TestRenderBasicFont(t *testing.T) {
	f := &Font{
		face: basicfont.Face7x13,
		has:  func(r rune) bool { return r < 0x80 },
		fg:   0,
		bg:   255,
	}

	b, g, err := f.Render('|')
	require.NoError(t, err)
	require.False(t, b.Empty())
	assert.Equal(t, 1, b.Width)
	// A vertical bar is solid ink once trimmed
	assert.Equal(t, g.Len(), countInk(g))

	b, _, err = f.Render(' ')
	require.NoError(t, err)
	assert.True(t, b.Empty())
}

func TestOpenFont(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "test.ttf")
	require.NoError(t, os.WriteFile(file, goregular.TTF, 0644))
	_, err := OpenFont(file, 12, 0, 255)
	assert.NoError(t, err)

	require.NoError(t, os.WriteFile(file, []byte("not a font"), 0644))
	_, err = OpenFont(file, 12, 0, 255)
	assert.Error(t, err)

	_, err = OpenFont(filepath.Join(dir, "missing.ttf"), 12, 0, 255)
	assert.Error(t, err)
}

func TestPrepareImage(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		m.Set(x, 0, color.Black)
		m.Set(x, 1, color.NRGBA{0, 0, 0, 0})
	}

	g := PrepareImage(m, ImageOptions{})
	assert.Equal(t, 4, g.Width)
	assert.Equal(t, 2, g.Height)
	// Transparent pixels become white
	assert.Equal(t, []uint8{0, 0, 0, 0, 255, 255, 255, 255}, g.Pix)

	g = PrepareImage(m, ImageOptions{Width: 2})
	assert.Equal(t, 2, g.Width)
	assert.Equal(t, 1, g.Height)
}

func TestPosterize(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 64, 1))
	for x := 0; x < 64; x++ {
		m.SetGray(x, 0, color.Gray{Y: uint8(x * 4)})
	}

	g := PrepareImage(m, ImageOptions{Levels: 2})
	levels := make(map[uint8]struct{})
	for _, v := range g.Pix {
		levels[v] = struct{}{}
	}
	assert.LessOrEqual(t, len(levels), 2)
}

func TestLoadImage(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 3, 3))
	file := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())

	g, err := LoadImage(file, ImageOptions{})
	require.NoError(t, err)
	assert.Equal(t, make([]uint8, 9), g.Pix)
}
