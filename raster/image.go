package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/crumbpack/bitmap"
	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageOptions control how a source image is prepared.
type ImageOptions struct {
	// Width and Height resize the image if either is non-zero. A zero
	// dimension preserves the aspect ratio.
	Width, Height int
	// Levels, if non-zero, reduces the image to at most this many gray
	// levels before quantization.
	Levels int
}

// LoadImage reads the image at path, honouring any EXIF orientation.
func LoadImage(path string, opts ImageOptions) (*bitmap.Grid, error) {
	m, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	return PrepareImage(m, opts), nil
}

// PrepareImage flattens m onto white, applies opts and converts the result to
// a grayscale grid.
func PrepareImage(m image.Image, opts ImageOptions) *bitmap.Grid {
	if opts.Width > 0 || opts.Height > 0 {
		m = imaging.Resize(m, opts.Width, opts.Height, imaging.Lanczos)
	}

	b := m.Bounds()
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), m, image.Point{}, 1.0)
	gray := imaging.Grayscale(flat)

	if opts.Levels > 0 {
		return bitmap.GridFromImage(posterize(gray, opts.Levels))
	}
	return bitmap.GridFromImage(gray)
}

func posterize(m image.Image, levels int) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	b := m.Bounds()
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, levels), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}
