package crumbpack

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/crumbpack/header"
	"github.com/bodgit/crumbpack/layout"
	"github.com/bodgit/crumbpack/raster"
)

// Bumped whenever the output for the same input changes
const formatVersion = 1

const (
	kindFont  = "font"
	kindImage = "image"
)

func hashAsset(file string, options interface{}) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	fmt.Fprintf(h, "%d %+v\n", formatVersion, options)
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

func (c *Compiler) cached(sha string) (*Asset, error) {
	if c.db == nil {
		return nil, nil
	}
	return c.db.FindAsset(sha)
}

func (c *Compiler) store(sha string, a *Asset) error {
	if c.db == nil {
		return nil
	}
	return c.db.AddAsset(sha, a)
}

func writeAsset(dir string, a *Asset, binary bool) error {
	if err := ioutil.WriteFile(filepath.Join(dir, a.Name+".h"), a.Header, 0644); err != nil {
		return err
	}
	if binary {
		return ioutil.WriteFile(filepath.Join(dir, a.Name+".bin"), a.Data, 0644)
	}
	return nil
}

// BuildFont compiles the font described by fa.
func (c *Compiler) BuildFont(ctx context.Context, fa FontAsset) (*Asset, error) {
	fg, bg := fa.Colors()
	opts := struct {
		Name, Ranges string
		Size         float64
		FG, BG       uint8
	}{fa.Name, fa.Ranges, fa.Size, fg, bg}

	sha, err := hashAsset(fa.Path, opts)
	if err != nil {
		return nil, err
	}

	if a, err := c.cached(sha); err != nil || a != nil {
		if a != nil {
			c.logger.Printf("Using cached font '%s'\n", fa.Path)
		}
		return a, err
	}

	runes, err := layout.ParseRanges(fa.Ranges)
	if err != nil {
		return nil, err
	}

	c.logger.Printf("Building font '%s' at size %gpx with ranges %s\n", fa.Path, fa.Size, fa.Ranges)

	src, err := raster.OpenFont(fa.Path, fa.Size, fg, bg)
	if err != nil {
		return nil, err
	}

	f, err := c.CompileFont(ctx, src, runes)
	if err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	if err := header.WriteFont(b, header.FontInfo{Name: fa.Name, Source: fa.Path, Size: fa.Size, Ranges: fa.Ranges}, f); err != nil {
		return nil, err
	}

	data, err := f.MarshalBinary()
	if err != nil {
		return nil, err
	}

	a := &Asset{
		Name:   fa.Name,
		Kind:   kindFont,
		Header: b.Bytes(),
		Data:   data,
		Bytes:  len(f.Data),
	}

	return a, c.store(sha, a)
}

// BuildImage compiles the image described by ia, which must not be a glob.
func (c *Compiler) BuildImage(ia ImageAsset) (*Asset, error) {
	sha, err := hashAsset(ia.Path, ia)
	if err != nil {
		return nil, err
	}

	if a, err := c.cached(sha); err != nil || a != nil {
		if a != nil {
			c.logger.Printf("Using cached image '%s'\n", ia.Path)
		}
		return a, err
	}

	c.logger.Printf("Loaded file '%s'\n", ia.Path)

	g, err := raster.LoadImage(ia.Path, raster.ImageOptions{Width: ia.Width, Height: ia.Height, Levels: ia.Levels})
	if err != nil {
		return nil, err
	}

	m, err := c.CompileImage(g)
	if err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	if err := header.WriteImage(b, header.ImageInfo{Name: ia.Name, Source: ia.Path}, m); err != nil {
		return nil, err
	}

	a := &Asset{
		Name:   ia.Name,
		Kind:   kindImage,
		Header: b.Bytes(),
		Data:   m.Data,
		Bytes:  len(m.Data),
	}

	return a, c.store(sha, a)
}

// Build compiles every asset in m and writes the results to m.Output.
func (c *Compiler) Build(ctx context.Context, m *Manifest) error {
	if err := m.validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(m.Output, 0755); err != nil {
		return err
	}

	if m.Types {
		if err := header.WriteTypes(m.Output); err != nil {
			return err
		}
	}

	for _, fa := range m.Fonts {
		a, err := c.BuildFont(ctx, fa)
		if err != nil {
			return fmt.Errorf("%s: %w", fa.Path, err)
		}
		if err := writeAsset(m.Output, a, m.Binary); err != nil {
			return err
		}
		c.logger.Printf("Wrote font '%s' (%d bytes)\n", a.Name, a.Bytes)
	}

	images, err := m.expandImages()
	if err != nil {
		return err
	}

	for _, ia := range images {
		a, err := c.BuildImage(ia)
		if err != nil {
			return fmt.Errorf("%s: %w", ia.Path, err)
		}
		if err := writeAsset(m.Output, a, m.Binary); err != nil {
			return err
		}
		c.logger.Printf("Wrote image '%s' (%d bytes)\n", a.Name, a.Bytes)
	}

	return nil
}
