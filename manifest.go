package crumbpack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

// FontAsset describes a font to compile.
type FontAsset struct {
	Path   string  `toml:"path"`
	Name   string  `toml:"name"`
	Size   float64 `toml:"size"`
	Ranges string  `toml:"ranges"`
	// Foreground and Background are gray levels, black on white if unset.
	Foreground *uint8 `toml:"fg"`
	Background *uint8 `toml:"bg"`
}

// Colors returns the foreground and background gray levels.
func (a FontAsset) Colors() (uint8, uint8) {
	fg, bg := uint8(0), uint8(255)
	if a.Foreground != nil {
		fg = *a.Foreground
	}
	if a.Background != nil {
		bg = *a.Background
	}
	return fg, bg
}

// ImageAsset describes an image, or a set of images matched by Glob, to
// compile.
type ImageAsset struct {
	Path   string `toml:"path"`
	Glob   string `toml:"glob"`
	Name   string `toml:"name"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Levels int    `toml:"levels"`
}

// Manifest lists the assets to build. Relative paths are relative to the
// directory containing the manifest.
type Manifest struct {
	Output string       `toml:"output"`
	Binary bool         `toml:"binary"`
	Types  bool         `toml:"types"`
	Fonts  []FontAsset  `toml:"font"`
	Images []ImageAsset `toml:"image"`

	dir string
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// LoadManifest reads and validates the manifest in file.
func LoadManifest(file string) (*Manifest, error) {
	m := new(Manifest)
	md, err := toml.DecodeFile(file, m)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", file, undecoded[0].String())
	}

	dir, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		return nil, err
	}
	m.dir = dir

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return m, nil
}

func (m *Manifest) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.dir, path)
}

func (m *Manifest) validate() error {
	if m.dir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		m.dir = dir
	}

	if m.Output == "" {
		m.Output = m.dir
	}
	m.Output = m.resolve(m.Output)

	for i := range m.Fonts {
		f := &m.Fonts[i]
		switch {
		case f.Path == "":
			return errors.New("font has no path")
		case f.Size <= 0:
			return fmt.Errorf("font %s has no size", f.Path)
		case f.Ranges == "":
			return fmt.Errorf("font %s has no ranges", f.Path)
		}
		f.Path = m.resolve(f.Path)
		if f.Name == "" {
			f.Name = baseName(f.Path)
		}
	}

	for i := range m.Images {
		im := &m.Images[i]
		switch {
		case (im.Path == "") == (im.Glob == ""):
			return errors.New("image needs exactly one of path or glob")
		case im.Glob != "" && im.Name != "":
			return fmt.Errorf("image glob %s cannot have a name", im.Glob)
		case im.Width < 0 || im.Height < 0 || im.Levels < 0:
			return fmt.Errorf("image %s%s has a negative option", im.Path, im.Glob)
		}
		if _, err := glob.Compile(im.Glob, '/'); err != nil {
			return err
		}
		im.Path = m.resolve(im.Path)
		if im.Path != "" && im.Name == "" {
			im.Name = baseName(im.Path)
		}
	}

	return nil
}

// expandImages replaces each glob with one ImageAsset per matching file.
func (m *Manifest) expandImages() ([]ImageAsset, error) {
	var images []ImageAsset
	for _, im := range m.Images {
		if im.Glob == "" {
			images = append(images, im)
			continue
		}

		g, err := glob.Compile(im.Glob, '/')
		if err != nil {
			return nil, err
		}

		var matches []string
		if err := filepath.Walk(m.dir, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != m.dir {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(m.dir, file)
			if err != nil {
				return err
			}
			if g.Match(filepath.ToSlash(rel)) {
				matches = append(matches, file)
			}
			return nil
		}); err != nil {
			return nil, err
		}
		sort.Strings(matches)

		for _, file := range matches {
			dup := im
			dup.Glob = ""
			dup.Path = file
			dup.Name = baseName(file)
			images = append(images, dup)
		}
	}
	return images, nil
}
