/*
Package crumbpack is a library for compiling fonts and images into the packed
bitmap headers used by the e-paper display firmware.
*/
package crumbpack

import (
	"io/ioutil"
	"log"
	"runtime"

	"github.com/bodgit/crumbpack/bitmap"
	"github.com/bodgit/crumbpack/layout"
)

// Source is a font that can be rasterized one code point at a time. It is
// only ever called from a single goroutine.
type Source interface {
	Metrics() layout.Metrics
	// Colors returns the foreground and background gray levels.
	Colors() (uint8, uint8)
	// HasGlyph reports whether the font defines r rather than falling back
	// to a placeholder.
	HasGlyph(r rune) bool
	Render(r rune) (layout.Bounds, *bitmap.Grid, error)
}

type Compiler struct {
	db      *AssetDB
	logger  *log.Logger
	warn    *log.Logger
	workers int
}

// New returns a Compiler. db may be nil to disable caching. Progress is
// written to logger and problems with the input to warn; either may be nil.
func New(db *AssetDB, logger, warn *log.Logger) *Compiler {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	if warn == nil {
		warn = logger
	}
	return &Compiler{
		db:      db,
		logger:  logger,
		warn:    warn,
		workers: runtime.NumCPU(),
	}
}

// CompileImage encodes a single image.
func (c *Compiler) CompileImage(g *bitmap.Grid) (*layout.Image, error) {
	m, err := layout.NewImage(g)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("Encoded %dx%d image as %s\n", m.Width, m.Height, m.Params)
	return m, nil
}
