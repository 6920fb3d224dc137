package crumbpack

import (
	"bytes"
	"context"
	"sync"
	"unicode"

	"github.com/bodgit/crumbpack/bitmap"
	"github.com/bodgit/crumbpack/layout"
)

type glyphJob struct {
	r      rune
	bounds layout.Bounds
	grid   *bitmap.Grid
}

type glyphResult struct {
	glyphJob
	data   []byte
	params bitmap.Params
}

// Rasterizing stays on one goroutine as fonts aren't safe for concurrent use
func (c *Compiler) rasterize(ctx context.Context, src Source, runes []rune) (<-chan glyphJob, <-chan error) {
	out := make(chan glyphJob)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, r := range runes {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}

			if !src.HasGlyph(r) && r != unicode.ReplacementChar {
				c.warn.Printf("Font does not contain code point %q (U+%04X)\n", r, r)
			}

			b, g, err := src.Render(r)
			if err != nil {
				errc <- err
				return
			}

			if b.Empty() {
				c.logger.Printf("Skipping whitespace code point U+%04X\n", r)
				continue
			}

			select {
			case out <- glyphJob{r: r, bounds: b, grid: g}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

func (c *Compiler) encodeWorker(ctx context.Context, in <-chan glyphJob, out chan<- glyphResult, wg *sync.WaitGroup) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer wg.Done()
		defer close(errc)
		for job := range in {
			b := new(bytes.Buffer)
			p, err := bitmap.Encode(b, job.grid)
			if err != nil {
				errc <- err
				return
			}

			select {
			case out <- glyphResult{glyphJob: job, data: b.Bytes(), params: p}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return errc
}

func (c *Compiler) collect(lb *layout.Builder, in <-chan glyphResult) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for res := range in {
			if err := lb.Add(res.r, res.bounds, res.data, res.params); err != nil {
				errc <- err
				return
			}
			c.logger.Printf("Encoded U+%04X %dx%d as %s\n", res.r, res.bounds.Width, res.bounds.Height, res.params)
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// CompileFont rasterizes each code point in runes from src, encodes the
// glyphs in parallel and lays them out in code point order. Glyphs without
// ink are skipped. Nothing is returned if any glyph fails.
func (c *Compiler) CompileFont(ctx context.Context, src Source, runes []rune) (*layout.Font, error) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	jobs, errc := c.rasterize(ctx, src, runes)
	errcList = append(errcList, errc)

	results := make(chan glyphResult)
	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		errcList = append(errcList, c.encodeWorker(ctx, jobs, results, &wg))
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	lb := layout.NewBuilder()
	errcList = append(errcList, c.collect(lb, results))

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	fg, bg := src.Colors()
	f := lb.Font(src.Metrics(), bitmap.Quantize(fg), bitmap.Quantize(bg))
	c.logger.Printf("Output size: %d bytes, %d glyphs\n", len(f.Data), len(f.Glyphs))

	return f, nil
}
