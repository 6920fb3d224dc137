package bitmap

import (
	"io"

	"github.com/icza/bitio"
)

type encoder struct {
	w *bitio.Writer
}

func (e *encoder) writeCrumb(c Crumb) error {
	return e.w.WriteBits(uint64(c&0x3), crumbBits)
}

// Color crumb first, then the length most significant crumb first.
func (e *encoder) writeRun(r Run, f FieldWidth) error {
	if err := e.writeCrumb(r.Color); err != nil {
		return err
	}
	for shift := int(f) - crumbBits; shift >= 0; shift -= crumbBits {
		if err := e.writeCrumb(Crumb(r.Length >> uint(shift))); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encode(s []Crumb, f FieldWidth) error {
	if f == Uncompressed {
		for _, c := range s {
			if err := e.writeCrumb(c); err != nil {
				return err
			}
		}
	} else {
		for _, r := range CapRuns(Runs(s), f) {
			if err := e.writeRun(r, f); err != nil {
				return err
			}
		}
	}

	// Flushes any partial byte with the unused crumbs left as zero
	return e.w.Close()
}

// Pack writes the quantized stream s to w using field width f.
func Pack(w io.Writer, s []Crumb, f FieldWidth) error {
	if !f.valid() {
		return ErrFieldWidth
	}
	e := encoder{w: bitio.NewWriter(w)}
	return e.encode(s, f)
}

// Encode quantizes g, picks the smallest encoding for it and writes the
// packed result to w.
func Encode(w io.Writer, g *Grid) (Params, error) {
	s, err := QuantizeGrid(g)
	if err != nil {
		return Params{}, err
	}

	p := Select(NewHistogram(Runs(s)), len(s))
	if err := Pack(w, s, p.FieldWidth); err != nil {
		return Params{}, err
	}

	return p, nil
}
