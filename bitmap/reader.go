package bitmap

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

var (
	errNotEnough = errors.New("bitmap: not enough data")
	errTooMuch   = errors.New("bitmap: run overflows unit")
	errBadRun    = errors.New("bitmap: zero length run")
)

type decoder struct {
	r *bitio.Reader
	s []Crumb
}

func (d *decoder) readCrumb() (Crumb, error) {
	v, err := d.r.ReadBits(crumbBits)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, errNotEnough
		}
		return 0, err
	}
	return Crumb(v), nil
}

func (d *decoder) readRun(f FieldWidth) (Run, error) {
	var r Run
	c, err := d.readCrumb()
	if err != nil {
		return r, err
	}
	r.Color = c
	for i := 0; i < int(f)/crumbBits; i++ {
		c, err := d.readCrumb()
		if err != nil {
			return r, err
		}
		r.Length = r.Length<<crumbBits | int(c)
	}
	if r.Length == 0 {
		return r, errBadRun
	}
	return r, nil
}

func (d *decoder) decode(n int, f FieldWidth) error {
	d.s = make([]Crumb, 0, n)

	if f == Uncompressed {
		for len(d.s) < n {
			c, err := d.readCrumb()
			if err != nil {
				return err
			}
			d.s = append(d.s, c)
		}
		return nil
	}

	for len(d.s) < n {
		r, err := d.readRun(f)
		if err != nil {
			return err
		}
		if len(d.s)+r.Length > n {
			return errTooMuch
		}
		for i := 0; i < r.Length; i++ {
			d.s = append(d.s, r.Color)
		}
	}
	return nil
}

// Decode reads n quantized samples packed with field width f from r. Any
// padding after the last sample is left unread.
func Decode(r io.Reader, n int, f FieldWidth) ([]Crumb, error) {
	if !f.valid() {
		return nil, ErrFieldWidth
	}
	d := decoder{r: bitio.NewReader(r)}
	if err := d.decode(n, f); err != nil {
		return nil, err
	}
	return d.s, nil
}
