package bitmap

import "fmt"

// FieldWidths lists the run-length field widths in the order they are
// evaluated. An earlier width wins a tie with a later one.
var FieldWidths = [...]FieldWidth{2, 4, 6}

// Params describes the chosen encoding for a unit.
type Params struct {
	FieldWidth FieldWidth
	// Samples is the number of samples encoded.
	Samples int
	// Bits and Bytes are the encoded size, Bytes including any padding.
	Bits  int
	Bytes int
	// Ratio is the uncompressed size divided by the encoded size, or 0 if
	// nothing was encoded.
	Ratio float64
}

func (p Params) String() string {
	return fmt.Sprintf("%s, %d bytes, ratio %.2f", p.FieldWidth, p.Bytes, p.Ratio)
}

func uncompressedBits(n int) int {
	return n * crumbBits
}

func tokens(length int, f FieldWidth) int {
	limit := f.MaxRun()
	if n := (length + limit - 1) / limit; n > 1 {
		return n
	}
	return 1
}

// Cost returns the number of bits needed to encode the runs counted by h
// using field width f. Each token costs a color crumb plus f bits.
func Cost(h Histogram, f FieldWidth) int {
	bits := 0
	for length, count := range h {
		bits += tokens(length, f) * (crumbBits + int(f)) * count
	}
	return bits
}

func newParams(f FieldWidth, samples, bits int) Params {
	p := Params{
		FieldWidth: f,
		Samples:    samples,
		Bits:       bits,
		Bytes:      (bits + 7) >> 3,
	}
	if bits > 0 {
		p.Ratio = float64(uncompressedBits(samples)) / float64(bits)
	}
	return p
}

// Select returns the cheapest encoding for a stream of n samples whose runs
// are counted by h. A field width only replaces the current best if it is
// strictly smaller, starting from the uncompressed size.
func Select(h Histogram, n int) Params {
	best, bestBits := Uncompressed, uncompressedBits(n)
	for _, f := range FieldWidths {
		if bits := Cost(h, f); bits < bestBits {
			best, bestBits = f, bits
		}
	}
	return newParams(best, n, bestBits)
}
