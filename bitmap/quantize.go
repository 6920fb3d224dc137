package bitmap

// Band maps the half-open sample range [Min, Max) to a color code.
type Band struct {
	Min, Max int
	Code     Crumb
}

// Bands partitions [0, 256) in increasing sample order. More ink, i.e. a
// darker sample, gives a higher code.
var Bands = [...]Band{
	{Min: 0, Max: 43, Code: 3},
	{Min: 43, Max: 128, Code: 2},
	{Min: 128, Max: 213, Code: 1},
	{Min: 213, Max: 256, Code: 0},
}

var crumbTable = makeCrumbTable()

func makeCrumbTable() (t [256]Crumb) {
	for _, b := range Bands {
		for v := b.Min; v < b.Max; v++ {
			t[v] = b.Code
		}
	}
	return
}

// Quantize returns the color code for an 8-bit grayscale sample.
func Quantize(v uint8) Crumb {
	return crumbTable[v]
}

// QuantizeGrid returns the quantized samples of g in row-major order.
func QuantizeGrid(g *Grid) ([]Crumb, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	s := make([]Crumb, len(g.Pix))
	for i, v := range g.Pix {
		s[i] = crumbTable[v]
	}
	return s, nil
}
