package bitmap

// Run is a sequence of identical adjacent color codes.
type Run struct {
	Color  Crumb
	Length int
}

// Histogram maps a run length to the number of runs with that length.
type Histogram map[int]int

// Runs splits s into maximal runs. Adjacent runs never share a color and the
// lengths sum to len(s).
func Runs(s []Crumb) []Run {
	var runs []Run
	for i := 0; i < len(s); {
		j := i + 1
		for j < len(s) && s[j] == s[i] {
			j++
		}
		runs = append(runs, Run{Color: s[i], Length: j - i})
		i = j
	}
	return runs
}

// NewHistogram counts the run lengths in runs, ignoring color.
func NewHistogram(runs []Run) Histogram {
	h := make(Histogram)
	for _, r := range runs {
		h[r.Length]++
	}
	return h
}

// CapRuns splits any run longer than f.MaxRun() into consecutive runs of the
// same color. The input is not modified.
func CapRuns(runs []Run, f FieldWidth) []Run {
	limit := f.MaxRun()
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		n := r.Length
		for n > limit {
			out = append(out, Run{Color: r.Color, Length: limit})
			n -= limit
		}
		if n > 0 {
			out = append(out, Run{Color: r.Color, Length: n})
		}
	}
	return out
}

// Expand is the inverse of Runs.
func Expand(runs []Run) []Crumb {
	var s []Crumb
	for _, r := range runs {
		for i := 0; i < r.Length; i++ {
			s = append(s, r.Color)
		}
	}
	return s
}
