package layout

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ParseRanges expands a comma-separated list of characters and inclusive
// character ranges, such as "0-9,A-Z,À-ÿ", into sorted unique code points. A
// range given backwards is swapped.
func ParseRanges(s string) ([]rune, error) {
	seen := make(map[rune]struct{})
	for _, item := range strings.Split(s, ",") {
		lo, size := utf8.DecodeRuneInString(item)
		if lo == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("layout: invalid range %q", item)
		}
		hi := lo

		if rest := item[size:]; rest != "" {
			if rest[0] != '-' || utf8.RuneCountInString(rest) != 2 {
				return nil, fmt.Errorf("layout: invalid range %q", item)
			}
			var n int
			hi, n = utf8.DecodeRuneInString(rest[1:])
			if hi == utf8.RuneError && n <= 1 {
				return nil, fmt.Errorf("layout: invalid range %q", item)
			}
		}

		if lo > hi {
			lo, hi = hi, lo
		}
		for r := lo; r <= hi; r++ {
			seen[r] = struct{}{}
		}
	}

	runes := make([]rune, 0, len(seen))
	for r := range seen {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	return runes, nil
}
