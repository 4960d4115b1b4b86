package deviant

import (
	"fmt"
	"sort"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/internalerr"
)

// CharCount is the number of occurrences of one code point.
type CharCount struct {
	Rune  rune
	Count int
	Freq  float64 // Count / all characters
}

// CharFrequencies counts every code point across exprs, ordered by code point.
func CharFrequencies(exprs []string) []CharCount {
	counts := make(map[rune]int)
	total := 0
	for _, e := range exprs {
		for _, r := range e {
			counts[r]++
			total++
		}
	}
	out := make([]CharCount, 0, len(counts))
	for r, n := range counts {
		out = append(out, CharCount{Rune: r, Count: n, Freq: float64(n) / float64(total)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rune < out[j].Rune })
	return out
}

// IsRare reports whether the character occurs less often than maxFreq.
func (c CharCount) IsRare(maxFreq float64) bool {
	return c.Freq < maxFreq
}

// CharRange is an inclusive code point range.
type CharRange struct {
	Lo, Hi rune
}

// CharSet is a set of suspicious characters.
type CharSet struct {
	runes  map[rune]struct{}
	ranges []CharRange
}

// NewCharSet returns an empty set.
func NewCharSet() *CharSet {
	return &CharSet{runes: make(map[rune]struct{})}
}

// ParseCharSet builds a set from specs that are either one character or a
// "lo-hi" range such as "０-９".
func ParseCharSet(specs []string) (*CharSet, error) {
	set := NewCharSet()
	for _, spec := range specs {
		rs := []rune(spec)
		switch {
		case len(rs) == 1:
			set.Add(rs[0])
		case len(rs) == 3 && rs[1] == '-':
			if rs[0] > rs[2] {
				return nil, fmt.Errorf("character range %q: reversed bounds: %w", spec, internalerr.ErrInvalidInput)
			}
			set.AddRange(rs[0], rs[2])
		default:
			return nil, fmt.Errorf("character spec %q: want one character or lo-hi: %w", spec, internalerr.ErrInvalidInput)
		}
	}
	return set, nil
}

// Add inserts one character.
func (s *CharSet) Add(r rune) {
	s.runes[r] = struct{}{}
}

// AddRange inserts every character from lo to hi inclusive.
func (s *CharSet) AddRange(lo, hi rune) {
	s.ranges = append(s.ranges, CharRange{Lo: lo, Hi: hi})
}

// Union adds every character of other.
func (s *CharSet) Union(other *CharSet) {
	if other == nil {
		return
	}
	for r := range other.runes {
		s.runes[r] = struct{}{}
	}
	s.ranges = append(s.ranges, other.ranges...)
}

// AddRare inserts the characters of counts occurring less often than maxFreq.
func (s *CharSet) AddRare(counts []CharCount, maxFreq float64) int {
	added := 0
	for _, c := range counts {
		if c.IsRare(maxFreq) {
			s.Add(c.Rune)
			added++
		}
	}
	return added
}

// Contains reports whether r is in the set.
func (s *CharSet) Contains(r rune) bool {
	if _, ok := s.runes[r]; ok {
		return true
	}
	for _, rg := range s.ranges {
		if r >= rg.Lo && r <= rg.Hi {
			return true
		}
	}
	return false
}

// SeedyExpressions flags expressions containing a character from set. The
// reason is the first such character.
func SeedyExpressions(exprs []string, set *CharSet) []Flag {
	var flags []Flag
	for _, e := range exprs {
		for _, r := range e {
			if set.Contains(r) {
				flags = append(flags, Flag{Expression: e, Reason: string(r)})
				break
			}
		}
	}
	return flags
}
