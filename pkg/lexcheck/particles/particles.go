package particles

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Counts tallies how often each word opens or closes a multi-word expression.
type Counts struct {
	total  int
	counts map[string]int
	order  []string // first-seen order
}

// Count scans exprs. Only expressions with more than one whitespace-separated
// word contribute; their first and last words are counted once each.
func Count(exprs []string) *Counts {
	c := &Counts{total: len(exprs), counts: make(map[string]int)}
	for _, expr := range exprs {
		words := strings.Fields(expr)
		if len(words) < 2 {
			continue
		}
		c.add(words[0])
		c.add(words[len(words)-1])
	}
	return c
}

func (c *Counts) add(word string) {
	if _, ok := c.counts[word]; !ok {
		c.order = append(c.order, word)
	}
	c.counts[word]++
}

// Total returns the number of expressions scanned.
func (c *Counts) Total() int {
	return c.total
}

// Get returns how often word was seen at a boundary.
func (c *Counts) Get(word string) int {
	return c.counts[word]
}

// Thresholds defines criteria for particle identification
type Thresholds struct {
	MaxLen  int     // particle is at most this many characters
	MinFreq float64 // and opens/closes more than this share of expressions
}

// DefaultThresholds returns the thresholds used by the flagging tool.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxLen:  5,
		MinFreq: 0.001,
	}
}

// Candidate is a boundary word frequent enough to be a particle.
type Candidate struct {
	Token string
	Count int
	Freq  float64 // Count / expressions scanned
}

// Suggest returns short, lowercase boundary words whose frequency exceeds
// th.MinFreq, in first-seen order.
func (c *Counts) Suggest(th Thresholds) []Candidate {
	if c.total == 0 {
		return nil
	}
	var out []Candidate
	for _, tok := range c.order {
		n := c.counts[tok]
		freq := float64(n) / float64(c.total)
		if utf8.RuneCountInString(tok) > th.MaxLen || !isLower(tok) || freq <= th.MinFreq {
			continue
		}
		out = append(out, Candidate{Token: tok, Count: n, Freq: freq})
	}
	return out
}

// Tokens returns the candidate words.
func Tokens(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Token
	}
	return out
}

// Match reports whether expr starts with "p " or ends with " p" for some
// particle p. The returned text is the matched part including the space.
// A leading match is preferred, taking particles in order; otherwise the
// longest trailing match wins.
func Match(expr string, particles []string) (string, bool) {
	for _, p := range particles {
		if strings.HasPrefix(expr, p+" ") {
			return p + " ", true
		}
	}
	best := ""
	for _, p := range particles {
		suffix := " " + p
		if strings.HasSuffix(expr, suffix) && len(suffix) > len(best) {
			best = suffix
		}
	}
	return best, best != ""
}

// isLower reports whether s has at least one cased letter and no upper or
// title case letters.
func isLower(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}
