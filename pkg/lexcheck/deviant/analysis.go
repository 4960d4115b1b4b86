// Package deviant flags lexicon expressions that look like data-entry
// mistakes: unusually long entries, entries containing rare or banned
// characters, entries starting or ending with a frequent particle, entries
// wrapped in quotation marks, and entries carrying HTML markup.
//
// Each analysis is an independent filter over the expression list returning
// Flags; Combine groups the flags per expression for reporting.
package deviant

import (
	"fmt"
	"strings"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/internalerr"
)

// Analysis is a set of enabled analyses.
type Analysis uint8

const (
	Length Analysis = 1 << iota
	Character
	Particle
	Quote
	Markup
)

// DefaultAnalyses is the set run when none is requested explicitly.
const DefaultAnalyses = "lcpq"

var analysisLetters = []struct {
	letter byte
	a      Analysis
	name   string
}{
	{'l', Length, "length"},
	{'c', Character, "character"},
	{'p', Particle, "particle"},
	{'q', Quote, "quote"},
	{'m', Markup, "markup"},
}

// ParseAnalyses converts letters such as "lcpq" into an Analysis set.
func ParseAnalyses(s string) (Analysis, error) {
	var set Analysis
	for i := 0; i < len(s); i++ {
		found := false
		for _, al := range analysisLetters {
			if s[i] == al.letter {
				set |= al.a
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("analysis %q: unknown letter %q: %w", s, s[i], internalerr.ErrInvalidInput)
		}
	}
	return set, nil
}

// Has reports whether a is enabled in the set.
func (s Analysis) Has(a Analysis) bool {
	return s&a != 0
}

// String lists the enabled analyses by name.
func (s Analysis) String() string {
	var names []string
	for _, al := range analysisLetters {
		if s.Has(al.a) {
			names = append(names, al.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
