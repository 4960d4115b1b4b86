package confusables

import (
	"fmt"
	"io"
	"strings"

	"github.com/gregpoulos/panlex-error-correction/internal/textfile"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/internalerr"
)

// DefaultDelimiter separates the glyphs of one confusable record.
const DefaultDelimiter = ";;;"

// Record is one line of a confusable table: glyphs declared mutually
// confusable, in declaration order.
type Record []string

// Table maps a glyph to the glyphs it may be substituted with.
//
// The relation is built from the 2-combinations of every record and only the
// earlier glyph of a combination gains the later one:
//
//	a;;;b;;;c  ->  a: [b c], b: [c]
//
// Nothing is symmetrized and classes are never merged across records, so
// a;;;b plus b;;;c does not make a and c confusable.
//
// A Table is immutable once built and safe for concurrent reads.
type Table struct {
	// glyph -> substitutes, de-duplicated, in first-seen order
	subs map[string][]string

	stats Stats
}

// Stats describes the contents of a table and the records it was built from.
type Stats struct {
	Records   int // Records seen
	Malformed int // Records with fewer than two glyphs (contribute nothing)
	Keys      int // Glyphs with at least one substitute
	Pairs     int // Distinct (glyph, substitute) entries
}

// Build creates a table from records. Records with fewer than two glyphs
// yield no combinations and are only counted in Stats.Malformed.
func Build(records []Record) *Table {
	t := &Table{subs: make(map[string][]string)}
	seen := make(map[string]map[string]struct{})

	for _, rec := range records {
		t.stats.Records++
		if len(rec) < 2 {
			t.stats.Malformed++
			continue
		}
		for i := 0; i < len(rec)-1; i++ {
			x := rec[i]
			for _, y := range rec[i+1:] {
				set := seen[x]
				if set == nil {
					set = make(map[string]struct{})
					seen[x] = set
				}
				if _, dup := set[y]; dup {
					continue
				}
				set[y] = struct{}{}
				t.subs[x] = append(t.subs[x], y)
				t.stats.Pairs++
			}
		}
	}

	t.stats.Keys = len(t.subs)
	return t
}

// ParseRecords reads one record per line from r, splitting each line on
// delim. Line terminators are removed; glyphs are not trimmed.
func ParseRecords(r io.Reader, delim string) ([]Record, error) {
	if delim == "" {
		return nil, fmt.Errorf("parse confusables: empty delimiter: %w", internalerr.ErrInvalidInput)
	}
	lines, err := textfile.ReadLines(r)
	if err != nil {
		return nil, fmt.Errorf("parse confusables: %w", err)
	}
	return splitRecords(lines, delim), nil
}

// Load reads and builds the confusable table stored at path.
func Load(path, delim string) (*Table, error) {
	if delim == "" {
		return nil, fmt.Errorf("load confusables: empty delimiter: %w", internalerr.ErrInvalidInput)
	}
	lines, err := textfile.LoadLines(path)
	if err != nil {
		return nil, fmt.Errorf("load confusables: %w", err)
	}
	return Build(splitRecords(lines, delim)), nil
}

func splitRecords(lines []string, delim string) []Record {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		records = append(records, Record(strings.Split(line, delim)))
	}
	return records
}

// Substitutes returns the glyphs glyph may be replaced with, or nil.
// The returned slice is shared with the table and must not be modified.
func (t *Table) Substitutes(glyph string) []string {
	return t.subs[glyph]
}

// Has reports whether glyph has at least one substitute.
func (t *Table) Has(glyph string) bool {
	_, ok := t.subs[glyph]
	return ok
}

// Len returns the number of glyphs with substitutes.
func (t *Table) Len() int {
	return len(t.subs)
}

// Glyphs returns every glyph with substitutes, in no particular order.
func (t *Table) Glyphs() []string {
	out := make([]string, 0, len(t.subs))
	for g := range t.subs {
		out = append(out, g)
	}
	return out
}

// Stats returns build statistics.
func (t *Table) Stats() Stats {
	return t.stats
}

// Equal reports whether both tables have the same glyphs and, for each glyph,
// the same set of substitutes. Substitute order is ignored.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.subs) != len(other.subs) {
		return false
	}
	for glyph, subs := range t.subs {
		otherSubs, ok := other.subs[glyph]
		if !ok || len(subs) != len(otherSubs) {
			return false
		}
		set := make(map[string]struct{}, len(subs))
		for _, s := range subs {
			set[s] = struct{}{}
		}
		for _, s := range otherSubs {
			if _, ok := set[s]; !ok {
				return false
			}
		}
	}
	return true
}
