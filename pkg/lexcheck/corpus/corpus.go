package corpus

import (
	"fmt"
	"io"

	"github.com/gregpoulos/panlex-error-correction/internal/textfile"
)

// Corpus is an ordered list of expressions plus a membership index over it.
// The order drives iteration (and therefore output order); duplicates are
// kept in the sequence and collapse in the index. Neither changes after
// construction, so a Corpus is safe for concurrent reads.
type Corpus struct {
	exprs []string
	index map[string]struct{}
}

// New builds a corpus from exprs. The slice is copied.
func New(exprs []string) *Corpus {
	cp := make([]string, len(exprs))
	copy(cp, exprs)
	return &Corpus{exprs: cp, index: indexOf(cp)}
}

// Read builds a corpus with one expression per line of r. Only the line
// terminator is removed; surrounding whitespace is part of the expression.
func Read(r io.Reader) (*Corpus, error) {
	lines, err := textfile.ReadLines(r)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return &Corpus{exprs: lines, index: indexOf(lines)}, nil
}

// Load reads the expression file at path.
func Load(path string) (*Corpus, error) {
	lines, err := textfile.LoadLines(path)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return &Corpus{exprs: lines, index: indexOf(lines)}, nil
}

func indexOf(exprs []string) map[string]struct{} {
	index := make(map[string]struct{}, len(exprs))
	for _, e := range exprs {
		index[e] = struct{}{}
	}
	return index
}

// Len returns the number of expressions, duplicates included.
func (c *Corpus) Len() int {
	return len(c.exprs)
}

// Unique returns the number of distinct expressions.
func (c *Corpus) Unique() int {
	return len(c.index)
}

// At returns the i-th expression.
func (c *Corpus) At(i int) string {
	return c.exprs[i]
}

// Expressions returns a copy of the ordered expressions.
func (c *Corpus) Expressions() []string {
	out := make([]string, len(c.exprs))
	copy(out, c.exprs)
	return out
}

// Contains reports whether expr occurs in the corpus verbatim.
func (c *Corpus) Contains(expr string) bool {
	_, ok := c.index[expr]
	return ok
}
