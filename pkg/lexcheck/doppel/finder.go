// Package doppel finds doppelganger pairs: two corpus expressions that differ
// by a single confusable substitution.
//
// Rather than comparing every expression with every other one, the finder
// substitutes each confusable character of an expression in turn and looks
// the result up in the corpus index, so a run costs
// O(characters in corpus x average substitutes per glyph) lookups.
package doppel

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/confusables"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/corpus"
)

// Pair is a detected doppelganger: Variant is Original with one character
// replaced by one of its confusables, and Variant is itself in the corpus.
type Pair struct {
	Original string
	Variant  string
}

// Format renders the pair as original<delim>variant.
func (p Pair) Format(delim string) string {
	return p.Original + delim + p.Variant
}

// Summary holds the counts reported at the end of a run.
type Summary struct {
	Expressions int
	Pairs       int
}

// Summarize counts expressions scanned and pairs found.
func Summarize(c *corpus.Corpus, pairs []Pair) Summary {
	return Summary{Expressions: c.Len(), Pairs: len(pairs)}
}

// Finder scans a corpus with a confusable table.
type Finder struct {
	table *confusables.Table
	opts  Options
}

// NewFinder creates a finder over table.
func NewFinder(table *confusables.Table, opts ...Option) *Finder {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Finder{table: table, opts: o}
}

// Find returns every doppelganger pair in c, ordered by expression (corpus
// order), then character position, then substitute. The same pair is
// reported once per substitution that produces it; nothing is de-duplicated.
func (f *Finder) Find(c *corpus.Corpus) []Pair {
	n := c.Len()
	workers := f.opts.Workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		var out []Pair
		for i := 0; i < n; i++ {
			out = f.appendExpression(out, c.At(i), c)
			f.report(i + 1)
		}
		return out
	}
	return f.findParallel(c, workers)
}

func (f *Finder) findParallel(c *corpus.Corpus, workers int) []Pair {
	n := c.Len()
	chunk := (n + workers - 1) / workers
	buffers := make([][]Pair, workers)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		processed int
	)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			var buf []Pair
			for i := lo; i < hi; i++ {
				buf = f.appendExpression(buf, c.At(i), c)
				if f.opts.Progress != nil {
					mu.Lock()
					processed++
					f.report(processed)
					mu.Unlock()
				}
			}
			buffers[w] = buf
		}(w, lo, hi)
	}
	wg.Wait()

	total := 0
	for _, buf := range buffers {
		total += len(buf)
	}
	out := make([]Pair, 0, total)
	for _, buf := range buffers {
		out = append(out, buf...)
	}
	return out
}

func (f *Finder) report(processed int) {
	if f.opts.Progress == nil || f.opts.ProgressInterval <= 0 {
		return
	}
	if processed%f.opts.ProgressInterval == 0 {
		f.opts.Progress(processed)
	}
}

// FindExpression returns the pairs whose original is expr.
func (f *Finder) FindExpression(expr string, c *corpus.Corpus) []Pair {
	return f.appendExpression(nil, expr, c)
}

// appendExpression walks expr one character at a time. A character is the
// bytes of one UTF-8 sequence; an invalid byte counts as a character of its
// own. Substitutes may be longer or shorter than what they replace.
func (f *Finder) appendExpression(out []Pair, expr string, c *corpus.Corpus) []Pair {
	for off := 0; off < len(expr); {
		_, size := utf8.DecodeRuneInString(expr[off:])
		end := off + size
		for _, sub := range f.table.Substitutes(expr[off:end]) {
			variant := expr[:off] + sub + expr[end:]
			if c.Contains(variant) {
				out = append(out, Pair{Original: expr, Variant: variant})
			}
		}
		off = end
	}
	return out
}

// WritePairs writes one formatted pair per line.
func WritePairs(w io.Writer, pairs []Pair, delim string) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		if _, err := bw.WriteString(p.Format(delim)); err != nil {
			return fmt.Errorf("write pairs: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write pairs: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write pairs: %w", err)
	}
	return nil
}
