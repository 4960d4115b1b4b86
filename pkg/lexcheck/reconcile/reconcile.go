// Package reconcile turns a list of bad expressions into correction rows for
// the expression database. Each bad expression is matched to the dump entry
// it folds to once transliterated to ASCII, and the pair is scored by the
// ratio of their denotation counts.
package reconcile

import (
	"fmt"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mozillazg/go-unidecode"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/dump"
)

// Fold transliterates s to ASCII: "naïve", "Łódź" and "straße" fold to
// "naive", "Lodz" and "strasse". Combining marks are dropped first so
// decomposed and precomposed spellings share a key.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return unidecode.Unidecode(s)
}

// Options are the constant columns of every row.
type Options struct {
	LanguageVariety string
	Reason          string
	Null            string

	// OnEntry is called for every dump entry indexed.
	OnEntry func(dump.Entry)
	// OnRow is called for every row emitted.
	OnRow func(Row)
}

// Row is one correction record: the expression with id Bad should read Good.
type Row struct {
	LanguageVariety string
	Bad             string
	Good            string
	Score           string
	Reason          string
	Comment         string
}

// Fields returns the columns in output order.
func (r Row) Fields() []string {
	return []string{r.LanguageVariety, r.Bad, r.Good, r.Score, r.Reason, r.Comment}
}

// Result is the outcome of Run.
type Result struct {
	Rows []Row
	// Unmatched lists bad expressions whose folded form has no good entry.
	Unmatched []string
	// Indexed counts distinct folded keys of good entries.
	Indexed int
	// Skipped counts rows dropped because a count was zero.
	Skipped int
}

// Reconciler pairs bad expressions with their folded counterparts.
type Reconciler struct {
	opts Options
}

// New creates a reconciler.
func New(opts Options) *Reconciler {
	return &Reconciler{opts: opts}
}

// Run indexes entries and emits rows for every bad expression, in the order
// of bad. When one side is used at least as often as the other, the row
// proposes replacing the other with it; equal counts yield both rows.
func (r *Reconciler) Run(entries []dump.Entry, bad []string) Result {
	badSet := make(map[string]struct{}, len(bad))
	for _, b := range bad {
		badSet[b] = struct{}{}
	}

	good := make(map[string]dump.Entry)
	baddies := make(map[string]dump.Entry)
	for _, e := range entries {
		if _, ok := badSet[e.Text]; ok {
			baddies[e.Text] = e
		} else {
			good[Fold(e.Text)] = e
		}
		if r.opts.OnEntry != nil {
			r.opts.OnEntry(e)
		}
	}

	res := Result{Indexed: len(good)}
	for _, b := range bad {
		newer, ok := good[Fold(b)]
		if !ok {
			res.Unmatched = append(res.Unmatched, b)
			continue
		}
		older, ok := baddies[b]
		if !ok {
			continue
		}
		if newer.Count >= older.Count {
			res.add(r.row(older.ID, newer.Text, newer.Count, older.Count))
		}
		if older.Count >= newer.Count {
			res.add(r.row(newer.ID, older.Text, older.Count, newer.Count))
		}
	}
	return res
}

func (res *Result) add(row Row, ok bool) {
	if !ok {
		res.Skipped++
		return
	}
	res.Rows = append(res.Rows, row)
}

func (r *Reconciler) row(badID, goodText string, num, den int) (Row, bool) {
	if den == 0 {
		return Row{}, false
	}
	row := Row{
		LanguageVariety: r.opts.LanguageVariety,
		Bad:             badID,
		Good:            goodText,
		Score:           fmt.Sprintf("%.2f", float64(num)/float64(den)),
		Reason:          r.opts.Reason,
		Comment:         r.opts.Null,
	}
	if r.opts.OnRow != nil {
		r.opts.OnRow(row)
	}
	return row, true
}
