package deviant

import (
	"sort"
	"strings"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/particles"
)

// ReasonSeparator joins the reasons of an expression flagged more than once.
const ReasonSeparator = " && "

// Flag marks one expression with one reason.
type Flag struct {
	Expression string
	Reason     string
}

// Deviant is an expression with every reason it was flagged for.
type Deviant struct {
	Expression string
	Reasons    []string
}

// Format renders the expression, followed by its reasons when showWhy is set:
//
//	"foo bar (LENGTH=7 && quoted)"
func (d Deviant) Format(showWhy bool) string {
	if !showWhy {
		return d.Expression
	}
	return d.Expression + " (" + strings.Join(d.Reasons, ReasonSeparator) + ")"
}

// Combine merges flag lists into deviants ordered by expression. Reasons keep
// the order of the lists and, within a list, the order of the flags.
func Combine(lists ...[]Flag) []Deviant {
	var all []Flag
	for _, l := range lists {
		all = append(all, l...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Expression < all[j].Expression })

	var out []Deviant
	for _, f := range all {
		if n := len(out); n > 0 && out[n-1].Expression == f.Expression {
			out[n-1].Reasons = append(out[n-1].Reasons, f.Reason)
			continue
		}
		out = append(out, Deviant{Expression: f.Expression, Reasons: []string{f.Reason}})
	}
	return out
}

// Options holds the thresholds of every analysis.
type Options struct {
	Sigmas      float64
	MaxCharFreq float64
	BadChars    *CharSet // always suspicious, in addition to rare characters
	Particles   particles.Thresholds
	QuoteChars  []string
}

// Detector runs the enabled analyses over an expression list.
type Detector struct {
	opts Options
}

// NewDetector creates a detector. A nil BadChars means none.
func NewDetector(opts Options) *Detector {
	if opts.BadChars == nil {
		opts.BadChars = NewCharSet()
	}
	return &Detector{opts: opts}
}

// Report is the outcome of Run.
type Report struct {
	Deviants []Deviant

	// Flagged counts flags per analysis.
	Flagged map[Analysis]int

	Lengths   LengthStats           // set when Length ran
	Chars     []CharCount           // set when Character ran
	Particles []particles.Candidate // set when Particle ran
}

// Run executes the analyses in set and combines their flags.
func (d *Detector) Run(exprs []string, set Analysis) Report {
	rep := Report{Flagged: make(map[Analysis]int)}
	var lists [][]Flag

	if set.Has(Length) {
		flags, stats := LongExpressions(exprs, d.opts.Sigmas)
		rep.Lengths = stats
		rep.Flagged[Length] = len(flags)
		lists = append(lists, flags)
	}
	if set.Has(Character) {
		rep.Chars = CharFrequencies(exprs)
		suspicious := NewCharSet()
		suspicious.AddRare(rep.Chars, d.opts.MaxCharFreq)
		suspicious.Union(d.opts.BadChars)
		flags := SeedyExpressions(exprs, suspicious)
		rep.Flagged[Character] = len(flags)
		lists = append(lists, flags)
	}
	if set.Has(Particle) {
		rep.Particles = particles.Count(exprs).Suggest(d.opts.Particles)
		flags := ParticularExpressions(exprs, particles.Tokens(rep.Particles))
		rep.Flagged[Particle] = len(flags)
		lists = append(lists, flags)
	}
	if set.Has(Quote) {
		flags := QuotedExpressions(exprs, d.opts.QuoteChars)
		rep.Flagged[Quote] = len(flags)
		lists = append(lists, flags)
	}
	if set.Has(Markup) {
		flags := MarkupExpressions(exprs)
		rep.Flagged[Markup] = len(flags)
		lists = append(lists, flags)
	}

	rep.Deviants = Combine(lists...)
	return rep
}
