package deviant

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/particles"
)

const (
	reasonQuoted = "quoted"
	reasonMarkup = "markup"
)

// QuotedExpressions flags expressions that both begin and end with one of
// quotes. Each quote entry is one character; the two ends need not match.
func QuotedExpressions(exprs []string, quotes []string) []Flag {
	set := make(map[rune]struct{}, len(quotes))
	for _, q := range quotes {
		r, size := utf8.DecodeRuneInString(q)
		if size > 0 && size == len(q) {
			set[r] = struct{}{}
		}
	}

	var flags []Flag
	for _, e := range exprs {
		if utf8.RuneCountInString(e) < 2 {
			continue
		}
		first, _ := utf8.DecodeRuneInString(e)
		last, _ := utf8.DecodeLastRuneInString(e)
		_, okFirst := set[first]
		_, okLast := set[last]
		if okFirst && okLast {
			flags = append(flags, Flag{Expression: e, Reason: reasonQuoted})
		}
	}
	return flags
}

// ParticularExpressions flags expressions opening with "p " or closing with
// " p" for a particle p. The reason is the matched text.
func ParticularExpressions(exprs []string, ps []string) []Flag {
	if len(ps) == 0 {
		return nil
	}
	var flags []Flag
	for _, e := range exprs {
		if m, ok := particles.Match(e, ps); ok {
			flags = append(flags, Flag{Expression: e, Reason: m})
		}
	}
	return flags
}

// MarkupExpressions flags expressions containing HTML tags, comments or
// character references, which leak in when entries are scraped from pages.
func MarkupExpressions(exprs []string) []Flag {
	var flags []Flag
	for _, e := range exprs {
		if hasMarkup(e) {
			flags = append(flags, Flag{Expression: e, Reason: reasonMarkup})
		}
	}
	return flags
}

func hasMarkup(s string) bool {
	if !strings.ContainsAny(s, "<&") {
		return false
	}
	if html.UnescapeString(s) != s {
		return true
	}
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken,
			html.CommentToken, html.DoctypeToken:
			return true
		}
	}
}
