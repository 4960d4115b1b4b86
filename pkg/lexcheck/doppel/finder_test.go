package doppel

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/confusables"
	"github.com/gregpoulos/panlex-error-correction/pkg/lexcheck/corpus"
)

func table(t *testing.T, lines ...string) *confusables.Table {
	t.Helper()
	records, err := confusables.ParseRecords(strings.NewReader(strings.Join(lines, "\n")), confusables.DefaultDelimiter)
	require.NoError(t, err)
	return confusables.Build(records)
}

func TestFindEmptyTable(t *testing.T) {
	c := corpus.New([]string{"cat", "cbt", "dog"})
	pairs := NewFinder(confusables.Build(nil)).Find(c)
	assert.Empty(t, pairs)
}

func TestFindExpressionWithoutMappedCharacters(t *testing.T) {
	c := corpus.New([]string{"cat", "cbt", "xyz"})
	f := NewFinder(table(t, "a;;;b"))

	assert.Empty(t, f.FindExpression("xyz", c))
	assert.Empty(t, f.FindExpression("", c))
}

func TestFindDirectional(t *testing.T) {
	c := corpus.New([]string{"cat", "cbt"})

	oneWay := NewFinder(table(t, "a;;;b")).Find(c)
	assert.Equal(t, []Pair{{"cat", "cbt"}}, oneWay)

	bothWays := NewFinder(table(t, "a;;;b", "b;;;a")).Find(c)
	assert.Equal(t, []Pair{{"cat", "cbt"}, {"cbt", "cat"}}, bothWays)
}

func TestFindThreeGlyphRecord(t *testing.T) {
	c := corpus.New([]string{"xay", "xby", "xcy"})
	pairs := NewFinder(table(t, "a;;;b;;;c")).Find(c)

	assert.ElementsMatch(t, []Pair{
		{"xay", "xby"},
		{"xay", "xcy"},
		{"xby", "xcy"},
	}, pairs)
	assert.NotContains(t, pairs, Pair{"xcy", "xay"})
	assert.NotContains(t, pairs, Pair{"xcy", "xby"})
	assert.NotContains(t, pairs, Pair{"xby", "xay"})
}

func TestFindMultiCharacterSubstitute(t *testing.T) {
	c := corpus.New([]string{"cat", "cbbt"})
	pairs := NewFinder(table(t, "a;;;bb")).Find(c)
	assert.Equal(t, []Pair{{"cat", "cbbt"}}, pairs)
}

func TestFindEmptySubstitute(t *testing.T) {
	// a;;; declares "a" confusable with the empty string, i.e. a deletion
	c := corpus.New([]string{"cat", "ct"})
	pairs := NewFinder(table(t, "a;;;")).Find(c)
	assert.Equal(t, []Pair{{"cat", "ct"}}, pairs)
}

func TestFindNonASCII(t *testing.T) {
	// Cyrillic о and Latin o
	c := corpus.New([]string{"dоg", "dog", "日本", "日木"})
	pairs := NewFinder(table(t, "о;;;o", "本;;;木")).Find(c)
	assert.Equal(t, []Pair{{"dоg", "dog"}, {"日本", "日木"}}, pairs)
}

func TestFindInvalidUTF8(t *testing.T) {
	c := corpus.New([]string{"a\xffb", "a\xfeb"})
	pairs := NewFinder(table(t, "\xff;;;\xfe")).Find(c)
	assert.Equal(t, []Pair{{"a\xffb", "a\xfeb"}}, pairs)
}

func TestFindSelfPairFallsOut(t *testing.T) {
	c := corpus.New([]string{"cat"})
	pairs := NewFinder(table(t, "a;;;a")).Find(c)
	assert.Equal(t, []Pair{{"cat", "cat"}}, pairs)
}

func TestFindKeepsDuplicates(t *testing.T) {
	// "aa" -> "ba" via position 0 and "ab" via position 1; duplicate corpus
	// entries are scanned twice.
	c := corpus.New([]string{"aa", "ba", "ab", "aa"})
	pairs := NewFinder(table(t, "a;;;b")).Find(c)

	want := []Pair{
		{"aa", "ba"}, {"aa", "ab"},
		{"aa", "ba"}, {"aa", "ab"},
	}
	assert.Equal(t, want, pairs)
}

func TestFindSameVariantFromTwoPositions(t *testing.T) {
	// each position of "ab" produces its own pair
	c := corpus.New([]string{"ab", "xxb", "axx"})
	pairs := NewFinder(table(t, "a;;;xx", "b;;;xx")).Find(c)
	assert.Equal(t, []Pair{{"ab", "xxb"}, {"ab", "axx"}}, pairs)
}

func TestFindWhitespaceIsSignificant(t *testing.T) {
	c := corpus.New([]string{" cat", " cbt", "cbt"})
	pairs := NewFinder(table(t, "a;;;b")).Find(c)
	assert.Equal(t, []Pair{{" cat", " cbt"}}, pairs)
}

func TestFindIsRepeatable(t *testing.T) {
	c := corpus.New(sampleCorpus())
	f := NewFinder(table(t, "a;;;b;;;c", "o;;;0", "l;;;1;;;I"))

	first := f.Find(c)
	second := f.Find(c)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestFindParallelMatchesSequential(t *testing.T) {
	c := corpus.New(sampleCorpus())
	tbl := table(t, "a;;;b;;;c", "o;;;0", "l;;;1;;;I")

	sequential := NewFinder(tbl).Find(c)
	for _, workers := range []int{2, 3, 7, 1000} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			parallel := NewFinder(tbl, WithWorkers(workers)).Find(c)
			assert.Equal(t, sequential, parallel)
		})
	}
}

func TestFindProgress(t *testing.T) {
	exprs := make([]string, 25)
	for i := range exprs {
		exprs[i] = fmt.Sprintf("expr-%d", i)
	}
	c := corpus.New(exprs)

	var calls []int
	NewFinder(table(t, "a;;;b"), WithProgress(10, func(n int) {
		calls = append(calls, n)
	})).Find(c)
	assert.Equal(t, []int{10, 20}, calls)
}

func TestFindProgressParallel(t *testing.T) {
	exprs := make([]string, 40)
	for i := range exprs {
		exprs[i] = fmt.Sprintf("e%d", i)
	}
	c := corpus.New(exprs)

	var calls []int
	NewFinder(table(t, "a;;;b"),
		WithWorkers(4),
		WithProgress(10, func(n int) { calls = append(calls, n) }),
	).Find(c)
	assert.Equal(t, []int{10, 20, 30, 40}, calls)
}

func TestFindEmptyCorpus(t *testing.T) {
	pairs := NewFinder(table(t, "a;;;b"), WithWorkers(4)).Find(corpus.New(nil))
	assert.Empty(t, pairs)
}

func TestOptions(t *testing.T) {
	o := DefaultOptions()
	WithWorkers(0)(&o)
	assert.Equal(t, 1, o.Workers)

	WithProgress(0, nil)(&o)
	assert.Equal(t, DefaultProgressInterval, o.ProgressInterval)
}

func TestSummarize(t *testing.T) {
	c := corpus.New([]string{"cat", "cbt", "dog"})
	pairs := []Pair{{"cat", "cbt"}}
	assert.Equal(t, Summary{Expressions: 3, Pairs: 1}, Summarize(c, pairs))
}

func TestWritePairs(t *testing.T) {
	var buf bytes.Buffer
	err := WritePairs(&buf, []Pair{{"cat", "cbt"}, {"xay", "xby"}}, confusables.DefaultDelimiter)
	require.NoError(t, err)
	assert.Equal(t, "cat;;;cbt\nxay;;;xby\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePairsError(t *testing.T) {
	err := WritePairs(failingWriter{}, []Pair{{"a", "b"}}, ";;;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func sampleCorpus() []string {
	return []string{
		"xay", "xby", "xcy", "foo", "f0o", "fo0", "lamp", "1amp", "Iamp",
		"cat", "cbt", "cct", "tool", "t0ol", "to0l", "bell", "be1l", "bel1",
		"", "a", "b", "c", "ab", "bb", "cb",
	}
}
