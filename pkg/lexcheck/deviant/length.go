package deviant

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"
)

// LengthStats summarizes expression lengths in characters.
type LengthStats struct {
	Mean   float64
	StdDev float64 // population standard deviation
	Cutoff float64 // Mean + sigmas*StdDev
}

// LongExpressions flags expressions longer than mean + sigmas standard
// deviations. The reason is LENGTH=<characters>.
func LongExpressions(exprs []string, sigmas float64) ([]Flag, LengthStats) {
	if len(exprs) == 0 {
		return nil, LengthStats{}
	}
	lengths := make([]int, len(exprs))
	var sum float64
	for i, e := range exprs {
		lengths[i] = utf8.RuneCountInString(e)
		sum += float64(lengths[i])
	}
	mean := sum / float64(len(exprs))
	var sq float64
	for _, l := range lengths {
		d := float64(l) - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(exprs)))

	stats := LengthStats{Mean: mean, StdDev: std, Cutoff: mean + sigmas*std}
	var flags []Flag
	for i, e := range exprs {
		if float64(lengths[i]) > stats.Cutoff {
			flags = append(flags, Flag{Expression: e, Reason: fmt.Sprintf("LENGTH=%d", lengths[i])})
		}
	}
	return flags, stats
}

// LengthBucket is one bar of a length histogram.
type LengthBucket struct {
	Length int
	Count  int
}

// LengthHistogram counts expressions per length, ordered by length.
func LengthHistogram(exprs []string) []LengthBucket {
	counts := make(map[int]int)
	for _, e := range exprs {
		counts[utf8.RuneCountInString(e)]++
	}
	out := make([]LengthBucket, 0, len(counts))
	for l, n := range counts {
		out = append(out, LengthBucket{Length: l, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Length < out[j].Length })
	return out
}
