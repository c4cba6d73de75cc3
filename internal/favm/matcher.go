package favm

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultThreshold is the highest per-token score still counted as a
	// match. 0 is a perfect match, 1 matches nothing.
	DefaultThreshold = 0.3

	// DefaultMinTokenLength drops query tokens shorter than this many runes.
	DefaultMinTokenLength = 2

	// SearchableContentField names the synthetic field built from a record's
	// formatted values.
	SearchableContentField = "searchableContent"
)

// WeightedField is one searchable field of a record. Weight is in (0, 1];
// higher weights rank matches in that field first.
type WeightedField[T any] struct {
	Name   string
	Weight float64
	Value  func(T) string
}

// Options tune a Matcher. A zero Threshold accepts exact substrings only;
// a negative one selects DefaultThreshold.
type Options struct {
	Threshold      float64
	MinTokenLength int
}

func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, MinTokenLength: DefaultMinTokenLength}
}

// Matcher ranks records against a free-text query with approximate
// substring matching.
type Matcher[T any] struct {
	fields []WeightedField[T]
	opts   Options
}

func NewMatcher[T any](fields []WeightedField[T], opts Options) *Matcher[T] {
	if opts.Threshold < 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.MinTokenLength <= 0 {
		opts.MinTokenLength = DefaultMinTokenLength
	}
	return &Matcher[T]{fields: fields, opts: opts}
}

// Tokens splits a query into lower-cased words, dropping the short ones.
func (m *Matcher[T]) Tokens(query string) []string {
	var out []string
	for _, f := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(f) >= m.opts.MinTokenLength {
			out = append(out, f)
		}
	}
	return out
}

type scored[T any] struct {
	rec   T
	score float64
}

// Match returns the records matching every usable query token, best first.
// A query without usable tokens returns records unchanged. The input is
// never modified.
func (m *Matcher[T]) Match(records []T, query string) []T {
	tokens := m.Tokens(query)
	if len(tokens) == 0 {
		return records
	}

	hits := make([]scored[T], 0, len(records))
	for _, rec := range records {
		if s, ok := m.score(rec, tokens); ok {
			hits = append(hits, scored[T]{rec: rec, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })

	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = h.rec
	}
	return out
}

// score returns the mean weighted score of the tokens and whether all of
// them matched some field.
func (m *Matcher[T]) score(rec T, tokens []string) (float64, bool) {
	values := make([][]rune, len(m.fields))
	for i, f := range m.fields {
		values[i] = []rune(strings.ToLower(f.Value(rec)))
	}

	total := 0.0
	for _, tok := range tokens {
		pattern := []rune(tok)
		best, matched := 1.0, false
		for i, f := range m.fields {
			s := float64(approxDistance(pattern, values[i])) / float64(len(pattern))
			if s > m.opts.Threshold {
				continue
			}
			matched = true
			if w := weighted(s, f.Weight); w < best {
				best = w
			}
		}
		if !matched {
			return 0, false
		}
		total += best
	}
	return total / float64(len(tokens)), true
}

// weighted maps a raw score to [0, 1] so that a perfect hit in a
// full-weight field scores 0 and lighter fields score higher.
func weighted(score, weight float64) float64 {
	if weight <= 0 || weight > 1 {
		weight = 1
	}
	return 1 - (1-score)*weight
}

// approxDistance is the smallest edit distance between pattern and any
// substring of text.
func approxDistance(pattern, text []rune) int {
	m := len(pattern)
	if m == 0 {
		return 0
	}
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}
	best := m
	for _, c := range text {
		cur[0] = 0
		for i := 1; i <= m; i++ {
			cost := 1
			if pattern[i-1] == c {
				cost = 0
			}
			cur[i] = min(prev[i-1]+cost, prev[i]+1, cur[i-1]+1)
		}
		if cur[m] < best {
			best = cur[m]
			if best == 0 {
				return 0
			}
		}
		prev, cur = cur, prev
	}
	return best
}
