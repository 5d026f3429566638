package summarize

import (
	"sort"
	"strings"
)

// FrequencyTable counts kept word tokens by their exact string.
type FrequencyTable map[string]int

// BuildFrequencyTable counts every token whose lowercase form is not a
// stopword. Tokens keep their original case, so "Cats" and "cats" are
// counted separately.
func BuildFrequencyTable(words []string, isStopword func(lower string) bool) FrequencyTable {
	table := make(FrequencyTable, len(words))
	for _, w := range words {
		if isStopword(strings.ToLower(w)) {
			continue
		}
		table[w]++
	}
	return table
}

// ScoreTable holds sentence scores in first-insertion order.
type ScoreTable struct {
	order  []string
	scores map[string]int
}

func newScoreTable() *ScoreTable {
	return &ScoreTable{scores: make(map[string]int)}
}

// Add accumulates score for sentence. A sentence seen for the first time is
// appended to the insertion order.
func (t *ScoreTable) Add(sentence string, score int) {
	if _, ok := t.scores[sentence]; !ok {
		t.order = append(t.order, sentence)
	}
	t.scores[sentence] += score
}

// Score returns the accumulated score of sentence and whether it was scored.
func (t *ScoreTable) Score(sentence string) (int, bool) {
	s, ok := t.scores[sentence]
	return s, ok
}

// Len returns the number of distinct scored sentences.
func (t *ScoreTable) Len() int {
	return len(t.order)
}

// Top returns up to n sentences with the highest scores, highest first.
// Equal scores keep their insertion order.
func (t *ScoreTable) Top(n int) []string {
	if n <= 0 || len(t.order) == 0 {
		return nil
	}
	ranked := make([]string, len(t.order))
	copy(ranked, t.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return t.scores[ranked[i]] > t.scores[ranked[j]]
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
