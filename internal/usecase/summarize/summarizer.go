// Package summarize implements frequency-based extractive summarization and
// the service that summarizes a web page by URL.
package summarize

import (
	"strings"

	"web-summarizer/internal/domain/entity"
)

// TextAnalyzer provides the tokenizers and stopword list used for scoring.
// *nlp.Resources satisfies it.
type TextAnalyzer interface {
	Sentences(text string) []string
	Words(text string) []string
	IsStopword(lower string) bool
}

// Summarizer ranks sentences by the summed frequency of their non-stopword
// words and returns the best ones. It holds no mutable state and is safe
// for concurrent use.
type Summarizer struct {
	analyzer TextAnalyzer
}

// NewSummarizer returns a Summarizer backed by analyzer.
func NewSummarizer(analyzer TextAnalyzer) *Summarizer {
	return &Summarizer{analyzer: analyzer}
}

// Summarize returns the sentenceCount highest-scoring sentences of text.
// A sentenceCount of zero or less selects entity.DefaultSentenceCount.
//
// Scoring works as follows:
//  1. Words whose lowercase form is a stopword are dropped; the rest are
//     counted by their exact spelling.
//  2. Each sentence is lowercased and tokenized again; every token found in
//     the frequency table adds its count to the sentence score.
//  3. Sentences with no matching token are not scored and never selected.
//
// Because probes are lowercased while the table keeps the original case, a
// word that only ever appears capitalised contributes nothing.
//
// Text without any scoreable sentence yields an empty summary and no error.
func (s *Summarizer) Summarize(text string, sentenceCount int) (entity.Summary, error) {
	const op = "summarize"

	if strings.TrimSpace(text) == "" {
		return entity.Summary{}, entity.NewError(entity.KindEmptyInput, op, entity.ErrEmptyInput)
	}
	if s == nil || s.analyzer == nil {
		return entity.Summary{}, entity.NewError(entity.KindTokenization, op, entity.ErrResourcesNotLoaded)
	}
	if sentenceCount <= 0 {
		sentenceCount = entity.DefaultSentenceCount
	}

	sentences := s.analyzer.Sentences(text)
	words := s.analyzer.Words(text)
	freq := BuildFrequencyTable(words, s.analyzer.IsStopword)
	scores := s.scoreSentences(sentences, freq)

	return entity.Summary{
		Sentences: scores.Top(sentenceCount),
		Stats: entity.SummaryStats{
			Sentences:  len(sentences),
			Words:      len(words),
			Vocabulary: len(freq),
			Scored:     scores.Len(),
		},
	}, nil
}

func (s *Summarizer) scoreSentences(sentences []string, freq FrequencyTable) *ScoreTable {
	table := newScoreTable()
	for _, sentence := range sentences {
		score, matched := 0, false
		for _, w := range s.analyzer.Words(strings.ToLower(sentence)) {
			if n, ok := freq[w]; ok {
				score += n
				matched = true
			}
		}
		if matched {
			table.Add(sentence, score)
		}
	}
	return table
}
