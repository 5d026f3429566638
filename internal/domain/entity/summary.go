// Package entity holds the request-scoped values of the summarization domain.
package entity

import "strings"

// DefaultSentenceCount is the number of sentences a summary holds when the
// caller does not ask for a specific count.
const DefaultSentenceCount = 3

// Summary is the result of ranking a document's sentences.
type Summary struct {
	// Sentences are the selected sentences, highest score first.
	Sentences []string
	// Stats describes the document the summary was built from.
	Stats SummaryStats
}

// SummaryStats carries diagnostics about one summarization run.
type SummaryStats struct {
	// Sentences is the number of sentences the tokenizer produced.
	Sentences int
	// Words is the number of word tokens before stopword filtering.
	Words int
	// Vocabulary is the number of distinct keys in the frequency table.
	Vocabulary int
	// Scored is the number of distinct sentences with at least one matched word.
	Scored int
}

// Text joins the selected sentences with a single space.
func (s Summary) Text() string {
	return strings.Join(s.Sentences, " ")
}
