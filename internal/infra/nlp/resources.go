// Package nlp provides the tokenizers and stopword lists used by the summarizer.
// Resources are loaded once at process start; a failure to load them is a
// startup failure, not a per-request one.
package nlp

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jdkato/prose/tokenize"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"

	"web-summarizer/internal/domain/entity"
)

// LanguageEnglish is the only language with bundled resources.
const LanguageEnglish = "english"

// Config selects which resources to load.
type Config struct {
	// Language of the tokenizer and stopword list. Default: "english".
	Language string `yaml:"language"`

	// StopwordsFile optionally replaces the bundled stopword list with a
	// newline-separated file. Lines starting with '#' are ignored.
	StopwordsFile string `yaml:"stopwords_file"`
}

// Resources bundles a sentence tokenizer, a word tokenizer and a stopword set.
// It is immutable after Load and safe for concurrent use.
type Resources struct {
	language      string
	sentTokenizer *sentences.DefaultSentenceTokenizer
	wordTokenizer *tokenize.TreebankWordTokenizer
	stopwords     map[string]struct{}
}

// Load builds a fresh Resources value.
func Load(cfg Config) (*Resources, error) {
	lang := strings.ToLower(strings.TrimSpace(cfg.Language))
	if lang == "" {
		lang = LanguageEnglish
	}
	if lang != LanguageEnglish {
		return nil, entity.NewError(entity.KindTokenization, "load nlp resources",
			fmt.Errorf("unsupported language %q", cfg.Language))
	}

	sentTokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, entity.NewError(entity.KindTokenization, "load sentence tokenizer", err)
	}

	var stop map[string]struct{}
	if cfg.StopwordsFile != "" {
		stop, err = loadStopwordsFile(cfg.StopwordsFile)
	} else {
		stop, err = bundledStopwords(lang)
	}
	if err != nil {
		return nil, entity.NewError(entity.KindTokenization, "load stopwords", err)
	}
	if len(stop) == 0 {
		return nil, entity.NewError(entity.KindTokenization, "load stopwords",
			fmt.Errorf("stopword list for %q is empty", lang))
	}

	return &Resources{
		language:      lang,
		sentTokenizer: sentTokenizer,
		wordTokenizer: tokenize.NewTreebankWordTokenizer(),
		stopwords:     stop,
	}, nil
}

// Language returns the language the resources were loaded for.
func (r *Resources) Language() string {
	return r.language
}

// Sentences splits text into trimmed, non-empty sentences in document order.
func (r *Resources) Sentences(text string) []string {
	tokens := r.sentTokenizer.Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, s := range tokens {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Words splits text into word and punctuation tokens in document order.
// The text is sentence-split first and each sentence is tokenized with
// Treebank conventions, so a period ending a sentence becomes its own token.
func (r *Resources) Words(text string) []string {
	var out []string
	for _, sentence := range r.Sentences(text) {
		for _, w := range r.wordTokenizer.Tokenize(sentence) {
			if w = strings.TrimSpace(w); w != "" {
				out = append(out, w)
			}
		}
	}
	return out
}

// IsStopword reports whether the already-lowercased word is a stopword.
func (r *Resources) IsStopword(lower string) bool {
	_, ok := r.stopwords[lower]
	return ok
}

// StopwordCount returns the size of the stopword set.
func (r *Resources) StopwordCount() int {
	return len(r.stopwords)
}

var (
	sharedOnce sync.Once
	shared     atomic.Pointer[Resources]
	sharedErr  error
)

// Init loads the process-wide resources. Only the first call does any work;
// later calls return the same result regardless of cfg.
func Init(cfg Config) (*Resources, error) {
	sharedOnce.Do(func() {
		var r *Resources
		r, sharedErr = Load(cfg)
		if sharedErr != nil {
			return
		}
		shared.Store(r)
		slog.Info("nlp resources loaded",
			slog.String("language", r.language),
			slog.Int("stopwords", r.StopwordCount()))
	})
	return shared.Load(), sharedErr
}

// Default returns the resources loaded by Init, or an error if Init has not
// completed successfully.
func Default() (*Resources, error) {
	if r := shared.Load(); r != nil {
		return r, nil
	}
	return nil, entity.NewError(entity.KindTokenization, "nlp resources", entity.ErrResourcesNotLoaded)
}
