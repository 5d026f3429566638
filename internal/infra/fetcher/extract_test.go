package fetcher_test

import (
	"errors"
	"strings"
	"testing"

	"web-summarizer/internal/infra/fetcher"
	"web-summarizer/internal/usecase/fetch"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Pets</title></head>
<body>
	<nav><a href="/">Home</a></nav>
	<article>
		<h1>All about pets</h1>
		<p>Cats are great.</p>
		<p>Dogs are <b>great</b> too.</p>
		<ul><li>Not a paragraph.</li></ul>
		<p>Cats and dogs are pets.</p>
	</article>
</body>
</html>`

func TestParagraphExtractor(t *testing.T) {
	got, err := fetcher.ParagraphExtractor{}.Extract([]byte(articleHTML), nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := "Cats are great. Dogs are great too. Cats and dogs are pets."
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestParagraphExtractor_NoParagraphs(t *testing.T) {
	got, err := fetcher.ParagraphExtractor{}.Extract([]byte("<html><body><h1>Title</h1><div>text</div></body></html>"), nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestParagraphExtractor_EmptyParagraphsStillJoined(t *testing.T) {
	got, err := fetcher.ParagraphExtractor{}.Extract([]byte("<p>One.</p><p></p><p>Two.</p>"), nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "One.  Two." {
		t.Errorf("Extract() = %q", got)
	}
}

func TestReadabilityExtractor(t *testing.T) {
	html := `<html><head><title>Test Article</title></head><body><article>
<h1>Test Article Title</h1>
<p>This is the first paragraph of the article content, long enough to be kept by the extraction heuristics.</p>
<p>This is the second paragraph with more important information about the topic at hand.</p>
<p>This is the third paragraph to ensure we have enough content for the algorithm.</p>
</article></body></html>`

	got, err := fetcher.ReadabilityExtractor{}.Extract([]byte(html), nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(got, "first paragraph") {
		t.Errorf("expected article text, got %q", got)
	}
}

func TestReadabilityExtractor_NoContent(t *testing.T) {
	html := `<!DOCTYPE html><html><head><title>Empty Page</title></head><body></body></html>`

	got, err := fetcher.ReadabilityExtractor{}.Extract([]byte(html), nil)
	// Readability either fails or finds nothing; both must surface cleanly.
	if err != nil {
		if !errors.Is(err, fetch.ErrReadabilityFailed) {
			t.Errorf("expected ErrReadabilityFailed, got %v", err)
		}
		return
	}
	if strings.TrimSpace(got) != "" {
		t.Errorf("expected no text, got %q", got)
	}
}

func TestNewExtractor(t *testing.T) {
	for _, name := range []string{"", fetcher.ExtractorParagraphs, fetcher.ExtractorReadability} {
		if _, err := fetcher.NewExtractor(name); err != nil {
			t.Errorf("NewExtractor(%q) error = %v", name, err)
		}
	}
	if _, err := fetcher.NewExtractor("mercury"); err == nil {
		t.Error("expected error for unknown extractor")
	}
}
