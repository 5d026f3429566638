package fetcher

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"web-summarizer/internal/usecase/fetch"
)

// Extractor turns an HTML document into plain text.
type Extractor interface {
	// Extract returns the text of html. pageURL is the final URL after
	// redirects and may be nil.
	Extract(html []byte, pageURL *url.URL) (string, error)
}

// NewExtractor returns the extractor registered under name.
func NewExtractor(name string) (Extractor, error) {
	switch name {
	case "", ExtractorParagraphs:
		return ParagraphExtractor{}, nil
	case ExtractorReadability:
		return ReadabilityExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", name)
	}
}

// ParagraphExtractor joins the text of every <p> element, in document order,
// with a single space. Text outside paragraphs (headings, lists, tables) is
// ignored. A page without paragraphs yields "".
type ParagraphExtractor struct{}

// Extract implements Extractor.
func (ParagraphExtractor) Extract(html []byte, _ *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("%w: %v", fetch.ErrExtractionFailed, err)
	}

	paragraphs := doc.Find("p")
	parts := make([]string, 0, paragraphs.Length())
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		parts = append(parts, p.Text())
	})

	return strings.Join(parts, " "), nil
}

// ReadabilityExtractor extracts the main article text with Mozilla's
// Readability algorithm.
type ReadabilityExtractor struct{}

// Extract implements Extractor.
func (ReadabilityExtractor) Extract(html []byte, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", fetch.ErrReadabilityFailed, err)
	}

	if article.TextContent != "" {
		return article.TextContent, nil
	}
	if article.Content == "" {
		return "", fmt.Errorf("%w: no readable content found", fetch.ErrReadabilityFailed)
	}

	// Content is HTML; strip it down to text.
	slog.Debug("readability returned no text content, using stripped content",
		slog.Int("content_length", len(article.Content)))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", fetch.ErrReadabilityFailed, err)
	}
	return strings.TrimSpace(doc.Text()), nil
}
