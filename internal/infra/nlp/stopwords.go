package nlp

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed stopwords
var stopwordFS embed.FS

func bundledStopwords(lang string) (map[string]struct{}, error) {
	data, err := stopwordFS.ReadFile("stopwords/" + lang)
	if err != nil {
		return nil, fmt.Errorf("no bundled stopwords for %q: %w", lang, err)
	}
	return parseStopwords(bytes.NewReader(data))
}

func loadStopwordsFile(path string) (map[string]struct{}, error) {
	// #nosec G304 -- path comes from operator configuration, not user input
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stopwords file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parseStopwords(f)
}

// parseStopwords reads one word per line. Words are lowercased; blank lines
// and '#' comments are skipped.
func parseStopwords(r io.Reader) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stopwords: %w", err)
	}
	return set, nil
}
