package nlp

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-summarizer/internal/domain/entity"
)

func loadEnglish(t *testing.T) *Resources {
	t.Helper()
	r, err := Load(Config{})
	require.NoError(t, err)
	return r
}

func TestLoad_Defaults(t *testing.T) {
	r := loadEnglish(t)

	assert.Equal(t, LanguageEnglish, r.Language())
	assert.Equal(t, 179, r.StopwordCount())
}

func TestLoad_UnsupportedLanguage(t *testing.T) {
	_, err := Load(Config{Language: "klingon"})

	require.Error(t, err)
	assert.Equal(t, entity.KindTokenization, entity.KindOf(err))
}

func TestLoad_StopwordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	content := "# custom list\nFoo\n\nbar\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	r, err := Load(Config{StopwordsFile: path})
	require.NoError(t, err)

	assert.Equal(t, 2, r.StopwordCount())
	assert.True(t, r.IsStopword("foo"))
	assert.True(t, r.IsStopword("bar"))
	assert.False(t, r.IsStopword("the"))
}

func TestLoad_StopwordsFileMissing(t *testing.T) {
	_, err := Load(Config{StopwordsFile: filepath.Join(t.TempDir(), "missing.txt")})

	require.Error(t, err)
	assert.Equal(t, entity.KindTokenization, entity.KindOf(err))
}

func TestLoad_StopwordsFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing\n"), 0o600))

	_, err := Load(Config{StopwordsFile: path})

	require.Error(t, err)
}

func TestIsStopword(t *testing.T) {
	r := loadEnglish(t)

	for _, w := range []string{"the", "and", "are", "too", "don't", "wouldn't", "i"} {
		assert.True(t, r.IsStopword(w), w)
	}
	for _, w := range []string{"cats", "The", "great", ".", ""} {
		assert.False(t, r.IsStopword(w), w)
	}
}

func TestSentences(t *testing.T) {
	r := loadEnglish(t)

	got := r.Sentences("Cats are great. Dogs are great too. Cats and dogs are pets.")

	assert.Equal(t, []string{
		"Cats are great.",
		"Dogs are great too.",
		"Cats and dogs are pets.",
	}, got)
}

func TestSentences_Empty(t *testing.T) {
	r := loadEnglish(t)

	assert.Empty(t, r.Sentences(""))
	assert.Empty(t, r.Sentences("   \n\t "))
}

func TestWords_SplitsTrailingPeriodPerSentence(t *testing.T) {
	r := loadEnglish(t)

	got := r.Words("Cats are great. Dogs are great too.")

	assert.Equal(t, []string{"Cats", "are", "great", ".", "Dogs", "are", "great", "too", "."}, got)
}

func TestWords_NoEmptyTokens(t *testing.T) {
	r := loadEnglish(t)

	for _, w := range r.Words("Hello,   world!  It's  a  test.") {
		assert.NotEmpty(t, strings.TrimSpace(w))
	}
}

func TestResources_ConcurrentUse(t *testing.T) {
	r := loadEnglish(t)
	text := "Cats are great. Dogs are great too. Cats and dogs are pets."

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, r.Sentences(text), 3)
		}()
	}
	wg.Wait()
}

func TestInitAndDefault(t *testing.T) {
	first, err := Init(Config{})
	require.NoError(t, err)

	second, err := Init(Config{Language: "klingon"})
	require.NoError(t, err, "later calls reuse the first result")
	assert.Same(t, first, second)

	def, err := Default()
	require.NoError(t, err)
	assert.Same(t, first, def)
}
