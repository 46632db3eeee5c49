package processor

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wgomg/kwextract/internal/utils"
)

func foxResources() *Resources {
	return &Resources{
		Stopwords: NewWordSet("over"),
		Postwords: NewWordSet(),
		Allowed:   NewWordSet(),
	}
}

func TestExtract_EndToEnd(t *testing.T) {
	t.Parallel()

	ex, err := NewExtractor(testConfig(), foxResources(), nil, nil)
	require.NoError(t, err)

	got, err := ex.Extract(docOf(foxSentence))
	require.NoError(t, err)

	assert.False(t, got.Skipped)
	assert.Equal(t, 7, got.NumTokens)

	require.Len(t, got.Rake, 2)
	assert.Equal(t, []string{"large", "brown", "fox", "jumps"}, got.Rake[0].Phrase)
	assert.Equal(t, 16.0, got.Rake[0].Score)
	assert.Equal(t, []string{"lazy", "dog"}, got.Rake[1].Phrase)
	assert.Equal(t, 4.0, got.Rake[1].Score)

	require.Len(t, got.TextRank, 2)
	assert.Equal(t, []string{"brown", "fox"}, got.TextRank[0].Phrase)
	assert.Equal(t, []string{"lazy"}, got.TextRank[1].Phrase)

	assert.Equal(t, []Keyword{
		{Phrase: []string{"large", "brown", "fox", "jumps"}, Rank: 3},
		{Phrase: []string{"brown", "fox"}, Rank: 3},
		{Phrase: []string{"lazy", "dog"}, Rank: 4},
	}, got.Keywords)
}

func TestRakeWordScores_FoxAgainstJumps(t *testing.T) {
	t.Parallel()

	// without a POS filter the verb stays inside the first phrase and shares
	// its degree with the noun
	fragments, _ := fragmentsOf(t, foxSentence)
	cands := GenerateCandidates(fragments, foxResources().Stopwords, false, nil)
	require.Equal(t, [][]string{{"large", "brown", "fox", "jumps"}, {"lazy", "dog"}}, cands.Phrases)

	scores := RakeWordScores(cands.Phrases)
	assert.Equal(t, 4.0, scores["fox"])
	assert.Equal(t, scores["fox"], scores["jumps"])

	// once the verb stands alone its degree drops to zero and the noun wins
	scores = RakeWordScores([][]string{{"large", "brown", "fox"}, {"jumps"}, {"lazy", "dog"}})
	assert.Equal(t, 3.0, scores["fox"])
	assert.Equal(t, 1.0, scores["jumps"])
	assert.Greater(t, scores["fox"], scores["jumps"])
}

func TestExtract_EndToEndWithPOSFilter(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.POSPatterns = []string{"N", "J"}

	ex, err := NewExtractor(cfg, foxResources(), nil, nil)
	require.NoError(t, err)

	got, err := ex.Extract(docOf(foxSentence))
	require.NoError(t, err)

	require.Len(t, got.Rake, 2)
	assert.Equal(t, []string{"large", "brown", "fox"}, got.Rake[0].Phrase)
	assert.Equal(t, 9.0, got.Rake[0].Score)
	assert.Equal(t, []string{"lazy", "dog"}, got.Rake[1].Phrase)
}

func TestExtract_MinimumLengthSkip(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MinTextLength = 8

	ex, err := NewExtractor(cfg, foxResources(), nil, nil)
	require.NoError(t, err)

	got, err := ex.Extract(docOf(foxSentence))
	require.NoError(t, err)

	assert.True(t, got.Skipped)
	assert.Equal(t, 7, got.NumTokens)
	assert.Empty(t, got.Keywords)
	assert.NotNil(t, got.Keywords)
	assert.Nil(t, got.Rake)
	assert.Nil(t, got.TextRank)
}

func TestExtract_PostfilterApplies(t *testing.T) {
	t.Parallel()

	res := foxResources()
	res.Patterns = []*regexp.Regexp{regexp.MustCompile(`jumps`)}
	res.Postwords = NewWordSet("lazy")

	cfg := testConfig()
	cfg.KeywordLimit = 10
	cfg.TopRankRatio = 1

	ex, err := NewExtractor(cfg, res, nil, nil)
	require.NoError(t, err)

	got, err := ex.Extract(docOf(foxSentence))
	require.NoError(t, err)

	for _, kw := range got.Keywords {
		assert.NotContains(t, kw.String(), "jumps")
		assert.NotEqual(t, "lazy", kw.String())
	}
	assert.Len(t, got.Keywords, 2)
}

func TestExtract_ComplexCandidates(t *testing.T) {
	t.Parallel()

	sentence := []tok{
		{"cost", "cost", "NN"}, {"of", "of", "IN"}, {"living", "living", "NN"}, {"rises", "rise", "VBZ"},
	}
	res := &Resources{Stopwords: NewWordSet("of", "rises"), Allowed: NewWordSet("of")}

	ex, err := NewExtractor(testConfig(), res, nil, nil)
	require.NoError(t, err)

	got, err := ex.Extract(docOf(sentence, sentence, sentence))
	require.NoError(t, err)

	var phrases []string
	for _, sp := range got.Rake {
		phrases = append(phrases, strings.Join(sp.Phrase, " "))
	}
	assert.Contains(t, phrases, "cost of living")
	// 3 * (1 + 1)
	assert.Equal(t, "cost of living", strings.Join(got.Rake[0].Phrase, " "))
	assert.Equal(t, 6.0, got.Rake[0].Score)
}

func TestExtract_ValidationError(t *testing.T) {
	t.Parallel()

	ex, err := NewExtractor(testConfig(), foxResources(), nil, nil)
	require.NoError(t, err)

	_, err = ex.Extract(docOf([]tok{{"cat", "cat", "NN"}, {"sat", "sit", ""}}))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, 1, vErr.Token)
}

func TestNewExtractor_ConfigErrors(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.POSPatterns = []string{"("}
	_, err := NewExtractor(cfg, nil, nil, nil)

	var cErr *ConfigError
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, "POS pattern", cErr.Field)

	cfg = testConfig()
	cfg.Window = 0
	_, err = NewExtractor(cfg, nil, nil, nil)
	require.True(t, errors.As(err, &cErr))
}

func TestNewExtractor_UsesPatternCache(t *testing.T) {
	t.Parallel()

	cache := utils.NewPatternCache()
	cfg := testConfig()
	cfg.POSPatterns = []string{"N", "J"}

	_, err := NewExtractor(cfg, nil, cache, nil)
	require.NoError(t, err)
	_, err = NewExtractor(cfg, nil, cache, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, cache.Size())
	assert.InDelta(t, 0.5, cache.HitRate(), 1e-12)
}

func TestExtract_ConcurrentUse(t *testing.T) {
	t.Parallel()

	ex, err := NewExtractor(testConfig(), foxResources(), nil, nil)
	require.NoError(t, err)

	want, err := ex.Extract(docOf(foxSentence))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = ex.Extract(docOf(foxSentence))
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

var fuzzTags = []string{"NN", "JJ", "VBZ", "IN", "NNP", ".", "DT", "CD", "NNS", ","}

// fuzzDocument tags the whitespace-separated words of text with tags picked
// from the word length, and splits sentences on newlines.
func fuzzDocument(text string) *Document {
	doc := &Document{}
	for _, line := range strings.Split(text, "\n") {
		var sentence Sentence
		for _, w := range strings.Fields(line) {
			sentence.Tokens = append(sentence.Tokens, AnnotatedToken{
				Word:  w,
				Lemma: strings.ToLower(w),
				POS:   fuzzTags[len(w)%len(fuzzTags)],
			})
		}
		doc.Sentences = append(doc.Sentences, sentence)
	}
	return doc
}

func FuzzExtract(f *testing.F) {
	f.Add("large brown fox jumps over the lazy dog")
	f.Add("the cost of living\nthe cost of living rises\ncost of living")
	f.Add("")
	f.Add("a")
	f.Add("a a a a a a")
	f.Add("Paris is the capital of France , and Paris is big .")
	f.Add("3 apples and 2.5 pears cost 10 dollars")
	f.Add("\xff\xfe \x00")

	cfg := testConfig()
	cfg.Threshold = 1
	ex, err := NewExtractor(cfg, &Resources{
		Stopwords: NewWordSet("the", "of", "and", "is", "a"),
		Postwords: NewWordSet("big"),
		Patterns:  []*regexp.Regexp{regexp.MustCompile(`^\d+$`)},
		Allowed:   NewWordSet("of", "and"),
	}, nil, nil)
	require.NoError(f, err)

	f.Fuzz(func(t *testing.T, text string) {
		a, errA := ex.Extract(fuzzDocument(text))
		b, errB := ex.Extract(fuzzDocument(text))
		require.NoError(t, errA)
		require.NoError(t, errB)

		if !assert.Equal(t, a, b) {
			t.Errorf("non-deterministic result for %q", text)
		}
		assert.LessOrEqual(t, len(a.Keywords), cfg.KeywordLimit)
	})
}
