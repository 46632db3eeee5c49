package processor

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wgomg/kwextract/internal/config"
)

// tok is a (word, lemma, POS) triple.
type tok [3]string

func docOf(sentences ...[]tok) *Document {
	doc := &Document{}
	for _, s := range sentences {
		var sentence Sentence
		for _, t := range s {
			sentence.Tokens = append(sentence.Tokens, AnnotatedToken{Word: t[0], Lemma: t[1], POS: t[2]})
		}
		doc.Sentences = append(doc.Sentences, sentence)
	}
	return doc
}

func fragmentsOf(t *testing.T, sentences ...[]tok) ([]Fragment, []Token) {
	t.Helper()

	seg, err := Segment(docOf(sentences...))
	require.NoError(t, err)
	return seg.Fragments, seg.Index
}

func anchored(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile("^(?:" + p + ")")
	}
	return out
}

func scoreMapOf(entries ...any) *ScoreMap {
	m := NewScoreMap()
	for i := 0; i < len(entries); i += 2 {
		m.Set(NewPhraseKey(entries[i].([]string)), entries[i+1].(float64))
	}
	return m
}

func keysOf(m *ScoreMap) []string {
	out := make([]string, 0, m.Len())
	for _, k := range m.Keys() {
		out = append(out, k.String())
	}
	return out
}

func testConfig() config.ExtractionConfig {
	return config.ExtractionConfig{
		Window:          2,
		Threshold:       2,
		TextRankRatio:   2,
		TopRankRatio:    2,
		KeywordLimit:    15,
		MinTextLength:   0,
		MaxPhraseLength: 5,
		MaxGap:          1,
	}
}

var foxSentence = []tok{
	{"large", "large", "JJ"},
	{"brown", "brown", "JJ"},
	{"fox", "fox", "NN"},
	{"jumps", "jump", "VBZ"},
	{"over", "over", "IN"},
	{"lazy", "lazy", "JJ"},
	{"dog", "dog", "NN"},
}
