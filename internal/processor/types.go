package processor

import (
	"cmp"
	"encoding/json"
	"regexp"
	"slices"
	"strings"

	"github.com/wgomg/kwextract/internal/utils"
)

// AnnotatedToken is one token as delivered by the external annotator.
type AnnotatedToken struct {
	Word  string `json:"word"`
	Lemma string `json:"lemma"`
	POS   string `json:"POS"`

	// first required field absent from the decoded JSON object
	missing string
}

func (t *AnnotatedToken) UnmarshalJSON(data []byte) error {
	var raw struct {
		Word  *string `json:"word"`
		Lemma *string `json:"lemma"`
		POS   *string `json:"POS"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = AnnotatedToken{}
	switch {
	case raw.Word == nil:
		t.missing = "word"
	case raw.Lemma == nil:
		t.missing = "lemma"
	case raw.POS == nil:
		t.missing = "POS"
	}
	if raw.Word != nil {
		t.Word = *raw.Word
	}
	if raw.Lemma != nil {
		t.Lemma = *raw.Lemma
	}
	if raw.POS != nil {
		t.POS = *raw.POS
	}
	return nil
}

type Sentence struct {
	Tokens []AnnotatedToken `json:"tokens"`
}

// Document is the parsed form of one text, sentences in original order.
type Document struct {
	Sentences []Sentence `json:"sentences"`
}

// Token is a kept (non-punctuation) token with its text position.
type Token struct {
	Word     string
	Lemma    string
	POS      string
	Position int
}

func (t Token) Form(useLemma bool) string {
	if useLemma {
		return t.Lemma
	}
	return t.Word
}

// Fragment is a run of kept tokens with no punctuation inside.
type Fragment []Token

type Segmentation struct {
	Fragments []Fragment
	// Index[p] is the token at text position p.
	Index     []Token
	NumTokens int
}

const keySeparator = "\x1f"

// PhraseKey identifies a phrase by its exact token sequence.
type PhraseKey string

func NewPhraseKey(words []string) PhraseKey {
	return PhraseKey(strings.Join(words, keySeparator))
}

func (k PhraseKey) Words() []string {
	if k == "" {
		return nil
	}
	return strings.Split(string(k), keySeparator)
}

func (k PhraseKey) Len() int {
	if k == "" {
		return 0
	}
	return strings.Count(string(k), keySeparator) + 1
}

// String renders the phrase with single spaces between its words.
func (k PhraseKey) String() string {
	return strings.ReplaceAll(string(k), keySeparator, " ")
}

// Occurrence is one emitted candidate phrase and its text position span.
type Occurrence struct {
	Key   PhraseKey
	First int
	Last  int
}

type Candidates struct {
	// Phrases in generation order; Phrases[slot] belongs to Occurrences[slot].
	Phrases     [][]string
	Slots       map[PhraseKey][]int
	Occurrences []Occurrence
}

func newCandidates() *Candidates {
	return &Candidates{
		Slots: make(map[PhraseKey][]int),
	}
}

func (c *Candidates) add(words []string, first, last int) {
	key := NewPhraseKey(words)
	slot := len(c.Occurrences)

	c.Phrases = append(c.Phrases, words)
	c.Slots[key] = append(c.Slots[key], slot)
	c.Occurrences = append(c.Occurrences, Occurrence{Key: key, First: first, Last: last})
}

// TokenCount is the number of tokens over all candidate phrases.
func (c *Candidates) TokenCount() int {
	n := 0
	for _, p := range c.Phrases {
		n += len(p)
	}
	return n
}

// ScoreMap maps phrase keys to scores and remembers the order in which keys
// were first set. That order is the tie-break for every sort.
type ScoreMap struct {
	keys   []PhraseKey
	scores map[PhraseKey]float64
}

func NewScoreMap() *ScoreMap {
	return &ScoreMap{scores: make(map[PhraseKey]float64)}
}

// Set stores the score. A key that is already present keeps its position.
func (m *ScoreMap) Set(key PhraseKey, score float64) {
	if _, ok := m.scores[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.scores[key] = score
}

func (m *ScoreMap) Get(key PhraseKey) (float64, bool) {
	score, ok := m.scores[key]
	return score, ok
}

func (m *ScoreMap) Len() int {
	return len(m.keys)
}

func (m *ScoreMap) Keys() []PhraseKey {
	return slices.Clone(m.keys)
}

// Merge copies every entry of other into m, overwriting scores of shared keys.
func (m *ScoreMap) Merge(other *ScoreMap) {
	for _, key := range other.keys {
		m.Set(key, other.scores[key])
	}
}

// Sorted returns the entries ordered by score. Equal scores keep insertion
// order.
func (m *ScoreMap) Sorted(descending bool) []ScoredPhrase {
	out := make([]ScoredPhrase, len(m.keys))
	for i, key := range m.keys {
		out[i] = ScoredPhrase{Key: key, Phrase: key.Words(), Score: m.scores[key]}
	}

	slices.SortStableFunc(out, func(a, b ScoredPhrase) int {
		if descending {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Score, b.Score)
	})
	return out
}

type ScoredPhrase struct {
	Key    PhraseKey `json:"-"`
	Phrase []string  `json:"phrase"`
	Score  float64   `json:"score"`
}

// Keyword is one entry of the final ranking. Lower Rank is better.
type Keyword struct {
	Phrase []string `json:"phrase"`
	Rank   float64  `json:"rank"`
}

func (k Keyword) String() string {
	return utils.RenderPhrase(k.Phrase)
}

type Result struct {
	Keywords  []Keyword      `json:"keywords"`
	Rake      []ScoredPhrase `json:"rake,omitempty"`
	TextRank  []ScoredPhrase `json:"textrank,omitempty"`
	NumTokens int            `json:"num_tokens"`
	// Skipped is set when the text had fewer tokens than the minimum length.
	Skipped bool `json:"skipped"`
}

type WordSet map[string]struct{}

func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s WordSet) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Resources are the static linguistic lists. They are loaded once and only
// read afterwards.
type Resources struct {
	Stopwords WordSet
	Postwords WordSet
	Patterns  []*regexp.Regexp
	Allowed   WordSet
}
