package processor

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postfilterInput() *ScoreMap {
	return scoreMapOf(
		[]string{"thing"}, 1.0,
		[]string{"thing", "theory"}, 2.0,
		[]string{"one", "two", "three"}, 3.0,
		[]string{"room", "101"}, 4.0,
		[]string{"garden"}, 5.0,
		[]string{"e", "mail"}, 6.0,
	)
}

func TestPostfilter(t *testing.T) {
	t.Parallel()

	patterns := []*regexp.Regexp{regexp.MustCompile(`\d`), regexp.MustCompile(`^e mail$`)}
	got := Postfilter(postfilterInput(), NewWordSet("thing"), patterns, 2)

	assert.Equal(t, []string{"thing theory", "garden"}, keysOf(got))

	rank, _ := got.Get(NewPhraseKey([]string{"garden"}))
	assert.Equal(t, 5.0, rank)
}

func TestPostfilter_OrderIndependent(t *testing.T) {
	t.Parallel()

	patterns := []*regexp.Regexp{regexp.MustCompile(`\d`)}
	postwords := NewWordSet("thing", "garden")
	maxLength := 2

	steps := map[string]func(*ScoreMap) *ScoreMap{
		"pattern":   func(m *ScoreMap) *ScoreMap { return Postfilter(m, nil, patterns, 1<<30) },
		"blacklist": func(m *ScoreMap) *ScoreMap { return Postfilter(m, postwords, nil, 1<<30) },
		"length":    func(m *ScoreMap) *ScoreMap { return Postfilter(m, nil, nil, maxLength) },
	}
	orders := [][]string{
		{"pattern", "blacklist", "length"},
		{"pattern", "length", "blacklist"},
		{"blacklist", "pattern", "length"},
		{"blacklist", "length", "pattern"},
		{"length", "pattern", "blacklist"},
		{"length", "blacklist", "pattern"},
	}

	want := keysOf(Postfilter(postfilterInput(), postwords, patterns, maxLength))
	for _, order := range orders {
		m := postfilterInput()
		for _, step := range order {
			m = steps[step](m)
		}
		assert.Equal(t, want, keysOf(m), order)
	}
}

func TestTopRanked(t *testing.T) {
	t.Parallel()

	ranked := scoreMapOf(
		[]string{"d"}, 7.0,
		[]string{"a"}, 2.0,
		[]string{"b"}, 3.0,
		[]string{"c"}, 2.0,
		[]string{"e"}, 9.0,
	)

	tests := []struct {
		name        string
		totalTokens int
		limit       int
		ratio       int
		want        []Keyword
	}{
		{
			name:        "length proportional",
			totalTokens: 6,
			limit:       10,
			ratio:       2,
			want: []Keyword{
				{Phrase: []string{"a"}, Rank: 2},
				{Phrase: []string{"c"}, Rank: 2},
				{Phrase: []string{"b"}, Rank: 3},
			},
		},
		{
			name:        "capped by limit",
			totalTokens: 100,
			limit:       2,
			ratio:       2,
			want: []Keyword{
				{Phrase: []string{"a"}, Rank: 2},
				{Phrase: []string{"c"}, Rank: 2},
			},
		},
		{
			name:        "capped by available phrases",
			totalTokens: 100,
			limit:       50,
			ratio:       1,
			want: []Keyword{
				{Phrase: []string{"a"}, Rank: 2},
				{Phrase: []string{"c"}, Rank: 2},
				{Phrase: []string{"b"}, Rank: 3},
				{Phrase: []string{"d"}, Rank: 7},
				{Phrase: []string{"e"}, Rank: 9},
			},
		},
		{
			name:        "too short text",
			totalTokens: 1,
			limit:       10,
			ratio:       2,
			want:        []Keyword{},
		},
		{
			name:        "zero limit",
			totalTokens: 10,
			limit:       0,
			ratio:       2,
			want:        []Keyword{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TopRanked(ranked, tt.totalTokens, tt.limit, tt.ratio)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), min(tt.limit, tt.totalTokens/tt.ratio))
		})
	}
}
