package processor

import (
	"regexp"
	"slices"
)

// Postfilter drops phrases whose rendering matches a forbidden pattern,
// single-word phrases listed in postwords, and phrases longer than maxLength.
func Postfilter(ranked *ScoreMap, postwords WordSet, patterns []*regexp.Regexp, maxLength int) *ScoreMap {
	out := NewScoreMap()
	for _, key := range ranked.keys {
		if forbidden(key, patterns) || blacklisted(key, postwords) || tooLong(key, maxLength) {
			continue
		}
		out.Set(key, ranked.scores[key])
	}
	return out
}

func forbidden(key PhraseKey, patterns []*regexp.Regexp) bool {
	rendered := key.String()
	return slices.ContainsFunc(patterns, func(re *regexp.Regexp) bool {
		return re.MatchString(rendered)
	})
}

func blacklisted(key PhraseKey, postwords WordSet) bool {
	return key.Len() == 1 && postwords.Has(string(key))
}

func tooLong(key PhraseKey, maxLength int) bool {
	return key.Len() > maxLength
}

// TopRanked returns the best min(limit, totalTokens/ratio) entries, lowest
// rank first.
func TopRanked(ranked *ScoreMap, totalTokens, limit, ratio int) []Keyword {
	n := min(totalTokens/ratio, limit, ranked.Len())

	out := make([]Keyword, 0, n)
	for _, sp := range ranked.Sorted(false)[:n] {
		out = append(out, Keyword{Phrase: sp.Phrase, Rank: sp.Score})
	}
	return out
}
