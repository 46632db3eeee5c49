package processor

import (
	"github.com/wgomg/kwextract/internal/utils"
)

// RakeWordScores scores each word as degree/frequency over the candidate
// phrases. A phrase adds (non-numeric tokens - 1) to the degree of each of
// its words and every word adds its own frequency to its degree.
func RakeWordScores(phrases [][]string) map[string]float64 {
	freq := make(map[string]float64)
	degree := make(map[string]float64)

	for _, phrase := range phrases {
		d := float64(utils.CountNonNumeric(phrase) - 1)
		for _, word := range phrase {
			freq[word]++
			degree[word] += d
		}
	}

	scores := make(map[string]float64, len(freq))
	for word, f := range freq {
		scores[word] = (degree[word] + f) / f
	}
	return scores
}

// RakePhraseScores sums the word scores of each distinct phrase. Keys are
// stored in generation order.
func RakePhraseScores(phrases [][]string, wordScores map[string]float64) *ScoreMap {
	out := NewScoreMap()
	for _, phrase := range phrases {
		score := 0.0
		for _, word := range phrase {
			score += wordScores[word]
		}
		out.Set(NewPhraseKey(phrase), score)
	}
	return out
}
