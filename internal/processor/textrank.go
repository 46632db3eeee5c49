package processor

import (
	"cmp"
	"slices"
)

const (
	pageRankDamping   = 0.85
	pageRankMaxIter   = 100
	pageRankTolerance = 1e-5
)

type TextRankStats struct {
	Words          int
	Nodes          int
	Edges          int
	DuplicateEdges int
	Iterations     int
	Kept           int
}

// TextRank scores words by centrality in a co-occurrence graph built over
// the flattened phrase list, keeps the best len(words)/ratio of them and
// re-collapses the survivors into phrases along the original phrase
// boundaries. Each word links to the window-1 words that follow it.
func TextRank(phrases [][]string, window, ratio int) (*ScoreMap, TextRankStats) {
	var text []string
	for _, phrase := range phrases {
		text = append(text, phrase...)
	}

	stats := TextRankStats{Words: len(text)}

	cg := newCooccurrenceGraph()
	for _, word := range text {
		cg.addNode(word)
	}
	for i, source := range text {
		end := min(i+window, len(text))
		for j := i + 1; j < end; j++ {
			if source == text[j] {
				continue
			}
			if !cg.addEdge(source, text[j]) {
				stats.DuplicateEdges++
			}
		}
	}
	stats.Nodes = cg.numNodes()
	stats.Edges = cg.numEdges()

	scores, iterations := pageRank(cg.adjacency(), pageRankDamping, pageRankMaxIter, pageRankTolerance)
	stats.Iterations = iterations

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})

	keep := min(len(text)/ratio, len(order))
	kept := make(map[string]float64, keep)
	for _, id := range order[:keep] {
		kept[cg.words[id]] = scores[id]
	}
	stats.Kept = keep

	return collapse(phrases, kept), stats
}

// collapse joins surviving words that are contiguous inside a source phrase.
func collapse(phrases [][]string, kept map[string]float64) *ScoreMap {
	out := NewScoreMap()

	for _, phrase := range phrases {
		var buf []string
		score := 0.0

		for _, word := range phrase {
			if s, ok := kept[word]; ok {
				buf = append(buf, word)
				score += s
				continue
			}
			if len(buf) > 0 {
				out.Set(NewPhraseKey(buf), score)
				buf, score = nil, 0.0
			}
		}
		if len(buf) > 0 {
			out.Set(NewPhraseKey(buf), score)
		}
	}

	return out
}
