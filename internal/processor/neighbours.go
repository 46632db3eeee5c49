package processor

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type MergeParams struct {
	Allowed WordSet
	// SkipConnectorFilter accepts any connector (testing mode).
	SkipConnectorFilter bool
	Threshold           int
	MaxGap              int
}

// MergeUnit is a pair of scored phrases seen next to each other with the same
// connector tokens in between.
type MergeUnit struct {
	Left      PhraseKey
	Right     PhraseKey
	Connector []string
	Count     int
}

func (u MergeUnit) Words() []string {
	words := u.Left.Words()
	words = append(words, u.Connector...)
	return append(words, u.Right.Words()...)
}

// ComplexCandidates finds scored phrases that recur adjacently, separated by
// 1..MaxGap connector tokens, and joins every unit seen at least Threshold
// times into one phrase scored count*(left+right). The returned units cover
// every adjacency counted, in discovery order.
func ComplexCandidates(scores *ScoreMap, index []Token, cands *Candidates, p MergeParams) (*ScoreMap, []MergeUnit) {
	lower := cases.Lower(language.Und)

	var units []MergeUnit
	seen := make(map[string]int)

	for _, key := range scores.Keys() {
		for _, slot := range cands.Slots[key] {
			if slot+1 >= len(cands.Occurrences) {
				continue
			}
			cur := cands.Occurrences[slot]
			next := cands.Occurrences[slot+1]

			if _, ok := scores.Get(next.Key); !ok {
				continue
			}

			diff := next.First - cur.Last
			if diff <= 1 || diff > p.MaxGap+1 {
				continue
			}

			connector := make([]string, 0, diff-1)
			for pos := cur.Last + 1; pos < next.First; pos++ {
				connector = append(connector, lower.String(index[pos].Word))
			}
			if !connectorAllowed(connector, p.Allowed, p.SkipConnectorFilter) {
				continue
			}

			id := unitID(key, next.Key, connector)
			if i, ok := seen[id]; ok {
				units[i].Count++
				continue
			}
			seen[id] = len(units)
			units = append(units, MergeUnit{Left: key, Right: next.Key, Connector: connector, Count: 1})
		}
	}

	out := NewScoreMap()
	for _, u := range units {
		if u.Count < p.Threshold {
			continue
		}
		left, _ := scores.Get(u.Left)
		right, _ := scores.Get(u.Right)
		out.Set(NewPhraseKey(u.Words()), float64(u.Count)*(left+right))
	}

	return out, units
}

func connectorAllowed(connector []string, allowed WordSet, skipFilter bool) bool {
	if skipFilter {
		return true
	}
	return !slices.ContainsFunc(connector, func(w string) bool {
		return !allowed.Has(w)
	})
}

func unitID(left, right PhraseKey, connector []string) string {
	return string(left) + "\x1e" + string(right) + "\x1e" + strings.Join(connector, keySeparator)
}
