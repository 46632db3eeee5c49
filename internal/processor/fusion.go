package processor

// DenseRanks turns scores into ranks, best score first. Equal consecutive
// scores share the rank of the first of them, but the counter still advances
// once per entry, so [5 5 3] ranks as [1 1 3].
func DenseRanks(m *ScoreMap) map[PhraseKey]int {
	ranks := make(map[PhraseKey]int, m.Len())

	rank, prevRank := 1, 1
	prevScore := 0.0
	for _, sp := range m.Sorted(true) {
		if sp.Score == prevScore {
			ranks[sp.Key] = prevRank
		} else {
			ranks[sp.Key] = rank
			prevRank = rank
		}
		rank++
		prevScore = sp.Score
	}

	return ranks
}

// Fuse combines two score maps by rank. A key ranked by both gets the sum of
// its ranks. A key ranked by one gets its rank plus floor((n1+n2)/2). The
// result holds the keys of a followed by the keys only b has.
func Fuse(a, b *ScoreMap) *ScoreMap {
	shift := (a.Len() + b.Len()) / 2
	ra, rb := DenseRanks(a), DenseRanks(b)

	out := NewScoreMap()
	fuse := func(key PhraseKey) {
		rankA, inA := ra[key]
		rankB, inB := rb[key]

		switch {
		case inA && inB:
			out.Set(key, float64(rankA+rankB))
		case inA:
			out.Set(key, float64(rankA+shift))
		default:
			out.Set(key, float64(rankB+shift))
		}
	}

	for _, key := range a.keys {
		fuse(key)
	}
	for _, key := range b.keys {
		if _, ok := ra[key]; !ok {
			fuse(key)
		}
	}

	return out
}
