package processor

import "unicode"

// Segment splits a document into fragments of kept tokens and assigns text
// positions. A token is kept when the first character of its POS tag is a
// letter. A dropped token or the end of a sentence closes the current
// fragment.
func Segment(doc *Document) (*Segmentation, error) {
	seg := &Segmentation{}
	var frag Fragment

	closeFragment := func() {
		if len(frag) > 0 {
			seg.Fragments = append(seg.Fragments, frag)
			frag = nil
		}
	}

	for si, sentence := range doc.Sentences {
		for ti, at := range sentence.Tokens {
			if at.missing != "" {
				return nil, &ValidationError{Sentence: si, Token: ti, Field: at.missing}
			}
			if at.POS == "" {
				return nil, &ValidationError{Sentence: si, Token: ti, Field: "POS"}
			}

			if !unicode.IsLetter([]rune(at.POS)[0]) {
				closeFragment()
				continue
			}

			tok := Token{
				Word:     at.Word,
				Lemma:    at.Lemma,
				POS:      at.POS,
				Position: seg.NumTokens,
			}
			frag = append(frag, tok)
			seg.Index = append(seg.Index, tok)
			seg.NumTokens++
		}
		closeFragment()
	}

	return seg, nil
}
