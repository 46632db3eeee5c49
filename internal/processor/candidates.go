package processor

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const properNounTag = "NNP"

// GenerateCandidates partitions every fragment into candidate phrases.
//
// A token ends the running phrase when it is a stopword, when posFilter is
// non-empty and none of its patterns match the tag, or when it is an
// adjective directly after a noun. In the last case the adjective opens the
// next phrase. Stopwords never trigger the adjective rule.
func GenerateCandidates(fragments []Fragment, stopwords WordSet, useLemma bool, posFilter []*regexp.Regexp) *Candidates {
	c := newCandidates()
	lower := cases.Lower(language.Und)

	for _, frag := range fragments {
		prevPOS := "X"
		var phrase []string
		first, last := 0, 0

		for _, tok := range frag {
			form := tok.Form(useLemma)
			if tok.POS != properNounTag {
				form = lower.String(form)
			}

			stop := stopwords.Has(form)
			adjSkip := !stop && isNoun(prevPOS) && isAdjective(tok.POS)
			prevPOS = tok.POS

			if stop || adjSkip || !matchesPOS(posFilter, tok.POS) {
				if len(phrase) > 0 {
					c.add(phrase, first, last)
					phrase = nil
				}
				if adjSkip {
					phrase = []string{form}
					first, last = tok.Position, tok.Position
				}
				continue
			}

			if len(phrase) == 0 {
				first = tok.Position
			}
			phrase = append(phrase, form)
			last = tok.Position
		}

		if len(phrase) > 0 {
			c.add(phrase, first, last)
		}
	}

	return c
}

func isNoun(pos string) bool {
	return strings.HasPrefix(pos, "N")
}

func isAdjective(pos string) bool {
	return strings.HasPrefix(pos, "J")
}

func matchesPOS(filter []*regexp.Regexp, pos string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, re := range filter {
		if re.MatchString(pos) {
			return true
		}
	}
	return false
}
