package processor

import (
	"regexp"

	"github.com/wgomg/kwextract/internal/config"
	"github.com/wgomg/kwextract/internal/utils"
)

// Extractor runs the keyword pipeline on one document at a time. It holds
// only read-only state and can be shared between goroutines.
type Extractor struct {
	cfg       config.ExtractionConfig
	res       *Resources
	posFilter []*regexp.Regexp
	logger    *utils.Logger
}

// NewExtractor validates the configuration and compiles the POS patterns.
// Patterns match from the start of the tag. A nil cache compiles without
// caching.
func NewExtractor(cfg config.ExtractionConfig, res *Resources, patterns *utils.PatternCache, logger *utils.Logger) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Field: "extraction config", Err: err}
	}
	if res == nil {
		res = &Resources{}
	}
	if patterns == nil {
		patterns = utils.NewPatternCache()
	}
	if logger == nil {
		logger = utils.NewDiscardLogger()
	}

	anchored := make([]string, len(cfg.POSPatterns))
	for i, p := range cfg.POSPatterns {
		anchored[i] = "^(?:" + p + ")"
	}
	posFilter, err := patterns.CompileAll(anchored)
	if err != nil {
		return nil, &ConfigError{Field: "POS pattern", Err: err}
	}

	return &Extractor{
		cfg:       cfg.Clone(),
		res:       res,
		posFilter: posFilter,
		logger:    logger,
	}, nil
}

func (e *Extractor) Config() config.ExtractionConfig {
	return e.cfg.Clone()
}

// Extract returns the fused keyword ranking of doc. Texts shorter than the
// minimum length yield an empty result with Skipped set.
func (e *Extractor) Extract(doc *Document) (*Result, error) {
	seg, err := Segment(doc)
	if err != nil {
		return nil, err
	}

	if ShouldSkip(seg.NumTokens, e.cfg.MinTextLength) {
		e.logger.Info("Text length under limit (%d < %d tokens), skipped", seg.NumTokens, e.cfg.MinTextLength)
		return &Result{Keywords: []Keyword{}, NumTokens: seg.NumTokens, Skipped: true}, nil
	}

	cands := GenerateCandidates(seg.Fragments, e.res.Stopwords, e.cfg.UseLemma, e.posFilter)
	e.logger.Debug("Generated %d candidate phrases from %d fragments", len(cands.Phrases), len(seg.Fragments))

	wordScores := RakeWordScores(cands.Phrases)
	rake := RakePhraseScores(cands.Phrases, wordScores)

	complexPhrases, units := ComplexCandidates(rake, seg.Index, cands, MergeParams{
		Allowed:             e.res.Allowed,
		SkipConnectorFilter: e.cfg.SkipConnectorFilter,
		Threshold:           e.cfg.Threshold,
		MaxGap:              e.cfg.MaxGap,
	})
	e.logger.Debug("Adjacency units: %d, complex candidates: %d", len(units), complexPhrases.Len())
	rake.Merge(complexPhrases)

	textrank, stats := TextRank(cands.Phrases, e.cfg.Window, e.cfg.TextRankRatio)
	e.logger.Debug(
		"TextRank graph: %d nodes, %d edges, %d duplicate edges ignored, %d iterations, kept %d of %d words",
		stats.Nodes, stats.Edges, stats.DuplicateEdges, stats.Iterations, stats.Kept, stats.Words,
	)

	fused := Fuse(rake, textrank)
	filtered := Postfilter(fused, e.res.Postwords, e.res.Patterns, e.cfg.MaxPhraseLength)
	keywords := TopRanked(filtered, cands.TokenCount(), e.cfg.KeywordLimit, e.cfg.TopRankRatio)
	e.logger.Debug("Fused %d phrases, %d after postfilter, returning %d", fused.Len(), filtered.Len(), len(keywords))

	return &Result{
		Keywords:  keywords,
		Rake:      rake.Sorted(true),
		TextRank:  textrank.Sorted(true),
		NumTokens: seg.NumTokens,
	}, nil
}
