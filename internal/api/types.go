package api

import (
	"github.com/wgomg/kwextract/internal/processor"
)

// ExtractOptions overrides extraction settings for one request. Absent
// fields keep the server configuration. An empty pos_patterns list turns the
// POS filter off.
type ExtractOptions struct {
	POSPatterns         []string `json:"pos_patterns,omitempty"`
	Lemma               *bool    `json:"lemma,omitempty"`
	Window              *int     `json:"window,omitempty"`
	Threshold           *int     `json:"threshold,omitempty"`
	SkipConnectorFilter *bool    `json:"skip_connector_filter,omitempty"`
	Rake                bool     `json:"rake,omitempty"`
	TextRank            bool     `json:"textrank,omitempty"`
}

func (o ExtractOptions) overridesConfig() bool {
	return o.POSPatterns != nil || o.Lemma != nil || o.Window != nil || o.Threshold != nil ||
		o.SkipConnectorFilter != nil
}

type ExtractRequest struct {
	Document *processor.Document `json:"document"`
	Options  ExtractOptions      `json:"options"`
}

type BatchRequest struct {
	Documents []*processor.Document `json:"documents"`
	Options   ExtractOptions        `json:"options"`
}

type ExtractResponse struct {
	Keywords  []processor.Keyword      `json:"keywords"`
	Rake      []processor.ScoredPhrase `json:"rake,omitempty"`
	TextRank  []processor.ScoredPhrase `json:"textrank,omitempty"`
	NumTokens int                      `json:"num_tokens"`
	Skipped   bool                     `json:"skipped"`
}

type BatchResponse struct {
	Total   int               `json:"total"`
	Skipped int               `json:"skipped"`
	Results []ExtractResponse `json:"results"`
}

func newExtractResponse(res *processor.Result, opts ExtractOptions) ExtractResponse {
	resp := ExtractResponse{
		Keywords:  res.Keywords,
		NumTokens: res.NumTokens,
		Skipped:   res.Skipped,
	}
	if opts.Rake {
		resp.Rake = res.Rake
	}
	if opts.TextRank {
		resp.TextRank = res.TextRank
	}
	return resp
}
