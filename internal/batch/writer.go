package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"strconv"
	"strings"

	"github.com/wgomg/kwextract/internal/processor"
	"github.com/wgomg/kwextract/internal/utils"
)

var separator = strings.Repeat("=", 24)

// PrintOptions selects the diagnostic blocks printed next to the fused
// ranking.
type PrintOptions struct {
	Rake     bool
	TextRank bool
}

func Write(w io.Writer, mode Mode, outcomes []Outcome, opts PrintOptions) error {
	bw := bufio.NewWriter(w)

	var err error
	switch mode {
	case ModeArray:
		err = writeArray(bw, outcomes, opts)
	case ModeOneline:
		err = writeOneline(bw, outcomes, opts)
	case ModeAnnotate:
		err = writeAnnotated(bw, outcomes)
	default:
		err = fmt.Errorf("unknown output mode %q", mode)
	}
	if err != nil {
		return err
	}

	return bw.Flush()
}

func writeArray(w io.Writer, outcomes []Outcome, opts PrintOptions) error {
	for _, o := range outcomes {
		if o.Result == nil {
			continue
		}
		if _, err := fmt.Fprintln(w, separator); err != nil {
			return err
		}
		if err := WriteBlock(w, o.Result, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeOneline(w io.Writer, outcomes []Outcome, opts PrintOptions) error {
	for _, o := range outcomes {
		if o.Result == nil {
			continue
		}
		if text, ok := o.Entry.Description(); ok {
			if _, err := fmt.Fprintf(w, "TEXT: %s\n", text); err != nil {
				return err
			}
		}
		if err := WriteBlock(w, o.Result, opts); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, separator); err != nil {
			return err
		}
	}
	return nil
}

// WriteBlock prints the ranked result of one document as tab separated
// phrase/value lines.
func WriteBlock(w io.Writer, res *processor.Result, opts PrintOptions) error {
	var b strings.Builder

	if res.Skipped {
		b.WriteString("===>TEXT LENGTH UNDER LIMIT: SKIPPED<===\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if opts.TextRank {
		b.WriteString("====>TEXTRANK<====\n")
		writeScored(&b, res.TextRank)
	}
	if opts.Rake {
		b.WriteString("=====>RAKE<=====\n")
		writeScored(&b, res.Rake)
	}

	b.WriteString("====>MERGED<====\n")
	for _, kw := range res.Keywords {
		fmt.Fprintf(&b, "%s\t%s\n", kw.String(), formatValue(kw.Rank))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeScored(b *strings.Builder, scored []processor.ScoredPhrase) {
	for _, sp := range scored {
		fmt.Fprintf(b, "%s\t%s\n", utils.RenderPhrase(sp.Phrase), formatValue(sp.Score))
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeAnnotated writes every entry back as an [id, entry] line. Entries
// with at least one keyword get a keywords field listing {"phrase": rank}
// objects, best first.
func writeAnnotated(w io.Writer, outcomes []Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, o := range outcomes {
		fields := o.Entry.Fields
		if o.Result != nil && len(o.Result.Keywords) > 0 {
			fields = maps.Clone(fields)

			kwlist := make([]map[string]float64, len(o.Result.Keywords))
			for i, kw := range o.Result.Keywords {
				kwlist[i] = map[string]float64{kw.String(): kw.Rank}
			}
			raw, err := json.Marshal(kwlist)
			if err != nil {
				return err
			}
			fields[keywordsField] = raw
		}

		id := o.Entry.ID
		if len(id) == 0 {
			id = json.RawMessage("null")
		}
		if err := enc.Encode([]any{id, fields}); err != nil {
			return err
		}
	}
	return nil
}
