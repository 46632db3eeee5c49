package batch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wgomg/kwextract/internal/metrics"
	"github.com/wgomg/kwextract/internal/processor"
	"github.com/wgomg/kwextract/internal/utils"
)

// Outcome pairs an entry with its result. Result is nil for entries that
// carry no parsed text.
type Outcome struct {
	Entry  *Entry
	Result *processor.Result
}

// Runner extracts keywords from many documents with a bounded number of
// goroutines. Documents share nothing but the extractor.
type Runner struct {
	extractor *processor.Extractor
	workers   int
	logger    *utils.Logger
}

func NewRunner(extractor *processor.Extractor, workers int, logger *utils.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = utils.NewDiscardLogger()
	}
	return &Runner{extractor: extractor, workers: workers, logger: logger}
}

// Run processes the entries and returns outcomes in input order. The first
// malformed entry cancels the remaining work.
func (r *Runner) Run(ctx context.Context, entries []*Entry) ([]Outcome, error) {
	outcomes := make([]Outcome, len(entries))

	err := r.each(ctx, len(entries), func(i int) error {
		entry := entries[i]
		outcomes[i].Entry = entry

		doc, ok, err := entry.Document()
		if err != nil {
			metrics.ObserveDocument(metrics.OutcomeFailed)
			return fmt.Errorf("entry %s: %w", entry.Label(i), err)
		}
		if !ok {
			metrics.ObserveDocument(metrics.OutcomePassthrough)
			r.logger.Warn("Entry %s has no %s field, passing through", entry.Label(i), nlpField)
			return nil
		}

		res, err := r.extract(doc)
		if err != nil {
			return fmt.Errorf("entry %s: %w", entry.Label(i), err)
		}
		outcomes[i].Result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return outcomes, nil
}

// RunDocuments processes already decoded documents and returns results in
// input order.
func (r *Runner) RunDocuments(ctx context.Context, docs []*processor.Document) ([]*processor.Result, error) {
	results := make([]*processor.Result, len(docs))

	err := r.each(ctx, len(docs), func(i int) error {
		res, err := r.extract(docs[i])
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *Runner) extract(doc *processor.Document) (*processor.Result, error) {
	start := time.Now()

	res, err := r.extractor.Extract(doc)
	if err != nil {
		metrics.ObserveDocument(metrics.OutcomeFailed)
		return nil, err
	}

	metrics.ObserveExtraction(len(res.Keywords), res.Skipped, time.Since(start))
	return res, nil
}

func (r *Runner) each(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
