package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wgomg/kwextract/internal/batch"
	"github.com/wgomg/kwextract/internal/config"
	"github.com/wgomg/kwextract/internal/processor"
	"github.com/wgomg/kwextract/internal/utils"
)

type extractFlags struct {
	lemma     bool
	pos       []string
	window    int
	threshold int
	testing   bool
	rake      bool
	textrank  bool
	oneline   bool
	annotate  bool
}

func extractCmd(global *globalFlags) *cobra.Command {
	var flags extractFlags

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract keywords from a corpus file",
		Long: `Extract keywords from every entry of a corpus file, or stdin when no file is given.

By default the input is one JSON array of entries. With --oneline or --annotate
every line holds one [id, entry] pair. Entries are read from their
description_text_nlp field; entries without it are passed through.

--annotate writes every entry back with a keywords field. The other modes
print ranked phrase blocks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}
			applyExtractOverrides(cmd, cfg, &flags)

			return runExtract(cmd.Context(), cfg, &flags, args)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.lemma, "lemma", "l", false, "Build phrases from lemmas instead of surface words")
	f.StringSliceVarP(&flags.pos, "pos", "p", nil, "Comma separated POS tag patterns a candidate word must match")
	f.IntVarP(&flags.window, "window", "n", 0, "TextRank co-occurrence window (default 2)")
	f.IntVarP(&flags.threshold, "threshold", "c", 0, "Minimum recurrence of a complex phrase (default 2)")
	f.BoolVarP(&flags.testing, "testing", "v", false, "Accept any connector between merged phrases")
	f.BoolVarP(&flags.rake, "rake", "r", false, "Print the RAKE ranking")
	f.BoolVarP(&flags.textrank, "textrank", "t", false, "Print the TextRank ranking")
	f.BoolVarP(&flags.oneline, "oneline", "o", false, "Read one [id, entry] pair per line")
	f.BoolVarP(&flags.annotate, "annotate", "a", false, "Write entries back with their keywords")
	cmd.MarkFlagsMutuallyExclusive("oneline", "annotate")

	return cmd
}

// applyExtractOverrides copies the flags the user set onto the extraction
// config.
func applyExtractOverrides(cmd *cobra.Command, cfg *config.Config, flags *extractFlags) {
	f := cmd.Flags()

	if f.Changed("lemma") {
		cfg.Extraction.UseLemma = flags.lemma
	}
	if f.Changed("pos") {
		cfg.Extraction.POSPatterns = flags.pos
	}
	if f.Changed("window") {
		cfg.Extraction.Window = flags.window
	}
	if f.Changed("threshold") {
		cfg.Extraction.Threshold = flags.threshold
	}
	if f.Changed("testing") {
		cfg.Extraction.SkipConnectorFilter = flags.testing
	}
}

func (f *extractFlags) mode() batch.Mode {
	switch {
	case f.annotate:
		return batch.ModeAnnotate
	case f.oneline:
		return batch.ModeOneline
	default:
		return batch.ModeArray
	}
}

func runExtract(ctx context.Context, cfg *config.Config, flags *extractFlags, args []string) error {
	logger, res, err := setup(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var in io.Reader = os.Stdin
	source := "stdin"
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer file.Close()
		in = file
		source = args[0]
	}

	mode := flags.mode()
	entries, err := batch.Read(in, mode)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}
	logger.Info("Read %d entries from %s (%s mode)", len(entries), source, mode)

	extractor, err := processor.NewExtractor(cfg.Extraction, res, utils.NewPatternCache(), logger)
	if err != nil {
		return err
	}

	start := time.Now()
	runner := batch.NewRunner(extractor, cfg.Batch.Workers, logger)
	outcomes, err := runner.Run(ctx, entries)
	if err != nil {
		return err
	}
	logger.Info("Processed %d entries in %s", len(outcomes), time.Since(start))

	return batch.Write(os.Stdout, mode, outcomes, batch.PrintOptions{
		Rake:     flags.rake,
		TextRank: flags.textrank,
	})
}
