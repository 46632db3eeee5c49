package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wgomg/kwextract/internal/config"
	"github.com/wgomg/kwextract/internal/processor"
	"github.com/wgomg/kwextract/internal/resources"
	"github.com/wgomg/kwextract/internal/utils"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	envFile    string
	configFile string
	workers    int
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "kwextract",
		Short: "Keyword extraction from part-of-speech annotated text",
		Long: `kwextract ranks candidate phrases of annotated text with RAKE and TextRank
and fuses both rankings into one keyword list.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables (APP_*, KW_*, RESOURCES_*, BATCH_*)
  4. YAML extraction file (--config)
  5. Command line flags`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML file with extraction settings")
	cmd.PersistentFlags().IntVar(&flags.workers, "workers", 0, "Number of documents processed concurrently (default: number of CPUs)")

	cmd.AddCommand(extractCmd(&flags))
	cmd.AddCommand(serveCmd(&flags))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig applies the env file, the environment and the YAML overlay.
// Flag overrides are applied by the caller before validation.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.configFile != "" {
		if err := cfg.LoadExtractionFile(flags.configFile); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if flags.workers > 0 {
		cfg.Batch.Workers = flags.workers
	}

	return cfg, nil
}

// setup validates the final configuration and builds the logger and the
// word and pattern lists.
func setup(cfg *config.Config) (*utils.Logger, *processor.Resources, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := utils.NewAppLogger(&cfg.App)

	res, err := resources.Load(&cfg.Resources)
	if err != nil {
		return nil, nil, fmt.Errorf("load resources: %w", err)
	}

	logger.Debug(
		"Loaded %d stopwords, %d postwords, %d forbidden patterns, %d connector words",
		len(res.Stopwords), len(res.Postwords), len(res.Patterns), len(res.Allowed),
	)

	return logger, res, nil
}
