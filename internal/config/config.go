package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

type AppConfig struct {
	Env                Environment `envconfig:"ENV" default:"development"`
	LogLevel           string      `envconfig:"LOG_LEVEL"`
	LogFile            string      `envconfig:"LOG_FILE"`
	ServerPort         string      `envconfig:"SERVER_PORT" default:"8080"`
	RawBodyLog         bool        `envconfig:"RAW_BODY_LOG" default:"false"`
	HttpTimeoutSeconds int         `envconfig:"HTTP_TIMEOUT_SECONDS" default:"30"`
}

// ExtractionConfig is the fixed parameter record shared by every pipeline
// stage. It is built once and must not be mutated while documents are being
// processed.
type ExtractionConfig struct {
	Window              int      `envconfig:"WINDOW" default:"2" yaml:"window"`
	Threshold           int      `envconfig:"THRESHOLD" default:"2" yaml:"threshold"`
	POSPatterns         []string `envconfig:"POS_PATTERNS" yaml:"pos_patterns"`
	UseLemma            bool     `envconfig:"LEMMA" default:"false" yaml:"lemma"`
	TextRankRatio       int      `envconfig:"TEXTRANK_RATIO" default:"2" yaml:"textrank_ratio"`
	TopRankRatio        int      `envconfig:"TOPRANK_RATIO" default:"2" yaml:"toprank_ratio"`
	KeywordLimit        int      `envconfig:"KEYWORD_LIMIT" default:"15" yaml:"keyword_limit"`
	MinTextLength       int      `envconfig:"MIN_TEXT_LENGTH" default:"20" yaml:"min_text_length"`
	MaxPhraseLength     int      `envconfig:"MAX_PHRASE_LENGTH" default:"5" yaml:"max_phrase_length"`
	MaxGap              int      `envconfig:"MAX_GAP" default:"1" yaml:"max_gap"`
	SkipConnectorFilter bool     `envconfig:"SKIP_CONNECTOR_FILTER" default:"false" yaml:"skip_connector_filter"`
}

// ResourcesConfig points at the flat resource files. An empty path selects
// the list embedded in the binary.
type ResourcesConfig struct {
	Stopwords string `envconfig:"STOPWORDS"`
	Postwords string `envconfig:"POSTWORDS"`
	Patterns  string `envconfig:"PATTERNS"`
	Allowed   string `envconfig:"ALLOWED"`
}

type BatchConfig struct {
	Workers int `envconfig:"WORKERS"`
}

type Config struct {
	App        AppConfig        `envconfig:"APP"`
	Extraction ExtractionConfig `envconfig:"KW"`
	Resources  ResourcesConfig  `envconfig:"RESOURCES"`
	Batch      BatchConfig      `envconfig:"BATCH"`
}

// Load reads an optional .env file and then the process environment.
// Values already present in the environment win over the .env file.
func Load(envFile string) (*Config, error) {
	if err := loadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.App.Env = parseEnvironment(string(cfg.App.Env))
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = getLogLevel(cfg.App.Env)
	}
	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = calculateDefaultWorkerCount()
	}
	cfg.Extraction.POSPatterns = trimPatterns(cfg.Extraction.POSPatterns)

	return &cfg, nil
}

// LoadExtractionFile overlays the extraction section with the keys present
// in a YAML file. Keys absent from the file keep their current value.
func (c *Config) LoadExtractionFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &c.Extraction); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	c.Extraction.POSPatterns = trimPatterns(c.Extraction.POSPatterns)

	return nil
}

func (c *Config) Validate() error {
	if err := c.Extraction.Validate(); err != nil {
		return err
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("BATCH_WORKERS must be at least 1, got %d", c.Batch.Workers)
	}
	return nil
}

func (e *ExtractionConfig) Validate() error {
	switch {
	case e.Window < 1:
		return fmt.Errorf("window must be positive, got %d", e.Window)
	case e.Threshold < 1:
		return fmt.Errorf("threshold must be at least 1, got %d", e.Threshold)
	case e.TextRankRatio < 1:
		return fmt.Errorf("textrank ratio must be at least 1, got %d", e.TextRankRatio)
	case e.TopRankRatio < 1:
		return fmt.Errorf("toprank ratio must be at least 1, got %d", e.TopRankRatio)
	case e.KeywordLimit < 0:
		return fmt.Errorf("keyword limit must not be negative, got %d", e.KeywordLimit)
	case e.MinTextLength < 0:
		return fmt.Errorf("minimum text length must not be negative, got %d", e.MinTextLength)
	case e.MaxPhraseLength < 1:
		return fmt.Errorf("maximum phrase length must be at least 1, got %d", e.MaxPhraseLength)
	case e.MaxGap < 1:
		return fmt.Errorf("maximum gap must be at least 1, got %d", e.MaxGap)
	}
	return nil
}

// Clone returns a copy that can be changed without touching the receiver.
func (e ExtractionConfig) Clone() ExtractionConfig {
	e.POSPatterns = append([]string(nil), e.POSPatterns...)
	return e
}

func loadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return err
		}
		return nil
	}

	return godotenv.Load(path)
}

func parseEnvironment(envStr string) Environment {
	env := Environment(strings.ToLower(envStr))

	switch env {
	case Development, Production:
		return env
	default:
		return Development
	}
}

func getLogLevel(env Environment) string {
	if env == Production {
		return "info"
	}

	return "debug"
}

func calculateDefaultWorkerCount() int {
	// one worker per core, capped at 8
	return min(max(runtime.NumCPU(), 1), 8)
}

func trimPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
