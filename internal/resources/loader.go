package resources

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/wgomg/kwextract/internal/config"
	"github.com/wgomg/kwextract/internal/processor"
)

// Load reads the four linguistic lists. A list whose path is empty comes
// from the copy embedded in the binary.
func Load(cfg *config.ResourcesConfig) (*processor.Resources, error) {
	stopwords, err := loadWordList(cfg.Stopwords, embeddedStopwords)
	if err != nil {
		return nil, fmt.Errorf("failed to load stopwords: %w", err)
	}

	postwords, err := loadWordList(cfg.Postwords, embeddedPostwords)
	if err != nil {
		return nil, fmt.Errorf("failed to load postwords: %w", err)
	}

	allowed, err := loadWordList(cfg.Allowed, embeddedAllowed)
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed connectors: %w", err)
	}

	patterns, err := loadPatternList(cfg.Patterns, embeddedPatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}

	return &processor.Resources{
		Stopwords: stopwords,
		Postwords: postwords,
		Patterns:  patterns,
		Allowed:   allowed,
	}, nil
}

func Default() (*processor.Resources, error) {
	return Load(&config.ResourcesConfig{})
}

func loadWordList(path, embedded string) (processor.WordSet, error) {
	if path == "" {
		return ParseWordList(strings.NewReader(embedded))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := ParseWordList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

func loadPatternList(path, embedded string) ([]*regexp.Regexp, error) {
	if path == "" {
		return ParsePatternList(strings.NewReader(embedded))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	patterns, err := ParsePatternList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return patterns, nil
}

// ParseWordList reads a word list. Lines whose first non-blank character is
// '#' are comments; every whitespace separated field on other lines is an
// entry.
func ParseWordList(r io.Reader) (processor.WordSet, error) {
	words := processor.NewWordSet()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if isComment(line) {
			continue
		}
		for _, w := range strings.Fields(line) {
			words[w] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return words, nil
}

// ParsePatternList reads one regular expression per line. Only the line
// break is removed, so leading and inner whitespace belong to the pattern.
// Blank lines and comments are skipped; duplicates are kept once.
func ParsePatternList(r io.Reader) ([]*regexp.Regexp, error) {
	var patterns []*regexp.Regexp
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if isComment(line) || strings.TrimSpace(line) == "" || seen[line] {
			continue
		}
		seen[line] = true

		re, err := regexp.Compile(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		patterns = append(patterns, re)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}
