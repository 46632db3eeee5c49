package processor

import "fmt"

// ValidationError reports a malformed input token.
type ValidationError struct {
	Sentence int
	Token    int
	Field    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("sentence %d, token %d: missing or empty %s", e.Sentence, e.Token, e.Field)
}

// ConfigError reports an extraction setting the extractor cannot run with.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
