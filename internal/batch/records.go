package batch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/unicode/norm"

	"github.com/wgomg/kwextract/internal/processor"
)

const (
	nlpField         = "description_text_nlp"
	descriptionField = "description"
	keywordsField    = "keywords"

	maxLineBytes = 64 << 20
)

type Mode string

const (
	// ModeArray reads one JSON array of entries.
	ModeArray Mode = "array"
	// ModeOneline reads one [id, entry] pair per line and prints ranked blocks.
	ModeOneline Mode = "oneline"
	// ModeAnnotate reads [id, entry] pairs and writes them back with keywords.
	ModeAnnotate Mode = "annotate"
)

// Entry is one corpus record. All fields are kept so an entry can be written
// back unchanged apart from the keywords.
type Entry struct {
	ID     json.RawMessage
	Fields map[string]json.RawMessage
}

// Document decodes the parsed text of the entry. ok is false when the entry
// carries no parsed text.
func (e *Entry) Document() (doc *processor.Document, ok bool, err error) {
	raw, ok := e.Fields[nlpField]
	if !ok {
		return nil, false, nil
	}

	doc, err = DecodeDocument(raw)
	if err != nil {
		return nil, true, err
	}
	return doc, true, nil
}

func (e *Entry) Description() (string, bool) {
	raw, ok := e.Fields[descriptionField]
	if !ok {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Label identifies the entry in logs and errors.
func (e *Entry) Label(index int) string {
	if len(e.ID) > 0 {
		return string(e.ID)
	}
	return fmt.Sprintf("#%d", index)
}

// DecodeDocument parses a {"sentences":[{"tokens":[...]}]} object and puts
// word and lemma strings in NFC form.
func DecodeDocument(raw []byte) (*processor.Document, error) {
	var doc processor.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid parsed text: %w", err)
	}
	NormalizeDocument(&doc)
	return &doc, nil
}

func NormalizeDocument(doc *processor.Document) {
	for si := range doc.Sentences {
		tokens := doc.Sentences[si].Tokens
		for ti := range tokens {
			tokens[ti].Word = norm.NFC.String(tokens[ti].Word)
			tokens[ti].Lemma = norm.NFC.String(tokens[ti].Lemma)
		}
	}
}

func Read(r io.Reader, mode Mode) ([]*Entry, error) {
	switch mode {
	case ModeArray:
		return ReadArray(r)
	case ModeOneline, ModeAnnotate:
		return ReadPairs(r)
	default:
		return nil, fmt.Errorf("unknown input mode %q", mode)
	}
}

// ReadArray reads a JSON array of entry objects.
func ReadArray(r io.Reader) ([]*Entry, error) {
	var raw []map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid entry array: %w", err)
	}

	entries := make([]*Entry, len(raw))
	for i, fields := range raw {
		entries[i] = &Entry{Fields: fields}
	}
	return entries, nil
}

// ReadPairs reads one [id, entry] JSON pair per line. Blank lines are
// ignored.
func ReadPairs(r io.Reader) ([]*Entry, error) {
	var entries []*Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		entry, err := decodePair(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func decodePair(line []byte) (*Entry, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(line, &pair); err != nil {
		return nil, fmt.Errorf("invalid entry pair: %w", err)
	}
	if len(pair) != 2 {
		return nil, fmt.Errorf("entry pair must have 2 elements, got %d", len(pair))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(pair[1], &fields); err != nil {
		return nil, fmt.Errorf("invalid entry object: %w", err)
	}

	return &Entry{ID: pair[0], Fields: fields}, nil
}
