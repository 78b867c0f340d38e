package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Entry is a single command as published in the source document
type Entry struct {
	Title     string `json:"title"`
	Technique string `json:"technique"`
	Desc      string `json:"desc"`
	Command   string `json:"command"`
	Example   string `json:"example"`
	Output    string `json:"output"`
}

// platformKeys lists the document keys in library order
var platformKeys = []string{"windows", "linux", "mac"}

// NetworkError reports a transport-level failure while fetching the source
type NetworkError struct {
	Source string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Source, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a malformed source document
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse command library: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load fetches the document from src and builds a Library.
// Any fetch or parse failure fails the whole load.
func Load(ctx context.Context, src Source) (*Library, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		var netErr *NetworkError
		if !errors.As(err, &netErr) {
			err = &NetworkError{Source: src.String(), Err: err}
		}
		slog.Warn("library fetch failed", "source", src.String(), "error", err)
		return nil, err
	}

	lib, err := Parse(data)
	if err != nil {
		slog.Warn("library parse failed", "source", src.String(), "error", err)
		return nil, err
	}

	slog.Info("library loaded",
		"source", src.String(),
		"records", lib.Len(),
		"platforms", len(lib.platforms),
		"categories", len(lib.categories),
	)
	return lib, nil
}

// Parse normalizes a source document into a Library.
// Missing or null platform keys are treated as empty lists.
func Parse(data []byte) (*Library, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ParseError{Err: errors.New("document is not a JSON object")}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}

	var records []Record
	for _, key := range platformKeys {
		raw, ok := doc[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}

		var entries []*Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("%s: %w", key, err)}
		}

		for i, entry := range entries {
			if entry == nil {
				return nil, &ParseError{Err: fmt.Errorf("%s[%d]: null entry", key, i)}
			}
			records = append(records, entry.toRecord(key))
		}
	}

	return New(records), nil
}

// toRecord converts an entry published under the given platform key
func (e *Entry) toRecord(key string) Record {
	return Record{
		Name:        e.Title,
		Category:    capitalize(key) + " - " + e.Technique,
		Platform:    platformLabel(key),
		Description: e.Desc,
		Command:     e.Command,
		Example:     e.Example,
		Output:      e.Output,
		Technique:   e.Technique,
	}
}

// platformLabel maps a document key to its display label
func platformLabel(key string) string {
	if key == "mac" {
		return PlatformMacOS
	}
	return capitalize(key)
}

// capitalize upper-cases the first letter of s
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
