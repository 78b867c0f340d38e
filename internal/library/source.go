package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultSourceURL is the published command library
const DefaultSourceURL = "https://raw.githubusercontent.com/MallikarjunaKanike/terminal-assist/main/commands.json"

// cacheBustParam is appended to HTTP requests to defeat intermediary caches
const cacheBustParam = "t"

// maxDocumentSize bounds how much of a source is read
const maxDocumentSize = 16 << 20

// Source provides the raw library document
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// HTTPSource fetches the document over HTTP(S)
type HTTPSource struct {
	URL    string
	Client *http.Client

	// now is overridable for tests
	now func() time.Time
}

// NewHTTPSource creates an HTTPSource using http.DefaultClient
func NewHTTPSource(rawURL string) *HTTPSource {
	return &HTTPSource{URL: rawURL, Client: http.DefaultClient, now: time.Now}
}

func (s *HTTPSource) String() string { return s.URL }

// Fetch requests the document with a cache-busting parameter
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	target, err := s.requestURL()
	if err != nil {
		return nil, &NetworkError{Source: s.URL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &NetworkError{Source: s.URL, Err: err}
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &NetworkError{Source: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Source: s.URL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, &NetworkError{Source: s.URL, Err: err}
	}
	return data, nil
}

// requestURL returns the URL with the cache-busting parameter set
func (s *HTTPSource) requestURL() (string, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return "", err
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	q := u.Query()
	q.Set(cacheBustParam, strconv.FormatInt(now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FileSource reads the document from the local filesystem
type FileSource struct {
	Path string
}

func (s *FileSource) String() string { return s.Path }

// Fetch reads the whole file
func (s *FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(s.Path)) //nolint:gosec // path chosen by the user
	if err != nil {
		return nil, &NetworkError{Source: s.Path, Err: err}
	}
	return data, nil
}

// NewSource picks a Source for location: http(s) URLs are fetched remotely,
// file:// URLs and plain paths are read from disk.
func NewSource(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("no command library source configured")
	}

	u, err := url.Parse(location)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return NewHTTPSource(location), nil
		case "file":
			return &FileSource{Path: u.Path}, nil
		}
	}

	return &FileSource{Path: location}, nil
}
