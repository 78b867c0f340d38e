package library

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceCacheBusting(t *testing.T) {
	var gotQuery, gotCache string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("t")
		gotCache = r.Header.Get("Cache-Control")
		_, _ = w.Write([]byte(`{"linux":[{"title":"ps","command":"ps aux"}]}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/commands.json")
	src.Client = srv.Client()
	src.now = func() time.Time { return time.UnixMilli(1700000000123) }

	lib, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, lib.Len())
	assert.Equal(t, "1700000000123", gotQuery)
	assert.Equal(t, "no-cache", gotCache)
}

func TestHTTPSourceKeepsExistingQuery(t *testing.T) {
	src := NewHTTPSource("https://example.com/commands.json?ref=main")
	src.now = func() time.Time { return time.UnixMilli(42) }

	got, err := src.requestURL()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/commands.json?ref=main&t=42", got)
}

func TestHTTPSourceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "404: Not Found", http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL)
	src.Client = srv.Client()

	_, err := Load(context.Background(), src)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPSourceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(url).Fetch(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestHTTPSourceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"windows": [`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL)
	src.Client = srv.Client()

	_, err := Load(context.Background(), src)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mac":[{"title":"m"}]}`), 0o600))

	lib, err := Load(context.Background(), &FileSource{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 1, lib.Len())

	_, err = Load(context.Background(), &FileSource{Path: filepath.Join(dir, "missing.json")})
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		name     string
		location string
		wantHTTP bool
		wantPath string
		wantErr  bool
	}{
		{name: "https", location: DefaultSourceURL, wantHTTP: true},
		{name: "http", location: "http://localhost:8080/commands.json", wantHTTP: true},
		{name: "file url", location: "file:///tmp/commands.json", wantPath: "/tmp/commands.json"},
		{name: "plain path", location: "./commands.json", wantPath: "./commands.json"},
		{name: "windows path", location: `C:\data\commands.json`, wantPath: `C:\data\commands.json`},
		{name: "empty", location: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSource(tt.location)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.wantHTTP {
				_, ok := src.(*HTTPSource)
				assert.True(t, ok, "expected *HTTPSource, got %T", src)
				return
			}
			fs, ok := src.(*FileSource)
			require.True(t, ok, "expected *FileSource, got %T", src)
			assert.Equal(t, tt.wantPath, fs.Path)
		})
	}
}
