package library

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	data []byte
	err  error
}

func (s stubSource) Fetch(context.Context) ([]byte, error) { return s.data, s.err }
func (s stubSource) String() string                        { return "stub" }

func TestParseSingleLinuxEntry(t *testing.T) {
	doc := `{"linux":[{"title":"X","technique":"T","desc":"d","command":"c","example":"e","output":"o"}]}`

	lib, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, 1, lib.Len())

	rec := lib.At(0)
	assert.Equal(t, Record{
		Name:        "X",
		Category:    "Linux - T",
		Platform:    "Linux",
		Description: "d",
		Command:     "c",
		Example:     "e",
		Output:      "o",
		Technique:   "T",
	}, rec)
}

func TestParsePlatformOrder(t *testing.T) {
	// Keys appear out of order in the document; records follow Windows, Linux, macOS.
	doc := `{
		"mac":     [{"title":"m1","technique":"Discovery"}],
		"linux":   [{"title":"l1","technique":"Discovery"},{"title":"l2","technique":"Execution"}],
		"windows": [{"title":"w1","technique":"Discovery"}]
	}`

	lib, err := Parse([]byte(doc))
	require.NoError(t, err)

	var names []string
	for _, r := range lib.Records() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"w1", "l1", "l2", "m1"}, names)
}

func TestParseMacLabels(t *testing.T) {
	lib, err := Parse([]byte(`{"mac":[{"title":"x","technique":"Persistence"}]}`))
	require.NoError(t, err)
	require.Equal(t, 1, lib.Len())

	assert.Equal(t, PlatformMacOS, lib.At(0).Platform)
	assert.Equal(t, "Mac - Persistence", lib.At(0).Category)
}

func TestParseMissingAndNullKeys(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"empty object", `{}`, 0},
		{"null platform", `{"windows":null,"linux":[{"title":"a"}]}`, 1},
		{"empty list", `{"windows":[]}`, 0},
		{"unknown keys ignored", `{"solaris":[{"title":"a"}],"mac":[{"title":"b"}]}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, lib.Len())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"linux": [`},
		{"not json", `404: Not Found`},
		{"array document", `[{"title":"a"}]`},
		{"null document", `null`},
		{"empty body", ``},
		{"platform not a list", `{"linux": {"title":"a"}}`},
		{"null entry", `{"linux": [null]}`},
		{"wrong field type", `{"linux": [{"title": 5}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := Parse([]byte(tt.doc))
			assert.Nil(t, lib)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestFacetsSortedAndDistinct(t *testing.T) {
	doc := `{
		"windows": [{"title":"a","technique":"Execution"},{"title":"b","technique":"Discovery"}],
		"linux":   [{"title":"c","technique":"Discovery"}],
		"mac":     [{"title":"d","technique":"Discovery"}]
	}`

	lib, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"Linux", "Windows", "macOS"}, lib.Platforms())
	assert.Equal(t, []string{
		"Linux - Discovery",
		"Mac - Discovery",
		"Windows - Discovery",
		"Windows - Execution",
	}, lib.Categories())
}

func TestLibraryIsImmutable(t *testing.T) {
	records := []Record{{Name: "a", Platform: "Linux"}}
	lib := New(records)

	records[0].Name = "changed"
	got := lib.Records()
	got[0].Name = "also changed"

	assert.Equal(t, "a", lib.At(0).Name)

	platforms := lib.Platforms()
	platforms[0] = "Plan9"
	assert.Equal(t, []string{"Linux"}, lib.Platforms())
}

func TestNilLibrary(t *testing.T) {
	var lib *Library
	assert.Equal(t, 0, lib.Len())
	assert.Nil(t, lib.Records())
	assert.Nil(t, lib.Platforms())
	assert.Nil(t, lib.Categories())
}

func TestLoad(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		lib, err := Load(context.Background(), stubSource{data: []byte(`{"windows":[{"title":"w"}]}`)})
		require.NoError(t, err)
		assert.Equal(t, 1, lib.Len())
	})

	t.Run("transport failure wraps as network error", func(t *testing.T) {
		cause := errors.New("connection refused")
		lib, err := Load(context.Background(), stubSource{err: cause})
		assert.Nil(t, lib)

		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, "stub", netErr.Source)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("malformed body is a parse error", func(t *testing.T) {
		lib, err := Load(context.Background(), stubSource{data: []byte(`{not json`)})
		assert.Nil(t, lib)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)

		var netErr *NetworkError
		assert.False(t, errors.As(err, &netErr))
	})
}
