// Package browse holds the filter and selection state for a command library.
//
// A Session is a value: every operation returns a new Session and leaves the
// receiver untouched, so the UI can treat it like any other piece of model
// state and tests can drive it without a terminal.
package browse

import (
	"slices"
	"strings"

	"terminal_assist/internal/library"
)

// NoSelection marks that no filtered item is active
const NoSelection = -1

// FilterState is the user's current query and facet choices.
// Empty fields impose no constraint.
type FilterState struct {
	Query    string
	Platform string
	Category string
}

// IsZero reports whether no filter is active
func (f FilterState) IsZero() bool {
	return f == FilterState{}
}

// Session couples a library with its filter, filtered view and selection
type Session struct {
	lib      *library.Library
	filter   FilterState
	view     []int // indices into lib, in library order
	selected int   // index into view, or NoSelection
}

// NewSession starts a session showing the whole library
func NewSession(lib *library.Library) Session {
	return Session{lib: lib, selected: NoSelection}.recompute(FilterState{})
}

// Library returns the session's library
func (s Session) Library() *library.Library { return s.lib }

// Filter returns the active filter state
func (s Session) Filter() FilterState { return s.filter }

// Len returns the number of records in the filtered view
func (s Session) Len() int { return len(s.view) }

// Record returns the record at position i of the filtered view
func (s Session) Record(i int) library.Record {
	return s.lib.At(s.view[i])
}

// Visible returns the filtered records in library order
func (s Session) Visible() []library.Record {
	out := make([]library.Record, len(s.view))
	for i, idx := range s.view {
		out[i] = s.lib.At(idx)
	}
	return out
}

// View returns the library indices of the filtered records
func (s Session) View() []int { return slices.Clone(s.view) }

// WithQuery replaces the search text
func (s Session) WithQuery(query string) Session {
	f := s.filter
	f.Query = query
	return s.WithFilter(f)
}

// WithPlatform replaces the platform choice ("" for all)
func (s Session) WithPlatform(platform string) Session {
	f := s.filter
	f.Platform = platform
	return s.WithFilter(f)
}

// WithCategory replaces the category choice ("" for all)
func (s Session) WithCategory(category string) Session {
	f := s.filter
	f.Category = category
	return s.WithFilter(f)
}

// WithFilter replaces the whole filter state. The view is recomputed and
// the selection cleared, even if the filter is unchanged.
func (s Session) WithFilter(f FilterState) Session {
	return s.recompute(f)
}

// WithLibrary swaps in a freshly loaded library, keeping the query and any
// platform or category that still exists in it.
func (s Session) WithLibrary(lib *library.Library) Session {
	f := s.filter
	if f.Platform != "" && !slices.Contains(lib.Platforms(), f.Platform) {
		f.Platform = ""
	}
	if f.Category != "" && !slices.Contains(lib.Categories(), f.Category) {
		f.Category = ""
	}
	s.lib = lib
	return s.recompute(f)
}

// recompute applies f and resets the selection
func (s Session) recompute(f FilterState) Session {
	s.filter = f
	s.view = Filter(s.lib, f)
	s.selected = NoSelection
	return s
}

// SelectedIndex returns the selected view position, or NoSelection
func (s Session) SelectedIndex() int { return s.selected }

// Selected returns the selected record, if any
func (s Session) Selected() (library.Record, bool) {
	if s.selected == NoSelection {
		return library.Record{}, false
	}
	return s.Record(s.selected), true
}

// Select activates view position i; out-of-range positions are ignored
func (s Session) Select(i int) Session {
	if i < 0 || i >= len(s.view) {
		return s
	}
	s.selected = i
	return s
}

// Next moves the selection forward, stopping at the last item.
// With nothing selected it selects the first item.
func (s Session) Next() Session {
	if len(s.view) == 0 {
		return s
	}
	if s.selected == NoSelection {
		return s.Select(0)
	}
	return s.Select(min(s.selected+1, len(s.view)-1))
}

// Previous moves the selection back, stopping at the first item.
// With nothing selected it selects the first item.
func (s Session) Previous() Session {
	if len(s.view) == 0 {
		return s
	}
	return s.Select(max(s.selected-1, 0))
}

// Deselect clears the selection
func (s Session) Deselect() Session {
	s.selected = NoSelection
	return s
}

// Filter returns the indices of records in lib matching f, in library order
func Filter(lib *library.Library, f FilterState) []int {
	n := lib.Len()
	query := strings.ToLower(f.Query)

	view := make([]int, 0, n)
	for i := range n {
		r := lib.At(i)
		if matches(&r, query, f.Platform, f.Category) {
			view = append(view, i)
		}
	}
	return view
}

// Matches reports whether r passes all three filter predicates
func Matches(r library.Record, f FilterState) bool {
	return matches(&r, strings.ToLower(f.Query), f.Platform, f.Category)
}

// matches expects query already lower-cased
func matches(r *library.Record, query, platform, category string) bool {
	if platform != "" && r.Platform != platform {
		return false
	}
	if category != "" && r.Category != category {
		return false
	}
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), query) ||
		strings.Contains(strings.ToLower(r.Description), query) ||
		strings.Contains(strings.ToLower(r.Command), query)
}

// CycleOption steps through "" (all) followed by options, wrapping around.
// A current value not in options restarts from "".
func CycleOption(options []string, current string, delta int) string {
	n := len(options) + 1
	pos := 0
	if i := slices.Index(options, current); i >= 0 {
		pos = i + 1
	}
	pos = ((pos+delta)%n + n) % n
	if pos == 0 {
		return ""
	}
	return options[pos-1]
}
