package library

import (
	"slices"
	"sort"
)

// Platform display labels
const (
	PlatformWindows = "Windows"
	PlatformLinux   = "Linux"
	PlatformMacOS   = "macOS"
)

// Record is a single normalized command entry
type Record struct {
	Name        string // Display title
	Category    string // "<Platform> - <Technique>"
	Platform    string // Windows, Linux or macOS
	Description string
	Command     string // Literal command text
	Example     string // Optional usage sample
	Output      string // Sample output text
	Technique   string // Free-form tag (e.g. a MITRE label)
}

// Library is the ordered, immutable set of records for a session.
// Facets are computed once at construction.
type Library struct {
	records    []Record
	platforms  []string
	categories []string
}

// New builds a Library from records in the given order
func New(records []Record) *Library {
	lib := &Library{records: slices.Clone(records)}
	lib.platforms = distinct(lib.records, func(r *Record) string { return r.Platform })
	lib.categories = distinct(lib.records, func(r *Record) string { return r.Category })
	return lib
}

// Len returns the number of records
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.records)
}

// At returns the record at index i
func (l *Library) At(i int) Record {
	return l.records[i]
}

// Records returns a copy of all records in library order
func (l *Library) Records() []Record {
	if l == nil {
		return nil
	}
	return slices.Clone(l.records)
}

// Platforms returns the distinct platforms, sorted ascending
func (l *Library) Platforms() []string {
	if l == nil {
		return nil
	}
	return slices.Clone(l.platforms)
}

// Categories returns the distinct categories, sorted ascending
func (l *Library) Categories() []string {
	if l == nil {
		return nil
	}
	return slices.Clone(l.categories)
}

// distinct collects the unique values of field across records, sorted
func distinct(records []Record, field func(*Record) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0, 8) //nolint:mnd // a handful of facets is typical
	for i := range records {
		v := field(&records[i])
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
