// Package songdb is a searchable song library: songs with tags,
// timestamps, audio format and priority, stored in SQLite or
// PostgreSQL and selected with the filter expression language.
package songdb

// SortKind selects the result ordering of a search.
type SortKind string

const (
	SortURI      SortKind = "uri"
	SortMtime    SortKind = "mtime"    // newest first
	SortPriority SortKind = "priority" // highest first
)

// SearchOptions configures a search operation.
type SearchOptions struct {
	// Limit bounds the result count; 0 means unbounded.
	Limit int

	Sort SortKind
}

// DefaultSearchOptions returns URI ordering with no limit.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Sort: SortURI}
}
