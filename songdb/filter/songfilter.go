// Package filter implements the song-filter expression language: a
// parser and evaluator for the nested, prefix-style expression grammar
// and the flat legacy (tag, value) form, producing a filter tree that
// can be matched against songs, optimized, introspected and rendered
// back to its canonical textual form.
package filter

import (
	"fmt"
	"strings"

	"github.com/nonibytes/songdb/songdb/song"
)

// Options configures parsing behavior.
type Options struct {
	// EnableRegex switches the "=~" and "!~" operators on. When
	// disabled, those operator prefixes are unknown operators.
	EnableRegex bool
}

// DefaultOptions enables the full operator set.
func DefaultOptions() Options {
	return Options{EnableRegex: true}
}

// SongFilter is a conjunction of filters applied to songs. It is
// mutated only by Parse, ParsePair and Optimize; afterwards it may be
// matched from any number of goroutines.
type SongFilter struct {
	root And
	opts Options
}

// New returns an empty filter, which matches every song.
func New(opts Options) *SongFilter {
	return &SongFilter{opts: opts}
}

// Parse parses a mixed argument list: arguments starting with '(' are
// complete expressions, everything else is consumed as flat (tag,
// value) pairs. Each contributes one child to the top-level
// conjunction. On error the filter is unchanged.
func (f *SongFilter) Parse(args []string, foldCase bool) error {
	if len(args) == 0 {
		return fmt.Errorf("Incorrect number of filter arguments")
	}

	p := &parser{foldCase: foldCase, enableRegex: f.opts.EnableRegex}

	var parsed []Filter
	for len(args) > 0 {
		if strings.HasPrefix(args[0], "(") {
			child, err := p.parseExpressionString(args[0])
			if err != nil {
				return err
			}
			parsed = append(parsed, child)
			args = args[1:]
			continue
		}

		if len(args) < 2 {
			return fmt.Errorf("Incorrect number of filter arguments")
		}
		child, err := p.parsePair(args[0], args[1])
		if err != nil {
			return err
		}
		parsed = append(parsed, child)
		args = args[2:]
	}

	f.root.children = append(f.root.children, parsed...)
	return nil
}

// ParsePair adds one flat (tag, value) filter.
func (f *SongFilter) ParsePair(tagString, value string, foldCase bool) error {
	p := &parser{foldCase: foldCase, enableRegex: f.opts.EnableRegex}
	child, err := p.parsePair(tagString, value)
	if err != nil {
		return err
	}
	f.root.children = append(f.root.children, child)
	return nil
}

// Match reports whether the song satisfies every filter.
func (f *SongFilter) Match(s song.Song) bool {
	return f.root.Match(s)
}

// IsEmpty reports whether the filter has no conditions.
func (f *SongFilter) IsEmpty() bool {
	return len(f.root.children) == 0
}

// ToExpression renders the canonical expression form.
func (f *SongFilter) ToExpression() string {
	return f.root.ToExpression()
}

// Optimize rewrites the tree per the optimizer rules. The root stays a
// conjunction. Idempotent.
func (f *SongFilter) Optimize() {
	f.root.children = optimizeChildren(f.root.children)
}

// Clone returns a deep copy.
func (f *SongFilter) Clone() *SongFilter {
	clone := New(f.opts)
	clone.root = *f.root.Clone().(*And)
	return clone
}

// HasFoldCase reports whether any direct tag or URI condition compares
// case-insensitively.
func (f *SongFilter) HasFoldCase() bool {
	for _, child := range f.root.children {
		switch n := child.(type) {
		case *TagMatch:
			if n.matcher.FoldCase() {
				return true
			}
		case *UriMatch:
			if n.matcher.FoldCase() {
				return true
			}
		}
	}
	return false
}

// HasOtherThanBase reports whether any direct child is not a base
// scope.
func (f *SongFilter) HasOtherThanBase() bool {
	for _, child := range f.root.children {
		if _, ok := child.(*Base); !ok {
			return true
		}
	}
	return false
}

// GetBase returns the first base scope's prefix.
func (f *SongFilter) GetBase() (string, bool) {
	for _, child := range f.root.children {
		if b, ok := child.(*Base); ok {
			return b.prefix, true
		}
	}
	return "", false
}

// WithoutBasePrefix returns a copy with the given prefix stripped from
// base scopes. An exactly-matching base is dropped; a base below the
// prefix is rebased past the slash; a base whose remainder does not
// align on a slash boundary is kept unchanged.
func (f *SongFilter) WithoutBasePrefix(prefix string) *SongFilter {
	result := New(f.opts)

	for _, child := range f.root.children {
		if b, ok := child.(*Base); ok && strings.HasPrefix(b.prefix, prefix) {
			rest := b.prefix[len(prefix):]
			if rest == "" {
				continue
			}
			if rest[0] == '/' {
				if rest = rest[1:]; rest != "" {
					result.root.Add(NewBase(rest))
				}
				continue
			}
		}

		result.root.Add(child.Clone())
	}

	return result
}
