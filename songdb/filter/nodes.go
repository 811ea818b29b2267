package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/nonibytes/songdb/songdb/song"
	"github.com/nonibytes/songdb/songdb/tag"
)

// Filter is one node of a song-filter tree.
type Filter interface {
	// Match evaluates the node against a song. It is pure and total.
	Match(s song.Song) bool

	// Clone returns a deep structural copy.
	Clone() Filter

	// ToExpression renders the canonical parenthesized form.
	ToExpression() string

	// Equals reports structural equality.
	Equals(other Filter) bool
}

// TagMatch matches one tag kind (or every kind, see AnyTag) against a
// string pattern.
type TagMatch struct {
	kind    tag.Type
	matcher StringMatcher
}

// AnyTag makes a TagMatch inspect all tag kinds.
const AnyTag = tag.NumTypes

func NewTagMatch(kind tag.Type, matcher StringMatcher) *TagMatch {
	return &TagMatch{kind: kind, matcher: matcher}
}

func (f *TagMatch) Kind() tag.Type          { return f.kind }
func (f *TagMatch) Matcher() *StringMatcher { return &f.matcher }

func (f *TagMatch) Match(s song.Song) bool {
	if f.kind == AnyTag {
		for _, item := range s.AllTags() {
			if f.matcher.MatchWithoutNegation(item.Value) {
				return !f.matcher.IsNegated()
			}
		}
		return f.matcher.IsNegated()
	}

	values := s.TagValues(f.kind)
	for _, v := range values {
		if f.matcher.MatchWithoutNegation(v) {
			return !f.matcher.IsNegated()
		}
	}

	// The kind is absent: compare against the empty string, so that
	// searching for "" finds songs without the tag.
	if len(values) == 0 && f.matcher.MatchWithoutNegation("") {
		return !f.matcher.IsNegated()
	}

	return f.matcher.IsNegated()
}

func (f *TagMatch) Clone() Filter {
	clone := *f
	return &clone
}

func (f *TagMatch) ToExpression() string {
	name := "any"
	if f.kind != AnyTag {
		name = f.kind.String()
	}
	return "(" + name + " " + f.matcher.ToExpression() + ")"
}

func (f *TagMatch) Equals(other Filter) bool {
	o, ok := other.(*TagMatch)
	return ok && f.kind == o.kind && f.matcher.Equals(&o.matcher)
}

// UriMatch matches the song's URI against a string pattern.
type UriMatch struct {
	matcher StringMatcher
}

func NewUriMatch(matcher StringMatcher) *UriMatch {
	return &UriMatch{matcher: matcher}
}

func (f *UriMatch) Matcher() *StringMatcher { return &f.matcher }

func (f *UriMatch) Match(s song.Song) bool {
	return f.matcher.Match(s.URI())
}

func (f *UriMatch) Clone() Filter {
	clone := *f
	return &clone
}

func (f *UriMatch) ToExpression() string {
	return "(file " + f.matcher.ToExpression() + ")"
}

func (f *UriMatch) Equals(other Filter) bool {
	o, ok := other.(*UriMatch)
	return ok && f.matcher.Equals(&o.matcher)
}

// Base restricts matching to songs under a directory prefix.
type Base struct {
	prefix string
}

func NewBase(prefix string) *Base { return &Base{prefix: prefix} }

func (f *Base) Prefix() string { return f.prefix }

func (f *Base) Match(s song.Song) bool {
	uri := s.URI()
	return uri == f.prefix || strings.HasPrefix(uri, f.prefix+"/")
}

func (f *Base) Clone() Filter { return &Base{prefix: f.prefix} }

func (f *Base) ToExpression() string {
	return "(base " + quoteValue(f.prefix) + ")"
}

func (f *Base) Equals(other Filter) bool {
	o, ok := other.(*Base)
	return ok && f.prefix == o.prefix
}

// ModifiedSince matches songs modified at or after an instant.
type ModifiedSince struct {
	instant time.Time
}

func NewModifiedSince(instant time.Time) *ModifiedSince {
	return &ModifiedSince{instant: instant}
}

func (f *ModifiedSince) Instant() time.Time { return f.instant }

func (f *ModifiedSince) Match(s song.Song) bool {
	return !s.ModifiedAt().Before(f.instant)
}

func (f *ModifiedSince) Clone() Filter { return &ModifiedSince{instant: f.instant} }

func (f *ModifiedSince) ToExpression() string {
	return "(modified-since " + quoteValue(song.FormatTimestamp(f.instant)) + ")"
}

func (f *ModifiedSince) Equals(other Filter) bool {
	o, ok := other.(*ModifiedSince)
	return ok && f.instant.Equal(o.instant)
}

// AddedSince matches songs added to the library at or after an instant.
type AddedSince struct {
	instant time.Time
}

func NewAddedSince(instant time.Time) *AddedSince {
	return &AddedSince{instant: instant}
}

func (f *AddedSince) Instant() time.Time { return f.instant }

func (f *AddedSince) Match(s song.Song) bool {
	return !s.AddedAt().Before(f.instant)
}

func (f *AddedSince) Clone() Filter { return &AddedSince{instant: f.instant} }

func (f *AddedSince) ToExpression() string {
	return "(added-since " + quoteValue(song.FormatTimestamp(f.instant)) + ")"
}

func (f *AddedSince) Equals(other Filter) bool {
	o, ok := other.(*AddedSince)
	return ok && f.instant.Equal(o.instant)
}

// AudioFormatMatch matches the song's audio format, exactly or with
// zero-as-wildcard masking.
type AudioFormatMatch struct {
	format song.AudioFormat
	mask   bool
}

func NewAudioFormatMatch(format song.AudioFormat, mask bool) *AudioFormatMatch {
	return &AudioFormatMatch{format: format, mask: mask}
}

func (f *AudioFormatMatch) Match(s song.Song) bool {
	af, ok := s.Format()
	if !ok {
		return false
	}
	if f.mask {
		return f.format.MatchMask(af)
	}
	return f.format == af
}

func (f *AudioFormatMatch) Clone() Filter {
	clone := *f
	return &clone
}

func (f *AudioFormatMatch) ToExpression() string {
	op := "=="
	if f.mask {
		op = "=~"
	}
	return "(AudioFormat " + op + " " + quoteValue(f.format.String()) + ")"
}

func (f *AudioFormatMatch) Equals(other Filter) bool {
	o, ok := other.(*AudioFormatMatch)
	return ok && f.format == o.format && f.mask == o.mask
}

// PriorityAtLeast matches songs whose priority reaches a threshold.
type PriorityAtLeast struct {
	threshold uint8
}

func NewPriorityAtLeast(threshold uint8) *PriorityAtLeast {
	return &PriorityAtLeast{threshold: threshold}
}

func (f *PriorityAtLeast) Match(s song.Song) bool {
	return s.Priority() >= f.threshold
}

func (f *PriorityAtLeast) Clone() Filter {
	return &PriorityAtLeast{threshold: f.threshold}
}

func (f *PriorityAtLeast) ToExpression() string {
	return "(prio >= " + strconv.Itoa(int(f.threshold)) + ")"
}

func (f *PriorityAtLeast) Equals(other Filter) bool {
	o, ok := other.(*PriorityAtLeast)
	return ok && f.threshold == o.threshold
}

// And matches when every child matches; an empty list matches everything.
type And struct {
	children []Filter
}

func NewAnd(children ...Filter) *And {
	return &And{children: children}
}

func (f *And) Children() []Filter { return f.children }

func (f *And) Add(child Filter) { f.children = append(f.children, child) }

func (f *And) Match(s song.Song) bool {
	for _, child := range f.children {
		if !child.Match(s) {
			return false
		}
	}
	return true
}

func (f *And) Clone() Filter {
	clone := &And{children: make([]Filter, len(f.children))}
	for i, child := range f.children {
		clone.children[i] = child.Clone()
	}
	return clone
}

func (f *And) ToExpression() string {
	if len(f.children) == 1 {
		return f.children[0].ToExpression()
	}

	var b strings.Builder
	b.WriteByte('(')
	for i, child := range f.children {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(child.ToExpression())
	}
	b.WriteByte(')')
	return b.String()
}

func (f *And) Equals(other Filter) bool {
	o, ok := other.(*And)
	if !ok || len(f.children) != len(o.children) {
		return false
	}
	for i, child := range f.children {
		if !child.Equals(o.children[i]) {
			return false
		}
	}
	return true
}

// Not inverts its child.
type Not struct {
	child Filter
}

func NewNot(child Filter) *Not { return &Not{child: child} }

func (f *Not) Child() Filter { return f.child }

func (f *Not) Match(s song.Song) bool {
	return !f.child.Match(s)
}

func (f *Not) Clone() Filter { return &Not{child: f.child.Clone()} }

func (f *Not) ToExpression() string {
	return "(!" + f.child.ToExpression() + ")"
}

func (f *Not) Equals(other Filter) bool {
	o, ok := other.(*Not)
	return ok && f.child.Equals(o.child)
}
