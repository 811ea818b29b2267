package filter

import (
	"strings"

	"github.com/grafana/regexp"
)

// Position selects where a literal pattern must occur in the input.
type Position int

const (
	PositionAnywhere Position = iota
	PositionPrefix
	PositionFull
)

// StringMatcher evaluates one string pattern: a literal with a position
// and fold-case flag, or a compiled regular expression. Negation is
// applied after the raw decision. Immutable once constructed.
type StringMatcher struct {
	value    string
	foldCase bool
	position Position
	negated  bool
	re       *regexp.Regexp
}

// NewStringMatcher builds a literal matcher.
func NewStringMatcher(value string, foldCase bool, position Position, negated bool) StringMatcher {
	return StringMatcher{
		value:    value,
		foldCase: foldCase,
		position: position,
		negated:  negated,
	}
}

// NewRegexMatcher compiles value as an anchored regular expression. The
// position is always full; foldCase switches the engine to
// case-insensitive mode.
func NewRegexMatcher(value string, foldCase, negated bool) (StringMatcher, error) {
	pattern := `\A(?:` + value + `)\z`
	if foldCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return StringMatcher{}, err
	}
	return StringMatcher{
		value:    value,
		foldCase: foldCase,
		position: PositionFull,
		negated:  negated,
		re:       re,
	}, nil
}

func (m *StringMatcher) Value() string      { return m.value }
func (m *StringMatcher) FoldCase() bool     { return m.foldCase }
func (m *StringMatcher) Position() Position { return m.position }
func (m *StringMatcher) IsNegated() bool    { return m.negated }
func (m *StringMatcher) IsRegex() bool      { return m.re != nil }
func (m *StringMatcher) IsEmpty() bool      { return m.value == "" }

// Match evaluates the pattern against s, including negation.
func (m *StringMatcher) Match(s string) bool {
	return m.MatchWithoutNegation(s) != m.negated
}

// MatchWithoutNegation evaluates the raw pattern decision.
func (m *StringMatcher) MatchWithoutNegation(s string) bool {
	if m.re != nil {
		return m.re.MatchString(s)
	}

	needle := m.value
	hay := s
	if m.foldCase {
		needle = foldASCII(needle)
		hay = foldASCII(hay)
	}

	switch m.position {
	case PositionFull:
		return hay == needle
	case PositionPrefix:
		return strings.HasPrefix(hay, needle)
	default:
		return strings.Contains(hay, needle)
	}
}

// Equals reports structural equality.
func (m *StringMatcher) Equals(other *StringMatcher) bool {
	return m.value == other.value &&
		m.foldCase == other.foldCase &&
		m.position == other.position &&
		m.negated == other.negated &&
		m.IsRegex() == other.IsRegex()
}

// ToExpression renders the operator and quoted operand, choosing the
// shortest operator that reproduces the matcher's flags.
func (m *StringMatcher) ToExpression() string {
	return m.operator() + " " + quoteValue(m.value)
}

func (m *StringMatcher) operator() string {
	if m.re != nil {
		if m.negated {
			return "!~"
		}
		return "=~"
	}

	switch m.position {
	case PositionFull:
		switch {
		case m.foldCase && m.negated:
			return "!eq_ci"
		case m.foldCase:
			return "eq_ci"
		case m.negated:
			return "!="
		default:
			return "=="
		}
	case PositionPrefix:
		switch {
		case m.foldCase && m.negated:
			return "!starts_with_ci"
		case m.foldCase:
			return "starts_with_ci"
		case m.negated:
			return "!starts_with"
		default:
			return "starts_with"
		}
	default:
		switch {
		case m.foldCase && m.negated:
			return "!contains_ci"
		case m.foldCase:
			return "contains_ci"
		case m.negated:
			return "!contains"
		default:
			return "contains"
		}
	}
}

// quoteValue wraps s in double quotes, escaping '"' and '\' with '\'.
func quoteValue(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '"' || ch == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	b.WriteByte('"')
	return b.String()
}
