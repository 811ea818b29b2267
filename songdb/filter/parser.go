package filter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nonibytes/songdb/songdb/song"
	"github.com/nonibytes/songdb/songdb/tag"
)

// filterType is the resolved kind of a filter-name keyword.
type filterType int

const (
	typeTag filterType = iota
	typeFile
	typeAny
	typeBase
	typeModifiedSince
	typeAddedSince
	typeAudioFormat
	typePriority
	typeUnknown
)

// resolveFilterType resolves a filter-name keyword. The tag result is
// only meaningful for typeTag.
func resolveFilterType(name string) (filterType, tag.Type) {
	if equalsFold(name, "file") || equalsFold(name, "filename") {
		return typeFile, 0
	}
	if equalsFold(name, "any") {
		return typeAny, 0
	}
	if name == "base" {
		return typeBase, 0
	}
	if name == "modified-since" {
		return typeModifiedSince, 0
	}
	if name == "added-since" {
		return typeAddedSince, 0
	}
	if equalsFold(name, "AudioFormat") {
		return typeAudioFormat, 0
	}
	if equalsFold(name, "prio") {
		return typePriority, 0
	}

	if t := tag.ParseNameFold(name); t != tag.NumTypes {
		return typeTag, t
	}
	return typeUnknown, 0
}

func (c *cursor) expectFilterType() (filterType, tag.Type, error) {
	name, err := c.expectWord()
	if err != nil {
		return typeUnknown, 0, err
	}
	ft, t := resolveFilterType(name)
	if ft == typeUnknown {
		return typeUnknown, 0, fmt.Errorf("Unknown filter type: %s", name)
	}
	return ft, t, nil
}

// operatorDef is one entry of the string-operator table. The prefix
// includes the trailing space that delimits it from the quoted operand.
type operatorDef struct {
	prefix   string
	foldCase bool
	negated  bool
	position Position
}

// operators lists the forms with explicit case sensitivity.
var operators = [...]operatorDef{
	{"contains_cs ", false, false, PositionAnywhere},
	{"!contains_cs ", false, true, PositionAnywhere},
	{"contains_ci ", true, false, PositionAnywhere},
	{"!contains_ci ", true, true, PositionAnywhere},

	{"starts_with_cs ", false, false, PositionPrefix},
	{"!starts_with_cs ", false, true, PositionPrefix},
	{"starts_with_ci ", true, false, PositionPrefix},
	{"!starts_with_ci ", true, true, PositionPrefix},

	{"eq_cs ", false, false, PositionFull},
	{"!eq_cs ", false, true, PositionFull},
	{"eq_ci ", true, false, PositionFull},
	{"!eq_ci ", true, true, PositionFull},
}

// parseStringMatcher parses a string operator and its quoted operand.
// The explicit _cs/_ci forms fix the case sensitivity; the bare forms
// inherit foldCase from the caller.
func (p *parser) parseStringMatcher(c *cursor) (StringMatcher, error) {
	for _, op := range operators {
		if c.afterPrefixFold(op.prefix) {
			c.skipWhitespace()
			value, err := c.expectQuoted()
			if err != nil {
				return StringMatcher{}, err
			}
			return NewStringMatcher(value, op.foldCase, op.position, op.negated), nil
		}
	}

	if c.afterPrefixFold("contains ") {
		c.skipWhitespace()
		value, err := c.expectQuoted()
		if err != nil {
			return StringMatcher{}, err
		}
		return NewStringMatcher(value, p.foldCase, PositionAnywhere, false), nil
	}
	if c.afterPrefixFold("!contains ") {
		c.skipWhitespace()
		value, err := c.expectQuoted()
		if err != nil {
			return StringMatcher{}, err
		}
		return NewStringMatcher(value, p.foldCase, PositionAnywhere, true), nil
	}

	if c.afterPrefixFold("starts_with ") {
		c.skipWhitespace()
		value, err := c.expectQuoted()
		if err != nil {
			return StringMatcher{}, err
		}
		return NewStringMatcher(value, p.foldCase, PositionPrefix, false), nil
	}
	if c.afterPrefixFold("!starts_with ") {
		c.skipWhitespace()
		value, err := c.expectQuoted()
		if err != nil {
			return StringMatcher{}, err
		}
		return NewStringMatcher(value, p.foldCase, PositionPrefix, true), nil
	}

	if p.enableRegex && (c.peek() == '!' || c.peek() == '=') && c.peekAt(1) == '~' {
		negated := c.peek() == '!'
		c.consume(2)
		c.skipWhitespace()
		value, err := c.expectQuoted()
		if err != nil {
			return StringMatcher{}, err
		}
		m, err := NewRegexMatcher(value, p.foldCase, negated)
		if err != nil {
			return StringMatcher{}, err
		}
		return m, nil
	}

	negated := false
	if c.peek() == '!' && c.peekAt(1) == '=' {
		negated = true
	} else if c.peek() != '=' || c.peekAt(1) != '=' {
		return StringMatcher{}, fmt.Errorf("Unknown filter operator: %s", c.rest)
	}
	c.consume(2)
	c.skipWhitespace()

	value, err := c.expectQuoted()
	if err != nil {
		return StringMatcher{}, err
	}
	return NewStringMatcher(value, p.foldCase, PositionFull, negated), nil
}

// parseTimestamp accepts ISO 8601 or an unsigned decimal epoch value.
// The ISO 8601 error wins when both forms fail.
func parseTimestamp(s string) (time.Time, error) {
	t, isoErr := song.ParseTimestamp(s)
	if isoErr == nil {
		return t, nil
	}

	if len(s) > 0 {
		if epoch, err := strconv.ParseUint(s, 10, 64); err == nil {
			return time.Unix(int64(epoch), 0).UTC(), nil
		}
	}

	return time.Time{}, isoErr
}

// parser carries the per-call parsing configuration.
type parser struct {
	foldCase    bool
	enableRegex bool
}

// parseExpression parses one parenthesized expression. The caller has
// verified that the cursor is at '('.
func (p *parser) parseExpression(c *cursor) (Filter, error) {
	c.consume(1)
	c.skipWhitespace()

	if c.peek() == '(' {
		return p.parseGroup(c)
	}

	if c.peek() == '!' {
		c.consume(1)
		c.skipWhitespace()

		if c.peek() != '(' {
			return nil, errOpenParen
		}
		inner, err := p.parseExpression(c)
		if err != nil {
			return nil, err
		}
		if c.peek() != ')' {
			return nil, errCloseParen
		}
		c.consume(1)
		c.skipWhitespace()

		return NewNot(inner), nil
	}

	ft, tagType, err := c.expectFilterType()
	if err != nil {
		return nil, err
	}

	switch ft {
	case typeModifiedSince, typeAddedSince:
		value, err := c.expectQuoted()
		if err != nil {
			return nil, err
		}
		instant, err := parseTimestamp(value)
		if err != nil {
			return nil, err
		}
		if c.peek() != ')' {
			return nil, errCloseParen
		}
		c.consume(1)
		c.skipWhitespace()
		if ft == typeModifiedSince {
			return NewModifiedSince(instant), nil
		}
		return NewAddedSince(instant), nil

	case typeBase:
		value, err := c.expectQuoted()
		if err != nil {
			return nil, err
		}
		if c.peek() != ')' {
			return nil, errCloseParen
		}
		c.consume(1)
		c.skipWhitespace()
		return NewBase(value), nil

	case typeAudioFormat:
		var mask bool
		if c.peek() == '=' && c.peekAt(1) == '=' {
			mask = false
		} else if c.peek() == '=' && c.peekAt(1) == '~' {
			mask = true
		} else {
			return nil, fmt.Errorf("'==' or '=~' expected")
		}
		c.consume(2)
		c.skipWhitespace()

		value, err := c.expectQuoted()
		if err != nil {
			return nil, err
		}
		format, err := song.ParseAudioFormat(value, mask)
		if err != nil {
			return nil, err
		}

		if c.peek() != ')' {
			return nil, errCloseParen
		}
		c.consume(1)
		c.skipWhitespace()
		return NewAudioFormatMatch(format, mask), nil

	case typePriority:
		if c.peek() != '>' || c.peekAt(1) != '=' {
			return nil, fmt.Errorf("'>=' expected")
		}
		c.consume(2)
		c.skipWhitespace()

		end := 0
		for end < len(c.rest) && c.rest[end] >= '0' && c.rest[end] <= '9' {
			end++
		}
		if end == 0 {
			return nil, errNumberExpected
		}
		value, err := strconv.ParseUint(c.rest[:end], 10, 64)
		if err != nil || value > 0xff {
			return nil, fmt.Errorf("Invalid priority value")
		}
		c.consume(end)

		if c.peek() != ')' {
			return nil, errCloseParen
		}
		c.consume(1)
		c.skipWhitespace()
		return NewPriorityAtLeast(uint8(value)), nil

	default:
		matcher, err := p.parseStringMatcher(c)
		if err != nil {
			return nil, err
		}
		if c.peek() != ')' {
			return nil, errCloseParen
		}
		c.consume(1)
		c.skipWhitespace()

		if ft == typeFile {
			return NewUriMatch(matcher), nil
		}
		if ft == typeAny {
			tagType = AnyTag
		}
		return NewTagMatch(tagType, matcher), nil
	}
}

// parseGroup parses the remainder of '(' expr ( 'AND' expr )* ')' after
// the opening paren; the cursor is at the first inner '('.
func (p *parser) parseGroup(c *cursor) (Filter, error) {
	first, err := p.parseExpression(c)
	if err != nil {
		return nil, err
	}
	if c.peek() == ')' {
		c.consume(1)
		c.skipWhitespace()
		return first, nil
	}

	if err := c.expectKeywordAnd(); err != nil {
		return nil, err
	}

	and := NewAnd(first)
	for {
		if c.peek() != '(' {
			return nil, errOpenParen
		}
		child, err := p.parseExpression(c)
		if err != nil {
			return nil, err
		}
		and.Add(child)

		if c.peek() == ')' {
			c.consume(1)
			c.skipWhitespace()
			return and, nil
		}
		if err := c.expectKeywordAnd(); err != nil {
			return nil, err
		}
	}
}

func (c *cursor) expectKeywordAnd() error {
	word, err := c.expectWord()
	if err != nil {
		return err
	}
	if word != "AND" {
		return errKeywordAnd
	}
	return nil
}

// parseExpressionString parses a complete expression string, rejecting
// trailing input.
func (p *parser) parseExpressionString(s string) (Filter, error) {
	c := &cursor{rest: s}
	if c.peek() != '(' {
		return nil, errOpenParen
	}
	f, err := p.parseExpression(c)
	if err != nil {
		return nil, err
	}
	if !c.atEnd() {
		return nil, fmt.Errorf("Unparsed garbage after expression")
	}
	return f, nil
}

// parsePair builds one filter from a flat (tag, value) argument pair.
func (p *parser) parsePair(tagString, value string) (Filter, error) {
	ft, tagType := resolveFilterType(tagString)

	switch ft {
	case typeUnknown, typePriority, typeAudioFormat:
		// The flat surface predates priority and audio-format
		// filters; both are expression-only.
		return nil, fmt.Errorf("Unknown filter type: %s", tagString)

	case typeBase:
		if !IsSafeRelative(value) {
			return nil, fmt.Errorf("Bad URI")
		}
		return NewBase(value), nil

	case typeModifiedSince:
		instant, err := parseTimestamp(value)
		if err != nil {
			return nil, err
		}
		return NewModifiedSince(instant), nil

	case typeAddedSince:
		instant, err := parseTimestamp(value)
		if err != nil {
			return nil, err
		}
		return NewAddedSince(instant), nil

	case typeFile:
		return NewUriMatch(p.compatMatcher(value)), nil

	case typeAny:
		return NewTagMatch(AnyTag, p.compatMatcher(value)), nil

	default:
		return NewTagMatch(tagType, p.compatMatcher(value)), nil
	}
}

// compatMatcher builds the matcher used by the flat surface. For
// compatibility with old clients, fold-case also switches on substring
// matching.
func (p *parser) compatMatcher(value string) StringMatcher {
	position := PositionFull
	if p.foldCase {
		position = PositionAnywhere
	}
	return NewStringMatcher(value, p.foldCase, position, false)
}
