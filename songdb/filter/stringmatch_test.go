package filter

import "testing"

func TestStringMatcherPositions(t *testing.T) {
	anywhere := NewStringMatcher("ell", false, PositionAnywhere, false)
	if !anywhere.Match("hello") {
		t.Error("anywhere should match substring")
	}
	prefix := NewStringMatcher("he", false, PositionPrefix, false)
	if !prefix.Match("hello") {
		t.Error("prefix should match")
	}
	if prefix.Match("oh hello") {
		t.Error("prefix must not match inner occurrence")
	}
	full := NewStringMatcher("hello", false, PositionFull, false)
	if !full.Match("hello") || full.Match("hello!") {
		t.Error("full must match exactly")
	}
}

func TestStringMatcherFoldCase(t *testing.T) {
	m := NewStringMatcher("BJORK", true, PositionFull, false)
	if !m.Match("bjork") || !m.Match("Bjork") {
		t.Error("fold case should ignore ASCII case")
	}

	cs := NewStringMatcher("BJORK", false, PositionFull, false)
	if cs.Match("bjork") {
		t.Error("case-sensitive must not fold")
	}
}

func TestStringMatcherNegationClosure(t *testing.T) {
	for _, position := range []Position{PositionAnywhere, PositionPrefix, PositionFull} {
		plain := NewStringMatcher("ra", false, position, false)
		negated := NewStringMatcher("ra", false, position, true)
		for _, input := range []string{"", "ra", "rain", "x ra", "nothing"} {
			if plain.Match(input) == negated.Match(input) {
				t.Errorf("position %d input %q: negation must invert", position, input)
			}
		}
	}
}

func TestStringMatcherEmptyValue(t *testing.T) {
	m := NewStringMatcher("", false, PositionAnywhere, false)
	if !m.Match("") || !m.Match("anything") {
		t.Error("empty needle matches everything")
	}
	full := NewStringMatcher("", false, PositionFull, false)
	if !full.Match("") || full.Match("x") {
		t.Error("empty full needle matches only empty input")
	}
}

func TestRegexMatcherFullMatch(t *testing.T) {
	m, err := NewRegexMatcher("Ra.n", false, false)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !m.Match("Rain") {
		t.Error("regex should match whole input")
	}
	if m.Match("xRainx") {
		t.Error("regex must be anchored to the whole input")
	}
	if m.Position() != PositionFull {
		t.Error("regex matcher position must be full")
	}
}

func TestRegexMatcherFoldCase(t *testing.T) {
	m, err := NewRegexMatcher("rain", true, false)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !m.Match("RAIN") {
		t.Error("case-insensitive regex should match")
	}
}

func TestRegexMatcherBadPattern(t *testing.T) {
	if _, err := NewRegexMatcher("(unclosed", false, false); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestStringMatcherOperatorChoice(t *testing.T) {
	cases := []struct {
		matcher StringMatcher
		want    string
	}{
		{NewStringMatcher("x", false, PositionFull, false), `== "x"`},
		{NewStringMatcher("x", false, PositionFull, true), `!= "x"`},
		{NewStringMatcher("x", true, PositionFull, false), `eq_ci "x"`},
		{NewStringMatcher("x", true, PositionFull, true), `!eq_ci "x"`},
		{NewStringMatcher("x", false, PositionAnywhere, false), `contains "x"`},
		{NewStringMatcher("x", true, PositionAnywhere, true), `!contains_ci "x"`},
		{NewStringMatcher("x", false, PositionPrefix, false), `starts_with "x"`},
		{NewStringMatcher("x", true, PositionPrefix, false), `starts_with_ci "x"`},
	}
	for _, tc := range cases {
		if got := tc.matcher.ToExpression(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}
