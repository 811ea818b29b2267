package filter

import (
	"testing"
	"time"

	"github.com/nonibytes/songdb/songdb/song"
	"github.com/nonibytes/songdb/songdb/tag"
)

func TestEmptyFilterMatchesEverything(t *testing.T) {
	f := New(DefaultOptions())
	if !f.IsEmpty() {
		t.Fatal("new filter is empty")
	}
	if !f.Match(sampleSong()) || !f.Match(&song.LightSong{Loc: "x"}) {
		t.Error("empty conjunction matches every song")
	}
}

func TestSingleChildMatchesLikeChild(t *testing.T) {
	wrapped := mustParse(t, false, `(title == "Rain")`)
	songs := []*song.LightSong{
		sampleSong(),
		{Loc: "other"},
	}
	for _, s := range songs {
		direct := NewTagMatch(tag.Title, NewStringMatcher("Rain", false, PositionFull, false))
		if wrapped.Match(s) != direct.Match(s) {
			t.Errorf("%s: And(x) must match like x", s.Loc)
		}
	}
}

func TestDoubleNegationMatchesIdentically(t *testing.T) {
	inner := mustParse(t, false, `(title == "Rain")`)
	doubled := mustParse(t, false, `(!(!(title == "Rain")))`)
	for _, s := range []*song.LightSong{sampleSong(), {Loc: "other"}} {
		if inner.Match(s) != doubled.Match(s) {
			t.Errorf("%s: Not(Not(x)) must match like x", s.Loc)
		}
	}
}

func TestCloneEquivalence(t *testing.T) {
	f := mustParse(t, false, `((base "A") AND (!(title contains "x")))`, "artist", "Björk")
	clone := f.Clone()

	if clone.ToExpression() != f.ToExpression() {
		t.Errorf("clone expression differs: %q vs %q", clone.ToExpression(), f.ToExpression())
	}
	for _, s := range []*song.LightSong{sampleSong(), {Loc: "B/other.mp3"}} {
		if clone.Match(s) != f.Match(s) {
			t.Errorf("%s: clone must match identically", s.Loc)
		}
	}

	// mutating the clone must not affect the original
	before := f.ToExpression()
	if err := clone.Parse([]string{`(prio >= 1)`}, false); err != nil {
		t.Fatalf("parse into clone: %v", err)
	}
	if f.ToExpression() != before {
		t.Error("clone shares state with the original")
	}
}

func TestHasFoldCase(t *testing.T) {
	if mustParse(t, false, `(title == "Rain")`).HasFoldCase() {
		t.Error("case-sensitive filter has no fold case")
	}
	if !mustParse(t, false, `(title contains_ci "rain")`).HasFoldCase() {
		t.Error("explicit _ci operator sets fold case")
	}
	if !mustParse(t, true, "file", "song").HasFoldCase() {
		t.Error("flat fold-case URI match sets fold case")
	}
	if mustParse(t, false, `(base "A")`).HasFoldCase() {
		t.Error("base has no fold case")
	}
}

func TestHasOtherThanBase(t *testing.T) {
	if mustParse(t, false, `(base "A")`).HasOtherThanBase() {
		t.Error("only base children")
	}
	if !mustParse(t, false, `(base "A")`, `(prio >= 1)`).HasOtherThanBase() {
		t.Error("priority child is not a base")
	}
}

func TestGetBase(t *testing.T) {
	f := mustParse(t, false, `(base "A/B")`, `(base "C")`)
	base, ok := f.GetBase()
	if !ok || base != "A/B" {
		t.Errorf("first base wins: %q, %v", base, ok)
	}

	if _, ok := mustParse(t, false, `(title == "x")`).GetBase(); ok {
		t.Error("no base present")
	}
}

func TestWithoutBasePrefixExact(t *testing.T) {
	f := mustParse(t, false, `(base "A")`)
	stripped := f.WithoutBasePrefix("A")
	if !stripped.IsEmpty() {
		t.Errorf("exact base is dropped: %q", stripped.ToExpression())
	}
	if !stripped.Match(&song.LightSong{Loc: "anything"}) {
		t.Error("empty result matches everything")
	}

	// the receiver is unchanged
	if f.IsEmpty() {
		t.Error("input filter must not change")
	}
}

func TestWithoutBasePrefixRebases(t *testing.T) {
	f := mustParse(t, false, `(base "A/B/C")`)
	stripped := f.WithoutBasePrefix("A")
	base, ok := stripped.GetBase()
	if !ok || base != "B/C" {
		t.Errorf("rebased base = %q, %v", base, ok)
	}

	// prefix equal to a nested base: drop
	slash := mustParse(t, false, `(base "A/B")`).WithoutBasePrefix("A/B")
	if !slash.IsEmpty() {
		t.Errorf("expected empty filter, got %q", slash.ToExpression())
	}
}

func TestWithoutBasePrefixKeepsMisaligned(t *testing.T) {
	// "AB" starts with "A" but not on a slash boundary
	f := mustParse(t, false, `(base "AB")`)
	kept := f.WithoutBasePrefix("A")
	base, ok := kept.GetBase()
	if !ok || base != "AB" {
		t.Errorf("misaligned base is kept: %q, %v", base, ok)
	}
}

func TestWithoutBasePrefixEmptyIsIdentity(t *testing.T) {
	f := mustParse(t, false, `(base "A/B")`, `(title == "Rain")`)
	same := f.WithoutBasePrefix("")
	if same.ToExpression() != f.ToExpression() {
		t.Errorf("identity expected: %q vs %q", same.ToExpression(), f.ToExpression())
	}
}

func TestWithoutBasePrefixKeepsOtherChildren(t *testing.T) {
	f := mustParse(t, false, `((base "A") AND (title == "Rain"))`)
	f.Optimize()
	stripped := f.WithoutBasePrefix("A")
	if expr := stripped.ToExpression(); expr != `(title == "Rain")` {
		t.Errorf("expression = %q", expr)
	}
}

func TestTagMatchAbsentTag(t *testing.T) {
	noGenre := sampleSong()

	if mustParse(t, false, `(genre == "Pop")`).Match(noGenre) {
		t.Error("absent tag with non-empty pattern must not match")
	}
	if !mustParse(t, false, `(genre != "Pop")`).Match(noGenre) {
		t.Error("negated pattern matches absence")
	}
	if !mustParse(t, false, `(genre == "")`).Match(noGenre) {
		t.Error("empty pattern matches a missing tag")
	}
}

func TestMatchSongWithoutFormat(t *testing.T) {
	s := &song.LightSong{
		Loc:   "x.ogg",
		Mtime: time.Unix(1700000000, 0),
	}
	if mustParse(t, false, `(AudioFormat =~ "*:*:*")`).Match(s) {
		t.Error("unknown format never matches")
	}
}
