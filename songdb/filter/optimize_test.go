package filter

import "testing"

func TestOptimizeFlattensNestedAnd(t *testing.T) {
	f := mustParse(t, false, `(((title == "a") AND (artist == "b")) AND (genre == "c"))`)
	f.Optimize()
	if n := len(f.root.children); n != 3 {
		t.Fatalf("expected 3 flattened children, got %d", n)
	}
	want := `((title == "a") AND (artist == "b") AND (genre == "c"))`
	if expr := f.ToExpression(); expr != want {
		t.Errorf("expression = %q", expr)
	}
}

func TestOptimizeCollapsesDoubleNegation(t *testing.T) {
	f := mustParse(t, false, `(!(!(title == "Rain")))`)
	f.Optimize()
	if expr := f.ToExpression(); expr != `(title == "Rain")` {
		t.Errorf("expression = %q", expr)
	}
	if !f.Match(sampleSong()) {
		t.Error("double negation matches like the inner filter")
	}
}

func TestOptimizeMergesDuplicates(t *testing.T) {
	f := mustParse(t, false, `(title == "Rain")`, `(title == "Rain")`)
	f.Optimize()
	if n := len(f.root.children); n != 1 {
		t.Fatalf("expected duplicates merged, got %d children", n)
	}
}

func TestOptimizeKeepsOrder(t *testing.T) {
	f := mustParse(t, false, `(title == "b")`, `(title == "a")`, `(title == "b")`)
	f.Optimize()
	want := `((title == "b") AND (title == "a"))`
	if expr := f.ToExpression(); expr != want {
		t.Errorf("first-occurrence order must be kept: %q", expr)
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	inputs := [][]string{
		{`(((title == "a") AND (artist == "b")) AND (title == "a"))`},
		{`(!(!(prio >= 3)))`},
		{`(base "A")`, `(base "A")`},
	}
	for _, args := range inputs {
		f := mustParse(t, false, args...)
		f.Optimize()
		once := f.ToExpression()
		f.Optimize()
		if twice := f.ToExpression(); twice != once {
			t.Errorf("%q: optimize not idempotent: %q -> %q", args, once, twice)
		}
	}
}

func TestOptimizeRootStaysConjunction(t *testing.T) {
	f := mustParse(t, false, `(title == "Rain")`)
	f.Optimize()
	if len(f.root.children) != 1 {
		t.Fatal("single child stays under the root conjunction")
	}
	if expr := f.ToExpression(); expr != `(title == "Rain")` {
		t.Errorf("expression = %q", expr)
	}
}
