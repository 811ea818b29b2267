package filter

// optimizeNode rewrites one subtree: nested And lists are flattened,
// duplicate And children are merged, single-child And wrappers are
// unwrapped and double negation collapses. Children keep their
// first-occurrence order.
func optimizeNode(f Filter) Filter {
	switch n := f.(type) {
	case *And:
		children := optimizeChildren(n.children)
		if len(children) == 1 {
			return children[0]
		}
		return &And{children: children}

	case *Not:
		child := optimizeNode(n.child)
		if inner, ok := child.(*Not); ok {
			return inner.child
		}
		return &Not{child: child}

	default:
		return f
	}
}

// optimizeChildren optimizes an And child list: each child is rewritten,
// nested And children are spliced in place, and structural duplicates
// are dropped.
func optimizeChildren(children []Filter) []Filter {
	flat := make([]Filter, 0, len(children))
	for _, child := range children {
		child = optimizeNode(child)
		if and, ok := child.(*And); ok {
			flat = append(flat, and.children...)
		} else {
			flat = append(flat, child)
		}
	}

	out := flat[:0]
	for _, child := range flat {
		duplicate := false
		for _, kept := range out {
			if kept.Equals(child) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, child)
		}
	}
	return out
}
