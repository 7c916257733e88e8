package query

// EraseCaptures returns a capture-free copy of e: every named and unnamed
// capture group becomes a non-capturing group. The input tree is never
// mutated; unchanged leaves are shared.
func EraseCaptures(e Expr) Expr {
	switch n := e.(type) {
	case *NamedGroup:
		return &NonCapGroup{Inner: EraseCaptures(n.Inner)}
	case *Group:
		return &NonCapGroup{Inner: EraseCaptures(n.Inner)}
	case *NonCapGroup:
		return &NonCapGroup{Inner: EraseCaptures(n.Inner)}
	case *Seq:
		return &Seq{Items: eraseAll(n.Items)}
	case *Or:
		return &Or{Items: eraseAll(n.Items)}
	case *Repeat:
		return &Repeat{Inner: EraseCaptures(n.Inner), Min: n.Min, Max: n.Max}
	case *Star:
		return &Star{Inner: EraseCaptures(n.Inner)}
	case *Plus:
		return &Plus{Inner: EraseCaptures(n.Inner)}
	case *And:
		return &And{Left: EraseCaptures(n.Left), Right: EraseCaptures(n.Right)}
	}
	// leaves pass through unchanged
	return e
}

func eraseAll(items []Expr) []Expr {
	out := make([]Expr, len(items))
	for i, e := range items {
		out[i] = EraseCaptures(e)
	}
	return out
}

// Captures collects every capture group in e in pre-order, left to right.
// A capture group contributes itself and is still descended into, so nested
// captures follow their enclosing capture. Duplicated names are preserved in
// encounter order.
func Captures(e Expr) []Expr {
	var out []Expr
	collectCaptures(e, &out)
	return out
}

func collectCaptures(e Expr, out *[]Expr) {
	switch n := e.(type) {
	case *NamedGroup:
		*out = append(*out, n)
		collectCaptures(n.Inner, out)
	case *Group:
		*out = append(*out, n)
		collectCaptures(n.Inner, out)
	case *NonCapGroup:
		collectCaptures(n.Inner, out)
	case *Seq:
		for _, c := range n.Items {
			collectCaptures(c, out)
		}
	case *Or:
		for _, c := range n.Items {
			collectCaptures(c, out)
		}
	case *Repeat:
		collectCaptures(n.Inner, out)
	case *Star:
		collectCaptures(n.Inner, out)
	case *Plus:
		collectCaptures(n.Inner, out)
	case *And:
		collectCaptures(n.Left, out)
		collectCaptures(n.Right, out)
	}
	// leaves contribute nothing
}
