package query

// NormalizeRepeat reduces a bounded repetition of inner to its canonical
// shape. It is a leaf-level rewrite, not a tree pass; callers apply it
// wherever a repetition is built or encountered.
//
// A nil result means the repetition contributes nothing to the match and the
// node is dropped entirely.
func NormalizeRepeat(inner Expr, min, max int) Expr {
	switch {
	case min == 0 && max == Unbounded:
		return &Star{Inner: inner}
	case min == 1 && max == Unbounded:
		return &Plus{Inner: inner}
	case min == 1 && max == 1:
		return inner
	case min == 0 && max == 0:
		return nil
	}
	return &Repeat{Inner: inner, Min: min, Max: max}
}
