package query

// Bounds computes the minimum and maximum number of tokens e can match.
// max == Unbounded means no upper bound exists.
//
// Unresolved references (Dict, PatternRef, Generalize) are conservatively
// (1, Unbounded): they match at least one token and their expansion is
// unknown. For a resolved SimilarPhrases the candidates are the original
// phrase plus the first N matches.
func Bounds(e Expr) (min, max int) {
	switch n := e.(type) {
	case *Dict, *PatternRef, *Generalize:
		return 1, Unbounded
	case *SimilarPhrases:
		min, max = len(n.Phrase), len(n.Phrase)
		limit := n.N
		if limit > len(n.Matches) {
			limit = len(n.Matches)
		}
		for _, m := range n.Matches[:limit] {
			l := len(m.Phrase)
			if l < min {
				min = l
			}
			if l > max {
				max = l
			}
		}
		return min, max
	case *Seq:
		for _, c := range n.Items {
			cmin, cmax := Bounds(c)
			min += cmin
			if max == Unbounded || cmax == Unbounded {
				max = Unbounded
			} else {
				max += cmax
			}
		}
		return min, max
	case *Or:
		for i, c := range n.Items {
			cmin, cmax := Bounds(c)
			if i == 0 {
				min, max = cmin, cmax
				continue
			}
			if cmin < min {
				min = cmin
			}
			if max == Unbounded || cmax == Unbounded {
				max = Unbounded
			} else if cmax > max {
				max = cmax
			}
		}
		return min, max
	case *Repeat:
		bmin, bmax := Bounds(n.Inner)
		min = bmin * n.Min
		if bmax == Unbounded || n.Max == Unbounded {
			max = Unbounded
		} else {
			max = bmax * n.Max
		}
		return min, max
	case *Star:
		return 0, Unbounded
	case *Plus:
		bmin, _ := Bounds(n.Inner)
		return bmin, Unbounded
	case *And:
		// min of mins, max of maxes; a coarse approximation
		lmin, lmax := Bounds(n.Left)
		rmin, rmax := Bounds(n.Right)
		min = lmin
		if rmin < min {
			min = rmin
		}
		if lmax == Unbounded || rmax == Unbounded {
			max = Unbounded
		} else {
			max = lmax
			if rmax > max {
				max = rmax
			}
		}
		return min, max
	case *NamedGroup:
		return Bounds(n.Inner)
	case *Group:
		return Bounds(n.Inner)
	case *NonCapGroup:
		return Bounds(n.Inner)
	}
	// any other leaf matches exactly one token
	return 1, 1
}
