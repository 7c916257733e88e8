package query

import (
	"context"
	"fmt"
)

// SimilarSearcher is the phrase-similarity search capability. Lookup returns
// phrases near the given phrase text, ordered descending by score; the
// ordering is the searcher's contract and is not re-validated here. The call
// may be I/O-bound, hence the context.
type SimilarSearcher interface {
	Lookup(ctx context.Context, phrase string) ([]ScoredPhrase, error)
}

// ExpandSimilar replaces every Generalize leaf in e with a SimilarPhrases
// node holding the searcher's result verbatim. All other nodes recurse
// structurally. Like ExpandRefs, the call fully succeeds or fully fails.
func ExpandSimilar(ctx context.Context, e Expr, s SimilarSearcher) (Expr, error) {
	switch n := e.(type) {
	case *Generalize:
		matches, err := s.Lookup(ctx, n.Phrase.Text())
		if err != nil {
			return nil, fmt.Errorf("similar phrases for %q: %w", n.Phrase.Text(), err)
		}
		return &SimilarPhrases{Phrase: n.Phrase, N: n.N, Matches: matches}, nil
	case *NamedGroup:
		inner, err := ExpandSimilar(ctx, n.Inner, s)
		if err != nil {
			return nil, err
		}
		return &NamedGroup{Inner: inner, Name: n.Name}, nil
	case *Group:
		inner, err := ExpandSimilar(ctx, n.Inner, s)
		if err != nil {
			return nil, err
		}
		return &Group{Inner: inner}, nil
	case *NonCapGroup:
		inner, err := ExpandSimilar(ctx, n.Inner, s)
		if err != nil {
			return nil, err
		}
		return &NonCapGroup{Inner: inner}, nil
	case *Seq:
		items, err := expandSimilarAll(ctx, n.Items, s)
		if err != nil {
			return nil, err
		}
		return &Seq{Items: items}, nil
	case *Or:
		items, err := expandSimilarAll(ctx, n.Items, s)
		if err != nil {
			return nil, err
		}
		return &Or{Items: items}, nil
	case *Repeat:
		inner, err := ExpandSimilar(ctx, n.Inner, s)
		if err != nil {
			return nil, err
		}
		return &Repeat{Inner: inner, Min: n.Min, Max: n.Max}, nil
	case *Star:
		inner, err := ExpandSimilar(ctx, n.Inner, s)
		if err != nil {
			return nil, err
		}
		return &Star{Inner: inner}, nil
	case *Plus:
		inner, err := ExpandSimilar(ctx, n.Inner, s)
		if err != nil {
			return nil, err
		}
		return &Plus{Inner: inner}, nil
	case *And:
		left, err := ExpandSimilar(ctx, n.Left, s)
		if err != nil {
			return nil, err
		}
		right, err := ExpandSimilar(ctx, n.Right, s)
		if err != nil {
			return nil, err
		}
		return &And{Left: left, Right: right}, nil
	}
	return e, nil
}

func expandSimilarAll(ctx context.Context, items []Expr, s SimilarSearcher) ([]Expr, error) {
	out := make([]Expr, len(items))
	for i, e := range items {
		expanded, err := ExpandSimilar(ctx, e, s)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}

// ExpandQuery resolves table and pattern references first and similarity
// leaves second, so similarity lookups never see an unresolved reference.
func ExpandQuery(ctx context.Context, e Expr, tables map[string]*Table, patterns map[string]*PatternDef, s SimilarSearcher) (Expr, error) {
	expanded, err := ExpandRefs(e, tables, patterns)
	if err != nil {
		return nil, err
	}
	return ExpandSimilar(ctx, expanded, s)
}
