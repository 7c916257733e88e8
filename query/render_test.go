package query

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{name: "word", expr: &Word{Text: "cat"}, want: "cat"},
		{name: "escaped word", expr: &Word{Text: "a*b"}, want: `a\*b`},
		{name: "pos tag", expr: &Pos{Tag: "NN"}, want: "NN"},
		{name: "chunk tag", expr: &Chunk{Tag: "NP"}, want: "NP"},
		{name: "wildcard", expr: &Wildcard{}, want: "."},
		{name: "dict", expr: &Dict{Name: "animals"}, want: "$animals"},
		{name: "pattern ref", expr: &PatternRef{Name: "np"}, want: "#np"},
		{
			name: "generalized word",
			expr: &Generalize{Phrase: PhraseOf("cat"), N: 3},
			want: "cat~3",
		},
		{
			name: "generalized phrase",
			expr: &Generalize{Phrase: PhraseOf("big", "cat"), N: 2},
			want: `"big cat"~2`,
		},
		{
			name: "similar phrases render like their request",
			expr: &SimilarPhrases{
				Phrase:  PhraseOf("big", "cat"),
				N:       2,
				Matches: []ScoredPhrase{{Phrase: PhraseOf("kitten"), Score: 0.9}},
			},
			want: `"big cat"~2`,
		},
		{
			name: "sequence joined by spaces",
			expr: &Seq{Items: []Expr{&Word{Text: "a"}, &Pos{Tag: "NN"}}},
			want: "a NN",
		},
		{
			name: "disjunction in braces",
			expr: &Or{Items: []Expr{&Word{Text: "a"}, &Word{Text: "b"}}},
			want: "{a,b}",
		},
		{
			name: "named capture",
			expr: &NamedGroup{Name: "x", Inner: &Word{Text: "a"}},
			want: "(?<x>a)",
		},
		{
			name: "unnamed capture",
			expr: &Group{Inner: &Word{Text: "a"}},
			want: "(a)",
		},
		{
			name: "non-capturing group",
			expr: &NonCapGroup{Inner: &Word{Text: "a"}},
			want: "(?:a)",
		},
		{
			name: "star on a leaf",
			expr: &Star{Inner: &Word{Text: "a"}},
			want: "a*",
		},
		{
			name: "plus on a sequence needs grouping",
			expr: &Plus{Inner: &Seq{Items: []Expr{&Word{Text: "a"}, &Word{Text: "b"}}}},
			want: "(?:a b)+",
		},
		{
			name: "repetition on a disjunction binds without grouping",
			expr: &Repeat{Inner: &Or{Items: []Expr{&Word{Text: "a"}, &Word{Text: "b"}}}, Min: 2, Max: 4},
			want: "{a,b}[2,4]",
		},
		{
			name: "star on a star needs grouping",
			expr: &Star{Inner: &Star{Inner: &Word{Text: "a"}}},
			want: "(?:a*)*",
		},
		{
			name: "quantifier on a capture binds without grouping",
			expr: &Plus{Inner: &Group{Inner: &Word{Text: "a"}}},
			want: "(a)+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.expr))
		})
	}
}

func TestRender_PanicsOnInternalOnlyNodes(t *testing.T) {
	assert.Panics(t, func() {
		Render(&And{Left: &Word{Text: "a"}, Right: &Word{Text: "b"}})
	})
	assert.Panics(t, func() {
		Render(&PosFromWord{Word: "run", Counts: map[string]int{"VB": 3}})
	})
}

func TestRender_RoundTrip(t *testing.T) {
	queries := []string{
		"a|b c*",
		"(?<x>a b+)",
		"$animals",
		"#np",
		"cat~3",
		`"big cat"~2`,
		"{a,b,c d}",
		"DT JJ* NN",
		"(?:NP|VP)+ .",
		"a[2,4]",
		`hello\*world`,
		"(a) (?<n>b)",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			first, err := Parse(q, true)
			require.NoError(t, err)

			again, err := Parse(Render(first), true)
			require.NoError(t, err, "rendered text %q must re-parse", Render(first))

			if !reflect.DeepEqual(first, again) {
				t.Errorf("round trip changed the tree:\n first: %v\nsecond: %v\n  text: %s", first, again, Render(first))
			}
		})
	}
}
