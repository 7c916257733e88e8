package query

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			name:  "bare word",
			input: "cat",
			want:  &Word{Text: "cat"},
		},
		{
			name:  "wildcard",
			input: ".",
			want:  &Wildcard{},
		},
		{
			name:  "pos tag wins over word",
			input: "NN",
			want:  &Pos{Tag: "NN"},
		},
		{
			name:  "pos tag with dollar sign",
			input: "PRP$",
			want:  &Pos{Tag: "PRP$"},
		},
		{
			name:  "chunk tag",
			input: "ADJP",
			want:  &Chunk{Tag: "ADJP"},
		},
		{
			name:  "dictionary reference",
			input: "$animals",
			want:  &Dict{Name: "animals"},
		},
		{
			name:  "pattern reference",
			input: "#np",
			want:  &PatternRef{Name: "np"},
		},
		{
			name:  "generalized word",
			input: "cat~3",
			want:  &Generalize{Phrase: PhraseOf("cat"), N: 3},
		},
		{
			name:  "generalized phrase",
			input: `"big cat"~5`,
			want:  &Generalize{Phrase: PhraseOf("big", "cat"), N: 5},
		},
		{
			name:  "generalized phrase defaults to zero",
			input: `"big cat"`,
			want:  &Generalize{Phrase: PhraseOf("big", "cat"), N: 0},
		},
		{
			name:  "sequence",
			input: "the big cat",
			want: &Seq{Items: []Expr{
				&Word{Text: "the"}, &Word{Text: "big"}, &Word{Text: "cat"},
			}},
		},
		{
			name:  "alternation with star",
			input: "a|b c*",
			want: &Or{Items: []Expr{
				&Word{Text: "a"},
				&Seq{Items: []Expr{
					&Word{Text: "b"},
					&Star{Inner: &Word{Text: "c"}},
				}},
			}},
		},
		{
			name:  "named capture",
			input: "(?<x>a b+)",
			want: &NamedGroup{
				Name: "x",
				Inner: &Seq{Items: []Expr{
					&Word{Text: "a"},
					&Plus{Inner: &Word{Text: "b"}},
				}},
			},
		},
		{
			name:  "unnamed capture",
			input: "(a)",
			want:  &Group{Inner: &Word{Text: "a"}},
		},
		{
			name:  "non-capturing group",
			input: "(?:a b)",
			want: &NonCapGroup{Inner: &Seq{Items: []Expr{
				&Word{Text: "a"}, &Word{Text: "b"},
			}}},
		},
		{
			name:  "brace disjunction",
			input: "{a,b,c d}",
			want: &Or{Items: []Expr{
				&Word{Text: "a"},
				&Word{Text: "b"},
				&Seq{Items: []Expr{&Word{Text: "c"}, &Word{Text: "d"}}},
			}},
		},
		{
			name:  "singleton brace disjunction collapses",
			input: "{a}",
			want:  &Word{Text: "a"},
		},
		{
			name:  "explicit repetition",
			input: "a[2,4]",
			want:  &Repeat{Inner: &Word{Text: "a"}, Min: 2, Max: 4},
		},
		{
			name:  "large finite repetition kept",
			input: "a[0,9999]",
			want:  &Repeat{Inner: &Word{Text: "a"}, Min: 0, Max: 9999},
		},
		{
			name:  "repetition one-one unwraps",
			input: "a[1,1]",
			want:  &Word{Text: "a"},
		},
		{
			name:  "repetition zero-zero is dropped",
			input: "a b[0,0]",
			want:  &Word{Text: "a"},
		},
		{
			name:  "quantified group",
			input: "(?:a b)+",
			want: &Plus{Inner: &NonCapGroup{Inner: &Seq{Items: []Expr{
				&Word{Text: "a"}, &Word{Text: "b"},
			}}}},
		},
		{
			name:  "quantified disjunction",
			input: "{a,b}*",
			want: &Star{Inner: &Or{Items: []Expr{
				&Word{Text: "a"}, &Word{Text: "b"},
			}}},
		},
		{
			name:  "escaped reserved character",
			input: `a\*b`,
			want:  &Word{Text: "a*b"},
		},
		{
			name:  "escaped quote in word",
			input: `can\"t`,
			want:  &Word{Text: `can"t`},
		},
		{
			name:  "nested captures",
			input: "(?<outer>a (?<inner>b))",
			want: &NamedGroup{
				Name: "outer",
				Inner: &Seq{Items: []Expr{
					&Word{Text: "a"},
					&NamedGroup{Name: "inner", Inner: &Word{Text: "b"}},
				}},
			},
		},
		{
			name:  "alternation inside group",
			input: "(?:a|b) c",
			want: &Seq{Items: []Expr{
				&NonCapGroup{Inner: &Or{Items: []Expr{
					&Word{Text: "a"}, &Word{Text: "b"},
				}}},
				&Word{Text: "c"},
			}},
		},
		{
			name:  "leading and trailing whitespace",
			input: "  the NN  ",
			want: &Seq{Items: []Expr{
				&Word{Text: "the"}, &Pos{Tag: "NN"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, true)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_CapturesDisallowed(t *testing.T) {
	got, err := Parse("(?<x>a) (b)", false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := &Seq{Items: []Expr{
		&NonCapGroup{Inner: &Word{Text: "a"}},
		&NonCapGroup{Inner: &Word{Text: "b"}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantCol int
	}{
		{name: "empty input", input: "", wantCol: 1},
		{name: "unclosed group", input: "(a b", wantCol: 5},
		{name: "unclosed brace", input: "{a,b", wantCol: 5},
		{name: "dangling alternation", input: "a|", wantCol: 3},
		{name: "missing capture name", input: "(?<>a)", wantCol: 4},
		{name: "bad group introducer", input: "(?a)", wantCol: 3},
		{name: "bare reserved character", input: "a ^ b", wantCol: 3},
		{name: "missing count after tilde", input: "cat~x", wantCol: 5},
		{name: "unterminated phrase", input: `"a b`, wantCol: 5},
		{name: "reversed repetition bounds", input: "a[3,2]", wantCol: 7},
		{name: "negative bound unparseable", input: "a[0,-1]", wantCol: 5},
		{name: "missing table name", input: "$ x", wantCol: 2},
		{name: "trailing garbage", input: "a)", wantCol: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, true)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			perr, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("Parse(%q) error = %T, want *ParseError", tt.input, err)
			}
			if perr.Column != tt.wantCol {
				t.Errorf("Parse(%q) column = %d, want %d (%s)", tt.input, perr.Column, tt.wantCol, perr.Msg)
			}
		})
	}
}

func TestParse_DepthLimit(t *testing.T) {
	deep := strings.Repeat("(?:", 500) + "a" + strings.Repeat(")", 500)
	_, err := Parse(deep, true)
	if err == nil {
		t.Fatal("Parse() succeeded on pathologically nested input, want error")
	}
}
