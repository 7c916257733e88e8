package query

import (
	"fmt"
	"strings"
)

// Unbounded is the sentinel used in place of an integer maximum to mean
// "no upper bound".
const Unbounded = -1

// Kind discriminates the closed set of expression variants.
type Kind int

const (
	KindWord Kind = iota
	KindPos
	KindChunk
	KindDict
	KindPatternRef
	KindPosFromWord
	KindGeneralize
	KindSimilarPhrases
	KindWildcard
	KindNamedGroup
	KindGroup
	KindNonCapGroup
	KindSeq
	KindOr
	KindRepeat
	KindStar
	KindPlus
	KindAnd
)

// Expr is the interface implemented by every query AST node. The set of
// implementations is closed; every pass type-switches over it. Trees are
// immutable: passes build new trees and share unchanged subtrees.
type Expr interface {
	Kind() Kind
	String() string // debugging or printing purpose
	expr()          // marker, keeps the variant set closed
}

var (
	_ Expr = (*Word)(nil)
	_ Expr = (*Pos)(nil)
	_ Expr = (*Chunk)(nil)
	_ Expr = (*Dict)(nil)
	_ Expr = (*PatternRef)(nil)
	_ Expr = (*PosFromWord)(nil)
	_ Expr = (*Generalize)(nil)
	_ Expr = (*SimilarPhrases)(nil)
	_ Expr = (*Wildcard)(nil)
	_ Expr = (*NamedGroup)(nil)
	_ Expr = (*Group)(nil)
	_ Expr = (*NonCapGroup)(nil)
	_ Expr = (*Seq)(nil)
	_ Expr = (*Or)(nil)
	_ Expr = (*Repeat)(nil)
	_ Expr = (*Star)(nil)
	_ Expr = (*Plus)(nil)
	_ Expr = (*And)(nil)
)

// Word matches a token with exactly the given text.
type Word struct {
	Text string
}

func (w *Word) Kind() Kind     { return KindWord }
func (w *Word) String() string { return fmt.Sprintf("Word(%s)", w.Text) }
func (w *Word) expr()          {}

// Pos matches a token carrying the given part-of-speech tag.
type Pos struct {
	Tag string
}

func (p *Pos) Kind() Kind     { return KindPos }
func (p *Pos) String() string { return fmt.Sprintf("Pos(%s)", p.Tag) }
func (p *Pos) expr()          {}

// Chunk matches a token inside a phrase chunk of the given tag.
type Chunk struct {
	Tag string
}

func (c *Chunk) Kind() Kind     { return KindChunk }
func (c *Chunk) String() string { return fmt.Sprintf("Chunk(%s)", c.Tag) }
func (c *Chunk) expr()          {}

// Dict is an unexpanded reference to an external one-column table; ExpandRefs
// replaces it with a disjunction over the table's positive rows.
type Dict struct {
	Name string
}

func (d *Dict) Kind() Kind     { return KindDict }
func (d *Dict) String() string { return fmt.Sprintf("Dict(%s)", d.Name) }
func (d *Dict) expr()          {}

// PatternRef is an unexpanded reference to a stored sub-pattern.
type PatternRef struct {
	Name string
}

func (p *PatternRef) Kind() Kind     { return KindPatternRef }
func (p *PatternRef) String() string { return fmt.Sprintf("PatternRef(%s)", p.Name) }
func (p *PatternRef) expr()          {}

// PosFromWord is an internal-only leaf carrying per-tag counts observed for a
// word, with an optional disambiguating tag hint. It is never produced by the
// parser and has no textual syntax.
type PosFromWord struct {
	Hint   string // disambiguating tag, empty when absent
	Word   string
	Counts map[string]int // tag -> observed count
}

func (p *PosFromWord) Kind() Kind     { return KindPosFromWord }
func (p *PosFromWord) String() string { return fmt.Sprintf("PosFromWord(%s)", p.Word) }
func (p *PosFromWord) expr()          {}

// Phrase is an ordered sequence of Word nodes.
type Phrase []*Word

// PhraseOf builds a Phrase from plain word texts.
func PhraseOf(words ...string) Phrase {
	p := make(Phrase, len(words))
	for i, w := range words {
		p[i] = &Word{Text: w}
	}
	return p
}

// Text joins the phrase's words with single spaces.
func (p Phrase) Text() string {
	parts := make([]string, len(p))
	for i, w := range p {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// Generalize requests generalization of a phrase to its N nearest similar
// phrases. ExpandSimilar resolves it to a SimilarPhrases node.
type Generalize struct {
	Phrase Phrase
	N      int
}

func (g *Generalize) Kind() Kind     { return KindGeneralize }
func (g *Generalize) String() string { return fmt.Sprintf("Generalize(%s~%d)", g.Phrase.Text(), g.N) }
func (g *Generalize) expr()          {}

// ScoredPhrase is a phrase paired with the similarity score assigned to it by
// the search capability.
type ScoredPhrase struct {
	Phrase Phrase
	Score  float64
}

// SimilarPhrases is the resolved form of Generalize. Matches keep the
// searcher's ordering, descending by score.
type SimilarPhrases struct {
	Phrase  Phrase
	N       int
	Matches []ScoredPhrase
}

func (s *SimilarPhrases) Kind() Kind { return KindSimilarPhrases }
func (s *SimilarPhrases) String() string {
	return fmt.Sprintf("SimilarPhrases(%s~%d, %d matches)", s.Phrase.Text(), s.N, len(s.Matches))
}
func (s *SimilarPhrases) expr() {}

// Wildcard matches any single token.
type Wildcard struct{}

func (w *Wildcard) Kind() Kind     { return KindWildcard }
func (w *Wildcard) String() string { return "Wildcard" }
func (w *Wildcard) expr()          {}

// NamedGroup is a named capture group. Names need not be unique; extraction
// preserves duplicates in encounter order.
type NamedGroup struct {
	Inner Expr
	Name  string
}

func (n *NamedGroup) Kind() Kind     { return KindNamedGroup }
func (n *NamedGroup) String() string { return fmt.Sprintf("Named(%s, %s)", n.Name, n.Inner) }
func (n *NamedGroup) expr()          {}

// Group is an unnamed capture group.
type Group struct {
	Inner Expr
}

func (g *Group) Kind() Kind     { return KindGroup }
func (g *Group) String() string { return fmt.Sprintf("Group(%s)", g.Inner) }
func (g *Group) expr()          {}

// NonCapGroup groups an expression without capturing it.
type NonCapGroup struct {
	Inner Expr
}

func (g *NonCapGroup) Kind() Kind     { return KindNonCapGroup }
func (g *NonCapGroup) String() string { return fmt.Sprintf("NonCap(%s)", g.Inner) }
func (g *NonCapGroup) expr()          {}

// Seq is the concatenation of its children.
type Seq struct {
	Items []Expr
}

func (s *Seq) Kind() Kind     { return KindSeq }
func (s *Seq) String() string { return "Seq(" + joinExprs(s.Items) + ")" }
func (s *Seq) expr()          {}

// Or is the alternation of its children.
type Or struct {
	Items []Expr
}

func (o *Or) Kind() Kind     { return KindOr }
func (o *Or) String() string { return "Or(" + joinExprs(o.Items) + ")" }
func (o *Or) expr()          {}

// Repeat matches its inner expression between Min and Max times; Max may be
// Unbounded. Construct via NormalizeRepeat so canonical shapes stay canonical.
type Repeat struct {
	Inner    Expr
	Min, Max int
}

func (r *Repeat) Kind() Kind     { return KindRepeat }
func (r *Repeat) String() string { return fmt.Sprintf("Repeat(%s, %d, %d)", r.Inner, r.Min, r.Max) }
func (r *Repeat) expr()          {}

// Star matches its inner expression zero or more times.
type Star struct {
	Inner Expr
}

func (s *Star) Kind() Kind     { return KindStar }
func (s *Star) String() string { return fmt.Sprintf("Star(%s)", s.Inner) }
func (s *Star) expr()          {}

// Plus matches its inner expression one or more times.
type Plus struct {
	Inner Expr
}

func (p *Plus) Kind() Kind     { return KindPlus }
func (p *Plus) String() string { return fmt.Sprintf("Plus(%s)", p.Inner) }
func (p *Plus) expr()          {}

// And is the conjunction of two match constraints. It is internal-only and has
// no textual syntax; neither the parser nor any pass here produces it.
type And struct {
	Left, Right Expr
}

func (a *And) Kind() Kind     { return KindAnd }
func (a *And) String() string { return fmt.Sprintf("And(%s, %s)", a.Left, a.Right) }
func (a *And) expr()          {}

// NewSeq builds a concatenation, collapsing a single-element list to that
// element.
func NewSeq(items []Expr) Expr {
	if len(items) == 1 {
		return items[0]
	}
	return &Seq{Items: items}
}

// NewOr builds an alternation, collapsing a single-element list to that
// element.
func NewOr(items []Expr) Expr {
	if len(items) == 1 {
		return items[0]
	}
	return &Or{Items: items}
}

func joinExprs(items []Expr) string {
	parts := make([]string, len(items))
	for i, e := range items {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
