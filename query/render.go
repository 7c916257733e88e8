package query

import (
	"fmt"
	"strings"
)

// Render converts an expression back into query text. Parsing the result
// yields a structurally equal tree for every renderable shape.
//
// And and PosFromWord have no textual syntax; they are internal-only and must
// never reach the serializer, so Render panics on them rather than returning
// an error.
func Render(e Expr) string {
	var b strings.Builder
	render(e, &b)
	return b.String()
}

func render(e Expr, b *strings.Builder) {
	switch n := e.(type) {
	case *Word:
		b.WriteString(escapeWord(n.Text))
	case *Pos:
		b.WriteString(n.Tag)
	case *Chunk:
		b.WriteString(n.Tag)
	case *Dict:
		b.WriteByte('$')
		b.WriteString(n.Name)
	case *PatternRef:
		b.WriteByte('#')
		b.WriteString(n.Name)
	case *Wildcard:
		b.WriteByte('.')
	case *Generalize:
		renderPhraseRef(n.Phrase, n.N, b)
	case *SimilarPhrases:
		renderPhraseRef(n.Phrase, n.N, b)
	case *NamedGroup:
		fmt.Fprintf(b, "(?<%s>", n.Name)
		render(n.Inner, b)
		b.WriteByte(')')
	case *Group:
		b.WriteByte('(')
		render(n.Inner, b)
		b.WriteByte(')')
	case *NonCapGroup:
		b.WriteString("(?:")
		render(n.Inner, b)
		b.WriteByte(')')
	case *Seq:
		for i, c := range n.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			render(c, b)
		}
	case *Or:
		b.WriteByte('{')
		for i, c := range n.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			render(c, b)
		}
		b.WriteByte('}')
	case *Star:
		renderQuantifiable(n.Inner, b)
		b.WriteByte('*')
	case *Plus:
		renderQuantifiable(n.Inner, b)
		b.WriteByte('+')
	case *Repeat:
		renderQuantifiable(n.Inner, b)
		fmt.Fprintf(b, "[%d,%d]", n.Min, n.Max)
	default:
		panic(fmt.Sprintf("query: %T has no textual syntax", e))
	}
}

// renderQuantifiable renders e so that a trailing quantifier binds to the
// whole of it: leaves, captures, disjunctions and non-capturing groups bind
// tightly enough on their own, anything else is wrapped in (?:...).
func renderQuantifiable(e Expr, b *strings.Builder) {
	switch e.(type) {
	case *Seq, *Star, *Plus, *Repeat:
		b.WriteString("(?:")
		render(e, b)
		b.WriteByte(')')
	default:
		render(e, b)
	}
}

func renderPhraseRef(p Phrase, n int, b *strings.Builder) {
	if len(p) == 1 {
		b.WriteString(escapeWord(p[0].Text))
	} else {
		b.WriteByte('"')
		for i, w := range p {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(escapeWord(w.Text))
		}
		b.WriteByte('"')
	}
	fmt.Fprintf(b, "~%d", n)
}

// escapeWord backslash-escapes every reserved or whitespace character so the
// rendered word scans back to the same payload.
func escapeWord(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || isReserved(c) || isSpace(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
