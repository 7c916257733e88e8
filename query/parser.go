package query

import (
	"fmt"
	"strings"
)

// ParseError reports a query that could not be assigned to any grammar
// production. Column is the 1-based position of the farthest point the parser
// reached before giving up, suitable for editor-style highlighting.
type ParseError struct {
	Msg    string
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("column %d: %s", e.Column, e.Msg)
}

// maxNestingDepth bounds recursion while parsing so that adversarial
// deeply-nested input cannot exhaust the stack.
const maxNestingDepth = 128

// reservedChars are the characters a bare word may not contain unless
// backslash-escaped. Whitespace is likewise reserved.
const reservedChars = "|][^(){}*+,\"~"

// Parse converts query text into an expression tree, or a *ParseError when
// the text matches no grammar production. No partial tree is ever returned.
//
// When allowCaptures is false, every capture group in the parsed tree is
// rewritten to a non-capturing group before being returned.
func Parse(text string, allowCaptures bool) (Expr, error) {
	p := &parser{input: text, errPos: -1}
	p.skipSpace()
	e, ok := p.parseExpr()
	if ok {
		p.skipSpace()
		if p.pos < len(p.input) {
			p.fail("unexpected character")
			ok = false
		}
	}
	if !ok {
		col := p.errPos + 1
		if col < 1 {
			col = 1
		}
		return nil, &ParseError{Msg: p.errMsg, Column: col}
	}
	if !allowCaptures {
		e = EraseCaptures(e)
	}
	return e, nil
}

type parser struct {
	input  string
	pos    int
	depth  int
	errPos int
	errMsg string
}

// fail records a failure at the current position, keeping only the farthest
// one seen so far.
func (p *parser) fail(msg string) {
	if p.pos >= p.errPos {
		p.errPos = p.pos
		p.errMsg = msg
	}
}

// parseExpr parses a '|'-separated list of branches.
func (p *parser) parseExpr() (Expr, bool) {
	first, ok := p.parseBranch()
	if !ok {
		return nil, false
	}
	items := []Expr{first}
	for {
		p.skipSpace()
		if !p.eat('|') {
			break
		}
		p.skipSpace()
		next, ok := p.parseBranch()
		if !ok {
			return nil, false
		}
		items = append(items, next)
	}
	return NewOr(items), true
}

// parseBranch parses one or more concatenated pieces. Whitespace separates
// pieces but is never itself a token.
func (p *parser) parseBranch() (Expr, bool) {
	var items []Expr
	pieces := 0
	for {
		p.skipSpace()
		if p.atEnd() || p.peekAny("|)},") {
			break
		}
		e, ok := p.parsePiece()
		if !ok {
			return nil, false
		}
		pieces++
		// a piece normalized away, e.g. x[0,0], contributes nothing
		if e != nil {
			items = append(items, e)
		}
	}
	if pieces == 0 {
		p.fail("expected expression")
		return nil, false
	}
	return NewSeq(items), true
}

// parsePiece parses an operand with an optional trailing quantifier. The
// quantifier must be adjacent to its operand.
func (p *parser) parsePiece() (Expr, bool) {
	e, ok := p.parseOperand()
	if !ok {
		return nil, false
	}
	switch {
	case p.eat('*'):
		return &Star{Inner: e}, true
	case p.eat('+'):
		return &Plus{Inner: e}, true
	case p.peekIs('['):
		min, max, ok := p.parseBounds()
		if !ok {
			return nil, false
		}
		return NormalizeRepeat(e, min, max), true
	}
	return e, true
}

func (p *parser) parseOperand() (Expr, bool) {
	switch {
	case p.peekIs('('):
		return p.parseGroup()
	case p.peekIs('{'):
		return p.parseBraceDisjunction()
	}
	return p.parseAtom()
}

// parseGroup parses (?<name>expr), (?:expr) or (expr).
func (p *parser) parseGroup() (Expr, bool) {
	if !p.push() {
		return nil, false
	}
	defer p.pop()
	p.eat('(')
	if p.eat('?') {
		if p.eat(':') {
			e, ok := p.parseExpr()
			if !ok || !p.expect(')') {
				return nil, false
			}
			return &NonCapGroup{Inner: e}, true
		}
		if p.eat('<') {
			name, ok := p.captureName()
			if !ok {
				p.fail("expected capture name")
				return nil, false
			}
			if !p.expect('>') {
				return nil, false
			}
			e, ok := p.parseExpr()
			if !ok || !p.expect(')') {
				return nil, false
			}
			return &NamedGroup{Inner: e, Name: name}, true
		}
		p.fail("expected ':' or '<' after '(?'")
		return nil, false
	}
	e, ok := p.parseExpr()
	if !ok || !p.expect(')') {
		return nil, false
	}
	return &Group{Inner: e}, true
}

// parseBraceDisjunction parses {expr,expr,...}; a singleton list collapses to
// its only element.
func (p *parser) parseBraceDisjunction() (Expr, bool) {
	if !p.push() {
		return nil, false
	}
	defer p.pop()
	p.eat('{')
	p.skipSpace()
	first, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	items := []Expr{first}
	for {
		p.skipSpace()
		if !p.eat(',') {
			break
		}
		p.skipSpace()
		next, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		items = append(items, next)
	}
	if !p.expect('}') {
		return nil, false
	}
	return NewOr(items), true
}

// parseAtom resolves the grammar's atom alternatives in their documented
// order: wildcard, tag, dictionary reference, pattern reference, generalized
// word or phrase, bare word. Tags win over identical bare words.
func (p *parser) parseAtom() (Expr, bool) {
	c, ok := p.peek()
	if !ok {
		p.fail("unexpected end of input")
		return nil, false
	}
	switch c {
	case '.':
		p.pos++
		return &Wildcard{}, true
	case '$':
		p.pos++
		name, ok := p.word()
		if !ok {
			p.fail("expected table name after '$'")
			return nil, false
		}
		return &Dict{Name: name}, true
	case '#':
		p.pos++
		name, ok := p.word()
		if !ok {
			p.fail("expected pattern name after '#'")
			return nil, false
		}
		return &PatternRef{Name: name}, true
	case '"':
		return p.parseQuotedPhrase()
	}
	w, ok := p.word()
	if !ok {
		p.fail("unexpected character")
		return nil, false
	}
	if p.eat('~') {
		n, ok := p.integer()
		if !ok {
			p.fail("expected count after '~'")
			return nil, false
		}
		return &Generalize{Phrase: PhraseOf(w), N: n}, true
	}
	if IsPosTag(w) {
		return &Pos{Tag: w}, true
	}
	if IsChunkTag(w) {
		return &Chunk{Tag: w}, true
	}
	return &Word{Text: w}, true
}

// parseQuotedPhrase parses "word word..." with an optional ~N suffix, which
// defaults to 0.
func (p *parser) parseQuotedPhrase() (Expr, bool) {
	p.eat('"')
	var words []string
	for {
		p.skipSpace()
		if p.atEnd() {
			p.fail("unterminated phrase")
			return nil, false
		}
		if p.peekIs('"') {
			break
		}
		w, ok := p.word()
		if !ok {
			p.fail("expected word in phrase")
			return nil, false
		}
		words = append(words, w)
	}
	p.eat('"')
	if len(words) == 0 {
		p.fail("empty phrase")
		return nil, false
	}
	n := 0
	if p.eat('~') {
		var ok bool
		n, ok = p.integer()
		if !ok {
			p.fail("expected count after '~'")
			return nil, false
		}
	}
	return &Generalize{Phrase: PhraseOf(words...), N: n}, true
}

// parseBounds parses an explicit [min,max] repetition. Both bounds must be
// finite non-negative integers with min <= max; unbounded repetition is only
// reachable via '*' and '+'.
func (p *parser) parseBounds() (min, max int, ok bool) {
	p.eat('[')
	p.skipSpace()
	min, ok = p.integer()
	if !ok {
		p.fail("expected repetition minimum")
		return 0, 0, false
	}
	p.skipSpace()
	if !p.expect(',') {
		return 0, 0, false
	}
	p.skipSpace()
	max, ok = p.integer()
	if !ok {
		p.fail("expected repetition maximum")
		return 0, 0, false
	}
	p.skipSpace()
	if !p.expect(']') {
		return 0, 0, false
	}
	if max < min {
		p.fail("repetition maximum is smaller than minimum")
		return 0, 0, false
	}
	return min, max, true
}

// word scans a run of non-reserved, non-whitespace characters, resolving
// backslash escapes (`\X` becomes X). ok is false when nothing was consumed.
func (p *parser) word() (string, bool) {
	var b strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '\\' {
			if p.pos+1 >= len(p.input) {
				p.fail("unterminated escape")
				return "", false
			}
			b.WriteByte(p.input[p.pos+1])
			p.pos += 2
			continue
		}
		if isReserved(c) || isSpace(c) {
			break
		}
		b.WriteByte(c)
		p.pos++
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// captureName scans a [A-Za-z0-9]+ capture group name.
func (p *parser) captureName() (string, bool) {
	start := p.pos
	for p.pos < len(p.input) && isAlnum(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", false
	}
	return p.input[start:p.pos], true
}

func (p *parser) integer() (int, bool) {
	start := p.pos
	n := 0
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		n = n*10 + int(p.input[p.pos]-'0')
		p.pos++
	}
	return n, p.pos > start
}

func (p *parser) push() bool {
	p.depth++
	if p.depth > maxNestingDepth {
		p.fail("nesting too deep")
		return false
	}
	return true
}

func (p *parser) pop() { p.depth-- }

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *parser) atEnd() bool { return p.pos >= len(p.input) }

func (p *parser) peek() (byte, bool) {
	if p.atEnd() {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) peekIs(c byte) bool {
	return p.pos < len(p.input) && p.input[p.pos] == c
}

func (p *parser) peekAny(set string) bool {
	return p.pos < len(p.input) && strings.IndexByte(set, p.input[p.pos]) >= 0
}

func (p *parser) eat(c byte) bool {
	if p.peekIs(c) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(c byte) bool {
	if p.eat(c) {
		return true
	}
	p.fail(fmt.Sprintf("expected '%c'", c))
	return false
}

func isReserved(c byte) bool {
	return strings.IndexByte(reservedChars, c) >= 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
