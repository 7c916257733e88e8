package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSeqCollapsesSingleton(t *testing.T) {
	w := &Word{Text: "a"}
	assert.Same(t, Expr(w), NewSeq([]Expr{w}))
	assert.IsType(t, &Seq{}, NewSeq([]Expr{w, w}))
}

func TestNewOrCollapsesSingleton(t *testing.T) {
	w := &Word{Text: "a"}
	assert.Same(t, Expr(w), NewOr([]Expr{w}))
	assert.IsType(t, &Or{}, NewOr([]Expr{w, w}))
}

func TestPhraseText(t *testing.T) {
	assert.Equal(t, "big black cat", PhraseOf("big", "black", "cat").Text())
	assert.Equal(t, "", Phrase{}.Text())
}
