package internal

import (
	"errors"
	"os"
	"strings"

	tt "github.com/gnolang/tpat/internal/types"
	"github.com/gnolang/tpat/query"
)

// Engine checks query files. A query file holds one query per line; blank
// lines and lines starting with // are skipped. Each query must parse and,
// when a catalog is present, resolve all of its references.
type Engine struct {
	catalog *Catalog
}

// NewEngine builds an engine; catalog may be nil, limiting checks to parsing.
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Run checks a single query file.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return e.RunSource(filename, src), nil
}

// RunSource checks query file content without touching the filesystem.
func (e *Engine) RunSource(filename string, src []byte) []tt.Issue {
	var issues []tt.Issue
	for i, line := range strings.Split(string(src), "\n") {
		text := strings.TrimSpace(line)
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		issues = append(issues, e.checkQuery(filename, i+1, text)...)
	}
	return issues
}

func (e *Engine) checkQuery(filename string, line int, text string) []tt.Issue {
	expr, err := query.Parse(text, true)
	if err != nil {
		var perr *query.ParseError
		if !errors.As(err, &perr) {
			perr = &query.ParseError{Msg: err.Error(), Column: 1}
		}
		return []tt.Issue{{
			Rule:     "parse-error",
			Filename: filename,
			Line:     line,
			Column:   perr.Column,
			Message:  perr.Msg,
			Query:    text,
		}}
	}

	if e.catalog == nil {
		return nil
	}
	if _, err := query.ExpandRefs(expr, e.catalog.Tables, e.catalog.Patterns); err != nil {
		return []tt.Issue{{
			Rule:     ruleFor(err),
			Filename: filename,
			Line:     line,
			Column:   1,
			Message:  err.Error(),
			Query:    text,
		}}
	}
	return nil
}

// ruleFor maps an expansion failure to its rule name, looking through
// wrapped pattern-expansion context.
func ruleFor(err error) string {
	var (
		tableNotFound   *query.TableNotFoundError
		tableColumns    *query.TableColumnsError
		patternNotFound *query.PatternNotFoundError
		cycle           *query.CycleError
		parse           *query.ParseError
	)
	switch {
	case errors.As(err, &tableNotFound):
		return "table-not-found"
	case errors.As(err, &tableColumns):
		return "wrong-column-count"
	case errors.As(err, &patternNotFound):
		return "pattern-not-found"
	case errors.As(err, &cycle):
		return "pattern-cycle"
	case errors.As(err, &parse):
		return "pattern-parse-error"
	}
	return "expand-error"
}
