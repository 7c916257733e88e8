package query

import "fmt"

// Row maps a column name to the phrase stored in that column.
type Row map[string]Phrase

// Table is an externally stored lookup table. Only one-column tables are
// valid dictionary expansion targets; Negative rows are carried for the
// owning system but never expanded.
type Table struct {
	Name     string
	Cols     []string
	Positive []Row
	Negative []Row
}

// PatternDef is an externally stored, reusable sub-pattern. Its text is
// re-parsed with capture groups disabled whenever it is expanded.
type PatternDef struct {
	Name    string
	Pattern string
}

// TableNotFoundError reports a dictionary reference to an unknown table.
type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Name)
}

// TableColumnsError reports a dictionary reference to a table that does not
// have exactly one column.
type TableColumnsError struct {
	Name string
	Cols int
}

func (e *TableColumnsError) Error() string {
	return fmt.Sprintf("table %q has %d columns, want exactly 1", e.Name, e.Cols)
}

// PatternNotFoundError reports a reference to an unknown named pattern.
type PatternNotFoundError struct {
	Name string
}

func (e *PatternNotFoundError) Error() string {
	return fmt.Sprintf("pattern %q not found", e.Name)
}

// CycleError reports a named pattern that, directly or through intermediate
// patterns, invokes itself.
type CycleError struct {
	Name string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("pattern %q recursively invokes itself", e.Name)
}

// ExpandError wraps a failure that occurred while expanding the named
// pattern, preserving the inner error as its cause.
type ExpandError struct {
	Pattern string
	Err     error
}

func (e *ExpandError) Error() string {
	return fmt.Sprintf("expanding pattern %q: %v", e.Pattern, e.Err)
}

func (e *ExpandError) Unwrap() error { return e.Err }

// ExpandRefs replaces every dictionary and named-pattern reference in e with
// its expansion, eagerly and fail-fast: the result is either a fully
// reference-free tree or an error, never a partial substitution.
//
// A dictionary expands to the disjunction of its table's positive rows, each
// row a sequence of Word nodes. A named pattern is re-parsed with captures
// disabled and expanded recursively; a set of pattern names currently being
// expanded on the path is threaded down so that self- and mutual recursion is
// rejected.
func ExpandRefs(e Expr, tables map[string]*Table, patterns map[string]*PatternDef) (Expr, error) {
	return expandRefs(e, tables, patterns, nil)
}

func expandRefs(e Expr, tables map[string]*Table, patterns map[string]*PatternDef, expanding map[string]bool) (Expr, error) {
	switch n := e.(type) {
	case *Dict:
		t, ok := tables[n.Name]
		if !ok {
			return nil, &TableNotFoundError{Name: n.Name}
		}
		if len(t.Cols) != 1 {
			return nil, &TableColumnsError{Name: n.Name, Cols: len(t.Cols)}
		}
		col := t.Cols[0]
		items := make([]Expr, 0, len(t.Positive))
		for _, row := range t.Positive {
			phrase := row[col]
			words := make([]Expr, len(phrase))
			for i, w := range phrase {
				words[i] = w
			}
			items = append(items, NewSeq(words))
		}
		return NewOr(items), nil
	case *PatternRef:
		if expanding[n.Name] {
			return nil, &CycleError{Name: n.Name}
		}
		def, ok := patterns[n.Name]
		if !ok {
			return nil, &PatternNotFoundError{Name: n.Name}
		}
		sub, err := Parse(def.Pattern, false)
		if err != nil {
			return nil, &ExpandError{Pattern: n.Name, Err: err}
		}
		// the forbidden set is copied, not mutated: it scopes to this path
		next := make(map[string]bool, len(expanding)+1)
		for name := range expanding {
			next[name] = true
		}
		next[n.Name] = true
		out, err := expandRefs(sub, tables, patterns, next)
		if err != nil {
			return nil, &ExpandError{Pattern: n.Name, Err: err}
		}
		return out, nil
	case *NamedGroup:
		inner, err := expandRefs(n.Inner, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		return &NamedGroup{Inner: inner, Name: n.Name}, nil
	case *Group:
		inner, err := expandRefs(n.Inner, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		return &Group{Inner: inner}, nil
	case *NonCapGroup:
		inner, err := expandRefs(n.Inner, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		return &NonCapGroup{Inner: inner}, nil
	case *Seq:
		items, err := expandAll(n.Items, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		return &Seq{Items: items}, nil
	case *Or:
		items, err := expandAll(n.Items, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		return &Or{Items: items}, nil
	case *Repeat:
		inner, err := expandRefs(n.Inner, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		return &Repeat{Inner: inner, Min: n.Min, Max: n.Max}, nil
	case *Star:
		inner, err := expandRefs(n.Inner, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		return &Star{Inner: inner}, nil
	case *Plus:
		inner, err := expandRefs(n.Inner, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		return &Plus{Inner: inner}, nil
	case *And:
		left, err := expandRefs(n.Left, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		right, err := expandRefs(n.Right, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		return &And{Left: left, Right: right}, nil
	}
	// remaining leaves are already reference-free
	return e, nil
}

func expandAll(items []Expr, tables map[string]*Table, patterns map[string]*PatternDef, expanding map[string]bool) ([]Expr, error) {
	out := make([]Expr, len(items))
	for i, e := range items {
		expanded, err := expandRefs(e, tables, patterns, expanding)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}
