package types

// Issue represents a problem found in a query file.
type Issue struct {
	Rule     string
	Filename string
	Line     int // 1-based line holding the query
	Column   int // 1-based column within the query text
	Message  string
	Query    string // the offending query text, for snippets
}
