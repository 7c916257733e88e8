package internal

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/tpat/query"
)

// Catalog holds the tables, stored patterns and similarity fixtures a query
// is checked and expanded against. Tables and patterns are normally served by
// the surrounding system; the catalog file stands in for them so queries can
// be validated offline.
type Catalog struct {
	Tables   map[string]*query.Table
	Patterns map[string]*query.PatternDef
	similar  map[string][]query.ScoredPhrase
}

var _ query.SimilarSearcher = (*Catalog)(nil)

type catalogFile struct {
	Tables   map[string]catalogTable   `yaml:"tables"`
	Patterns map[string]string         `yaml:"patterns"`
	Similar  map[string][]catalogMatch `yaml:"similar"`
}

type catalogTable struct {
	Cols     []string            `yaml:"cols"`
	Positive []map[string]string `yaml:"positive"`
	Negative []map[string]string `yaml:"negative"`
}

type catalogMatch struct {
	Phrase string  `yaml:"phrase"`
	Score  float64 `yaml:"score"`
}

// EmptyCatalog returns a catalog with no tables, patterns or similarity
// entries.
func EmptyCatalog() *Catalog {
	return buildCatalog(&catalogFile{})
}

// LoadCatalog reads a YAML catalog file. Row cells and similarity entries
// hold whitespace-joined phrases.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file catalogFile
	if err := yaml.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return buildCatalog(&file), nil
}

// ParseCatalog decodes a catalog from in-memory YAML.
func ParseCatalog(src []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(src, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return buildCatalog(&file), nil
}

func buildCatalog(file *catalogFile) *Catalog {
	c := &Catalog{
		Tables:   make(map[string]*query.Table, len(file.Tables)),
		Patterns: make(map[string]*query.PatternDef, len(file.Patterns)),
		similar:  make(map[string][]query.ScoredPhrase, len(file.Similar)),
	}
	for name, t := range file.Tables {
		table := &query.Table{Name: name, Cols: t.Cols}
		for _, row := range t.Positive {
			table.Positive = append(table.Positive, phraseRow(row))
		}
		for _, row := range t.Negative {
			table.Negative = append(table.Negative, phraseRow(row))
		}
		c.Tables[name] = table
	}
	for name, pattern := range file.Patterns {
		c.Patterns[name] = &query.PatternDef{Name: name, Pattern: pattern}
	}
	for phrase, matches := range file.Similar {
		scored := make([]query.ScoredPhrase, len(matches))
		for i, m := range matches {
			scored[i] = query.ScoredPhrase{
				Phrase: query.PhraseOf(strings.Fields(m.Phrase)...),
				Score:  m.Score,
			}
		}
		c.similar[phrase] = scored
	}
	return c
}

func phraseRow(row map[string]string) query.Row {
	out := make(query.Row, len(row))
	for col, cell := range row {
		out[col] = query.PhraseOf(strings.Fields(cell)...)
	}
	return out
}

// Lookup serves similarity searches from the catalog's fixture entries, so a
// *Catalog can stand in for the real search capability.
func (c *Catalog) Lookup(_ context.Context, phrase string) ([]query.ScoredPhrase, error) {
	return c.similar[phrase], nil
}
