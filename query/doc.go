/*
Package query implements the pattern language used to search annotated token
sequences: words, part-of-speech tags and phrase-chunk tags, extended with
dictionary references, stored sub-patterns, phrase-similarity generalization
and named capture groups.

# Overview

The package is the language's front end: a parser from query text to an
immutable expression tree, a set of structural passes over that tree, and a
serializer back to query text. Executing a query against a corpus is the job
of a separate engine consuming the tree produced here.

# Syntax

A query is a '|'-separated list of alternatives, each a whitespace-separated
concatenation of pieces:

  - .             matches any single token
  - word          matches the exact token text
  - NN, VP, ...   match a part-of-speech or phrase-chunk tag
  - $name         reference to an external one-column table
  - #name         reference to a stored sub-pattern
  - word~3        generalize a word to its 3 nearest similar phrases
  - "a b"~3       generalize a multi-word phrase
  - (expr)        unnamed capture group
  - (?<x>expr)    named capture group
  - (?:expr)      grouping without capture
  - {a,b,c}       disjunction
  - x*  x+        zero-or-more, one-or-more
  - x[2,4]        explicit bounded repetition

Reserved characters inside words must be backslash-escaped. Tag names win
over identical bare words.

# Passes

Parsed trees are persistent; every pass returns a new tree and shares
unchanged subtrees:

  - ExpandRefs resolves $name and #name against caller-supplied tables and
    pattern definitions, rejecting expansion cycles.
  - ExpandSimilar resolves word~N phrases through a SimilarSearcher.
  - EraseCaptures and Captures remove or collect capture groups.
  - Bounds computes how many tokens a tree can match, with Unbounded as the
    open upper bound.
  - NormalizeRepeat canonicalizes bounded repetitions.
  - Render turns a tree back into query text.

All passes are pure functions over immutable data and are safe to call
concurrently, including on shared trees.
*/
package query
