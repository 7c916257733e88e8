package query

// The fixed tag sets the grammar recognizes. Tag matching is by exact string
// equality; a word that is not in either set parses as a plain Word.

var posTags = map[string]bool{
	"PRP$": true, "NNPS": true, "WRB": true, "WP$": true, "WDT": true,
	"VBZ": true, "VBP": true, "VBN": true, "VBG": true, "VBD": true,
	"SYM": true, "RBS": true, "RBR": true, "PRP": true, "POS": true,
	"PDT": true, "NNS": true, "NNP": true, "JJS": true, "JJR": true,
	"WP": true, "VB": true, "UH": true, "TO": true, "RP": true,
	"RB": true, "NN": true, "MD": true, "LS": true, "JJ": true,
	"IN": true, "FW": true, "EX": true, "DT": true, "CD": true,
	"CC": true,
}

var chunkTags = map[string]bool{
	"NP": true, "VP": true, "PP": true, "ADJP": true, "ADVP": true,
}

// IsPosTag reports whether s is one of the enumerated part-of-speech tags.
func IsPosTag(s string) bool { return posTags[s] }

// IsChunkTag reports whether s is one of the enumerated phrase-chunk tags.
func IsChunkTag(s string) bool { return chunkTags[s] }
