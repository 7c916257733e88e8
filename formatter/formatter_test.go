package formatter

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	tt "github.com/gnolang/tpat/internal/types"
)

func TestFormat(t *testing.T) {
	// keep assertions independent of the terminal
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	issues := []tt.Issue{{
		Rule:     "parse-error",
		Filename: "queries/np.tq",
		Line:     3,
		Column:   7,
		Message:  "expected ')'",
		Query:    "DT JJ* (NN",
	}}

	out := Format(issues)
	assert.Contains(t, out, "error: parse-error")
	assert.Contains(t, out, "--> queries/np.tq:3:7")
	assert.Contains(t, out, "3 | DT JJ* (NN")
	assert.Contains(t, out, "= expected ')'")

	// caret sits under column 7
	var caretLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(line, "^") {
			caretLine = line
		}
	}
	want := "  | " + strings.Repeat(" ", 6) + "^" // six spaces in, column 7
	assert.Equal(t, want, caretLine)
}

func TestFormat_CaretClampedToQuery(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	out := Format([]tt.Issue{{
		Rule:    "parse-error",
		Line:    1,
		Column:  99,
		Query:   "ab",
		Message: "unexpected end of input",
	}})
	assert.Contains(t, out, "| ab")
	assert.Contains(t, out, "|   ^")
}

func TestFormat_Empty(t *testing.T) {
	assert.Equal(t, "", Format(nil))
}
