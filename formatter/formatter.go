// Package formatter renders check issues for terminals, with the offending
// query line and a caret at the failure column.
package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	tt "github.com/gnolang/tpat/internal/types"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

// Format renders issues in a rustc-like layout:
//
//	error: parse-error
//	 --> queries/np.tq:3:7
//	  |
//	3 | DT JJ* (NN
//	  |       ^
//	  = expected ')'
func Format(issues []tt.Issue) string {
	var b strings.Builder
	for _, issue := range issues {
		b.WriteString(formatIssue(issue))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatIssue(issue tt.Issue) string {
	lineNum := fmt.Sprintf("%d", issue.Line)
	padding := strings.Repeat(" ", len(lineNum))

	var b strings.Builder
	b.WriteString(errorStyle.Sprint("error: "))
	b.WriteString(ruleStyle.Sprintf("%s\n", issue.Rule))
	b.WriteString(lineStyle.Sprintf("%s--> ", padding))
	b.WriteString(fileStyle.Sprintf("%s:%d:%d\n", issue.Filename, issue.Line, issue.Column))
	b.WriteString(lineStyle.Sprintf("%s |\n", padding))
	b.WriteString(lineStyle.Sprintf("%s | ", lineNum))
	b.WriteString(issue.Query)
	b.WriteByte('\n')
	b.WriteString(lineStyle.Sprintf("%s | ", padding))
	b.WriteString(strings.Repeat(" ", caretOffset(issue)))
	b.WriteString(messageStyle.Sprint("^\n"))
	b.WriteString(lineStyle.Sprintf("%s = ", padding))
	b.WriteString(messageStyle.Sprintf("%s\n", issue.Message))
	return b.String()
}

// caretOffset clamps the 1-based column into the query line so the caret
// never runs past the text.
func caretOffset(issue tt.Issue) int {
	offset := issue.Column - 1
	if offset < 0 {
		offset = 0
	}
	if offset > len(issue.Query) {
		offset = len(issue.Query)
	}
	return offset
}
