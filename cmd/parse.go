package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnolang/tpat/query"
)

var parseCmd = &cobra.Command{
	Use:   "parse <query>",
	Short: "Parse a query and print its tree",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")
		expr, err := query.Parse(text, true)
		if err != nil {
			reportQueryError(text, err)
			os.Exit(1)
		}
		fmt.Println(expr)
	},
}

var capturesCmd = &cobra.Command{
	Use:   "captures <query>",
	Short: "List a query's capture groups in match-report order",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")
		expr, err := query.Parse(text, true)
		if err != nil {
			reportQueryError(text, err)
			os.Exit(1)
		}
		for i, c := range query.Captures(expr) {
			fmt.Printf("%d: %s\n", i+1, c)
		}
	},
}

var boundsCmd = &cobra.Command{
	Use:   "bounds <query>",
	Short: "Print the minimum and maximum number of tokens a query can match",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")
		expr, err := query.Parse(text, true)
		if err != nil {
			reportQueryError(text, err)
			os.Exit(1)
		}
		min, max := query.Bounds(expr)
		if max == query.Unbounded {
			fmt.Printf("min %d, no upper bound\n", min)
			return
		}
		fmt.Printf("min %d, max %d\n", min, max)
	},
}

func reportQueryError(text string, err error) {
	fmt.Fprintf(os.Stderr, "%s\n", text)
	var perr *query.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(os.Stderr, "%s^\n", strings.Repeat(" ", perr.Column-1))
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
