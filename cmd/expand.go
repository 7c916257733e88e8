package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tpat/internal"
	"github.com/gnolang/tpat/query"
)

var expandCmd = &cobra.Command{
	Use:   "expand <query>",
	Short: "Resolve a query's table, pattern and similarity references and re-render it",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")

		var catalog *internal.Catalog
		if catalogPath != "" {
			var err error
			catalog, err = internal.LoadCatalog(catalogPath)
			if err != nil {
				logger.Fatal("Failed to load catalog", zap.Error(err))
			}
		} else {
			catalog = internal.EmptyCatalog()
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		expr, err := query.Parse(text, true)
		if err != nil {
			reportQueryError(text, err)
			os.Exit(1)
		}

		expanded, err := query.ExpandQuery(ctx, expr, catalog.Tables, catalog.Patterns, catalog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(query.Render(expanded))
	},
}
