package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tpat/check"
	"github.com/gnolang/tpat/formatter"
	"github.com/gnolang/tpat/internal"
	tt "github.com/gnolang/tpat/internal/types"
)

var (
	checkJSONOutput bool
	watchMode       bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Parse every query file and resolve its references against the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := check.New(catalogPath)
		if err != nil {
			logger.Fatal("Failed to initialize check engine", zap.Error(err))
		}

		issues, err := check.ProcessFiles(ctx, logger, engine, args)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		printIssues(issues, checkJSONOutput)

		if watchMode {
			runWatch(engine, args)
			return
		}

		if len(issues) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output issues in JSON format")
	checkCmd.Flags().BoolVar(&watchMode, "watch", false, "Keep running and re-check files as they change")
}

func printIssues(issues []tt.Issue, asJSON bool) {
	if asJSON {
		d, err := json.Marshal(issues)
		if err != nil {
			logger.Error("Error marshalling issues to JSON", zap.Error(err))
			return
		}
		fmt.Println(string(d))
		return
	}
	fmt.Print(formatter.Format(issues))
}

func runWatch(engine *internal.Engine, paths []string) {
	watcher, err := internal.NewWatcher(engine, logger, func(_ string, issues []tt.Issue) {
		printIssues(issues, checkJSONOutput)
	})
	if err != nil {
		logger.Fatal("Failed to initialize watcher", zap.Error(err))
	}
	if err := watcher.StartWatching(paths); err != nil {
		logger.Fatal("Failed to start watching", zap.Error(err))
	}
	select {} // watch until interrupted
}
