package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	catalogPath string
	timeout     time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "tpat",
	Short:            "tpat - check, expand and inspect token-pattern queries",
	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		// tpat [path1 path2 ...] behaves like the check subcommand
		checkCmd.Run(checkCmd, args)
	},
}

func Execute() error {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "YAML catalog of tables, patterns and similarity fixtures")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole run")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(capturesCmd)
	rootCmd.AddCommand(boundsCmd)
}
