package main

import (
	"os"

	"github.com/go-sif/accum/logging"
	"github.com/spf13/cobra"
)

var (
	logLevel string

	rootCmd = &cobra.Command{
		Use:           "accum",
		Short:         "Aggregate data in parallel with shared accumulators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log := logging.NewLogger(os.Stderr, logging.ErrorLevel)
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error); defaults to $"+logging.EnvLogLevel+", then warn")
	rootCmd.AddCommand(aggregateCmd)
}
