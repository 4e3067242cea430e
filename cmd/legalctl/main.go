// Command legalctl runs the legal meeting analysis offline against a transcript file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/pkg/config"
)

var (
	outputFormat string
	parallel     bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "legalctl",
	Short: "Analyze legal meeting transcripts from the command line",
	Long: `legalctl runs the legal domain analysis on a transcript file and prints
the analysis together with the actions and insights it produced.

Transcripts may be provider output (entries with "words") or canonical
entries with "speaker", "timestamp" and "text", either as a bare list or
wrapped in {"transcript": [...]}.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "Output format: json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newDomainsCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newDomainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List the legal domains transcripts are analyzed against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOutput(cmd.OutOrStdout(), outputFormat, config.LegalDomains())
		},
	}
}
