// Command docsplit splits documents into heading-scoped sections.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var verbose bool
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	rootCmd := &cobra.Command{
		Use:   "docsplit",
		Short: "Split documents into sections by markdown heading",
		Long: `docsplit splits text into sections at markdown headings. Each section
is prefixed with the headings that enclose it. Sections without body
text and table-of-contents sections are dropped.

Plain text can first be restructured into headed markdown through the
Anthropic API (--structure, requires ANTHROPIC_API_KEY).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(newSplitCmd(func() *slog.Logger { return log }))
	rootCmd.AddCommand(newInfoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
