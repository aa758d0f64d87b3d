package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docsplit/internal/section"
	"github.com/dgallion1/docsplit/internal/sink"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <processed-file>",
		Short: "Print the heading titles of each section in a processed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, sec := range sink.ReadSections(string(data)) {
				fmt.Fprintf(out, "section %d\n", i+1)
				info := section.SectionInfo(sec)
				for level := 1; level <= section.MaxLevel; level++ {
					if title, ok := info.Level(level); ok {
						fmt.Fprintf(out, "  level%d: %s\n", level, title)
					}
				}
			}
			return nil
		},
	}
}
