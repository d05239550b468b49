package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitscout/internal/explore"
	"gitscout/internal/paths"
)

var (
	readStart int
	readEnd   int
)

var readCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "Read a line range from a file in the session's repository",
	Long: `Print a line-numbered window of a file. Without --end reading stops at a
configured default line; --end 0 reads through the end of the file. An
--end past the end of the file is clamped, while a --start past the end
is an error.

Examples:
  gitscout read README.md
  gitscout read --start 120 --end 180 src/main.go`,
	Args: cobra.ExactArgs(1),
	Run:  runRead,
}

func init() {
	readCmd.Flags().IntVar(&readStart, "start", 1, "First line to read (1-based)")
	readCmd.Flags().IntVar(&readEnd, "end", 0, "Last line to read (inclusive; 0 reads to the end of the file)")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) {
	entry := mustResolveEntry()
	cfg := mustLoadConfig()

	path, err := paths.Resolve(args[0], entry.WorkingRoot)
	if err != nil {
		exitExploreError(err)
	}

	end := readEnd
	if !cmd.Flags().Changed("end") {
		end = cfg.Read.DefaultLineEnd
	}

	window, err := explore.ReadFileRange(path, readStart, end, cfg.Read.MaxFileSizeBytes, stderrReporter())
	if err != nil {
		exitExploreError(err)
	}

	fmt.Println(window.Format())
}
