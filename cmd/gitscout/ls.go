package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitscout/internal/explore"
	"gitscout/internal/paths"
)

var lsFilter string

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a directory in the session's repository",
	Long: `List the entries of a directory relative to the repository root. Hidden
entries are omitted unless --filter matches them explicitly.

Examples:
  gitscout ls
  gitscout ls src
  gitscout ls --filter '\.ya?ml$' .github/workflows`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLs,
}

func init() {
	lsCmd.Flags().StringVar(&lsFilter, "filter", "", "Regular expression applied to entry names")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) {
	entry := mustResolveEntry()

	var input string
	if len(args) > 0 {
		input = args[0]
	}

	dir, err := paths.Resolve(input, entry.WorkingRoot)
	if err != nil {
		exitExploreError(err)
	}

	entries, err := explore.ListDirectory(dir, lsFilter, stderrReporter())
	if err != nil {
		exitExploreError(err)
	}

	fmt.Println(explore.FormatListing(dir, lsFilter, entries))
}
