package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitscout/internal/explore"
)

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Show the top-level structure of the session's repository",
	Long: `Print a bounded overview of the repository: top-level directories with
file counts, files with sizes, recognized key files, and a project hint
when a manifest is readable.`,
	Args: cobra.NoArgs,
	Run:  runStructure,
}

func init() {
	rootCmd.AddCommand(structureCmd)
}

func runStructure(cmd *cobra.Command, args []string) {
	entry := mustResolveEntry()

	text, err := explore.InspectStructure(entry.WorkingRoot, stderrReporter())
	if err != nil {
		exitExploreError(err)
	}

	fmt.Println(text)
}
