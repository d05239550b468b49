package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitscout/internal/paths"
	"gitscout/internal/search"
)

var (
	searchDir       string
	searchExts      []string
	searchMaxFiles  int
	searchMaxTokens int
)

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Search file contents in the session's repository",
	Long: `Search file contents for a case-insensitive regular expression. Output is
budgeted: a bounded number of files and matches per file, each match with
a few lines of context, and an explicit truncation notice when budgets
cut results off.

Examples:
  gitscout search 'func main'
  gitscout search --ext .go --ext .md 'TODO'
  gitscout search --dir src 'connection pool'`,
	Args: cobra.ExactArgs(1),
	Run:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchDir, "dir", "", "Directory to search under (default: repository root)")
	searchCmd.Flags().StringArrayVar(&searchExts, "ext", nil, "File extension to include (repeatable)")
	searchCmd.Flags().IntVar(&searchMaxFiles, "max-files", 0, "Maximum number of matching files to return (default: config)")
	searchCmd.Flags().IntVar(&searchMaxTokens, "max-tokens", 0, "Approximate cap on total result size (default: config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	entry := mustResolveEntry()
	cfg := mustLoadConfig()

	dir, err := paths.Resolve(searchDir, entry.WorkingRoot)
	if err != nil {
		exitExploreError(err)
	}

	maxFiles := cfg.Search.MaxFiles
	if searchMaxFiles > 0 {
		maxFiles = searchMaxFiles
	}
	maxTokens := cfg.Search.MaxTokens
	if searchMaxTokens > 0 {
		maxTokens = searchMaxTokens
	}

	result, err := search.Run(search.Options{
		Pattern:    args[0],
		Dir:        dir,
		Extensions: searchExts,
		Budget: search.Budget{
			MaxFiles:          maxFiles,
			MaxMatchesPerFile: cfg.Search.MaxMatchesPerFile,
			MaxTokens:         maxTokens,
		},
		MaxFileSize:   cfg.Search.MaxFileSizeBytes,
		ContextBefore: cfg.Search.ContextBefore,
		ContextAfter:  cfg.Search.ContextAfter,
		DenyDirs:      cfg.Search.DenyDirs,
		Reporter:      stderrReporter(),
	})
	if err != nil {
		exitExploreError(err)
	}

	fmt.Println(result.Format())
}
