package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"gitscout/internal/registry"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List registered sessions",
	Long: `List all registered sessions with their repository URL, working root, and
on-disk state. The default session is marked with an asterisk.`,
	Args: cobra.NoArgs,
	Run:  runSessions,
}

var sessionsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Unregister a session and remove its checkout",
	Args:  cobra.ExactArgs(1),
	Run:   runSessionsRemove,
}

func init() {
	sessionsCmd.AddCommand(sessionsRemoveCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) {
	reg, err := registry.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session registry: %v\n", err)
		os.Exit(1)
	}

	if len(reg.Sessions) == 0 {
		fmt.Println("No registered sessions. Run 'gitscout clone <repo-url>' to create one.")
		return
	}

	names := make([]string, 0, len(reg.Sessions))
	for name := range reg.Sessions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := reg.Sessions[name]
		marker := " "
		if name == reg.Default {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, name, entry.RepoURL)
		fmt.Printf("    root:  %s (%s)\n", entry.WorkingRoot, reg.State(name))
		fmt.Printf("    added: %s\n", entry.AddedAt.Format("2006-01-02 15:04:05"))
	}
}

func runSessionsRemove(cmd *cobra.Command, args []string) {
	name := args[0]

	reg, err := registry.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session registry: %v\n", err)
		os.Exit(1)
	}

	entry, _, err := reg.Get(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if entry.ScratchDir != "" {
		if err := os.RemoveAll(entry.ScratchDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove %s: %v\n", entry.ScratchDir, err)
		}
	}

	if err := reg.Remove(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Removed session '%s'\n", name)
}
