package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitscout/internal/registry"
)

var gcAll bool

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Remove dead sessions and their scratch directories",
	Long: `Sweep the session registry: entries whose working root no longer exists
are unregistered and their scratch directories removed. With --all, every
session is removed regardless of state.`,
	Args: cobra.NoArgs,
	Run:  runGc,
}

func init() {
	gcCmd.Flags().BoolVar(&gcAll, "all", false, "Remove all sessions, not just dead ones")
	rootCmd.AddCommand(gcCmd)
}

func runGc(cmd *cobra.Command, args []string) {
	reg, err := registry.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session registry: %v\n", err)
		os.Exit(1)
	}

	var targets []string
	if gcAll {
		for name := range reg.Sessions {
			targets = append(targets, name)
		}
	} else {
		targets = reg.Dead()
	}

	if len(targets) == 0 {
		fmt.Println("Nothing to clean up.")
		return
	}

	removed := 0
	for _, name := range targets {
		entry, _, err := reg.Get(name)
		if err != nil {
			continue
		}
		if entry.ScratchDir != "" {
			// Best-effort; a stuck directory should not block the sweep
			if err := os.RemoveAll(entry.ScratchDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to remove %s: %v\n", entry.ScratchDir, err)
			}
		}
		if err := reg.Remove(name); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to unregister '%s': %v\n", name, err)
			continue
		}
		fmt.Printf("Removed session '%s'\n", name)
		removed++
	}

	fmt.Printf("Cleaned up %d of %d sessions.\n", removed, len(targets))
}
