package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gitscout/internal/explore"
	"gitscout/internal/registry"
	"gitscout/internal/session"
	"gitscout/internal/workspace"
)

var (
	cloneKeep bool
	cloneName string
	cloneFast bool
)

var cloneCmd = &cobra.Command{
	Use:   "clone <repo-url>",
	Short: "Clone a repository into a scratch directory",
	Long: `Clone a repository into a fresh scratch directory and print its structure
overview.

By default the checkout is registered as a session so later commands
(structure, ls, read, search) can operate on it; the first registered
session becomes the default. With --keep=false the checkout is removed
again after the overview is printed.

Examples:
  gitscout clone https://github.com/owner/repo
  gitscout clone --name upstream https://github.com/owner/repo
  gitscout clone --keep=false https://github.com/owner/repo`,
	Args: cobra.ExactArgs(1),
	Run:  runClone,
}

func init() {
	cloneCmd.Flags().BoolVar(&cloneKeep, "keep", true, "Register the checkout as a session instead of removing it")
	cloneCmd.Flags().StringVar(&cloneName, "name", "", "Session name (default: derived from the repository URL)")
	cloneCmd.Flags().BoolVar(&cloneFast, "fast", true, "Use a shallow, single-branch, blobless clone")
	rootCmd.AddCommand(cloneCmd)
}

func runClone(cmd *cobra.Command, args []string) {
	repoURL := args[0]
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	manager := workspace.NewManager(time.Duration(cfg.Clone.TimeoutSeconds)*time.Second, logger)
	manager.ScratchDir = cfg.Clone.ScratchDir

	sess := session.New(manager, stderrReporter())

	ctx := context.Background()
	shallow := cfg.Clone.Shallow && cloneFast
	if cmd.Flags().Changed("fast") {
		shallow = cloneFast
	}

	workingRoot, err := sess.Clone(ctx, repoURL, shallow)
	if err != nil {
		exitExploreError(err)
	}

	text, err := explore.InspectStructure(workingRoot, sess.Reporter)
	if err != nil {
		sess.Release()
		exitExploreError(err)
	}
	fmt.Println(text)

	if !cloneKeep {
		sess.Release()
		return
	}

	name := cloneName
	if name == "" {
		name = sessionNameFromURL(repoURL)
	}

	reg, err := registry.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session registry: %v\n", err)
		os.Exit(1)
	}
	if err := reg.Add(name, repoURL, sess.ScratchDir(), workingRoot); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering session: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\nRegistered session '%s' at %s\n", name, workingRoot)
	if reg.Default == name {
		fmt.Fprintln(os.Stderr, "This session is now the default.")
	}
}
