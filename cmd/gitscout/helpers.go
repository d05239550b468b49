package main

import (
	"fmt"
	"os"
	"strings"

	"gitscout/internal/config"
	"gitscout/internal/errors"
	"gitscout/internal/logging"
	"gitscout/internal/progress"
	"gitscout/internal/registry"
)

// mustLoadConfig loads the configuration or exits
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates a logger per the configured format and level. CLI logs
// go to stderr; stdout carries only command output.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: os.Stderr,
	})
}

// stderrReporter prints progress lines to stderr so stdout stays clean
func stderrReporter() progress.Reporter {
	return progress.Func(func(message string) {
		fmt.Fprintln(os.Stderr, message)
	})
}

// mustResolveEntry returns the session selected by --session, or the
// registry default, exiting when it is absent or its checkout is gone.
func mustResolveEntry() *registry.Entry {
	reg, err := registry.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session registry: %v\n", err)
		os.Exit(1)
	}

	var entry *registry.Entry
	var state registry.SessionState
	if sessionFlag != "" {
		entry, state, err = reg.Get(sessionFlag)
	} else {
		entry, state, err = reg.GetDefault()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if state != registry.SessionStateValid {
		fmt.Fprintf(os.Stderr, "Error: session '%s' checkout is missing; run 'gitscout gc' and clone again\n", entry.Name)
		os.Exit(1)
	}

	// Best-effort; a stale timestamp never blocks the command
	_ = reg.Touch(entry.Name)

	return entry
}

// exitExploreError prints an exploration failure with its hints and exits
func exitExploreError(err error) {
	fmt.Fprintln(os.Stderr, errors.AsText(err))
	os.Exit(1)
}

// sessionNameFromURL derives a registry-safe session name from the last
// path segment of the repository URL.
func sessionNameFromURL(repoURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(repoURL), "/")
	name := trimmed
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		name = trimmed[idx+1:]
	}
	name = strings.TrimSuffix(name, ".git")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "repo"
	}
	return b.String()
}
