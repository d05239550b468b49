package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gitscout/internal/config"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gitscout configuration",
	Long:  "View the gitscout configuration stored in $GITSCOUT_HOME/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the current gitscout configuration.

Examples:
  gitscout config show                 # Pretty-print current config
  gitscout config show --format json   # Raw JSON output
  gitscout config show --format yaml   # YAML output`,
	Run: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Run:   runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (human, json, yaml)")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	switch configFormat {
	case "json":
		output, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(output))
	case "yaml":
		output, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(output))
	case "human":
		printConfigHuman(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q (use human, json, or yaml)\n", configFormat)
		os.Exit(1)
	}
}

func printConfigHuman(cfg *config.Config) {
	defaults := config.DefaultConfig()

	fmt.Println("gitscout Configuration")
	fmt.Println(strings.Repeat("─", 50))

	home, err := config.Home()
	if err == nil {
		path := filepath.Join(home, "config.json")
		if _, statErr := os.Stat(path); statErr == nil {
			fmt.Printf("Source: %s\n", path)
		} else {
			fmt.Println("Source: defaults (no config file found)")
		}
	}
	fmt.Println()

	printConfigValue("version", cfg.Version, defaults.Version)

	fmt.Println("\nclone:")
	printConfigValue("  timeoutSeconds", cfg.Clone.TimeoutSeconds, defaults.Clone.TimeoutSeconds)
	printConfigValue("  scratchDir", valueOrDefault(cfg.Clone.ScratchDir, "(system temp)"), "(system temp)")
	printConfigValue("  shallow", cfg.Clone.Shallow, defaults.Clone.Shallow)

	fmt.Println("\nread:")
	printConfigValue("  defaultLineEnd", cfg.Read.DefaultLineEnd, defaults.Read.DefaultLineEnd)
	printConfigValue("  maxFileSizeBytes", cfg.Read.MaxFileSizeBytes, defaults.Read.MaxFileSizeBytes)

	fmt.Println("\nsearch:")
	printConfigValue("  maxFiles", cfg.Search.MaxFiles, defaults.Search.MaxFiles)
	printConfigValue("  maxMatchesPerFile", cfg.Search.MaxMatchesPerFile, defaults.Search.MaxMatchesPerFile)
	printConfigValue("  maxTokens", cfg.Search.MaxTokens, defaults.Search.MaxTokens)
	printConfigValue("  maxFileSizeBytes", cfg.Search.MaxFileSizeBytes, defaults.Search.MaxFileSizeBytes)
	printConfigValue("  contextBefore", cfg.Search.ContextBefore, defaults.Search.ContextBefore)
	printConfigValue("  contextAfter", cfg.Search.ContextAfter, defaults.Search.ContextAfter)
	printConfigValue("  denyDirs", strings.Join(cfg.Search.DenyDirs, ", "), strings.Join(defaults.Search.DenyDirs, ", "))

	fmt.Println("\nlogging:")
	printConfigValue("  level", cfg.Logging.Level, defaults.Logging.Level)
	printConfigValue("  format", cfg.Logging.Format, defaults.Logging.Format)

	fmt.Println()
	fmt.Println("Use 'gitscout config show --format json' for machine-readable output")
}

func printConfigValue(name string, value, defaultValue interface{}) {
	modified := ""
	if fmt.Sprintf("%v", value) != fmt.Sprintf("%v", defaultValue) {
		modified = fmt.Sprintf(" (default: %v)", defaultValue)
	}
	fmt.Printf("%s: %v%s\n", name, value, modified)
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func runConfigInit(cmd *cobra.Command, args []string) {
	cfg := config.DefaultConfig()
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}

	home, _ := config.Home()
	fmt.Printf("Wrote default configuration to %s\n", filepath.Join(home, "config.json"))
}
