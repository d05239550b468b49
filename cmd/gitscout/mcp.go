package main

import (
	"os"

	"github.com/spf13/cobra"

	"gitscout/internal/logging"
	"gitscout/internal/mcp"
	"gitscout/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for agent integration",
	Long: `Start the Model Context Protocol (MCP) server.

The server lets MCP clients explore repositories through stdio using
JSON-RPC 2.0. It exposes the following tools:
  - cloneRepository: Clone a repository into a scratch directory
  - getRepositoryStructure: Top-level overview of the active repository
  - listDirectory: List a directory's contents
  - readFile: Read a line range from a file
  - searchFiles: Budgeted content search with context lines

This command is typically invoked by MCP clients and not directly by
users.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	// Logs go to stderr; stdout carries the protocol
	logger := logging.NewLogger(logging.Config{
		Format: logging.JSONFormat,
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: os.Stderr,
	})

	logger.Info("Starting MCP server", map[string]interface{}{
		"version": version.Version,
	})

	server := mcp.NewServer(version.Version, cfg, logger)

	if err := server.Start(); err != nil {
		logger.Error("MCP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	return nil
}
