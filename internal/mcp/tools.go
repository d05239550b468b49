package mcp

import "gitscout/internal/envelope"

// Tool represents a gitscout tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler is a function that handles a tool call and returns an envelope response.
type ToolHandler func(params map[string]interface{}) (*envelope.Response, error)

// GetToolDefinitions returns all tool definitions
func (s *Server) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "cloneRepository",
			Description: "Clone a GitHub repository into a scratch directory and make it the active repository for all other tools. Replaces any previously cloned repository.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"repoUrl": map[string]interface{}{
						"type":        "string",
						"description": "The repository URL to clone (e.g. https://github.com/owner/repo)",
					},
					"fastClone": map[string]interface{}{
						"type":        "boolean",
						"default":     true,
						"description": "Use a shallow, single-branch, blobless clone for speed",
					},
				},
				"required": []string{"repoUrl"},
			},
		},
		{
			Name:        "getRepositoryStructure",
			Description: "Get a top-level overview of the active repository: directories with file counts, files with sizes, key marker files (README, manifests, CI config), and a project name/version hint when a manifest is readable.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Repository root to inspect. Defaults to the active repository.",
					},
				},
			},
		},
		{
			Name:        "listDirectory",
			Description: "List the contents of a directory in the active repository. Hidden entries are omitted unless filterPattern matches them explicitly.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directoryPath": map[string]interface{}{
						"type":        "string",
						"description": "Directory to list, relative to the repository root. Defaults to the root.",
					},
					"filterPattern": map[string]interface{}{
						"type":        "string",
						"description": "Optional regular expression; only entries whose name matches are returned",
					},
				},
			},
		},
		{
			Name:        "readFile",
			Description: "Read a line range from a file in the active repository, with line numbers. Without lineEnd, reading stops at a default line; lineEnd 0 reads through the end of the file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filePath": map[string]interface{}{
						"type":        "string",
						"description": "File to read, relative to the repository root",
					},
					"lineStart": map[string]interface{}{
						"type":        "number",
						"default":     1,
						"description": "First line to read (1-based)",
					},
					"lineEnd": map[string]interface{}{
						"type":        "number",
						"default":     200,
						"description": "Last line to read (inclusive); clamped to the end of the file. 0 reads to the end of the file.",
					},
				},
				"required": []string{"filePath"},
			},
		},
		{
			Name:        "searchFiles",
			Description: "Search file contents in the active repository for a case-insensitive regular expression. Results are budgeted: a bounded number of files and matches per file, with context lines around each match.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"searchPattern": map[string]interface{}{
						"type":        "string",
						"description": "Regular expression to search for (matched case-insensitively)",
					},
					"directoryPath": map[string]interface{}{
						"type":        "string",
						"description": "Directory to search under, relative to the repository root. Defaults to the root.",
					},
					"fileExtensions": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "string",
						},
						"description": "Optional list of file extensions to include (e.g. ['.go', '.md'])",
					},
					"maxFiles": map[string]interface{}{
						"type":        "number",
						"description": "Maximum number of files to include in results",
					},
					"maxTokens": map[string]interface{}{
						"type":        "number",
						"description": "Approximate cap on the total size of returned match contexts",
					},
				},
				"required": []string{"searchPattern"},
			},
		},
	}
}

// RegisterTools registers all tool handlers
func (s *Server) RegisterTools() {
	s.tools["cloneRepository"] = s.toolCloneRepository
	s.tools["getRepositoryStructure"] = s.toolGetRepositoryStructure
	s.tools["listDirectory"] = s.toolListDirectory
	s.tools["readFile"] = s.toolReadFile
	s.tools["searchFiles"] = s.toolSearchFiles
}
