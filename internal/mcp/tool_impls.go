package mcp

import (
	"context"
	"fmt"

	"gitscout/internal/envelope"
	"gitscout/internal/errors"
	"gitscout/internal/explore"
	"gitscout/internal/paths"
	"gitscout/internal/search"
)

// toolCloneRepository implements the cloneRepository tool
func (s *Server) toolCloneRepository(params map[string]interface{}) (*envelope.Response, error) {
	repoURL, ok := params["repoUrl"].(string)
	if !ok || repoURL == "" {
		return nil, errors.New(errors.InvalidArgument, "missing or invalid 'repoUrl' parameter")
	}

	shallow := boolParam(params, "fastClone", s.cfg.Clone.Shallow)

	s.logger.Debug("Executing cloneRepository", map[string]interface{}{
		"repoUrl":   repoURL,
		"fastClone": shallow,
	})

	ctx := context.Background()
	workingRoot, err := s.session.Clone(ctx, repoURL, shallow)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Repository cloned successfully to: %s", workingRoot)
	return envelope.Text(text), nil
}

// toolGetRepositoryStructure implements the getRepositoryStructure tool
func (s *Server) toolGetRepositoryStructure(params map[string]interface{}) (*envelope.Response, error) {
	path, _ := params["path"].(string)

	s.logger.Debug("Executing getRepositoryStructure", map[string]interface{}{
		"path": path,
	})

	root, err := paths.Resolve(path, s.session.WorkingRoot())
	if err != nil {
		return nil, err
	}

	text, err := explore.InspectStructure(root, s.session.Reporter)
	if err != nil {
		return nil, err
	}

	return envelope.Text(text), nil
}

// toolListDirectory implements the listDirectory tool
func (s *Server) toolListDirectory(params map[string]interface{}) (*envelope.Response, error) {
	directoryPath, _ := params["directoryPath"].(string)
	filterPattern, _ := params["filterPattern"].(string)

	s.logger.Debug("Executing listDirectory", map[string]interface{}{
		"directoryPath": directoryPath,
		"filterPattern": filterPattern,
	})

	dir, err := paths.Resolve(directoryPath, s.session.WorkingRoot())
	if err != nil {
		return nil, err
	}

	entries, err := explore.ListDirectory(dir, filterPattern, s.session.Reporter)
	if err != nil {
		return nil, err
	}

	return envelope.Text(explore.FormatListing(dir, filterPattern, entries)), nil
}

// toolReadFile implements the readFile tool
func (s *Server) toolReadFile(params map[string]interface{}) (*envelope.Response, error) {
	filePath, ok := params["filePath"].(string)
	if !ok || filePath == "" {
		return nil, errors.New(errors.InvalidArgument, "missing or invalid 'filePath' parameter")
	}

	lineStart := intParam(params, "lineStart", 1)

	// Omitted lineEnd stops at a fixed default line; an explicit 0 reads
	// through the end of the file.
	lineEnd := s.cfg.Read.DefaultLineEnd
	if _, ok := params["lineEnd"]; ok {
		lineEnd = intParam(params, "lineEnd", explore.LineEndUnbounded)
	}

	s.logger.Debug("Executing readFile", map[string]interface{}{
		"filePath":  filePath,
		"lineStart": lineStart,
		"lineEnd":   lineEnd,
	})

	path, err := paths.Resolve(filePath, s.session.WorkingRoot())
	if err != nil {
		return nil, err
	}

	window, err := explore.ReadFileRange(path, lineStart, lineEnd, s.cfg.Read.MaxFileSizeBytes, s.session.Reporter)
	if err != nil {
		return nil, err
	}

	return envelope.Text(window.Format()), nil
}

// toolSearchFiles implements the searchFiles tool
func (s *Server) toolSearchFiles(params map[string]interface{}) (*envelope.Response, error) {
	pattern, ok := params["searchPattern"].(string)
	if !ok || pattern == "" {
		return nil, errors.New(errors.InvalidArgument, "missing or invalid 'searchPattern' parameter")
	}

	directoryPath, _ := params["directoryPath"].(string)
	extensions := stringSliceParam(params, "fileExtensions")
	maxFiles := intParam(params, "maxFiles", s.cfg.Search.MaxFiles)
	maxTokens := intParam(params, "maxTokens", s.cfg.Search.MaxTokens)

	s.logger.Debug("Executing searchFiles", map[string]interface{}{
		"searchPattern":  pattern,
		"directoryPath":  directoryPath,
		"fileExtensions": extensions,
		"maxFiles":       maxFiles,
		"maxTokens":      maxTokens,
	})

	dir, err := paths.Resolve(directoryPath, s.session.WorkingRoot())
	if err != nil {
		return nil, err
	}

	result, err := search.Run(search.Options{
		Pattern:    pattern,
		Dir:        dir,
		Extensions: extensions,
		Budget: search.Budget{
			MaxFiles:          maxFiles,
			MaxMatchesPerFile: s.cfg.Search.MaxMatchesPerFile,
			MaxTokens:         maxTokens,
		},
		MaxFileSize:   s.cfg.Search.MaxFileSizeBytes,
		ContextBefore: s.cfg.Search.ContextBefore,
		ContextAfter:  s.cfg.Search.ContextAfter,
		DenyDirs:      s.cfg.Search.DenyDirs,
		Reporter:      s.session.Reporter,
	})
	if err != nil {
		return nil, err
	}

	resp := envelope.New().Data(result.Format())
	if result.Truncated {
		resp.WithTruncation(true, len(result.Matches), result.TotalMatches, "budget")
		resp.Suggest("searchFiles", map[string]interface{}{
			"searchPattern": pattern,
			"directoryPath": directoryPath,
		}, "Narrow the search with a more specific pattern, directoryPath, or fileExtensions to see the remaining matches.")
	}
	return resp.Build(), nil
}

// boolParam extracts a boolean parameter with a default.
func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// intParam extracts an integer parameter; JSON numbers arrive as float64.
func intParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// stringSliceParam extracts a []string parameter from a JSON array.
func stringSliceParam(params map[string]interface{}, key string) []string {
	raw, ok := params[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
