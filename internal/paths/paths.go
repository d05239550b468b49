// Package paths resolves caller-supplied paths against a session's working
// root. Every exploration operation goes through Resolve so the rules stay
// in one place: empty or "." means the root itself, absolute paths pass
// through unchanged, anything else is joined onto the root.
package paths

import (
	"path/filepath"
	"strings"

	"gitscout/internal/errors"
)

// Resolve maps a caller-supplied path onto an absolute filesystem path.
// root may be empty when no repository has been cloned yet; in that case
// only absolute inputs succeed.
func Resolve(input string, root string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" || input == "." {
		if root == "" {
			return "", errors.New(errors.NoWorkingRoot,
				"No directory specified and no repository available")
		}
		return root, nil
	}

	if filepath.IsAbs(input) {
		return input, nil
	}

	if root == "" {
		return "", errors.New(errors.NoWorkingRoot,
			"Relative path provided but no repository available")
	}

	return filepath.Join(root, input), nil
}

// Display returns the form of path used in caller-facing output: relative
// to base with forward slashes when path is under base, the path itself
// otherwise.
func Display(path string, base string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
