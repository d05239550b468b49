package explore

import (
	"os"
	"path/filepath"
	"strings"

	"gitscout/internal/errors"
	"gitscout/internal/progress"
)

// markerFiles are the well-known top-level files reported by the structure
// summary, in canonical output order.
var markerFiles = []string{
	"README.md", "README.rst", "README.txt", "README",
	"package.json", "requirements.txt", "setup.py", "pyproject.toml",
	"Cargo.toml", "go.mod", "pom.xml", "build.gradle",
	"Makefile", "CMakeLists.txt", "Dockerfile",
	"LICENSE", "LICENSE.txt", "LICENSE.md",
	".gitignore", ".env.example",
}

// vcsMetaPrefix marks entries the structure summary skips entirely.
const vcsMetaPrefix = ".git"

// InspectStructure produces a shallow, human-readable summary of a working
// root: top-level entries with type and size or file count, the well-known
// marker files present, and manifest hints when a manifest parses.
func InspectStructure(root string, reporter progress.Reporter) (string, error) {
	progress.OrNop(reporter).Notify("Analyzing repository structure...")

	info, err := os.Stat(root)
	if err != nil {
		return "", errors.New(errors.NotFound, "Repository path does not exist: "+root)
	}
	if !info.IsDir() {
		return "", errors.New(errors.NotADirectory, "Repository path is not a directory: "+root)
	}

	children, err := os.ReadDir(root)
	if err != nil {
		return "", errors.Wrap(errors.InternalError, "Failed to list repository root", err)
	}

	var lines []string
	lines = append(lines, "Repository: "+filepath.Base(root))
	lines = append(lines, "Path: "+root)
	lines = append(lines, "", "Top-level structure:")

	for _, child := range children {
		if strings.HasPrefix(child.Name(), vcsMetaPrefix) {
			continue
		}
		lines = append(lines, statEntry(root, child.Name(), child.IsDir()).Format())
	}

	var found []string
	for _, marker := range markerFiles {
		if _, err := os.Stat(filepath.Join(root, marker)); err == nil {
			found = append(found, marker)
		}
	}
	if len(found) > 0 {
		lines = append(lines, "", "Key files found: "+strings.Join(found, ", "))
	}

	lines = append(lines, manifestHints(root)...)

	return strings.Join(lines, "\n"), nil
}
