package explore

import (
	"os"
	"regexp"
	"strings"

	"gitscout/internal/errors"
	"gitscout/internal/progress"
)

// ListDirectory lists the immediate children of dir, optionally filtered
// by a regex on the entry name. Hidden entries (dot-prefixed) are
// suppressed unless a filter pattern is supplied and matches their name.
func ListDirectory(dir string, filterPattern string, reporter progress.Reporter) ([]Entry, error) {
	progress.OrNop(reporter).Notify("Exploring directory: " + displayName(dir))

	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.New(errors.NotFound, "Directory does not exist: "+dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.NotADirectory, "Path is not a directory: "+dir)
	}

	var pattern *regexp.Regexp
	if filterPattern != "" {
		pattern, err = regexp.Compile(strings.TrimSpace(filterPattern))
		if err != nil {
			return nil, errors.Newf(errors.InvalidArgument,
				"Invalid regex pattern in filterPattern: %v", err)
		}
	}

	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.InternalError, "Failed to list directory: "+dir, err)
	}

	var entries []Entry
	for _, child := range children {
		name := child.Name()

		// Hidden entries show up only when the caller asked for them by
		// pattern.
		if strings.HasPrefix(name, ".") && (pattern == nil || !pattern.MatchString(name)) {
			continue
		}
		if pattern != nil && !pattern.MatchString(name) {
			continue
		}

		entries = append(entries, statEntry(dir, name, child.IsDir()))
	}

	return entries, nil
}

// FormatListing renders a listing the way the exploring caller sees it.
func FormatListing(dir string, filterPattern string, entries []Entry) string {
	if len(entries) == 0 {
		msg := "No items found in " + dir
		if filterPattern != "" {
			msg += " matching pattern '" + filterPattern + "'"
		}
		return msg
	}

	header := "Contents of " + dir + ":"
	if filterPattern != "" {
		header = "Contents of " + dir + ": (filtered by '" + filterPattern + "')"
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, header)
	for _, entry := range entries {
		lines = append(lines, entry.Format())
	}
	return strings.Join(lines, "\n")
}

func displayName(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 && idx < len(trimmed)-1 {
		return trimmed[idx+1:]
	}
	return path
}
