// Package search walks a directory subtree matching a pattern against file
// contents, assembling a truncated, annotated result under combined
// file-count and token budgets. No single call can return unbounded data:
// the walk halts the instant a budget is exceeded and whatever accumulated
// is returned flagged truncated.
package search

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gitscout/internal/errors"
	"gitscout/internal/paths"
	"gitscout/internal/progress"
	"gitscout/internal/textenc"
)

// Budget bounds one search call's output.
type Budget struct {
	MaxFiles          int // distinct files contributing at least one match
	MaxMatchesPerFile int // early-out per file, bounds single-file match storms
	MaxTokens         int // approximate cumulative size of returned contexts
}

// DefaultBudget matches the limits tuned for LLM consumers.
func DefaultBudget() Budget {
	return Budget{MaxFiles: 15, MaxMatchesPerFile: 3, MaxTokens: 100000}
}

// Options configures one search call.
type Options struct {
	Pattern       string
	Dir           string
	Extensions    []string // optional filter, e.g. [".go", ".py"]
	Budget        Budget
	MaxFileSize   int64 // per-file candidate cap; oversized files are skipped
	ContextBefore int
	ContextAfter  int
	DenyDirs      []string // pruned before descent, in addition to dot-dirs
	Reporter      progress.Reporter
}

// DefaultMaxFileSize is the per-file candidate size cap.
const DefaultMaxFileSize = 1024 * 1024

// DefaultDenyDirs are generated or dependency directories never worth
// descending into.
var DefaultDenyDirs = []string{"node_modules", "__pycache__", "venv", "env"}

// Match is one matching line with its context window. Context lines are
// newline-joined with the matching line prefixed ">>> ".
type Match struct {
	File    string // relative to the searched directory, forward slashes
	Line    int    // 1-indexed
	Context string
	Tokens  int // estimated size contribution
}

// Result is the bounded outcome of one search call. Ordering is
// directory-walk order, not relevance.
type Result struct {
	Pattern          string
	Matches          []Match
	FilesSearched    int // candidate files actually scanned
	FilesWithMatches int
	TotalMatches     int
	Truncated        bool
}

// Stable truncation markers the caller can test for.
const (
	TruncationNotice = "Results truncated due to size limits."
	TruncationAdvice = "Use more specific search patterns to see additional matches."
)

// errBudgetExhausted halts the walk across both loops.
var errBudgetExhausted = fmt.Errorf("budget exhausted")

// Run executes a budgeted search. Pattern is matched case-insensitively
// against each line independently.
func Run(opts Options) (*Result, error) {
	pattern := strings.TrimSpace(opts.Pattern)
	if pattern == "" {
		return nil, errors.New(errors.InvalidArgument, "searchPattern must be a non-empty string")
	}

	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, errors.New(errors.NotFound, "Directory does not exist: "+opts.Dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.NotADirectory, "Path is not a directory: "+opts.Dir)
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errors.Newf(errors.InvalidArgument,
			"Invalid regex pattern '%s': %v", pattern, err)
	}

	progress.OrNop(opts.Reporter).Notify("Searching for pattern: " + pattern)

	budget := opts.Budget
	if budget.MaxFiles <= 0 {
		budget.MaxFiles = DefaultBudget().MaxFiles
	}
	if budget.MaxMatchesPerFile <= 0 {
		budget.MaxMatchesPerFile = DefaultBudget().MaxMatchesPerFile
	}
	if budget.MaxTokens <= 0 {
		budget.MaxTokens = DefaultBudget().MaxTokens
	}
	maxFileSize := opts.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	denyDirs := opts.DenyDirs
	if denyDirs == nil {
		denyDirs = DefaultDenyDirs
	}

	result := &Result{Pattern: pattern}
	estimatedTokens := 0

	walkErr := filepath.WalkDir(opts.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, never fatal
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == opts.Dir {
				return nil
			}
			// Prune before descent: hidden and generated trees cost I/O
			// even when nothing in them can match.
			if prunedDir(d.Name(), denyDirs) {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if len(opts.Extensions) > 0 && !matchesExtension(name, opts.Extensions) {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil || fileInfo.Size() > maxFileSize {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content, _, err := textenc.Decode(data, textenc.ScanChain())
		if err != nil {
			// Treat as binary and move on
			return nil
		}

		result.FilesSearched++

		rel := paths.Display(path, opts.Dir)

		fileMatches, fileTruncated := scanFile(re, content, rel, opts.ContextBefore, opts.ContextAfter,
			budget, result.FilesWithMatches, &estimatedTokens, &result.TotalMatches)

		if len(fileMatches) > 0 {
			result.Matches = append(result.Matches, fileMatches...)
			result.FilesWithMatches++

			if result.FilesWithMatches >= budget.MaxFiles {
				result.Truncated = true
				return errBudgetExhausted
			}
		}
		if fileTruncated {
			result.Truncated = true
			return errBudgetExhausted
		}

		return nil
	})

	if walkErr != nil && walkErr != errBudgetExhausted {
		return nil, errors.Wrap(errors.InternalError, "Search walk failed", walkErr)
	}

	return result, nil
}

// scanFile collects up to the per-file cap of matches for one file,
// stopping early if a global budget would be exceeded. It reports whether
// a global budget was hit.
func scanFile(re *regexp.Regexp, content, rel string, before, after int, budget Budget,
	filesWithMatches int, estimatedTokens *int, totalMatches *int) ([]Match, bool) {

	lines := strings.Split(content, "\n")
	var matches []Match

	for i, line := range lines {
		if !re.MatchString(line) {
			continue
		}
		*totalMatches++

		lineNum := i + 1
		context := contextWindow(lines, i, before, after)
		matchText := fmt.Sprintf("%s:%d\n%s\n", rel, lineNum, context)
		tokens := estimateTokens(matchText)

		if *estimatedTokens+tokens > budget.MaxTokens || filesWithMatches >= budget.MaxFiles {
			return matches, true
		}

		matches = append(matches, Match{
			File:    rel,
			Line:    lineNum,
			Context: context,
			Tokens:  tokens,
		})
		*estimatedTokens += tokens

		if len(matches) >= budget.MaxMatchesPerFile {
			break
		}
	}

	return matches, false
}

// contextWindow extracts the lines around index idx with the matching line
// visually marked.
func contextWindow(lines []string, idx, before, after int) string {
	start := idx - before
	if start < 0 {
		start = 0
	}
	end := idx + after + 1
	if end > len(lines) {
		end = len(lines)
	}

	window := make([]string, end-start)
	copy(window, lines[start:end])
	window[idx-start] = ">>> " + window[idx-start]

	return strings.Join(window, "\n")
}

func prunedDir(name string, denyDirs []string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, deny := range denyDirs {
		if name == deny {
			return true
		}
	}
	return false
}

func matchesExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// estimateTokens approximates LLM token cost at ~4 characters per token.
func estimateTokens(text string) int {
	return len(text) / 4
}

// Format renders the result as the bounded text the caller receives.
func (r *Result) Format() string {
	if len(r.Matches) == 0 {
		return fmt.Sprintf("No matches found for pattern '%s' in %d files searched.",
			r.Pattern, r.FilesSearched)
	}

	var parts []string

	summary := fmt.Sprintf("Found %d matches for pattern '%s' in %d files",
		r.TotalMatches, r.Pattern, r.FilesSearched)
	if r.Truncated {
		summary += fmt.Sprintf(" (showing first %d matches from %d files)",
			len(r.Matches), r.FilesWithMatches)
	}
	parts = append(parts, summary+":\n")

	for _, match := range r.Matches {
		parts = append(parts, fmt.Sprintf("%s:%d", match.File, match.Line))
		parts = append(parts, match.Context)
		parts = append(parts, "")
	}

	if r.Truncated {
		parts = append(parts, TruncationNotice)
		parts = append(parts, TruncationAdvice)
	}

	return strings.Join(parts, "\n")
}
