package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitscout/internal/errors"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestSingleMatchWithContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"),
		"line one\nline two\nfoo is here\nline four\nline five\n")

	result, err := Run(Options{Pattern: "foo", Dir: dir, ContextBefore: 2, ContextAfter: 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(result.Matches))
	}
	match := result.Matches[0]
	if match.File != "a.txt" || match.Line != 3 {
		t.Errorf("Expected a.txt:3, got %s:%d", match.File, match.Line)
	}

	// Window spans lines 1-5, bounded by file length, with line 3 marked
	for _, want := range []string{"line one", "line two", ">>> foo is here", "line four", "line five"} {
		if !strings.Contains(match.Context, want) {
			t.Errorf("Expected %q in context:\n%s", want, match.Context)
		}
	}
	if result.Truncated {
		t.Error("Single match should not be truncated")
	}
}

func TestCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "TODO: Fix This\n")

	result, err := Run(Options{Pattern: "fix this", Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Matches) != 1 {
		t.Errorf("Expected case-insensitive match, got %d matches", len(result.Matches))
	}
}

func TestNoMatchesReportsFilesSearched(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "nothing here\n")
	writeFile(t, filepath.Join(dir, "b.txt"), "nor here\n")
	writeFile(t, filepath.Join(dir, "c.txt"), "empty\n")

	result, err := Run(Options{Pattern: "unfindable_zzz", Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FilesSearched != 3 {
		t.Errorf("Expected 3 files searched, got %d", result.FilesSearched)
	}
	text := result.Format()
	want := "No matches found for pattern 'unfindable_zzz' in 3 files searched."
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestPerFileMatchCap(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "needle %d\n", i)
	}
	writeFile(t, filepath.Join(dir, "storm.txt"), b.String())

	result, err := Run(Options{Pattern: "needle", Dir: dir,
		Budget: Budget{MaxFiles: 15, MaxMatchesPerFile: 3, MaxTokens: 100000}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Matches) != 3 {
		t.Errorf("Expected per-file cap of 3, got %d matches", len(result.Matches))
	}
}

func TestMaxFilesBudgetHaltsWalk(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 10; i++ {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("f%02d.txt", i)), "match me\n")
	}

	result, err := Run(Options{Pattern: "match", Dir: dir,
		Budget: Budget{MaxFiles: 4, MaxMatchesPerFile: 3, MaxTokens: 100000}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FilesWithMatches > 4 {
		t.Errorf("Expected at most 4 files with matches, got %d", result.FilesWithMatches)
	}
	if !result.Truncated {
		t.Error("Expected truncated flag when file budget is reached")
	}
	text := result.Format()
	if !strings.Contains(text, TruncationNotice) {
		t.Errorf("Expected truncation notice in output:\n%s", text)
	}
	if !strings.Contains(text, TruncationAdvice) {
		t.Errorf("Expected narrowing advice in output:\n%s", text)
	}
}

func TestTokenBudgetHaltsWalk(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x", 400)
	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("f%d.txt", i)),
			"match "+long+"\n")
	}

	result, err := Run(Options{Pattern: "match", Dir: dir,
		Budget: Budget{MaxFiles: 100, MaxMatchesPerFile: 3, MaxTokens: 250}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.Truncated {
		t.Error("Expected truncation when token budget exceeded")
	}
	// Accumulated results stay; only further matches are cut
	if len(result.Matches) == 0 {
		t.Error("Partial results must be retained, not discarded")
	}

	total := 0
	for _, m := range result.Matches {
		total += m.Tokens
	}
	if total > 250 {
		t.Errorf("Returned matches exceed token budget: %d > 250", total)
	}
}

func TestPrunesDenylistedAndHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "code.py"), "target\n")
	writeFile(t, filepath.Join(dir, "node_modules", "dep.js"), "target\n")
	writeFile(t, filepath.Join(dir, "__pycache__", "mod.pyc"), "target\n")
	writeFile(t, filepath.Join(dir, "venv", "lib.py"), "target\n")
	writeFile(t, filepath.Join(dir, ".git", "config"), "target\n")

	result, err := Run(Options{Pattern: "target", Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Matches) != 1 || result.Matches[0].File != "src/code.py" {
		t.Errorf("Expected only src/code.py, got %v", result.Matches)
	}
}

func TestSkipsHiddenAndOversizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".secret"), "target\n")
	writeFile(t, filepath.Join(dir, "big.txt"), "target "+strings.Repeat("x", 100)+"\n")
	writeFile(t, filepath.Join(dir, "ok.txt"), "target\n")

	result, err := Run(Options{Pattern: "target", Dir: dir, MaxFileSize: 50})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Matches) != 1 || result.Matches[0].File != "ok.txt" {
		t.Errorf("Expected only ok.txt, got %v", result.Matches)
	}
	if result.FilesSearched != 1 {
		t.Errorf("Skipped files must not count as searched, got %d", result.FilesSearched)
	}
}

func TestExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "target\n")
	writeFile(t, filepath.Join(dir, "b.js"), "target\n")

	result, err := Run(Options{Pattern: "target", Dir: dir, Extensions: []string{".py"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Matches) != 1 || result.Matches[0].File != "a.py" {
		t.Errorf("Expected only a.py, got %v", result.Matches)
	}
}

func TestValidation(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty pattern", func(t *testing.T) {
		_, err := Run(Options{Pattern: "   ", Dir: dir})
		if errors.CodeOf(err) != errors.InvalidArgument {
			t.Errorf("Expected INVALID_ARGUMENT, got %v", err)
		}
	})

	t.Run("bad regex", func(t *testing.T) {
		_, err := Run(Options{Pattern: "([", Dir: dir})
		if errors.CodeOf(err) != errors.InvalidArgument {
			t.Errorf("Expected INVALID_ARGUMENT, got %v", err)
		}
	})

	t.Run("missing dir", func(t *testing.T) {
		_, err := Run(Options{Pattern: "x", Dir: filepath.Join(dir, "gone")})
		if errors.CodeOf(err) != errors.NotFound {
			t.Errorf("Expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("not a dir", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "plain.txt"), "x\n")
		_, err := Run(Options{Pattern: "x", Dir: filepath.Join(dir, "plain.txt")})
		if errors.CodeOf(err) != errors.NotADirectory {
			t.Errorf("Expected NOT_A_DIRECTORY, got %v", err)
		}
	})
}

func TestIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha\nbeta\ngamma\n")
	writeFile(t, filepath.Join(dir, "b.txt"), "beta again\n")

	first, err := Run(Options{Pattern: "beta", Dir: dir})
	if err != nil {
		t.Fatalf("First Run failed: %v", err)
	}
	second, err := Run(Options{Pattern: "beta", Dir: dir})
	if err != nil {
		t.Fatalf("Second Run failed: %v", err)
	}

	if first.Format() != second.Format() {
		t.Error("Identical searches on an unchanged tree should yield identical results")
	}
}

func TestFormatSummaryHeader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "hit\n")

	result, err := Run(Options{Pattern: "hit", Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	text := result.Format()
	if !strings.HasPrefix(text, "Found 1 matches for pattern 'hit' in 1 files:") {
		t.Errorf("Unexpected summary header:\n%s", text)
	}
	if !strings.Contains(text, "a.txt:1") {
		t.Errorf("Expected file:line reference:\n%s", text)
	}
}
