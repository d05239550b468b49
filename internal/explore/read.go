package explore

import (
	"fmt"
	"os"
	"strings"

	"gitscout/internal/errors"
	"gitscout/internal/progress"
	"gitscout/internal/textenc"
)

// LineEndUnbounded reads through the end of the file.
const LineEndUnbounded = 0

// DefaultMaxReadBytes is the hard cap on files the reader will open.
const DefaultMaxReadBytes = 10 * 1024 * 1024

// FileWindow is a line-addressed slice of a file. LineEnd is the effective
// (clamped) last line returned.
type FileWindow struct {
	Path       string
	LineStart  int
	LineEnd    int
	TotalLines int
	Lines      []string // original text, without line-number prefixes
	Clamped    bool     // true when the requested end was past EOF
}

// ReadFileRange returns lines lineStart..lineEnd of the file, 1-indexed.
// lineEnd == LineEndUnbounded means "to end of file". lineStart past the
// end of the file is an error; lineEnd past the end is silently clamped,
// because callers rarely know the file length in advance.
func ReadFileRange(path string, lineStart, lineEnd int, maxSize int64, reporter progress.Reporter) (*FileWindow, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New(errors.InvalidArgument, "filePath must be a non-empty string")
	}
	if lineStart < 1 {
		return nil, errors.New(errors.InvalidArgument, "lineStart must be a positive integer")
	}
	if lineEnd != LineEndUnbounded && lineEnd < lineStart {
		return nil, errors.New(errors.InvalidArgument, "lineEnd must be unbounded or an integer >= lineStart")
	}

	progress.OrNop(reporter).Notify("Reading file: " + displayName(path))

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.New(errors.NotFound, "File does not exist: "+path)
	}
	if info.IsDir() {
		return nil, errors.New(errors.NotAFile, "Path is not a file: "+path)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxReadBytes
	}
	if info.Size() > maxSize {
		return nil, errors.Newf(errors.TooLarge,
			"File too large to read (%.1fMB): %s", float64(info.Size())/(1024*1024), path)
	}

	content, err := textenc.ReadFile(path, textenc.ReadChain())
	if err != nil {
		return nil, err
	}

	lines := splitLines(content)
	total := len(lines)

	if lineStart > total {
		return nil, errors.Newf(errors.InvalidArgument,
			"lineStart (%d) exceeds file length (%d lines)", lineStart, total)
	}

	end := lineEnd
	clamped := false
	if end == LineEndUnbounded || end > total {
		clamped = end != LineEndUnbounded && end > total
		end = total
	}

	return &FileWindow{
		Path:       path,
		LineStart:  lineStart,
		LineEnd:    end,
		TotalLines: total,
		Lines:      lines[lineStart-1 : end],
		Clamped:    clamped,
	}, nil
}

// Format renders the window with 1-indexed line-number prefixes so the
// caller can address follow-up reads, plus a trailing note when a bounded
// window stopped short of the end of the file.
func (w *FileWindow) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s (lines %d-%d, total file lines: %d)\n",
		w.Path, w.LineStart, w.LineEnd, w.TotalLines)

	for i, line := range w.Lines {
		fmt.Fprintf(&b, "\n%4d: %s", w.LineStart+i, strings.TrimRight(line, " \t\r"))
	}

	if w.LineEnd < w.TotalLines {
		fmt.Fprintf(&b, "\n\n... (showing lines %d-%d of %d total lines)",
			w.LineStart, w.LineEnd, w.TotalLines)
	}

	return b.String()
}

// splitLines mirrors line-oriented reading: a trailing newline does not
// produce a phantom empty final line, but an unterminated last line still
// counts.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
