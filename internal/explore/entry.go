// Package explore implements the read-only inspection operations over a
// working root: structure summary, directory listing, and ranged file
// reads. All operations return bounded text and report failures as typed
// errors the tool layer renders as data.
package explore

import (
	"fmt"
	"os"
	"path/filepath"
)

// EntryKind tags what a directory child is.
type EntryKind string

const (
	// KindFile is a regular file (or anything that is not a directory)
	KindFile EntryKind = "file"
	// KindDirectory is a subdirectory
	KindDirectory EntryKind = "directory"
)

// Entry is one directory child as presented to the caller. For
// directories Count holds the direct (non-recursive) file count; for files
// Size holds the byte size. Note carries inline problems such as
// "permission denied" instead of aborting the whole listing.
type Entry struct {
	Name  string
	Kind  EntryKind
	Size  int64
	Count int
	Note  string
}

// Format renders the entry the way structure and listing reports show it.
func (e Entry) Format() string {
	if e.Kind == KindDirectory {
		if e.Note != "" {
			return fmt.Sprintf("%s/ (%s)", e.Name, e.Note)
		}
		return fmt.Sprintf("%s/ (%d files)", e.Name, e.Count)
	}
	if e.Note != "" {
		return e.Name
	}
	return fmt.Sprintf("%s (%s)", e.Name, formatSize(e.Size))
}

// formatSize renders a byte count at its most significant binary scale
// with one decimal place.
func formatSize(size int64) string {
	switch {
	case size > 1024*1024:
		return fmt.Sprintf("%.1fMB", float64(size)/(1024*1024))
	case size > 1024:
		return fmt.Sprintf("%.1fKB", float64(size)/1024)
	default:
		return fmt.Sprintf("%dB", size)
	}
}

// statEntry builds an Entry for one child of dir.
func statEntry(dir string, name string, isDir bool) Entry {
	path := filepath.Join(dir, name)

	if isDir {
		entry := Entry{Name: name, Kind: KindDirectory}
		count, err := countDirectFiles(path)
		if err != nil {
			entry.Note = "permission denied"
			return entry
		}
		entry.Count = count
		return entry
	}

	entry := Entry{Name: name, Kind: KindFile}
	info, err := os.Stat(path)
	if err != nil {
		entry.Note = "unreadable"
		return entry
	}
	entry.Size = info.Size()
	return entry
}

// countDirectFiles counts regular files directly inside dir, without
// recursing.
func countDirectFiles(dir string) (int, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, child := range children {
		if !child.IsDir() {
			count++
		}
	}
	return count, nil
}
