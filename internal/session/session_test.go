package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gitscout/internal/workspace"
)

func TestNewSessionHasNoRoot(t *testing.T) {
	s := New(workspace.NewManager(time.Minute, nil), nil)

	if s.ID == "" {
		t.Error("Session should get a generated ID")
	}
	if s.WorkingRoot() != "" {
		t.Errorf("Fresh session should have no working root, got %q", s.WorkingRoot())
	}
	if s.Reporter == nil {
		t.Error("Reporter should default to a no-op, not nil")
	}
}

func TestResume(t *testing.T) {
	scratch := t.TempDir()
	root := filepath.Join(scratch, "repo")
	if err := os.Mkdir(root, 0755); err != nil {
		t.Fatalf("Failed to create root: %v", err)
	}

	s := Resume(workspace.NewManager(time.Minute, nil), nil, "https://example.com/repo.git", scratch, root)

	if s.WorkingRoot() != root {
		t.Errorf("Expected resumed root %s, got %s", root, s.WorkingRoot())
	}
	if s.RepoURL != "https://example.com/repo.git" {
		t.Errorf("Expected repo URL preserved, got %s", s.RepoURL)
	}
}

func TestReleaseRemovesScratchDir(t *testing.T) {
	base := t.TempDir()
	scratch := filepath.Join(base, "gitscout-x")
	root := filepath.Join(scratch, "repo")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create fixture: %v", err)
	}

	s := Resume(workspace.NewManager(time.Minute, nil), nil, "", scratch, root)
	s.Release()

	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Errorf("Expected scratch dir removed, stat err = %v", err)
	}
	if s.WorkingRoot() != "" {
		t.Errorf("Expected no working root after release, got %q", s.WorkingRoot())
	}

	// Idempotent
	s.Release()
}
