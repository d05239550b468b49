// Package session holds the per-exploration state shared by all
// operations: the current working root and the optional progress sink.
// A session is single-writer: the calling loop invokes one operation at a
// time, so no locking is done here.
package session

import (
	"context"

	"github.com/google/uuid"

	"gitscout/internal/progress"
	"gitscout/internal/workspace"
)

// Session is one logical exploration. The session exclusively owns its
// working root path; only a clone through this session sets it and only
// Close removes it.
type Session struct {
	ID       string
	RepoURL  string
	Reporter progress.Reporter

	manager *workspace.Manager
	clone   *workspace.Clone
}

// New creates a session with no working root yet.
func New(manager *workspace.Manager, reporter progress.Reporter) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Reporter: progress.OrNop(reporter),
		manager:  manager,
	}
}

// Resume creates a session over an existing checkout, as recorded in the
// registry. scratchDir may equal workingRoot's parent or be empty when the
// checkout is externally managed.
func Resume(manager *workspace.Manager, reporter progress.Reporter, repoURL, scratchDir, workingRoot string) *Session {
	s := New(manager, reporter)
	s.RepoURL = repoURL
	s.clone = &workspace.Clone{ScratchDir: scratchDir, WorkingRoot: workingRoot}
	return s
}

// WorkingRoot returns the current working root, or "" before any clone.
func (s *Session) WorkingRoot() string {
	if s.clone == nil {
		return ""
	}
	return s.clone.WorkingRoot
}

// ScratchDir returns the scratch directory containing the working root.
func (s *Session) ScratchDir() string {
	if s.clone == nil {
		return ""
	}
	return s.clone.ScratchDir
}

// Clone acquires a new working root for repoURL, releasing any previous
// one first. On failure the previous root is already gone and the session
// has no working root.
func (s *Session) Clone(ctx context.Context, repoURL string, shallow bool) (string, error) {
	s.Release()

	clone, err := s.manager.Acquire(ctx, repoURL, shallow, s.Reporter)
	if err != nil {
		return "", err
	}

	s.RepoURL = repoURL
	s.clone = clone
	return clone.WorkingRoot, nil
}

// Release removes the session's checkout, if any. Safe to call repeatedly
// and on error paths; cleanup failures are swallowed.
func (s *Session) Release() {
	if s.clone == nil {
		return
	}
	s.manager.Release(s.clone.ScratchDir)
	s.clone = nil
	s.RepoURL = ""
}
