// Package workspace owns the lifecycle of a session's checked-out working
// root: creation via a git subprocess clone into a fresh scratch directory,
// and best-effort teardown when the session ends.
package workspace

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"gitscout/internal/errors"
	"gitscout/internal/logging"
	"gitscout/internal/progress"
)

// DefaultTimeout bounds a single clone invocation
const DefaultTimeout = 5 * time.Minute

// Clone holds the on-disk result of a successful acquire. The scratch
// directory contains the working root and nothing else; releasing the
// scratch directory removes the whole checkout.
type Clone struct {
	ScratchDir  string
	WorkingRoot string
}

// Manager invokes the external git client as a black box. Only the exit
// code, captured stderr, and the wall-clock deadline are interpreted.
type Manager struct {
	Timeout    time.Duration
	ScratchDir string // base for per-clone scratch dirs; empty means os.TempDir
	GitPath    string // git binary; empty means "git" from PATH
	Logger     *logging.Logger
}

// NewManager creates a Manager with the given timeout, using defaults for
// zero values.
func NewManager(timeout time.Duration, logger *logging.Logger) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Manager{Timeout: timeout, Logger: logger}
}

// Acquire clones repoURL into a freshly created scratch directory and
// returns the working root. When shallow is true the fetch is depth-1,
// single-branch, and blob-filtered. The clone is fully non-interactive and
// LFS smudge filters are disabled so a missing git-lfs client never blocks
// the operation.
func (m *Manager) Acquire(ctx context.Context, repoURL string, shallow bool, reporter progress.Reporter) (*Clone, error) {
	repoURL = strings.TrimSpace(repoURL)
	if repoURL == "" {
		return nil, errors.New(errors.InvalidArgument, "repoUrl must be a non-empty string")
	}

	progress.OrNop(reporter).Notify("Cloning repository: " + repoURL)

	scratch, err := os.MkdirTemp(m.ScratchDir, "gitscout-")
	if err != nil {
		return nil, errors.Wrap(errors.CloneFailed, "Failed to create scratch directory", err)
	}

	dest := filepath.Join(scratch, repoDirName(repoURL))

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	git := m.GitPath
	if git == "" {
		git = "git"
	}

	args := []string{
		"-c", "filter.lfs.smudge=",
		"-c", "filter.lfs.process=",
		"-c", "filter.lfs.clean=",
		"-c", "filter.lfs.required=false",
		"clone",
	}
	if shallow {
		args = append(args, "--depth=1", "--single-branch", "--no-tags", "--filter=blob:none")
	}
	args = append(args, repoURL, dest)

	cmd := exec.CommandContext(ctx, git, args...)
	cmd.Env = append(os.Environ(),
		"GIT_LFS_SKIP_SMUDGE=1",
		"GIT_LFS_SKIP=1",
		"GIT_TERMINAL_PROMPT=0",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	m.Logger.Info("Cloning repository", map[string]interface{}{
		"url":     repoURL,
		"shallow": shallow,
		"dest":    dest,
	})

	err = cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		// The process has been killed; the scratch dir stays eligible for
		// best-effort cleanup but the working root is never set.
		m.Release(scratch)
		return nil, errors.Newf(errors.CloneTimeout,
			"Repository cloning timed out (%s)", m.Timeout)
	}
	if err != nil {
		m.Release(scratch)
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, errors.Wrap(errors.CloneFailed, "Failed to clone repository: "+msg, err)
	}

	return &Clone{ScratchDir: scratch, WorkingRoot: dest}, nil
}

// Release recursively removes a scratch directory. Cleanup is best-effort
// and never fails the caller's primary operation; failures are logged and
// swallowed.
func (m *Manager) Release(scratchDir string) {
	if scratchDir == "" {
		return
	}
	if err := os.RemoveAll(scratchDir); err != nil {
		m.Logger.Warn("Failed to remove scratch directory", map[string]interface{}{
			"dir":   scratchDir,
			"error": err.Error(),
		})
	}
}

// repoDirName derives the checkout directory name from the last URL path
// segment, stripping a trailing .git suffix.
func repoDirName(repoURL string) string {
	trimmed := strings.TrimRight(repoURL, "/")
	name := trimmed
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		name = trimmed[idx+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		name = "repo"
	}
	return name
}
