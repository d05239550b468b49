// Package registry persists the set of checked-out sessions so CLI
// invocations can share one working root across processes and gc can sweep
// scratch directories that outlived their session.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"gitscout/internal/config"
)

// SessionState describes whether a registered session is still usable.
type SessionState string

const (
	// SessionStateValid means the working root still exists on disk
	SessionStateValid SessionState = "valid"
	// SessionStateMissing means the working root is gone
	SessionStateMissing SessionState = "missing"
)

// Entry records one registered session.
type Entry struct {
	Name        string    `json:"name"`
	RepoURL     string    `json:"repoUrl"`
	ScratchDir  string    `json:"scratchDir"`
	WorkingRoot string    `json:"workingRoot"` // always absolute
	AddedAt     time.Time `json:"addedAt"`
	LastUsedAt  time.Time `json:"lastUsedAt,omitempty"`
}

// Registry stores all registered sessions.
type Registry struct {
	Sessions map[string]Entry `json:"sessions"`
	Default  string           `json:"default,omitempty"`
	Version  int              `json:"version"`
}

const currentRegistryVersion = 1

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Path returns the registry file location under the gitscout home.
func Path() (string, error) {
	home, err := config.Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "sessions.json"), nil
}

// Load reads the registry from disk, returning an empty registry when the
// file is absent.
func Load() (*Registry, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Registry{
			Sessions: make(map[string]Entry),
			Version:  currentRegistryVersion,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session registry: %w", err)
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse session registry: %w", err)
	}
	if reg.Version > currentRegistryVersion {
		return nil, fmt.Errorf("session registry version %d not supported (max: %d)", reg.Version, currentRegistryVersion)
	}
	if reg.Sessions == nil {
		reg.Sessions = make(map[string]Entry)
	}

	return &reg, nil
}

// Save persists the registry atomically.
func (r *Registry) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	r.Version = currentRegistryVersion

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session registry: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write session registry: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename session registry: %w", err)
	}

	return nil
}

// ValidateName checks if a session name is usable as a registry key.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("session name cannot be empty")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("session name must contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}

// Add registers a session, replacing any existing entry of the same name,
// and makes it the default when none is set.
func (r *Registry) Add(name, repoURL, scratchDir, workingRoot string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	absRoot, err := filepath.Abs(workingRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve working root: %w", err)
	}

	r.Sessions[name] = Entry{
		Name:        name,
		RepoURL:     repoURL,
		ScratchDir:  scratchDir,
		WorkingRoot: filepath.Clean(absRoot),
		AddedAt:     time.Now(),
		LastUsedAt:  time.Now(),
	}
	if r.Default == "" {
		r.Default = name
	}

	return r.Save()
}

// Remove unregisters a session. Disk cleanup is the caller's concern.
// Removing the default promotes the first surviving session by name so
// later commands keep working without an explicit --session.
func (r *Registry) Remove(name string) error {
	if _, exists := r.Sessions[name]; !exists {
		return fmt.Errorf("session '%s' not found", name)
	}

	delete(r.Sessions, name)
	if r.Default == name {
		r.Default = ""
		survivors := make([]string, 0, len(r.Sessions))
		for n := range r.Sessions {
			survivors = append(survivors, n)
		}
		if len(survivors) > 0 {
			sort.Strings(survivors)
			r.Default = survivors[0]
		}
	}

	return r.Save()
}

// Get returns a session entry and its current on-disk state.
func (r *Registry) Get(name string) (*Entry, SessionState, error) {
	entry, exists := r.Sessions[name]
	if !exists {
		return nil, "", fmt.Errorf("session '%s' not found", name)
	}
	return &entry, r.State(name), nil
}

// GetDefault returns the default session entry, when one exists.
func (r *Registry) GetDefault() (*Entry, SessionState, error) {
	if r.Default == "" {
		return nil, "", fmt.Errorf("no default session; run 'gitscout clone' first")
	}
	return r.Get(r.Default)
}

// Touch updates a session's last-used timestamp.
func (r *Registry) Touch(name string) error {
	entry, exists := r.Sessions[name]
	if !exists {
		return fmt.Errorf("session '%s' not found", name)
	}
	entry.LastUsedAt = time.Now()
	r.Sessions[name] = entry
	return r.Save()
}

// State reports whether a session's working root still exists.
func (r *Registry) State(name string) SessionState {
	entry, exists := r.Sessions[name]
	if !exists {
		return SessionStateMissing
	}
	info, err := os.Stat(entry.WorkingRoot)
	if err != nil || !info.IsDir() {
		return SessionStateMissing
	}
	return SessionStateValid
}

// Dead returns the names of sessions whose working roots are gone; gc
// removes these entries and their scratch directories.
func (r *Registry) Dead() []string {
	var dead []string
	for name := range r.Sessions {
		if r.State(name) == SessionStateMissing {
			dead = append(dead, name)
		}
	}
	return dead
}
