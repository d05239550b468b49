package registry

import (
	"os"
	"path/filepath"
	"testing"

	"gitscout/internal/config"
)

func setupHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.HomeEnvVar, dir)
	return dir
}

func TestLoadEmptyRegistry(t *testing.T) {
	setupHome(t)

	reg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(reg.Sessions) != 0 {
		t.Errorf("Expected empty registry, got %d sessions", len(reg.Sessions))
	}
	if reg.Version != currentRegistryVersion {
		t.Errorf("Expected version %d, got %d", currentRegistryVersion, reg.Version)
	}
}

func TestAddAndGet(t *testing.T) {
	setupHome(t)
	scratch := t.TempDir()
	root := filepath.Join(scratch, "repo")
	if err := os.Mkdir(root, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	reg, _ := Load()
	if err := reg.Add("main", "https://example.com/repo.git", scratch, root); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	entry, state, err := reg.Get("main")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry.RepoURL != "https://example.com/repo.git" {
		t.Errorf("Unexpected repo URL: %s", entry.RepoURL)
	}
	if state != SessionStateValid {
		t.Errorf("Expected valid state, got %s", state)
	}

	// First add becomes the default
	if reg.Default != "main" {
		t.Errorf("Expected 'main' as default, got %q", reg.Default)
	}
}

func TestAddPersists(t *testing.T) {
	setupHome(t)
	root := t.TempDir()

	reg, _ := Load()
	if err := reg.Add("persisted", "url", "", root); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reloaded, err := Load()
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if _, _, err := reloaded.Get("persisted"); err != nil {
		t.Errorf("Expected session to survive reload: %v", err)
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"main", "repo-1", "my_session", "A2"}
	invalid := []string{"", "has space", "slash/name", "dot.name"}

	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("Expected %q valid: %v", name, err)
		}
	}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("Expected %q rejected", name)
		}
	}
}

func TestRemoveClearsDefault(t *testing.T) {
	setupHome(t)
	root := t.TempDir()

	reg, _ := Load()
	_ = reg.Add("only", "url", "", root)

	if err := reg.Remove("only"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if reg.Default != "" {
		t.Errorf("Expected default cleared, got %q", reg.Default)
	}
	if err := reg.Remove("only"); err == nil {
		t.Error("Expected error removing missing session")
	}
}

func TestRemoveDefaultPromotesSurvivor(t *testing.T) {
	setupHome(t)

	reg, _ := Load()
	_ = reg.Add("first", "url", "", t.TempDir())
	_ = reg.Add("zeta", "url", "", t.TempDir())
	_ = reg.Add("beta", "url", "", t.TempDir())

	if reg.Default != "first" {
		t.Fatalf("Expected 'first' as default, got %q", reg.Default)
	}

	if err := reg.Remove("first"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if reg.Default != "beta" {
		t.Errorf("Expected 'beta' promoted as default, got %q", reg.Default)
	}

	// Removing a non-default leaves the default alone
	if err := reg.Remove("zeta"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if reg.Default != "beta" {
		t.Errorf("Expected default unchanged, got %q", reg.Default)
	}
}

func TestDeadSessions(t *testing.T) {
	setupHome(t)
	liveRoot := t.TempDir()
	deadRoot := filepath.Join(t.TempDir(), "gone")

	reg, _ := Load()
	_ = reg.Add("live", "url", "", liveRoot)
	_ = reg.Add("dead", "url", "", deadRoot)

	dead := reg.Dead()
	if len(dead) != 1 || dead[0] != "dead" {
		t.Errorf("Expected exactly ['dead'], got %v", dead)
	}
	if reg.State("live") != SessionStateValid {
		t.Errorf("Expected live session valid")
	}
}
