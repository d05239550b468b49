package explore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// manifestHints inspects well-known manifests at the top level and returns
// one "Project hint" line per manifest that parses. Parse failures are
// silently ignored; hints are a convenience, not a contract.
func manifestHints(root string) []string {
	var hints []string

	if hint := cargoHint(filepath.Join(root, "Cargo.toml")); hint != "" {
		hints = append(hints, hint)
	}
	if hint := pyprojectHint(filepath.Join(root, "pyproject.toml")); hint != "" {
		hints = append(hints, hint)
	}
	if hint := packageJSONHint(filepath.Join(root, "package.json")); hint != "" {
		hints = append(hints, hint)
	}

	if len(hints) == 0 {
		return nil
	}
	return append([]string{""}, hints...)
}

func cargoHint(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var manifest struct {
		Package struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil || manifest.Package.Name == "" {
		return ""
	}
	return projectHint(manifest.Package.Name, manifest.Package.Version, "Cargo.toml")
}

func pyprojectHint(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var manifest struct {
		Project struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Name    string `toml:"name"`
				Version string `toml:"version"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return ""
	}

	name, version := manifest.Project.Name, manifest.Project.Version
	if name == "" {
		name, version = manifest.Tool.Poetry.Name, manifest.Tool.Poetry.Version
	}
	if name == "" {
		return ""
	}
	return projectHint(name, version, "pyproject.toml")
}

func packageJSONHint(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var manifest struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil || manifest.Name == "" {
		return ""
	}
	return projectHint(manifest.Name, manifest.Version, "package.json")
}

func projectHint(name, version, source string) string {
	if version != "" {
		return fmt.Sprintf("Project hint: %s %s (from %s)", name, version, source)
	}
	return fmt.Sprintf("Project hint: %s (from %s)", name, source)
}
