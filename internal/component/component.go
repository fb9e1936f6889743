package component

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/factoryai-suite/factoryai/internal/branding"
	"go.yaml.in/yaml/v3"
)

// Component is one dispatchable sub-project of the suite.
type Component struct {
	// Key is the short identifier used on the command line (e.g. "app").
	Key string `yaml:"key" json:"key"`
	// Name is the repository / directory name (e.g. "Factory-App-AI").
	Name string `yaml:"name" json:"name"`
	// Path is the repo-relative directory the component lives in. Defaults
	// to <submodules_dir>/<Name>.
	Path string `yaml:"path,omitempty" json:"path"`
	// URL is the git remote the component is cloned from.
	URL string `yaml:"url" json:"url"`
	// Enabled gates whether the component can be run.
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// Registry is the ordered set of known components.
type Registry struct {
	Components []Component `yaml:"components" json:"components"`
}

// Defaults returns the built-in component registry.
func Defaults() *Registry {
	base := branding.RepoURLBase()
	return &Registry{Components: []Component{
		{Key: "app", Name: "Factory-App-AI", URL: base + "/Factory-App-AI", Enabled: true},
		{Key: "feature", Name: "Factory-Feature", URL: base + "/Factory-Feature", Enabled: true},
		// Coming soon.
		{Key: "debug", Name: "Factory-Debug", URL: base + "/Factory-Debug", Enabled: false},
	}}
}

// LoadRegistry returns the component registry, reading the override file at
// path if it exists. An absent file yields the built-in defaults. The
// override file is schema-validated before use.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%s: %s", path, result.Issues[0].Message)
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &reg, nil
}

// Get returns the component with the given key.
func (r *Registry) Get(key string) (Component, error) {
	for _, c := range r.Components {
		if c.Key == key {
			return c, nil
		}
	}
	return Component{}, fmt.Errorf("unknown component %q", key)
}

// Dir returns the absolute directory of a component under rootDir.
func (c Component) Dir(rootDir string) string {
	rel := c.Path
	if rel == "" {
		rel = filepath.Join(branding.SubmodulesDir(), c.Name)
	}
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(rootDir, rel)
}

// Available reports whether the component's directory exists under rootDir.
func (c Component) Available(rootDir string) bool {
	info, err := os.Stat(c.Dir(rootDir))
	return err == nil && info.IsDir()
}

// StatusEntry is a point-in-time view of one component for display.
type StatusEntry struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Enabled   bool   `json:"enabled"`
	Available bool   `json:"available"`
	Path      string `json:"path"`
	URL       string `json:"url"`
}

// Status returns a display entry for every registered component.
func (r *Registry) Status(rootDir string) []StatusEntry {
	entries := make([]StatusEntry, 0, len(r.Components))
	for _, c := range r.Components {
		entries = append(entries, StatusEntry{
			Key:       c.Key,
			Name:      c.Name,
			Enabled:   c.Enabled,
			Available: c.Available(rootDir),
			Path:      c.Dir(rootDir),
			URL:       c.URL,
		})
	}
	return entries
}
