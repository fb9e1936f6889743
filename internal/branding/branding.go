// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package, and Go's //go:embed bakes it
// into the binary at compile time.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GoModule      string `yaml:"go_module"`
	GitHubRepo    string `yaml:"github_repo"`
	RepoURLBase   string `yaml:"repo_url_base"`
	SubmodulesDir string `yaml:"submodules_dir"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "factoryai",
			DisplayName:   "FactoryAI",
			Description:   "Orchestrator for the FactoryAI suite of AI development tools",
			HomeDir:       ".factoryai",
			EnvPrefix:     "FACTORYAI",
			GoModule:      "github.com/factoryai-suite/factoryai",
			GitHubRepo:    "factoryai-suite/factoryai",
			RepoURLBase:   "https://github.com/factoryai-suite",
			SubmodulesDir: "src/platform",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "factoryai").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "FactoryAI").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".factoryai").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "FACTORYAI").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string for the suite repository.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// RepoURLBase returns the git URL prefix the default components are cloned from.
func RepoURLBase() string { load(); return defaults.RepoURLBase }

// SubmodulesDir returns the repo-relative directory components are synced into.
func SubmodulesDir() string { load(); return defaults.SubmodulesDir }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "FACTORYAI_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
