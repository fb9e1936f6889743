// Package submodule reconciles a local directory tree against a gitmodules
// manifest. Each declared module is cloned if absent and fast-forwarded if
// present. Failures are split into two classes: a failure of the global
// submodule init step aborts the whole run (the repository's own linkage is
// broken), while a failure on an individual module is recorded and the run
// continues with the remaining modules.
package submodule

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/factoryai-suite/factoryai/internal/gitmodules"
	"github.com/factoryai-suite/factoryai/internal/gitx"
)

// InitError reports a fatal failure of the global `git submodule update
// --init --recursive` step. It aborts the run before any per-module
// processing.
type InitError struct {
	Output string
	Err    error
}

func (e *InitError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("initializing registered submodules: %v\n%s", e.Err, e.Output)
	}
	return fmt.Sprintf("initializing registered submodules: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// Synchronizer brings the modules declared in a manifest to the latest state
// of their remotes. Modules are processed strictly sequentially, in manifest
// order; each module's outcome is independent of the others.
type Synchronizer struct {
	// RepoRoot is the repository the manifest belongs to. The global init
	// step runs here. If RepoRoot is not a git repository the init step is
	// skipped and synchronization is driven by the manifest alone.
	RepoRoot string

	// BaseDir is the directory modules are cloned into, one subdirectory per
	// module name. Created if absent.
	BaseDir string

	// Git executes git commands. Defaults to gitx.ExecRunner.
	Git gitx.Runner

	// Progress receives per-module progress lines as processing happens.
	// Defaults to io.Discard.
	Progress io.Writer

	// Force passes --force to the global init step.
	Force bool
}

// New returns a Synchronizer using the real git client.
func New(repoRoot, baseDir string) *Synchronizer {
	return &Synchronizer{
		RepoRoot: repoRoot,
		BaseDir:  baseDir,
		Git:      gitx.ExecRunner{},
	}
}

// Sync reconciles BaseDir against the manifest.
//
// A non-nil error means the run was aborted before per-module processing
// (failed init step or unusable base directory) and the report is nil.
// Per-module failures never produce a non-nil error; they are recorded as
// StatusFailed outcomes in the report.
//
// Running Sync twice with no upstream changes yields StatusUpdated for every
// module the second time.
func (s *Synchronizer) Sync(ctx context.Context, m *gitmodules.Manifest) (*Report, error) {
	git := s.Git
	if git == nil {
		git = gitx.ExecRunner{}
	}
	progress := s.Progress
	if progress == nil {
		progress = io.Discard
	}

	if gitx.IsRepository(s.RepoRoot) {
		args := []string{"submodule", "update", "--init", "--recursive"}
		if s.Force {
			args = append(args, "--force")
		}
		if out, err := git.Run(ctx, s.RepoRoot, args...); err != nil {
			return nil, &InitError{Output: out, Err: err}
		}
	}

	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("creating base directory %s: %w", s.BaseDir, err)
	}

	report := &Report{}
	for _, decl := range m.Modules {
		path := filepath.Join(s.BaseDir, decl.Name)
		outcome := Outcome{Name: decl.Name, URL: decl.URL, Path: path}

		fmt.Fprintf(progress, "Syncing %s...\n", decl.Name)

		info, statErr := os.Stat(path)
		switch {
		case statErr == nil && !info.IsDir():
			outcome.Status = StatusFailed
			outcome.Err = fmt.Errorf("%s exists and is not a directory", path)
		case statErr == nil:
			if err := s.update(ctx, git, path); err != nil {
				outcome.Status = StatusFailed
				outcome.Err = err
			} else {
				outcome.Status = StatusUpdated
			}
		default:
			if err := s.clone(ctx, git, decl.URL, path); err != nil {
				outcome.Status = StatusFailed
				outcome.Err = err
			} else {
				outcome.Status = StatusCloned
			}
		}

		if outcome.Status == StatusFailed {
			fmt.Fprintf(progress, "  ✗ %s: %v\n", decl.Name, outcome.Err)
		} else {
			fmt.Fprintf(progress, "  ✓ %s: %s\n", decl.Name, outcome.Status)
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report, nil
}

// clone creates a fresh working clone of url at path.
func (s *Synchronizer) clone(ctx context.Context, git gitx.Runner, url, path string) error {
	if out, err := git.Run(ctx, "", "clone", url, path); err != nil {
		return stepError("cloning", out, err)
	}
	return nil
}

// update brings an existing clone up to date: fetch remote refs, re-checkout
// the currently checked-out ref (a no-op unless the working tree was left
// detached or mismatched), then fast-forward pull.
func (s *Synchronizer) update(ctx context.Context, git gitx.Runner, path string) error {
	if out, err := git.Run(ctx, path, "fetch"); err != nil {
		return stepError("fetching", out, err)
	}

	ref, err := git.Run(ctx, path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return stepError("resolving checked-out ref", ref, err)
	}

	if out, err := git.Run(ctx, path, "checkout", ref); err != nil {
		return stepError("checking out "+ref, out, err)
	}

	if out, err := git.Run(ctx, path, "pull", "--ff-only"); err != nil {
		return stepError("pulling", out, err)
	}

	return nil
}

// stepError wraps a failed git step with its captured output.
func stepError(step, output string, err error) error {
	if output != "" {
		return fmt.Errorf("%s: %w\n%s", step, err, output)
	}
	return fmt.Errorf("%s: %w", step, err)
}
