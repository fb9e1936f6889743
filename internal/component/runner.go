package component

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// entryPoints are the recognized component entry scripts, tried in order.
var entryPoints = []string{"main.py", "app.py"}

// RunResult captures the result of a component execution.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes components as subprocesses.
type Runner struct {
	// Interactive inherits the caller's stdio so the component can prompt
	// the user. When false, output is captured into the RunResult while
	// also streaming to Stdout/Stderr.
	Interactive bool

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the component under rootDir with the given extra arguments.
// The component must be enabled and its directory present (synced).
func (r *Runner) Run(ctx context.Context, c Component, rootDir string, args []string) (*RunResult, error) {
	if !c.Enabled {
		return nil, fmt.Errorf("component %q is not enabled", c.Key)
	}
	if !c.Available(rootDir) {
		return nil, fmt.Errorf("component %q is not synced yet (run `factoryai sync` first)", c.Key)
	}

	dir := c.Dir(rootDir)
	entry, err := findEntryPoint(dir)
	if err != nil {
		return nil, err
	}

	python, err := findPython()
	if err != nil {
		return nil, err
	}

	cmdArgs := append([]string{entry}, args...)
	cmd := exec.CommandContext(ctx, python, cmdArgs...)
	cmd.Dir = dir

	result := &RunResult{}

	if r.Interactive {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		stdout := r.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		stderr := r.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}

		var stdoutBuf, stderrBuf bytes.Buffer
		cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)
		defer func() {
			result.Stdout = stdoutBuf.String()
			result.Stderr = stderrBuf.String()
		}()
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("executing component %q: %w", c.Key, err)
	}

	return result, nil
}

// findEntryPoint locates the component's entry script.
func findEntryPoint(dir string) (string, error) {
	for _, name := range entryPoints {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no entry point (%s or %s) found in %s", entryPoints[0], entryPoints[1], dir)
}

// findPython returns the Python interpreter to use, preferring python3.
func findPython() (string, error) {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("python interpreter not found in PATH")
}
