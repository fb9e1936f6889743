//go:build integration

package integration_test

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// requireGit skips the test when no git binary is available.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

// runGit runs git with identity settings suitable for throwaway test repos.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	base := []string{
		"-c", "user.name=test",
		"-c", "user.email=test@example.com",
		"-c", "protocol.file.allow=always",
	}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s in %s: %v\n%s", strings.Join(args, " "), dir, err, out)
	}
	return strings.TrimSpace(string(out))
}

// makeUpstream creates a git repository with one commit and returns its path.
// The path doubles as a clone URL.
func makeUpstream(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	runGit(t, dir, "init")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "initial commit")
	return dir
}

// snapshotTree maps every file under dir to a hash of its content, keyed by
// relative path. The .git directory is excluded: fetch and pull rewrite its
// bookkeeping files even when nothing changed upstream.
func snapshotTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	snap := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)
		snap[rel] = hex.EncodeToString(sum[:])
		return nil
	})
	if err != nil {
		t.Fatalf("snapshotting %s: %v", dir, err)
	}
	return snap
}

// makeSuiteRoot creates a git repository with a .gitmodules file declaring
// the given name → url pairs, in order.
func makeSuiteRoot(t *testing.T, modules [][2]string) string {
	t.Helper()
	root := t.TempDir()
	runGit(t, root, "init")

	var b strings.Builder
	for _, m := range modules {
		b.WriteString("[submodule \"" + m[0] + "\"]\n")
		b.WriteString("\turl = " + m[1] + "\n")
	}
	if err := os.WriteFile(filepath.Join(root, ".gitmodules"), []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}
