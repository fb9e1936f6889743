package submodule

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/factoryai-suite/factoryai/internal/gitmodules"
)

// fakeGit is a scripted gitx.Runner. It records every invocation and creates
// the target directory on clone so a second run takes the update path.
type fakeGit struct {
	calls [][]string        // dir followed by args
	fail  map[string]error  // keyed by git subcommand
	out   map[string]string // canned output, keyed by git subcommand
}

func (f *fakeGit) Run(_ context.Context, dir string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{dir}, args...))

	sub := args[0]
	if err, ok := f.fail[sub]; ok && err != nil {
		return f.out[sub], err
	}

	switch sub {
	case "clone":
		if err := os.MkdirAll(args[len(args)-1], 0755); err != nil {
			return "", err
		}
	case "rev-parse":
		return "main", nil
	}
	return f.out[sub], nil
}

func (f *fakeGit) commandsRun() []string {
	var subs []string
	for _, call := range f.calls {
		subs = append(subs, call[1])
	}
	return subs
}

func twoModuleManifest() *gitmodules.Manifest {
	return &gitmodules.Manifest{Modules: []gitmodules.Declaration{
		{Name: "alpha", URL: "https://example.com/alpha.git"},
		{Name: "beta", URL: "https://example.com/beta.git"},
	}}
}

func newTestSynchronizer(t *testing.T, git *fakeGit) *Synchronizer {
	t.Helper()
	root := t.TempDir()
	return &Synchronizer{
		RepoRoot: root,
		BaseDir:  filepath.Join(root, "src", "platform"),
		Git:      git,
	}
}

func TestSync_ClonesAbsentModules(t *testing.T) {
	git := &fakeGit{}
	s := newTestSynchronizer(t, git)

	report, err := s.Sync(context.Background(), twoModuleManifest())
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}

	if len(report.Outcomes) != 2 {
		t.Fatalf("Outcomes len = %d, want 2", len(report.Outcomes))
	}
	for _, o := range report.Outcomes {
		if o.Status != StatusCloned {
			t.Errorf("%s: Status = %s, want %s", o.Name, o.Status, StatusCloned)
		}
		if info, err := os.Stat(o.Path); err != nil || !info.IsDir() {
			t.Errorf("%s: expected directory at %s", o.Name, o.Path)
		}
	}
	if !report.Success() {
		t.Error("Success() = false, want true")
	}
	if got := report.Summary(); got != "2 cloned, 0 updated, 0 failed" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestSync_SecondRunUpdates(t *testing.T) {
	git := &fakeGit{}
	s := newTestSynchronizer(t, git)
	ctx := context.Background()
	m := twoModuleManifest()

	if _, err := s.Sync(ctx, m); err != nil {
		t.Fatalf("first Sync error: %v", err)
	}
	report, err := s.Sync(ctx, m)
	if err != nil {
		t.Fatalf("second Sync error: %v", err)
	}

	for _, o := range report.Outcomes {
		if o.Status != StatusUpdated {
			t.Errorf("%s: Status = %s, want %s on second run", o.Name, o.Status, StatusUpdated)
		}
	}
}

func TestSync_UpdateSequence(t *testing.T) {
	git := &fakeGit{}
	s := newTestSynchronizer(t, git)

	// Pre-create the module directory so the update path is taken.
	path := filepath.Join(s.BaseDir, "alpha")
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}

	m := &gitmodules.Manifest{Modules: []gitmodules.Declaration{
		{Name: "alpha", URL: "https://example.com/alpha.git"},
	}}
	report, err := s.Sync(context.Background(), m)
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	if report.Outcomes[0].Status != StatusUpdated {
		t.Fatalf("Status = %s, want %s", report.Outcomes[0].Status, StatusUpdated)
	}

	want := []string{"fetch", "rev-parse", "checkout", "pull"}
	got := git.commandsRun()
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// The re-checkout must target the resolved ref.
	checkout := git.calls[2]
	if checkout[len(checkout)-1] != "main" {
		t.Errorf("checkout args = %v, want trailing ref %q", checkout, "main")
	}
}

func TestSync_FailureDoesNotAbortRun(t *testing.T) {
	git := &fakeGit{fail: map[string]error{"clone": errors.New("remote unreachable")}}
	s := newTestSynchronizer(t, git)

	report, err := s.Sync(context.Background(), twoModuleManifest())
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}

	if len(report.Outcomes) != 2 {
		t.Fatalf("Outcomes len = %d, want 2 (run must continue past a failure)", len(report.Outcomes))
	}
	for _, o := range report.Outcomes {
		if o.Status != StatusFailed {
			t.Errorf("%s: Status = %s, want %s", o.Name, o.Status, StatusFailed)
		}
		if o.Err == nil {
			t.Errorf("%s: Err = nil, want the clone failure", o.Name)
		}
	}
	if report.Success() {
		t.Error("Success() = true, want false")
	}
	if len(report.Failed()) != 2 {
		t.Errorf("Failed() len = %d, want 2", len(report.Failed()))
	}
}

func TestSync_PartialFailure(t *testing.T) {
	git := &fakeGit{}
	s := newTestSynchronizer(t, git)

	// alpha exists and its fetch fails; beta is absent and clones fine.
	if err := os.MkdirAll(filepath.Join(s.BaseDir, "alpha"), 0755); err != nil {
		t.Fatal(err)
	}
	git.fail = map[string]error{"fetch": errors.New("auth failed")}

	report, err := s.Sync(context.Background(), twoModuleManifest())
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}

	if got := report.Outcomes[0].Status; got != StatusFailed {
		t.Errorf("alpha: Status = %s, want %s", got, StatusFailed)
	}
	if got := report.Outcomes[1].Status; got != StatusCloned {
		t.Errorf("beta: Status = %s, want %s", got, StatusCloned)
	}
}

func TestSync_InitFailureIsFatal(t *testing.T) {
	git := &fakeGit{fail: map[string]error{"submodule": errors.New("exit status 1")}}
	s := newTestSynchronizer(t, git)

	// Make RepoRoot look like a git repository so the init step runs.
	if err := os.MkdirAll(filepath.Join(s.RepoRoot, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	report, err := s.Sync(context.Background(), twoModuleManifest())
	if err == nil {
		t.Fatal("Sync error = nil, want fatal init error")
	}
	if report != nil {
		t.Errorf("report = %+v, want nil on fatal abort", report)
	}
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Errorf("error %v is not an *InitError", err)
	}

	// No per-module command may have run.
	for _, sub := range git.commandsRun() {
		if sub != "submodule" {
			t.Errorf("unexpected command %q after fatal init failure", sub)
		}
	}
}

func TestSync_ForcePassedToInit(t *testing.T) {
	git := &fakeGit{}
	s := newTestSynchronizer(t, git)
	s.Force = true

	if err := os.MkdirAll(filepath.Join(s.RepoRoot, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Sync(context.Background(), &gitmodules.Manifest{}); err != nil {
		t.Fatalf("Sync error: %v", err)
	}

	init := git.calls[0]
	if init[len(init)-1] != "--force" {
		t.Errorf("init args = %v, want trailing --force", init)
	}
}

func TestSync_NonRepoRootSkipsInit(t *testing.T) {
	git := &fakeGit{}
	s := newTestSynchronizer(t, git)

	if _, err := s.Sync(context.Background(), twoModuleManifest()); err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	for _, sub := range git.commandsRun() {
		if sub == "submodule" {
			t.Error("init step ran for a non-repository root")
		}
	}
}

func TestSync_PathOccupiedByFile(t *testing.T) {
	git := &fakeGit{}
	s := newTestSynchronizer(t, git)

	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.BaseDir, "alpha"), []byte("in the way"), 0644); err != nil {
		t.Fatal(err)
	}

	m := &gitmodules.Manifest{Modules: []gitmodules.Declaration{
		{Name: "alpha", URL: "https://example.com/alpha.git"},
	}}
	report, err := s.Sync(context.Background(), m)
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	o := report.Outcomes[0]
	if o.Status != StatusFailed {
		t.Fatalf("Status = %s, want %s", o.Status, StatusFailed)
	}
	if !strings.Contains(o.Err.Error(), "not a directory") {
		t.Errorf("Err = %v, want mention of non-directory path", o.Err)
	}
}

func TestSync_EmptyManifest(t *testing.T) {
	git := &fakeGit{}
	s := newTestSynchronizer(t, git)

	report, err := s.Sync(context.Background(), &gitmodules.Manifest{})
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	if len(report.Outcomes) != 0 {
		t.Errorf("Outcomes len = %d, want 0", len(report.Outcomes))
	}
	if !report.Success() {
		t.Error("Success() = false for empty manifest")
	}
}

func TestSync_EmptyManifestStillRunsInit(t *testing.T) {
	git := &fakeGit{}
	s := newTestSynchronizer(t, git)

	if err := os.MkdirAll(filepath.Join(s.RepoRoot, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Sync(context.Background(), &gitmodules.Manifest{}); err != nil {
		t.Fatalf("Sync error: %v", err)
	}

	cmds := git.commandsRun()
	if len(cmds) != 1 || cmds[0] != "submodule" {
		t.Errorf("commands = %v, want exactly the init step", cmds)
	}
}

func TestSync_ProgressOutput(t *testing.T) {
	git := &fakeGit{fail: map[string]error{"clone": fmt.Errorf("no route to host")}}
	s := newTestSynchronizer(t, git)

	var buf bytes.Buffer
	s.Progress = &buf

	m := &gitmodules.Manifest{Modules: []gitmodules.Declaration{
		{Name: "alpha", URL: "https://example.com/alpha.git"},
	}}
	if _, err := s.Sync(context.Background(), m); err != nil {
		t.Fatalf("Sync error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Syncing alpha") {
		t.Errorf("progress missing start line: %q", out)
	}
	if !strings.Contains(out, "no route to host") {
		t.Errorf("progress missing failure reason: %q", out)
	}
}
