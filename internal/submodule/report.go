package submodule

import "fmt"

// Status classifies the result of processing one module.
type Status string

const (
	// StatusCloned means the module directory was absent and a fresh clone
	// was created.
	StatusCloned Status = "cloned"
	// StatusUpdated means the module directory existed and was brought up to
	// date with its remote.
	StatusUpdated Status = "updated"
	// StatusFailed means a git operation for this module failed. The run
	// continues with the remaining modules.
	StatusFailed Status = "failed"
)

// Outcome is the per-module result of a synchronization run.
type Outcome struct {
	Name   string
	URL    string
	Path   string
	Status Status
	Err    error // set only when Status is StatusFailed
}

// Report aggregates the outcomes of a single run, in manifest order.
type Report struct {
	Outcomes []Outcome
}

// Success reports whether every module was cloned or updated.
func (r *Report) Success() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			return false
		}
	}
	return true
}

// Failed returns the outcomes that did not complete.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Summary returns a one-line count suitable for the end of a run.
func (r *Report) Summary() string {
	var cloned, updated, failed int
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusCloned:
			cloned++
		case StatusUpdated:
			updated++
		case StatusFailed:
			failed++
		}
	}
	return fmt.Sprintf("%d cloned, %d updated, %d failed", cloned, updated, failed)
}
