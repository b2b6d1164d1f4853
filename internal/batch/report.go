package batch

import (
	"fmt"

	"github.com/google/uuid"
)

// Status is the result of processing one song.
type Status int

const (
	StatusWritten Status = iota
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome records what happened to one job.
type Outcome struct {
	Job    Job
	Status Status

	// Path is the written file, set when Status is StatusWritten.
	Path string

	// Err is set when Status is StatusFailed.
	Err error

	Lines        int
	Synced       bool
	Instrumental bool
}

// Summary counts outcomes by status.
type Summary struct {
	Written  int
	NotFound int
	Failed   int
}

// Total returns the number of songs that were processed.
func (s Summary) Total() int {
	return s.Written + s.NotFound + s.Failed
}

func (s Summary) String() string {
	return fmt.Sprintf("%d written, %d not found, %d failed", s.Written, s.NotFound, s.Failed)
}

// Report is the result of a batch run. Outcomes keep the order of the
// input jobs; songs skipped after cancellation are absent.
type Report struct {
	RunID    uuid.UUID
	Outcomes []Outcome
	Summary  Summary
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusWritten:
		r.Summary.Written++
	case StatusNotFound:
		r.Summary.NotFound++
	default:
		r.Summary.Failed++
	}
}

// Failures returns the outcomes with StatusFailed.
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}
