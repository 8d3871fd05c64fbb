package pipeline

import (
	"time"

	"git.home.luguber.info/inful/pagemill/internal/content"
	"git.home.luguber.info/inful/pagemill/internal/metrics"
	"git.home.luguber.info/inful/pagemill/internal/output"
)

// Outcome is the final state of a run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePartial Outcome = "partial" // completed with per-item failures
	OutcomeFailed  Outcome = "failed"
)

// Report summarizes a single run.
type Report struct {
	RunID      string
	ContentDir string
	OutputDir  string
	Theme      string
	Start      time.Time
	End        time.Time

	Compiled       int
	Skipped        []content.Skip
	InlineFailures []content.Failure
	Sections       []string
	Written        []string
	RenderFailures []output.RenderFailure
	Copied         []string
	CopyFailures   []output.CopyFailure

	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]metrics.ResultLabel

	// Err is the error that stopped the run, if any.
	Err error
}

func newReport(runID string) *Report {
	return &Report{
		RunID:          runID,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]metrics.ResultLabel),
	}
}

func (r *Report) issueCount() int {
	return len(r.InlineFailures) + len(r.RenderFailures) + len(r.CopyFailures)
}

// Outcome derives the run outcome from the recorded errors and failures.
func (r *Report) Outcome() Outcome {
	switch {
	case r.Err != nil:
		return OutcomeFailed
	case r.issueCount() > 0:
		return OutcomePartial
	default:
		return OutcomeSuccess
	}
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// SkippedBy counts skipped files per reason.
func (r *Report) SkippedBy() map[content.SkipReason]int {
	counts := make(map[content.SkipReason]int)
	for _, s := range r.Skipped {
		counts[s.Reason]++
	}
	return counts
}

func (r *Report) finish(err error, recorder metrics.Recorder) {
	r.End = time.Now()
	r.Err = err
	recorder.ObserveBuildDuration(r.Duration())
	switch r.Outcome() {
	case OutcomeSuccess:
		recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	case OutcomePartial:
		recorder.IncBuildOutcome(metrics.OutcomePartial)
	case OutcomeFailed:
		recorder.IncBuildOutcome(metrics.OutcomeFailed)
	}
}
