package pipeline

import (
	"time"

	"git.home.luguber.info/inful/pagemill/internal/logfields"
	"git.home.luguber.info/inful/pagemill/internal/metrics"
)

// StageName identifies a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageCompile     StageName = "compile"
	StageAggregate   StageName = "aggregate"
	StageMaterialize StageName = "materialize"
	StageStaticCopy  StageName = "static_copy"
)

// Stage executes one step of a build against the shared state.
type Stage func(s *buildState) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// runStages executes stages in order, recording timing and stopping on the
// first error. A stage that adds per-item failures to the report is recorded
// as a warning.
func runStages(s *buildState, stages []StageDef) error {
	for _, st := range stages {
		before := s.report.issueCount()

		t0 := time.Now()
		err := st.Fn(s)
		dur := time.Since(t0)

		s.report.StageDurations[st.Name] = dur
		s.recorder.ObserveStageDuration(string(st.Name), dur)

		result := metrics.ResultSuccess
		switch {
		case err != nil:
			result = metrics.ResultFatal
		case s.report.issueCount() > before:
			result = metrics.ResultWarning
		}
		s.report.StageResults[st.Name] = result
		s.recorder.IncStageResult(string(st.Name), result)

		s.logger.Info("Stage complete",
			logfields.Stage(string(st.Name)),
			logfields.Duration(dur),
			logfields.Result(string(result)))

		if err != nil {
			return err
		}
	}
	return nil
}
