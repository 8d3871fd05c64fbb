package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFatal   ResultLabel = "fatal"
)

// BuildOutcomeLabel enumerates final run outcomes.
type BuildOutcomeLabel string

const (
	OutcomeSuccess BuildOutcomeLabel = "success"
	OutcomePartial BuildOutcomeLabel = "partial"
	OutcomeFailed  BuildOutcomeLabel = "failed"
)

// ItemLabel enumerates per-file events counted during a run.
type ItemLabel string

const (
	ItemCompiled     ItemLabel = "compiled"
	ItemSkipped      ItemLabel = "skipped"
	ItemRendered     ItemLabel = "rendered"
	ItemRenderFailed ItemLabel = "render_failed"
	ItemAssetCopied  ItemLabel = "asset_copied"
	ItemCopyFailed   ItemLabel = "copy_failed"
)

// Recorder defines observability hooks for build and stage metrics.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	IncItem(label ItemLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) IncItem(ItemLabel)                          {}
