package metrics

import "time"

// BuildOutcomeLabel enumerates navigation build outcomes.
type BuildOutcomeLabel string

const (
	OutcomeSuccess   BuildOutcomeLabel = "success"
	OutcomeFailed    BuildOutcomeLabel = "failed"
	OutcomeUnchanged BuildOutcomeLabel = "unchanged"
)

// Recorder defines observability hooks for navigation builds. Implementations may
// forward to Prometheus or be no-ops.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetPageCounts(included, excluded int)
	ObserveRenderBytes(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)  {}
func (NoopRecorder) SetPageCounts(int, int)             {}
func (NoopRecorder) ObserveRenderBytes(int)             {}
