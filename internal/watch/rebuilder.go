package watch

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
	"git.home.luguber.info/inful/docnav/internal/retry"
)

// Runner produces the navigation output for the current content.
type Runner interface {
	Run(ctx context.Context, current string) (*pipeline.Output, error)
}

// WriteFunc stores rendered markup.
type WriteFunc func(markup string) error

// Rebuilder reruns the pipeline and writes the markup only when the content
// fingerprint moved since the last successful write.
type Rebuilder struct {
	runner   Runner
	current  string
	write    WriteFunc
	recorder metrics.Recorder
	logger   *slog.Logger
	policy   retry.Policy

	lastFingerprint string
}

// NewRebuilder creates a Rebuilder. A nil recorder or logger uses the defaults.
func NewRebuilder(runner Runner, current string, write WriteFunc, recorder metrics.Recorder, logger *slog.Logger) *Rebuilder {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Rebuilder{
		runner:   runner,
		current:  current,
		write:    write,
		recorder: recorder,
		logger:   logger,
		policy:   retry.DefaultPolicy(),
	}
}

// WithRetryPolicy replaces the policy used for transient write failures.
func (r *Rebuilder) WithRetryPolicy(p retry.Policy) *Rebuilder {
	r.policy = p
	return r
}

// Rebuild is a BuildFunc. It must not be called concurrently; Watcher serializes it.
func (r *Rebuilder) Rebuild(ctx context.Context) error {
	out, err := r.runner.Run(ctx, r.current)
	if err != nil {
		return err
	}

	if out.Fingerprint == r.lastFingerprint {
		r.recorder.IncBuildOutcome(metrics.OutcomeUnchanged)
		r.logger.Debug("Content unchanged; output kept")
		return nil
	}

	attempts := 0
	err = r.policy.Do(ctx, func() error {
		attempts++
		if attempts > 1 {
			r.logger.Warn("Retrying output write", logfields.Attempt(attempts))
		}
		return r.write(out.Markup)
	})
	if err != nil {
		return err
	}
	r.lastFingerprint = out.Fingerprint
	r.logger.Info("Navigation rebuilt",
		logfields.BuildID(out.Report.BuildID),
		logfields.Included(len(out.Report.Included)),
		logfields.Excluded(len(out.Report.Excluded)))
	return nil
}
