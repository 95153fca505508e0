package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	nav "git.home.luguber.info/inful/docnav/internal/navigation"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
	"git.home.luguber.info/inful/docnav/internal/retry"
)

func TestShouldIgnore(t *testing.T) {
	ignored := []string{"/c/.hidden.md", "/c/page.md~", "/c/.page.md.swp", "/c/page.swx", "/c/#page.md#", "/c/Thumbs.db"}
	for _, p := range ignored {
		assert.True(t, ShouldIgnore(p), p)
	}
	for _, p := range []string{"/c/page.md", "/c/docs", "/c/_partial.md"} {
		assert.False(t, ShouldIgnore(p), p)
	}
}

func TestDebouncerCoalescesTriggers(t *testing.T) {
	out := make(chan struct{}, 1)
	trigger, stop := debouncer(20*time.Millisecond, out)
	defer stop()

	for range 5 {
		trigger()
	}

	select {
	case <-out:
	case <-time.After(time.Second):
		t.Fatal("debounced signal not delivered")
	}

	select {
	case <-out:
		t.Fatal("triggers should coalesce into one signal")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	var builds atomic.Int32
	w := New(root, func(context.Context) error {
		builds.Add(1)
		return nil
	}, WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond,
		"initial build")

	require.NoError(t, os.WriteFile(filepath.Join(root, "page.md"), []byte("# Page\n"), 0o600))
	require.Eventually(t, func() bool { return builds.Load() >= 2 }, 2*time.Second, 10*time.Millisecond,
		"rebuild after change")

	sub := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool { return builds.Load() >= 3 }, 2*time.Second, 10*time.Millisecond)
	before := builds.Load()
	require.NoError(t, os.WriteFile(filepath.Join(sub, "guide.md"), []byte("# Guide\n"), 0o600))
	require.Eventually(t, func() bool { return builds.Load() > before }, 2*time.Second, 10*time.Millisecond,
		"new directories are watched")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherSurvivesBuildFailure(t *testing.T) {
	root := t.TempDir()
	var builds atomic.Int32
	w := New(root, func(context.Context) error {
		builds.Add(1)
		return errors.New("broken page")
	}, WithDebounce(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("# A\n"), 0o600))
	require.Eventually(t, func() bool { return builds.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherMissingRoot(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), func(context.Context) error { return nil })
	require.Error(t, w.Run(context.Background()))
}

type fakeRunner struct {
	fingerprint string
	markup      string
	err         error
}

func (f *fakeRunner) Run(context.Context, string) (*pipeline.Output, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Output{
		Markup:      f.markup,
		Fingerprint: f.fingerprint,
		Report:      &nav.BuildReport{BuildID: "b"},
	}, nil
}

type outcomeRecorder struct {
	metrics.NoopRecorder
	outcomes []metrics.BuildOutcomeLabel
}

func (o *outcomeRecorder) IncBuildOutcome(l metrics.BuildOutcomeLabel) {
	o.outcomes = append(o.outcomes, l)
}

func TestRebuilderWritesOnlyOnChange(t *testing.T) {
	runner := &fakeRunner{fingerprint: "fp1", markup: "<ul>1</ul>"}
	var writes []string
	rec := &outcomeRecorder{}
	r := NewRebuilder(runner, "", func(m string) error {
		writes = append(writes, m)
		return nil
	}, rec, nil)

	ctx := context.Background()
	require.NoError(t, r.Rebuild(ctx))
	require.NoError(t, r.Rebuild(ctx))
	runner.fingerprint, runner.markup = "fp2", "<ul>2</ul>"
	require.NoError(t, r.Rebuild(ctx))

	assert.Equal(t, []string{"<ul>1</ul>", "<ul>2</ul>"}, writes)
	assert.Equal(t, []metrics.BuildOutcomeLabel{metrics.OutcomeUnchanged}, rec.outcomes)
}

func TestRebuilderRetriesAfterWriteFailure(t *testing.T) {
	runner := &fakeRunner{fingerprint: "fp1"}
	fail := true
	calls := 0
	r := NewRebuilder(runner, "", func(string) error {
		calls++
		if fail {
			return errors.New("disk full")
		}
		return nil
	}, nil, nil)

	require.Error(t, r.Rebuild(context.Background()))
	fail = false
	require.NoError(t, r.Rebuild(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestRebuilderRetriesTransientWrite(t *testing.T) {
	runner := &fakeRunner{fingerprint: "fp1", markup: "<ul></ul>"}
	calls := 0
	r := NewRebuilder(runner, "", func(string) error {
		calls++
		if calls == 1 {
			return ferrors.FileSystemError("rename failed").WithRetry(ferrors.RetryImmediate).Build()
		}
		return nil
	}, nil, nil).WithRetryPolicy(retry.NewPolicy(retry.BackoffFixed, time.Millisecond, time.Millisecond, 2))

	require.NoError(t, r.Rebuild(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestRebuilderPropagatesRunError(t *testing.T) {
	r := NewRebuilder(&fakeRunner{err: errors.New("bad")}, "", func(string) error {
		t.Fatal("write must not be called")
		return nil
	}, nil, nil)
	require.Error(t, r.Rebuild(context.Background()))
}
