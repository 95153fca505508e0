package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
	"git.home.luguber.info/inful/docnav/internal/retry"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ContentFlags  `embed:""`
	Output        string        `short:"o" help:"Write the markup to this file (overrides output.file); stdout when empty" type:"path"`
	MetricsListen string        `name:"metrics-listen" help:"Serve Prometheus metrics on this address (overrides metrics.listen and enables metrics)"`
	Debounce      time.Duration `help:"Quiet period after the last change before rebuilding" default:"300ms"`
	WriteRetries  int           `name:"write-retries" help:"Retries for a failed output write" default:"2"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	w.ContentFlags.apply(cfg)

	recorder := metrics.Recorder(metrics.NoopRecorder{})
	if listen := w.metricsAddr(cfg); listen != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		stop, err := serveMetrics(listen, reg, g)
		if err != nil {
			return err
		}
		defer stop()
	}

	p, err := pipeline.New(cfg, pipeline.WithLogger(g.Logger), pipeline.WithRecorder(recorder))
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	target := cfg.Output.File
	if w.Output != "" {
		target = w.Output
	}
	write := func(markup string) error {
		if target == "" {
			_, err := fmt.Fprintln(g.Stdout, markup)
			return err
		}
		return pipeline.WriteOutput(target, markup, g.Logger)
	}

	rebuilder := watch.NewRebuilder(p, cfg.Content.Current, write, recorder, g.Logger).
		WithRetryPolicy(retry.NewPolicy(retry.BackoffLinear, 0, 0, w.WriteRetries))
	watcher := watch.New(p.ContentDir(), rebuilder.Rebuild,
		watch.WithDebounce(w.Debounce), watch.WithLogger(g.Logger))
	return watcher.Run(ctx)
}

func (w *WatchCmd) metricsAddr(cfg *config.Config) string {
	if w.MetricsListen != "" {
		return w.MetricsListen
	}
	if cfg.Metrics.Enabled {
		return cfg.Metrics.Listen
	}
	return ""
}

// serveMetrics starts the /metrics endpoint and returns a function that stops it.
func serveMetrics(addr string, reg *prom.Registry, g *Global) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.Logger.Warn("Metrics server stopped", logfields.Error(err))
		}
	}()
	g.Logger.Info("Serving metrics", logfields.Path(ln.Addr().String()+"/metrics"))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}, nil
}
