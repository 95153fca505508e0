// Package metrics provides observability hooks for navigation builds.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never needs nil checks:
//
//	builder, _ := navigation.NewBuilder(cfg.Navigation, cfg.BasePath,
//		navigation.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The watch command activates the Prometheus implementation and serves it via
// HTTPHandler when metrics are enabled.
package metrics
