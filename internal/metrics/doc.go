// Package metrics records wiki generation metrics.
//
// Components receive a Recorder and call it unconditionally. NoopRecorder is
// the default when metrics are not configured, so call sites never check for
// nil. PrometheusRecorder keeps the same numbers in a Prometheus registry which
// the CLI exports to a node_exporter textfile after each run:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	gen := wiki.NewGenerator(renderer, writer, wiki.WithRecorder(rec))
//	...
//	_ = metrics.WriteTextfile(path, reg)
package metrics
