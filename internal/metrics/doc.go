// Package metrics provides the observability hooks for snippetdocs pipeline runs.
//
// # Design
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	renderer := snippets.NewRenderer(parsers, snippets.WithRecorder(recorder))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// A CLI run has no scrape endpoint, so the registry is exported once per run with
// WriteTextfile, in the format read by the node exporter textfile collector:
//
//	rec := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
//	// ... run the pipeline ...
//	_ = metrics.WriteTextfile("/var/lib/node_exporter/snippetdocs.prom", rec.Registry())
package metrics
