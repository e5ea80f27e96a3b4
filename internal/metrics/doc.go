// Package metrics records build and stage metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics stay
// optional without nil checks at call sites:
//
//	rec := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
//	b := pipeline.NewBuilder(cfg, pipeline.WithRecorder(rec))
//
// A one-shot build has no process to scrape, so PrometheusRecorder writes its
// registry to a node_exporter textfile instead of serving it over HTTP.
package metrics
