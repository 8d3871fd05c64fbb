// Package metrics provides build metrics for pagemill runs.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// nil-check. PrometheusRecorder backs the recorder with a Prometheus registry,
// and WriteTextfile exports that registry after a run for the node_exporter
// textfile collector. There is no HTTP endpoint: a build is a single batch
// process.
package metrics
