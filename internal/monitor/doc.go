// Package monitor watches a stream of reasoning chains for biases.
//
// A Service wraps a recognizer and offers a fire-and-forget Monitor
// call: detection errors and panics are absorbed, counters and timing
// samples always advance, and results are cached per chain id for
// pull-based alerting. Alerts are deduplicated for the life of the
// service, bucketed by severity, and sorted most urgent first.
//
// The lifecycle is one-way: a stopped service ignores further chains
// and never restarts.
package monitor
