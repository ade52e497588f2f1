// Package metrics collects runtime memory snapshots and Prometheus run
// metrics for snippet executions.
package metrics
