// Package metrics collects runtime memory readings around folds and exports
// fold timings in the Prometheus text exposition format.
package metrics
