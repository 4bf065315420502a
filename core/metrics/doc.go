// Package metrics defines the Prometheus metrics of the service.
//
// Metrics are registered on the default registry at init time via promauto and
// exposed on /metrics by Handler. Middleware records per-route HTTP metrics;
// ObserveReconcile publishes the counts of the last reconciliation run.
package metrics
