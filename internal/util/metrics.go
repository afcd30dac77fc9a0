package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DashboardSnapshotsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_snapshots_total",
		Help: "Total number of dashboard snapshots served",
	})

	DashboardSnapshotErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_snapshot_errors_total",
		Help: "Total number of failed dashboard aggregations",
	})

	AggregationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_aggregation_latency_seconds",
		Help:    "Latency of the dashboard aggregation fan-out",
		Buckets: prometheus.DefBuckets,
	})

	SnapshotCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_snapshot_cache_hits_total",
		Help: "Dashboard snapshots served from the Redis cache",
	})

	SnapshotCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_snapshot_cache_misses_total",
		Help: "Dashboard snapshots recomputed on cache miss",
	})

	SnapshotInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_snapshot_invalidations_total",
		Help: "Cache invalidations triggered by order and catalog events",
	})

	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Order status transitions applied by admins",
	}, []string{"to"})

	OrdersMarkedPaidTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_marked_paid_total",
		Help: "Orders marked paid through the payment callback",
	})

	CatalogWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_writes_total",
		Help: "Product create, update and delete operations",
	}, []string{"op"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
