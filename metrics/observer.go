package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sigrokproject/logicstore/snapshot"
)

const namespace = "logicstore"

// Observer records snapshot appends and queries as Prometheus metrics.
// It is safe for concurrent use and may be shared by several snapshots.
type Observer struct {
	appendedSamples prometheus.Counter
	appendDuration  prometheus.Histogram
	queries         *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	queryResults    *prometheus.HistogramVec
}

var _ snapshot.Observer = (*Observer)(nil)

// NewObserver creates an Observer and registers its metrics with reg.
// A nil reg creates unregistered metrics.
func NewObserver(reg prometheus.Registerer) *Observer {
	factory := promauto.With(reg)

	return &Observer{
		appendedSamples: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appended_samples_total",
			Help:      "Total number of sample units appended to snapshots",
		}),
		appendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "append_duration_seconds",
			Help:      "Time spent appending a batch including mip-map extension",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of snapshot queries by kind",
		}, []string{"kind"}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Snapshot query latency by kind",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"kind"}),
		queryResults: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_edges",
			Help:      "Number of edges or spans returned per query",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"kind"}),
	}
}

// ObserveAppend implements snapshot.Observer.
func (o *Observer) ObserveAppend(samples int, elapsed time.Duration) {
	o.appendedSamples.Add(float64(samples))
	o.appendDuration.Observe(elapsed.Seconds())
}

// ObserveQuery implements snapshot.Observer.
func (o *Observer) ObserveQuery(kind snapshot.QueryKind, results int, elapsed time.Duration) {
	k := string(kind)
	o.queries.WithLabelValues(k).Inc()
	o.queryDuration.WithLabelValues(k).Observe(elapsed.Seconds())
	o.queryResults.WithLabelValues(k).Observe(float64(results))
}
