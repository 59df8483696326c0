// Package metrics exports snapshot activity and buffer usage to Prometheus.
//
// Observer plugs into snapshot.WithObserver and records append and query
// counts and latencies. Collector reports the buffer statistics of a set of
// named snapshots on every scrape.
//
//	reg := prometheus.NewRegistry()
//	obs := metrics.NewObserver(reg)
//	col := metrics.NewCollector()
//	reg.MustRegister(col)
//
//	snap, _ := snapshot.New(2, snapshot.WithObserver(obs))
//	col.Add("capture-1", snap)
package metrics
