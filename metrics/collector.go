package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sigrokproject/logicstore/snapshot"
)

// Collector reports buffer statistics of named snapshots at scrape time.
type Collector struct {
	mu        sync.RWMutex
	snapshots map[string]*snapshot.Snapshot

	samples        *prometheus.Desc
	allocatedBytes *prometheus.Desc
	levelLength    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates an empty Collector. Register it with a prometheus.Registerer.
func NewCollector() *Collector {
	labels := []string{"snapshot"}

	return &Collector{
		snapshots: make(map[string]*snapshot.Snapshot),
		samples: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "snapshot", "samples"),
			"Number of sample units stored in the snapshot",
			labels, nil,
		),
		allocatedBytes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "snapshot", "allocated_bytes"),
			"Bytes allocated for raw samples and mip-map levels",
			labels, nil,
		),
		levelLength: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "snapshot", "level_units"),
			"Number of completed units per mip-map level",
			append(labels, "level"), nil,
		),
	}
}

// Add starts reporting snap under name, replacing any snapshot already using it.
func (c *Collector) Add(name string, snap *snapshot.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshots[name] = snap
}

// Remove stops reporting the snapshot registered under name.
func (c *Collector) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.snapshots, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.samples
	ch <- c.allocatedBytes
	ch <- c.levelLength
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, snap := range c.snapshots {
		stats := snap.Stats()

		ch <- prometheus.MustNewConstMetric(c.samples, prometheus.GaugeValue, float64(stats.SampleCount), name)
		ch <- prometheus.MustNewConstMetric(c.allocatedBytes, prometheus.GaugeValue, float64(stats.AllocatedBytes), name)
		for _, lvl := range stats.Levels {
			ch <- prometheus.MustNewConstMetric(c.levelLength, prometheus.GaugeValue,
				float64(lvl.Length), name, strconv.Itoa(lvl.Level))
		}
	}
}
