// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes the page cache's counters as Prometheus collectors,
// grounded on the teacher's own per-subsystem Metrics structs (e.g.
// wal.Metrics.FsyncLatency). All fields are safe to leave nil; Cache checks
// before every increment so tests and the CLI can run without a registry.
type Metrics struct {
	Hits            prometheus.Counter
	Misses          prometheus.Counter
	Evictions       prometheus.Counter
	Splits          prometheus.Counter
	WriteBackErrors prometheus.Counter
	Pages           prometheus.Gauge
}

// NewMetrics builds a Metrics struct with collectors registered under the
// given namespace, e.g. "intkv_cache".
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "hits_total", Help: "page cache hits",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "misses_total", Help: "page cache misses",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "evictions_total", Help: "pages evicted",
		}),
		Splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "directory_splits_total", Help: "bucket splits",
		}),
		WriteBackErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "writeback_errors_total", Help: "dirty page write-back failures",
		}),
		Pages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "pages", Help: "pages currently resident",
		}),
	}
}

// Collectors returns every collector for registration with a
// prometheus.Registerer.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Hits, m.Misses, m.Evictions, m.Splits, m.WriteBackErrors, m.Pages}
}
