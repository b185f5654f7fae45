// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes the engine's counters as Prometheus collectors, grounded
// on the same per-subsystem Metrics convention used by internal/cache. All
// fields are safe to leave nil.
type Metrics struct {
	Flushes     prometheus.Counter
	Compactions prometheus.Counter
	RunsByLevel prometheus.Gauge
}

// NewMetrics builds a Metrics struct with collectors registered under the
// given namespace, e.g. "intkv".
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "flushes_total", Help: "memtable flushes to level 0",
		}),
		Compactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "compactions_total", Help: "run merges performed",
		}),
		RunsByLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "runs", Help: "sorted runs currently live, summed across levels",
		}),
	}
}

// Collectors returns every collector for registration with a
// prometheus.Registerer.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Flushes, m.Compactions, m.RunsByLevel}
}
