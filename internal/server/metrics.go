// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics mirrors the dispatcher/store counters named in spec.md §4.9 as
// Prometheus collectors, grounded on the telemetry-plugin pattern found
// elsewhere in the retrieval pack (the teacher itself only consumes
// Prometheus as a datasource, never exports it).
type metrics struct {
	commandsProcessed prometheus.Counter
	commandErrors     prometheus.Counter
	activeConnections prometheus.Gauge
	totalConnections  prometheus.Counter
	keys              prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		commandsProcessed: f.NewCounter(prometheus.CounterOpts{
			Name: "kvaultd_commands_processed_total",
			Help: "Total commands dispatched, successful or not.",
		}),
		commandErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "kvaultd_command_errors_total",
			Help: "Total commands that produced an error reply.",
		}),
		activeConnections: f.NewGauge(prometheus.GaugeOpts{
			Name: "kvaultd_active_connections",
			Help: "Currently open client connections.",
		}),
		totalConnections: f.NewCounter(prometheus.CounterOpts{
			Name: "kvaultd_connections_total",
			Help: "Total client connections accepted since start.",
		}),
		keys: f.NewGauge(prometheus.GaugeOpts{
			Name: "kvaultd_keys",
			Help: "Current number of live keys in the store.",
		}),
	}
}

// sample mirrors the store's Stats snapshot into the Prometheus gauges that
// can't be updated incrementally (active connections, key count).
func (m *metrics) sample(activeConns int64, keys int) {
	m.activeConnections.Set(float64(activeConns))
	m.keys.Set(float64(keys))
}
