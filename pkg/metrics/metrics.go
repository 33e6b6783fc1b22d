/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metrics exposes engine activity as Prometheus metrics.
// A Metrics value is an event interceptor; install it with oracle.InterceptorOpt.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/clratm/oracle/pkg/events"
)

const metricsNamespace = "oracle"

// Metrics holds the counters fed by intercepted events.
// All operations are thread-safe via Prometheus's internal locking.
type Metrics struct {
	// EventsTotal counts protocol steps.
	// Labels: instance, type (Declared, InputMatched, ...)
	EventsTotal *prometheus.CounterVec

	// OutcomesTotal counts decided cases and unexpected inputs.
	// Labels: instance, status (PASSED, FAILED, UNEXPECTED)
	OutcomesTotal *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
// Registering twice with the same registerer panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "events_total",
				Help:      "Total number of protocol steps by engine instance and event type",
			},
			[]string{"instance", "type"},
		),
		OutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "outcomes_total",
				Help:      "Total number of decided cases and unexpected inputs by engine instance and status",
			},
			[]string{"instance", "status"},
		),
	}
}

// Intercept counts the events of el. It never fails.
func (m *Metrics) Intercept(el *events.EventList) error {
	iter := el.Iterator()
	for e := iter.Next(); e != nil; e = iter.Next() {
		m.EventsTotal.WithLabelValues(e.Instance, e.Type.String()).Inc()

		switch e.Type {
		case events.OutputFinalized, events.InputUnexpected:
			m.OutcomesTotal.WithLabelValues(e.Instance, e.Status.String()).Inc()
		}
	}
	return nil
}
