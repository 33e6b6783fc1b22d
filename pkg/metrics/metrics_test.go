/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/clratm/oracle"
	"github.com/clratm/oracle/pkg/metrics"
	t "github.com/clratm/oracle/pkg/types"
)

var _ = Describe("Metrics", func() {
	var (
		m      *metrics.Metrics
		engine *oracle.Engine
		ctx    context.Context
		site   = t.NewSite("Calc", "Square")
	)

	BeforeEach(func() {
		m = metrics.New(prometheus.NewRegistry())
		engine = oracle.New("calc", oracle.InterceptorOpt(m))
		engine.Enable(true)
		ctx = oracle.WithThread(context.Background(), 1)
	})

	It("counts events by type", func() {
		Expect(engine.Declare(ctx, site, 2, 4)).To(Succeed())
		Expect(engine.Declare(ctx, site, 3, 9)).To(Succeed())
		Expect(engine.ObserveInput(ctx, site, 2)).To(Succeed())
		Expect(engine.ObserveOutput(ctx, site, 4)).To(Succeed())

		Expect(testutil.ToFloat64(m.EventsTotal.WithLabelValues("calc", "Declared"))).To(Equal(2.0))
		Expect(testutil.ToFloat64(m.EventsTotal.WithLabelValues("calc", "InputMatched"))).To(Equal(1.0))
		Expect(testutil.ToFloat64(m.EventsTotal.WithLabelValues("calc", "CoverageExercised"))).To(Equal(1.0))
	})

	It("counts outcomes by status", func() {
		for _, v := range []int{2, 3} {
			Expect(engine.Declare(ctx, site, v, v*v)).To(Succeed())
			Expect(engine.ObserveInput(ctx, site, v)).To(Succeed())
			Expect(engine.ObserveOutput(ctx, site, 4)).To(Succeed())
		}
		Expect(engine.ObserveInput(ctx, site, 5)).To(Succeed())
		Expect(engine.ObserveInput(ctx, site, 5)).To(Succeed())

		Expect(testutil.ToFloat64(m.EventsTotal.WithLabelValues("calc", "InputRepeated"))).To(Equal(1.0))
		Expect(testutil.ToFloat64(m.OutcomesTotal.WithLabelValues("calc", "PASSED"))).To(Equal(1.0))
		Expect(testutil.ToFloat64(m.OutcomesTotal.WithLabelValues("calc", "FAILED"))).To(Equal(1.0))
		Expect(testutil.ToFloat64(m.OutcomesTotal.WithLabelValues("calc", "UNEXPECTED"))).To(Equal(1.0))
	})

	It("exposes the counters under the oracle namespace", func() {
		Expect(engine.Declare(ctx, site, 2, 4)).To(Succeed())

		expected := `
# HELP oracle_events_total Total number of protocol steps by engine instance and event type
# TYPE oracle_events_total counter
oracle_events_total{instance="calc",type="Declared"} 1
`
		Expect(testutil.CollectAndCompare(m.EventsTotal, strings.NewReader(expected), "oracle_events_total")).To(Succeed())
	})

	It("refuses to register twice", func() {
		reg := prometheus.NewRegistry()
		metrics.New(reg)
		Expect(func() { metrics.New(reg) }).To(Panic())
	})
})
