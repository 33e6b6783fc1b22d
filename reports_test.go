/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oracle_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/clratm/oracle"
	"github.com/clratm/oracle/pkg/cases"
	"github.com/clratm/oracle/pkg/coverage"
	t "github.com/clratm/oracle/pkg/types"
)

var _ = Describe("Reports", func() {
	var (
		engine *oracle.Engine
		ctx    context.Context
		clock  time.Time
	)

	BeforeEach(func() {
		clock = time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
		engine = oracle.New("reports", oracle.ClockOpt(func() time.Time { return clock }))
		engine.Enable(true)
		ctx = oracle.WithThread(context.Background(), 7)
	})

	It("orders results by class and method, ignoring case", func() {
		sites := []t.Site{
			t.NewSite("zoo", "feed"),
			t.NewSite("Alpha", "run"),
			t.NewSite("alpha", "Jump"),
		}
		for i, site := range sites {
			Expect(engine.Declare(ctx, site, i, i)).To(Succeed())
			Expect(engine.ObserveInput(ctx, site, i)).To(Succeed())
		}

		records, err := engine.ResultReport(false)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(3))
		Expect(records[0].Site()).To(Equal(t.NewSite("alpha", "Jump")))
		Expect(records[1].Site()).To(Equal(t.NewSite("Alpha", "run")))
		Expect(records[2].Site()).To(Equal(t.NewSite("zoo", "feed")))
		Expect(records[0].Timestamp()).To(Equal(clock))
	})

	It("merges unexpected records into the order when verbose", func() {
		a := t.NewSite("A", "m")
		b := t.NewSite("B", "m")
		Expect(engine.ObserveInput(ctx, b, "stray")).To(Succeed())
		Expect(engine.Declare(ctx, a, 1, 2)).To(Succeed())
		Expect(engine.ObserveInput(ctx, a, 1)).To(Succeed())
		Expect(engine.ObserveInput(ctx, a, "stray")).To(Succeed())

		records, err := engine.ResultReport(true)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(3))
		Expect(records[0].Status()).To(Equal(cases.Pending))
		Expect(records[1].Status()).To(Equal(cases.Unexpected))
		Expect(records[1].Site()).To(Equal(a))
		Expect(records[2].Site()).To(Equal(b))
	})

	It("aggregates coverage per site", func() {
		square := t.NewSite("Calc", "Square")
		cube := t.NewSite("Calc", "Cube")
		for i := 1; i <= 3; i++ {
			Expect(engine.Declare(ctx, square, i, i*i)).To(Succeed())
			Expect(engine.Declare(ctx, cube, i, i*i*i)).To(Succeed())
		}
		Expect(engine.ObserveInput(ctx, square, 2)).To(Succeed())
		Expect(engine.ObserveOutput(ctx, square, 4)).To(Succeed())

		rows, summary, err := engine.CoverageReport()
		Expect(err).NotTo(HaveOccurred())
		Expect(summary).To(Equal(coverage.Summary{Covered: 1, Total: 6}))
		Expect(rows).To(Equal([]coverage.Row{
			{Class: "Calc", Method: "Cube", Covered: 0, Total: 3},
			{Class: "Calc", Method: "Square", Covered: 1, Total: 3},
		}))
	})

	Describe("Inventory", func() {
		It("copies the whole state", func() {
			site := t.NewSite("Calc", "Square")
			Expect(engine.Declare(ctx, site, 1, 1)).To(Succeed())
			Expect(engine.Declare(ctx, site, 2, 4)).To(Succeed())
			Expect(engine.ObserveInput(ctx, site, 2)).To(Succeed())
			Expect(engine.ObserveOutput(ctx, site, 4)).To(Succeed())
			Expect(engine.ObserveInput(ctx, site, 3)).To(Succeed())

			inv, err := engine.Inventory()
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Name).To(Equal("reports"))
			Expect(inv.ID).To(Equal(engine.ID()))
			Expect(inv.Taken).To(Equal(clock))
			Expect(inv.Expectations).To(HaveLen(2))
			Expect(inv.Observed).To(HaveLen(1))
			Expect(inv.Observed[0].Status()).To(Equal(cases.Passed))
			Expect(inv.Unexpected).To(HaveLen(1))
			Expect(inv.Covered).To(HaveLen(1))
			Expect(inv.NotCovered).To(HaveLen(1))
			Expect(inv.Covered[0].Site).To(Equal(site))
			Expect(inv.Covered[0].Output).To(Equal(4))
			Expect(inv.NotCovered[0].Output).To(Equal(1))
		})

		It("is unavailable while disabled", func() {
			engine.Enable(false)
			_, err := engine.Inventory()
			Expect(err).To(MatchError(oracle.ErrDisabled))
		})
	})
})
