/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package coverage_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/clratm/oracle/pkg/coverage"
	t "github.com/clratm/oracle/pkg/types"
)

var _ = Describe("Aggregate", func() {
	var (
		drive = t.NewSite("Garage", "drive")
		park  = t.NewSite("garage", "Park")
		wash  = t.NewSite("CarWash", "wash")
	)

	It("returns nothing for no entries", func() {
		Expect(coverage.Aggregate(nil)).To(BeEmpty())
		Expect(coverage.Summarize(nil)).To(Equal(coverage.Summary{}))
		Expect(coverage.Summarize(nil).Ratio()).To(BeZero())
	})

	It("counts exercised and still declared units per site", func() {
		entries := []coverage.Entry{
			{Site: drive, Exercised: true},
			{Site: park, Exercised: false},
			{Site: drive, Exercised: false},
			{Site: wash, Exercised: true},
			{Site: drive, Exercised: true},
		}

		Expect(coverage.Aggregate(entries)).To(Equal([]coverage.Row{
			{Class: "CarWash", Method: "wash", Covered: 1, Total: 1},
			{Class: "Garage", Method: "drive", Covered: 2, Total: 3},
			{Class: "garage", Method: "Park", Covered: 0, Total: 1},
		}))

		summary := coverage.Summarize(entries)
		Expect(summary).To(Equal(coverage.Summary{Covered: 3, Total: 5}))
		Expect(summary.String()).To(Equal("3 / 5"))
		Expect(summary.Ratio()).To(BeNumerically("~", 0.6))
	})

	It("keeps sites that differ only in case apart", func() {
		rows := coverage.Aggregate([]coverage.Entry{
			{Site: t.NewSite("a", "m"), Exercised: true},
			{Site: t.NewSite("A", "m")},
		})
		Expect(rows).To(HaveLen(2))
	})

	It("renders the coverage figure", func() {
		row := coverage.Row{Class: "Garage", Method: "drive", Covered: 1, Total: 2}
		Expect(row.Coverage()).To(Equal("1 / 2"))
		Expect(row.String()).To(Equal("Class: Garage\nMethod: drive\nCoverage: 1 / 2"))
	})
})
