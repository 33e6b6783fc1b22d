/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package events_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/clratm/oracle/pkg/cases"
	"github.com/clratm/oracle/pkg/events"
	t "github.com/clratm/oracle/pkg/types"
)

var _ = Describe("EventList", func() {
	var site = t.NewSite("Garage", "drive")

	It("iterates in insertion order", func() {
		first := events.DeclaredEvent(site, 1, "aa", "x")
		second := events.CoverageEvent(site, 1, "bb", "x")
		el := events.ListOf(first)
		el.PushBackList(events.ListOf(second))

		Expect(el.Len()).To(Equal(2))
		Expect(el.Slice()).To(Equal([]*events.Event{first, second}))
	})

	It("is usable as a zero value", func() {
		el := &events.EventList{}
		Expect(el.Len()).To(BeZero())
		Expect(el.Iterator().Next()).To(BeNil())
		Expect(el.Slice()).To(BeEmpty())
	})
})

var _ = Describe("Type", func() {
	It("round-trips through its name", func() {
		for _, et := range events.AllTypes {
			parsed, ok := events.ParseType(et.String())
			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(et))
		}
		_, ok := events.ParseType("Tick")
		Expect(ok).To(BeFalse())
	})

	It("carries the status of the affected case", func() {
		e := events.OutputEvent(events.OutputFinalized, site(), 3, 2, "cc", "out", cases.Failed)
		Expect(e.Status).To(Equal(cases.Failed))
		Expect(e.SeqNr).To(Equal(t.SeqNr(2)))
		Expect(e.String()).To(ContainSubstring("OutputFinalized thread=3 seq=2 site=Garage.drive status=FAILED"))
	})
})

func site() t.Site {
	return t.NewSite("Garage", "drive")
}
