/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package serializing_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/clratm/oracle/pkg/serializing"
)

var _ = Describe("CanonicalJSON", func() {
	It("sorts object members", func() {
		data, err := serializing.CanonicalJSON(map[string]interface{}{"b": 1, "a": []int{2, 1}})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"a":[2,1],"b":1}`))
	})

	It("orders struct fields by name, not declaration", func() {
		v := struct {
			Zeta  string `json:"zeta"`
			Alpha float64 `json:"alpha"`
		}{Zeta: "z", Alpha: 1e21}
		data, err := serializing.CanonicalJSON(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"alpha":1e+21,"zeta":"z"}`))
	})

	It("fails on values JSON cannot represent", func() {
		_, err := serializing.CanonicalJSON(make(chan int))
		Expect(err).To(MatchError(ContainSubstring("could not marshal")))
	})
})
