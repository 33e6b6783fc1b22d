/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"bytes"
	"fmt"

	"github.com/clratm/oracle"
	"github.com/clratm/oracle/pkg/cases"
)

// Dump renders everything the inventory holds as human-readable text.
func Dump(inv *oracle.Inventory) string {
	var buffer bytes.Buffer
	buffer.WriteString(fmt.Sprintf("Info for: %s @ %s\n", inv.Name, inv.ID))

	if len(inv.Expectations) == 0 {
		buffer.WriteString("No expected results detected by this tester\n\n")
	} else {
		buffer.WriteString("Expected results:\n")
		for _, r := range inv.Expectations {
			buffer.WriteString(fmt.Sprintf("Input: %s -> Output: %s\n", render(r.Input()), render(r.ExpectedResult())))
		}
		buffer.WriteString("\n")
	}

	if len(inv.Observed) == 0 {
		buffer.WriteString("No observed inputs detected by this tester\n\n")
	} else {
		buffer.WriteString("Inputs that passed their tests:\n")
		for _, r := range inv.Observed {
			if r.Status() == cases.Passed {
				buffer.WriteString(fmt.Sprintf("Input: %s -> Passed with result: %s\n", render(r.Input()), render(r.Result())))
			}
		}
		buffer.WriteString("\n")

		buffer.WriteString("Inputs that have not yet passed their tests:\n")
		for _, r := range inv.Observed {
			if status := r.Status(); status == cases.Pending || status == cases.Failed {
				buffer.WriteString(fmt.Sprintf("Input: %s -> Expected output: %s\n", render(r.Input()), render(r.ExpectedResult())))
			}
		}
		buffer.WriteString("\n")
	}

	if len(inv.Unexpected) > 0 {
		buffer.WriteString("Unexpected inputs:\n")
		for _, r := range inv.Unexpected {
			buffer.WriteString(fmt.Sprintf("Input: %s at %s\n", render(r.Input()), r.Site()))
		}
		buffer.WriteString("\n")
	}

	if len(inv.Covered) == 0 {
		buffer.WriteString("No covered output values detected by this tester\n\n")
	} else {
		buffer.WriteString("Tested output values:\n")
		for _, u := range inv.Covered {
			buffer.WriteString(fmt.Sprintf("Covered output: %s\n", render(u.Output)))
		}
		buffer.WriteString("\n")
	}

	if len(inv.NotCovered) == 0 {
		buffer.WriteString("No not-covered output values detected by this tester\n")
	} else {
		buffer.WriteString("Not covered output values:\n")
		for _, u := range inv.NotCovered {
			buffer.WriteString(fmt.Sprintf("Not Covered output: %s\n", render(u.Output)))
		}
	}

	return buffer.String()
}
