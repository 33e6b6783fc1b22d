/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package events defines the events an engine emits for every protocol step.
// Events are handed to EventInterceptors (journals, metrics) for later analysis.
package events

import (
	"fmt"
	"time"

	"github.com/clratm/oracle/pkg/cases"
	t "github.com/clratm/oracle/pkg/types"
)

type Type int

const (
	// Declared is emitted when an expectation is registered.
	Declared Type = iota + 1

	// InputMatched is emitted when an observed input matches a declaration.
	InputMatched

	// InputRepeated is emitted when an input matches an already decided case, or repeats
	// an input already recorded as unexpected.
	InputRepeated

	// InputUnexpected is emitted when an observed input matches no declaration.
	InputUnexpected

	// OutputFinalized is emitted when an observed output decides a pending case.
	OutputFinalized

	// OutputUncorrelated is emitted when an observed output cannot be paired with a pending case.
	OutputUncorrelated

	// CoverageExercised is emitted when a declared coverage unit is exercised for the first time.
	CoverageExercised
)

// AllTypes lists every event type, in declaration order.
var AllTypes = []Type{Declared, InputMatched, InputRepeated, InputUnexpected, OutputFinalized, OutputUncorrelated, CoverageExercised}

func (et Type) String() string {
	switch et {
	case Declared:
		return "Declared"
	case InputMatched:
		return "InputMatched"
	case InputRepeated:
		return "InputRepeated"
	case InputUnexpected:
		return "InputUnexpected"
	case OutputFinalized:
		return "OutputFinalized"
	case OutputUncorrelated:
		return "OutputUncorrelated"
	case CoverageExercised:
		return "CoverageExercised"
	default:
		return fmt.Sprintf("Type(%d)", int(et))
	}
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, bool) {
	for _, et := range AllTypes {
		if et.String() == s {
			return et, true
		}
	}
	return 0, false
}

// Event describes one protocol step of one engine.
type Event struct {
	Type     Type
	Instance string
	Site     t.Site
	Thread   t.ThreadID
	SeqNr    t.SeqNr

	// Key is the hex digest the step was correlated by.
	Key string

	// Display is a human-readable rendering of the value involved in the step.
	Display string

	// Status is the status of the affected case after the step.
	Status cases.Status

	Time time.Time
}

func (e *Event) String() string {
	return fmt.Sprintf("%s %s thread=%d seq=%d site=%s status=%s key=%s value=%q",
		e.Time.Format(time.RFC3339Nano), e.Type, e.Thread, e.SeqNr, e.Site, e.Status, e.Key, e.Display)
}

// ============================================================
// Event Constructors
// ============================================================

// DeclaredEvent returns an event representing the registration of an expectation.
func DeclaredEvent(site t.Site, thread t.ThreadID, key, expected string) *Event {
	return &Event{Type: Declared, Site: site, Thread: thread, Key: key, Display: expected, Status: cases.Incomplete}
}

// InputEvent returns an event representing an observed input; et is one of InputMatched,
// InputRepeated or InputUnexpected.
func InputEvent(et Type, site t.Site, thread t.ThreadID, seqNr t.SeqNr, key, input string, status cases.Status) *Event {
	return &Event{Type: et, Site: site, Thread: thread, SeqNr: seqNr, Key: key, Display: input, Status: status}
}

// OutputEvent returns an event representing an observed output.
func OutputEvent(et Type, site t.Site, thread t.ThreadID, seqNr t.SeqNr, key, output string, status cases.Status) *Event {
	return &Event{Type: et, Site: site, Thread: thread, SeqNr: seqNr, Key: key, Display: output, Status: status}
}

// CoverageEvent returns an event representing a coverage unit being exercised.
func CoverageEvent(site t.Site, thread t.ThreadID, key, output string) *Event {
	return &Event{Type: CoverageExercised, Site: site, Thread: thread, Key: key, Display: output, Status: cases.Passed}
}
