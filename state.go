/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oracle

import (
	"sync"
	"sync/atomic"

	"github.com/clratm/oracle/pkg/cases"
	"github.com/clratm/oracle/pkg/coverage"
	t "github.com/clratm/oracle/pkg/types"
)

// state holds everything an engine learned while enabled.
// The four sync.Maps are only ever accessed with per-key atomic operations.
// The two coverage maps move keys between each other and share one mutex.
type state struct {
	// Input key -> *cases.Record awaiting (or past) its input.
	pendingByInputKey sync.Map

	// Input key -> *cases.Record created for an input nobody declared.
	unexpectedByInputKey sync.Map

	// Correlation key -> *cases.Record awaiting (or past) its output.
	pendingByCorrelationKey sync.Map

	// Counter key -> *uint64 holding the number of inputs observed on a thread and site.
	sequenceCounters sync.Map

	coverageMutex sync.Mutex
	declared      map[string]CoverageUnit
	exercised     map[string]CoverageUnit
}

func newState() *state {
	return &state{
		declared:  map[string]CoverageUnit{},
		exercised: map[string]CoverageUnit{},
	}
}

// advance increments the counter stored under key and returns its previous value.
func (s *state) advance(key string) t.SeqNr {
	v, _ := s.sequenceCounters.LoadOrStore(key, new(uint64))
	return t.SeqNr(atomic.AddUint64(v.(*uint64), 1) - 1)
}

// current returns the sequence number of the latest input counted under key.
// It returns false if no input was counted yet.
func (s *state) current(key string) (t.SeqNr, bool) {
	v, ok := s.sequenceCounters.Load(key)
	if !ok {
		return 0, false
	}
	n := atomic.LoadUint64(v.(*uint64))
	if n == 0 {
		return 0, false
	}
	return t.SeqNr(n - 1), true
}

// declare adds key to the declared coverage units, unless it was exercised already.
// The first declared output is kept for display.
func (s *state) declare(key string, site t.Site, output interface{}) {
	s.coverageMutex.Lock()
	defer s.coverageMutex.Unlock()

	if _, ok := s.exercised[key]; ok {
		return
	}
	if _, ok := s.declared[key]; ok {
		return
	}
	s.declared[key] = CoverageUnit{Key: key, Site: site, Output: output}
}

// exercise moves key from the declared to the exercised coverage units.
// It returns true if key was declared.
func (s *state) exercise(key string) bool {
	s.coverageMutex.Lock()
	defer s.coverageMutex.Unlock()

	unit, ok := s.declared[key]
	if !ok {
		return false
	}
	delete(s.declared, key)
	s.exercised[key] = unit
	return true
}

// coverageUnits returns a consistent copy of the coverage units.
func (s *state) coverageUnits() (declared, exercised []CoverageUnit) {
	s.coverageMutex.Lock()
	defer s.coverageMutex.Unlock()

	declared = make([]CoverageUnit, 0, len(s.declared))
	for _, unit := range s.declared {
		declared = append(declared, unit)
	}
	exercised = make([]CoverageUnit, 0, len(s.exercised))
	for _, unit := range s.exercised {
		exercised = append(exercised, unit)
	}
	return declared, exercised
}

func (s *state) coverageEntries() []coverage.Entry {
	declared, exercised := s.coverageUnits()
	entries := make([]coverage.Entry, 0, len(declared)+len(exercised))
	for _, u := range declared {
		entries = append(entries, coverage.Entry{Site: u.Site})
	}
	for _, u := range exercised {
		entries = append(entries, coverage.Entry{Site: u.Site, Exercised: true})
	}
	return entries
}

func records(m *sync.Map) []*cases.Record {
	var result []*cases.Record
	m.Range(func(_, v interface{}) bool {
		result = append(result, v.(*cases.Record))
		return true
	})
	cases.Sort(result)
	return result
}
