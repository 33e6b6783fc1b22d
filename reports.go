/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oracle

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/clratm/oracle/pkg/cases"
	"github.com/clratm/oracle/pkg/coverage"
	t "github.com/clratm/oracle/pkg/types"
)

// ErrDisabled is returned by the report accessors of a disabled engine.
var ErrDisabled = errors.New("engine is disabled")

// ResultReport returns the cases whose input was observed, pending or decided, ordered
// by class and method. If verbose is set, the records of unexpected inputs are included.
func (e *Engine) ResultReport(verbose bool) ([]*cases.Record, error) {
	st := e.active()
	if st == nil {
		return nil, ErrDisabled
	}

	result := records(&st.pendingByCorrelationKey)
	if verbose {
		result = append(result, records(&st.unexpectedByInputKey)...)
		cases.Sort(result)
	}
	return result, nil
}

// CoverageReport returns the coverage of every site that declared an expected output,
// and the coverage summed over all sites.
func (e *Engine) CoverageReport() ([]coverage.Row, coverage.Summary, error) {
	st := e.active()
	if st == nil {
		return nil, coverage.Summary{}, ErrDisabled
	}

	entries := st.coverageEntries()
	return coverage.Aggregate(entries), coverage.Summarize(entries), nil
}

// CoverageUnit is an expected output declared at a site.
type CoverageUnit struct {
	Key  string
	Site t.Site

	// Output is the expected output as first declared, for display only.
	Output interface{}
}

// Inventory is a point-in-time copy of everything an engine knows.
type Inventory struct {
	Name  string
	ID    string
	Taken time.Time

	// Expectations holds every declared case, whether its input was observed or not.
	Expectations []*cases.Record

	// Observed holds the cases whose input was observed.
	Observed []*cases.Record

	Unexpected []*cases.Record

	Covered    []CoverageUnit
	NotCovered []CoverageUnit
}

// Inventory returns a copy of the engine's state, for dumps and debugging.
// The records themselves are shared with the engine and may still change.
func (e *Engine) Inventory() (*Inventory, error) {
	st := e.active()
	if st == nil {
		return nil, ErrDisabled
	}

	notCovered, covered := st.coverageUnits()
	sortUnits(covered)
	sortUnits(notCovered)

	return &Inventory{
		Name:         e.name,
		ID:           e.id,
		Taken:        e.now(),
		Expectations: records(&st.pendingByInputKey),
		Observed:     records(&st.pendingByCorrelationKey),
		Unexpected:   records(&st.unexpectedByInputKey),
		Covered:      covered,
		NotCovered:   notCovered,
	}, nil
}

func sortUnits(units []CoverageUnit) {
	sort.Slice(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if cases.SiteLess(a.Site, b.Site) {
			return true
		}
		if cases.SiteLess(b.Site, a.Site) {
			return false
		}
		return a.Key < b.Key
	})
}
