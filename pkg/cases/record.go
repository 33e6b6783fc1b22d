/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cases holds the record describing one declared expectation and its
// evolving outcome.
package cases

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	t "github.com/clratm/oracle/pkg/types"
)

type Status int

const (
	// Incomplete indicates the expectation was declared but no matching input was observed yet.
	Incomplete Status = iota

	// Pending indicates the input was observed and the output is awaited.
	// Until the output arrives the case counts as not passed.
	Pending

	// Passed indicates the observed output matched the expected one.
	Passed

	// Failed indicates the observed output differed from the expected one.
	Failed

	// Unexpected indicates an input was observed without a preceding declaration.
	Unexpected
)

func (s Status) String() string {
	switch s {
	case Incomplete:
		return "INCOMPLETE"
	case Pending:
		return "PENDING"
	case Passed:
		return "PASSED"
	case Failed:
		return "FAILED"
	case Unexpected:
		return "UNEXPECTED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Final reports whether no further transition is possible from s.
func (s Status) Final() bool {
	return s == Passed || s == Failed || s == Unexpected
}

var serials uint64

// Record describes one declared expectation (or one unexpected input).
// All accessors are safe for concurrent use.
type Record struct {
	mutex sync.Mutex

	site      t.Site
	timestamp time.Time
	serial    uint64

	status              Status
	input               interface{}
	result              interface{}
	expectedResult      interface{}
	expectedFingerprint string
}

// NewDeclared returns an Incomplete record expecting expectedResult for candidateInput.
// The candidate is replaced by the actual input once observed.
func NewDeclared(site t.Site, candidateInput, expectedResult interface{}, now time.Time) *Record {
	return &Record{
		site:           site,
		timestamp:      now,
		serial:         atomic.AddUint64(&serials, 1),
		status:         Incomplete,
		input:          candidateInput,
		expectedResult: expectedResult,
	}
}

// NewUnexpected returns a record for an input nobody declared.
func NewUnexpected(site t.Site, input interface{}, now time.Time) *Record {
	return &Record{
		site:      site,
		timestamp: now,
		serial:    atomic.AddUint64(&serials, 1),
		status:    Unexpected,
		input:     input,
	}
}

// Observe moves an Incomplete or Pending record to Pending, remembering the actual
// input and the fingerprint the output must match. Observing a Pending record again
// re-arms it for the next output. It returns false, leaving the record untouched,
// if the record is already final.
func (r *Record) Observe(input interface{}, expectedFingerprint string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.status.Final() {
		return false
	}
	r.status = Pending
	r.input = input
	r.expectedFingerprint = expectedFingerprint
	return true
}

// Finalize moves a Pending record to Passed if actualFingerprint matches the expected
// fingerprint and to Failed otherwise. It returns the resulting status and false if
// the record was not Pending.
func (r *Record) Finalize(result interface{}, actualFingerprint string) (Status, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.status != Pending {
		return r.status, false
	}
	r.result = result
	if r.expectedFingerprint == actualFingerprint {
		r.status = Passed
	} else {
		r.status = Failed
	}
	return r.status, true
}

func (r *Record) Site() t.Site {
	return r.site
}

func (r *Record) Class() string {
	return r.site.Class
}

func (r *Record) Method() string {
	return r.site.Method
}

func (r *Record) Timestamp() time.Time {
	return r.timestamp
}

func (r *Record) Status() Status {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.status
}

func (r *Record) Input() interface{} {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.input
}

func (r *Record) Result() interface{} {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.result
}

func (r *Record) ExpectedResult() interface{} {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.expectedResult
}

func (r *Record) ExpectedFingerprint() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.expectedFingerprint
}

// Less orders records by class, then method, both case-insensitively.
func (r *Record) Less(other *Record) bool {
	return SiteLess(r.site, other.site)
}

// SiteLess orders sites by class, then method, both case-insensitively.
func SiteLess(a, b t.Site) bool {
	if c := compareFold(a.Class, b.Class); c != 0 {
		return c < 0
	}
	return compareFold(a.Method, b.Method) < 0
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Sort orders records by site; records at equal sites keep their creation order.
func Sort(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].serial < records[j].serial
	})
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Less(records[j])
	})
}

func (r *Record) String() string {
	return fmt.Sprintf("Input: %v Output: %v", r.Input(), r.ExpectedResult())
}
