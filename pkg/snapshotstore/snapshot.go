/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package snapshotstore persists point-in-time copies of engine reports, so that the
// outcome of runs can be compared over time.
package snapshotstore

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/clratm/oracle/pkg/cases"
	"github.com/clratm/oracle/pkg/coverage"
	"github.com/clratm/oracle/pkg/fingerprint"
	"github.com/clratm/oracle/pkg/serializing"
)

// ErrNotFound is returned when no snapshot is stored under the requested reference.
var ErrNotFound = errors.New("snapshot not found")

// ResultRow is the rendered form of one case record.
type ResultRow struct {
	Time     time.Time `json:"time"`
	Class    string    `json:"class"`
	Method   string    `json:"method"`
	Input    string    `json:"input"`
	Output   string    `json:"output,omitempty"`
	Expected string    `json:"expected,omitempty"`
	Status   string    `json:"status"`
}

// Snapshot is the result and coverage report of one engine at one point in time.
type Snapshot struct {
	ID       string           `json:"id"`
	Instance string           `json:"instance"`
	Taken    time.Time        `json:"taken"`
	Results  []ResultRow      `json:"results"`
	Coverage []coverage.Row   `json:"coverage"`
	Summary  coverage.Summary `json:"summary"`
}

// New returns a snapshot with a fresh ID.
func New(instance string, taken time.Time, records []*cases.Record, rows []coverage.Row, summary coverage.Summary) *Snapshot {
	return &Snapshot{
		ID:       uuid.New().String(),
		Instance: instance,
		Taken:    taken.UTC(),
		Results:  Rows(records),
		Coverage: rows,
		Summary:  summary,
	}
}

// Rows renders records for storage.
func Rows(records []*cases.Record) []ResultRow {
	rows := make([]ResultRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ResultRow{
			Time:     r.Timestamp().UTC(),
			Class:    r.Class(),
			Method:   r.Method(),
			Input:    render(r.Input()),
			Output:   render(r.Result()),
			Expected: render(r.ExpectedResult()),
			Status:   r.Status().String(),
		})
	}
	return rows
}

func render(v interface{}) string {
	s, err := fingerprint.Display(v)
	if err != nil {
		return "<unidentifiable>"
	}
	return s
}

// Passed returns the number of rows that passed.
func (s *Snapshot) Passed() int {
	n := 0
	for _, r := range s.Results {
		if r.Status == cases.Passed.String() {
			n++
		}
	}
	return n
}

// Encode returns the canonical JSON encoding of the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	return serializing.CanonicalJSON(s)
}

// Decode parses a snapshot encoded by Encode.
func Decode(data []byte) (*Snapshot, error) {
	s := &Snapshot{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, errors.WithMessage(err, "could not decode snapshot")
	}
	return s, nil
}

func sortByTime(snapshots []*Snapshot) {
	sort.SliceStable(snapshots, func(i, j int) bool {
		if !snapshots[i].Taken.Equal(snapshots[j].Taken) {
			return snapshots[i].Taken.Before(snapshots[j].Taken)
		}
		return snapshots[i].ID < snapshots[j].ID
	})
}
