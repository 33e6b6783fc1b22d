/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package coverage derives per-site coverage figures from the declared and exercised
// expected-output keys of an engine.
package coverage

import (
	"fmt"
	"sort"

	"github.com/clratm/oracle/pkg/cases"
	t "github.com/clratm/oracle/pkg/types"
)

// Entry is one coverage unit: a declared expected-output key at a site.
type Entry struct {
	Site      t.Site
	Exercised bool
}

// Row is the coverage of one (class, method) pair.
type Row struct {
	Class   string `json:"class"`
	Method  string `json:"method"`
	Covered int    `json:"covered"`
	Total   int    `json:"total"`
}

// Coverage renders the row's figure as "covered / total".
func (r Row) Coverage() string {
	return fmt.Sprintf("%d / %d", r.Covered, r.Total)
}

func (r Row) String() string {
	return fmt.Sprintf("Class: %s\nMethod: %s\nCoverage: %s", r.Class, r.Method, r.Coverage())
}

// Summary is the coverage across a whole engine.
type Summary struct {
	Covered int `json:"covered"`
	Total   int `json:"total"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d / %d", s.Covered, s.Total)
}

// Ratio returns the covered fraction, or 0 when nothing was declared.
func (s Summary) Ratio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Covered) / float64(s.Total)
}

// Aggregate groups the entries by site and returns one row per distinct
// (class, method, coverage) triple, ordered by class and method case-insensitively.
func Aggregate(entries []Entry) []Row {
	type counts struct {
		covered, total int
	}

	perSite := map[t.Site]*counts{}
	order := []t.Site{}
	for _, entry := range entries {
		c, ok := perSite[entry.Site]
		if !ok {
			c = &counts{}
			perSite[entry.Site] = c
			order = append(order, entry.Site)
		}
		c.total++
		if entry.Exercised {
			c.covered++
		}
	}

	seen := map[Row]struct{}{}
	rows := make([]Row, 0, len(order))
	for _, site := range order {
		c := perSite[site]
		row := Row{Class: site.Class, Method: site.Method, Covered: c.covered, Total: c.total}
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return cases.SiteLess(t.NewSite(rows[i].Class, rows[i].Method), t.NewSite(rows[j].Class, rows[j].Method))
	})
	return rows
}

// Summarize returns exercised / (exercised + still declared) across all entries.
func Summarize(entries []Entry) Summary {
	s := Summary{Total: len(entries)}
	for _, entry := range entries {
		if entry.Exercised {
			s.Covered++
		}
	}
	return s
}
