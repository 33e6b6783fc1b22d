/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package report renders the result and coverage reports of an engine as fixed-width
// text tables, as a textual dump of the engine state, or as canonical JSON.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/clratm/oracle/pkg/cases"
	"github.com/clratm/oracle/pkg/coverage"
	"github.com/clratm/oracle/pkg/fingerprint"
	"github.com/clratm/oracle/pkg/snapshotstore"
)

// DefaultWidth is the column width used when none, or an unusable one, is given.
const DefaultWidth = 30

// Values shorter than this cannot be truncated meaningfully.
const minWidth = 8

const (
	timeWidth   = 28
	statusWidth = 15
	ratioWidth  = 12
)

// TimeFormat renders the time column; it is exactly timeWidth characters long.
const TimeFormat = time.UnixDate

const notApplicable = "N/A"

// WriteResults writes the result report of the records. Records of unexpected inputs
// are only written when verbose is set.
func WriteResults(w io.Writer, name string, records []*cases.Record, verbose bool, width int) error {
	width = effectiveWidth(width)
	format := fmt.Sprintf("%%%ds%%%ds%%%ds%%%ds%%%ds%%%ds%%%ds\n",
		timeWidth, width+2, width, width, width, width, statusWidth)

	var buffer bytes.Buffer
	buffer.WriteString(fmt.Sprintf("Result report for tester %s:\n\n", name))
	buffer.WriteString(fmt.Sprintf(format, "Time", "Class", "Method", "Input", "Output", "Expected Output", "Result"))

	for _, r := range records {
		status := r.Status()
		if status == cases.Unexpected && !verbose {
			continue
		}

		input := render(r.Input())
		output := render(r.Result())
		expected := render(r.ExpectedResult())
		if status == cases.Unexpected {
			output = notApplicable
			expected = notApplicable
		}

		buffer.WriteString(fmt.Sprintf(format,
			r.Timestamp().Format(TimeFormat),
			truncateLeft(r.Class(), width),
			r.Method(),
			truncate(input, width),
			truncate(output, width),
			truncate(expected, width),
			status,
		))
	}

	_, err := w.Write(buffer.Bytes())
	return errors.WithMessage(err, "could not write result report")
}

// WriteCoverage writes the overall coverage followed by one line per row.
func WriteCoverage(w io.Writer, name string, rows []coverage.Row, summary coverage.Summary, width int) error {
	width = effectiveWidth(width)
	format := fmt.Sprintf("%%%ds%%%ds%%%ds\n", width, width, ratioWidth)

	var buffer bytes.Buffer
	buffer.WriteString(fmt.Sprintf("Coverage report for tester %s:\n\n", name))
	buffer.WriteString(fmt.Sprintf("Overall Coverage: %s\n\n", summary))
	buffer.WriteString(fmt.Sprintf(format, "Class", "Method", "Coverage"))

	for _, row := range rows {
		buffer.WriteString(fmt.Sprintf(format,
			truncateLeft(row.Class, width),
			truncate(row.Method, width),
			truncate(row.Coverage(), width),
		))
	}

	_, err := w.Write(buffer.Bytes())
	return errors.WithMessage(err, "could not write coverage report")
}

// WriteDisabled writes the placeholder printed instead of the reports of a disabled engine.
func WriteDisabled(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, "The tester (%s) is disabled. Please enable the tester to allow printing\n", name)
	return errors.WithMessage(err, "could not write disabled notice")
}

// WriteJSON writes the canonical JSON encoding of the snapshot, newline terminated.
func WriteJSON(w io.Writer, snapshot *snapshotstore.Snapshot) error {
	data, err := snapshot.Encode()
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.WithMessage(err, "could not write snapshot")
	}
	return nil
}

func effectiveWidth(width int) int {
	if width < minWidth {
		return DefaultWidth
	}
	return width
}

// truncate cuts values longer than width to width-5 characters followed by "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-5]) + "..."
}

// truncateLeft keeps the tail of long values, which for class names is the
// distinguishing part.
func truncateLeft(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return "..." + string(runes[len(runes)-width+3:])
}

func render(v interface{}) string {
	s, err := fingerprint.Display(v)
	if err != nil {
		return "<unidentifiable>"
	}
	return s
}
