/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oracle

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/clratm/oracle/pkg/cases"
	"github.com/clratm/oracle/pkg/crypto"
	"github.com/clratm/oracle/pkg/events"
	"github.com/clratm/oracle/pkg/fingerprint"
	t "github.com/clratm/oracle/pkg/types"
)

// Declare registers the expectation that, when candidateInput is later observed on
// the same thread and site, the output observed after it equals expectedOutput.
// Declaring the same input twice on a thread and site keeps the first expectation.
// The expected output also becomes a coverage unit of the site, unless it was
// exercised already.
//
// Declare fails only if one of the values cannot be fingerprinted.
func (e *Engine) Declare(ctx context.Context, site t.Site, candidateInput, expectedOutput interface{}) error {
	st := e.active()
	if st == nil {
		return nil
	}
	thread := ThreadFrom(ctx)

	inputFP, err := e.fingerprint(site, thread, candidateInput, "candidate input")
	if err != nil {
		return err
	}
	outputFP, err := e.fingerprint(site, thread, expectedOutput, "expected output")
	if err != nil {
		return err
	}

	inputKey := e.inputKey(inputFP, thread, site)
	st.pendingByInputKey.LoadOrStore(inputKey, cases.NewDeclared(site, candidateInput, expectedOutput, e.now()))
	st.declare(e.outputKey(outputFP, site), site, expectedOutput)

	e.logger.Debug("declared expectation",
		zap.String("instance", e.name),
		zap.Stringer("site", site),
		zap.Uint64("thread", thread.Pb()),
		zap.String("key", inputKey))

	e.intercept(func() *events.EventList {
		return events.ListOf(events.DeclaredEvent(site, thread, inputKey, display(expectedOutput)))
	})
	return nil
}

// ObserveInput reports that actualInput arrived at site.
// If it matches an expectation declared on the same thread and site, the case becomes
// pending and awaits the next output observed on this thread and site. Otherwise the
// input is recorded as unexpected. Either way the input advances the sequence of the
// thread and site.
//
// ObserveInput fails only if actualInput, or the expected output of the matched
// expectation, cannot be fingerprinted.
func (e *Engine) ObserveInput(ctx context.Context, site t.Site, actualInput interface{}) error {
	st := e.active()
	if st == nil {
		return nil
	}
	thread := ThreadFrom(ctx)

	inputFP, err := e.fingerprint(site, thread, actualInput, "actual input")
	if err != nil {
		return err
	}
	inputKey := e.inputKey(inputFP, thread, site)
	seqNr := st.advance(e.counterKey(site, thread))

	v, ok := st.pendingByInputKey.Load(inputKey)
	if !ok {
		_, loaded := st.unexpectedByInputKey.LoadOrStore(inputKey, cases.NewUnexpected(site, actualInput, e.now()))
		e.logger.Debug("observed unexpected input",
			zap.String("instance", e.name),
			zap.Stringer("site", site),
			zap.Uint64("thread", thread.Pb()),
			zap.Uint64("seq", seqNr.Pb()),
			zap.Bool("repeated", loaded))
		eventType := events.InputUnexpected
		if loaded {
			eventType = events.InputRepeated
		}
		e.intercept(func() *events.EventList {
			return events.ListOf(events.InputEvent(eventType, site, thread, seqNr, inputKey, display(actualInput), cases.Unexpected))
		})
		return nil
	}
	record := v.(*cases.Record)

	expectedFP, err := e.fingerprint(site, thread, record.ExpectedResult(), "expected output")
	if err != nil {
		return err
	}

	if !record.Observe(actualInput, crypto.Digest(e.modules.Hasher, expectedFP)) {
		e.logger.Debug("observed input of a decided case",
			zap.String("instance", e.name),
			zap.Stringer("site", site),
			zap.Uint64("thread", thread.Pb()),
			zap.Uint64("seq", seqNr.Pb()),
			zap.Stringer("status", record.Status()))
		e.intercept(func() *events.EventList {
			return events.ListOf(events.InputEvent(events.InputRepeated, site, thread, seqNr, inputKey, display(actualInput), record.Status()))
		})
		return nil
	}

	correlationKey := e.correlationKey(thread, site, seqNr)
	st.pendingByCorrelationKey.Store(correlationKey, record)

	e.logger.Debug("observed expected input",
		zap.String("instance", e.name),
		zap.Stringer("site", site),
		zap.Uint64("thread", thread.Pb()),
		zap.Uint64("seq", seqNr.Pb()),
		zap.String("key", correlationKey))

	e.intercept(func() *events.EventList {
		return events.ListOf(events.InputEvent(events.InputMatched, site, thread, seqNr, correlationKey, display(actualInput), cases.Pending))
	})
	return nil
}

// ObserveOutput reports that actualOutput was produced at site.
// It is paired with the latest input observed on the same thread and site; if that
// input armed a case, the case passes when actualOutput matches the expected output
// and fails otherwise. Independently, if actualOutput equals an output declared at
// site, that coverage unit counts as exercised.
//
// If no input was ever observed on the thread and site, ObserveOutput does nothing.
// It fails only if actualOutput cannot be fingerprinted.
func (e *Engine) ObserveOutput(ctx context.Context, site t.Site, actualOutput interface{}) error {
	st := e.active()
	if st == nil {
		return nil
	}
	thread := ThreadFrom(ctx)

	seqNr, ok := st.current(e.counterKey(site, thread))
	if !ok {
		e.logger.Debug("ignoring output without preceding input",
			zap.String("instance", e.name),
			zap.Stringer("site", site),
			zap.Uint64("thread", thread.Pb()))
		return nil
	}

	outputFP, err := e.fingerprint(site, thread, actualOutput, "actual output")
	if err != nil {
		return err
	}

	outcome, status := events.OutputUncorrelated, cases.Incomplete

	correlationKey := e.correlationKey(thread, site, seqNr)
	if v, ok := st.pendingByCorrelationKey.Load(correlationKey); ok {
		var finalized bool
		status, finalized = v.(*cases.Record).Finalize(actualOutput, crypto.Digest(e.modules.Hasher, outputFP))
		if finalized {
			outcome = events.OutputFinalized
			e.logger.Debug("finalized case",
				zap.String("instance", e.name),
				zap.Stringer("site", site),
				zap.Uint64("thread", thread.Pb()),
				zap.Uint64("seq", seqNr.Pb()),
				zap.Stringer("status", status))
		}
	}

	outputKey := e.outputKey(outputFP, site)
	exercised := st.exercise(outputKey)
	if exercised {
		e.logger.Debug("exercised coverage unit",
			zap.String("instance", e.name),
			zap.Stringer("site", site),
			zap.String("key", outputKey))
	}

	e.intercept(func() *events.EventList {
		shown := display(actualOutput)
		el := events.ListOf(events.OutputEvent(outcome, site, thread, seqNr, correlationKey, shown, status))
		if exercised {
			el.PushBack(events.CoverageEvent(site, thread, outputKey, shown))
		}
		return el
	})
	return nil
}

// fingerprint returns the fingerprint of v, logging and annotating failures.
func (e *Engine) fingerprint(site t.Site, thread t.ThreadID, v interface{}, role string) ([]byte, error) {
	fp, err := fingerprint.Of(v)
	if err != nil {
		e.logger.Warn("could not fingerprint value",
			zap.String("instance", e.name),
			zap.Stringer("site", site),
			zap.Uint64("thread", thread.Pb()),
			zap.String("role", role),
			zap.Error(err))
		return nil, errors.WithMessagef(err, "could not fingerprint %s at %s", role, site)
	}
	return fp, nil
}

// inputKey identifies an input presented by a thread at a site.
func (e *Engine) inputKey(inputFP []byte, thread t.ThreadID, site t.Site) string {
	return crypto.Digest(e.modules.Hasher, framed(inputFP), inputFP, thread.Bytes(), site.Bytes())
}

// outputKey identifies an expected output of a site, on any thread.
func (e *Engine) outputKey(outputFP []byte, site t.Site) string {
	return crypto.Digest(e.modules.Hasher, framed(outputFP), outputFP, site.Bytes())
}

// framed returns the length prefix of a fingerprint, keeping it apart from the
// site bytes that follow it.
func framed(fp []byte) []byte {
	return binary.AppendUvarint(nil, uint64(len(fp)))
}

// correlationKey identifies the seqNr-th input observed by a thread at a site.
func (e *Engine) correlationKey(thread t.ThreadID, site t.Site, seqNr t.SeqNr) string {
	return crypto.Digest(e.modules.Hasher, thread.Bytes(), site.Bytes(), seqNr.Bytes())
}

func (e *Engine) counterKey(site t.Site, thread t.ThreadID) string {
	return crypto.Digest(e.modules.Hasher, site.Bytes(), thread.Bytes())
}

// intercept passes the events produced by build to the interceptor, if there is one.
// Interceptor failures are logged and otherwise ignored.
func (e *Engine) intercept(build func() *events.EventList) {
	if e.modules.Interceptor == nil {
		return
	}

	el := build()
	now := e.now()
	iter := el.Iterator()
	for event := iter.Next(); event != nil; event = iter.Next() {
		event.Instance = e.name
		event.Time = now
	}

	if err := e.modules.Interceptor.Intercept(el); err != nil {
		e.logger.Warn("event interceptor failed",
			zap.String("instance", e.name),
			zap.Int("events", el.Len()),
			zap.Error(err))
	}
}

// display renders v for events. Values that cannot be rendered are shown by type.
func display(v interface{}) string {
	s, err := fingerprint.Display(v)
	if err != nil {
		return fmt.Sprintf("<%T>", v)
	}
	return s
}
