/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modules

import (
	"github.com/pkg/errors"

	"github.com/clratm/oracle/pkg/events"
)

// EventInterceptor provides a way to gain insight into the internal operation of an engine.
// Every protocol step produces a list of events that is handed to the interceptor
// synchronously, before the step returns to the instrumented code.
type EventInterceptor interface {

	// Intercept is called once per protocol step with the events the step produced.
	// Errors are logged by the engine and never reach the instrumented code.
	// Implementations must be safe for concurrent use, as steps may run on many goroutines.
	Intercept(events *events.EventList) error
}

// Interceptors is an EventInterceptor passing every list to each of its members in order.
type Interceptors []EventInterceptor

// Intercept hands el to every member. All members are invoked even if some fail;
// the first error is returned.
func (is Interceptors) Intercept(el *events.EventList) error {
	var firstErr error
	for i, interceptor := range is {
		if interceptor == nil {
			continue
		}
		if err := interceptor.Intercept(el); err != nil && firstErr == nil {
			firstErr = errors.WithMessagef(err, "interceptor %d failed", i)
		}
	}
	return firstErr
}
