/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oracle

import (
	"time"

	"github.com/clratm/oracle/pkg/modules"
)

// EngineOpt is an option accepted by New and NewRegistry.
// It is one of the values returned by the functions below.
type EngineOpt interface{}

type loggerOpt struct{ logger Logger }

// LoggerOpt installs the logger the engine reports protocol steps to.
// By default nothing is logged.
func LoggerOpt(logger Logger) EngineOpt {
	return loggerOpt{logger: logger}
}

type hasherOpt struct{ hasher modules.Hasher }

// HasherOpt overrides the hasher correlation keys are derived from.
// The default is crypto.MD5.
func HasherOpt(hasher modules.Hasher) EngineOpt {
	return hasherOpt{hasher: hasher}
}

type interceptorOpt struct{ interceptor modules.EventInterceptor }

// InterceptorOpt adds an interceptor receiving the events of every protocol step.
// The option may be given several times; interceptors are invoked in the order given.
func InterceptorOpt(interceptor modules.EventInterceptor) EngineOpt {
	return interceptorOpt{interceptor: interceptor}
}

type clockOpt func() time.Time

// ClockOpt overrides the time source used to timestamp records and events.
// This is mostly useful to make reports reproducible in tests.
func ClockOpt(now func() time.Time) EngineOpt {
	return clockOpt(now)
}
