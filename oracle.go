/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

/*
Package oracle is an in-process test oracle for code whose inputs and outputs are
separated by arbitrary call paths and goroutines.

Instrumented code talks to an Engine in three steps, each tagged with the same call site:

	site := types.NewSite("inventory", "Restock")
	engine.Declare(ctx, site, order, expectedShipment)   // register an expectation
	engine.ObserveInput(ctx, site, order)                // the input really arrived
	...
	engine.ObserveOutput(ctx, site, shipment)            // decide pass or fail

Inputs and outputs are correlated through content fingerprints (see package fingerprint),
the call site and the thread presenting them, never through changed signatures.
A per-thread, per-site sequence number pairs the n-th observed input with the n-th
observed output, so identical values racing through the same site stay apart.

Every engine also tracks coverage: which declared expected outputs were ever produced.
*/
package oracle

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/clratm/oracle/pkg/crypto"
	"github.com/clratm/oracle/pkg/modules"
)

// Engine correlates declared expectations with observed inputs and outputs.
// All methods are safe for concurrent use.
// An engine starts disabled; until Enable(true) is called, every operation is a no-op.
type Engine struct {
	name string
	id   string

	logger  Logger
	modules modules.Modules
	now     func() time.Time

	enabled int32

	// Serializes allocation and replacement of the state.
	stateMutex sync.Mutex
	state      atomic.Value // *state
}

// New returns a disabled engine with the given name.
func New(name string, opts ...EngineOpt) *Engine {
	e := &Engine{
		name:   name,
		id:     uuid.New().String(),
		logger: nopLogger,
		now:    time.Now,
	}

	var interceptors modules.Interceptors
	for _, opt := range opts {
		switch v := opt.(type) {
		case loggerOpt:
			e.logger = v.logger
		case hasherOpt:
			e.modules.Hasher = v.hasher
		case interceptorOpt:
			interceptors = append(interceptors, v.interceptor)
		case clockOpt:
			e.now = v
		default:
			panic("unknown engine option")
		}
	}

	if e.modules.Hasher == nil {
		e.modules.Hasher = crypto.MD5
	}
	switch len(interceptors) {
	case 0:
	case 1:
		e.modules.Interceptor = interceptors[0]
	default:
		e.modules.Interceptor = interceptors
	}

	return e
}

// Name returns the name the engine was created with.
func (e *Engine) Name() string {
	return e.name
}

// ID returns an identifier unique to this engine, distinguishing equally named engines.
func (e *Engine) ID() string {
	return e.id
}

// Enable turns the engine on or off. It always returns true.
// The first time the engine is enabled its state is allocated; the state survives
// later disable/enable cycles. Changes take effect for subsequent calls only.
func (e *Engine) Enable(enabled bool) bool {
	if !enabled {
		atomic.StoreInt32(&e.enabled, 0)
		return true
	}

	e.stateMutex.Lock()
	if e.currentState() == nil {
		e.state.Store(newState())
	}
	e.stateMutex.Unlock()

	atomic.StoreInt32(&e.enabled, 1)
	return true
}

// Enabled reports whether the engine is currently enabled.
func (e *Engine) Enabled() bool {
	return atomic.LoadInt32(&e.enabled) == 1
}

// Reset discards everything the engine learned. It does not change whether the
// engine is enabled.
func (e *Engine) Reset() {
	e.stateMutex.Lock()
	defer e.stateMutex.Unlock()

	if e.currentState() != nil {
		e.state.Store(newState())
	}
}

func (e *Engine) currentState() *state {
	s, _ := e.state.Load().(*state)
	return s
}

// active returns the state, or nil if the engine is disabled.
func (e *Engine) active() *state {
	if !e.Enabled() {
		return nil
	}
	return e.currentState()
}
