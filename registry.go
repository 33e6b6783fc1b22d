/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oracle

import (
	"sort"
	"sync"
)

// Registry hands out independent engines by name.
// Engines are created on first request, with the options the registry was created with.
type Registry struct {
	mutex   sync.Mutex
	opts    []EngineOpt
	engines map[string]*Engine
}

// NewRegistry returns an empty registry whose engines are created with opts.
func NewRegistry(opts ...EngineOpt) *Registry {
	return &Registry{
		opts:    opts,
		engines: map[string]*Engine{},
	}
}

// Get returns the engine registered under name, creating a disabled one if necessary.
func (r *Registry) Get(name string) *Engine {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	e, ok := r.engines[name]
	if !ok {
		e = New(name, r.opts...)
		r.engines[name] = e
	}
	return e
}

// Names returns the names of all engines created so far, in sorted order.
func (r *Registry) Names() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Default returns a process-wide registry, for code that cannot be handed a registry
// explicitly. Engines obtained from it are shared by everything in the process.
func Default() *Registry {
	return defaultRegistry
}
