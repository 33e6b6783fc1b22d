/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oracle

import (
	"bytes"
	"context"
	"runtime"
	"strconv"

	t "github.com/clratm/oracle/pkg/types"
)

type threadKey struct{}

// WithThread returns a context presenting values to the engine as thread id.
// Code whose logical flows hop between goroutines (worker pools, pipelines) should
// attach an explicit thread, so that an input and its output correlate even when they
// are observed on different goroutines.
func WithThread(ctx context.Context, id t.ThreadID) context.Context {
	return context.WithValue(ctx, threadKey{}, id)
}

// ThreadFrom returns the thread attached to ctx by WithThread.
// Without one, the id of the calling goroutine is used.
func ThreadFrom(ctx context.Context) t.ThreadID {
	if ctx != nil {
		if id, ok := ctx.Value(threadKey{}).(t.ThreadID); ok {
			return id
		}
	}
	return goroutineID()
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID parses the id out of the first line of the current goroutine's stack,
// which reads "goroutine <id> [<state>]:".
func goroutineID() t.ThreadID {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return t.ThreadID(id)
}
