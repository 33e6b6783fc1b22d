/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modules

import "github.com/clratm/oracle/pkg/events"

// WAL is an append-only, index-addressed log of events.
// Indexes start at 1 and grow by one with every appended entry.
type WAL interface {
	Write(index uint64, entry *events.Event) error
	Append(entry *events.Event) error
	Truncate(index uint64) error
	Sync() error
	LoadAll(forEach func(index uint64, e *events.Event)) error
}
