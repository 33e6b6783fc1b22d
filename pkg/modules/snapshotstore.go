/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modules

import "github.com/clratm/oracle/pkg/snapshotstore"

// SnapshotStore persistently stores report snapshots of engines.
// Each snapshot is referenced by the name of the engine instance it was taken of and by its own ID.
// All effects of Put can only be guaranteed to be persisted when a subsequent invocation of Sync() returns.
type SnapshotStore interface {

	// Put stores the snapshot, overwriting any snapshot stored under the same instance and ID.
	Put(s *snapshotstore.Snapshot) error

	// Get returns the snapshot stored under the given instance name and ID.
	// If no such snapshot exists, the returned error will be non-nil.
	Get(instance string, id string) (*snapshotstore.Snapshot, error)

	// List returns all snapshots of the instance, oldest first.
	List(instance string) ([]*snapshotstore.Snapshot, error)

	// Sync blocks until the effects of all preceding Put invocations have been persisted.
	Sync() error
}
