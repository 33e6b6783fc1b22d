/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package snapshotstore

import (
	"sync"

	"github.com/pkg/errors"
)

// VolatileStore is an in-memory implementation of modules.SnapshotStore.
// All data is stored in RAM and the Sync() method does nothing.
type VolatileStore struct {
	mutex sync.Mutex

	// Encoded snapshots, indexed by instance and then by ID.
	// Snapshots are kept encoded so that callers cannot modify stored data.
	snapshots map[string]map[string][]byte
}

func NewVolatileStore() *VolatileStore {
	return &VolatileStore{
		snapshots: map[string]map[string][]byte{},
	}
}

func (vs *VolatileStore) Put(snapshot *Snapshot) error {
	data, err := snapshot.Encode()
	if err != nil {
		return errors.WithMessagef(err, "could not encode snapshot %s", snapshot.ID)
	}

	vs.mutex.Lock()
	defer vs.mutex.Unlock()

	byID, ok := vs.snapshots[snapshot.Instance]
	if !ok {
		byID = map[string][]byte{}
		vs.snapshots[snapshot.Instance] = byID
	}
	byID[snapshot.ID] = data
	return nil
}

func (vs *VolatileStore) Get(instance, id string) (*Snapshot, error) {
	vs.mutex.Lock()
	defer vs.mutex.Unlock()

	data, ok := vs.snapshots[instance][id]
	if !ok {
		return nil, errors.WithMessagef(ErrNotFound, "%s/%s", instance, id)
	}
	return Decode(data)
}

// List returns the snapshots of instance, oldest first.
func (vs *VolatileStore) List(instance string) ([]*Snapshot, error) {
	vs.mutex.Lock()
	defer vs.mutex.Unlock()

	snapshots := make([]*Snapshot, 0, len(vs.snapshots[instance]))
	for _, data := range vs.snapshots[instance] {
		snapshot, err := Decode(data)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	sortByTime(snapshots)
	return snapshots, nil
}

// Sync does nothing, as all data is held in memory.
func (vs *VolatileStore) Sync() error {
	return nil
}
