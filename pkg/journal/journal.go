/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package journal is an append-only, file-backed log of engine events.
// It is meant to be installed as an event interceptor, so that a run of instrumented
// code can be inspected afterwards (see the cat command of cmd/oracle).
package journal

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/tidwall/wal"

	"github.com/clratm/oracle/pkg/events"
	"github.com/clratm/oracle/pkg/modules"
)

var (
	_ modules.WAL              = (*Journal)(nil)
	_ modules.EventInterceptor = (*Journal)(nil)
)

// Journal is safe for concurrent use.
type Journal struct {
	mutex sync.Mutex
	log   *wal.Log

	// Index the next entry will be written at. Indexes start at 1.
	next uint64
}

// Open opens the journal in directory path, creating it if necessary.
// Entries already present are kept; new entries are appended after them.
func Open(path string) (*Journal, error) {
	log, err := wal.Open(path, &wal.Options{
		NoSync: true,
		NoCopy: true,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "could not open journal")
	}

	last, err := log.LastIndex()
	if err != nil {
		log.Close()
		return nil, errors.WithMessage(err, "could not read last index")
	}

	return &Journal{
		log:  log,
		next: last + 1,
	}, nil
}

// IsEmpty reports whether the journal holds no entries.
func (j *Journal) IsEmpty() (bool, error) {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	firstIndex, err := j.log.FirstIndex()
	if err != nil {
		return false, errors.WithMessage(err, "could not read first index")
	}

	return firstIndex == 0, nil
}

// LoadAll calls forEach with every entry of the journal, in order.
func (j *Journal) LoadAll(forEach func(index uint64, e *events.Event)) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	firstIndex, err := j.log.FirstIndex()
	if err != nil {
		return errors.WithMessage(err, "could not read first index")
	}

	if firstIndex == 0 {
		// Journal is empty
		return nil
	}

	lastIndex, err := j.log.LastIndex()
	if err != nil {
		return errors.WithMessage(err, "could not read last index")
	}

	for i := firstIndex; i <= lastIndex; i++ {
		data, err := j.log.Read(i)
		if err != nil {
			return errors.WithMessagef(err, "could not read index %d", i)
		}

		e, err := Unmarshal(data)
		if err != nil {
			return errors.WithMessagef(err, "could not decode entry %d, is the journal corrupt?", i)
		}

		forEach(i, e)
	}

	return nil
}

// Write writes e at index, which must be the index following the last entry.
func (j *Journal) Write(index uint64, e *events.Event) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	return j.write(index, e)
}

func (j *Journal) write(index uint64, e *events.Event) error {
	if index != j.next {
		return errors.Errorf("invalid journal index: expected %d, got %d", j.next, index)
	}

	if err := j.log.Write(index, Marshal(e)); err != nil {
		return errors.WithMessagef(err, "could not write entry %d", index)
	}
	j.next++
	return nil
}

// Append writes e after the last entry.
func (j *Journal) Append(e *events.Event) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	return j.write(j.next, e)
}

// Intercept appends every event of the list, in order.
func (j *Journal) Intercept(el *events.EventList) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	iter := el.Iterator()
	for e := iter.Next(); e != nil; e = iter.Next() {
		if err := j.write(j.next, e); err != nil {
			return err
		}
	}
	return nil
}

// Truncate removes all entries preceding index.
func (j *Journal) Truncate(index uint64) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	if err := j.log.TruncateFront(index); err != nil {
		return errors.WithMessagef(err, "could not truncate journal before %d", index)
	}
	return nil
}

// Sync flushes all appended entries to disk.
func (j *Journal) Sync() error {
	return j.log.Sync()
}

// Close syncs and closes the journal.
func (j *Journal) Close() error {
	if err := j.log.Sync(); err != nil {
		return errors.WithMessage(err, "could not sync journal")
	}
	return j.log.Close()
}
