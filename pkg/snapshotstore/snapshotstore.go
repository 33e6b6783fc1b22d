/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package snapshotstore

import (
	badger "github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"
)

func instancePrefix(instance string) []byte {
	return []byte("snap/" + instance + "\x00")
}

func snapKey(instance, id string) []byte {
	return append(instancePrefix(instance), id...)
}

// Store keeps snapshots in a badger database.
type Store struct {
	db *badger.DB
}

// Open opens the store in directory dir. An empty dir yields a store held
// in memory only.
func Open(dir string) (*Store, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir).WithSyncWrites(false).WithTruncate(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.WithMessage(err, "could not open snapshot database")
	}

	return &Store{
		db: db,
	}, nil
}

func (s *Store) Put(snapshot *Snapshot) error {
	data, err := snapshot.Encode()
	if err != nil {
		return errors.WithMessagef(err, "could not encode snapshot %s", snapshot.ID)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapKey(snapshot.Instance, snapshot.ID), data)
	})
}

func (s *Store) Get(instance, id string) (*Snapshot, error) {
	var valCopy []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapKey(instance, id))
		if err != nil {
			return err
		}

		valCopy, err = item.ValueCopy(nil)
		return err
	})

	if err == badger.ErrKeyNotFound {
		return nil, errors.WithMessagef(ErrNotFound, "%s/%s", instance, id)
	}
	if err != nil {
		return nil, errors.WithMessage(err, "could not read snapshot")
	}

	return Decode(valCopy)
}

// List returns the snapshots of instance, oldest first.
func (s *Store) List(instance string) ([]*Snapshot, error) {
	var snapshots []*Snapshot
	prefix := instancePrefix(instance)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			data, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			snapshot, err := Decode(data)
			if err != nil {
				return err
			}
			snapshots = append(snapshots, snapshot)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "could not list snapshots of %s", instance)
	}

	sortByTime(snapshots)
	return snapshots, nil
}

func (s *Store) Sync() error {
	return s.db.Sync()
}

func (s *Store) Close() error {
	return s.db.Close()
}
