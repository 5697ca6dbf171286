// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package kv

import (
	"bytes"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

var dataBucket = []byte("data")

// BoltStore is a [Store] backed by a single bbolt file (spec §4.3). All
// operations run inside a bbolt transaction, so a Put or Delete is durable
// the moment it returns.
type BoltStore struct {
	db     *bolt.DB
	closed atomic.Bool
}

// Open opens (creating if necessary) the bbolt data file at path.
func Open(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(dataBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create bucket: %v", ErrIO, err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) guard() error {
	if s.closed.Load() {
		return ErrClosed
	}
	return nil
}

func (s *BoltStore) Put(key string, value []byte) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(dataBucket).Put([]byte(key), value)
	}); err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrIO, key, err)
	}
	return nil
}

func (s *BoltStore) Get(key string) ([]byte, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(dataBucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrIO, key, err)
	}
	return value, nil
}

func (s *BoltStore) Delete(key string) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(dataBucket).Delete([]byte(key))
	}); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrIO, key, err)
	}
	return nil
}

func (s *BoltStore) PrefixScan(prefix string, fn func(key string, value []byte) bool) error {
	if err := s.guard(); err != nil {
		return err
	}
	pfx := []byte(prefix)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(dataBucket).Cursor()
		for k, v := c.Seek(pfx); k != nil && bytes.HasPrefix(k, pfx); k, v = c.Next() {
			if !fn(string(k), append([]byte(nil), v...)) {
				break
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: prefix scan %s: %v", ErrIO, prefix, err)
	}
	return nil
}

func (s *BoltStore) ForEach(fn func(key string, value []byte) bool) error {
	return s.PrefixScan("", fn)
}

// Checksum runs bbolt's built-in page-consistency check (spec §4.4). A
// non-nil error from the check channel is treated as one inconsistency;
// the store remains usable regardless of the result.
func (s *BoltStore) Checksum() (ok bool, inconsistencies int, err error) {
	if err := s.guard(); err != nil {
		return false, 0, err
	}
	viewErr := s.db.View(func(tx *bolt.Tx) error {
		for checkErr := range tx.Check() {
			if checkErr != nil {
				inconsistencies++
			}
		}
		return nil
	})
	if viewErr != nil {
		return false, inconsistencies, fmt.Errorf("%w: checksum: %v", ErrIO, viewErr)
	}
	return inconsistencies == 0, inconsistencies, nil
}

func (s *BoltStore) Flush() error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.db.Sync(); err != nil {
		return fmt.Errorf("%w: flush: %v", ErrIO, err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrIO, err)
	}
	return nil
}
