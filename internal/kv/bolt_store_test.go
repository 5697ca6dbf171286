// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package kv

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStore_PutGetDelete(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Put("secret:t1:ns:k1", []byte("value-1")))

	got, err := store.Get("secret:t1:ns:k1")
	require.NoError(t, err)
	require.Equal(t, []byte("value-1"), got)

	require.NoError(t, store.Delete("secret:t1:ns:k1"))

	_, err = store.Get("secret:t1:ns:k1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBoltStore_Get_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBoltStore_PrefixScan_OrderedAndScoped(t *testing.T) {
	store := openTestStore(t)

	keys := []string{"secret:t1:ns:b", "secret:t1:ns:a", "secret:t1:ns:c", "secret:t2:ns:z"}
	for _, k := range keys {
		require.NoError(t, store.Put(k, []byte(k)))
	}

	var seen []string
	err := store.PrefixScan("secret:t1:ns:", func(key string, value []byte) bool {
		seen = append(seen, key)
		return true
	})
	require.NoError(t, err)
	require.Equal(t, []string{"secret:t1:ns:a", "secret:t1:ns:b", "secret:t1:ns:c"}, seen)
}

func TestBoltStore_PrefixScan_EarlyStop(t *testing.T) {
	store := openTestStore(t)

	for _, k := range []string{"a:1", "a:2", "a:3"} {
		require.NoError(t, store.Put(k, []byte(k)))
	}

	var seen []string
	err := store.PrefixScan("a:", func(key string, value []byte) bool {
		seen = append(seen, key)
		return len(seen) < 2
	})
	require.NoError(t, err)
	require.Len(t, seen, 2)
}

func TestBoltStore_Checksum_HealthyStore(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Put("k", []byte("v")))

	ok, inconsistencies, err := store.Checksum()
	require.NoError(t, err)
	require.True(t, ok)
	require.Zero(t, inconsistencies)
}

func TestBoltStore_Closed_RejectsOperations(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	err := store.Put("k", []byte("v"))
	require.True(t, errors.Is(err, ErrClosed))
}
