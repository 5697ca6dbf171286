// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package kv

import "errors"

// Sentinel errors returned by [Store] implementations. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when Get targets a key that does not exist.
	ErrNotFound = errors.New("kv: key not found")

	// ErrIO is returned when an underlying disk operation (open, read,
	// write, sync) fails.
	ErrIO = errors.New("kv: io error")

	// ErrCorrupted names a damaged data file. [BoltStore] does not return
	// it: [BoltStore.Checksum] reports damage through its ok and
	// inconsistencies results instead.
	ErrCorrupted = errors.New("kv: store corrupted")

	// ErrClosed is returned when an operation is attempted after [Store.Close].
	ErrClosed = errors.New("kv: store is closed")
)
