// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package kv defines the embedded ordered key-value store contract the
// storage engine is built on (spec §4.3) and a [BoltStore] implementation
// backed by go.etcd.io/bbolt: a single-file, transactional B+tree store
// that gives the engine atomic Put/Delete, ordered prefix scans via
// cursors, and a real integrity-check primitive (bbolt's page consistency
// checker) for [Store.Checksum].
package kv
