// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package sync implements the sync adapter contract the storage engine
// exposes to remote back-ends (spec §4.7): enumerate local secrets, apply
// a remote record, and read/write sync metadata, plus conflict detection
// and resolution. Ciphertext is transported verbatim — the manager never
// re-encrypts a record during sync, which is what lets envelope
// encryption cross devices without exporting the master key. Concrete
// transports (object storage, relational back-ends) are out of scope;
// this package models the contract and the policy layer above it.
package sync
