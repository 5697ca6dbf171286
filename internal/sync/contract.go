// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sync

import "github.com/passvault/vault/internal/record"

// LocalStore is the surface the sync [Manager] borrows from the storage
// engine (spec §4.7). It is satisfied by *vault.Engine without either
// package importing the other; the manager borrows it for the duration of
// one push or pull and does not own it (spec §9: scoped handle, not a
// cyclic reference).
type LocalStore interface {
	EnumerateSecrets(tenantID string) ([]record.Secret, error)
	ApplyRemote(secret record.Secret) error
	GetSyncMetadata(tenantID, namespace, key string) (record.SyncMetadata, error)
	SetSyncMetadata(meta record.SyncMetadata) error

	// RecordSyncPush and RecordSyncPull append the engine's own
	// sync_push/sync_pull audit entries (spec §3 closed vocabulary). The
	// manager calls these after a push or pull completes so C4's "every
	// mutating call emits an entry through C6" rule covers sync the same
	// as secret writes.
	RecordSyncPush(tenantID string, count int) error
	RecordSyncPull(tenantID string, count int) error
}

// Adapter is the contract a remote back-end implements. Push and Pull
// receive and return wire-format secret records verbatim; the manager
// never asks an adapter to decrypt or re-encrypt anything.
type Adapter interface {
	// Push sends records to the remote back-end. It reports only overall
	// success or failure, not which individual records were accepted.
	Push(records []record.Secret) error

	// Pull retrieves the remote back-end's current records for tenantID.
	Pull(tenantID string) ([]record.Secret, error)
}
