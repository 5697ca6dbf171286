// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sync_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/passvault/vault/internal/kv"
	"github.com/passvault/vault/internal/record"
	"github.com/passvault/vault/internal/sync"
	"github.com/passvault/vault/internal/vault"
	"github.com/passvault/vault/models"
)

func openEngine(t *testing.T, dir, name string) (*vault.Engine, kv.Store) {
	t.Helper()
	store, err := kv.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	engine, err := vault.New(store, nil, nil)
	require.NoError(t, err)
	return engine, store
}

// TestSync_PushThenPullRoundTripsPlaintext exercises Scenario F: a secret
// created on one device is pushed through a [sync.MemoryAdapter] and pulled
// onto a second, independent engine, which recovers the identical
// plaintext after unlocking — proving the adapter only ever transported
// ciphertext.
func TestSync_PushThenPullRoundTripsPlaintext(t *testing.T) {
	dir := t.TempDir()
	source, sourceStore := openEngine(t, dir, "source.db")
	dest, destStore := openEngine(t, dir, "dest.db")

	require.NoError(t, source.InitTenant("acme", "owner@acme.test", "correct horse battery staple", false))

	// The second device carries the same tenant record (same salt and
	// password hash), so unlocking there derives the same master key.
	// InitTenant on dest would draw a fresh salt and a different key.
	tenantRecord, err := sourceStore.Get(record.TenantKey("acme"))
	require.NoError(t, err)
	require.NoError(t, destStore.Put(record.TenantKey("acme"), tenantRecord))

	require.NoError(t, source.Unlock("acme", "correct horse battery staple"))
	require.NoError(t, source.Put("api-key", "sk-live-abc123", "prod", []string{"critical"}, false))

	adapter := sync.NewMemoryAdapter()

	pushConflicts, err := sync.NewManager(source, adapter).Push("acme", models.PolicyPreferNewer)
	require.NoError(t, err)
	require.Empty(t, pushConflicts)

	remoteRecords, err := adapter.Pull("acme")
	require.NoError(t, err)
	require.Len(t, remoteRecords, 1)
	require.NotContains(t, string(remoteRecords[0].Encrypted.Ciphertext), "sk-live-abc123")

	pullConflicts, err := sync.NewManager(dest, adapter).Pull("acme", models.PolicyPreferNewer)
	require.NoError(t, err)
	require.Empty(t, pullConflicts)

	require.NoError(t, dest.Unlock("acme", "correct horse battery staple"))
	value, meta, err := dest.Get("api-key", "prod")
	require.NoError(t, err)
	require.Equal(t, "sk-live-abc123", value)
	require.Equal(t, uint64(1), meta.Version)
}

// TestSync_Pull_ReportsUnresolvedManualConflict verifies that a version
// mismatch under the manual policy is surfaced to the caller rather than
// silently applied.
func TestSync_Pull_ReportsUnresolvedManualConflict(t *testing.T) {
	dir := t.TempDir()
	source, _ := openEngine(t, dir, "source.db")
	dest, _ := openEngine(t, dir, "dest.db")

	require.NoError(t, source.InitTenant("acme", "owner@acme.test", "passphrase-one", false))
	require.NoError(t, dest.InitTenant("acme", "owner@acme.test", "passphrase-two", false))

	require.NoError(t, source.Unlock("acme", "passphrase-one"))
	require.NoError(t, source.Put("token", "remote-value", "default", nil, false))

	require.NoError(t, dest.Unlock("acme", "passphrase-two"))
	require.NoError(t, dest.Put("token", "local-value", "default", nil, false))
	require.NoError(t, dest.Put("token", "local-value-v2", "default", nil, true))

	adapter := sync.NewMemoryAdapter()
	_, err := sync.NewManager(source, adapter).Push("acme", models.PolicyPreferNewer)
	require.NoError(t, err)

	conflicts, err := sync.NewManager(dest, adapter).Pull("acme", models.PolicyManual)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	require.Equal(t, models.ConflictVersionMismatch, conflicts[0].Type)

	value, _, err := dest.Get("token", "default")
	require.NoError(t, err)
	require.Equal(t, "local-value-v2", value)
}
