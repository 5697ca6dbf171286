// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"errors"
	"fmt"

	"github.com/passvault/vault/internal/kv"
	"github.com/passvault/vault/internal/record"
	"github.com/passvault/vault/models"
)

// EnumerateSecrets returns every secret record for tenantID, ciphertext
// untouched, for a sync back-end to transport (spec §4.7). Unlike
// [Engine.List] this does not require the engine to be unlocked: sync can
// enumerate and push ciphertext without ever holding the master key.
func (e *Engine) EnumerateSecrets(tenantID string) ([]record.Secret, error) {
	var secrets []record.Secret
	err := e.store.PrefixScan(record.SecretTenantPrefix(tenantID), func(key string, value []byte) bool {
		secret, decodeErr := record.DecodeSecret(value)
		if decodeErr != nil {
			return true
		}
		secrets = append(secrets, secret)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	return secrets, nil
}

// ApplyRemote writes secret verbatim under its own (tenant, namespace,
// key) address, without re-encrypting or validating against the engine's
// own master key — the engine never needs to be unlocked to apply a
// remote record, which is the property that keeps the master key off the
// wire.
func (e *Engine) ApplyRemote(secret record.Secret) error {
	storageKey := record.SecretKey(secret.Metadata.TenantID, secret.Metadata.Namespace, secret.Metadata.Key)
	data, err := secret.Encode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if err := e.store.Put(storageKey, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	return e.flush()
}

// GetSyncMetadata returns the last-observed-remote sync metadata for
// (tenantID, namespace, key). If none has been recorded yet it returns
// metadata carrying only that address, with a zero RemoteVersion and
// LastSyncedAt.
func (e *Engine) GetSyncMetadata(tenantID, namespace, key string) (record.SyncMetadata, error) {
	data, err := e.store.Get(record.SyncMetaKey(tenantID, namespace, key))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return record.SyncMetadata{TenantID: tenantID, Namespace: namespace, Key: key}, nil
		}
		return record.SyncMetadata{}, fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	meta, err := record.DecodeSyncMetadata(data)
	if err != nil {
		return record.SyncMetadata{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return meta, nil
}

// SetSyncMetadata persists meta as the new last-observed-remote state for
// its (tenant, namespace, key) address.
func (e *Engine) SetSyncMetadata(meta record.SyncMetadata) error {
	data, err := meta.Encode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	key := record.SyncMetaKey(meta.TenantID, meta.Namespace, meta.Key)
	if err := e.store.Put(key, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	return e.flush()
}

// RecordSyncPush appends a sync_push audit entry for tenantID, noting how
// many records were sent. Like [Engine.EnumerateSecrets], this does not
// require the engine to be unlocked.
func (e *Engine) RecordSyncPush(tenantID string, count int) error {
	return e.recordSyncEvent(tenantID, models.EventSyncPush, count)
}

// RecordSyncPull appends a sync_pull audit entry for tenantID, noting how
// many records were applied locally.
func (e *Engine) RecordSyncPull(tenantID string, count int) error {
	return e.recordSyncEvent(tenantID, models.EventSyncPull, count)
}

func (e *Engine) recordSyncEvent(tenantID string, eventType models.EventType, count int) error {
	e.mu.Lock()
	userID := e.currentUserID
	e.mu.Unlock()

	if err := e.audit.Append(record.AuditEntry{
		TenantID:     tenantID,
		EventType:    string(eventType),
		Description:  fmt.Sprintf("%s: %d record(s)", eventType, count),
		UserID:       userID,
		ResourceType: "tenant",
		ResourceID:   tenantID,
	}); err != nil {
		return err
	}

	e.log.Info().
		Str("tenant_id", tenantID).
		Str("event_type", string(eventType)).
		Int("count", count).
		Msg("sync event recorded")

	return e.flush()
}
