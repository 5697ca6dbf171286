// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sync

import (
	"fmt"
	"time"

	"github.com/passvault/vault/internal/record"
	"github.com/passvault/vault/models"
)

// Manager drives one push or pull against a remote [Adapter], borrowing a
// [LocalStore] for the duration of the call (spec §9: scoped, not owned).
type Manager struct {
	store   LocalStore
	adapter Adapter
}

// NewManager builds a Manager over store and adapter.
func NewManager(store LocalStore, adapter Adapter) *Manager {
	return &Manager{store: store, adapter: adapter}
}

// Push sends every local secret for tenantID to the remote back-end.
// Unresolved (manual-policy) conflicts are skipped and returned to the
// caller instead of being pushed.
func (m *Manager) Push(tenantID string, policy models.ConflictResolutionPolicy) ([]Conflict, error) {
	local, err := m.store.EnumerateSecrets(tenantID)
	if err != nil {
		return nil, fmt.Errorf("sync: enumerate local secrets: %w", err)
	}

	remote, err := m.adapter.Pull(tenantID)
	if err != nil {
		return nil, fmt.Errorf("sync: pull remote for conflict check: %w", err)
	}

	conflicts := DetectConflicts(local, remote)
	conflictByAddress := make(map[string]Conflict, len(conflicts))
	for _, c := range conflicts {
		conflictByAddress[address(c.Local.Metadata)] = c
	}

	var (
		toPush    []record.Secret
		unresolved []Conflict
	)
	for _, secret := range local {
		if conflict, isConflict := conflictByAddress[address(secret.Metadata)]; isConflict {
			winner, ok := Resolve(conflict, policy)
			if !ok {
				unresolved = append(unresolved, conflict)
				continue
			}
			toPush = append(toPush, winner)
			continue
		}
		toPush = append(toPush, secret)
	}

	if err := m.adapter.Push(toPush); err != nil {
		return nil, fmt.Errorf("sync: push: %w", err)
	}

	now := time.Now().UTC()
	for _, secret := range toPush {
		meta := record.SyncMetadata{
			TenantID:      secret.Metadata.TenantID,
			Namespace:     secret.Metadata.Namespace,
			Key:           secret.Metadata.Key,
			RemoteVersion: secret.Metadata.Version,
			LastSyncedAt:  now,
		}
		if err := m.store.SetSyncMetadata(meta); err != nil {
			return nil, fmt.Errorf("sync: record metadata: %w", err)
		}
	}

	if err := m.store.RecordSyncPush(tenantID, len(toPush)); err != nil {
		return nil, fmt.Errorf("sync: record push audit entry: %w", err)
	}

	return unresolved, nil
}

// Pull fetches the remote back-end's records for tenantID and applies
// them locally, resolving conflicts by policy. Records present only
// remotely are applied directly; unresolved (manual-policy) conflicts are
// left untouched locally and returned to the caller.
func (m *Manager) Pull(tenantID string, policy models.ConflictResolutionPolicy) ([]Conflict, error) {
	remote, err := m.adapter.Pull(tenantID)
	if err != nil {
		return nil, fmt.Errorf("sync: pull: %w", err)
	}
	local, err := m.store.EnumerateSecrets(tenantID)
	if err != nil {
		return nil, fmt.Errorf("sync: enumerate local secrets: %w", err)
	}

	conflicts := DetectConflicts(local, remote)
	conflictByAddress := make(map[string]Conflict, len(conflicts))
	for _, c := range conflicts {
		conflictByAddress[address(c.Local.Metadata)] = c
	}

	var unresolved []Conflict
	applied := 0
	now := time.Now().UTC()
	for _, secret := range remote {
		if conflict, isConflict := conflictByAddress[address(secret.Metadata)]; isConflict {
			winner, ok := Resolve(conflict, policy)
			if !ok {
				unresolved = append(unresolved, conflict)
				continue
			}
			secret = winner
		}

		if err := m.store.ApplyRemote(secret); err != nil {
			return nil, fmt.Errorf("sync: apply remote record: %w", err)
		}
		if err := m.store.SetSyncMetadata(record.SyncMetadata{
			TenantID:      secret.Metadata.TenantID,
			Namespace:     secret.Metadata.Namespace,
			Key:           secret.Metadata.Key,
			RemoteVersion: secret.Metadata.Version,
			LastSyncedAt:  now,
		}); err != nil {
			return nil, fmt.Errorf("sync: record metadata: %w", err)
		}
		applied++
	}

	if err := m.store.RecordSyncPull(tenantID, applied); err != nil {
		return nil, fmt.Errorf("sync: record pull audit entry: %w", err)
	}

	return unresolved, nil
}
