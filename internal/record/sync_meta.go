// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"bytes"
	"time"
)

// SyncMetadata is the local half of the sync adapter contract (spec
// §4.7): the last remote version and sync time the engine observed for
// one (tenant, namespace, key) address. A conflict is detected when the
// current local secret's version no longer matches RemoteVersion.
type SyncMetadata struct {
	TenantID     string
	Namespace    string
	Key          string
	RemoteVersion uint64
	LastSyncedAt time.Time
}

// Encode serializes m to its compact binary wire form.
func (m SyncMetadata) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, m.TenantID); err != nil {
		return nil, err
	}
	if err := writeString(&buf, m.Namespace); err != nil {
		return nil, err
	}
	if err := writeString(&buf, m.Key); err != nil {
		return nil, err
	}
	if err := writeUvarint(&buf, m.RemoteVersion); err != nil {
		return nil, err
	}
	if err := writeTime(&buf, m.LastSyncedAt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSyncMetadata parses a binary wire form written by
// [SyncMetadata.Encode].
func DecodeSyncMetadata(data []byte) (SyncMetadata, error) {
	r := bytes.NewReader(data)
	var m SyncMetadata
	var err error

	if m.TenantID, err = readString(r); err != nil {
		return SyncMetadata{}, err
	}
	if m.Namespace, err = readString(r); err != nil {
		return SyncMetadata{}, err
	}
	if m.Key, err = readString(r); err != nil {
		return SyncMetadata{}, err
	}
	if m.RemoteVersion, err = readUvarint(r); err != nil {
		return SyncMetadata{}, err
	}
	if m.LastSyncedAt, err = readTime(r); err != nil {
		return SyncMetadata{}, err
	}
	return m, nil
}
