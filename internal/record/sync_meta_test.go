// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"testing"
	"time"
)

func TestSyncMetadata_EncodeDecodeRoundTrip(t *testing.T) {
	want := SyncMetadata{
		TenantID:      "tenant-1",
		Namespace:     "prod",
		Key:           "api",
		RemoteVersion: 7,
		LastSyncedAt:  time.Now().UTC(),
	}

	data, err := want.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := DecodeSyncMetadata(data)
	if err != nil {
		t.Fatalf("DecodeSyncMetadata: %v", err)
	}

	if got.TenantID != want.TenantID || got.Namespace != want.Namespace || got.Key != want.Key {
		t.Fatalf("identity fields mismatch: got %+v, want %+v", got, want)
	}
	if got.RemoteVersion != want.RemoteVersion {
		t.Fatalf("RemoteVersion = %d, want %d", got.RemoteVersion, want.RemoteVersion)
	}
	if !got.LastSyncedAt.Equal(want.LastSyncedAt) {
		t.Fatalf("LastSyncedAt = %v, want %v", got.LastSyncedAt, want.LastSyncedAt)
	}
}
