// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"testing"
	"time"

	"github.com/passvault/vault/internal/crypto"
)

func TestTenant_EncodeDecodeRoundTrip(t *testing.T) {
	want := Tenant{
		ID:         "tenant-1",
		Name:       "Acme Corp",
		AdminEmail: "admin@acme.test",
		CreatedAt:  time.Now().UTC().Truncate(time.Nanosecond),
		Settings: TenantSettings{
			Suite:        crypto.SuiteChaCha20Poly1305,
			Argon2Params: crypto.DefaultArgon2Params(),
			AuditEnabled: true,
			SyncEnabled:  false,
			Quotas:       Quotas{MaxSecrets: 500},
		},
	}
	copy(want.PasswordSalt[:], []byte("0123456789abcdef0123456789abcdef"))
	copy(want.PasswordHash[:], []byte("fedcba9876543210fedcba9876543210"))

	data, err := want.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := DecodeTenant(data)
	if err != nil {
		t.Fatalf("DecodeTenant: %v", err)
	}

	if got.ID != want.ID || got.Name != want.Name || got.AdminEmail != want.AdminEmail {
		t.Fatalf("identity fields mismatch: got %+v, want %+v", got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if got.PasswordSalt != want.PasswordSalt || got.PasswordHash != want.PasswordHash {
		t.Fatalf("password material mismatch")
	}
	if got.Settings != want.Settings {
		t.Fatalf("settings mismatch: got %+v, want %+v", got.Settings, want.Settings)
	}
}
