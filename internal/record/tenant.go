// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/passvault/vault/internal/crypto"
)

// Quotas bounds the resources a tenant may consume (spec §4.2 supplemental).
// A zero value means unlimited.
type Quotas struct {
	MaxSecrets int
}

// TenantSettings holds the per-tenant policy knobs chosen at init time:
// which AEAD suite and Argon2 tuning protect its master key, and whether
// audit logging and sync are enabled.
type TenantSettings struct {
	Suite        crypto.Suite
	Argon2Params crypto.Argon2Params
	AuditEnabled bool
	SyncEnabled  bool
	Quotas       Quotas
}

// Tenant is the root record of one isolated vault namespace. PasswordSalt
// and PasswordHash authenticate the unlock passphrase; they never appear
// outside this record (spec §4.2).
type Tenant struct {
	ID           string
	Name         string
	AdminEmail   string
	CreatedAt    time.Time
	PasswordSalt [32]byte
	PasswordHash [32]byte
	Settings     TenantSettings
}

// Encode serializes t to its compact binary wire form.
func (t Tenant) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, t.ID); err != nil {
		return nil, err
	}
	if err := writeString(&buf, t.Name); err != nil {
		return nil, err
	}
	if err := writeString(&buf, t.AdminEmail); err != nil {
		return nil, err
	}
	if err := writeTime(&buf, t.CreatedAt); err != nil {
		return nil, err
	}
	if _, err := buf.Write(t.PasswordSalt[:]); err != nil {
		return nil, err
	}
	if _, err := buf.Write(t.PasswordHash[:]); err != nil {
		return nil, err
	}
	if err := buf.WriteByte(byte(t.Settings.Suite)); err != nil {
		return nil, err
	}
	if err := writeUvarint(&buf, uint64(t.Settings.Argon2Params.MemoryKiB)); err != nil {
		return nil, err
	}
	if err := writeUvarint(&buf, uint64(t.Settings.Argon2Params.TimeCost)); err != nil {
		return nil, err
	}
	if err := buf.WriteByte(t.Settings.Argon2Params.Parallelism); err != nil {
		return nil, err
	}
	if err := writeBool(&buf, t.Settings.AuditEnabled); err != nil {
		return nil, err
	}
	if err := writeBool(&buf, t.Settings.SyncEnabled); err != nil {
		return nil, err
	}
	if err := writeUvarint(&buf, uint64(t.Settings.Quotas.MaxSecrets)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeTenant parses a binary wire form written by [Tenant.Encode].
func DecodeTenant(data []byte) (Tenant, error) {
	r := bytes.NewReader(data)
	var t Tenant
	var err error

	if t.ID, err = readString(r); err != nil {
		return Tenant{}, err
	}
	if t.Name, err = readString(r); err != nil {
		return Tenant{}, err
	}
	if t.AdminEmail, err = readString(r); err != nil {
		return Tenant{}, err
	}
	if t.CreatedAt, err = readTime(r); err != nil {
		return Tenant{}, err
	}
	if _, err := io.ReadFull(r, t.PasswordSalt[:]); err != nil {
		return Tenant{}, fmt.Errorf("record: read tenant password salt: %w", err)
	}
	if _, err := io.ReadFull(r, t.PasswordHash[:]); err != nil {
		return Tenant{}, fmt.Errorf("record: read tenant password hash: %w", err)
	}
	suite, err := r.ReadByte()
	if err != nil {
		return Tenant{}, fmt.Errorf("record: read tenant suite: %w", err)
	}
	t.Settings.Suite = crypto.Suite(suite)

	memKiB, err := readUvarint(r)
	if err != nil {
		return Tenant{}, err
	}
	t.Settings.Argon2Params.MemoryKiB = uint32(memKiB)

	timeCost, err := readUvarint(r)
	if err != nil {
		return Tenant{}, err
	}
	t.Settings.Argon2Params.TimeCost = uint32(timeCost)

	parallelism, err := r.ReadByte()
	if err != nil {
		return Tenant{}, fmt.Errorf("record: read tenant parallelism: %w", err)
	}
	t.Settings.Argon2Params.Parallelism = parallelism

	if t.Settings.AuditEnabled, err = readBool(r); err != nil {
		return Tenant{}, err
	}
	if t.Settings.SyncEnabled, err = readBool(r); err != nil {
		return Tenant{}, err
	}
	maxSecrets, err := readUvarint(r)
	if err != nil {
		return Tenant{}, err
	}
	t.Settings.Quotas.MaxSecrets = int(maxSecrets)

	return t, nil
}
