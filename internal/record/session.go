// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"bytes"
	"fmt"

	"github.com/passvault/vault/internal/crypto"
)

// SessionKeyBlob is the cached copy of a tenant's master key written inside
// the vault data file itself, guarded by the OS-level session ticket file
// (spec §4.5). It lets a subsequent process re-derive the master key
// without re-prompting for the passphrase, as long as the ticket is still
// valid. This is distinct from the session ticket, which never touches the
// embedded store.
type SessionKeyBlob struct {
	TenantID string
	Suite    crypto.Suite
	Key      []byte
}

// Encode serializes b to its compact binary wire form.
func (b SessionKeyBlob) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, b.TenantID); err != nil {
		return nil, err
	}
	if err := buf.WriteByte(byte(b.Suite)); err != nil {
		return nil, err
	}
	if err := writeBytes(&buf, b.Key); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSessionKeyBlob parses a binary wire form written by
// [SessionKeyBlob.Encode].
func DecodeSessionKeyBlob(data []byte) (SessionKeyBlob, error) {
	r := bytes.NewReader(data)
	var b SessionKeyBlob
	var err error

	if b.TenantID, err = readString(r); err != nil {
		return SessionKeyBlob{}, err
	}
	suite, err := r.ReadByte()
	if err != nil {
		return SessionKeyBlob{}, fmt.Errorf("record: read session blob suite: %w", err)
	}
	b.Suite = crypto.Suite(suite)
	if b.Key, err = readBytes(r); err != nil {
		return SessionKeyBlob{}, err
	}
	return b, nil
}
