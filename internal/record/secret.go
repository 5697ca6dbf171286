// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/passvault/vault/internal/crypto"
)

// SecretMetadata describes a secret without exposing its plaintext or
// ciphertext (spec §4.2). It is what List and Search operations return.
type SecretMetadata struct {
	ID        uuid.UUID
	TenantID  string
	Namespace string
	Key       string
	Version   uint64
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	Tags      []string
}

// Secret pairs a secret's metadata with its encrypted payload. This is the
// value stored at a secret:<tenant>:<namespace>:<key> record.
type Secret struct {
	Metadata  SecretMetadata
	Encrypted crypto.EncryptedBlob
}

// Encode serializes s to its compact binary wire form.
func (s Secret) Encode() ([]byte, error) {
	var buf bytes.Buffer

	idBytes, err := s.Metadata.ID.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("record: marshal secret id: %w", err)
	}
	if err := writeBytes(&buf, idBytes); err != nil {
		return nil, err
	}
	if err := writeString(&buf, s.Metadata.TenantID); err != nil {
		return nil, err
	}
	if err := writeString(&buf, s.Metadata.Namespace); err != nil {
		return nil, err
	}
	if err := writeString(&buf, s.Metadata.Key); err != nil {
		return nil, err
	}
	if err := writeUvarint(&buf, s.Metadata.Version); err != nil {
		return nil, err
	}
	if err := writeTime(&buf, s.Metadata.CreatedAt); err != nil {
		return nil, err
	}
	if err := writeTime(&buf, s.Metadata.UpdatedAt); err != nil {
		return nil, err
	}
	if err := writeString(&buf, s.Metadata.CreatedBy); err != nil {
		return nil, err
	}
	if err := writeStringSlice(&buf, s.Metadata.Tags); err != nil {
		return nil, err
	}

	blob, err := s.Encrypted.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("record: marshal secret payload: %w", err)
	}
	if err := writeBytes(&buf, blob); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeSecret parses a binary wire form written by [Secret.Encode].
func DecodeSecret(data []byte) (Secret, error) {
	r := bytes.NewReader(data)
	var s Secret
	var err error

	idBytes, err := readBytes(r)
	if err != nil {
		return Secret{}, err
	}
	if err := s.Metadata.ID.UnmarshalBinary(idBytes); err != nil {
		return Secret{}, fmt.Errorf("record: unmarshal secret id: %w", err)
	}
	if s.Metadata.TenantID, err = readString(r); err != nil {
		return Secret{}, err
	}
	if s.Metadata.Namespace, err = readString(r); err != nil {
		return Secret{}, err
	}
	if s.Metadata.Key, err = readString(r); err != nil {
		return Secret{}, err
	}
	if s.Metadata.Version, err = readUvarint(r); err != nil {
		return Secret{}, err
	}
	if s.Metadata.CreatedAt, err = readTime(r); err != nil {
		return Secret{}, err
	}
	if s.Metadata.UpdatedAt, err = readTime(r); err != nil {
		return Secret{}, err
	}
	if s.Metadata.CreatedBy, err = readString(r); err != nil {
		return Secret{}, err
	}
	if s.Metadata.Tags, err = readStringSlice(r); err != nil {
		return Secret{}, err
	}

	blob, err := readBytes(r)
	if err != nil {
		return Secret{}, err
	}
	if err := s.Encrypted.UnmarshalBinary(blob); err != nil {
		return Secret{}, fmt.Errorf("record: unmarshal secret payload: %w", err)
	}

	return s, nil
}

// HasTag reports whether m carries tag, used by the search and list filters.
func (m SecretMetadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
