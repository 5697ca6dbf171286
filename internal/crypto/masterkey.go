// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// EncryptedBlob is the self-describing record produced by [MasterKey.Encrypt]
// (spec §4.2). FormatVersion is currently always 1; Salt is carried but not
// consumed by the AEAD itself — it exists so a future envelope scheme can
// rewrap blobs without a schema migration.
type EncryptedBlob struct {
	Algorithm     Suite
	Ciphertext    []byte
	Nonce         []byte
	Salt          [saltLen]byte
	FormatVersion uint8
}

// MasterKey wraps 32 bytes of key material and the AEAD suite it was derived
// for. Its only operations are [MasterKey.Encrypt] and [MasterKey.Decrypt].
type MasterKey struct {
	key   *SecretBytes
	suite Suite
}

// NewMasterKey wraps key (which must be 32 bytes) for suite. The caller's
// slice is copied; NewMasterKey does not take ownership of it.
func NewMasterKey(key []byte, suite Suite) (*MasterKey, error) {
	if len(key) != keyLen {
		return nil, fmt.Errorf("crypto: master key must be %d bytes, got %d", keyLen, len(key))
	}
	return &MasterKey{key: NewSecretBytes(key), suite: suite}, nil
}

// DeriveMasterKey derives a master key from passphrase and salt via
// Argon2id (spec §4.1) and binds it to suite.
func DeriveMasterKey(passphrase string, salt [saltLen]byte, suite Suite, params Argon2Params) *MasterKey {
	return &MasterKey{key: NewSecretBytes(DeriveKeyArgon2id(passphrase, salt, params)), suite: suite}
}

// GenerateMasterKey creates a fresh random master key for suite — used to
// mint a one-off data-encryption key (DEK) in envelope encryption.
func GenerateMasterKey(suite Suite) (*MasterKey, error) {
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("crypto: generate master key: %w", err)
	}
	return &MasterKey{key: NewSecretBytes(key), suite: suite}, nil
}

// Suite reports the AEAD suite this key was bound to.
func (m *MasterKey) Suite() Suite { return m.suite }

// ExposeKey returns the raw 32 key bytes. Narrow, explicit accessor: the
// only legitimate callers are the cached-session-key blob path (§4.5) and
// envelope DEK wrap.
func (m *MasterKey) ExposeKey() []byte { return m.key.ExposeBytes() }

// Destroy zeroes the held key bytes.
func (m *MasterKey) Destroy() { m.key.Destroy() }

// Encrypt authenticated-encrypts plaintext, returning a self-describing
// [EncryptedBlob]. A fresh nonce and a fresh carried salt are drawn on every
// call (spec §4.1, §8 property 4).
func (m *MasterKey) Encrypt(plaintext []byte) (EncryptedBlob, error) {
	aead, err := newAEAD(m.suite, m.key.ExposeBytes())
	if err != nil {
		return EncryptedBlob{}, err
	}

	nonce, err := GenerateNonce(aead.NonceSize())
	if err != nil {
		return EncryptedBlob{}, err
	}
	salt, err := GenerateSalt()
	if err != nil {
		return EncryptedBlob{}, err
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	return EncryptedBlob{
		Algorithm:     m.suite,
		Ciphertext:    ciphertext,
		Nonce:         nonce,
		Salt:          salt,
		FormatVersion: 1,
	}, nil
}

// Decrypt verifies and decrypts blob. It returns [ErrSuiteMismatch] if
// blob.Algorithm does not match the key's own suite, and
// [ErrAuthenticationFailed] if the AEAD tag does not verify — in neither
// case is any plaintext returned.
func (m *MasterKey) Decrypt(blob EncryptedBlob) ([]byte, error) {
	if blob.Algorithm != m.suite {
		return nil, ErrSuiteMismatch
	}

	aead, err := newAEAD(m.suite, m.key.ExposeBytes())
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, blob.Nonce, blob.Ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// MarshalBinary encodes blob per the wire format in spec §6:
//
//	algorithm_tag(1) | nonce_len(1) | nonce | salt(32) | format_version(1) | ciphertext_len(varint) | ciphertext
func (b EncryptedBlob) MarshalBinary() ([]byte, error) {
	if len(b.Nonce) > 255 {
		return nil, fmt.Errorf("crypto: nonce too long to encode: %d bytes", len(b.Nonce))
	}

	var buf bytes.Buffer
	buf.WriteByte(byte(b.Algorithm))
	buf.WriteByte(byte(len(b.Nonce)))
	buf.Write(b.Nonce)
	buf.Write(b.Salt[:])
	buf.WriteByte(b.FormatVersion)

	var varint [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(varint[:], uint64(len(b.Ciphertext)))
	buf.Write(varint[:n])
	buf.Write(b.Ciphertext)

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes the wire format produced by
// [EncryptedBlob.MarshalBinary].
func (b *EncryptedBlob) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	algo, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("crypto: read algorithm tag: %w", err)
	}
	nonceLen, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("crypto: read nonce length: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return fmt.Errorf("crypto: read nonce: %w", err)
	}
	var salt [saltLen]byte
	if _, err := io.ReadFull(r, salt[:]); err != nil {
		return fmt.Errorf("crypto: read salt: %w", err)
	}
	version, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("crypto: read format version: %w", err)
	}
	ctLen, err := binary.ReadUvarint(r)
	if err != nil {
		return fmt.Errorf("crypto: read ciphertext length: %w", err)
	}
	ciphertext := make([]byte, ctLen)
	if _, err := io.ReadFull(r, ciphertext); err != nil {
		return fmt.Errorf("crypto: read ciphertext: %w", err)
	}

	b.Algorithm = Suite(algo)
	b.Nonce = nonce
	b.Salt = salt
	b.FormatVersion = version
	b.Ciphertext = ciphertext
	return nil
}
