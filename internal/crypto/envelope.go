// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "fmt"

// KeyEncryptionKey wraps and unwraps data-encryption keys for envelope
// encryption (spec §4.2). KeyID routes a wrapped DEK back to the KEK that
// can unwrap it; it is never used as authentication input.
type KeyEncryptionKey interface {
	EncryptDEK(dek []byte) (EncryptedBlob, error)
	DecryptDEK(blob EncryptedBlob) ([]byte, error)
	KeyID() string
}

// LocalKeyEncryptionKey is a [KeyEncryptionKey] backed by an in-process
// [MasterKey] — the only kind the engine needs, since envelope encryption
// here exists to let ciphertext be rewrapped locally, not to talk to an
// external KMS.
type LocalKeyEncryptionKey struct {
	master *MasterKey
	id     string
}

// NewLocalKeyEncryptionKey builds a [LocalKeyEncryptionKey] identified by id.
func NewLocalKeyEncryptionKey(master *MasterKey, id string) *LocalKeyEncryptionKey {
	return &LocalKeyEncryptionKey{master: master, id: id}
}

func (k *LocalKeyEncryptionKey) EncryptDEK(dek []byte) (EncryptedBlob, error) {
	return k.master.Encrypt(dek)
}

func (k *LocalKeyEncryptionKey) DecryptDEK(blob EncryptedBlob) ([]byte, error) {
	return k.master.Decrypt(blob)
}

func (k *LocalKeyEncryptionKey) KeyID() string { return k.id }

// Envelope is the output of [EnvelopeEncrypt]: a data-encryption key wrapped
// under a key-encryption key, alongside the payload it encrypted (spec §4.2).
type Envelope struct {
	EncryptedDEK  EncryptedBlob
	EncryptedData EncryptedBlob
	KEKID         string
	Algorithm     Suite
}

// EnvelopeEncrypt generates a fresh DEK for suite, encrypts plaintext with
// it, then wraps the DEK under kek.
func EnvelopeEncrypt(kek KeyEncryptionKey, plaintext []byte, suite Suite) (Envelope, error) {
	dek, err := GenerateMasterKey(suite)
	if err != nil {
		return Envelope{}, err
	}
	defer dek.Destroy()

	encryptedData, err := dek.Encrypt(plaintext)
	if err != nil {
		return Envelope{}, err
	}

	encryptedDEK, err := kek.EncryptDEK(dek.ExposeKey())
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		EncryptedDEK:  encryptedDEK,
		EncryptedData: encryptedData,
		KEKID:         kek.KeyID(),
		Algorithm:     suite,
	}, nil
}

// EnvelopeDecrypt unwraps env.EncryptedDEK under kek, then decrypts
// env.EncryptedData with the recovered DEK.
func EnvelopeDecrypt(kek KeyEncryptionKey, env Envelope) ([]byte, error) {
	dekBytes, err := kek.DecryptDEK(env.EncryptedDEK)
	if err != nil {
		return nil, err
	}
	if len(dekBytes) != keyLen {
		return nil, fmt.Errorf("%w: unwrapped DEK has length %d, want %d", ErrAuthenticationFailed, len(dekBytes), keyLen)
	}

	dek, err := NewMasterKey(dekBytes, env.Algorithm)
	if err != nil {
		return nil, err
	}
	defer dek.Destroy()

	return dek.Decrypt(env.EncryptedData)
}
