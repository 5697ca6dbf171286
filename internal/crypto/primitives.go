// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// Suite identifies one of the two interchangeable AEAD suites a tenant may
// select (spec §4.1). Both use 256-bit keys and 96-bit nonces.
type Suite uint8

const (
	SuiteAES256GCM Suite = iota
	SuiteChaCha20Poly1305
)

// String renders the suite as the lowercase config-file spelling used by
// security.encryption_algorithm (spec §6).
func (s Suite) String() string {
	switch s {
	case SuiteAES256GCM:
		return "aes256gcm"
	case SuiteChaCha20Poly1305:
		return "chacha20poly1305"
	default:
		return "unknown"
	}
}

// ParseSuite maps the config-file spelling to a [Suite]. An empty string
// defaults to AES-256-GCM.
func ParseSuite(s string) (Suite, error) {
	switch s {
	case "", "aes256gcm":
		return SuiteAES256GCM, nil
	case "chacha20poly1305":
		return SuiteChaCha20Poly1305, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSuite, s)
	}
}

const (
	keyLen   = 32 // 256-bit keys for both suites
	nonceLen = 12 // 96-bit nonces for both suites
	saltLen  = 32
)

// newAEAD constructs the stdlib cipher.AEAD for suite over key. Both
// AES-256-GCM and ChaCha20-Poly1305 satisfy the same interface, which is
// what lets [MasterKey] treat them interchangeably.
func newAEAD(suite Suite, key []byte) (cipher.AEAD, error) {
	if len(key) != keyLen {
		return nil, fmt.Errorf("crypto: key must be %d bytes, got %d", keyLen, len(key))
	}

	switch suite {
	case SuiteAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("crypto: create AES cipher: %w", err)
		}
		return cipher.NewGCM(block)
	case SuiteChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("%w: suite %d", ErrUnknownSuite, suite)
	}
}

// Argon2Params tunes the password-based KDF. Defaults match spec §4.1:
// memory_cost=65536 KiB, time_cost=3, parallelism=1, 32-byte output.
type Argon2Params struct {
	MemoryKiB   uint32
	TimeCost    uint32
	Parallelism uint8
}

// DefaultArgon2Params returns the engine's recommended Argon2id tuning.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{MemoryKiB: 65536, TimeCost: 3, Parallelism: 1}
}

// DeriveKeyArgon2id derives a 32-byte key from passphrase and a 32-byte
// salt using Argon2id. Deterministic for fixed (passphrase, salt, params);
// differing salts of an identical passphrase produce different outputs
// (spec §8 property 7).
func DeriveKeyArgon2id(passphrase string, salt [saltLen]byte, params Argon2Params) []byte {
	return argon2.IDKey([]byte(passphrase), salt[:], params.TimeCost, params.MemoryKiB, params.Parallelism, keyLen)
}

// DeriveSubKey derives a 32-byte purpose-bound sub-key from master using
// HKDF-SHA-256 with explicit salt and info parameters (spec §4.1).
func DeriveSubKey(master, salt, info []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, master, salt, info)
	out := make([]byte, keyLen)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, fmt.Errorf("crypto: derive sub-key: %w", err)
	}
	return out, nil
}

// GenerateSalt draws 32 random bytes from the OS CSPRNG (spec §4.1).
func GenerateSalt() ([saltLen]byte, error) {
	var salt [saltLen]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return salt, fmt.Errorf("crypto: generate salt: %w", err)
	}
	return salt, nil
}

// GenerateNonce draws n random bytes from the OS CSPRNG (spec §4.1). Nonces
// are always freshly drawn, never derived from a counter, so re-use under a
// fixed key is prevented by construction rather than by bookkeeping.
func GenerateNonce(n int) ([]byte, error) {
	nonce := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("crypto: generate nonce: %w", err)
	}
	return nonce, nil
}
