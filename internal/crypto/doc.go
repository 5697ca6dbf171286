// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the cryptographic storage engine's primitive and
// key-management layer (spec §4.1, §4.2).
//
// # Key hierarchy
//
//  1. Master key — a 32-byte key bound to one of two AEAD suites
//     (AES-256-GCM or ChaCha20-Poly1305), derived from a tenant's passphrase
//     and salt via Argon2id ([DeriveMasterKey]), or generated fresh as a
//     data-encryption key ([GenerateMasterKey]).
//  2. Envelope encryption — a one-off data-encryption key (DEK) encrypts the
//     payload; the DEK itself is wrapped under a longer-lived
//     key-encryption key (KEK) via [EnvelopeEncrypt]/[EnvelopeDecrypt], so a
//     KEK can be rotated without re-encrypting payloads.
//
// Every encryption produces a self-describing [EncryptedBlob]: algorithm tag,
// ciphertext, nonce, and a carried (but currently unused by the AEAD itself)
// salt reserved for future envelope schemes. Decryption of a blob whose
// algorithm tag does not match the master key's suite fails with
// [ErrSuiteMismatch]; decryption of a blob whose authentication tag does not
// verify fails with [ErrAuthenticationFailed]. Neither returns plaintext.
//
// Raw key bytes are held in [SecretBytes], a container that is zeroed on
// [SecretBytes.Destroy]; accessors that expose raw bytes
// ([SecretBytes.ExposeBytes], [MasterKey.ExposeKey]) are explicit and narrow
// by design so that casual code cannot leak key material into a log line or
// a generic record.
package crypto
