// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrAuthenticationFailed is returned when an AEAD tag fails to verify,
	// or a decrypted DEK has an unexpected length. Plaintext is never
	// returned alongside this error (spec §4.2, §7).
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrUnknownSuite is returned when an [EncryptedBlob] or [MasterKey]
	// names an AEAD suite this package does not implement.
	ErrUnknownSuite = errors.New("unknown encryption suite")

	// ErrSuiteMismatch is returned by [MasterKey.Decrypt] when the blob's
	// algorithm tag does not match the master key's own suite.
	ErrSuiteMismatch = errors.New("ciphertext algorithm does not match master key suite")
)
