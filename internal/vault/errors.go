// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import "errors"

// Sentinel errors returned by [Engine] methods, matching the abstract
// error taxonomy of spec §7. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrStorageIO wraps an underlying embedded-store failure.
	ErrStorageIO = errors.New("vault: storage io error")

	// ErrStorageCorruption is returned by [Engine.HealthCheck] when the
	// store's own integrity check fails, regardless of whether the probe
	// write/read/delete itself succeeded (spec §9 open question).
	ErrStorageCorruption = errors.New("vault: storage corruption detected")

	// ErrSerialization is returned when decoding a stored record fails.
	ErrSerialization = errors.New("vault: record serialization error")

	// ErrVaultLocked is returned by any operation that requires an
	// unlocked master key when none is installed.
	ErrVaultLocked = errors.New("vault: vault is locked")

	// ErrTenantNotFound is returned when an operation names a tenant id
	// with no tenant record.
	ErrTenantNotFound = errors.New("vault: tenant not found")

	// ErrTenantAlreadyExists is returned by [Engine.InitTenant] when a
	// tenant record already exists and force was not set.
	ErrTenantAlreadyExists = errors.New("vault: tenant already exists")

	// ErrSecretNotFound is returned by [Engine.Delete] when the targeted
	// secret does not exist. [Engine.Get] reports an absent secret by a
	// nil return instead of this error (spec §7 propagation policy).
	ErrSecretNotFound = errors.New("vault: secret not found")

	// ErrSecretAlreadyExists is returned by [Engine.Put] when a secret
	// already exists at the target address and force was not set.
	ErrSecretAlreadyExists = errors.New("vault: secret already exists")

	// ErrPermissionDenied is returned when the current session's role
	// lacks the capability an operation requires.
	ErrPermissionDenied = errors.New("vault: permission denied")

	// ErrInvalidPassphrase is returned by [Engine.Unlock] when the
	// constant-time comparison against the stored password hash fails.
	ErrInvalidPassphrase = errors.New("vault: invalid passphrase")

	// ErrReservedSeparator is returned when a namespace or key contains
	// the ':' keyspace separator.
	ErrReservedSeparator = errors.New("vault: identifier contains reserved separator")

	// ErrQuotaExceeded is returned by [Engine.Put] when the tenant's
	// Quotas.MaxSecrets is set and creating a new secret would exceed it.
	// Updating an existing secret never trips the quota.
	ErrQuotaExceeded = errors.New("vault: tenant secret quota exceeded")
)
