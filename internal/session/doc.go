// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session implements the durable session ticket (spec §4.5): a
// bounded-lifetime handle linking a tenant, a user identity, and a role,
// persisted as JSON at a per-user configuration location independent of
// the vault data file. It lets the storage engine auto-unlock without
// re-prompting for a passphrase as long as the ticket and the cached
// session-key blob (held inside the vault data file itself) both remain
// valid.
package session
