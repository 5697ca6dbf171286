// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault implements the cryptographic storage engine (spec §4.4):
// tenant lifecycle, passphrase validation in constant time, the
// put/get/list/delete/search pipeline over encrypted secrets, statistics,
// health check, and the durability and auditing invariants that tie them
// together. It composes [crypto] for encryption, [record] for the wire
// layout, [kv] for the embedded ordered store, [audit] for the append-only
// trail, and [session] for the auto-unlock ticket.
package vault
