// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package record defines the keyspace and wire encoding of every record type
// the storage engine keeps in the embedded ordered key-value store (spec
// §4.3):
//
//	tenant:<tenant_id>                       -> Tenant
//	secret:<tenant_id>:<namespace>:<key>     -> Secret
//	audit:<tenant_id>:<nanosecond_ts>[:<n>]   -> AuditEntry
//	session_key:<tenant_id>                  -> SessionKeyBlob
//	user:<tenant_id>:<email>                 -> User
//
// Keys are UTF-8 strings built with the exported *Key helpers so that every
// caller constructs them identically; values are a compact binary encoding
// written with the shared helpers in encoding.go, matching the wire format
// spec §6 mandates for [Secret] so sync back-ends can transport ciphertext
// unchanged.
package record
