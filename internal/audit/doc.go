// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package audit implements the append-only audit log (spec §4.6):
// emission co-resident with data under the same flush boundary, causal
// ordering within a tenant via the nanosecond-timestamp key component, and
// a query surface over tail/time-range/event-type/description search. The
// log is never edited or deleted by the engine.
package audit
