// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package audit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/passvault/vault/internal/kv"
	"github.com/passvault/vault/internal/record"
)

// maxKeyCollisionAttempts bounds the retry loop when two entries for the
// same tenant land on the same nanosecond.
const maxKeyCollisionAttempts = 1000

// Log is the append-only audit trail, co-resident with tenant data inside
// the same embedded store (spec §4.6).
type Log struct {
	store kv.Store
}

// New wraps store as an audit log.
func New(store kv.Store) *Log {
	return &Log{store: store}
}

// Append writes entry under a nanosecond-ordered key, never overwriting an
// existing audit key (spec §4.3). ID and Timestamp are filled in if zero.
// Append does not flush; the caller controls the flush boundary so the
// audit entry can be written atomically alongside the data mutation it
// describes (spec §4.4).
func (l *Log) Append(entry record.AuditEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	nanos := entry.Timestamp.UnixNano()
	disambiguator := ""
	for attempt := 0; attempt < maxKeyCollisionAttempts; attempt++ {
		key := record.AuditKey(entry.TenantID, nanos, disambiguator)
		if _, err := l.store.Get(key); err == nil {
			disambiguator = strconv.Itoa(attempt + 1)
			continue
		}

		data, err := entry.Encode()
		if err != nil {
			return fmt.Errorf("audit: encode entry: %w", err)
		}
		if err := l.store.Put(key, data); err != nil {
			return fmt.Errorf("audit: write entry: %w", err)
		}
		return nil
	}
	return fmt.Errorf("audit: exhausted key disambiguation attempts for tenant %s at %d", entry.TenantID, nanos)
}

// allForTenant returns every audit entry for tenantID in ascending
// (causal) order.
func (l *Log) allForTenant(tenantID string) ([]record.AuditEntry, error) {
	var entries []record.AuditEntry
	err := l.store.PrefixScan(record.AuditTenantPrefix(tenantID), func(key string, value []byte) bool {
		entry, decodeErr := record.DecodeAuditEntry(value)
		if decodeErr != nil {
			return true
		}
		entries = append(entries, entry)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("audit: scan tenant %s: %w", tenantID, err)
	}
	return entries, nil
}

// Tail returns the most recent n entries for tenantID, oldest first.
func (l *Log) Tail(tenantID string, n int) ([]record.AuditEntry, error) {
	entries, err := l.allForTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n >= len(entries) {
		return entries, nil
	}
	return entries[len(entries)-n:], nil
}

// TimeRange returns entries for tenantID with Timestamp in [from, to].
func (l *Log) TimeRange(tenantID string, from, to time.Time) ([]record.AuditEntry, error) {
	entries, err := l.allForTenant(tenantID)
	if err != nil {
		return nil, err
	}
	var matched []record.AuditEntry
	for _, e := range entries {
		if !e.Timestamp.Before(from) && !e.Timestamp.After(to) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// ByEventType returns entries for tenantID whose EventType equals
// eventType.
func (l *Log) ByEventType(tenantID, eventType string) ([]record.AuditEntry, error) {
	entries, err := l.allForTenant(tenantID)
	if err != nil {
		return nil, err
	}
	var matched []record.AuditEntry
	for _, e := range entries {
		if e.EventType == eventType {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// SearchDescription returns entries for tenantID whose Description
// contains query, case-insensitively.
func (l *Log) SearchDescription(tenantID, query string) ([]record.AuditEntry, error) {
	entries, err := l.allForTenant(tenantID)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	var matched []record.AuditEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Description), needle) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}
