// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one append-only audit log record (spec §4.6). Entries are
// keyed by nanosecond timestamp so a prefix scan over a tenant's audit
// range yields them in causal order.
type AuditEntry struct {
	ID           uuid.UUID
	TenantID     string
	EventType    string
	Description  string
	Timestamp    time.Time
	UserID       string
	IPAddress    string
	UserAgent    string
	ResourceType string
	ResourceID   string
	Metadata     map[string]string
}

// Encode serializes e to its compact binary wire form.
func (e AuditEntry) Encode() ([]byte, error) {
	var buf bytes.Buffer

	idBytes, err := e.ID.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("record: marshal audit id: %w", err)
	}
	if err := writeBytes(&buf, idBytes); err != nil {
		return nil, err
	}
	for _, s := range []string{e.TenantID, e.EventType, e.Description, e.UserID, e.IPAddress, e.UserAgent, e.ResourceType, e.ResourceID} {
		if err := writeString(&buf, s); err != nil {
			return nil, err
		}
	}
	if err := writeTime(&buf, e.Timestamp); err != nil {
		return nil, err
	}
	if err := writeStringMap(&buf, e.Metadata); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeAuditEntry parses a binary wire form written by [AuditEntry.Encode].
func DecodeAuditEntry(data []byte) (AuditEntry, error) {
	r := bytes.NewReader(data)
	var e AuditEntry

	idBytes, err := readBytes(r)
	if err != nil {
		return AuditEntry{}, err
	}
	if err := e.ID.UnmarshalBinary(idBytes); err != nil {
		return AuditEntry{}, fmt.Errorf("record: unmarshal audit id: %w", err)
	}

	fields := []*string{&e.TenantID, &e.EventType, &e.Description, &e.UserID, &e.IPAddress, &e.UserAgent, &e.ResourceType, &e.ResourceID}
	for _, f := range fields {
		*f, err = readString(r)
		if err != nil {
			return AuditEntry{}, err
		}
	}

	if e.Timestamp, err = readTime(r); err != nil {
		return AuditEntry{}, err
	}
	if e.Metadata, err = readStringMap(r); err != nil {
		return AuditEntry{}, err
	}

	return e, nil
}
