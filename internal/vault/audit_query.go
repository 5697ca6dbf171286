// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"time"

	"github.com/passvault/vault/internal/record"
	"github.com/passvault/vault/models"
)

// AuditTail returns the most recent n audit entries for the current
// tenant, oldest first. Requires audit capability, which only the Auditor
// and Admin roles hold (spec §4.5).
func (e *Engine) AuditTail(n int) ([]record.AuditEntry, error) {
	tenantID, _, err := e.requireUnlocked()
	if err != nil {
		return nil, err
	}
	if err := e.requireCapability(models.Role.CanAudit); err != nil {
		return nil, err
	}
	return e.audit.Tail(tenantID, n)
}

// AuditTimeRange returns audit entries for the current tenant between
// from and to inclusive. Requires audit capability (Auditor or Admin).
func (e *Engine) AuditTimeRange(from, to time.Time) ([]record.AuditEntry, error) {
	tenantID, _, err := e.requireUnlocked()
	if err != nil {
		return nil, err
	}
	if err := e.requireCapability(models.Role.CanAudit); err != nil {
		return nil, err
	}
	return e.audit.TimeRange(tenantID, from, to)
}

// AuditByEventType returns audit entries for the current tenant matching
// eventType. Requires audit capability (Auditor or Admin).
func (e *Engine) AuditByEventType(eventType string) ([]record.AuditEntry, error) {
	tenantID, _, err := e.requireUnlocked()
	if err != nil {
		return nil, err
	}
	if err := e.requireCapability(models.Role.CanAudit); err != nil {
		return nil, err
	}
	return e.audit.ByEventType(tenantID, eventType)
}

// AuditSearch returns audit entries for the current tenant whose
// description contains query, case-insensitively. Requires audit capability
// (Auditor or Admin).
func (e *Engine) AuditSearch(query string) ([]record.AuditEntry, error) {
	tenantID, _, err := e.requireUnlocked()
	if err != nil {
		return nil, err
	}
	if err := e.requireCapability(models.Role.CanAudit); err != nil {
		return nil, err
	}
	return e.audit.SearchDescription(tenantID, query)
}
