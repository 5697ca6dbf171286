// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/passvault/vault/models"
)

// DefaultValidity is the lifetime of a ticket created without "remember me"
// (spec §4.5).
const DefaultValidity = 24 * time.Hour

// RememberValidity is the lifetime of a ticket created with "remember me".
const RememberValidity = 168 * time.Hour

// Ticket is the durable handle proving recent passphrase knowledge (spec
// §3, §4.5). It never carries key material; that lives in the cached
// session-key blob inside the vault data file.
type Ticket struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  string     `json:"tenant_id"`
	UserID    string     `json:"user_id"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	Endpoint  string     `json:"endpoint,omitempty"`
}

// NewTicket mints a ticket valid for validity starting now.
func NewTicket(tenantID, userID string, role models.Role, validity time.Duration) Ticket {
	now := time.Now().UTC()
	return Ticket{
		ID:        uuid.New(),
		TenantID:  tenantID,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(validity),
	}
}

// IsValid reports whether the ticket has not yet expired.
func (t Ticket) IsValid() bool {
	return time.Now().UTC().Before(t.ExpiresAt)
}

// Refresh extends ExpiresAt by the ticket's original validity window,
// anchored at now (spec §4.5: "extends expires_at to now + (expires_at -
// created_at)").
func (t Ticket) Refresh() Ticket {
	window := t.ExpiresAt.Sub(t.CreatedAt)
	now := time.Now().UTC()
	t.CreatedAt = now
	t.ExpiresAt = now.Add(window)
	return t
}

// TimeUntilExpiry reports how long remains before the ticket expires. It
// is negative once the ticket has expired.
func (t Ticket) TimeUntilExpiry() time.Duration {
	return time.Until(t.ExpiresAt)
}
