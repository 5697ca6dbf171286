// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"errors"
	"fmt"
	"time"

	"github.com/passvault/vault/internal/kv"
	"github.com/passvault/vault/internal/record"
	"github.com/passvault/vault/models"
)

// ErrUserNotFound is returned when a collaborative user record does not
// exist for the given (tenant, email) pair.
var ErrUserNotFound = errors.New("vault: user not found")

func (e *Engine) readUser(tenantID, email string) (record.User, error) {
	data, err := e.store.Get(record.UserKey(tenantID, email))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return record.User{}, ErrUserNotFound
		}
		return record.User{}, fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	user, err := record.DecodeUser(data)
	if err != nil {
		return record.User{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return user, nil
}

// AddUser registers email as a collaborator of the current tenant with
// role. Requires Admin capability (spec §4.5 role table).
func (e *Engine) AddUser(email string, role models.Role) error {
	tenantID, _, err := e.requireUnlocked()
	if err != nil {
		return err
	}
	if err := e.requireCapability(models.Role.CanAdmin); err != nil {
		return err
	}

	user := record.User{TenantID: tenantID, Email: email, Role: role, CreatedAt: time.Now().UTC()}
	data, err := user.Encode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if err := e.store.Put(record.UserKey(tenantID, email), data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}

	if err := e.audit.Append(record.AuditEntry{
		TenantID:     tenantID,
		EventType:    string(models.EventUserAdded),
		Description:  fmt.Sprintf("added user %s with role %s", email, role),
		UserID:       e.currentUserID,
		ResourceType: "user",
		ResourceID:   email,
	}); err != nil {
		return err
	}

	e.log.Info().
		Str("tenant_id", tenantID).
		Str("event_type", string(models.EventUserAdded)).
		Msg("user added")

	return e.flush()
}

// SetQuota updates the current tenant's maximum secret count. maxSecrets
// of zero or less means unlimited. Requires Admin capability (spec §3
// TenantSettings.Quotas, enforced by [Engine.Put]).
func (e *Engine) SetQuota(maxSecrets int) error {
	tenantID, _, err := e.requireUnlocked()
	if err != nil {
		return err
	}
	if err := e.requireCapability(models.Role.CanAdmin); err != nil {
		return err
	}

	tenant, err := e.readTenant(tenantID)
	if err != nil {
		return err
	}
	tenant.Settings.Quotas.MaxSecrets = maxSecrets
	if err := e.writeTenant(tenant); err != nil {
		return err
	}

	if err := e.audit.Append(record.AuditEntry{
		TenantID:     tenantID,
		EventType:    "quota_updated",
		Description:  fmt.Sprintf("set max secrets quota to %d", maxSecrets),
		UserID:       e.currentUserID,
		ResourceType: "tenant",
		ResourceID:   tenantID,
	}); err != nil {
		return err
	}

	return e.flush()
}

// RemoveUser revokes email's access to the current tenant. Requires Admin
// capability.
func (e *Engine) RemoveUser(email string) error {
	tenantID, _, err := e.requireUnlocked()
	if err != nil {
		return err
	}
	if err := e.requireCapability(models.Role.CanAdmin); err != nil {
		return err
	}

	if _, err := e.readUser(tenantID, email); err != nil {
		return err
	}

	if err := e.store.Delete(record.UserKey(tenantID, email)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}

	if err := e.audit.Append(record.AuditEntry{
		TenantID:     tenantID,
		EventType:    string(models.EventUserRemoved),
		Description:  fmt.Sprintf("removed user %s", email),
		UserID:       e.currentUserID,
		ResourceType: "user",
		ResourceID:   email,
	}); err != nil {
		return err
	}

	e.log.Info().
		Str("tenant_id", tenantID).
		Str("event_type", string(models.EventUserRemoved)).
		Msg("user removed")

	return e.flush()
}
