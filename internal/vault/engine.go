// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/passvault/vault/internal/audit"
	"github.com/passvault/vault/internal/crypto"
	"github.com/passvault/vault/internal/kv"
	"github.com/passvault/vault/internal/logger"
	"github.com/passvault/vault/internal/record"
	"github.com/passvault/vault/internal/session"
	"github.com/passvault/vault/models"
)

// Engine is the cryptographic storage engine (spec §4.4). At most one
// Engine should be open per data-file path; concurrent reads on an
// unlocked Engine are safe, concurrent writes must be serialized by the
// caller.
type Engine struct {
	store   kv.Store
	audit   *audit.Log
	tickets *session.Manager
	log     *logger.Logger

	mu            sync.Mutex
	masterKey     *crypto.MasterKey
	currentTenant string
	currentUserID string
	currentRole   models.Role
}

// New opens an Engine over store. If tickets is non-nil, New attempts an
// auto-unlock: a valid ticket plus a matching cached session-key blob in
// store reconstructs the master key without a passphrase prompt (spec
// §4.5). An expired ticket's cached key blob is cleared as a side effect.
//
// log receives structured fields (tenant_id, namespace, event_type) for
// every mutating operation; a nil log is replaced with [logger.Nop], the
// same fallback the teacher's constructors use in tests.
func New(store kv.Store, tickets *session.Manager, log *logger.Logger) (*Engine, error) {
	if log == nil {
		log = logger.Nop()
	}
	e := &Engine{store: store, audit: audit.New(store), tickets: tickets, log: log}

	if tickets == nil {
		return e, nil
	}

	ticket, err := tickets.Load()
	switch {
	case err == nil:
		if unlockErr := e.autoUnlock(ticket); unlockErr != nil {
			return e, nil
		}
	case errors.Is(err, session.ErrTicketExpired):
		_ = e.store.Delete(record.SessionKeyBlobKey(ticket.TenantID))
		_ = e.store.Flush()
	}

	return e, nil
}

// autoUnlock reconstructs the master key from the cached session-key blob
// named by ticket.TenantID, without touching the passphrase.
func (e *Engine) autoUnlock(ticket session.Ticket) error {
	blobBytes, err := e.store.Get(record.SessionKeyBlobKey(ticket.TenantID))
	if err != nil {
		return err
	}
	blob, err := record.DecodeSessionKeyBlob(blobBytes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	masterKey, err := crypto.NewMasterKey(blob.Key, blob.Suite)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.masterKey = masterKey
	e.currentTenant = ticket.TenantID
	e.currentUserID = ticket.UserID
	e.currentRole = ticket.Role
	return nil
}

// InitTenant creates a new tenant record (spec §4.4). It refuses if a
// tenant with id already exists unless force is true.
func (e *Engine) InitTenant(tenantID, admin, passphrase string, force bool) error {
	if err := record.ValidateIdentifier(tenantID); err != nil {
		return fmt.Errorf("%w: %v", ErrReservedSeparator, err)
	}

	if !force {
		if _, err := e.store.Get(record.TenantKey(tenantID)); err == nil {
			return ErrTenantAlreadyExists
		}
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}
	params := crypto.DefaultArgon2Params()
	suite := crypto.SuiteAES256GCM
	derived := crypto.DeriveKeyArgon2id(passphrase, salt, params)

	var passwordHash [32]byte
	copy(passwordHash[:], derived)

	tenant := record.Tenant{
		ID:           tenantID,
		Name:         tenantID,
		AdminEmail:   admin,
		CreatedAt:    time.Now().UTC(),
		PasswordSalt: salt,
		PasswordHash: passwordHash,
		Settings: record.TenantSettings{
			Suite:        suite,
			Argon2Params: params,
			AuditEnabled: true,
			SyncEnabled:  false,
		},
	}

	if err := e.writeTenant(tenant); err != nil {
		return err
	}

	if err := e.audit.Append(record.AuditEntry{
		TenantID:     tenantID,
		EventType:    string(models.EventTenantCreated),
		Description:  fmt.Sprintf("initialized tenant %s", tenantID),
		UserID:       admin,
		ResourceType: "tenant",
		ResourceID:   tenantID,
	}); err != nil {
		return err
	}

	e.log.Info().
		Str("tenant_id", tenantID).
		Str("event_type", string(models.EventTenantCreated)).
		Msg("tenant initialized")

	return e.flush()
}

func (e *Engine) writeTenant(tenant record.Tenant) error {
	data, err := tenant.Encode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if err := e.store.Put(record.TenantKey(tenant.ID), data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	return nil
}

func (e *Engine) readTenant(tenantID string) (record.Tenant, error) {
	data, err := e.store.Get(record.TenantKey(tenantID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return record.Tenant{}, ErrTenantNotFound
		}
		return record.Tenant{}, fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	tenant, err := record.DecodeTenant(data)
	if err != nil {
		return record.Tenant{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return tenant, nil
}

// Unlock validates passphrase against tenantID's stored password hash
// under constant-time comparison, then installs the master key into
// memory as the Owner role (spec §4.4). A zeroed password hash — the
// legacy no-password marker — always fails unlock.
func (e *Engine) Unlock(tenantID, passphrase string) error {
	return e.unlockAs(tenantID, passphrase, tenantID, models.RoleOwner)
}

// UnlockAsUser validates passphrase exactly like [Engine.Unlock], then
// resolves the session's role from the tenant's collaborative user table:
// the tenant's AdminEmail unlocks as Owner, a registered collaborator
// unlocks with their stored role, and an unrecognized email unlocks with
// the least-privileged Reader role.
func (e *Engine) UnlockAsUser(tenantID, passphrase, email string) error {
	tenant, err := e.readTenant(tenantID)
	if err != nil {
		return err
	}

	role := models.RoleReader
	switch {
	case email == tenant.AdminEmail:
		role = models.RoleOwner
	default:
		if user, err := e.readUser(tenantID, email); err == nil {
			role = user.Role
		}
	}

	return e.unlockAs(tenantID, passphrase, email, role)
}

func (e *Engine) unlockAs(tenantID, passphrase, userID string, role models.Role) error {
	tenant, err := e.readTenant(tenantID)
	if err != nil {
		return err
	}

	var zero [32]byte
	if subtle.ConstantTimeCompare(tenant.PasswordHash[:], zero[:]) == 1 {
		return ErrInvalidPassphrase
	}

	candidate := crypto.DeriveKeyArgon2id(passphrase, tenant.PasswordSalt, tenant.Settings.Argon2Params)
	if subtle.ConstantTimeCompare(candidate, tenant.PasswordHash[:]) != 1 {
		return ErrInvalidPassphrase
	}

	masterKey, err := crypto.NewMasterKey(candidate, tenant.Settings.Suite)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.masterKey = masterKey
	e.currentTenant = tenantID
	e.currentUserID = userID
	e.currentRole = role
	e.mu.Unlock()

	if err := e.writeCachedSessionKeyBlob(tenantID, masterKey); err != nil {
		return err
	}

	if err := e.audit.Append(record.AuditEntry{
		TenantID:    tenantID,
		EventType:   string(models.EventLogin),
		Description: fmt.Sprintf("unlocked tenant %s", tenantID),
		UserID:      userID,
	}); err != nil {
		return err
	}

	e.log.Info().
		Str("tenant_id", tenantID).
		Str("event_type", string(models.EventLogin)).
		Msg("tenant unlocked")

	return e.flush()
}

func (e *Engine) writeCachedSessionKeyBlob(tenantID string, masterKey *crypto.MasterKey) error {
	blob := record.SessionKeyBlob{TenantID: tenantID, Suite: masterKey.Suite(), Key: masterKey.ExposeKey()}
	data, err := blob.Encode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if err := e.store.Put(record.SessionKeyBlobKey(tenantID), data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	return nil
}

// Lock clears the in-memory master key without touching the cached
// session-key blob or ticket, so a subsequent auto-unlock can still
// succeed.
func (e *Engine) Lock() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.masterKey != nil {
		e.masterKey.Destroy()
	}
	e.masterKey = nil
	e.currentTenant = ""
	e.currentUserID = ""
	e.currentRole = 0
}

// Logout locks the engine, deletes the cached session-key blob, and
// clears the ticket file, ending the session entirely (spec §4.5).
func (e *Engine) Logout() error {
	e.mu.Lock()
	tenantID := e.currentTenant
	e.mu.Unlock()

	if tenantID == "" {
		return ErrVaultLocked
	}

	if err := e.audit.Append(record.AuditEntry{
		TenantID:    tenantID,
		EventType:   string(models.EventLogout),
		Description: fmt.Sprintf("logged out of tenant %s", tenantID),
		UserID:      e.currentUserID,
	}); err != nil {
		return err
	}

	e.log.Info().
		Str("tenant_id", tenantID).
		Str("event_type", string(models.EventLogout)).
		Msg("tenant logged out")

	if err := e.store.Delete(record.SessionKeyBlobKey(tenantID)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}

	if e.tickets != nil {
		if err := e.tickets.Clear(); err != nil {
			return err
		}
	}

	e.Lock()
	return e.flush()
}

// requireUnlocked returns the current tenant id and master key, or
// [ErrVaultLocked] if no tenant is unlocked.
func (e *Engine) requireUnlocked() (string, *crypto.MasterKey, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.masterKey == nil || e.currentTenant == "" {
		return "", nil, ErrVaultLocked
	}
	return e.currentTenant, e.masterKey, nil
}

// requireCapability checks the current role against the capability
// predicate, returning [ErrPermissionDenied] if it is not satisfied.
func (e *Engine) requireCapability(allowed func(models.Role) bool) error {
	e.mu.Lock()
	role := e.currentRole
	e.mu.Unlock()
	if !allowed(role) {
		return ErrPermissionDenied
	}
	return nil
}

func (e *Engine) flush() error {
	if err := e.store.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	return nil
}
