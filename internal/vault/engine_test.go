// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/passvault/vault/internal/kv"
	"github.com/passvault/vault/internal/session"
	"github.com/passvault/vault/models"
)

func openTestEngine(t *testing.T) (*Engine, kv.Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "vault.db")
	store, err := kv.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	engine, err := New(store, nil, nil)
	require.NoError(t, err)
	return engine, store, dbPath
}

// Scenario A — init, put, get.
func TestScenarioA_InitPutGet(t *testing.T) {
	engine, _, _ := openTestEngine(t)

	require.NoError(t, engine.InitTenant("acme", "a@x", "correct horse battery staple", false))
	require.NoError(t, engine.Unlock("acme", "correct horse battery staple"))
	require.NoError(t, engine.Put("api", "sk_live_42", "prod", nil, false))

	value, meta, err := engine.Get("api", "prod")
	require.NoError(t, err)
	require.NotNil(t, meta)
	require.Equal(t, "sk_live_42", value)

	// Owner cannot read the audit log (spec §4.5: audit column is "—" for
	// Owner), so this reads the log directly rather than through the
	// role-gated AuditTail.
	entries, err := engine.audit.Tail("acme", 0)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	require.Equal(t, "tenant_created", entries[0].EventType)
	require.Equal(t, "login", entries[1].EventType)
	require.Equal(t, "secret_created", entries[2].EventType)
	require.Equal(t, "secret_accessed", entries[3].EventType)
}

// Scenario B — wrong passphrase.
func TestScenarioB_WrongPassphrase(t *testing.T) {
	engine, store, dbPath := openTestEngine(t)
	_ = dbPath

	require.NoError(t, engine.InitTenant("acme", "a@x", "correct horse battery staple", false))
	require.NoError(t, engine.Unlock("acme", "correct horse battery staple"))

	fresh, err := New(store, nil, nil)
	require.NoError(t, err)

	err = fresh.Unlock("acme", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassphrase)

	_, _, err = fresh.requireUnlocked()
	require.ErrorIs(t, err, ErrVaultLocked)
}

// Scenario C — tamper.
func TestScenarioC_TamperedCiphertextFailsAuthentication(t *testing.T) {
	engine, store, _ := openTestEngine(t)

	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))
	require.NoError(t, engine.Put("api", "sk_live_42", "prod", nil, false))

	key := "secret:acme:prod:api"
	data, err := store.Get(key)
	require.NoError(t, err)
	tampered := append([]byte(nil), data...)
	tampered[len(tampered)-1] ^= 0xFF
	require.NoError(t, store.Put(key, tampered))

	_, _, err = engine.Get("api", "prod")
	require.Error(t, err)
}

// Scenario D — tag filter and search.
func TestScenarioD_TagFilterAndSearch(t *testing.T) {
	engine, _, _ := openTestEngine(t)

	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))

	require.NoError(t, engine.Put("db", "x", "prod", []string{"database", "critical"}, false))
	require.NoError(t, engine.Put("web", "y", "prod", []string{"frontend"}, false))

	listed, err := engine.List("prod", "database")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "db", listed[0].Key)

	found, err := engine.Search("crit", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "prod", found[0].Namespace)
	require.Equal(t, "db", found[0].Key)
}

// Scenario E — session auto-unlock.
func TestScenarioE_SessionAutoUnlock(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vault.db")
	ticketPath := filepath.Join(t.TempDir(), "session")
	ticketMgr := session.NewManager(ticketPath)

	store, err := kv.Open(dbPath)
	require.NoError(t, err)

	engine, err := New(store, ticketMgr, nil)
	require.NoError(t, err)
	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))

	ticket := session.NewTicket("acme", "acme", models.RoleOwner, session.DefaultValidity)
	require.NoError(t, ticketMgr.Save(ticket))
	require.NoError(t, store.Close())

	store2, err := kv.Open(dbPath)
	require.NoError(t, err)
	engine2, err := New(store2, ticketMgr, nil)
	require.NoError(t, err)

	_, _, err = engine2.requireUnlocked()
	require.NoError(t, err, "expected auto-unlock with a valid ticket")

	value, _, err := engine2.Get("api", "prod")
	require.NoError(t, err)
	require.Empty(t, value)
	require.NoError(t, store2.Close())

	expiredTicket := session.NewTicket("acme", "acme", models.RoleOwner, -time.Hour)
	require.NoError(t, ticketMgr.Save(expiredTicket))

	store3, err := kv.Open(dbPath)
	require.NoError(t, err)
	defer store3.Close()
	engine3, err := New(store3, ticketMgr, nil)
	require.NoError(t, err)

	_, _, err = engine3.requireUnlocked()
	require.ErrorIs(t, err, ErrVaultLocked)

	_, err = store3.Get("session_key:acme")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestDelete_MissingSecretIsAnError(t *testing.T) {
	engine, _, _ := openTestEngine(t)
	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))

	err := engine.Delete("nope", "prod")
	require.ErrorIs(t, err, ErrSecretNotFound)
}

func TestPut_RequiresForceToOverwrite(t *testing.T) {
	engine, _, _ := openTestEngine(t)
	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))

	require.NoError(t, engine.Put("api", "v1", "prod", nil, false))
	err := engine.Put("api", "v2", "prod", nil, false)
	require.ErrorIs(t, err, ErrSecretAlreadyExists)

	require.NoError(t, engine.Put("api", "v2", "prod", nil, true))
	value, meta, err := engine.Get("api", "prod")
	require.NoError(t, err)
	require.Equal(t, "v2", value)
	require.EqualValues(t, 2, meta.Version)
}

func TestPut_EnforcesSecretQuota(t *testing.T) {
	engine, _, _ := openTestEngine(t)
	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))
	require.NoError(t, engine.SetQuota(1))

	require.NoError(t, engine.Put("first", "v1", "prod", nil, false))
	err := engine.Put("second", "v1", "prod", nil, false)
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// Updating the existing secret never trips the quota.
	require.NoError(t, engine.Put("first", "v2", "prod", nil, true))
}

func TestSetQuota_RequiresAdminCapability(t *testing.T) {
	engine, _, _ := openTestEngine(t)
	require.NoError(t, engine.InitTenant("acme", "owner@acme.test", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))
	require.NoError(t, engine.AddUser("writer@acme.test", models.RoleWriter))
	engine.Lock()

	require.NoError(t, engine.UnlockAsUser("acme", "pw", "writer@acme.test"))
	err := engine.SetQuota(10)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestInitTenant_RefusesDuplicateWithoutForce(t *testing.T) {
	engine, _, _ := openTestEngine(t)
	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))

	err := engine.InitTenant("acme", "a@x", "pw2", false)
	require.ErrorIs(t, err, ErrTenantAlreadyExists)
}

func TestRoleGating_ReaderCannotWrite(t *testing.T) {
	engine, _, _ := openTestEngine(t)
	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))
	require.NoError(t, engine.AddUser("bob@acme.test", models.RoleReader))
	engine.Lock()

	require.NoError(t, engine.UnlockAsUser("acme", "pw", "bob@acme.test"))

	err := engine.Put("api", "v", "prod", nil, false)
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, _, err = engine.Get("api", "prod")
	require.NoError(t, err)
}

func TestRoleGating_AuditorCannotWriteButCanAudit(t *testing.T) {
	engine, _, _ := openTestEngine(t)
	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))
	require.NoError(t, engine.Put("api", "v", "prod", nil, false))
	require.NoError(t, engine.AddUser("carol@acme.test", models.RoleAuditor))
	engine.Lock()

	require.NoError(t, engine.UnlockAsUser("acme", "pw", "carol@acme.test"))

	_, err := engine.AuditTail(0)
	require.NoError(t, err)

	err = engine.Put("other", "v", "prod", nil, false)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRoleGating_OwnerCannotReadAuditLog(t *testing.T) {
	engine, _, _ := openTestEngine(t)
	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))

	_, err := engine.AuditTail(0)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestHealthCheck_HealthyStore(t *testing.T) {
	engine, _, _ := openTestEngine(t)
	require.NoError(t, engine.HealthCheck())
}

func TestGetStats_CountsAcrossTenants(t *testing.T) {
	engine, _, _ := openTestEngine(t)
	require.NoError(t, engine.InitTenant("acme", "a@x", "pw", false))
	require.NoError(t, engine.Unlock("acme", "pw"))
	require.NoError(t, engine.Put("a", "1", "prod", nil, false))
	require.NoError(t, engine.Put("b", "2", "dev", nil, false))

	stats, err := engine.GetStats()
	require.NoError(t, err)
	require.Equal(t, 2, stats.SecretCount)
	require.Equal(t, 2, stats.NamespaceCount)
	require.Equal(t, 1, stats.TenantCount)
}
