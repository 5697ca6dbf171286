// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/passvault/vault/models"
)

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault", "session")
	mgr := NewManager(path)

	ticket := NewTicket("acme", "alice@acme.test", models.RoleWriter, DefaultValidity)
	require.NoError(t, mgr.Save(ticket))

	loaded, err := mgr.Load()
	require.NoError(t, err)
	require.Equal(t, ticket.ID, loaded.ID)
	require.Equal(t, ticket.TenantID, loaded.TenantID)
	require.Equal(t, ticket.Role, loaded.Role)
}

func TestManager_Load_NoTicketFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault", "session")
	mgr := NewManager(path)

	_, err := mgr.Load()
	require.ErrorIs(t, err, ErrNoTicket)
}

func TestManager_Load_ExpiredTicketIsDeleted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault", "session")
	mgr := NewManager(path)

	expired := NewTicket("acme", "alice@acme.test", models.RoleWriter, -time.Hour)
	require.NoError(t, mgr.Save(expired))

	_, err := mgr.Load()
	require.ErrorIs(t, err, ErrTicketExpired)

	_, err = mgr.Load()
	require.ErrorIs(t, err, ErrNoTicket)
}

func TestManager_Clear_NoErrorWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault", "session")
	mgr := NewManager(path)
	require.NoError(t, mgr.Clear())
}

func TestManager_Refresh_ExtendsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault", "session")
	mgr := NewManager(path)

	ticket := NewTicket("acme", "alice@acme.test", models.RoleWriter, time.Hour)
	require.NoError(t, mgr.Save(ticket))

	refreshed, err := mgr.Refresh()
	require.NoError(t, err)
	require.True(t, refreshed.ExpiresAt.After(ticket.ExpiresAt) || refreshed.ExpiresAt.Equal(ticket.ExpiresAt))

	reloaded, err := mgr.Load()
	require.NoError(t, err)
	require.Equal(t, refreshed.ID, reloaded.ID)
}
