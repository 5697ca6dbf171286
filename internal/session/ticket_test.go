// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/passvault/vault/models"
)

func TestNewTicket_IsValidUntilExpiry(t *testing.T) {
	ticket := NewTicket("acme", "alice@acme.test", models.RoleOwner, DefaultValidity)
	require.True(t, ticket.IsValid())
	require.WithinDuration(t, time.Now().UTC().Add(DefaultValidity), ticket.ExpiresAt, time.Second)
}

func TestTicket_IsValid_FalseAfterExpiry(t *testing.T) {
	ticket := NewTicket("acme", "alice@acme.test", models.RoleOwner, -time.Minute)
	require.False(t, ticket.IsValid())
}

func TestTicket_Refresh_ExtendsByOriginalWindow(t *testing.T) {
	ticket := NewTicket("acme", "alice@acme.test", models.RoleOwner, time.Hour)
	originalWindow := ticket.ExpiresAt.Sub(ticket.CreatedAt)

	refreshed := ticket.Refresh()

	require.WithinDuration(t, time.Now().UTC(), refreshed.CreatedAt, time.Second)
	require.Equal(t, originalWindow, refreshed.ExpiresAt.Sub(refreshed.CreatedAt))
	require.True(t, refreshed.IsValid())
}
