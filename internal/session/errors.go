// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

// ErrNoTicket is returned by [Manager.Load] when no ticket file exists.
var ErrNoTicket = errors.New("session: no ticket present")

// ErrTicketExpired is returned by [Manager.Load] when a ticket file exists
// but its expires_at has passed. Loading an expired ticket also deletes
// the ticket file as a side effect (spec §4.5).
var ErrTicketExpired = errors.New("session: ticket expired")
