// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Manager reads and writes the ticket file at a fixed path (spec §6:
// "<config>/vault/session", permissions 0600). There is exactly one owner
// per process; callers must not cache a loaded ticket across long-running
// calls without reloading.
type Manager struct {
	path string
}

// NewManager returns a Manager backed by the ticket file at path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// DefaultPath returns the OS-standard per-user session file location,
// "<config dir>/vault/session".
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("session: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "vault", "session"), nil
}

// Save persists ticket to disk with user-only permissions.
func (m *Manager) Save(ticket Ticket) error {
	data, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("session: encode ticket: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("session: create session dir: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("session: write ticket: %w", err)
	}
	return nil
}

// Load reads the ticket file. If the ticket has expired, Load deletes the
// file (spec §4.5: "one-shot deletion of the ticket file") and returns
// [ErrTicketExpired]; the caller is separately responsible for clearing
// the cached session-key blob on this signal.
func (m *Manager) Load() (Ticket, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Ticket{}, ErrNoTicket
		}
		return Ticket{}, fmt.Errorf("session: read ticket: %w", err)
	}

	var ticket Ticket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return Ticket{}, fmt.Errorf("session: decode ticket: %w", err)
	}

	if !ticket.IsValid() {
		_ = m.Clear()
		return ticket, ErrTicketExpired
	}
	return ticket, nil
}

// Clear deletes the ticket file. It is not an error if no file exists.
func (m *Manager) Clear() error {
	if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: clear ticket: %w", err)
	}
	return nil
}

// Refresh loads the current ticket, extends its validity window, and
// persists the result.
func (m *Manager) Refresh() (Ticket, error) {
	ticket, err := m.Load()
	if err != nil {
		return Ticket{}, err
	}
	refreshed := ticket.Refresh()
	if err := m.Save(refreshed); err != nil {
		return Ticket{}, err
	}
	return refreshed, nil
}
