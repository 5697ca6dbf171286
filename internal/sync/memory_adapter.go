// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sync

import (
	"sync"

	"github.com/passvault/vault/internal/record"
)

// MemoryAdapter is an in-process [Adapter] used to exercise the sync
// contract without a real object-store or relational transport (spec §1:
// remote sync transports are out of scope; only the contract they
// consume is specified here). It stores pushed records exactly as
// received, proving the manager never needs plaintext to move data
// between devices.
type MemoryAdapter struct {
	mu      sync.Mutex
	records map[string]record.Secret // address -> secret
}

// NewMemoryAdapter returns an empty MemoryAdapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{records: make(map[string]record.Secret)}
}

func (a *MemoryAdapter) Push(records []record.Secret) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range records {
		a.records[address(s.Metadata)] = s
	}
	return nil
}

func (a *MemoryAdapter) Pull(tenantID string) ([]record.Secret, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []record.Secret
	for _, s := range a.records {
		if s.Metadata.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}
