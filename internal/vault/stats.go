// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/passvault/vault/internal/record"
)

// Stats summarizes the whole keyspace (spec §4.4): it is a store-wide
// diagnostic, not scoped to the current tenant or lock state.
type Stats struct {
	SecretCount         int
	NamespaceCount      int
	TenantCount         int
	TotalBytes          int64
}

// GetStats performs a linear scan of the keyspace and reports aggregate
// counts.
func (e *Engine) GetStats() (Stats, error) {
	var stats Stats
	secretNamespaces := make(map[string]bool)
	tenants := make(map[string]bool)

	err := e.store.ForEach(func(key string, value []byte) bool {
		stats.TotalBytes += int64(len(key)) + int64(len(value))

		tenantID, namespace, _, ok := record.SplitSecretKey(key)
		if ok {
			stats.SecretCount++
			secretNamespaces[tenantID+"\x00"+namespace] = true
			tenants[tenantID] = true
		} else if strings.HasPrefix(key, "tenant:") {
			tenants[strings.TrimPrefix(key, "tenant:")] = true
		}
		return true
	})
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrStorageIO, err)
	}

	stats.NamespaceCount = len(secretNamespaces)
	stats.TenantCount = len(tenants)
	return stats, nil
}

const healthCheckProbeKey = "__health_check_probe__"

// HealthCheck requests an integrity signal from the embedded store and
// exercises a write/read/delete probe. A checksum failure always yields
// [ErrStorageCorruption], even if the probe itself succeeded (spec §9
// open question resolution).
func (e *Engine) HealthCheck() error {
	ok, inconsistencies, err := e.store.Checksum()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}

	probeValue := []byte(uuid.New().String())
	if err := e.store.Put(healthCheckProbeKey, probeValue); err != nil {
		return fmt.Errorf("%w: probe write: %v", ErrStorageCorruption, err)
	}

	readBack, err := e.store.Get(healthCheckProbeKey)
	probeOK := err == nil && bytes.Equal(readBack, probeValue)

	if delErr := e.store.Delete(healthCheckProbeKey); delErr != nil {
		return fmt.Errorf("%w: probe cleanup: %v", ErrStorageCorruption, delErr)
	}
	if flushErr := e.store.Flush(); flushErr != nil {
		return fmt.Errorf("%w: probe flush: %v", ErrStorageCorruption, flushErr)
	}

	if !ok {
		return fmt.Errorf("%w: checksum found %d inconsistencies", ErrStorageCorruption, inconsistencies)
	}
	if !probeOK {
		return fmt.Errorf("%w: probe round trip mismatch", ErrStorageCorruption)
	}
	return nil
}
