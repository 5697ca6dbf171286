// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	tenantPrefix     = "tenant:"
	secretPrefix     = "secret:"
	auditPrefix      = "audit:"
	sessionKeyPrefix = "session_key:"
	userPrefix       = "user:"
	syncMetaPrefix   = "sync_meta:"

	// Separator partitions a key into its record-type components. It must
	// never appear inside a tenant id, namespace, or secret key, or the
	// keyspace becomes ambiguous (spec §4.3).
	Separator = ":"
)

// errReservedSeparator is returned when a caller-supplied identifier
// contains the ':' keyspace separator.
var errReservedSeparator = fmt.Errorf("identifier must not contain %q", Separator)

// ValidateIdentifier rejects tenant ids, namespaces, and secret keys that
// contain the reserved ':' separator, keeping the flat keyspace unambiguous.
func ValidateIdentifier(id string) error {
	if strings.Contains(id, Separator) {
		return fmt.Errorf("%q: %w", id, errReservedSeparator)
	}
	return nil
}

// TenantKey builds the storage key for a tenant record.
func TenantKey(tenantID string) string {
	return tenantPrefix + tenantID
}

// SecretKey builds the storage key for one secret record.
func SecretKey(tenantID, namespace, key string) string {
	return secretPrefix + tenantID + Separator + namespace + Separator + key
}

// SecretNamespacePrefix builds the scan prefix for every secret in one
// (tenant, namespace) pair.
func SecretNamespacePrefix(tenantID, namespace string) string {
	return secretPrefix + tenantID + Separator + namespace + Separator
}

// SecretTenantPrefix builds the scan prefix for every secret belonging to a
// tenant, across all namespaces.
func SecretTenantPrefix(tenantID string) string {
	return secretPrefix + tenantID + Separator
}

// SplitSecretKey parses a full secret storage key back into its
// (tenant, namespace, key) components. ok is false if key is not a
// well-formed secret key.
func SplitSecretKey(storageKey string) (tenantID, namespace, key string, ok bool) {
	if !strings.HasPrefix(storageKey, secretPrefix) {
		return "", "", "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(storageKey, secretPrefix), Separator, 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// AuditKey builds the storage key for an audit entry. nanos is the entry's
// timestamp in nanoseconds since the epoch; disambiguator is appended only
// to break a collision within the same nanosecond (spec §4.3) and is
// otherwise empty.
func AuditKey(tenantID string, nanos int64, disambiguator string) string {
	key := auditPrefix + tenantID + Separator + strconv.FormatInt(nanos, 10)
	if disambiguator != "" {
		key += Separator + disambiguator
	}
	return key
}

// AuditTenantPrefix builds the scan prefix for every audit entry belonging
// to a tenant, in causal (timestamp) order.
func AuditTenantPrefix(tenantID string) string {
	return auditPrefix + tenantID + Separator
}

// SessionKeyBlobKey builds the storage key for a tenant's cached session
// key blob (spec §4.5).
func SessionKeyBlobKey(tenantID string) string {
	return sessionKeyPrefix + tenantID
}

// UserKey builds the storage key for one collaborative user record.
func UserKey(tenantID, email string) string {
	return userPrefix + tenantID + Separator + email
}

// UserTenantPrefix builds the scan prefix for every user belonging to a
// tenant.
func UserTenantPrefix(tenantID string) string {
	return userPrefix + tenantID + Separator
}

// SyncMetaKey builds the storage key for one secret's last-observed-remote
// sync metadata, addressed the same way as its secret record.
func SyncMetaKey(tenantID, namespace, key string) string {
	return syncMetaPrefix + tenantID + Separator + namespace + Separator + key
}

// SyncMetaTenantPrefix builds the scan prefix for every sync metadata
// record belonging to a tenant.
func SyncMetaTenantPrefix(tenantID string) string {
	return syncMetaPrefix + tenantID + Separator
}
