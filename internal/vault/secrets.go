// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/passvault/vault/internal/kv"
	"github.com/passvault/vault/internal/record"
	"github.com/passvault/vault/models"
)

const defaultNamespace = "default"

func resolveNamespace(namespace string) string {
	if namespace == "" {
		return defaultNamespace
	}
	return namespace
}

// Put encrypts value under the master key and stores it as
// secret:<tenant>:<namespace>:<key>. If a record already exists at that
// address, force must be true; version is then existing.version + 1,
// otherwise it starts at 1 (spec §4.4, §8 property invariant on
// monotonic version).
func (e *Engine) Put(key, value, namespace string, tags []string, force bool) error {
	tenantID, masterKey, err := e.requireUnlocked()
	if err != nil {
		return err
	}
	if err := e.requireCapability(models.Role.CanWrite); err != nil {
		return err
	}

	namespace = resolveNamespace(namespace)
	if err := record.ValidateIdentifier(namespace); err != nil {
		return fmt.Errorf("%w: %v", ErrReservedSeparator, err)
	}
	if err := record.ValidateIdentifier(key); err != nil {
		return fmt.Errorf("%w: %v", ErrReservedSeparator, err)
	}

	storageKey := record.SecretKey(tenantID, namespace, key)
	now := time.Now().UTC()

	existing, existErr := e.readSecret(storageKey)
	eventType := models.EventSecretCreated
	id := uuid.New()
	version := uint64(1)
	createdAt := now
	createdBy := e.currentUserID

	switch {
	case existErr == nil:
		if !force {
			return ErrSecretAlreadyExists
		}
		version = existing.Metadata.Version + 1
		id = existing.Metadata.ID
		createdAt = existing.Metadata.CreatedAt
		createdBy = existing.Metadata.CreatedBy
		eventType = models.EventSecretUpdated
	case errors.Is(existErr, ErrSecretNotFound):
		if err := e.checkSecretQuota(tenantID); err != nil {
			return err
		}
	default:
		return existErr
	}

	blob, err := masterKey.Encrypt([]byte(value))
	if err != nil {
		return err
	}

	secret := record.Secret{
		Metadata: record.SecretMetadata{
			ID:        id,
			TenantID:  tenantID,
			Namespace: namespace,
			Key:       key,
			Version:   version,
			CreatedAt: createdAt,
			UpdatedAt: now,
			CreatedBy: createdBy,
			Tags:      tags,
		},
		Encrypted: blob,
	}

	data, err := secret.Encode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if err := e.store.Put(storageKey, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}

	if err := e.audit.Append(record.AuditEntry{
		TenantID:     tenantID,
		EventType:    string(eventType),
		Description:  fmt.Sprintf("%s secret %s/%s", eventType, namespace, key),
		UserID:       e.currentUserID,
		ResourceType: "secret",
		ResourceID:   fmt.Sprintf("%s/%s", namespace, key),
	}); err != nil {
		return err
	}

	e.log.Info().
		Str("tenant_id", tenantID).
		Str("namespace", namespace).
		Str("event_type", string(eventType)).
		Msg("secret written")

	return e.flush()
}

// checkSecretQuota rejects a new secret for tenantID if the tenant's
// Quotas.MaxSecrets is set (non-zero) and already reached, counting only
// existing secret records, never audit or session entries (spec §3
// TenantSettings.Quotas, supplemented from original_source's tenant model).
func (e *Engine) checkSecretQuota(tenantID string) error {
	tenant, err := e.readTenant(tenantID)
	if err != nil {
		return err
	}
	maxSecrets := tenant.Settings.Quotas.MaxSecrets
	if maxSecrets <= 0 {
		return nil
	}

	count := 0
	scanErr := e.store.PrefixScan(record.SecretTenantPrefix(tenantID), func(key string, value []byte) bool {
		count++
		return count <= maxSecrets
	})
	if scanErr != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, scanErr)
	}
	if count >= maxSecrets {
		return ErrQuotaExceeded
	}
	return nil
}

func (e *Engine) readSecret(storageKey string) (record.Secret, error) {
	data, err := e.store.Get(storageKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return record.Secret{}, ErrSecretNotFound
		}
		return record.Secret{}, fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	secret, err := record.DecodeSecret(data)
	if err != nil {
		return record.Secret{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return secret, nil
}

// Get decrypts and returns the secret at (key, namespace). A missing
// secret returns ("", nil, nil) — absence is a legitimate outcome, not an
// error (spec §7 propagation policy).
func (e *Engine) Get(key, namespace string) (string, *record.SecretMetadata, error) {
	tenantID, masterKey, err := e.requireUnlocked()
	if err != nil {
		return "", nil, err
	}
	if err := e.requireCapability(models.Role.CanRead); err != nil {
		return "", nil, err
	}

	namespace = resolveNamespace(namespace)
	storageKey := record.SecretKey(tenantID, namespace, key)

	secret, err := e.readSecret(storageKey)
	if err != nil {
		if errors.Is(err, ErrSecretNotFound) {
			return "", nil, nil
		}
		return "", nil, err
	}

	plaintext, err := masterKey.Decrypt(secret.Encrypted)
	if err != nil {
		return "", nil, err
	}

	if err := e.audit.Append(record.AuditEntry{
		TenantID:     tenantID,
		EventType:    string(models.EventSecretAccessed),
		Description:  fmt.Sprintf("accessed secret %s/%s", namespace, key),
		UserID:       e.currentUserID,
		ResourceType: "secret",
		ResourceID:   fmt.Sprintf("%s/%s", namespace, key),
	}); err != nil {
		return "", nil, err
	}

	e.log.Debug().
		Str("tenant_id", tenantID).
		Str("namespace", namespace).
		Str("event_type", string(models.EventSecretAccessed)).
		Msg("secret accessed")

	if err := e.flush(); err != nil {
		return "", nil, err
	}

	meta := secret.Metadata
	return string(plaintext), &meta, nil
}

// List returns metadata (never decrypted values) for every secret in
// namespace, optionally filtered to entries carrying tagFilter, sorted
// ascending by key. List never emits an audit event (spec §4.4).
func (e *Engine) List(namespace, tagFilter string) ([]record.SecretMetadata, error) {
	tenantID, _, err := e.requireUnlocked()
	if err != nil {
		return nil, err
	}
	if err := e.requireCapability(models.Role.CanRead); err != nil {
		return nil, err
	}

	namespace = resolveNamespace(namespace)
	prefix := record.SecretNamespacePrefix(tenantID, namespace)

	var results []record.SecretMetadata
	scanErr := e.store.PrefixScan(prefix, func(storageKey string, value []byte) bool {
		secret, decodeErr := record.DecodeSecret(value)
		if decodeErr != nil {
			return true
		}
		if tagFilter != "" && !secret.Metadata.HasTag(tagFilter) {
			return true
		}
		results = append(results, secret.Metadata)
		return true
	})
	if scanErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageIO, scanErr)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Key < results[j].Key })
	return results, nil
}

// Delete removes the secret at (key, namespace). Returns
// [ErrSecretNotFound] if it does not exist — unlike [Engine.Get], absence
// here is an error because the caller expressed intent to remove (spec §7).
func (e *Engine) Delete(key, namespace string) error {
	tenantID, _, err := e.requireUnlocked()
	if err != nil {
		return err
	}
	if err := e.requireCapability(models.Role.CanWrite); err != nil {
		return err
	}

	namespace = resolveNamespace(namespace)
	storageKey := record.SecretKey(tenantID, namespace, key)

	if _, err := e.readSecret(storageKey); err != nil {
		return err
	}

	if err := e.store.Delete(storageKey); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}

	if err := e.audit.Append(record.AuditEntry{
		TenantID:     tenantID,
		EventType:    string(models.EventSecretDeleted),
		Description:  fmt.Sprintf("deleted secret %s/%s", namespace, key),
		UserID:       e.currentUserID,
		ResourceType: "secret",
		ResourceID:   fmt.Sprintf("%s/%s", namespace, key),
	}); err != nil {
		return err
	}

	e.log.Info().
		Str("tenant_id", tenantID).
		Str("namespace", namespace).
		Str("event_type", string(models.EventSecretDeleted)).
		Msg("secret deleted")

	return e.flush()
}

// SearchResult names one (namespace, key) pair matched by [Engine.Search].
type SearchResult struct {
	Namespace string
	Key       string
}

// Search does a case-insensitive substring match against secret key names
// and tags across the current tenant's secrets, optionally scoped to
// namespaceFilter. It never decrypts values and never emits an audit
// event, matching [Engine.List]'s read-only contract: spec §3's closed
// audit vocabulary has no tag for a read-only query (spec §4.4, §8
// property 9).
func (e *Engine) Search(query, namespaceFilter string) ([]SearchResult, error) {
	tenantID, _, err := e.requireUnlocked()
	if err != nil {
		return nil, err
	}
	if err := e.requireCapability(models.Role.CanRead); err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	seen := make(map[SearchResult]bool)
	var results []SearchResult

	scanErr := e.store.PrefixScan(record.SecretTenantPrefix(tenantID), func(storageKey string, value []byte) bool {
		_, namespace, _, ok := record.SplitSecretKey(storageKey)
		if !ok {
			return true
		}
		if namespaceFilter != "" && namespace != namespaceFilter {
			return true
		}
		secret, decodeErr := record.DecodeSecret(value)
		if decodeErr != nil {
			return true
		}

		matched := strings.Contains(strings.ToLower(secret.Metadata.Key), needle)
		if !matched {
			for _, tag := range secret.Metadata.Tags {
				if strings.Contains(strings.ToLower(tag), needle) {
					matched = true
					break
				}
			}
		}
		if matched {
			result := SearchResult{Namespace: namespace, Key: secret.Metadata.Key}
			if !seen[result] {
				seen[result] = true
				results = append(results, result)
			}
		}
		return true
	})
	if scanErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageIO, scanErr)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Namespace != results[j].Namespace {
			return results[i].Namespace < results[j].Namespace
		}
		return results[i].Key < results[j].Key
	})
	return results, nil
}
