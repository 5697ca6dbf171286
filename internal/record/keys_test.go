// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import "testing"

func TestValidateIdentifier_RejectsSeparator(t *testing.T) {
	if err := ValidateIdentifier("has:colon"); err == nil {
		t.Fatalf("expected error for identifier containing separator")
	}
	if err := ValidateIdentifier("clean-id"); err != nil {
		t.Fatalf("unexpected error for clean identifier: %v", err)
	}
}

func TestSecretKey_RoundTripsThroughSplitSecretKey(t *testing.T) {
	key := SecretKey("tenant-1", "personal", "github-pat")

	tenantID, namespace, k, ok := SplitSecretKey(key)
	if !ok {
		t.Fatalf("SplitSecretKey: expected ok=true")
	}
	if tenantID != "tenant-1" || namespace != "personal" || k != "github-pat" {
		t.Fatalf("SplitSecretKey = (%q, %q, %q), want (tenant-1, personal, github-pat)", tenantID, namespace, k)
	}
}

func TestSplitSecretKey_RejectsNonSecretKeys(t *testing.T) {
	if _, _, _, ok := SplitSecretKey(TenantKey("tenant-1")); ok {
		t.Fatalf("expected ok=false for a tenant key")
	}
}

func TestPrefixes_ScopeCorrectly(t *testing.T) {
	nsPrefix := SecretNamespacePrefix("tenant-1", "personal")
	tenantPrefixKey := SecretTenantPrefix("tenant-1")

	key := SecretKey("tenant-1", "personal", "github-pat")
	otherNamespaceKey := SecretKey("tenant-1", "work", "github-pat")
	otherTenantKey := SecretKey("tenant-2", "personal", "github-pat")

	if !hasPrefix(key, nsPrefix) {
		t.Fatalf("expected %q to have namespace prefix %q", key, nsPrefix)
	}
	if hasPrefix(otherNamespaceKey, nsPrefix) {
		t.Fatalf("did not expect %q to have namespace prefix %q", otherNamespaceKey, nsPrefix)
	}
	if !hasPrefix(otherNamespaceKey, tenantPrefixKey) {
		t.Fatalf("expected %q to have tenant prefix %q", otherNamespaceKey, tenantPrefixKey)
	}
	if hasPrefix(otherTenantKey, tenantPrefixKey) {
		t.Fatalf("did not expect %q to have tenant prefix %q", otherTenantKey, tenantPrefixKey)
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func TestAuditKey_DisambiguatorOnlyAppendedWhenSet(t *testing.T) {
	plain := AuditKey("tenant-1", 1000, "")
	withDisambiguator := AuditKey("tenant-1", 1000, "2")

	if plain == withDisambiguator {
		t.Fatalf("expected disambiguated key to differ from plain key")
	}
	if !hasPrefix(plain, AuditTenantPrefix("tenant-1")) {
		t.Fatalf("expected audit key to have tenant prefix")
	}
}
