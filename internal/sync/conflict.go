// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sync

import (
	"fmt"

	"github.com/passvault/vault/internal/record"
	"github.com/passvault/vault/models"
)

// Conflict describes one (tenant, namespace, key) address where the local
// and remote versions have diverged (spec §4.7, §7 Sync errors).
type Conflict struct {
	Local  record.Secret
	Remote record.Secret
	Type   models.ConflictType
}

// DetectConflicts compares local against remote by (tenant, namespace,
// key). A conflict is flagged when both sides hold the address but their
// Version fields differ; addresses present on only one side are not
// conflicts (they are a push or a pull, not a merge).
func DetectConflicts(local, remote []record.Secret) []Conflict {
	remoteByAddress := make(map[string]record.Secret, len(remote))
	for _, r := range remote {
		remoteByAddress[address(r.Metadata)] = r
	}

	var conflicts []Conflict
	for _, l := range local {
		r, ok := remoteByAddress[address(l.Metadata)]
		if !ok {
			continue
		}
		if l.Metadata.Version != r.Metadata.Version {
			conflicts = append(conflicts, Conflict{Local: l, Remote: r, Type: models.ConflictVersionMismatch})
		}
	}
	return conflicts
}

func address(m record.SecretMetadata) string {
	return fmt.Sprintf("%s\x00%s\x00%s", m.TenantID, m.Namespace, m.Key)
}

// Resolve picks the winning side of a conflict according to policy. A
// [models.PolicyManual] conflict cannot be resolved automatically; Resolve
// returns ok=false and the caller must surface it to an operator.
func Resolve(c Conflict, policy models.ConflictResolutionPolicy) (winner record.Secret, ok bool) {
	switch policy {
	case models.PolicyPreferLocal:
		return c.Local, true
	case models.PolicyPreferRemote:
		return c.Remote, true
	case models.PolicyPreferNewer:
		if c.Local.Metadata.UpdatedAt.After(c.Remote.Metadata.UpdatedAt) {
			return c.Local, true
		}
		return c.Remote, true
	case models.PolicyManual:
		return record.Secret{}, false
	default:
		return record.Secret{}, false
	}
}
