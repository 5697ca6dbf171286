// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConflictResolutionPolicy determines how the sync manager settles a
// version mismatch between a local secret and its remote counterpart
// (spec §7).
type ConflictResolutionPolicy uint8

const (
	PolicyPreferLocal ConflictResolutionPolicy = iota
	PolicyPreferRemote
	PolicyPreferNewer
	PolicyManual
)

// String renders the policy using its config spelling.
func (p ConflictResolutionPolicy) String() string {
	switch p {
	case PolicyPreferLocal:
		return "prefer_local"
	case PolicyPreferRemote:
		return "prefer_remote"
	case PolicyPreferNewer:
		return "prefer_newer"
	case PolicyManual:
		return "manual"
	default:
		return "unknown"
	}
}

// ParseConflictResolutionPolicy maps the config spelling back to a
// [ConflictResolutionPolicy].
func ParseConflictResolutionPolicy(s string) (ConflictResolutionPolicy, bool) {
	switch s {
	case "prefer_local":
		return PolicyPreferLocal, true
	case "prefer_remote":
		return PolicyPreferRemote, true
	case "prefer_newer":
		return PolicyPreferNewer, true
	case "manual":
		return PolicyManual, true
	default:
		return 0, false
	}
}

// ConflictType classifies why the sync manager flagged a secret as
// conflicting (spec §7).
type ConflictType string

const (
	ConflictVersionMismatch ConflictType = "version_mismatch"
	ConflictDeletedLocally  ConflictType = "deleted_locally"
	ConflictDeletedRemotely ConflictType = "deleted_remotely"
)
