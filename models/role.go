// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the small set of value types shared across the
// vault's packages: roles and their capabilities, the closed vocabulary of
// audit event types, and sync conflict resolution policies.
package models

import "fmt"

// Role is a collaborator's level of access within a tenant (spec §4.2
// supplemental). Capability checks are enforced by the storage engine at
// every call site that mutates or reads protected data, not only by
// front-ends.
type Role uint8

const (
	RoleReader Role = iota
	RoleWriter
	RoleAuditor
	RoleAdmin
	RoleOwner
)

// String renders the role using its config/API spelling.
func (r Role) String() string {
	switch r {
	case RoleReader:
		return "reader"
	case RoleWriter:
		return "writer"
	case RoleAuditor:
		return "auditor"
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	default:
		return "unknown"
	}
}

// CanRead reports whether r may read secrets. Every role above can read.
func (r Role) CanRead() bool {
	return true
}

// CanWrite reports whether r may create, update, or delete secrets.
func (r Role) CanWrite() bool {
	switch r {
	case RoleWriter, RoleAdmin, RoleOwner:
		return true
	default:
		return false
	}
}

// CanAudit reports whether r may read the audit log. Owner is deliberately
// excluded: spec §4.5's role table marks Owner's audit column "—", so only
// Admin and Auditor may read it.
func (r Role) CanAudit() bool {
	switch r {
	case RoleAuditor, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanAdmin reports whether r may manage tenant settings and other
// collaborators' roles.
func (r Role) CanAdmin() bool {
	switch r {
	case RoleAdmin, RoleOwner:
		return true
	default:
		return false
	}
}

// ParseRole maps the config/API spelling back to a [Role].
func ParseRole(s string) (Role, bool) {
	switch s {
	case "reader":
		return RoleReader, true
	case "writer":
		return RoleWriter, true
	case "auditor":
		return RoleAuditor, true
	case "admin":
		return RoleAdmin, true
	case "owner":
		return RoleOwner, true
	default:
		return 0, false
	}
}

// MarshalJSON renders the role using its string spelling so session
// tickets and config files stay human-readable.
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON parses the string spelling produced by [Role.MarshalJSON].
func (r *Role) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	role, ok := ParseRole(s)
	if !ok {
		return fmt.Errorf("models: unknown role %q", s)
	}
	*r = role
	return nil
}
