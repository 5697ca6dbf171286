// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EventType is the closed vocabulary of audit log event types (spec §3,
// §4.6). Implementations MUST emit exactly these tags — no others.
type EventType string

const (
	EventLogin          EventType = "login"
	EventLogout         EventType = "logout"
	EventSecretCreated  EventType = "secret_created"
	EventSecretAccessed EventType = "secret_accessed"
	EventSecretUpdated  EventType = "secret_updated"
	EventSecretDeleted  EventType = "secret_deleted"
	EventTenantCreated  EventType = "tenant_created"
	EventUserAdded      EventType = "user_added"
	EventUserRemoved    EventType = "user_removed"
	EventRoleChanged    EventType = "role_changed"
	EventSyncPush       EventType = "sync_push"
	EventSyncPull       EventType = "sync_pull"

	// EventExport and EventImport complete spec §3's closed vocabulary.
	// Neither has a call site yet: this engine does not expose a bulk
	// import/export operation (spec §4.4's operation list has none), so
	// these are reserved for whatever front-end eventually adds one.
	EventExport EventType = "export"
	EventImport EventType = "import"
)
