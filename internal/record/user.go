// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"bytes"
	"fmt"
	"time"

	"github.com/passvault/vault/models"
)

// User is one collaborator entry within a tenant's role table (spec §4.2
// supplemental). The engine consults this record to enforce the
// capability checks on [models.Role] at every call site.
type User struct {
	TenantID  string
	Email     string
	Role      models.Role
	CreatedAt time.Time
}

// Encode serializes u to its compact binary wire form.
func (u User) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, u.TenantID); err != nil {
		return nil, err
	}
	if err := writeString(&buf, u.Email); err != nil {
		return nil, err
	}
	if err := buf.WriteByte(byte(u.Role)); err != nil {
		return nil, err
	}
	if err := writeTime(&buf, u.CreatedAt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeUser parses a binary wire form written by [User.Encode].
func DecodeUser(data []byte) (User, error) {
	r := bytes.NewReader(data)
	var u User
	var err error

	if u.TenantID, err = readString(r); err != nil {
		return User{}, err
	}
	if u.Email, err = readString(r); err != nil {
		return User{}, err
	}
	role, err := r.ReadByte()
	if err != nil {
		return User{}, fmt.Errorf("record: read user role: %w", err)
	}
	u.Role = models.Role(role)
	if u.CreatedAt, err = readTime(r); err != nil {
		return User{}, err
	}
	return u, nil
}
