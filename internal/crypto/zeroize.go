// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// SecretBytes is a byte container whose contents are overwritten with zeroes
// once the caller is done with them. It is used for every raw key in this
// package so that key material does not linger in memory (or in a heap
// snapshot) longer than necessary.
type SecretBytes struct {
	b []byte
}

// NewSecretBytes copies b into a new SecretBytes. The caller retains
// ownership of (and responsibility for) its own copy of b.
func NewSecretBytes(b []byte) *SecretBytes {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &SecretBytes{b: cp}
}

// ExposeBytes returns the underlying byte slice. The name is deliberately
// loud: every call site is a point where key material becomes visible to
// whatever the caller does next, so call sites should be narrow and few.
func (s *SecretBytes) ExposeBytes() []byte {
	return s.b
}

// Len returns the number of bytes held.
func (s *SecretBytes) Len() int {
	return len(s.b)
}

// Destroy overwrites the held bytes with zeroes. Safe to call more than
// once; safe to call on a nil receiver.
func (s *SecretBytes) Destroy() {
	if s == nil {
		return
	}
	for i := range s.b {
		s.b[i] = 0
	}
}
