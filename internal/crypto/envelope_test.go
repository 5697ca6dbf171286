// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"testing"
)

func TestEnvelopeEncryption_RoundTrip(t *testing.T) {
	salt, _ := GenerateSalt()
	kekMaster := DeriveMasterKey("kek-passphrase", salt, SuiteAES256GCM, DefaultArgon2Params())
	kek := NewLocalKeyEncryptionKey(kekMaster, "test-kek")

	plaintext := []byte("secret data for envelope encryption")
	env, err := EnvelopeEncrypt(kek, plaintext, SuiteAES256GCM)
	if err != nil {
		t.Fatalf("EnvelopeEncrypt: %v", err)
	}
	if env.KEKID != "test-kek" {
		t.Fatalf("KEKID = %q, want %q", env.KEKID, "test-kek")
	}

	got, err := EnvelopeDecrypt(kek, env)
	if err != nil {
		t.Fatalf("EnvelopeDecrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestEnvelopeEncryption_WrongKEKFails(t *testing.T) {
	salt1, _ := GenerateSalt()
	salt2, _ := GenerateSalt()
	kek1 := NewLocalKeyEncryptionKey(DeriveMasterKey("one", salt1, SuiteAES256GCM, DefaultArgon2Params()), "kek-1")
	kek2 := NewLocalKeyEncryptionKey(DeriveMasterKey("two", salt2, SuiteAES256GCM, DefaultArgon2Params()), "kek-2")

	env, err := EnvelopeEncrypt(kek1, []byte("payload"), SuiteAES256GCM)
	if err != nil {
		t.Fatalf("EnvelopeEncrypt: %v", err)
	}

	if _, err := EnvelopeDecrypt(kek2, env); err == nil {
		t.Fatalf("expected decryption under the wrong KEK to fail")
	}
}
