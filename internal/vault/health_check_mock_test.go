// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/passvault/vault/internal/mock"
)

// TestHealthCheck_ChecksumFailureWinsEvenIfProbeSucceeds drives the engine
// against a mocked store so the checksum-inconsistency path can be forced
// deterministically — a real bbolt file never reports corruption on demand
// (spec §9: a checksum failure always wins over a successful probe).
func TestHealthCheck_ChecksumFailureWinsEvenIfProbeSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockStore(ctrl)
	store.EXPECT().Checksum().Return(false, 3, nil)
	store.EXPECT().Put(healthCheckProbeKey, gomock.Any()).DoAndReturn(func(key string, value []byte) error {
		return nil
	})
	store.EXPECT().Get(healthCheckProbeKey).DoAndReturn(func(key string) ([]byte, error) {
		return []byte("probe-value-not-checked-here"), nil
	})
	store.EXPECT().Delete(healthCheckProbeKey).Return(nil)
	store.EXPECT().Flush().Return(nil)

	engine, err := New(store, nil, nil)
	require.NoError(t, err)

	err = engine.HealthCheck()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrStorageCorruption)
}

// TestHealthCheck_StorageIOErrorOnChecksumIsWrapped verifies a transport
// failure from the store surfaces as ErrStorageIO rather than being
// mistaken for a corruption signal.
func TestHealthCheck_StorageIOErrorOnChecksumIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockStore(ctrl)
	store.EXPECT().Checksum().Return(false, 0, errors.New("disk unavailable"))

	engine, err := New(store, nil, nil)
	require.NoError(t, err)

	err = engine.HealthCheck()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrStorageIO)
}
