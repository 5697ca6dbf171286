// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the merged [Config] satisfies the invariants the
// engine depends on before it is used to open a store.
func (cfg *Config) validate() error {
	if cfg.StoragePath == "" {
		return fmt.Errorf("%w: storage_path is required", ErrConfig)
	}

	switch cfg.Security.EncryptionAlgorithm {
	case "", "aes256gcm", "chacha20poly1305":
	default:
		return fmt.Errorf("%w: unknown security.encryption_algorithm %q", ErrConfig, cfg.Security.EncryptionAlgorithm)
	}

	switch cfg.Cloud.Mode {
	case "", CloudModeNone, CloudModeBackup, CloudModeCollaborative:
	default:
		return fmt.Errorf("%w: unknown cloud.mode %q", ErrConfig, cfg.Cloud.Mode)
	}

	if cfg.Cloud.Mode != CloudModeNone && cfg.Cloud.Mode != "" {
		switch cfg.Cloud.Backend {
		case CloudBackendS3, CloudBackendPostgres:
		default:
			return fmt.Errorf("%w: cloud.backend required when cloud.mode is %q", ErrConfig, cfg.Cloud.Mode)
		}
	}

	return nil
}
