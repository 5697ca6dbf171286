// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays cfg with environment variables using the caarlos0/env
// library, prefixed "VAULT_" (e.g. VAULT_STORAGE_PATH, VAULT_CLOUD_MODE).
// Struct fields are mapped via their `env` and `envPrefix` tags defined on
// [Config] and its nested types. Absent variables leave the existing
// (file- or default-derived) value untouched.
func parseEnv(cfg *Config) error {
	opts := env.Options{Prefix: "VAULT_"}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("%w: reading environment: %v", ErrConfig, err)
	}
	return nil
}
