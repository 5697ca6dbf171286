// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level configuration container for the vault engine. It
// is populated by merging values from a TOML file and environment variable
// overrides. Struct tags:
//   - toml — key recognized in the TOML configuration file.
//   - env / envPrefix — environment variable overlay (github.com/caarlos0/env).
type Config struct {
	// StoragePath is the path to the vault data file (the embedded store's
	// directory or file). Deleting it wipes the vault. Required.
	StoragePath string `toml:"storage_path" env:"STORAGE_PATH"`

	// TenantID is the default tenant used by shell operations when none is
	// specified explicitly.
	TenantID string `toml:"tenant_id" env:"TENANT_ID"`

	Cloud    Cloud    `toml:"cloud" envPrefix:"CLOUD_"`
	Security Security `toml:"security" envPrefix:"SECURITY_"`
	UI       UI       `toml:"ui" envPrefix:"UI_"`
}

// CloudMode selects whether, and how, the local store synchronizes with a
// remote backend.
type CloudMode string

const (
	CloudModeNone          CloudMode = "None"
	CloudModeBackup        CloudMode = "Backup"
	CloudModeCollaborative CloudMode = "Collaborative"
)

// CloudBackendKind names the remote transport a sync adapter speaks to. The
// vault engine never constructs one itself (§1, §6) — it only records the
// caller's choice.
type CloudBackendKind string

const (
	CloudBackendS3       CloudBackendKind = "S3"
	CloudBackendPostgres CloudBackendKind = "Postgres"
)

// Cloud groups remote-sync configuration. None of these fields are consumed
// by the engine directly; they are passed through to whatever sync adapter
// the caller constructs (§4.7).
type Cloud struct {
	Mode                CloudMode        `toml:"mode" env:"MODE"`
	Backend             CloudBackendKind `toml:"backend" env:"BACKEND"`
	Region              string           `toml:"region" env:"REGION"`
	Bucket              string           `toml:"bucket" env:"BUCKET"`
	DatabaseURL         string           `toml:"database_url" env:"DATABASE_URL"`
	EnvelopeEncryption  bool             `toml:"envelope_encryption" env:"ENVELOPE_ENCRYPTION"`
	SyncIntervalMinutes int              `toml:"sync_interval_minutes" env:"SYNC_INTERVAL_MINUTES"`
}

// Security groups the cryptographic defaults applied at tenant creation.
type Security struct {
	EncryptionAlgorithm   string        `toml:"encryption_algorithm" env:"ENCRYPTION_ALGORITHM"`
	KeyDerivationMemoryKiB uint32       `toml:"key_derivation_memory_cost" env:"KEY_DERIVATION_MEMORY_COST"`
	KeyDerivationTimeCost  uint32       `toml:"key_derivation_time_cost" env:"KEY_DERIVATION_TIME_COST"`
	KeyDerivationParallel  uint8        `toml:"key_derivation_parallelism" env:"KEY_DERIVATION_PARALLELISM"`
	SessionTimeoutHours    int          `toml:"session_timeout_hours" env:"SESSION_TIMEOUT_HOURS"`
	Require2FA             bool         `toml:"require_2fa" env:"REQUIRE_2FA"`
}

// SessionTimeout returns SessionTimeoutHours as a [time.Duration].
func (s Security) SessionTimeout() time.Duration {
	return time.Duration(s.SessionTimeoutHours) * time.Hour
}

// UI groups presentation preferences for the out-of-scope interactive shell.
// The engine never reads these; they are carried only so a single config
// file can serve both the engine and the CLI collaborator named in spec §1.
type UI struct {
	ColorOutput  bool   `toml:"color_output" env:"COLOR_OUTPUT"`
	ProgressBars bool   `toml:"progress_bars" env:"PROGRESS_BARS"`
	TableFormat  string `toml:"table_format" env:"TABLE_FORMAT"`
	DateFormat   string `toml:"date_format" env:"DATE_FORMAT"`
}

// Default returns a Config with the engine's documented defaults: AES-256-GCM,
// Argon2id at memory_cost=65536 KiB / time_cost=3 / parallelism=1, and a
// 24-hour session timeout (spec §4.1, §4.5).
func Default() Config {
	return Config{
		Security: Security{
			EncryptionAlgorithm:    "aes256gcm",
			KeyDerivationMemoryKiB: 65536,
			KeyDerivationTimeCost:  3,
			KeyDerivationParallel:  1,
			SessionTimeoutHours:    24,
		},
	}
}

// DefaultPath returns "<per-user config dir>/vault/config.toml".
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return filepath.Join(dir, "vault", "config.toml"), nil
}

// Load reads the TOML file at path (if it exists — a missing file is not an
// error, since [Default] plus environment overrides may be sufficient),
// overlays environment variables, validates the result, and returns it.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if decErr := toml.Unmarshal(data, &cfg); decErr != nil {
			return Config{}, fmt.Errorf("%w: parsing %s: %v", ErrConfig, path, decErr)
		}
	case os.IsNotExist(err):
		// no file; defaults + environment only
	default:
		return Config{}, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}

	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
