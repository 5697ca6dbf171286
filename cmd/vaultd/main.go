// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command vaultd is the composition root that wires the embedded storage
// engine together for operational use: it loads configuration, opens the
// on-disk store, restores a session if one is cached, and runs a health
// check. It is deliberately not an interactive shell (spec §1 names the
// terminal UI as a separate, out-of-scope collaborator) — it exists so the
// engine, config, logger, session, and audit packages are wired into one
// running process rather than only exercised by tests.
package main

import (
	"fmt"

	"github.com/passvault/vault/internal/config"
	"github.com/passvault/vault/internal/kv"
	"github.com/passvault/vault/internal/logger"
	"github.com/passvault/vault/internal/session"
	"github.com/passvault/vault/internal/vault"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vaultd")

	cfgPath, err := config.DefaultPath()
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving config path")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	log.Debug().Any("config", cfg).Msg("loaded configuration")

	store, err := kv.Open(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.StoragePath).Msg("error opening storage")
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing storage")
		}
	}()

	ticketPath, err := session.DefaultPath()
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving session ticket path")
	}
	tickets := session.NewManager(ticketPath)

	engine, err := vault.New(store, tickets, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error constructing storage engine")
	}

	if err := engine.HealthCheck(); err != nil {
		log.Error().Err(err).Msg("health check failed")
		return
	}

	stats, err := engine.GetStats()
	if err != nil {
		log.Error().Err(err).Msg("error gathering stats")
		return
	}

	log.Info().
		Int("secrets", stats.SecretCount).
		Int("namespaces", stats.NamespaceCount).
		Int("tenants", stats.TenantCount).
		Msg("storage engine healthy")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
