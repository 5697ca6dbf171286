// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the vault engine.
//
// Configuration is assembled from two sources, in priority order (later
// sources override earlier non-zero fields):
//  1. a TOML file at the OS-standard per-user configuration directory
//  2. environment variables, overlaid on top of the file
//
// The main entry point is [Load].
package config
