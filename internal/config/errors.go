// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// ErrConfig is returned when the configuration file cannot be read or
// parsed, or the merged configuration fails validation (spec §7).
var ErrConfig = errors.New("invalid or unreadable configuration")
