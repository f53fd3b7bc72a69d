// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// # Key Types
//
//   - Config: All settings, one struct per TOML section
//   - Duration: time.Duration spelled as "500ms" in TOML and JSON
//   - ValidateErrors: Every invalid setting found by Validate
//
// # Configuration Precedence
//
// Highest first:
//   - Environment variables (FOLIO_*), including those from ./.env
//   - ~/.folio/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	limit := cfg.Terminal.HistoryLimit
package config
