// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package content holds the static portfolio data and the blog loader.
//
// The profile (skills, interests, projects, blog metadata, certifications and
// contact details) is decoded from YAML, by default from the copy embedded in
// the binary. Blog bodies are markdown files looked up by id, slug or
// slugified title, cached in memory and rendered with glamour.
package content
