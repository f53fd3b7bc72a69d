// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the folio packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - Slugify, SlugifyStrict: the file-name forms used by the virtual tree and the blog loader
//   - PadRight, Truncate: display-width aware layout helpers
//
// # Usage
//
//	name := util.Slugify("Customer Analytics Dashboard") + ".txt"
//	line := util.PadRight(name, 40) + " - " + title
//	err := util.AtomicWriteFile(path, data, 0o600)
package util
