// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the small key-value persistence used for
// terminal state such as command history.
//
// # Key Types
//
//   - KV: scoped byte-value store with Get, Put and Delete
//   - FileKV: one JSON file per key, written atomically
//   - SQLiteDB: a single database whose Scope method returns a KV per
//     session, used by the web host
//   - MemoryKV: process-local store for tests and ephemeral sessions
//
// # Usage
//
//	kv, err := storage.NewFileKV(filepath.Join(dataDir, "state"))
//	err = kv.Put(ctx, "terminal_history", data)
//	data, err := kv.Get(ctx, "terminal_history")
//	if errors.Is(err, storage.ErrNotFound) { ... }
package storage
