// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/storage"
)

const (
	// HistoryKey is the storage key of the persisted history.
	HistoryKey = "terminal_history"

	// DefaultHistoryLimit is also the largest limit a history accepts.
	DefaultHistoryLimit = 50
)

// History is an ordered, capped list of submitted lines, oldest first.
// When full, the oldest entry is evicted. Every mutation is written through
// to the store; write failures are logged, never returned, because history
// is convenience state.
//
// The browse cursor counts back from the newest entry; -1 means the user is
// not browsing.
type History struct {
	mu      sync.Mutex
	entries []string
	limit   int
	cursor  int

	kv     storage.KV
	logger *zap.Logger
}

// NewHistory returns an empty, unpersisted history. Limits outside
// 1..DefaultHistoryLimit fall back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit, cursor: -1, logger: zap.NewNop()}
}

// LoadHistory reads the history stored in kv. A missing or corrupt value
// yields an empty history.
func LoadHistory(ctx context.Context, kv storage.KV, limit int, logger *zap.Logger) *History {
	h := NewHistory(limit)
	h.kv = kv
	if logger != nil {
		h.logger = logger
	}
	if kv == nil {
		return h
	}

	data, err := kv.Get(ctx, HistoryKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.logger.Warn("history load failed", zap.Error(err))
		}
		return h
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		h.logger.Warn("history corrupt, starting empty", zap.Error(err))
		return h
	}
	if len(entries) > h.limit {
		entries = entries[len(entries)-h.limit:]
	}
	h.entries = entries
	return h
}

// Push appends line, evicting the oldest entry past the limit, and resets
// the browse cursor.
func (h *History) Push(line string) {
	h.mu.Lock()
	h.entries = append(h.entries, line)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]string(nil), h.entries[over:]...)
	}
	h.cursor = -1
	snapshot := append([]string(nil), h.entries...)
	h.mu.Unlock()

	h.persist(snapshot)
}

// Clear empties the history.
func (h *History) Clear() {
	h.mu.Lock()
	h.entries = nil
	h.cursor = -1
	h.mu.Unlock()

	h.persist([]string{})
}

func (h *History) persist(entries []string) {
	if h.kv == nil {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		h.logger.Warn("history encode failed", zap.Error(err))
		return
	}
	if err := h.kv.Put(context.Background(), HistoryKey, data); err != nil {
		h.logger.Warn("history save failed", zap.Error(err))
	}
}

// Entries returns a copy, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) Limit() int {
	return h.limit
}

// Up moves the cursor one entry older and returns the entry to display.
// At the oldest entry it stays put. ok is false when the history is empty.
func (h *History) Up() (line string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.entries)
	if n == 0 {
		return "", false
	}
	if h.cursor < n-1 {
		h.cursor++
	}
	return h.entries[n-1-h.cursor], true
}

// Down moves the cursor one entry newer. Stepping past the newest entry
// stops browsing and returns the empty string.
func (h *History) Down() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor > 0 {
		h.cursor--
		return h.entries[len(h.entries)-1-h.cursor]
	}
	h.cursor = -1
	return ""
}

// ResetCursor stops browsing.
func (h *History) ResetCursor() {
	h.mu.Lock()
	h.cursor = -1
	h.mu.Unlock()
}

// Cursor reports the browse position, -1 when not browsing.
func (h *History) Cursor() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}
