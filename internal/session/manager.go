// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/storage"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Config holds configuration for the session manager.
type Config struct {
	// IdleTimeout evicts sessions untouched for this long (default: 30 minutes).
	IdleTimeout time.Duration

	// HistoryLimit caps each session's history (default: 50).
	HistoryLimit int
}

// DefaultConfig returns the default manager configuration.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:  30 * time.Minute,
		HistoryLimit: DefaultHistoryLimit,
	}
}

// StoreFunc returns the store backing a session's history. It may return
// nil for sessions whose history should not persist.
type StoreFunc func(id string) storage.KV

// Manager owns the sessions of a multi-client host, keyed by id. Sessions
// idle for longer than IdleTimeout are evicted.
type Manager struct {
	cfg     Config
	cache   *cache.Cache
	storeFn StoreFunc
	logger  *zap.Logger
}

// NewManager creates a manager. storeFn may be nil.
func NewManager(cfg Config, storeFn StoreFunc, logger *zap.Logger) *Manager {
	def := DefaultConfig()
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := cache.New(cfg.IdleTimeout, cfg.IdleTimeout/2)
	c.OnEvicted(func(id string, _ interface{}) {
		logger.Debug("session evicted", zap.String("session_id", id))
	})

	return &Manager{cfg: cfg, cache: c, storeFn: storeFn, logger: logger}
}

// Create starts a new session with a fresh id.
func (m *Manager) Create(ctx context.Context) *Session {
	return m.create(ctx, uuid.NewString())
}

// create builds a session for id. When another caller registered id first,
// that session is returned instead.
func (m *Manager) create(ctx context.Context, id string) *Session {
	var kv storage.KV
	if m.storeFn != nil {
		kv = m.storeFn(id)
	}
	s := NewWithID(id, LoadHistory(ctx, kv, m.cfg.HistoryLimit, m.logger))
	for {
		if err := m.cache.Add(id, s, cache.DefaultExpiration); err == nil {
			m.logger.Info("session created", zap.String("session_id", id))
			return s
		}
		if existing, ok := m.Get(id); ok {
			return existing
		}
		// The other session expired between Add and Get; try again.
	}
}

// Get returns a live session and extends its lifetime.
func (m *Manager) Get(id string) (*Session, bool) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	s.Touch()
	m.cache.SetDefault(id, s)
	return s, true
}

// GetOrCreate returns the session for id, creating it if it expired or never
// existed. Ids that are not UUIDs are replaced with a fresh one so clients
// cannot choose arbitrary storage scopes.
func (m *Manager) GetOrCreate(ctx context.Context, id string) *Session {
	if s, ok := m.Get(id); ok {
		return s
	}
	if _, err := uuid.Parse(id); err != nil {
		return m.Create(ctx)
	}
	return m.create(ctx, id)
}

// Delete drops a session. Its persisted history is kept.
func (m *Manager) Delete(id string) {
	m.cache.Delete(id)
}

// Count returns the number of live sessions, expired ones included until
// the next cleanup.
func (m *Manager) Count() int {
	return m.cache.ItemCount()
}

// Statuses summarises every live session.
func (m *Manager) Statuses() []Status {
	items := m.cache.Items()
	out := make([]Status, 0, len(items))
	for _, it := range items {
		out = append(out, it.Object.(*Session).Status())
	}
	return out
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.Itoa(int(d.Seconds())) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
