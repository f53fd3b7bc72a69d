// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Wiring of content, assistant, interpreter and history stores.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/assistant"
	"github.com/palash-droid/folio/internal/commands"
	"github.com/palash-droid/folio/internal/config"
	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/session"
	"github.com/palash-droid/folio/internal/storage"
	"github.com/palash-droid/folio/internal/ui/styles"
)

// LocalScope is the history scope of the single-user hosts (TUI, REPL,
// batch). Server sessions use their session id.
const LocalScope = "local"

// watchDebounce coalesces bursts of editor writes to one invalidation.
const watchDebounce = 200 * time.Millisecond

// App holds everything a host needs to run the terminal.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Profile *content.Profile
	Blogs   *content.BlogLoader
	Interp  *commands.Interpreter

	stores  session.StoreFunc
	opened  bool
	closers []func() error
}

// NewApp loads the profile and blog posts named by cfg and builds the
// interpreter over them. A blog directory is watched for edits when
// cfg.Content.Watch is set.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	prof, err := loadProfile(cfg.Content.ProfilePath)
	if err != nil {
		return nil, &configError{err}
	}

	opts := []content.BlogOption{
		content.WithCacheTTL(cfg.Content.CacheTTL.Duration),
		content.WithLogger(logger),
	}
	if cfg.UI.Theme == "dark" || cfg.UI.Theme == "light" {
		opts = append(opts, content.WithStyle(styles.NewTheme(cfg.UI.Theme).GlamourStyle()))
	}
	if !ColorsEnabled() {
		opts = append(opts, content.WithStyle("notty"))
	}
	if cfg.Content.BlogDir != "" {
		opts = append(opts, content.WithSource(os.DirFS(cfg.Content.BlogDir)))
	}
	blogs := content.NewBlogLoader(prof.BlogPosts, opts...)

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Profile: prof,
		Blogs:   blogs,
		Interp: commands.New(commands.Deps{
			Profile:   prof,
			Assistant: assistant.NewProcessor(assistant.BuildKnowledgeBase(prof)),
			Blogs:     blogs,
			Logger:    logger,
		}),
	}

	if cfg.Content.BlogDir != "" && cfg.Content.Watch {
		w, err := content.NewWatcher(cfg.Content.BlogDir, blogs, watchDebounce, logger)
		if err != nil {
			logger.Warn("blog watcher disabled", zap.Error(err))
		} else {
			app.closers = append(app.closers, w.Close)
		}
	}
	return app, nil
}

func loadProfile(path string) (*content.Profile, error) {
	if path == "" {
		return content.Default()
	}
	prof, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return prof, nil
}

// =============================================================================
// HISTORY STORES
// =============================================================================

// HistoryStores returns the store factory for the configured backend. It
// returns nil for the memory backend, whose history is never persisted.
func (a *App) HistoryStores() (session.StoreFunc, error) {
	if a.opened {
		return a.stores, nil
	}

	cfg := a.Config
	switch cfg.Terminal.HistoryBackend {
	case "memory":
		a.stores = nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath()), 0o700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		db, err := storage.OpenSQLite(cfg.DatabasePath())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.stores = db.Scope
	default:
		dir := cfg.HistoryDir()
		logger := a.Logger
		a.stores = func(scope string) storage.KV {
			kv, err := storage.NewFileKV(filepath.Join(dir, scope))
			if err != nil {
				logger.Warn("history not persisted", zap.String("scope", scope), zap.Error(err))
				return nil
			}
			return kv
		}
	}
	a.opened = true
	return a.stores, nil
}

// LocalSession creates the session of a single-user host with its history
// loaded from the configured store.
func (a *App) LocalSession(ctx context.Context) (*session.Session, error) {
	stores, err := a.HistoryStores()
	if err != nil {
		return nil, err
	}
	var kv storage.KV
	if stores != nil {
		kv = stores(LocalScope)
	}
	hist := session.LoadHistory(ctx, kv, a.Config.Terminal.HistoryLimit, a.Logger)
	return session.New(hist), nil
}

// Close releases watchers and stores in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
