// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package content

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invalidates cached blog bodies when their files change on disk.
// Events are debounced per file so an editor's write-rename-chmod burst
// costs one invalidation.
type Watcher struct {
	loader   *BlogLoader
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	pending map[string]time.Time

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher watches dir, which must be the directory the loader reads from.
func NewWatcher(dir string, loader *BlogLoader, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	w := &Watcher{
		loader:   loader,
		watcher:  fw,
		debounce: debounce,
		logger:   logger,
		pending:  make(map[string]time.Time),
		done:     make(chan struct{}),
	}

	w.wg.Add(2)
	go w.processEvents()
	go w.processPending()
	return w, nil
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending[filepath.Base(ev.Name)] = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("blog watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) processPending() {
	defer w.wg.Done()

	tick := w.debounce / 2
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case now := <-ticker.C:
			var ready []string
			w.mu.Lock()
			for name, at := range w.pending {
				if now.Sub(at) >= w.debounce {
					ready = append(ready, name)
					delete(w.pending, name)
				}
			}
			w.mu.Unlock()

			for _, name := range ready {
				w.loader.Invalidate(name)
				w.logger.Debug("blog content invalidated", zap.String("file", name))
			}
		}
	}
}

// Close stops the watcher and waits for its goroutines.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
