// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/palash-droid/folio/internal/util"
)

// FileKV stores each key as <BaseDir>/<key>.json.
type FileKV struct {
	BaseDir string
}

// NewFileKV creates baseDir if needed.
func NewFileKV(baseDir string) (*FileKV, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileKV{BaseDir: baseDir}, nil
}

func (s *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.filePath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileKV) Put(_ context.Context, key string, value []byte) error {
	if err := util.AtomicWriteFile(s.filePath(key), value, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *FileKV) Delete(_ context.Context, key string) error {
	err := os.Remove(s.filePath(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// filePath maps a key to a file name, replacing path separators so a key
// can never escape BaseDir.
func (s *FileKV) filePath(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.BaseDir, safe+".json")
}
