// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_FileAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "folio.log")

	logger, err := New(Options{Path: path, Level: "debug", MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("first", zap.String("command", "ls"))
	logger.Info("second")
	logger.Warn("third")
	require.NoError(t, logger.Sync())

	entries, err := Tail(path, "", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, "ls", entries[2].Fields["command"])
	assert.NotEmpty(t, entries[2].Timestamp)

	warn, err := Tail(path, "INFO", 10)
	require.NoError(t, err)
	require.Len(t, warn, 1)
	assert.Equal(t, "second", warn[0].Message)

	limited, err := Tail(path, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Console: true, Level: "warn", Stderr: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Error("shown")
	_ = logger.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_NothingConfigured(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	logger.Info("dropped")
}

func TestTail_MissingFile(t *testing.T) {
	entries, err := Tail(filepath.Join(t.TempDir(), "absent.log"), "", 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
