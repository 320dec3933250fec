package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogging(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		CloseAll()
		require.NoError(t, Initialize(Settings{}))
	})
}

func TestInitializeDisabledIsNoOp(t *testing.T) {
	resetLogging(t)

	require.NoError(t, Initialize(Settings{Debug: false}))
	assert.False(t, IsDebugMode())

	// Logging with debug off must not panic or create files.
	API("backend call completed in %dms", 42)
	StoreError("boom")
}

func TestDebugModeWritesCategoryFiles(t *testing.T) {
	resetLogging(t)
	dir := t.TempDir()

	require.NoError(t, Initialize(Settings{Debug: true, Level: "debug", Dir: dir}))
	require.True(t, IsDebugMode())

	Ingest("coerced %d tasks", 3)
	CloseAll()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var found bool
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_ingest.log") {
			found = true
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			assert.Contains(t, string(data), "coerced 3 tasks")
		}
	}
	assert.True(t, found, "expected an ingest category log file in %s", dir)
}

func TestLevelFiltering(t *testing.T) {
	resetLogging(t)
	dir := t.TempDir()

	require.NoError(t, Initialize(Settings{Debug: true, Level: "warn", Dir: dir}))

	l := Get(CategoryServer)
	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("visible warn")
	l.Error("visible error")
	CloseAll()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), "_server.log") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "hidden")
		assert.Contains(t, string(data), "visible warn")
		assert.Contains(t, string(data), "visible error")
	}
}
