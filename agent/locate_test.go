package agent

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExecutable(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
}

func TestLocateCLI_Override(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "my-agent")
	writeExecutable(t, bin)

	path, err := locateCLI(bin)
	require.NoError(t, err)
	assert.Equal(t, bin, path)
}

func TestLocateCLI_PathLookup(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, filepath.Join(dir, defaultBinary))
	t.Setenv("PATH", dir)

	path, err := locateCLI("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, defaultBinary), path)
}

func TestLocateCLI_OverrideBeatsPath(t *testing.T) {
	pathDir := t.TempDir()
	writeExecutable(t, filepath.Join(pathDir, defaultBinary))
	t.Setenv("PATH", pathDir)

	overrideDir := t.TempDir()
	override := filepath.Join(overrideDir, "agent-dev")
	writeExecutable(t, override)

	path, err := locateCLI(override)
	require.NoError(t, err)
	assert.Equal(t, override, path)
}

func TestLocateCLI_NotFound(t *testing.T) {
	empty := t.TempDir()
	t.Setenv("PATH", empty)

	missing := filepath.Join(empty, "nope")
	_, err := locateCLI(missing)
	require.Error(t, err)

	var notFound *CLINotFoundError
	require.True(t, errors.As(err, &notFound))
	// The override is reported first, followed by the $PATH probe.
	require.GreaterOrEqual(t, len(notFound.Searched), 2)
	assert.Equal(t, missing, notFound.Searched[0])
	assert.Equal(t, filepath.Join(empty, defaultBinary), notFound.Searched[1])
}

func TestLocateCLI_NonExecutableSkipped(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, defaultBinary)
	require.NoError(t, os.WriteFile(plain, []byte("data"), 0o644))
	t.Setenv("PATH", dir)

	_, err := locateCLI("")
	var notFound *CLINotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, notFound.Searched, plain)
}
