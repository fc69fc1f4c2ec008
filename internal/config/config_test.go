package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadMissingFile expects defaults when the config file does not exist.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "storage:\n  backend: sqlite\n  path: contacts.db\nlog:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "contacts.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

// TestLoadPartialFile expects unspecified sections to keep their defaults.
func TestLoadPartialFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log:\n  level: info\n"))
	require.NoError(t, err)
	assert.Equal(t, BackendSnapshot, cfg.Storage.Backend)
	assert.Equal(t, "addressbook.yaml", cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writeConfig(t, "storge:\n  backend: sqlite\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "pickle"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Storage.Path = ""
	assert.Error(t, cfg.Validate())
}
