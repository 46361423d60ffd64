package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")
	assert.Equal(t, "eazybuy", cfg.System.Appid)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 1880, cfg.Web.Port)
}

func TestLoadConfigFileOverride(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "eazybuy.yml")
	content := []byte("web:\n  host: 127.0.0.1\n  port: 9090\ndatabase:\n  type: sqlite\n")
	require.NoError(t, os.WriteFile(cfile, content, 0o644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	// untouched sections keep defaults
	assert.Equal(t, "eazybuy", cfg.System.Appid)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("EAZYBUY_WEB_PORT", "8088")
	t.Setenv("EAZYBUY_DB_TYPE", "sqlite")
	cfg := LoadConfig("")
	assert.Equal(t, 8088, cfg.Web.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
}
