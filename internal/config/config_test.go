package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME and HOME at empty temp dirs and clears LUMA_* vars
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"LUMA_DIR", "LUMA_DATA_DIR", "LUMA_STORE", "LUMA_THEME", "LUMA_EXPORT_DIR", "LUMA_LOG_LEVEL", "LUMA_LOG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".luma"), cfg.DataDir)
	assert.Equal(t, "json", cfg.Store)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, ".luma", "logs", "luma.log"), cfg.LogFile())
	assert.Equal(t, filepath.Join(home, ".luma", "templates"), cfg.TemplatesDir())
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_Precedence(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, ".config", "luma")
	require.NoError(t, os.MkdirAll(dir, 0755))
	file := "store: sqlite\ntheme: light\nexport_dir: ~/exports\nlog:\n  level: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(file), 0644))

	t.Setenv("LUMA_THEME", "dark")
	t.Setenv("LUMA_DIR", "/tmp/luma-env")

	cfg, err := Load(Options{Overrides: map[string]string{KeyStore: "memory"}})
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store, "override beats file")
	assert.Equal(t, "dark", cfg.Theme, "env beats file")
	assert.Equal(t, "/tmp/luma-env", cfg.DataDir, "LUMA_DIR alias")
	assert.Equal(t, filepath.Join(home, "exports"), cfg.ExportDir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "luma.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/luma\n"), 0644))

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "/srv/luma", cfg.DataDir)

	_, err = Load(Options{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	_, err := Load(Options{Overrides: map[string]string{KeyStore: "redis"}})
	assert.ErrorContains(t, err, "invalid store")

	_, err = Load(Options{Overrides: map[string]string{KeyTheme: "sepia"}})
	assert.ErrorContains(t, err, "invalid theme")
}
