package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
	assert.Equal(t, "catalog", cfg.Storage.Bucket)
	assert.Equal(t, "xml_suuhouse", cfg.Reconcile.MasterProfile)
	assert.Equal(t, "json_mebloszyk", cfg.Reconcile.SupplementProfile)
	assert.False(t, cfg.Reconcile.Persist)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_PORT", "5432")
	t.Setenv("RECONCILE_PERSIST", "true")

	dir := t.TempDir()
	env := "RECONCILE_MASTER_LOCATION=s3://feeds/suuhouse.xml\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("RECONCILE_MASTER_LOCATION")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Reconcile.Persist)
	assert.Equal(t, "s3://feeds/suuhouse.xml", cfg.Reconcile.MasterLocation)
	assert.Equal(t, "debug", cfg.Log.Level)
}
