package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/depsync/pkg/constants"
	"github.com/agentstation/depsync/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultBuildFile, config.BuildFile)
	assert.Equal(t, constants.DefaultCatalogFile, config.CatalogFile)
	assert.Equal(t, constants.DefaultMarker, config.Marker)
	assert.True(t, config.ValidateTOML)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("DEPSYNC_BUILD_FILE", "app/build.gradle")
	t.Setenv("DEPSYNC_MARKER", "managed")
	t.Setenv("DEPSYNC_VALIDATE_TOML", "false")
	t.Setenv("DEPSYNC_FORMAT", "yaml")

	config, err := loadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "app/build.gradle", config.BuildFile)
	assert.Equal(t, "managed", config.Marker)
	assert.False(t, config.ValidateTOML)
	assert.Equal(t, "yaml", config.Format)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depsync.yaml")
	content := "catalog_file: libs.toml\nmarker: sync\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), constants.FilePermissions))

	v := viper.New()
	v.Set("config", path)
	config, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "libs.toml", config.CatalogFile)
	assert.Equal(t, "sync", config.Marker)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, constants.DefaultBuildFile, config.BuildFile)
}

func TestLoadConfigNamedFileErrors(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "depsync.yaml")
	require.NoError(t, os.WriteFile(malformed, []byte("marker: [sync\nlog_level: debug\n"), constants.FilePermissions))

	tests := []struct {
		name string
		path string
	}{
		{"malformed yaml", malformed},
		{"missing file", filepath.Join(dir, "absent.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("config", tt.path)

			config, err := loadConfig(v)
			require.Error(t, err)
			assert.Nil(t, config)

			var cerr *errors.ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.path, cerr.Source)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "warn", config.LogLevel)

	config.UpdateFromFlags(false, true, false, "json", "trace")
	assert.True(t, config.Quiet)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "trace", config.LogLevel)
}
