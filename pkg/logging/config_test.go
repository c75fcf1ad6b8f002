package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/depsync/pkg/logging"
)

func restoreLogging(t *testing.T) {
	t.Helper()
	original := *logging.Default()
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(level)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.Equal(t, "kitchen", cfg.TimeFormat)
	assert.False(t, cfg.AddCaller)
}

func TestNewLoggerFromConfig(t *testing.T) {
	restoreLogging(t)

	t.Run("file output in json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "depsync.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "debug", Format: "json", Output: path})
		logger.Debug().Str("file", "build.gradle.kts").Msg("Read file")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"file":"build.gradle.kts"`)
		assert.Contains(t, string(content), `"caller"`, "debug level records the caller")
	})

	t.Run("level filters and sets the global level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "warn.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "warn", Format: "json", Output: path})
		logger.Info().Msg("hidden")
		logger.Warn().Msg("visible")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "hidden")
		assert.Contains(t, string(content), "visible")
		assert.NotContains(t, string(content), `"caller"`)
		assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})

	t.Run("console format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{Format: "console", Output: path, NoColor: true})
		logger.Info().Msg("Synchronization completed")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "INF Synchronization completed")
		assert.NotContains(t, string(content), `"level"`)
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		assert.NotPanics(t, func() {
			logger := logging.NewLoggerFromConfig(nil)
			assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
		})
	})
}

func TestConfigure(t *testing.T) {
	restoreLogging(t)
	path := filepath.Join(t.TempDir(), "configured.log")

	logging.Configure(&logging.Config{Level: "error", Format: "json", Output: path})
	logging.Default().Warn().Msg("dropped")
	logging.Default().Error().Msg("kept")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "dropped")
	assert.Contains(t, string(content), "kept")
}

func TestLevelParsing(t *testing.T) {
	restoreLogging(t)

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"fatal", zerolog.FatalLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := logging.NewLoggerFromConfig(&logging.Config{Level: tt.level, Output: "discard"})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}
