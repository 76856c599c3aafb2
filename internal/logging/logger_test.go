package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantFile bool
	}{
		{
			name: "text file",
			config: Config{
				FilePath:   filepath.Join(t.TempDir(), "pulse.log"),
				Level:      slog.LevelInfo,
				Format:     FormatText,
				MaxSizeMB:  1,
				MaxBackups: 1,
			},
			wantFile: true,
		},
		{
			name: "json file",
			config: Config{
				FilePath: filepath.Join(t.TempDir(), "pulse.log"),
				Level:    slog.LevelDebug,
				Format:   FormatJSON,
			},
			wantFile: true,
		},
		{
			name:   "empty path discards",
			config: Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Init(tt.config))
			t.Cleanup(func() { _ = Shutdown() })

			logger := Get()
			require.NotNil(t, logger)
			logger.Info("hello", "segment", "stopwatch")
			Component("test").Warn("warned")

			if tt.wantFile {
				data, err := os.ReadFile(tt.config.FilePath)
				require.NoError(t, err)
				assert.Contains(t, string(data), "hello")
				assert.Contains(t, string(data), "component")
			}
		})
	}
}

func TestInit_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pulse.log")
	require.NoError(t, Init(Config{FilePath: path, Level: slog.LevelWarn}))
	t.Cleanup(func() { _ = Shutdown() })

	Get().Info("quiet")
	Get().Error("loud")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), tt.input)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestShutdown_WithoutInitIsSafe(t *testing.T) {
	assert.NoError(t, Shutdown())
	assert.NotNil(t, Get())
}
