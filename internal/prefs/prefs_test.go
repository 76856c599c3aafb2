package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	assert.Equal(t, defaultTheme, p.Theme)
	assert.False(t, p.ShowLog)
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "pulse")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("theme = \"Slate\"\nshow_log = true\n"), 0o644))

	p := Load("")
	assert.Equal(t, "Slate", p.Theme)
	assert.True(t, p.ShowLog)
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	file := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	require.NoError(t, Save(file, Prefs{Theme: "Kanagawa", ShowLog: true}))

	loaded := Load(file)
	assert.Equal(t, Prefs{Theme: "Kanagawa", ShowLog: true}, loaded)
}

func TestLoad_DegradesToDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty theme", content: "theme = \"  \"\n"},
		{name: "invalid toml", content: "not valid toml {{{\n"},
		{name: "wrong type", content: "show_log = \"yes\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "prefs.toml")
			require.NoError(t, os.WriteFile(file, []byte(tt.content), 0o644))

			assert.Equal(t, defaultTheme, Load(file).Theme)
		})
	}
}
