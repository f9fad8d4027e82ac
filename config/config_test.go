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
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, ""))
	require.NoError(t, err)

	assert.False(t, cfg.Generate.Checked)
	assert.Empty(t, cfg.Generate.Output)
	assert.Equal(t, 8, cfg.Target.PointerSize)
	assert.Equal(t, 8, cfg.Target.MaxAlign)
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, `
[generate]
checked = true
output = "internal/abi"

[target]
pointer_size = 4
max_align = 4
`))
	require.NoError(t, err)

	assert.True(t, cfg.Generate.Checked)
	assert.Equal(t, "internal/abi", cfg.Generate.Output)

	target := cfg.Target.Layout()
	assert.Equal(t, 4, target.PointerSize)
	assert.Equal(t, 4, target.MaxAlign)
}

func TestLoadFromFileValidation(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, `
[target]
pointer_size = 3
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pointer_size")

	_, err = LoadFromFile(writeConfig(t, `
[target]
max_align = 5
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_align")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadFindsProjectConfigUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(`
[generate]
checked = true
`), 0o644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Generate.Checked)
}
