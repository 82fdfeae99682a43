package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile_MissingFileGivesDefaults(t *testing.T) {
	config, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), config)
}

func TestLoadConfigFromFile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[output]
format = "csv"
delimiter = ";"
no_header = true

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	config, err := LoadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "csv", config.Output.Format)
	assert.Equal(t, ";", config.Output.Delimiter)
	assert.True(t, config.Output.NoHeader)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Empty(t, config.Log.File)
}

func TestLoadConfigFromFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[output\n"), 0o644))
	_, err := LoadConfigFromFile(bad)
	assert.ErrorContains(t, err, "failed to decode TOML config")

	format := filepath.Join(dir, "format.toml")
	require.NoError(t, os.WriteFile(format, []byte("[output]\nformat = \"xml\"\n"), 0o644))
	_, err = LoadConfigFromFile(format)
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestConfigValidate_Delimiter(t *testing.T) {
	config := NewDefaultConfig()
	config.Output.Delimiter = ";;"
	assert.Error(t, config.Validate())

	config.Output.Delimiter = "\t"
	assert.NoError(t, config.Validate())
}
