package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TsubasaBE/go-cellformat/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 0, cfg.Engine.CacheSize)
	assert.False(t, cfg.Engine.Date1904)
	assert.Equal(t, "warning", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "cellfmt.yaml",
			content: `engine:
  cache_size: 128
  date1904: true
log:
  level: debug
  format: json
`,
		},
		{
			name: "toml",
			file: "cellfmt.toml",
			content: `[engine]
cache_size = 128
date1904 = true

[log]
level = "debug"
format = "json"
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, 128, cfg.Engine.CacheSize)
			assert.True(t, cfg.Engine.Date1904)
			assert.Equal(t, "debug", cfg.Log.Level)
			assert.Equal(t, "json", cfg.Log.Format)
		})
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "partial.yml", "engine:\n  cache_size: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Engine.CacheSize)
	assert.Equal(t, "warning", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{"negative cache", "c.yaml", "engine:\n  cache_size: -1\n", "cache_size"},
		{"bad level", "c.toml", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"bad log format", "c.yaml", "log:\n  format: xml\n", "log.format"},
		{"bad yaml", "c.yaml", "engine: [\n", "yaml parse error"},
		{"bad toml", "c.toml", "[engine\n", "toml parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, tt.file, tt.content))
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "config: read")
	})
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, config.FormatTOML, config.DetectFormat("a/b.toml"))
	assert.Equal(t, config.FormatTOML, config.DetectFormat("B.TOML"))
	assert.Equal(t, config.FormatYAML, config.DetectFormat("b.yaml"))
	assert.Equal(t, config.FormatYAML, config.DetectFormat("b"))
	assert.Equal(t, "toml", config.FormatTOML.String())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := config.LogConfig{Level: "info", Format: "json"}.Logger(&buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.WithField("k", "v").Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)

	buf.Reset()
	log, err = config.LogConfig{Level: "warning", Format: "text"}.Logger(&buf)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = config.LogConfig{Level: "nope"}.Logger(&buf)
	assert.Error(t, err)
}

func TestEngineOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.CacheSize = 3
	cfg.Engine.Date1904 = true
	opts := cfg.EngineOptions(nil)
	assert.Equal(t, 3, opts.CacheSize)
	assert.True(t, opts.Date1904)
	assert.Nil(t, opts.Logger)
}
