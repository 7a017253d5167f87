// Package config loads the settings of the cellfmt tool from a YAML or TOML
// file.  The format is chosen by file extension.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	cellformat "github.com/TsubasaBE/go-cellformat"
)

// Format is a configuration file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// Config is the complete tool configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// EngineConfig holds the format engine settings.
type EngineConfig struct {
	CacheSize int  `yaml:"cache_size" toml:"cache_size"`
	Date1904  bool `yaml:"date1904" toml:"date1904"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // logrus level name
	Format string `yaml:"format" toml:"format"` // "text" or "json"
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "warning", Format: "text"},
	}
}

// Load reads the file at path on top of [Default].
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// DetectFormat picks the syntax from the file extension.  Anything that is
// not .toml is read as YAML.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Parse decodes content on top of [Default] and validates the result.
func Parse(content []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("toml parse error: %w", err)
		}
	default:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("yaml parse error: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Engine.CacheSize < 0 {
		return fmt.Errorf("engine.cache_size must not be negative, got %d", c.Engine.CacheSize)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Logger builds a logger writing to w.
func (c LogConfig) Logger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if strings.EqualFold(c.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return l, nil
}

// EngineOptions maps the engine settings onto [cellformat.Options].
func (c Config) EngineOptions(log logrus.FieldLogger) cellformat.Options {
	return cellformat.Options{
		CacheSize: c.Engine.CacheSize,
		Date1904:  c.Engine.Date1904,
		Logger:    log,
	}
}
