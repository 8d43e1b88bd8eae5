package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zlib"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/pngcodec"
)

// Config holds the settings shared by all subcommands.
type Config struct {
	CompressionLevel int   `yaml:"compression_level"`
	Truecolor        bool  `yaml:"truecolor"`
	MaxImageBytes    int64 `yaml:"max_image_bytes"`

	LogLevel string  `yaml:"log_level"`
	LogFile  LogFile `yaml:"log_file"`
}

// LogFile configures log rotation when logging to a file.
type LogFile struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		CompressionLevel: zlib.DefaultCompression,
		MaxImageBytes:    pngcodec.DefaultMaxImageBytes,
		LogLevel:         "warn",
		LogFile: LogFile{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns
// the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.CompressionLevel < zlib.HuffmanOnly || c.CompressionLevel > zlib.BestCompression {
		return fmt.Errorf("compression_level %d out of range [%d, %d]",
			c.CompressionLevel, zlib.HuffmanOnly, zlib.BestCompression)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFile.MaxSizeMB < 0 || c.LogFile.MaxBackups < 0 || c.LogFile.MaxAgeDays < 0 {
		return errors.New("log_file limits must not be negative")
	}
	return nil
}

// DecodeOptions returns the codec options for decoding.
func (c Config) DecodeOptions() []pngcodec.Option {
	return []pngcodec.Option{
		pngcodec.WithMaxImageBytes(c.MaxImageBytes),
		pngcodec.WithTruecolor(c.Truecolor),
	}
}

// EncodeOptions returns the codec options for encoding.
func (c Config) EncodeOptions() []pngcodec.Option {
	return []pngcodec.Option{pngcodec.WithCompressionLevel(c.CompressionLevel)}
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return l, fmt.Errorf("log_level %q: %w", s, err)
	}
	return l, nil
}
