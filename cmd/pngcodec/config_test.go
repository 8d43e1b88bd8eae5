package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/gogpu/pngcodec"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pngcodec.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	c, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c != DefaultConfig() {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults", c)
	}
	if c.MaxImageBytes != pngcodec.DefaultMaxImageBytes || c.CompressionLevel != zlib.DefaultCompression {
		t.Errorf("defaults = %+v", c)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
compression_level: 9
truecolor: true
max_image_bytes: 4096
log_level: debug
log_file:
  path: /tmp/pngcodec.log
  max_backups: 7
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.CompressionLevel != 9 || !c.Truecolor || c.MaxImageBytes != 4096 {
		t.Errorf("codec settings = %+v", c)
	}
	if c.LogFile.Path != "/tmp/pngcodec.log" || c.LogFile.MaxBackups != 7 {
		t.Errorf("log file = %+v", c.LogFile)
	}
	if c.LogFile.MaxSizeMB != DefaultConfig().LogFile.MaxSizeMB {
		t.Errorf("MaxSizeMB = %d, want default kept", c.LogFile.MaxSizeMB)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"level too high", "compression_level: 10\n", "compression_level"},
		{"level too low", "compression_level: -3\n", "compression_level"},
		{"log level", "log_level: loud\n", "log_level"},
		{"negative limits", "log_file:\n  max_age_days: -1\n", "log_file"},
		{"bad yaml", "truecolor: [\n", "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() error = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() of a missing file succeeded")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseLevel(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	c := DefaultConfig()
	c.LogLevel = "debug"
	l, closer, err := newLogger(c)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	if closer != nil {
		t.Error("stderr logger returned a closer")
	}
	if !l.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("debug level not enabled")
	}

	c.LogFile.Path = filepath.Join(t.TempDir(), "codec.log")
	l, closer, err = newLogger(c)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	if closer == nil {
		t.Fatal("file logger returned no closer")
	}
	l.Info("hello", "k", "v")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(c.LogFile.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "msg=hello") {
		t.Errorf("log file = %q, want the record", data)
	}
}
