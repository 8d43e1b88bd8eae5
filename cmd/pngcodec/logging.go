package main

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the command logger. Records go to stderr unless a log
// file is configured, in which case the file is rotated by size and age.
// The returned closer is nil when logging to stderr.
func newLogger(c Config) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer
	)
	if c.LogFile.Path != "" {
		lj := &lumberjack.Logger{
			Filename:   c.LogFile.Path,
			MaxSize:    c.LogFile.MaxSizeMB,
			MaxBackups: c.LogFile.MaxBackups,
			MaxAge:     c.LogFile.MaxAgeDays,
			Compress:   c.LogFile.Compress,
		}
		w, closer = lj, lj
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h), closer, nil
}
