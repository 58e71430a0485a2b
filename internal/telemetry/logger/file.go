package logger

import (
	"errors"
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures rotating file output.
type FileConfig struct {
	// Path of the active log file.
	Path string
	// MaxSizeMB rotates the file once it reaches this size.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept (0 keeps all).
	MaxBackups int
	// MaxAgeDays removes rotated files older than this (0 keeps all).
	MaxAgeDays int
	// Compress gzips rotated files.
	Compress bool
}

// ErrNoLogFile is returned by OpenFile when no path is configured.
var ErrNoLogFile = errors.New("logger: no log file path")

// OpenFile returns a rotating writer for cfg. The file is created lazily on
// first write; the caller closes it on shutdown.
func OpenFile(cfg FileConfig) (io.WriteCloser, error) {
	if cfg.Path == "" {
		return nil, ErrNoLogFile
	}

	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}, nil
}
