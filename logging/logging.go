// Package logging builds the zap logger
// The terminal belongs to the UI, so logs only ever go to a file and only in debug mode
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options locates the debug log
type Options struct {
	Debug   bool
	Dir     string
	File    string
	MaxSize int64
}

// Handle owns the logger and its file
type Handle struct {
	Logger  *zap.Logger
	file    *os.File
	restore func()
}

// Path returns the open log file path, empty when logging is disabled
func (h *Handle) Path() string {
	if h.file == nil {
		return ""
	}
	return h.file.Name()
}

// Close flushes the logger, restores the standard logger and closes the file
func (h *Handle) Close() error {
	_ = h.Logger.Sync()
	if h.restore != nil {
		h.restore()
		h.restore = nil
	}
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}

// Setup returns a file logger when debug is on, otherwise a no-op logger
// The standard library logger is discarded or redirected to match
func Setup(opts Options) (*Handle, error) {
	if !opts.Debug {
		log.SetOutput(io.Discard)
		return &Handle{Logger: zap.NewNop()}, nil
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(opts.Dir, opts.File)
	if err := rotate(path, opts.MaxSize); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)
	logger := zap.New(core, zap.AddCaller())

	return &Handle{
		Logger:  logger,
		file:    f,
		restore: zap.RedirectStdLog(logger),
	}, nil
}

// rotate renames an oversized log to a timestamped sibling
func rotate(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() <= maxSize {
		return nil
	}
	ext := filepath.Ext(path)
	rotated := fmt.Sprintf("%s-%s%s", path[:len(path)-len(ext)], time.Now().Format("20060102-150405"), ext)
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}
