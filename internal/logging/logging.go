package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Context is the run-scoped logging handle: a logger writing to both the
// console and a timestamped per-run file. It replaces any process-global
// logger configuration; main constructs one and hands it to the runner.
type Context struct {
	Logger  *zap.Logger
	LogFile string

	file *os.File
}

// New builds a logging context. The per-run file is created inside dir and
// named connect_security_update_<timestamp>.log.
func New(level, dir string) (*Context, error) {
	name := "connect_security_update_" + time.Now().Format("20060102_150405") + ".log"
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)

	lvl := parseLevel(level)
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl),
		zapcore.NewCore(enc, zapcore.Lock(f), lvl),
	)
	return &Context{
		Logger:  zap.New(core),
		LogFile: path,
		file:    f,
	}, nil
}

// Close flushes buffered entries and closes the log file.
func (c *Context) Close() {
	_ = c.Logger.Sync()
	if c.file != nil {
		_ = c.file.Close()
	}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
